package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

// MemberHandler covers invitations and project membership.
type MemberHandler struct {
	service services.InvitationService
}

func NewMemberHandler(service services.InvitationService) *MemberHandler {
	return &MemberHandler{service: service}
}

// @Summary   Invite someone to a project
// @Tags      Members
// @Accept    json
// @Produce   json
// @Param     body  body      models.InvitationInput  true  "Invitation"
// @Success   201   {object}  models.Invitation
// @Failure   400   {object}  map[string]string
// @Failure   404   {object}  map[string]string
// @Router    /api/invitations [post]
func (h *MemberHandler) Invite(c *gin.Context) {
	var in models.InvitationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "[invite][create]", err)
		return
	}
	inv, err := h.service.Invite(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, "[invite][create]", err)
		return
	}
	log.Printf("[invite][create][ok] project=%d role=%s", inv.ProjectID, inv.Role)
	c.JSON(http.StatusCreated, inv)
}

// GET /api/projects/:id/invitations
func (h *MemberHandler) ListInvitations(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListInvitations(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, "[invite][list]", err)
		return
	}
	if items == nil {
		items = []models.Invitation{}
	}
	c.JSON(http.StatusOK, items)
}

// GET /api/projects/:id/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListMembers(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, "[member][list]", err)
		return
	}
	if items == nil {
		items = []models.ProjectMember{}
	}
	c.JSON(http.StatusOK, items)
}

// DELETE /api/projects/:id/members/:userId
func (h *MemberHandler) Remove(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := c.Param("userId")
	if err := h.service.RemoveMember(c.Request.Context(), projectID, userID); err != nil {
		respondError(c, "[member][remove]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
