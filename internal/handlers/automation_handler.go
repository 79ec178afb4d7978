package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

// AutomationHandler stores automation definitions; nothing executes them.
type AutomationHandler struct {
	service services.AutomationService
}

func NewAutomationHandler(service services.AutomationService) *AutomationHandler {
	return &AutomationHandler{service: service}
}

func (h *AutomationHandler) List(c *gin.Context) {
	projectID, ok := optionalID(c, "projectId")
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, "[automation][list]", err)
		return
	}
	if items == nil {
		items = []models.Automation{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *AutomationHandler) Create(c *gin.Context) {
	var in models.AutomationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "[automation][create]", err)
		return
	}
	a, err := h.service.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, "[automation][create]", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PATCH /api/automations/:id. ?toggle=true flips isActive and ignores the body.
func (h *AutomationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if c.Query("toggle") == "true" {
		a, err := h.service.Toggle(c.Request.Context(), id)
		if err != nil {
			respondError(c, "[automation][toggle]", err)
			return
		}
		c.JSON(http.StatusOK, a)
		return
	}

	var u models.AutomationUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "[automation][update]", err)
		return
	}
	a, err := h.service.Update(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, "[automation][update]", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AutomationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[automation][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
