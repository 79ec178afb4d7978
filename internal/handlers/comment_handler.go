package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

type CommentHandler struct {
	service services.CommentService
}

func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// GET /api/tasks/:id/comments, newest first
func (h *CommentHandler) List(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.List(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, "[comment][list]", err)
		return
	}
	if comments == nil {
		comments = []models.TaskComment{}
	}
	c.JSON(http.StatusOK, comments)
}

// POST /api/tasks/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "[comment][create]", err)
		return
	}
	comment, err := h.service.Create(c.Request.Context(), taskID, currentUserID(c), in.Content)
	if err != nil {
		respondError(c, "[comment][create]", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[comment][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
