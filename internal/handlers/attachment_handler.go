package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

// multipart framing allowance on top of the file limit
const uploadOverhead = 1 << 20

type AttachmentHandler struct {
	service services.AttachmentService
}

func NewAttachmentHandler(service services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// GET /api/tasks/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, "[attachment][list]", err)
		return
	}
	if items == nil {
		items = []models.TaskAttachment{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary   Upload attachment
// @Tags      Attachments
// @Accept    multipart/form-data
// @Produce   json
// @Param     id    path      int   true  "Task ID"
// @Param     file  formData  file  true  "File"
// @Success   201   {object}  models.TaskAttachment
// @Failure   413   {object}  map[string]string
// @Router    /api/tasks/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxAttachmentBytes+uploadOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "[attachment][upload]", err)
		return
	}
	if fh.Size > services.MaxAttachmentBytes {
		respondError(c, "[attachment][upload]", services.ErrFileTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, "[attachment][upload]", err)
		return
	}
	defer f.Close()

	a, err := h.service.Upload(c.Request.Context(), taskID, currentUserID(c), fh.Filename, f)
	if err != nil {
		respondError(c, "[attachment][upload]", err)
		return
	}
	log.Printf("[attachment][upload][ok] id=%d task=%d size=%d", a.ID, taskID, fh.Size)
	c.JSON(http.StatusCreated, a)
}

// GET /api/attachments/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[attachment][download]", err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return
	}
	if a.MimeType != nil && *a.MimeType != "" {
		c.Header("Content-Type", *a.MimeType)
	}
	c.FileAttachment(a.FilePath, a.FileName)
}

// DELETE /api/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[attachment][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
