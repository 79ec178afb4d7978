package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/realtime"
	"doabli/internal/services"
)

type OnboardingHandler struct {
	service services.OnboardingService
	events  realtime.Publisher
}

func NewOnboardingHandler(service services.OnboardingService, events realtime.Publisher) *OnboardingHandler {
	return &OnboardingHandler{service: service, events: events}
}

// POST /api/onboarding; an empty body completes with default names.
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var req models.OnboardingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "[onboarding]", err)
			return
		}
	}
	userID := currentUserID(c)
	res, err := h.service.Complete(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "[onboarding]", err)
		return
	}
	log.Printf("[onboarding][ok] user=%s project=%d task=%d", userID, res.Project.ID, res.Task.ID)
	c.JSON(http.StatusCreated, res)
	if h.events != nil {
		h.events.Publish(realtime.TaskEvent(realtime.EventTaskCreated, res.Task))
	}
}
