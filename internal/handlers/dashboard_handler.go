package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

type DashboardHandler struct {
	tasks services.TaskService
}

func NewDashboardHandler(tasks services.TaskService) *DashboardHandler {
	return &DashboardHandler{tasks: tasks}
}

// @Summary   Dashboard counters for the current user
// @Tags      Dashboard
// @Produce   json
// @Success   200  {object}  models.DashboardStats
// @Router    /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.tasks.DashboardStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, "[dashboard][stats]", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

const defaultUpcoming = 5

// GET /api/dashboard/upcoming?limit=
func (h *DashboardHandler) Upcoming(c *gin.Context) {
	limit := defaultUpcoming
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	tasks, err := h.tasks.Upcoming(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		respondError(c, "[dashboard][upcoming]", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /api/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD or ?day=YYYY-MM-DD
func (h *DashboardHandler) Calendar(c *gin.Context) {
	if v, ok := c.GetQuery("day"); ok {
		h.day(c, v)
		return
	}
	from, err := models.ParseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := models.ParseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is before from"})
		return
	}

	tasks, err := h.tasks.Calendar(c.Request.Context(), currentUserID(c), from, to)
	if err != nil {
		respondError(c, "[dashboard][calendar]", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *DashboardHandler) day(c *gin.Context, v string) {
	day, err := models.ParseDate(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}
	tasks, err := h.tasks.Day(c.Request.Context(), currentUserID(c), day)
	if err != nil {
		respondError(c, "[dashboard][day]", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}
