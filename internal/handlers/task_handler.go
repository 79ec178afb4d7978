package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/realtime"
	"doabli/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	events  realtime.Publisher
}

// NewTaskHandler wires task routes; events may be nil.
func NewTaskHandler(service services.TaskService, events realtime.Publisher) *TaskHandler {
	return &TaskHandler{service: service, events: events}
}

func (h *TaskHandler) publish(ev realtime.Event) {
	if h.events != nil {
		h.events.Publish(ev)
	}
}

// GET /api/tasks?projectId=&userId=
func (h *TaskHandler) List(c *gin.Context) {
	projectID, ok := optionalID(c, "projectId")
	if !ok {
		return
	}
	var filter models.TaskFilter
	filter.ProjectID = projectID
	if v := c.Query("userId"); v != "" {
		filter.AssigneeID = &v
	}

	tasks, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[task][list]", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][getByID]", err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary   Create task
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Param     body  body      models.TaskInput  true  "Task"
// @Success   201   {object}  models.Task
// @Failure   400   {object}  map[string]string
// @Router    /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	var in models.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "[task][create]", err)
		return
	}

	task, err := h.service.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, "[task][create]", err)
		return
	}
	log.Printf("[task][create][ok] id=%d by=%s status=%s pos=%d", task.ID, userID, task.Status, task.Position)
	c.JSON(http.StatusCreated, task)
	h.publish(realtime.TaskEvent(realtime.EventTaskCreated, task))
}

// PUT|PATCH /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var u models.TaskUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "[task][update]", err)
		return
	}

	task, err := h.service.Update(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, "[task][update]", err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, task)
	h.publish(realtime.TaskEvent(realtime.EventTaskUpdated, task))
}

// @Summary      Set task position and status
// @Description  Writes exactly position, status and updated_at. Concurrent writers may produce duplicate positions; use /move for a renumbered column.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      models.PositionUpdate  true  "Position"
// @Success      200   {object}  models.Task
// @Router       /api/tasks/{id}/position [put]
func (h *TaskHandler) UpdatePosition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.PositionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[task][position]", err)
		return
	}

	task, err := h.service.UpdatePosition(c.Request.Context(), id, *req.Position, req.Status)
	if err != nil {
		respondError(c, "[task][position]", err)
		return
	}
	log.Printf("[task][position][ok] id=%d status=%s pos=%d", id, task.Status, task.Position)
	c.JSON(http.StatusOK, task)
	h.publish(realtime.TaskEvent(realtime.EventTaskMoved, task))
}

// PUT /api/tasks/:id/move
func (h *TaskHandler) Move(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[task][move]", err)
		return
	}

	task, err := h.service.Move(c.Request.Context(), id, req.Status, req.Index)
	if err != nil {
		respondError(c, "[task][move]", err)
		return
	}
	log.Printf("[task][move][ok] id=%d status=%s pos=%d", id, task.Status, task.Position)
	c.JSON(http.StatusOK, task)
	h.publish(realtime.TaskEvent(realtime.EventTaskMoved, task))
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	snapshot, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][delete]", err)
		return
	}
	log.Printf("[task][delete][ok] id=%d existed=%t", id, snapshot != nil)
	c.Status(http.StatusNoContent)
	h.publish(realtime.TaskDeleted(id, snapshot))
}

// GET /api/projects/:id/board
func (h *TaskHandler) Board(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cols, err := h.service.Board(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][board]", err)
		return
	}
	c.JSON(http.StatusOK, cols)
}

// POST /api/projects/:id/board/rebalance?status=
func (h *TaskHandler) Rebalance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cols, err := h.service.Rebalance(c.Request.Context(), id, c.Query("status"))
	if err != nil {
		respondError(c, "[task][rebalance]", err)
		return
	}
	log.Printf("[task][rebalance][ok] project=%d status=%q", id, c.Query("status"))
	c.JSON(http.StatusOK, cols)
}
