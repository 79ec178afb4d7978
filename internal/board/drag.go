package board

import (
	"errors"

	"doabli/internal/models"
)

type DragState int

const (
	Idle DragState = iota
	Dragging
	Hovering
	Dropped
	Cancelled
)

func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

var ErrBadTransition = errors.New("invalid drag transition")

// Move is the position update sent when a card lands in another lane.
type Move struct {
	TaskID   int64             `json:"taskId"`
	Position int               `json:"position"`
	Status   models.TaskStatus `json:"status"`
}

// DragSession tracks one card drag over a snapshot of the board.
type DragSession struct {
	state  DragState
	counts map[models.TaskStatus]int
	task   *models.Task
	from   models.TaskStatus
	over   models.TaskStatus
}

func NewDragSession(cols []Column) *DragSession {
	counts := make(map[models.TaskStatus]int, len(cols))
	for _, c := range cols {
		counts[c.Status] = len(c.Tasks)
	}
	return &DragSession{state: Idle, counts: counts}
}

func (d *DragSession) State() DragState { return d.state }

// Start picks up a card. Only allowed from Idle or a finished drag.
func (d *DragSession) Start(t models.Task) error {
	switch d.state {
	case Idle, Dropped, Cancelled:
	default:
		return ErrBadTransition
	}
	task := t
	d.task = &task
	d.from = models.NormalizeStatus(string(t.Status))
	d.over = ""
	d.state = Dragging
	return nil
}

// Hover records the lane currently under the card.
func (d *DragSession) Hover(status models.TaskStatus) error {
	if d.state != Dragging && d.state != Hovering {
		return ErrBadTransition
	}
	if _, ok := d.counts[status]; !ok {
		return ErrBadTransition
	}
	d.over = status
	d.state = Hovering
	return nil
}

// Drop releases the card. It returns nil when the card is released over its
// own lane or over no lane; otherwise the card goes to the end of the
// destination lane.
func (d *DragSession) Drop() (*Move, error) {
	switch d.state {
	case Dragging:
		d.reset(Cancelled)
		return nil, nil
	case Hovering:
	default:
		return nil, ErrBadTransition
	}
	task, from, over := d.task, d.from, d.over
	d.reset(Dropped)
	if over == from {
		return nil, nil
	}
	mv := &Move{TaskID: task.ID, Position: d.counts[over], Status: over}
	d.counts[from]--
	d.counts[over]++
	return mv, nil
}

// Cancel abandons the drag without producing a move.
func (d *DragSession) Cancel() {
	if d.state == Dragging || d.state == Hovering {
		d.reset(Cancelled)
	}
}

func (d *DragSession) reset(to DragState) {
	d.task = nil
	d.from = ""
	d.over = ""
	d.state = to
}
