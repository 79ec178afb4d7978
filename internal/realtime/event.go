package realtime

import "doabli/internal/models"

type EventType string

const (
	EventTaskCreated EventType = "task_created"
	EventTaskUpdated EventType = "task_updated"
	EventTaskMoved   EventType = "task_moved"
	EventTaskDeleted EventType = "task_deleted"
)

// Event is the envelope pushed to websocket subscribers.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`

	// ProjectID routes the event to project subscribers; nil reaches only global ones.
	ProjectID *int64 `json:"-"`
	// Task is kept for sinks that render the event themselves.
	Task *models.Task `json:"-"`
}

func TaskEvent(typ EventType, t *models.Task) Event {
	return Event{Type: typ, Data: t, ProjectID: t.ProjectID, Task: t}
}

// TaskDeleted builds the deletion event. Data is the deleted task, or just {"id"}
// when the row was already gone.
func TaskDeleted(id int64, snapshot *models.Task) Event {
	if snapshot == nil {
		return Event{Type: EventTaskDeleted, Data: map[string]int64{"id": id}}
	}
	return Event{Type: EventTaskDeleted, Data: snapshot, ProjectID: snapshot.ProjectID, Task: snapshot}
}

// Publisher receives events after a task mutation has been stored.
type Publisher interface {
	Publish(ev Event)
}

// Notifier fans an event out to every configured publisher.
type Notifier struct {
	sinks []Publisher
}

func NewNotifier(sinks ...Publisher) *Notifier {
	n := &Notifier{}
	for _, s := range sinks {
		if s != nil {
			n.sinks = append(n.sinks, s)
		}
	}
	return n
}

func (n *Notifier) Publish(ev Event) {
	if n == nil {
		return
	}
	for _, s := range n.sinks {
		s.Publish(ev)
	}
}
