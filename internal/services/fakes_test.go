package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

type memTasks struct {
	mu         sync.Mutex
	nextID     int64
	rows       map[int64]models.Task
	rebalanced []models.TaskStatus
}

func newMemTasks() *memTasks { return &memTasks{rows: map[int64]models.Task{}} }

func (m *memTasks) List(_ context.Context, f models.TaskFilter) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Task{}
	for _, t := range m.rows {
		switch {
		case f.ProjectID != nil:
			if t.ProjectID == nil || *t.ProjectID != *f.ProjectID {
				continue
			}
		case f.AssigneeID != nil:
			if t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memTasks) GetByID(_ context.Context, id int64) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memTasks) Create(_ context.Context, t *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.rows[t.ID] = *t
	return nil
}

func (m *memTasks) Update(_ context.Context, id int64, u models.TaskUpdate) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Status != nil {
		t.Status = models.TaskStatus(*u.Status)
	}
	if u.Priority != nil {
		t.Priority = models.TaskPriority(*u.Priority)
	}
	if u.DueDate != nil {
		d := *u.DueDate
		t.DueDate = &d
	}
	if u.Position != nil {
		t.Position = *u.Position
	}
	m.rows[id] = t
	return &t, nil
}

func (m *memTasks) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memTasks) UpdatePosition(_ context.Context, id int64, position int, status models.TaskStatus) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	t.Position = position
	t.Status = status
	m.rows[id] = t
	return &t, nil
}

func (m *memTasks) MoveInColumn(_ context.Context, id int64, status models.TaskStatus, index int) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	var lane []models.Task
	for _, o := range m.rows {
		if o.ID != id && o.Status == status && samePtr(o.ProjectID, t.ProjectID) {
			lane = append(lane, o)
		}
	}
	sort.Slice(lane, func(i, j int) bool { return lane[i].Position < lane[j].Position })
	if index > len(lane) {
		index = len(lane)
	}
	t.Status = status
	lane = append(lane[:index], append([]models.Task{t}, lane[index:]...)...)
	for i, o := range lane {
		o.Position = i
		m.rows[o.ID] = o
	}
	out := m.rows[id]
	return &out, nil
}

func (m *memTasks) Rebalance(_ context.Context, _ *int64, status models.TaskStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebalanced = append(m.rebalanced, status)
	return nil
}

func samePtr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type memProjects struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Project
}

func newMemProjects() *memProjects { return &memProjects{rows: map[int64]models.Project{}} }

func (m *memProjects) List(_ context.Context, owner string) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Project{}
	for _, p := range m.rows {
		if owner == "" || p.OwnerID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjects) GetByID(_ context.Context, id int64) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProjects) Create(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memProjects) Update(_ context.Context, id int64, u models.ProjectUpdate) (*models.Project, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	m.rows[id] = p
	return &p, nil
}

func (m *memProjects) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

type memUsers struct {
	mu        sync.Mutex
	rows      map[string]models.User
	onboarded []string
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{rows: map[string]models.User{}}
	for _, u := range users {
		m.rows[u.ID] = u
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.rows {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Upsert(_ context.Context, in models.UpsertUser) (*models.User, error) {
	u := m.rows[in.ID]
	u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL = in.ID, in.Email, in.FirstName, in.LastName, in.ProfileImageURL
	m.rows[in.ID] = u
	return &u, nil
}

func (m *memUsers) ClaimOnboarding(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok || u.OnboardedAt != nil {
		return false, nil
	}
	now := time.Now()
	u.OnboardedAt = &now
	m.rows[id] = u
	m.onboarded = append(m.onboarded, id)
	return true, nil
}

func (m *memUsers) ReleaseOnboarding(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.OnboardedAt = nil
	m.rows[id] = u
	return nil
}

type memPages struct {
	nextID int64
	rows   map[int64]models.Page
}

func newMemPages() *memPages { return &memPages{rows: map[int64]models.Page{}} }

func (m *memPages) List(context.Context, *int64) ([]models.Page, error) { return nil, nil }

func (m *memPages) GetByID(_ context.Context, id int64) (*models.Page, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPages) Create(_ context.Context, p *models.Page) error {
	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memPages) Update(_ context.Context, id int64, u models.PageUpdate) (*models.Page, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.ParentID != nil {
		if *u.ParentID == 0 {
			p.ParentID = nil
		} else {
			v := *u.ParentID
			p.ParentID = &v
		}
	}
	m.rows[id] = p
	return &p, nil
}

func (m *memPages) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *memPages) ParentChain(_ context.Context, id int64) ([]int64, error) {
	var out []int64
	for cur, ok := m.rows[id]; ok; {
		out = append(out, cur.ID)
		if cur.ParentID == nil {
			break
		}
		cur, ok = m.rows[*cur.ParentID]
	}
	return out, nil
}
