package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// JSONDocument is an opaque jsonb value passed through untouched.
type JSONDocument json.RawMessage

func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *JSONDocument) UnmarshalJSON(b []byte) error {
	if d == nil {
		return errors.New("JSONDocument: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[0:0], b...)
	return nil
}

func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}
	return []byte(d), nil
}

func (d *JSONDocument) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append((*d)[0:0], v...)
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONDocument", src)
	}
	return nil
}

// Automation is stored but never executed.
type Automation struct {
	ID          int64        `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Trigger     JSONDocument `db:"trigger" json:"trigger"`
	Actions     JSONDocument `db:"actions" json:"actions"`
	IsActive    bool         `db:"is_active" json:"isActive"`
	ProjectID   *int64       `db:"project_id" json:"projectId"`
	CreatedByID string       `db:"created_by_id" json:"createdById"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

type AutomationInput struct {
	Name      string       `json:"name" binding:"required,max=255"`
	Trigger   JSONDocument `json:"trigger" binding:"required"`
	Actions   JSONDocument `json:"actions" binding:"required"`
	IsActive  *bool        `json:"isActive"`
	ProjectID *int64       `json:"projectId"`
}

type AutomationUpdate struct {
	Name      *string       `json:"name" binding:"omitempty,min=1,max=255"`
	Trigger   *JSONDocument `json:"trigger"`
	Actions   *JSONDocument `json:"actions"`
	IsActive  *bool         `json:"isActive"`
	ProjectID *int64        `json:"projectId"`
}

func (u AutomationUpdate) Empty() bool {
	return u.Name == nil && u.Trigger == nil && u.Actions == nil && u.IsActive == nil && u.ProjectID == nil
}
