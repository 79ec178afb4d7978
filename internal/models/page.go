package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const BlockParagraph = "paragraph"

// ContentBlock is one typed fragment of a page body.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PageContent is the jsonb document stored in pages.content.
type PageContent struct {
	Blocks []ContentBlock `json:"blocks,omitempty"`
}

// Paragraphs returns the text of every paragraph block in order.
func (c PageContent) Paragraphs() []string {
	var out []string
	for _, b := range c.Blocks {
		if b.Type == BlockParagraph {
			out = append(out, b.Text)
		}
	}
	return out
}

func (c PageContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *PageContent) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = PageContent{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PageContent", src)
	}
	return json.Unmarshal(raw, c)
}

type Page struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Content     PageContent `db:"content" json:"content"`
	ProjectID   *int64      `db:"project_id" json:"projectId"`
	CreatedByID string      `db:"created_by_id" json:"createdById"`
	ParentID    *int64      `db:"parent_id" json:"parentId"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

type PageInput struct {
	Title     string       `json:"title" binding:"required,max=255"`
	Content   *PageContent `json:"content"`
	ProjectID *int64       `json:"projectId"`
	ParentID  *int64       `json:"parentId"`
}

type PageUpdate struct {
	Title     *string      `json:"title" binding:"omitempty,min=1,max=255"`
	Content   *PageContent `json:"content"`
	ProjectID *int64       `json:"projectId"`
	ParentID  *int64       `json:"parentId"`
}

func (u PageUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.ProjectID == nil && u.ParentID == nil
}
