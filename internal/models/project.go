package models

import "time"

const DefaultProjectColor = "#6366f1"

type Project struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Color       string    `db:"color" json:"color"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type ProjectInput struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Color       string  `json:"color" binding:"omitempty,hexcolor,len=7"`
}

type ProjectUpdate struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,hexcolor,len=7"`
}

func (u ProjectUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Color == nil
}
