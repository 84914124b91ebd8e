package models

import "time"

// Base holds the surrogate key and timestamps shared by every persisted entity.
// The ID is zero until the store assigns it on insert.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b Base) PrimaryKey() uint {
	return b.ID
}

// Entity is satisfied by every model embedding Base. Repositories are
// parameterized over it so they can look records up by primary key.
type Entity interface {
	PrimaryKey() uint
}
