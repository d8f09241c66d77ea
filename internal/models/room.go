package models

import (
	"strings"
	"time"
)

// Room is a physical teaching space.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsLab reports whether the room's display name marks it a laboratory room.
func (r Room) IsLab() bool {
	return strings.Contains(strings.ToLower(r.Name), "lab")
}

// RoomFilter captures supported read filters for the room repository.
type RoomFilter struct {
	LabOnly  bool
	Search   string
	Page     int
	PageSize int
}
