package entity

import (
	"time"

	"github.com/google/uuid"
)

// Group and Permission are storage shapes referenced by User. No evaluation
// logic lives in this service; the flags and memberships are carried for
// downstream consumers.

type Group struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Permissions []string `bson:"permissions,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

type Permission struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`

	CreatedAt time.Time `bson:"created_at"`
}

func NewGroup(name string, now time.Time) *Group {
	return &Group{ID: uuid.New().String(), Name: name, CreatedAt: now}
}

func NewPermission(name string, now time.Time) *Permission {
	return &Permission{ID: uuid.New().String(), Name: name, CreatedAt: now}
}
