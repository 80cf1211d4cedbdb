package model

import "time"

// JobStatus is the lifecycle state of a posting
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

// Job is a posting owned by the HR team. Order is the board position and
// is only rewritten by explicit reorder operations.
type Job struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Slug      string    `json:"slug" bson:"slug"`
	Status    JobStatus `json:"status" bson:"status"`
	Tags      []string  `json:"tags" bson:"tags"`
	Order     int       `json:"order" bson:"order"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Page is a window over a filtered listing.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
