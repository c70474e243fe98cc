package models

// Tag is a label attached to posts. Names are unique; UpsertByName keeps
// attaching the same name idempotent.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
