package models

import "time"

// Note is a registered learning item. The scheduling engine never reads note
// content; it only needs the ID to exist.
type Note struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
