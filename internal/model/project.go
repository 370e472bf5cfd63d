package model

import "time"

// Project is a top-level tracked unit of work. It owns zero or more
// checkpoints; deleting a project deletes all of them.
type Project struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
