package model

import "time"

// Checkpoint is an ordered, completable sub-item of a project.
// Its lifecycle is bound to the owning project (CASCADE delete) and it is
// never moved to another project.
type Checkpoint struct {
	ID        string `json:"id" db:"id"`
	ProjectID string `json:"project_id" db:"project_id"`
	Title     string `json:"title" db:"title"`
	Details   string `json:"details" db:"details"`
	IsDone    bool   `json:"is_done" db:"is_done"`

	// Order is assigned once at creation as max(sibling order)+1 and never
	// renumbered, so gaps are expected after deletions.
	Order     int       `json:"order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
