package store

import (
	"context"
	"errors"

	"github.com/nhle/project-tracker/internal/model"
)

// Sentinel errors returned (wrapped) by Store implementations. Use errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyName  = model.ErrEmptyName
	ErrEmptyTitle = model.ErrEmptyTitle
)

// Store defines the persistence interface for projects and their checkpoints.
// Every mutating call has committed by the time it returns without error.
type Store interface {
	// === Project CRUD ===

	CreateProject(ctx context.Context, name string) (*model.Project, error)
	UpdateProject(ctx context.Context, id, name string) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)

	// === Checkpoint CRUD ===

	CreateCheckpoint(ctx context.Context, projectID, title, details string) (*model.Checkpoint, error)
	UpdateCheckpoint(ctx context.Context, id, title, details string) (*model.Checkpoint, error)
	ToggleCheckpointDone(ctx context.Context, id string) (*model.Checkpoint, error)
	DeleteCheckpoint(ctx context.Context, id string) error
	GetCheckpoint(ctx context.Context, id string) (*model.Checkpoint, error)
	ListCheckpoints(ctx context.Context, projectID string) ([]model.Checkpoint, error)

	// === Change notifications ===

	// Subscribe returns a channel of committed changes and a function that
	// cancels the subscription.
	Subscribe() (<-chan Event, func())
}
