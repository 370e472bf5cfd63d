package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nhle/project-tracker/internal/model"
)

// CreateProject inserts a new project with a fresh ID, the trimmed name and
// the current time. A name that trims to empty is rejected and nothing is written.
func (s *SQLiteStore) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	project := model.Project{
		ID:        uuid.New().String(),
		Name:      model.CleanText(name),
		CreatedAt: s.now(),
	}

	s.logger.Debug("inserting project", zap.String("project_id", project.ID))

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)",
		project.ID, project.Name, project.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to insert project", zap.Error(err))
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.events.publish(Event{
		Collection: CollectionProjects, Op: OpCreate,
		ProjectID: project.ID, ID: project.ID,
	})
	s.logger.Info("project created", zap.String("project_id", project.ID))
	return &project, nil
}

// UpdateProject renames an existing project in place.
func (s *SQLiteStore) UpdateProject(ctx context.Context, id, name string) (*model.Project, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}

	s.logger.Debug("updating project", zap.String("project_id", id))

	result, err := s.db.ExecContext(ctx,
		"UPDATE projects SET name = ? WHERE id = ?",
		model.CleanText(name), id,
	)
	if err != nil {
		s.logger.Error("failed to update project", zap.String("project_id", id), zap.Error(err))
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.publish(Event{
		Collection: CollectionProjects, Op: OpUpdate,
		ProjectID: id, ID: id,
	})
	s.logger.Info("project updated", zap.String("project_id", id))
	return project, nil
}

// DeleteProject removes a project and every checkpoint it owns in one
// transaction: the checkpoints first, then the project row.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	var removed int64

	s.logger.Debug("deleting project", zap.String("project_id", id))

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getProject(ctx, tx, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM checkpoints WHERE project_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting checkpoints of project %s: %w", id, err)
		}
		removed, _ = result.RowsAffected()

		if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting project %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to delete project", zap.String("project_id", id), zap.Error(err))
		}
		return err
	}

	s.events.publish(
		Event{Collection: CollectionCheckpoints, Op: OpDelete, ProjectID: id},
		Event{Collection: CollectionProjects, Op: OpDelete, ProjectID: id, ID: id},
	)
	s.logger.Info("project deleted",
		zap.String("project_id", id),
		zap.Int64("checkpoints_removed", removed),
	)
	return nil
}

// GetProject retrieves a single project by ID.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return getProject(ctx, s.db, id)
}

// ListProjects returns every project, newest first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects,
		"SELECT id, name, created_at FROM projects ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// getProject loads one project through either the pool or a transaction.
func getProject(ctx context.Context, q sqlx.QueryerContext, id string) (*model.Project, error) {
	var project model.Project
	err := sqlx.GetContext(ctx, q, &project,
		"SELECT id, name, created_at FROM projects WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &project, nil
}
