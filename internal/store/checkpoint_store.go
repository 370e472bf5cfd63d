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

const checkpointColumns = "id, project_id, title, details, is_done, sort_order, created_at"

// CreateCheckpoint inserts a new, not-yet-done checkpoint at the end of the
// project's sequence: its order is one past the highest existing sibling
// order, or 0 for the first checkpoint. Orders of deleted siblings are not reused
// while a higher sibling remains.
func (s *SQLiteStore) CreateCheckpoint(
	ctx context.Context,
	projectID, title, details string,
) (*model.Checkpoint, error) {
	if err := model.ValidateTitle(title); err != nil {
		return nil, fmt.Errorf("creating checkpoint: %w", err)
	}

	cp := model.Checkpoint{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     model.CleanText(title),
		Details:   model.CleanText(details),
		CreatedAt: s.now(),
	}

	s.logger.Debug("inserting checkpoint",
		zap.String("project_id", projectID),
		zap.String("checkpoint_id", cp.ID),
	)

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getProject(ctx, tx, projectID); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &cp.Order,
			"SELECT COALESCE(MAX(sort_order), -1) + 1 FROM checkpoints WHERE project_id = ?",
			projectID,
		); err != nil {
			return fmt.Errorf("getting max checkpoint sort_order: %w", err)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO checkpoints (`+checkpointColumns+`)
			VALUES (?, ?, ?, ?, 0, ?, ?)`,
			cp.ID, cp.ProjectID, cp.Title, cp.Details, cp.Order, cp.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("creating checkpoint: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to insert checkpoint", zap.String("project_id", projectID), zap.Error(err))
		}
		return nil, err
	}

	s.events.publish(Event{
		Collection: CollectionCheckpoints, Op: OpCreate,
		ProjectID: projectID, ID: cp.ID,
	})
	s.logger.Info("checkpoint created",
		zap.String("project_id", projectID),
		zap.String("checkpoint_id", cp.ID),
		zap.Int("order", cp.Order),
	)
	return &cp, nil
}

// UpdateCheckpoint replaces the title and details of a checkpoint. Its
// completion flag, order and owning project are left untouched.
func (s *SQLiteStore) UpdateCheckpoint(
	ctx context.Context,
	id, title, details string,
) (*model.Checkpoint, error) {
	if err := model.ValidateTitle(title); err != nil {
		return nil, fmt.Errorf("updating checkpoint %s: %w", id, err)
	}

	s.logger.Debug("updating checkpoint", zap.String("checkpoint_id", id))

	result, err := s.db.ExecContext(ctx,
		"UPDATE checkpoints SET title = ?, details = ? WHERE id = ?",
		model.CleanText(title), model.CleanText(details), id,
	)
	if err != nil {
		s.logger.Error("failed to update checkpoint", zap.String("checkpoint_id", id), zap.Error(err))
		return nil, fmt.Errorf("updating checkpoint %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("checkpoint %s: %w", id, ErrNotFound)
	}

	cp, err := s.GetCheckpoint(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.publish(Event{
		Collection: CollectionCheckpoints, Op: OpUpdate,
		ProjectID: cp.ProjectID, ID: id,
	})
	s.logger.Info("checkpoint updated",
		zap.String("project_id", cp.ProjectID),
		zap.String("checkpoint_id", id),
	)
	return cp, nil
}

// ToggleCheckpointDone flips the completion flag of a checkpoint.
func (s *SQLiteStore) ToggleCheckpointDone(ctx context.Context, id string) (*model.Checkpoint, error) {
	s.logger.Debug("toggling checkpoint", zap.String("checkpoint_id", id))

	result, err := s.db.ExecContext(ctx,
		"UPDATE checkpoints SET is_done = CASE WHEN is_done = 0 THEN 1 ELSE 0 END WHERE id = ?",
		id)
	if err != nil {
		s.logger.Error("failed to toggle checkpoint", zap.String("checkpoint_id", id), zap.Error(err))
		return nil, fmt.Errorf("toggling checkpoint %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("checkpoint %s: %w", id, ErrNotFound)
	}

	cp, err := s.GetCheckpoint(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.publish(Event{
		Collection: CollectionCheckpoints, Op: OpUpdate,
		ProjectID: cp.ProjectID, ID: id,
	})
	s.logger.Info("checkpoint toggled",
		zap.String("checkpoint_id", id),
		zap.Bool("is_done", cp.IsDone),
	)
	return cp, nil
}

// DeleteCheckpoint removes a single checkpoint. Sibling orders are not renumbered.
func (s *SQLiteStore) DeleteCheckpoint(ctx context.Context, id string) error {
	var projectID string

	s.logger.Debug("deleting checkpoint", zap.String("checkpoint_id", id))

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		cp, err := getCheckpoint(ctx, tx, id)
		if err != nil {
			return err
		}
		projectID = cp.ProjectID

		if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoints WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting checkpoint %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to delete checkpoint", zap.String("checkpoint_id", id), zap.Error(err))
		}
		return err
	}

	s.events.publish(Event{
		Collection: CollectionCheckpoints, Op: OpDelete,
		ProjectID: projectID, ID: id,
	})
	s.logger.Info("checkpoint deleted",
		zap.String("project_id", projectID),
		zap.String("checkpoint_id", id),
	)
	return nil
}

// GetCheckpoint retrieves a single checkpoint by ID.
func (s *SQLiteStore) GetCheckpoint(ctx context.Context, id string) (*model.Checkpoint, error) {
	return getCheckpoint(ctx, s.db, id)
}

// ListCheckpoints returns all checkpoints of a project in ascending order.
func (s *SQLiteStore) ListCheckpoints(ctx context.Context, projectID string) ([]model.Checkpoint, error) {
	var checkpoints []model.Checkpoint
	err := s.db.SelectContext(ctx, &checkpoints,
		"SELECT "+checkpointColumns+" FROM checkpoints WHERE project_id = ? ORDER BY sort_order, rowid",
		projectID)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoints: %w", err)
	}
	return checkpoints, nil
}

func getCheckpoint(ctx context.Context, q sqlx.QueryerContext, id string) (*model.Checkpoint, error) {
	var cp model.Checkpoint
	err := sqlx.GetContext(ctx, q, &cp,
		"SELECT "+checkpointColumns+" FROM checkpoints WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checkpoint %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting checkpoint %s: %w", id, err)
	}
	return &cp, nil
}
