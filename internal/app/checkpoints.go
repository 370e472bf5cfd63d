package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/project-tracker/internal/ui/checkpointform"
)

// saveCheckpoint creates a checkpoint at the end of its project, or edits
// the title and details of an existing one.
func (m *Model) saveCheckpoint(req checkpointform.SubmittedMsg) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if req.ID == "" {
			_, err = s.CreateCheckpoint(ctx, req.ProjectID, req.Title, req.Details)
		} else {
			_, err = s.UpdateCheckpoint(ctx, req.ID, req.Title, req.Details)
		}
		if err != nil {
			logger.Debug("save checkpoint failed",
				zap.String("project_id", req.ProjectID),
				zap.String("checkpoint_id", req.ID),
				zap.Error(err))
		}
		return storeResultMsg{statusKey: "status.saved", err: err}
	}
}

// toggleCheckpoint flips a checkpoint between done and pending.
func (m *Model) toggleCheckpoint(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.ToggleCheckpointDone(context.Background(), id)
		return storeResultMsg{statusKey: "status.saved", err: err}
	}
}

// deleteCheckpoint removes a single checkpoint.
func (m *Model) deleteCheckpoint(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.DeleteCheckpoint(context.Background(), id)
		return storeResultMsg{statusKey: "status.deleted", err: err}
	}
}
