package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/project-tracker/internal/ui/projectlist"
)

// storeResultMsg is sent after a write finishes. On success statusKey names
// the catalog message shown in the header.
type storeResultMsg struct {
	statusKey string
	err       error
}

// saveProject creates a project, or renames it when req carries an ID.
func (m *Model) saveProject(req projectlist.SaveMsg) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if req.ID == "" {
			_, err = s.CreateProject(ctx, req.Name)
		} else {
			_, err = s.UpdateProject(ctx, req.ID, req.Name)
		}
		if err != nil {
			logger.Debug("save project failed", zap.String("project_id", req.ID), zap.Error(err))
		}
		return storeResultMsg{statusKey: "status.saved", err: err}
	}
}

// deleteProject removes a project together with its checkpoints.
func (m *Model) deleteProject(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.DeleteProject(context.Background(), id)
		return storeResultMsg{statusKey: "status.deleted", err: err}
	}
}
