package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/progress"
	"github.com/nhle/project-tracker/internal/store"
)

// WriteReport prints a table with one row per project, newest first, with
// its percent and completed count.
func WriteReport(ctx context.Context, w io.Writer, s store.Store, loc *i18n.Localizer) error {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, loc.T("report.empty"))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(loc.T("project.section"), loc.T("report.progress"), loc.T("report.completed"))
	for _, p := range projects {
		cps, err := s.ListCheckpoints(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("listing checkpoints of %s: %w", p.ID, err)
		}
		sum := progress.Compute(cps)
		t.Row(
			p.Name,
			loc.T("progress.percent", sum.Percent()),
			loc.T("progress.completed", sum.Completed, sum.Total),
		)
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
