package projectlist

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/keys"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/progress"
	"github.com/nhle/project-tracker/internal/testutil"
	"github.com/nhle/project-tracker/internal/ui"
)

func spanish() *i18n.Localizer {
	return i18n.MustLoad().Localizer("es")
}

func TestRenderRow_ShowsPercentAndCounts(t *testing.T) {
	r := Row{
		Project: model.Project{ID: "p1", Name: "Website"},
		Summary: progress.FromCounts(2, 3),
	}

	out := renderRow(r, 60, false, spanish())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Website")
	assert.Contains(t, lines[0], "67%")
	assert.Contains(t, lines[1], "2/3 completados")
	assert.LessOrEqual(t, lipgloss.Width(out), 60)
}

func TestRenderRow_BlankNameUsesPlaceholder(t *testing.T) {
	out := renderRow(Row{Project: model.Project{Name: " "}}, 60, true, spanish())
	assert.Contains(t, out, "Sin nombre")
	assert.Contains(t, out, "0%")
	assert.Contains(t, out, "0/0 completados")
}

func TestReload_ComputesProgressPerProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	web, err := s.CreateProject(ctx, "Website")
	require.NoError(t, err)
	for _, title := range []string{"Diseño", "Landing", "Deploy"} {
		_, err := s.CreateCheckpoint(ctx, web.ID, title, "")
		require.NoError(t, err)
	}
	cps, err := s.ListCheckpoints(ctx, web.ID)
	require.NoError(t, err)
	for _, cp := range cps[:2] {
		_, err := s.ToggleCheckpointDone(ctx, cp.ID)
		require.NoError(t, err)
	}
	_, err = s.CreateProject(ctx, "Empty")
	require.NoError(t, err)

	m := New(s, keys.DefaultKeyMap(spanish()), spanish(), 80, 24)
	msg := m.Reload()()
	loaded, ok := msg.(LoadedMsg)
	require.True(t, ok, "got %T", msg)
	require.Len(t, loaded.Rows, 2)

	assert.Equal(t, "Empty", loaded.Rows[0].Project.Name)
	assert.Equal(t, 0.0, loaded.Rows[0].Summary.Fraction)
	assert.Equal(t, "Website", loaded.Rows[1].Project.Name)
	assert.Equal(t, 67, loaded.Rows[1].Summary.Percent())

	m, _ = m.Update(loaded)
	assert.Len(t, m.Rows(), 2)
}

func TestReload_StoreErrorBecomesErrorMsg(t *testing.T) {
	s := testutil.NewTestStore(t)
	require.NoError(t, s.Close())

	m := New(s, keys.DefaultKeyMap(spanish()), spanish(), 80, 24)
	_, ok := m.Reload()().(ui.ErrorMsg)
	assert.True(t, ok)
}

func TestKeys_EmitIntents(t *testing.T) {
	m := New(testutil.NewTestStore(t), keys.DefaultKeyMap(spanish()), spanish(), 80, 24)
	m, _ = m.Update(LoadedMsg{Rows: []Row{{Project: model.Project{ID: "p1", Name: "Website"}}}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenMsg{ProjectID: "p1"}, cmd())

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.True(t, m2.Capturing())
	assert.Empty(t, m2.editingID)

	m3, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.True(t, m3.Capturing())
	assert.Equal(t, "p1", m3.editingID)
	assert.Equal(t, "Website", m3.fb.name)

	m4, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.True(t, m4.Capturing())
	assert.Equal(t, "p1", m4.target.ID)
	assert.False(t, m4.fb.confirm)
}

func TestView_EmptyState(t *testing.T) {
	m := New(testutil.NewTestStore(t), keys.DefaultKeyMap(spanish()), spanish(), 80, 24)
	assert.Contains(t, m.View(), "No hay proyectos todavía")
}

func newListWithProject(t *testing.T) Model {
	t.Helper()
	m := New(testutil.NewTestStore(t), keys.DefaultKeyMap(spanish()), spanish(), 80, 24)
	m, _ = m.Update(LoadedMsg{Rows: []Row{{Project: model.Project{ID: "p1", Name: "Website"}}}})
	return m
}

func saveMsgs(out []tea.Msg) []SaveMsg {
	var saves []SaveMsg
	for _, msg := range out {
		if s, ok := msg.(SaveMsg); ok {
			saves = append(saves, s)
		}
	}
	return saves
}

func TestForm_BlankNameKeepsFormOpen(t *testing.T) {
	m := newListWithProject(t)

	m, out := testutil.Send(m, Model.Update,
		testutil.Type("n"), testutil.Type("   "), testutil.Key(tea.KeyEnter))

	assert.True(t, m.Capturing())
	assert.Empty(t, saveMsgs(out))
}

func TestForm_SubmitTrimsName(t *testing.T) {
	m := newListWithProject(t)

	m, out := testutil.Send(m, Model.Update,
		testutil.Type("n"), testutil.Type("  Website "), testutil.Key(tea.KeyEnter))

	assert.False(t, m.Capturing())
	assert.Equal(t, []SaveMsg{{Name: "Website"}}, saveMsgs(out))
}

func TestForm_EscCancels(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"new", "n"},
		{"edit", "e"},
		{"delete", "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newListWithProject(t)

			m, _ = testutil.Send(m, Model.Update, testutil.Type(tt.key))
			require.True(t, m.Capturing())

			m, out := testutil.Send(m, Model.Update, testutil.Key(tea.KeyEsc))
			assert.False(t, m.Capturing())
			assert.Nil(t, m.form)
			for _, msg := range out {
				assert.Nil(t, deleteOrSave(msg))
			}
		})
	}
}

// deleteOrSave returns msg when it would write to the store, else nil.
func deleteOrSave(msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case SaveMsg, DeleteMsg:
		return msg
	}
	return nil
}
