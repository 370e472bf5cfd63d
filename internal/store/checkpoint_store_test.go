package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/store"
	"github.com/nhle/project-tracker/internal/testutil"
)

func newProject(t *testing.T, s store.Store, name string) *model.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), name)
	require.NoError(t, err)
	return p
}

func TestCreateCheckpoint(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	cp, err := s.CreateCheckpoint(ctx, p.ID, "  Landing page ", "  hero + pricing \n")
	require.NoError(t, err)
	assert.NotEmpty(t, cp.ID)
	assert.Equal(t, p.ID, cp.ProjectID)
	assert.Equal(t, "Landing page", cp.Title)
	assert.Equal(t, "hero + pricing", cp.Details)
	assert.False(t, cp.IsDone)
	assert.Equal(t, 0, cp.Order)

	got, err := s.GetCheckpoint(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, cp.Title, got.Title)
	assert.Equal(t, cp.Details, got.Details)
	assert.Equal(t, cp.Order, got.Order)
	assert.False(t, got.IsDone)
}

func TestCreateCheckpoint_Validation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	_, err := s.CreateCheckpoint(ctx, p.ID, "   ", "details")
	require.ErrorIs(t, err, store.ErrEmptyTitle)

	_, err = s.CreateCheckpoint(ctx, "missing-project", "Title", "")
	require.ErrorIs(t, err, store.ErrNotFound)

	cps, err := s.ListCheckpoints(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cps)
}

func TestCreateCheckpoint_OrderSequence(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	for want := 0; want < 4; want++ {
		cp, err := s.CreateCheckpoint(ctx, p.ID, "step", "")
		require.NoError(t, err)
		assert.Equal(t, want, cp.Order)
	}
}

func TestCreateCheckpoint_OrderNotReusedAfterDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	first, err := s.CreateCheckpoint(ctx, p.ID, "first", "")
	require.NoError(t, err)
	require.Equal(t, 0, first.Order)

	second, err := s.CreateCheckpoint(ctx, p.ID, "second", "")
	require.NoError(t, err)
	require.Equal(t, 1, second.Order)

	require.NoError(t, s.DeleteCheckpoint(ctx, first.ID))

	third, err := s.CreateCheckpoint(ctx, p.ID, "third", "")
	require.NoError(t, err)
	assert.Equal(t, 2, third.Order)

	cps, err := s.ListCheckpoints(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, cps, 2)
	assert.Equal(t, []int{1, 2}, []int{cps[0].Order, cps[1].Order}, "gaps are kept, nothing renumbered")
}

func TestCreateCheckpoint_OrderIsPerProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	a := newProject(t, s, "A")
	b := newProject(t, s, "B")

	for i := 0; i < 3; i++ {
		_, err := s.CreateCheckpoint(ctx, a.ID, "a", "")
		require.NoError(t, err)
	}

	cp, err := s.CreateCheckpoint(ctx, b.ID, "b", "")
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Order)
}

func TestListCheckpoints_SortedByOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	var created []*model.Checkpoint
	for _, title := range []string{"one", "two", "three", "four"} {
		cp, err := s.CreateCheckpoint(ctx, p.ID, title, "")
		require.NoError(t, err)
		created = append(created, cp)
	}
	// Edits and toggles must not disturb the sequence.
	_, err := s.UpdateCheckpoint(ctx, created[0].ID, "one (edited)", "")
	require.NoError(t, err)
	_, err = s.ToggleCheckpointDone(ctx, created[2].ID)
	require.NoError(t, err)

	cps, err := s.ListCheckpoints(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, cps, 4)
	for i := 1; i < len(cps); i++ {
		assert.Less(t, cps[i-1].Order, cps[i].Order)
	}
	assert.Equal(t, "one (edited)", cps[0].Title)
	assert.Equal(t, "four", cps[3].Title)
}

func TestListCheckpoints_UnknownProjectIsEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	cps, err := s.ListCheckpoints(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, cps)
}

func TestToggleCheckpointDone_OnlyFlipsIsDone(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	_, err := s.CreateCheckpoint(ctx, p.ID, "before", "")
	require.NoError(t, err)
	cp, err := s.CreateCheckpoint(ctx, p.ID, "Deploy", "to production")
	require.NoError(t, err)

	toggled, err := s.ToggleCheckpointDone(ctx, cp.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsDone)
	assert.Equal(t, cp.ID, toggled.ID)
	assert.Equal(t, cp.ProjectID, toggled.ProjectID)
	assert.Equal(t, cp.Title, toggled.Title)
	assert.Equal(t, cp.Details, toggled.Details)
	assert.Equal(t, cp.Order, toggled.Order)

	back, err := s.ToggleCheckpointDone(ctx, cp.ID)
	require.NoError(t, err)
	assert.False(t, back.IsDone)

	cps, err := s.ListCheckpoints(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, cps[0].IsDone, "sibling untouched")
}

func TestToggleCheckpointDone_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.ToggleCheckpointDone(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateCheckpoint(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	cp, err := s.CreateCheckpoint(ctx, p.ID, "Draft", "old")
	require.NoError(t, err)
	_, err = s.ToggleCheckpointDone(ctx, cp.ID)
	require.NoError(t, err)

	updated, err := s.UpdateCheckpoint(ctx, cp.ID, " Final ", "")
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Empty(t, updated.Details)
	assert.True(t, updated.IsDone, "edit keeps completion")
	assert.Equal(t, cp.Order, updated.Order)
	assert.Equal(t, p.ID, updated.ProjectID)

	_, err = s.UpdateCheckpoint(ctx, cp.ID, "", "x")
	require.ErrorIs(t, err, store.ErrEmptyTitle)

	_, err = s.UpdateCheckpoint(ctx, "missing", "Title", "")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCheckpoint(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	p := newProject(t, s, "Website")

	a, err := s.CreateCheckpoint(ctx, p.ID, "a", "")
	require.NoError(t, err)
	b, err := s.CreateCheckpoint(ctx, p.ID, "b", "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCheckpoint(ctx, a.ID))

	cps, err := s.ListCheckpoints(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, cps, 1)
	assert.Equal(t, b.ID, cps[0].ID)
	assert.Equal(t, 1, cps[0].Order)

	err = s.DeleteCheckpoint(ctx, a.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetProject(ctx, p.ID)
	require.NoError(t, err, "project survives checkpoint deletion")
}
