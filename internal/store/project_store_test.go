package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/project-tracker/internal/store"
	"github.com/nhle/project-tracker/internal/testutil"
)

func TestCreateProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, "  Website \n")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Website", p.Name)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Website", got.Name)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", p.CreatedAt, got.CreatedAt)
}

func TestCreateProject_RejectsBlankName(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.CreateProject(ctx, name)
		require.ErrorIs(t, err, store.ErrEmptyName, "name %q", name)
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCreateProject_UniqueIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, err := s.CreateProject(ctx, "Same")
	require.NoError(t, err)
	b, err := s.CreateProject(ctx, "Same")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestListProjects_NewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		p, err := s.CreateProject(ctx, name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, ids[2], projects[0].ID)
	assert.Equal(t, ids[1], projects[1].ID)
	assert.Equal(t, ids[0], projects[2].ID)
}

func TestUpdateProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, "Draft")
	require.NoError(t, err)

	updated, err := s.UpdateProject(ctx, p.ID, "  Final  ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Final", updated.Name)
	assert.True(t, p.CreatedAt.Equal(updated.CreatedAt))

	_, err = s.UpdateProject(ctx, p.ID, "  ")
	require.ErrorIs(t, err, store.ErrEmptyName)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)
}

func TestUpdateProject_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.UpdateProject(context.Background(), "missing", "Name")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteProject_CascadesOnlyOwnCheckpoints(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	doomed, err := s.CreateProject(ctx, "Doomed")
	require.NoError(t, err)
	kept, err := s.CreateProject(ctx, "Kept")
	require.NoError(t, err)

	var doomedIDs []string
	for _, title := range []string{"a", "b", "c"} {
		cp, err := s.CreateCheckpoint(ctx, doomed.ID, title, "")
		require.NoError(t, err)
		doomedIDs = append(doomedIDs, cp.ID)
	}
	keptCP, err := s.CreateCheckpoint(ctx, kept.ID, "survivor", "details")
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, doomed.ID))

	_, err = s.GetProject(ctx, doomed.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	for _, id := range doomedIDs {
		_, err := s.GetCheckpoint(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	}

	remaining, err := s.ListCheckpoints(ctx, kept.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keptCP.ID, remaining[0].ID)
	assert.Equal(t, "survivor", remaining[0].Title)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, kept.ID, projects[0].ID)
}

func TestDeleteProject_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.DeleteProject(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNewSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path, nil)
	require.NoError(t, err)
	p, err := s.CreateProject(ctx, "Persistent")
	require.NoError(t, err)
	_, err = s.CreateCheckpoint(ctx, p.ID, "step", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := store.NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	version, err := reopened.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	got, err := reopened.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persistent", got.Name)

	cps, err := reopened.ListCheckpoints(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, cps, 1)
}

func TestNewSQLiteStore_InMemory(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	p, err := s.CreateProject(context.Background(), "Scratch")
	require.NoError(t, err)
	_, err = s.CreateCheckpoint(context.Background(), p.ID, "step", "")
	require.NoError(t, err)
}
