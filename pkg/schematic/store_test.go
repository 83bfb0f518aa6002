package schematic

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mocks "github.com/cbodonnell/stoneworks/mocks/github.com/cbodonnell/stoneworks/pkg/repositories"
	"github.com/cbodonnell/stoneworks/pkg/repositories"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"house", true},
		{"House_2-b", true},
		{"", false},
		{"../etc", false},
		{"a b", false},
		{"x.schem", false},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidName, tt.name)
		}
	}
}

func newTestStore(t *testing.T, compress bool) (*Store, *mocks.Repository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "schematics")
	repository := mocks.NewRepository(t)
	store, err := NewStore(NewStoreOptions{Dir: dir, Compress: compress, Repository: repository})
	require.NoError(t, err)
	return store, repository, dir
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store, repository, dir := newTestStore(t, true)
	worlds := testWorlds("overworld")
	s := testSchematic(&world.Location{World: "overworld", Vec: mgl64.Vec3{1.5, 64, -2}})

	var saved *models.Schematic
	repository.EXPECT().GetSchematic(ctx, "tower").Return(nil, &repositories.ErrNotFound{}).Once()
	repository.EXPECT().SaveSchematic(ctx, mock.Anything).RunAndReturn(func(_ context.Context, record *models.Schematic) error {
		saved = record
		return nil
	}).Once()

	record, err := store.Save(ctx, "tower", s)
	require.NoError(t, err)
	assert.Same(t, saved, record)
	assert.Equal(t, "tower", record.Name)
	assert.Equal(t, filepath.Join(dir, "tower.schem.zst"), record.Path)
	assert.Equal(t, int32(3), record.Entries)
	assert.True(t, record.Compressed)
	assert.True(t, record.HasAnchor)
	assert.Equal(t, "overworld", record.World)
	assert.Equal(t, 1.5, record.X)
	assert.NotEmpty(t, record.ID)
	assert.FileExists(t, record.Path)

	repository.EXPECT().GetSchematic(ctx, "tower").Return(record, nil).Once()
	loaded, err := store.Load(ctx, "tower", worlds)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), loaded.Entries())
}

func TestStore_SaveRemovesReplacedFile(t *testing.T) {
	ctx := context.Background()
	store, repository, dir := newTestStore(t, false)

	old := filepath.Join(dir, "tower.schem.zst")
	require.NoError(t, WriteFile(old, testSchematic(nil)))

	repository.EXPECT().GetSchematic(ctx, "tower").Return(&models.Schematic{Name: "tower", Path: old}, nil).Once()
	repository.EXPECT().SaveSchematic(ctx, mock.Anything).Return(nil).Once()

	record, err := store.Save(ctx, "tower", testSchematic(nil))
	require.NoError(t, err)
	assert.False(t, record.Compressed)
	assert.False(t, record.HasAnchor)
	assert.NoFileExists(t, old)
	assert.FileExists(t, filepath.Join(dir, "tower.schem"))
}

func TestStore_SaveErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid name", func(t *testing.T) {
		store, _, _ := newTestStore(t, false)
		_, err := store.Save(ctx, "../x", testSchematic(nil))
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("repository failure", func(t *testing.T) {
		store, repository, _ := newTestStore(t, false)
		repository.EXPECT().GetSchematic(ctx, "x").Return(nil, errors.New("connection refused")).Once()
		_, err := store.Save(ctx, "x", testSchematic(nil))
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("record failure", func(t *testing.T) {
		store, repository, _ := newTestStore(t, false)
		repository.EXPECT().GetSchematic(ctx, "x").Return(nil, &repositories.ErrNotFound{}).Once()
		repository.EXPECT().SaveSchematic(ctx, mock.Anything).Return(errors.New("disk full")).Once()
		_, err := store.Save(ctx, "x", testSchematic(nil))
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestStore_LoadErrors(t *testing.T) {
	ctx := context.Background()
	store, repository, dir := newTestStore(t, false)

	repository.EXPECT().GetSchematic(ctx, "missing").Return(nil, &repositories.ErrNotFound{}).Once()
	_, err := store.Load(ctx, "missing", nil)
	assert.True(t, repositories.IsNotFound(err))

	// a file written by a newer format version
	path := filepath.Join(dir, "future.schem")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 2, 0, 0, 0, 0, 0}, 0o644))
	repository.EXPECT().GetSchematic(ctx, "future").Return(&models.Schematic{Name: "future", Path: path}, nil).Once()
	_, err = store.Load(ctx, "future", nil)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestStore_ListDelete(t *testing.T) {
	ctx := context.Background()
	store, repository, dir := newTestStore(t, false)

	path := filepath.Join(dir, "tower.schem")
	require.NoError(t, WriteFile(path, testSchematic(nil)))
	records := []*models.Schematic{{Name: "tower", Path: path}}

	repository.EXPECT().ListSchematics(ctx).Return(records, nil).Once()
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, list)

	repository.EXPECT().GetSchematic(ctx, "tower").Return(records[0], nil).Once()
	repository.EXPECT().DeleteSchematic(ctx, "tower").Return(nil).Once()
	require.NoError(t, store.Delete(ctx, "tower"))
	assert.NoFileExists(t, path)

	repository.EXPECT().GetSchematic(ctx, "tower").Return(nil, &repositories.ErrNotFound{}).Once()
	assert.True(t, repositories.IsNotFound(store.Delete(ctx, "tower")))
}
