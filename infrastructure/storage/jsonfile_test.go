package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framer-go/core/geometry"
	"framer-go/domain/dataset"
	"framer-go/domain/region"
)

func TestJSONFileRepository_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "data.json")
	repo := NewJSONFileRepository(path)
	ctx := context.Background()

	rec := dataset.NewRecord()
	rec.Put("img1.jpg", []region.Normalized{
		{UnitRect: geometry.UnitRect{X: 0.05, Y: 0.25, Width: 0.5, Height: 0.5}, Label: "cat"},
	})
	rec.Put("img0.jpg", nil)

	require.NoError(t, repo.Save(ctx, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"img1.jpg":[[0.05,0.25,0.5,0.5,"cat"]],"img0.jpg":[]}`, string(data))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"img1.jpg", "img0.jpg"}, loaded.Images())

	got, ok := loaded.Get("img1.jpg")
	require.True(t, ok)
	assert.Equal(t, "cat", got[0].Label)
	assert.InDelta(t, 0.05, got[0].X, 1e-12)
}

func TestJSONFileRepository_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	repo := NewJSONFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), dataset.NewRecord()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestJSONFileRepository_Indent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	repo := NewJSONFileRepository(path, WithIndent())

	rec := dataset.NewRecord()
	rec.Put("a.png", nil)
	require.NoError(t, repo.Save(context.Background(), rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a.png\": []\n}\n", string(data))
}

func TestJSONFileRepository_LoadMissing(t *testing.T) {
	repo := NewJSONFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestJSONFileRepository_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a.png": [[1, 2]]}`), 0o644))

	_, err := NewJSONFileRepository(path).Load(context.Background())
	assert.ErrorIs(t, err, dataset.ErrFormat)
}

func TestJSONFileRepository_OverwriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	repo := NewJSONFileRepository(path)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := dataset.NewRecord()
		rec.Put("a.png", make([]region.Normalized, i))
		require.NoError(t, repo.Save(ctx, rec))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	got, _ := loaded.Get("a.png")
	assert.Len(t, got, 2)
}

func TestJSONFileRepository_Location(t *testing.T) {
	assert.Equal(t, "x/data.json", NewJSONFileRepository("x/data.json").Location())
}
