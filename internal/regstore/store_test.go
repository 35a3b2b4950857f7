package regstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionforge/motionforge/schema"
)

func testArtifact() *schema.Artifact {
	return &schema.Artifact{
		Meta: schema.ArtifactMeta{
			SourceName:    "walk_forward.csv",
			SchemaID:      schema.G1Skeleton().ID,
			SchemaVersion: schema.G1Skeleton().Version,
			CropStart:     2.0,
			CropEnd:       10.0,
			ArmsOnly:      false,
			CreatedAt:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
			ToolVersion:   "test",
		},
		FrameRate:  50.0,
		Timestamps: []float64{0.0, 0.02, 0.04},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "registry.db")
	store, err := NewStore(context.Background(), schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreUploadFetch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	blob := []byte("parquet-bytes")
	versionID, err := store.Upload(ctx, "walk_forward", blob, testArtifact())
	require.NoError(t, err)
	assert.NotEmpty(t, versionID)

	got, err := store.Fetch(ctx, versionID)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestStoreUploadEmptyName(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Upload(context.Background(), "", []byte("x"), testArtifact())
	assert.Error(t, err)
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	art := testArtifact()
	_, err := store.Upload(ctx, "clip_a", []byte("aaaa"), art)
	require.NoError(t, err)

	art2 := testArtifact()
	art2.Meta.CreatedAt = art.Meta.CreatedAt.Add(time.Hour)
	art2.Meta.ArmsOnly = true
	_, err = store.Upload(ctx, "clip_b", []byte("bb"), art2)
	require.NoError(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "clip_b", records[0].Name)
	assert.True(t, records[0].ArmsOnly)
	assert.Equal(t, int64(2), records[0].SizeBytes)
	assert.Equal(t, "clip_a", records[1].Name)
	assert.Equal(t, 3, records[1].NumFrames)
	assert.Equal(t, 50.0, records[1].FrameRate)
}

func TestStoreStatusAndClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Upload(ctx, "clip_a", []byte("aaaa"), testArtifact())
	require.NoError(t, err)
	_, err = store.Upload(ctx, "clip_b", []byte("bb"), testArtifact())
	require.NoError(t, err)

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, 2, status.Artifacts)
	assert.Equal(t, int64(6), status.TotalBytes)

	require.NoError(t, store.Clear(ctx))
	status, err = store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Artifacts)
	assert.Equal(t, int64(0), status.TotalBytes)
}

func TestStoreNoneBackend(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Upload(ctx, "clip", []byte("x"), testArtifact())
	assert.Error(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
