//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/motionforge/motionforge/internal/regstore"
	"github.com/motionforge/motionforge/schema"
)

// TestRegistryWithMySQL exercises the registry store against a real
// MySQL server.
func TestRegistryWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "motionforge",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/motionforge?parseTime=true", host, port.Port())
	exerciseRegistry(t, ctx, schema.MySQLBackend, connStr)
}

// TestRegistryWithPostgres exercises the registry store against a real
// PostgreSQL server.
func TestRegistryWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
	exerciseRegistry(t, ctx, schema.PostgreSQLBackend, connStr)
}

// exerciseRegistry runs migrations plus a full upload/list/fetch/clear
// round trip against the given backend.
func exerciseRegistry(t *testing.T, ctx context.Context, backend schema.RegistryBackend, connStr string) {
	t.Helper()

	require.NoError(t, regstore.Migrate(backend, connStr, -1))

	store, err := regstore.NewStore(ctx, backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Clear(ctx))

	art := &schema.Artifact{
		FrameRate:  50,
		Timestamps: []float64{0, 0.02, 0.04},
		Meta: schema.ArtifactMeta{
			SourceName:    "walk.csv",
			SchemaID:      "g1_29dof",
			SchemaVersion: 1,
			CropEnd:       10,
			CreatedAt:     time.Now().UTC(),
			ToolVersion:   "integration",
		},
	}
	blob := []byte("parquet-bytes-stand-in")

	versionID, err := store.Upload(ctx, "walk_forward", blob, art)
	require.NoError(t, err)
	require.NotEmpty(t, versionID)

	got, err := store.Fetch(ctx, versionID)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "walk_forward", records[0].Name)
	assert.Equal(t, versionID, records[0].VersionID)
	assert.Equal(t, int64(len(blob)), records[0].SizeBytes)

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(backend), status.Backend)
	assert.Equal(t, 1, status.Artifacts)

	require.NoError(t, store.Clear(ctx))
	status, err = store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Artifacts)
}
