//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Anusha-2024/Mini-Journal/internal/adapter/mongo"
	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

func newStore(t *testing.T) *mongo.Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	s, err := mongo.Open(ctx, config.MongoConfig{
		URI:            fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database:       "journal_test",
		Collection:     "kv_blobs",
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RoundTripAndConflict(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Read(ctx, "journal")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	v1, err := s.Write(ctx, "journal", []byte("[]"), "")
	require.NoError(t, err)

	_, err = s.Write(ctx, "journal", []byte("[1]"), "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	v2, err := s.Write(ctx, "journal", []byte("[2]"), v1)
	require.NoError(t, err)

	_, err = s.Write(ctx, "journal", []byte("[3]"), v1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	blob, err := s.Read(ctx, "journal")
	require.NoError(t, err)
	assert.Equal(t, "[2]", string(blob.Value))
	assert.Equal(t, v2, blob.ETag)
}
