package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bloglist/internal/server/config"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.HealthAddrGRPC = "127.0.0.1:0"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, app.repomanager)
	assert.Nil(t, app.archiver)
	assert.True(t, app.postService.RequiresOwnerOnUpdate())
}

func TestNewApp_OpenPolicyAndArchive(t *testing.T) {
	c := testConfig()
	c.UpdatePolicy = config.UpdatePolicyOpen
	c.S3Bucket = "reports"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, app.postService.RequiresOwnerOnUpdate())
	assert.NotNil(t, app.archiver)
}

func TestNewApp_Errors(t *testing.T) {
	c := testConfig()
	c.LogFormat = "xml"
	_, err := NewApp(context.Background(), c)
	require.ErrorContains(t, err, "logger init error")

	c = testConfig()
	c.Storage = "mongo"
	_, err = NewApp(context.Background(), c)
	require.ErrorContains(t, err, "unknown storage")

	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })
	openPostgres = func(ctx context.Context, dsn string, maxConns int32) (repomanager.RepositoryManager, error) {
		assert.Equal(t, c.DatabaseDSN, dsn)
		assert.Equal(t, c.DatabaseMaxConns, maxConns)
		return nil, errors.New("connection refused")
	}
	c = testConfig()
	c.Storage = config.StoragePostgres
	_, err = NewApp(context.Background(), c)
	require.ErrorContains(t, err, "connection refused")
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
