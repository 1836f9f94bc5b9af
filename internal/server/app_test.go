package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_UnknownStorage(t *testing.T) {
	c := testConfig()
	c.StorageType = "tape"

	_, err := NewApp(context.Background(), c)
	require.ErrorContains(t, err, "storage init error")
}

func TestNewApp_CacheWrapsStore(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, app.messages)
	require.Equal(t, config.StorageMemory, app.repos.Backend())
	require.IsType(t, &messages.MemoryRepository{}, app.repos.Messages())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
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
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestApp_RunStopsWhenServerFails(t *testing.T) {
	c := testConfig()
	c.EndpointAddrHTTP = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after server failure")
	}
}
