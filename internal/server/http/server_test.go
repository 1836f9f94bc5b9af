package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/toldya/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestServer_ServesAndStopsOnCancel(t *testing.T) {
	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(listen.Addr().String(), newTestRouter(&stubService{}), logging.Nop{}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, listen) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", listen.Addr()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestServer_RunBadAddress(t *testing.T) {
	s := NewServer("127.0.0.1:99999", newTestRouter(&stubService{}), logging.Nop{}, time.Second)
	require.Error(t, s.Run(context.Background()))
}
