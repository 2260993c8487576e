package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedwatch/server/mocks"
)

// testServer creates a server instance using the actual New function
func testServer(t *testing.T, database Database, sched Scheduler) *Server {
	t.Helper()
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}
	return New(cfg, database, sched, "test", false)
}

func TestServer_New(t *testing.T) {
	srv := New(&mocks.ConfigProviderMock{}, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	srv := New(cfg, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, "1.2.3", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/status")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "feedwatch", resp.Header.Get("App-Name"))
	assert.Contains(t, string(body), `"version":"1.2.3"`)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_RunBadAddress(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "bad-address:-1", time.Second },
	}
	srv := New(cfg, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, "test", false)
	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestServer_statusHandler(t *testing.T) {
	srv := testServer(t, &mocks.DatabaseMock{}, &mocks.SchedulerMock{})

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Success bool           `json:"success"`
		Message map[string]any `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message["status"])
	assert.Equal(t, "test", resp.Message["version"])
	assert.NotEmpty(t, resp.Message["time"])
}

func TestServer_SizeLimit(t *testing.T) {
	srv := testServer(t, &mocks.DatabaseMock{}, &mocks.SchedulerMock{})

	body := `{"name":"` + string(make([]byte, 70*1024)) + `"}`
	req := httptest.NewRequest("POST", "/api/v1/feeds/follow", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
