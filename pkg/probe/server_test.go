package probe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlabs/vexcheck/internal/config"
)

type staticProbe struct {
	err error
}

func (p *staticProbe) Exec() error {
	return p.err
}

func TestHandleStatusAllProbesHealthy(t *testing.T) {
	handler := &Handler{
		probes: map[string]Probe{
			"chroma": &staticProbe{},
			"milvus": &staticProbe{},
		},
	}

	rec := httptest.NewRecorder()
	handler.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	response := StatusResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Probes, 2)
	assert.True(t, response.Probes["chroma"].OK)
	assert.True(t, response.Probes["milvus"].OK)
}

func TestHandleStatusReportsFailingProbe(t *testing.T) {
	handler := &Handler{
		probes: map[string]Probe{
			"chroma": &staticProbe{},
			"milvus": &staticProbe{err: assert.AnError},
		},
	}

	rec := httptest.NewRecorder()
	handler.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	response := StatusResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Probes["chroma"].OK)
	assert.False(t, response.Probes["milvus"].OK)
	assert.Equal(t, assert.AnError.Error(), response.Probes["milvus"].Message)
}

func TestHandleWatchPushesStatusDocuments(t *testing.T) {
	handler := &Handler{
		probes: map[string]Probe{
			"chroma": &staticProbe{},
		},
	}

	srv := httptest.NewServer(handler.HandleWatch(10 * time.Millisecond))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 2; i++ {
		response := StatusResponse{}
		require.NoError(t, conn.ReadJSON(&response))
		require.Len(t, response.Probes, 1)
		assert.True(t, response.Probes["chroma"].OK)
	}
}

func TestNewProbeHandlerBuildsProbesFromConfig(t *testing.T) {
	stack := &config.Stack{
		Probes: []config.Probe{
			{Name: "chroma", Wait: true, HTTP: &config.HTTP{Host: config.Host{Hostname: "localhost", Port: "8000"}, Path: "/api/v1/heartbeat"}},
			{Name: "cache", Redis: &config.Redis{Host: config.Host{Hostname: "localhost", Port: "6379"}}},
			{Name: "meta", MySQL: &config.MySQL{Host: config.Host{Hostname: "localhost", Port: "3306"}}},
			{Name: "docs", MongoDB: &config.MongoDB{Host: config.Host{Hostname: "localhost", Port: "27017"}}},
			{Name: "queue", Amqp: &config.Amqp{Host: config.Host{Hostname: "localhost", Port: "5672"}}},
			{Name: "mail", SMTP: &config.SMTP{Host: config.Host{Hostname: "localhost", Port: "1025"}}},
			{Name: "data", Filesystem: t.TempDir()},
		},
	}

	handler, err := NewProbeHandler(stack)

	require.NoError(t, err)
	assert.Len(t, handler.probes, 7)
	assert.Len(t, handler.waitProbes, 1)
	assert.Contains(t, handler.waitProbes, "chroma")
}

func TestNewProbeHandlerRejectsInvalidHTTPProbe(t *testing.T) {
	stack := &config.Stack{
		Probes: []config.Probe{
			{Name: "broken", HTTP: &config.HTTP{Host: config.Host{Hostname: "localhost"}, Timeout: "nope"}},
		},
	}

	_, err := NewProbeHandler(stack)

	assert.ErrorContains(t, err, `invalid http probe "broken"`)
}

func TestWaitReturnsOnceAllWaitProbesPass(t *testing.T) {
	handler := &Handler{
		waitProbes: map[string]Probe{"chroma": &staticProbe{}},
	}

	done := make(chan error, 1)
	go func() {
		done <- handler.Wait(make(chan os.Signal, 1))
	}()

	select {
	case err := <-done:
		assert.NoError(t, err, "Wait")
	case <-time.After(3 * time.Second):
		t.Fatal("Wait did not return although all probes pass")
	}
}

func TestWaitAbortsOnInterrupt(t *testing.T) {
	handler := &Handler{
		waitProbes: map[string]Probe{"chroma": &staticProbe{err: assert.AnError}},
	}

	interrupt := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- handler.Wait(interrupt)
	}()

	interrupt <- syscall.SIGINT

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "readiness interrupted")
	case <-time.After(3 * time.Second):
		t.Fatal("Wait did not return after interrupt")
	}
}
