package diag

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRunOk(t *testing.T) {
	srv := newStatusServer(t, http.StatusOK)

	result := Check{Name: "ChromaDB", URL: srv.URL, SuccessText: "ChromaDB is running and accessible"}.Run()

	assert.Equal(t, StatusSuccess, result.Status)
	assert.True(t, result.OK())
	assert.Contains(t, result.Message, "ChromaDB")
}

func TestCheckRunErrorStatusCode(t *testing.T) {
	srv := newStatusServer(t, http.StatusServiceUnavailable)

	result := Check{Name: "Milvus", URL: srv.URL}.Run()

	assert.Equal(t, StatusError, result.Status)
	assert.False(t, result.OK())
	assert.Equal(t, "Milvus returned status 503", result.Message)
}

func TestCheckRunConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	result := Check{Name: "Milvus Attu UI", URL: srv.URL}.Run()

	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Message, "Failed to connect to Milvus Attu UI:")
}

func TestCheckRunTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * Timeout):
		}
	}))
	t.Cleanup(srv.Close)

	start := time.Now()
	result := Check{Name: "ChromaDB", URL: srv.URL}.Run()

	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Message, "Failed to connect to ChromaDB:")
	assert.Less(t, time.Since(start), 2*Timeout, "Run must give up after the configured timeout")
}

func TestStackChecksCoverTheFixedTargets(t *testing.T) {
	checks := StackChecks()

	require.Len(t, checks, 3)
	assert.Equal(t, "http://localhost:8000/api/v1/heartbeat", checks[0].URL)
	assert.Equal(t, "http://localhost:9091/healthz", checks[1].URL)
	assert.Equal(t, "http://localhost:3000", checks[2].URL)
}

func TestAllSuccessful(t *testing.T) {
	ok := Result{Status: StatusSuccess}
	fail := Result{Status: StatusError}

	assert.True(t, AllSuccessful([]Result{ok, ok, ok}))
	assert.False(t, AllSuccessful([]Result{fail, ok, ok}))
	assert.False(t, AllSuccessful([]Result{fail, fail, fail}))
	assert.True(t, AllSuccessful(nil))
}

// Scenario: one unreachable target must not prevent the remaining
// targets from being tested.
func TestChecksRunIndependently(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()
	up := newStatusServer(t, http.StatusOK)

	checks := []Check{
		{Name: "ChromaDB", URL: down.URL},
		{Name: "Milvus", URL: up.URL, SuccessText: "Milvus is running and accessible"},
		{Name: "Milvus Attu UI", URL: up.URL, SuccessText: "Milvus Attu UI is accessible"},
	}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		results = append(results, c.Run())
	}

	assert.False(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.True(t, results[2].OK())
	assert.False(t, AllSuccessful(results))
}

func newStatusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}
