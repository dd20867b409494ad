package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHit(t *testing.T) {
	hits := CacheLookups.WithLabelValues("unit", "hit")
	misses := CacheLookups.WithLabelValues("unit", "miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	CacheHit("unit", true)
	CacheHit("unit", false)
	CacheHit("unit", false)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(hits))
	assert.Equal(t, missesBefore+2, testutil.ToFloat64(misses))
}

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "moveasy-test", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Timeout)

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
