package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One test function keeps the before/after ordering of the global
// registry deterministic.
func TestRegistryLifecycle(t *testing.T) {
	assert.False(t, IsEnabled(), "metrics must start disabled")
	assert.Nil(t, GetRegistry())

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	InitRegistry()
	assert.True(t, IsEnabled())
	require.NotNil(t, GetRegistry())

	// Calling again keeps the same registry.
	reg := GetRegistry()
	InitRegistry()
	assert.Same(t, reg, GetRegistry())

	rec = httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
