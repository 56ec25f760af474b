package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/retrogg/pkg/store"
)

func testServerConfig(port int) Config {
	return Config{
		Bind:         "127.0.0.1",
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Hostname:     "gg.example.org",
		HostIP:       "127.0.0.1",
		GGPort:       8074,
	}
}

func TestServerLifecycle(t *testing.T) {
	st, err := store.New(&store.Config{DSN: filepath.Join(t.TempDir(), "gg.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	server := NewServer(testServerConfig(18074), st, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	// Give the listener time to come up
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/appsvc/appmsg4.asp", server.Port()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0 0 127.0.0.1:8074 127.0.0.1", string(body))

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServerStopIsIdempotent(t *testing.T) {
	server := NewServer(testServerConfig(18075), nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, server.Stop(ctx))
	assert.NoError(t, server.Stop(ctx))
}

func TestServerAppliesDefaults(t *testing.T) {
	server := NewServer(Config{Port: 19998, HostIP: "10.0.0.1"}, nil, nil)

	assert.Equal(t, 19998, server.Port())
	assert.Equal(t, "0.0.0.0:19998", server.server.Addr)
	assert.Equal(t, "gg-retro.local", server.config.Hostname)
	assert.Equal(t, 8074, server.config.GGPort)
	assert.Equal(t, "dev", server.config.Version)
}

func TestServerResolvesAdvertisedAddress(t *testing.T) {
	server := NewServer(Config{Port: 19999}, nil, nil)

	// Either the outbound address or the loopback fallback, never empty.
	assert.NotEmpty(t, server.config.HostIP)
}
