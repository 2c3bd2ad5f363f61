package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/edgerunner/internal/state"
)

func TestStatusPolling(t *testing.T) {
	store := state.NewStore()
	srv := newTestServer(t, testConfig(t), store)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	get := func() state.Status {
		t.Helper()
		resp, err := client.Get(ts.URL + "/api/status")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var st state.Status
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		return st
	}

	assert.Equal(t, state.Initial(), get())

	// Every poll sees exactly the last published cycle
	for i := 1; i <= 5; i++ {
		v := float64(i) / 10
		store.Publish(state.Status{AimX: v, AimY: v, HeadTilt: v, FlushCDProgress: v})
		st := get()
		assert.Equal(t, v, st.AimX)
		assert.Equal(t, st.AimX, st.HeadTilt)
		assert.Equal(t, st.AimX, st.FlushCDProgress)
	}
}

func TestStatusWebsocket(t *testing.T) {
	cfg := testConfig(t)
	cfg.PushInterval = 5 * time.Millisecond

	store := state.NewStore()
	srv := newTestServer(t, cfg, store)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/status"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return srv.status.Clients() == 1
	}, time.Second, 5*time.Millisecond)

	store.Publish(state.Status{AimX: 0.9, HasGun: true})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var st state.Status
		require.NoError(t, json.Unmarshal(msg, &st))
		if st.HasGun {
			assert.Equal(t, 0.9, st.AimX)
			break
		}
	}

	conn.Close()
	require.Eventually(t, func() bool {
		return srv.status.Clients() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestServer_ListenAndShutdown(t *testing.T) {
	srv := New(testConfig(t), nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe("127.0.0.1:0")
	}()

	// Wait for the listener to be registered before shutting down
	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return srv.httpServer != nil
	}, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}
