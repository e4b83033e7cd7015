package web_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordsearch/internal/model"
)

// TestSSE_EndpointHeaders verifies the SSE endpoint returns correct headers
func TestSSE_EndpointHeaders(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("TestPlayer")
	gameID := ts.createGame(8, 3)

	req := httptest.NewRequest(http.MethodGet, "/games/"+gameID+"/events", nil)
	ts.cookies.addTo(req)

	// Use a context with timeout since SSE is a long-running connection
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
	assert.Contains(t, rr.Body.String(), "event: connected")
}

// TestSSE_RequiresAuthentication verifies signed-out users cannot subscribe
func TestSSE_RequiresAuthentication(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame(8, 3)

	req := httptest.NewRequest(http.MethodGet, "/games/"+gameID+"/events", nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/?next=")
}

// TestSSE_RequiresOwnership verifies other players cannot watch a puzzle
func TestSSE_RequiresOwnership(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame(8, 3)

	ts.cookies = newCookieJar()
	ts.createGuestPlayer("Bob")

	req := httptest.NewRequest(http.MethodGet, "/games/"+gameID+"/events", nil)
	ts.cookies.addTo(req)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEqual(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Nil(t, ts.app.HubManager.GetHub(model.GameID(gameID)))
}

// TestSSE_HubCreatedOnConnect verifies the hub is created lazily
func TestSSE_HubCreatedOnConnect(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame(8, 3)

	assert.Nil(t, ts.app.HubManager.GetHub(model.GameID(gameID)), "Hub should not exist before SSE connection")

	req := httptest.NewRequest(http.MethodGet, "/games/"+gameID+"/events", nil)
	ts.cookies.addTo(req)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	ts.handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotNil(t, ts.app.HubManager.GetHub(model.GameID(gameID)), "Hub should exist after SSE connection")
}

// sseEvent is one parsed server-sent event
type sseEvent struct {
	name string
	data string
}

// readEvent reads lines until a blank line ends an event. Comments are skipped.
func readEvent(t *testing.T, reader *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	var data []string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" || len(data) > 0 {
				ev.data = strings.Join(data, "\n")
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
}

// waitForEvent reads events until one with the given name arrives
func waitForEvent(t *testing.T, reader *bufio.Reader, name string) sseEvent {
	t.Helper()
	for {
		ev := readEvent(t, reader)
		if ev.name == name {
			return ev
		}
	}
}

// TestSSE_BroadcastReceived verifies that game changes reach a live stream
func TestSSE_BroadcastReceived(t *testing.T) {
	ts := newWebTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ts.createGuestPlayer("Alice")
	gameID := ts.createGame(8, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/games/"+gameID+"/events", nil)
	require.NoError(t, err)
	ts.cookies.addTo(req)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	connected := readEvent(t, reader)
	assert.Equal(t, "connected", connected.name)
	assert.Equal(t, `{"status":"connected"}`, connected.data)

	hub := ts.app.HubManager.GetHub(model.GameID(gameID))
	require.NotNil(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	// The running timer is pushed as a fragment
	timerEvent := waitForEvent(t, reader, "timer")
	assert.Contains(t, timerEvent.data, `id="timer"`)

	// A board change asks the page to refresh
	ts.post("/games/"+gameID+"/toggle", url.Values{"cell": {"0,0"}})
	refresh := waitForEvent(t, reader, "refresh")
	assert.Equal(t, string(model.EventSelectionChanged), refresh.data)

	// Abandoning sends the player home
	ts.post("/games/"+gameID+"/abandon", nil)
	abandoned := waitForEvent(t, reader, "abandoned")
	assert.Contains(t, abandoned.data, "window.location")
}
