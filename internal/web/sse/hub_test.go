package sse

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordsearch/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	assert.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "test-event",
			data:      "hello world",
			expected:  "event: test-event\ndata: hello world\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "timer",
			data:      "<span>\n  00:01:30\n</span>",
			expected:  "event: timer\ndata: <span>\ndata:   00:01:30\ndata: </span>\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf line endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	msg, ok := JSONFormatter(model.Event{
		Type:    model.EventWordsToggled,
		GameID:  "GAME1",
		Payload: model.WordsToggledPayload{ShowWords: true},
	})

	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(msg), "event: words_toggled\ndata: {"))
	assert.Contains(t, string(msg), `"show_words":true`)
}

func TestHTMLFormatter(t *testing.T) {
	msg, ok := HTMLFormatter(model.Event{Type: model.EventTimer, Payload: model.TimerPayload{Elapsed: "00:05:10"}})
	require.True(t, ok)
	assert.Contains(t, string(msg), "event: timer\n")
	assert.Contains(t, string(msg), "00:05:10")

	msg, ok = HTMLFormatter(model.Event{Type: model.EventWordFound})
	require.True(t, ok)
	assert.Equal(t, "event: refresh\ndata: word_found\n\n", string(msg))

	_, ok = HTMLFormatter(model.Event{Type: model.EventGameCreated})
	assert.False(t, ok)
}

func TestHub_RegisterAndPublish(t *testing.T) {
	hub := NewHub("GAME1", testLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1", nil)
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Publish(model.Event{Type: model.EventGameReset, GameID: "GAME1"})

	assert.True(t, strings.HasPrefix(receive(t, client), "event: game_reset\n"))
}

func TestHub_FormatterCanSkipEvents(t *testing.T) {
	hub := NewHub("GAME1", testLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1", HTMLFormatter)
	hub.Register(client)

	hub.Publish(model.Event{Type: model.EventGameCreated})
	hub.Publish(model.Event{Type: model.EventSelectionChanged})

	assert.Equal(t, "event: refresh\ndata: selection_changed\n\n", receive(t, client))
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("GAME1", testLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1", nil)
	hub.Register(client)
	hub.Unregister(client)

	// Unregister closes the client's channel
	_, open := <-client.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishToMultipleClients(t *testing.T) {
	hub := NewHub("GAME1", testLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "player1", nil),
		NewClient(hub, "player1", nil),
		NewClient(hub, "player2", nil),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.Publish(model.Event{Type: model.EventWordFound})

	for _, c := range clients {
		assert.True(t, strings.HasPrefix(receive(t, c), "event: word_found\n"))
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub("GAME1", testLogger())
	go hub.Run()

	client := NewClient(hub, "player1", nil)
	hub.Register(client)
	hub.Close()
	hub.Close()

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testLogger())
	defer manager.Close()

	hub1 := manager.GetOrCreateHub("GAME1")
	require.NotNil(t, hub1)

	assert.Same(t, hub1, manager.GetOrCreateHub("GAME1"))
	assert.NotSame(t, hub1, manager.GetOrCreateHub("GAME2"))
	assert.Same(t, hub1, manager.GetHub("GAME1"))
	assert.Nil(t, manager.GetHub("NOTEXIST"))
}

func TestHubManager_NotifyRoutesByGame(t *testing.T) {
	manager := NewHubManager(testLogger())
	defer manager.Close()

	hub1 := manager.GetOrCreateHub("GAME1")
	hub2 := manager.GetOrCreateHub("GAME2")
	client1 := NewClient(hub1, "player1", nil)
	client2 := NewClient(hub2, "player2", nil)
	hub1.Register(client1)
	hub2.Register(client2)

	manager.Notify(model.Event{Type: model.EventGameReset, GameID: "GAME2"})
	manager.Notify(model.Event{Type: model.EventGameReset, GameID: "UNWATCHED"})

	assert.True(t, strings.HasPrefix(receive(t, client2), "event: game_reset\n"))
	select {
	case msg := <-client1.send:
		t.Fatalf("unexpected message for other game: %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testLogger())

	manager.GetOrCreateHub("GAME1")
	manager.RemoveHub("GAME1")

	assert.Nil(t, manager.GetHub("GAME1"))
	assert.NotPanics(t, func() { manager.RemoveHub("NOTEXIST") })
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testLogger())
	defer manager.Close()

	manager.GetOrCreateHub("EMPTY")
	active := manager.GetOrCreateHub("ACTIVE")
	active.Register(NewClient(active, "player1", nil))
	waitForClients(t, active, 1)

	assert.Equal(t, 1, manager.CleanupEmptyHubs())
	assert.Nil(t, manager.GetHub("EMPTY"))
	assert.NotNil(t, manager.GetHub("ACTIVE"))
}
