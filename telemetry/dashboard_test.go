package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/baldhumanity/neat-mario/game"
)

func TestDashboardStreamsWindow(t *testing.T) {
	d := NewDashboard()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	server := httptest.NewServer(d.Handler())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	ws, err := websocket.Dial(url, "", server.URL)
	require.NoError(t, err)
	defer ws.Close()

	snap := &game.Snapshot{Agent: game.Point{X: 200, Y: 100}, Enemies: []game.Point{{X: 232, Y: 100}}}
	d.Update(game.ExtractWindow(snap))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var raw string
	require.NoError(t, websocket.Message.Receive(ws, &raw))

	var event ScreenEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	assert.Equal(t, "update_screen", event.Event)
	require.Len(t, event.Data, game.WindowSize)
	for _, row := range event.Data {
		require.Len(t, row, game.WindowSize)
	}
	assert.Equal(t, int(game.Agent), event.Data[game.AgentRow][game.AgentCol])
	assert.Equal(t, int(game.Enemy), event.Data[game.ViewSize][game.ViewSize+2])
}

func TestDashboardUpdateNeverBlocks(t *testing.T) {
	d := NewDashboard()
	done := make(chan struct{})
	go func() {
		var w game.TileWindow
		for i := 0; i < 100; i++ {
			w[0][0] = game.Tile(i % 4)
			d.Update(w)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Update blocked without a running dashboard")
	}

	// Only the newest window is pending.
	w := <-d.updates
	assert.Equal(t, game.Tile(99%4), w[0][0])
	assert.Empty(t, d.updates)
}

func TestDashboardHomePage(t *testing.T) {
	d := NewDashboard()
	rec := httptest.NewRecorder()
	d.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "update_screen")

	rec = httptest.NewRecorder()
	d.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
