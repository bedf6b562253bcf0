package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/baldhumanity/neat-mario/game"
)

// ScreenEvent is the message pushed to dashboard clients for every new tile window.
type ScreenEvent struct {
	Event string  `json:"event"`
	Data  [][]int `json:"data"`
}

const updateScreenEvent = "update_screen"

// Dashboard streams the tile window to browsers over a websocket at /ws.
// Update never blocks the caller: only the most recent window is kept and
// windows produced faster than Run can deliver them are dropped.
type Dashboard struct {
	updates chan game.TileWindow

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	latest  []byte
}

// NewDashboard creates a dashboard. Call Run to start delivering updates.
func NewDashboard() *Dashboard {
	return &Dashboard{
		updates: make(chan game.TileWindow, 1),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the dashboard's HTTP routes: the websocket feed at /ws and
// a minimal viewer at /.
func (d *Dashboard) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.Handler(d.handleClient))
	mux.HandleFunc("/", d.handleHome)
	return mux
}

// Update publishes a new tile window.
func (d *Dashboard) Update(w game.TileWindow) {
	select {
	case d.updates <- w:
		return
	default:
	}
	// Replace the pending window with the newer one.
	select {
	case <-d.updates:
	default:
	}
	select {
	case d.updates <- w:
	default:
	}
}

// Run delivers published windows to connected clients until ctx is done.
func (d *Dashboard) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.closeClients()
			return
		case w := <-d.updates:
			d.broadcast(w)
		}
	}
}

// Clients returns the number of connected clients.
func (d *Dashboard) Clients() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.clients)
}

func (d *Dashboard) broadcast(w game.TileWindow) {
	data, err := json.Marshal(ScreenEvent{Event: updateScreenEvent, Data: w.Rows()})
	if err != nil {
		slog.Warn("dashboard marshal failed", "error", err)
		return
	}

	d.mu.Lock()
	d.latest = data
	conns := make([]*websocket.Conn, 0, len(d.clients))
	for ws := range d.clients {
		conns = append(conns, ws)
	}
	d.mu.Unlock()

	for _, ws := range conns {
		if err := websocket.Message.Send(ws, string(data)); err != nil {
			slog.Debug("dashboard send failed", "remote", ws.Request().RemoteAddr, "error", err)
			d.remove(ws)
		}
	}
}

func (d *Dashboard) handleClient(ws *websocket.Conn) {
	d.mu.Lock()
	d.clients[ws] = struct{}{}
	latest := d.latest
	d.mu.Unlock()
	slog.Info("dashboard client connected", "remote", ws.Request().RemoteAddr)

	defer func() {
		d.remove(ws)
		slog.Info("dashboard client disconnected", "remote", ws.Request().RemoteAddr)
	}()

	if latest != nil {
		if err := websocket.Message.Send(ws, string(latest)); err != nil {
			return
		}
	}

	// Clients only listen; reading detects the disconnect.
	for {
		var msg string
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			if err != io.EOF {
				slog.Debug("dashboard read failed", "error", err)
			}
			return
		}
	}
}

func (d *Dashboard) remove(ws *websocket.Conn) {
	d.mu.Lock()
	_, ok := d.clients[ws]
	delete(d.clients, ws)
	d.mu.Unlock()
	if ok {
		ws.Close()
	}
}

func (d *Dashboard) closeClients() {
	d.mu.Lock()
	conns := d.clients
	d.clients = make(map[*websocket.Conn]struct{})
	d.mu.Unlock()
	for ws := range conns {
		ws.Close()
	}
}

func (d *Dashboard) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, homePage)
}

const homePage = `<!DOCTYPE html>
<html>
<head><title>Tile window</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; }
td { width: 24px; height: 24px; }
.t0 { background: #222; } .t1 { background: #a0522d; } .t2 { background: #c33; } .t3 { background: #3c3; }
</style>
</head>
<body>
<table id="grid"></table>
<script>
const grid = document.getElementById("grid");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.event !== "update_screen") return;
  grid.innerHTML = msg.data.map(row =>
    "<tr>" + row.map(t => '<td class="t' + t + '"></td>').join("") + "</tr>").join("");
};
</script>
</body>
</html>
`
