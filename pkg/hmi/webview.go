package hmi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebView is the optional, read-only debug surface of spec §9's
// supplemented feature: it pushes every rendered Frame to connected
// WebSocket clients. There is no command path back into the pipeline —
// clients can only watch, matching spec §7's "no end-user cancellation"
// and the single-writer config rule. Off by default; `tvpulse run`
// enables it with `--web-port`.
//
// Grounded on the teacher's gear simulator web control panel
// (cmd/giztoy/commands/gear/web.go) for the HTTP server shape, adapted
// to push over github.com/gorilla/websocket instead of SSE since the
// payload here is structured Frame data rather than log lines.
type WebView struct {
	Log *slog.Logger

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

// NewWebView constructs a WebView.
func NewWebView(log *slog.Logger) *WebView {
	if log == nil {
		log = slog.Default()
	}
	return &WebView{
		Log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the net/http handler to mount (e.g. at "/debug").
func (w *WebView) Handler() http.Handler {
	return http.HandlerFunc(w.serveWS)
}

func (w *WebView) serveWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		w.Log.Debug("hmi: websocket upgrade failed", "error", err)
		return
	}
	w.mu.Lock()
	w.clients[conn] = struct{}{}
	w.mu.Unlock()

	// Drain and discard anything the client sends — read-only view, no
	// command path back into the pipeline.
	go func() {
		defer func() {
			w.mu.Lock()
			delete(w.clients, conn)
			w.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Show implements Sink: it pushes the rendered frame to every connected
// client, dropping the message for any client whose write blocks or
// fails.
func (w *WebView) Show(f Frame, rendered string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for conn := range w.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(refreshPeriod))
		if err := conn.WriteJSON(webFrame{State: f.State.String(), Lines: f.Lines, Rendered: rendered}); err != nil {
			w.Log.Debug("hmi: websocket write failed", "error", err)
		}
	}
}

type webFrame struct {
	State    string    `json:"state"`
	Lines    [4]string `json:"lines"`
	Rendered string    `json:"rendered"`
}
