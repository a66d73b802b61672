package canvas

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/health"
)

//go:embed viewer.html
var viewerHTML []byte

const (
	writeWait  = 5 * time.Second
	readWait   = 120 * time.Second
	pathViewer = "/"
	pathSocket = "/ws"
	pathHealth = "/health"
)

// Message is what the viewer receives. Scene always carries the state
// after the change so a viewer can simply redraw.
type Message struct {
	Type  string    `json:"type"` // "snapshot", "event", "pong"
	Event *Event    `json:"event,omitempty"`
	Scene *Snapshot `json:"scene,omitempty"`
}

// request is what the viewer may send
type request struct {
	Type string `json:"type"` // "ping", "snapshot"
}

// BroadcasterOptions configures a Broadcaster
type BroadcasterOptions struct {
	Logger *mdwlog.Logger

	// CheckOrigin overrides the upgrader's origin check; nil allows all
	// origins, the viewer only listens on a local address by default
	CheckOrigin func(r *http.Request) bool

	// Version is reported by the /health endpoint
	Version string
}

type wsClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Broadcaster is a Surface that forwards to a Scene and an http.Handler
// that serves a live viewer. Every scene change is pushed to all connected
// websocket clients; new clients get the full snapshot first.
type Broadcaster struct {
	scene    *Scene
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	logger   *mdwlog.Logger
	health   *health.Registry

	mu      sync.Mutex
	clients map[string]*wsClient

	unsubscribe func()
	closeOnce   sync.Once
}

// NewBroadcaster subscribes to scene and returns the broadcaster
func NewBroadcaster(scene *Scene, opts BroadcasterOptions) *Broadcaster {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}

	b := &Broadcaster{
		scene: scene,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		mux:     http.NewServeMux(),
		logger:  logger.WithField("component", "pebble-canvas-viewer"),
		clients: make(map[string]*wsClient),
		health:  health.NewRegistry("pebble-canvas", opts.Version),
	}
	b.health.RegisterFunc("scene", b.checkScene)
	b.health.RegisterFunc("viewers", b.checkViewers)

	b.mux.HandleFunc(pathViewer, b.serveViewer)
	b.mux.HandleFunc(pathSocket, b.serveSocket)
	b.mux.Handle(pathHealth, b.health)
	b.unsubscribe = scene.Subscribe(b.broadcast)
	return b
}

// CreateShape implements Surface
func (b *Broadcaster) CreateShape(shape Shape) (Handle, error) {
	return b.scene.CreateShape(shape)
}

// Move implements Surface
func (b *Broadcaster) Move(h Handle, dx, dz int) error {
	return b.scene.Move(h, dx, dz)
}

// Delete implements Surface
func (b *Broadcaster) Delete(h Handle) error {
	return b.scene.Delete(h)
}

// Clear implements Surface
func (b *Broadcaster) Clear() {
	b.scene.Clear()
}

// Resize implements Surface
func (b *Broadcaster) Resize(width, height int) {
	b.scene.Resize(width, height)
}

// Recolor implements Surface
func (b *Broadcaster) Recolor(color string) {
	b.scene.Recolor(color)
}

// Clients returns the number of connected viewers
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Health returns the registry behind /health, for additional checks
func (b *Broadcaster) Health() *health.Registry {
	return b.health
}

func (b *Broadcaster) checkScene(ctx context.Context) health.CheckResult {
	snap := b.scene.Snapshot()
	return health.CheckResult{
		Status:  health.StatusHealthy,
		Message: fmt.Sprintf("%dx%d, %d elements", snap.Width, snap.Height, len(snap.Shapes)),
		Details: map[string]interface{}{"elements": len(snap.Shapes)},
	}
}

func (b *Broadcaster) checkViewers(ctx context.Context) health.CheckResult {
	n := b.Clients()
	return health.CheckResult{
		Status:  health.StatusHealthy,
		Message: fmt.Sprintf("%d connected", n),
		Details: map[string]interface{}{"clients": n},
	}
}

// ServeHTTP serves the viewer page at /, the event stream at /ws and a
// JSON health report at /health
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mux.ServeHTTP(w, r)
}

func (b *Broadcaster) serveViewer(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != pathViewer {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(viewerHTML)
}

func (b *Broadcaster) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.WarnWithErr("websocket upgrade failed", err)
		return
	}

	c := &wsClient{id: uuid.NewString(), conn: conn}

	// registration and the first snapshot happen under the lock so no
	// event can slip in between
	b.mu.Lock()
	snap := b.scene.Snapshot()
	if err := c.send(Message{Type: "snapshot", Scene: &snap}); err != nil {
		b.mu.Unlock()
		b.logger.WarnWithErr("initial snapshot failed", err, mdwlog.Fields{"client": c.id})
		_ = conn.Close()
		return
	}
	b.clients[c.id] = c
	count := len(b.clients)
	b.mu.Unlock()

	b.logger.Info("viewer connected", mdwlog.Fields{
		"client":  c.id,
		"remote":  conn.RemoteAddr().String(),
		"clients": count,
	})

	b.readLoop(c)
}

// readLoop answers pings and snapshot requests until the client goes away
func (b *Broadcaster) readLoop(c *wsClient) {
	defer b.drop(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		var req request
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.DebugWithErr("viewer read failed", err, mdwlog.Fields{"client": c.id})
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(readWait))

		switch req.Type {
		case "ping":
			_ = c.send(Message{Type: "pong"})
		case "snapshot":
			snap := b.scene.Snapshot()
			_ = c.send(Message{Type: "snapshot", Scene: &snap})
		}
	}
}

func (b *Broadcaster) drop(c *wsClient) {
	b.mu.Lock()
	_, ok := b.clients[c.id]
	delete(b.clients, c.id)
	b.mu.Unlock()

	_ = c.conn.Close()
	if ok {
		b.logger.Info("viewer disconnected", mdwlog.Fields{"client": c.id})
	}
}

// broadcast pushes one scene event to every client. Clients that fail the
// write are dropped.
func (b *Broadcaster) broadcast(ev Event) {
	snap := b.scene.Snapshot()
	msg := Message{Type: "event", Event: &ev, Scene: &snap}

	b.mu.Lock()
	var failed []*wsClient
	for _, c := range b.clients {
		if err := c.send(msg); err != nil {
			b.logger.DebugWithErr("viewer write failed", err, mdwlog.Fields{"client": c.id})
			failed = append(failed, c)
		}
	}
	b.mu.Unlock()

	for _, c := range failed {
		b.drop(c)
	}
}

// ListenAndServe serves the viewer on addr until ctx is cancelled. ready,
// when not nil, receives the bound address once the listener is up.
func (b *Broadcaster) ListenAndServe(ctx context.Context, addr string, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return mdwerror.Wrap(err, "failed to start canvas viewer").
			WithCode(mdwerror.CodeCanvasUnavailable).
			WithOperation("canvas.ListenAndServe").
			WithDetail("addr", addr)
	}

	srv := &http.Server{
		Handler:           b,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	b.logger.Info("canvas viewer listening", mdwlog.Fields{"addr": ln.Addr().String()})
	if ready != nil {
		ready <- ln.Addr().String()
	}

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return mdwerror.Wrap(err, "canvas viewer stopped").
			WithCode(mdwerror.CodeCanvasUnavailable).
			WithOperation("canvas.ListenAndServe")
	}
	return nil
}

// Close disconnects every viewer and stops listening to the scene
func (b *Broadcaster) Close() error {
	b.closeOnce.Do(func() {
		b.unsubscribe()

		b.mu.Lock()
		clients := make([]*wsClient, 0, len(b.clients))
		for _, c := range b.clients {
			clients = append(clients, c)
		}
		b.clients = make(map[string]*wsClient)
		b.mu.Unlock()

		for _, c := range clients {
			c.mu.Lock()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "console closed"),
				time.Now().Add(writeWait))
			c.mu.Unlock()
			_ = c.conn.Close()
		}
	})
	return nil
}
