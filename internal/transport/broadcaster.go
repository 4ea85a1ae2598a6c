// Package transport streams analysis frames to websocket clients.
package transport

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ErrClosed is returned by Send and Start after Close.
var ErrClosed = errors.New("transport: broadcaster closed")

const (
	queueSize    = 256
	writeTimeout = 2 * time.Second
	drainTimeout = 2 * time.Second
)

// Frame is the message broadcast for every analysed spectrum.
type Frame struct {
	Index      int       `json:"index"`
	Time       float64   `json:"time"` // seconds from stream start
	SampleRate int       `json:"sampleRate"`
	PeakBin    int       `json:"peakBin"`
	PeakHz     float64   `json:"peakHz"`
	Energy     float64   `json:"energy"`
	Centroid   float64   `json:"centroid"`
	Flatness   float64   `json:"flatness"`
	Magnitudes []float64 `json:"magnitudes"`
}

// Broadcaster fans JSON messages out to every connected websocket client.
// Send never blocks; messages are dropped when the queue is full.
type Broadcaster struct {
	addr     string
	log      logrus.FieldLogger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	server  *http.Server
	ln      net.Listener

	queue   chan []byte
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// NewBroadcaster prepares a broadcaster for addr and starts its fan-out loop.
// A nil logger uses the logrus standard logger.
func NewBroadcaster(addr string, log logrus.FieldLogger) *Broadcaster {
	if log == nil {
		log = logrus.StandardLogger()
	}

	b := &Broadcaster{
		addr: addr,
		log:  log.WithField("component", "transport"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
		queue:   make(chan []byte, queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go b.loop()
	return b
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (b *Broadcaster) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.handleWebSocket)
	return mux
}

// Start listens on the configured address and serves in the background.
func (b *Broadcaster) Start() error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	b.mu.Lock()
	b.ln = ln
	b.server = srv
	b.mu.Unlock()

	go func() {
		b.log.WithField("addr", ln.Addr().String()).Info("websocket server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.log.WithError(err).Error("websocket server stopped")
		}
	}()

	return nil
}

// Addr returns the bound listener address, or the configured one before Start.
func (b *Broadcaster) Addr() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ln != nil {
		return b.ln.Addr().String()
	}
	return b.addr
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Dropped returns how many messages were discarded because the queue was full.
func (b *Broadcaster) Dropped() uint64 { return b.dropped.Load() }

// Send marshals v and queues it for all clients. The value is encoded
// before Send returns, so callers may reuse it.
func (b *Broadcaster) Send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.queue <- payload:
	default:
		b.dropped.Add(1)
	}
	return nil
}

// Close delivers messages still queued, bounded by drainTimeout, then
// disconnects all clients and stops the server. It is safe to call more
// than once.
func (b *Broadcaster) Close() error {
	var err error
	b.once.Do(func() {
		b.log.Info("closing websocket broadcaster")
		close(b.done)
		<-b.stopped

		b.mu.Lock()
		for c := range b.clients {
			c.Close()
		}
		clear(b.clients)
		srv := b.server
		b.mu.Unlock()

		if srv != nil {
			err = srv.Close()
		}
	})
	return err
}

func (b *Broadcaster) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		conn.Close()
		return
	default:
	}
	b.clients[conn] = struct{}{}
	n := len(b.clients)
	b.mu.Unlock()
	b.log.WithField("clients", n).Info("client connected")

	// Clients only listen; a read error means they went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				b.drop(conn)
				return
			}
		}
	}()
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	_, ok := b.clients[conn]
	delete(b.clients, conn)
	n := len(b.clients)
	b.mu.Unlock()

	conn.Close()
	if ok {
		b.log.WithField("clients", n).Info("client disconnected")
	}
}

func (b *Broadcaster) loop() {
	defer close(b.stopped)

	for {
		select {
		case <-b.done:
			b.drain()
			return
		case payload := <-b.queue:
			b.broadcast(payload)
		}
	}
}

// drain sends whatever is still queued until the queue is empty or
// drainTimeout has passed.
func (b *Broadcaster) drain() {
	deadline := time.Now().Add(drainTimeout)
	for time.Now().Before(deadline) {
		select {
		case payload := <-b.queue:
			b.broadcast(payload)
		default:
			return
		}
	}
	if n := len(b.queue); n > 0 {
		b.log.WithField("pending", n).Warn("discarding queued messages on close")
	}
}

func (b *Broadcaster) broadcast(payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for c := range b.clients {
		c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			b.log.WithError(err).Debug("dropping client after write error")
			c.Close()
			delete(b.clients, c)
		}
	}
}
