/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package board holds the shared drawing state for Constellation.
//
// A Hub owns the participant Registry and the stroke History. Every
// connection gets its own read loop feeding events into the hub, where one
// critical section applies each event and queues the resulting broadcast,
// so all recipients observe mutations in the order they were accepted.
//
// Wire protocol (JSON text frames):
//   - client → server: draw{point}, endPath, clear
//   - server → client: history{paths} once on connect, then draw, endPath
//     and clear relayed from other participants, tagged with clientId
package board

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

const (
	defaultSendBuffer     = 256
	defaultMaxMessageSize = 4096
	defaultPingInterval   = 30 * time.Second
)

// ErrUnknownClient is reported for events from a participant that has
// already been removed.
var ErrUnknownClient = errors.New("unknown client")

// Options tunes a Hub. Zero values fall back to defaults.
type Options struct {
	// SendBuffer is the per-client outbound queue depth. A client whose
	// queue is full when a broadcast is issued gets disconnected.
	SendBuffer int

	// MaxMessageSize caps a single inbound frame in bytes.
	MaxMessageSize int64

	// PingInterval is how often keepalive pings are sent. A client that
	// stays silent for two intervals is considered gone.
	PingInterval time.Duration

	// Logf receives verbose log lines. Nil discards them.
	Logf func(format string, args ...any)

	// Metrics receives hub statistics. Nil uses an unexposed registry.
	Metrics *Metrics
}

type Hub struct {
	registry *Registry
	history  *History
	metrics  *Metrics
	opts     Options

	mu      sync.Mutex
	clients map[ClientID]*Client
	closed  bool
}

func NewHub(opts Options) *Hub {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = defaultSendBuffer
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = defaultMaxMessageSize
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}

	return &Hub{
		registry: NewRegistry(),
		history:  NewHistory(),
		metrics:  opts.Metrics,
		opts:     opts,
		clients:  make(map[ClientID]*Client),
	}
}

// Snapshot returns the finalized strokes as of now.
func (h *Hub) Snapshot() []Stroke {
	return h.history.Snapshot()
}

// Count returns the number of registered participants.
func (h *Hub) Count() int {
	return h.registry.Len()
}

// Close disconnects every client. Their read loops still run the usual
// finalize-and-remove path as they wind down.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, c := range h.clients {
		h.removeLocked(c)
	}
}

// join registers c and queues the history snapshot as its first message.
func (h *Hub) join(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	c.id = h.registry.Register()

	payload, err := json.Marshal(newHistoryMessage(h.history.Snapshot()))
	if err != nil {
		h.registry.Unregister(c.id)
		h.opts.Logf("ERROR: Encoding history for client %d: %v", c.id, err)
		return false
	}

	select {
	case c.send <- payload:
	default:
		h.registry.Unregister(c.id)
		return false
	}

	h.clients[c.id] = c
	h.metrics.participants.Set(float64(h.registry.Len()))

	h.opts.Logf("BOARD: Client %d joined (%d connected)", c.id, len(h.clients))

	return true
}

// handle decodes one inbound frame from c and applies it. Frames that fail
// validation are counted and otherwise ignored.
func (h *Hub) handle(c *Client, data []byte) {
	ev, err := DecodeEvent(data)
	if err == nil {
		err = h.apply(c.id, ev)
	}
	if err != nil {
		h.metrics.reject(err)
		return
	}

	h.metrics.events.WithLabelValues(ev.Type).Inc()
}

func (h *Hub) apply(id ClientID, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Type {
	case TypeDraw:
		if !h.registry.AppendPoint(id, ev.Point) {
			return ErrUnknownClient
		}
		h.broadcastLocked(id, DrawMessage{
			Type:     TypeDraw,
			ClientID: id,
			Point:    ev.Point,
		})

	case TypeEndPath:
		stroke, ok := h.registry.TakeAndClear(id)
		if !ok {
			return ErrUnknownClient
		}
		h.finalizeLocked(id, stroke)

	case TypeClear:
		if !h.registry.Has(id) {
			return ErrUnknownClient
		}
		h.history.Clear()
		h.registry.ClearAll()
		h.metrics.strokes.Set(0)
		h.opts.Logf("BOARD: Client %d cleared the board", id)
		h.broadcastLocked(id, ClearMessage{
			Type:     TypeClear,
			ClientID: id,
		})

	default:
		return ErrUnknownType
	}

	return nil
}

// leave finalizes whatever c was drawing and removes it. Only the first
// call for a given client has any effect.
func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)

	stroke, ok := h.registry.Unregister(c.id)
	if !ok {
		return
	}
	h.finalizeLocked(c.id, stroke)
	h.metrics.participants.Set(float64(h.registry.Len()))

	h.opts.Logf("BOARD: Client %d left (%d connected)", c.id, len(h.clients))
}

// finalizeLocked moves stroke into history and announces it. An empty
// stroke still produces an endPath, just without a path.
func (h *Hub) finalizeLocked(id ClientID, stroke Stroke) {
	msg := EndPathMessage{
		Type:     TypeEndPath,
		ClientID: id,
	}
	if h.history.Append(stroke) {
		msg.Path = stroke
		h.metrics.strokes.Set(float64(h.history.Len()))
	}

	h.broadcastLocked(id, msg)
}

// broadcastLocked queues msg for every client except origin. It never
// blocks: a client that cannot keep up is dropped.
func (h *Hub) broadcastLocked(origin ClientID, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.opts.Logf("ERROR: Encoding broadcast from client %d: %v", origin, err)
		return
	}

	for id, c := range h.clients {
		if id == origin {
			continue
		}

		select {
		case c.send <- payload:
		default:
			h.removeLocked(c)
			h.metrics.slowClients.Inc()
			h.opts.Logf("BOARD: Client %d disconnected, send buffer full", id)
		}
	}
}

// removeLocked stops delivery to c and lets its write loop close the
// connection.
func (h *Hub) removeLocked(c *Client) {
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}
