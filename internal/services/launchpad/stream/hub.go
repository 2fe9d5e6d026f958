// Package stream fans countdown engine events out to live subscribers.
package stream

import (
	"sync"

	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/platform/logging"
)

// Frame types written to subscribers.
const (
	TypeSnapshot  = "countdown.snapshot"
	TypeTick      = "countdown.tick"
	TypeMilestone = "countdown.milestone"
	TypeComplete  = "countdown.complete"
)

// Frame is one countdown event.
type Frame struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

// Payload carries the snapshot that produced a frame.
type Payload struct {
	Snapshot  countdown.Snapshot   `json:"snapshot"`
	Milestone *countdown.Milestone `json:"milestone,omitempty"`
}

// SnapshotFrame builds the frame sent when a subscriber connects.
func SnapshotFrame(s countdown.Snapshot) Frame {
	return Frame{Type: TypeSnapshot, Payload: Payload{Snapshot: s}}
}

// Peer is one subscriber. Its buffer holds only the newest frame, so a stalled
// reader loses stale ticks instead of blocking the publisher.
type Peer struct {
	frames chan Frame
	done   chan struct{}
	once   sync.Once
}

func newPeer() *Peer {
	return &Peer{frames: make(chan Frame, 1), done: make(chan struct{})}
}

// Frames returns the peer's frame channel.
func (p *Peer) Frames() <-chan Frame {
	return p.frames
}

// Done is closed once the peer is unsubscribed or the hub is closed.
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

func (p *Peer) offer(frame Frame) {
	for {
		select {
		case p.frames <- frame:
			return
		default:
		}
		select {
		case <-p.frames:
		default:
		}
	}
}

func (p *Peer) close() {
	p.once.Do(func() { close(p.done) })
}

// Hub tracks subscribers and publishes frames to all of them.
type Hub struct {
	logger *zap.Logger

	mu     sync.Mutex
	peers  map[*Peer]struct{}
	closed bool
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logging.OrNop(logger).Named("stream"),
		peers:  make(map[*Peer]struct{}),
	}
}

// Subscribe registers a new peer. Peers from a closed hub are already done.
func (h *Hub) Subscribe() *Peer {
	peer := newPeer()
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		peer.close()
		return peer
	}
	h.peers[peer] = struct{}{}
	h.logger.Debug("subscriber joined", zap.Int("subscribers", len(h.peers)))
	return peer
}

// Unsubscribe removes peer and marks it done.
func (h *Hub) Unsubscribe(peer *Peer) {
	if peer == nil {
		return
	}
	h.mu.Lock()
	delete(h.peers, peer)
	remaining := len(h.peers)
	h.mu.Unlock()
	peer.close()
	h.logger.Debug("subscriber left", zap.Int("subscribers", remaining))
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Publish offers frame to every subscriber without blocking.
func (h *Hub) Publish(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for peer := range h.peers {
		peer.offer(frame)
	}
}

// Close marks every subscriber done and rejects further publishes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for peer := range h.peers {
		peer.close()
		delete(h.peers, peer)
	}
}

// OnTick publishes a tick frame. It matches countdown.Config.OnTick.
func (h *Hub) OnTick(s countdown.Snapshot) {
	h.Publish(Frame{Type: TypeTick, Payload: Payload{Snapshot: s}})
}

// OnMilestone publishes a milestone frame.
func (h *Hub) OnMilestone(m countdown.Milestone, s countdown.Snapshot) {
	h.Publish(Frame{Type: TypeMilestone, Payload: Payload{Snapshot: s, Milestone: &m}})
}

// OnComplete publishes the completion frame.
func (h *Hub) OnComplete(s countdown.Snapshot) {
	h.Publish(Frame{Type: TypeComplete, Payload: Payload{Snapshot: s}})
}
