package countdown

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/beztern/launchpad/internal/platform/timeouts"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/httpx"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/i18n"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/pagerender"
	"github.com/beztern/launchpad/internal/services/launchpad/stream"
	"github.com/beztern/launchpad/internal/services/launchpad/templates"
)

type handlers struct {
	countdown module.CountdownReader
	stream    *stream.Hub
	logger    *zap.Logger
}

func (h handlers) handleFragment(w http.ResponseWriter, r *http.Request) {
	loc, _ := i18n.FromRequest(r)
	w.Header().Set("Cache-Control", "no-store")
	if err := pagerender.Write(w, r, http.StatusOK, templates.Countdown(h.countdown.Snapshot(), loc)); err != nil {
		h.logger.Error("render countdown fragment", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h handlers) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	if err := httpx.WriteJSON(w, http.StatusOK, h.countdown.Snapshot()); err != nil {
		h.logger.Debug("write countdown snapshot", zap.Error(err))
	}
}

// handleStream subscribes before reading the snapshot so a completion that
// lands between the two is still delivered.
func (h handlers) handleStream(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	peer := h.stream.Subscribe()
	defer h.stream.Unsubscribe(peer)

	encoder := json.NewEncoder(conn)
	if err := writeFrame(conn, encoder, stream.SnapshotFrame(h.countdown.Snapshot())); err != nil {
		h.logger.Debug("write snapshot frame", zap.Error(err))
		return
	}

	// Browsers never send frames on this stream; reading only detects close.
	closed := make(chan struct{})
	go func() {
		_, _ = io.Copy(io.Discard, conn)
		close(closed)
	}()

	var done <-chan struct{}
	if req := conn.Request(); req != nil {
		done = req.Context().Done()
	}
	for {
		select {
		case frame := <-peer.Frames():
			if err := writeFrame(conn, encoder, frame); err != nil {
				h.logger.Debug("write countdown frame", zap.String("type", frame.Type), zap.Error(err))
				return
			}
		case <-peer.Done():
			select {
			case frame := <-peer.Frames():
				_ = writeFrame(conn, encoder, frame)
			default:
			}
			return
		case <-closed:
			return
		case <-done:
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, encoder *json.Encoder, frame stream.Frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(timeouts.WebSocketWrite)); err != nil {
		return err
	}
	return encoder.Encode(frame)
}
