// Package progressserver exposes internal/progress.Broadcaster events over a
// websocket, the transport SPEC_FULL.md's Progress Reporting section names
// for GUI/CLI panels that watch a generation run. It is grounded on the
// teacher's internal/server.Client write pump: same ping/deadline discipline,
// generalized from a bidirectional game session down to a read-only feed
// (there is nothing for a subscriber to send back).
package progressserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zora-rando/zora-core/internal/applog"
	"github.com/zora-rando/zora-core/internal/progress"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	subscriberBuf = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler serves the live progress feed for one Broadcaster. Each accepted
// connection gets its own subscription; the connection is closed the moment
// the peer goes away or a write fails, dropping the subscription with it.
type Handler struct {
	broadcaster *progress.Broadcaster
}

// NewHandler wraps b in an http.Handler suitable for http.Handle/ServeMux.
func NewHandler(b *progress.Broadcaster) *Handler {
	return &Handler{broadcaster: b}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.L().WithError(err).Warn("progress feed upgrade failed")
		return
	}
	events, unsubscribe := h.broadcaster.Subscribe(subscriberBuf)
	go serve(conn, events, unsubscribe)
}

// serve pumps events to conn until the subscription closes or a write
// fails. It also drains and discards anything the peer sends, since the
// feed is one-way; this keeps the connection's read deadline honored so a
// dead peer is detected via ping timeout rather than leaking forever.
func serve(conn *websocket.Conn, events <-chan progress.Event, unsubscribe func()) {
	defer func() {
		unsubscribe()
		if err := conn.Close(); err != nil {
			applog.L().WithError(err).Debug("progress feed close failed")
		}
	}()

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		applog.L().WithError(err).Warn("failed to set read deadline")
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	peerGone := make(chan struct{})
	go drainReads(conn, peerGone)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-peerGone:
			return

		case ev, ok := <-events:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				applog.L().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(wireEventOf(ev)); err != nil {
				applog.L().WithError(err).Debug("progress feed write failed")
				return
			}

		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				applog.L().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				applog.L().WithError(err).Debug("progress feed ping failed")
				return
			}
		}
	}
}

// drainReads discards inbound frames so pong control frames are processed;
// a read error (including the peer closing) ends the goroutine and closes
// peerGone, which makes serve return and drop the subscription.
func drainReads(conn *websocket.Conn, peerGone chan<- struct{}) {
	defer close(peerGone)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// wireEvent is the JSON shape written to subscribers. progress.Event is not
// serialized directly so EventKind's numeric value never leaks as the wire
// representation; String() names it instead.
type wireEvent struct {
	Kind    string `json:"kind"`
	Seed    uint64 `json:"seed"`
	Attempt int    `json:"attempt"`
	Detail  string `json:"detail"`
}

func wireEventOf(ev progress.Event) wireEvent {
	return wireEvent{Kind: ev.Kind.String(), Seed: ev.Seed, Attempt: ev.Attempt, Detail: ev.Detail}
}
