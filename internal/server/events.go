package server

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/gorilla/websocket"

	"github.com/aretw0/scribe/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// handleEvents streams change events of the current directory over a
// websocket until either side goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Watch before upgrading so that a bad pattern is still a plain HTTP error.
	events, err := s.svc.Watch(ctx, r.URL.Query().Get("pattern"))
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "request_id", RequestID(r.Context()), "error", err)
		return
	}
	defer conn.Close()

	metrics.StreamOpened()
	defer metrics.StreamClosed()
	s.logger.Info("event stream opened", "request_id", RequestID(r.Context()), "remote_addr", r.RemoteAddr)

	// The client never sends data; reading only surfaces its close.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return nil
			}
		}
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return

		case e, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				s.logger.Debug("event stream write failed", "error", err)
				return
			}
			metrics.RecordEventSent(string(e.Type))

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
