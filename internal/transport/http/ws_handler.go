package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danrvk/cardroom-server/internal/core"
)

// WSHandler upgrades observer connections and bridges them to the
// broadcast hub. The protocol is one-way: the server pushes snapshots and
// the deletion notice; inbound frames only keep the connection alive.
type WSHandler struct {
	coord *core.Coordinator
	log   *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(coord *core.Coordinator, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{coord: coord, log: logger}
}

// Handle serves GET /api/rooms/:room_id/ws.
func (h *WSHandler) Handle(c *gin.Context) {
	roomID := c.Param("room_id")

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	obs, err := h.coord.Attach(roomID)
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, "room does not exist")
		return
	}
	defer h.coord.Detach(roomID, obs)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, obs)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			h.log.Warn().Err(err).Str("room_id", roomID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop drains inbound frames for liveness. Frame content is ignored;
// a flooding connection is closed.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn) error {
	limiter := newFrameLimiter(inboundFramesPerMinute)
	defer limiter.stop()

	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return err
		}
		if !limiter.allow() {
			return conn.Close(websocket.StatusPolicyViolation, "too many frames")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, obs *core.Observer) error {
	for {
		select {
		case event, ok := <-obs.Events:
			if !ok {
				// Detached by the hub: evicted or room deleted.
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("observer_id", obs.ID).Msg("write ws event")
				return err
			}
			if event.Kind == core.EventRoomDeleted {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
