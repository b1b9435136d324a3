package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danrvk/cardroom-server/internal/core"
	"github.com/danrvk/cardroom-server/internal/proto"
)

// GameHandlers provides HTTP handlers for round actions within a room.
type GameHandlers struct {
	coord *core.Coordinator
	log   *zerolog.Logger
}

// NewGameHandlers creates a new game handlers instance.
func NewGameHandlers(coord *core.Coordinator, logger *zerolog.Logger) *GameHandlers {
	return &GameHandlers{
		coord: coord,
		log:   logger,
	}
}

// ActionRequest represents a player action request body. PlayerIndex is a
// pointer so seat 0 passes the required binding.
type ActionRequest struct {
	PlayerIndex *int   `json:"player_index" binding:"required"`
	Action      string `json:"action" binding:"required"`
	BetAmount   int    `json:"bet_amount"`
}

// RevealResponse represents the outcome of a resolved round.
type RevealResponse struct {
	Message string           `json:"message"`
	Winner  string           `json:"winner,omitempty"`
	Tie     bool             `json:"tie"`
	Payout  int              `json:"payout"`
	Cards   map[string]int   `json:"cards"`
	Room    *proto.RoomState `json:"room"`
}

// Action applies a player's move to the room's active round.
// POST /api/rooms/:room_id/action
func (h *GameHandlers) Action(c *gin.Context) {
	roomID := c.Param("room_id")

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid action request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	snap, err := h.coord.Action(roomID, *req.PlayerIndex, core.Action(req.Action), req.BetAmount)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, RoomMessageResponse{
		Message: "Action processed",
		Room:    roomStateFromSnapshot(snap),
	})
}

// Reveal resolves a completed round and reports the outcome.
// POST /api/rooms/:room_id/reveal
func (h *GameHandlers) Reveal(c *gin.Context) {
	roomID := c.Param("room_id")

	out, snap, err := h.coord.Reveal(roomID)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, RevealResponse{
		Message: "Round completed",
		Winner:  out.Winner,
		Tie:     out.Tie,
		Payout:  out.Payout,
		Cards:   out.Cards,
		Room:    roomStateFromSnapshot(snap),
	})
}
