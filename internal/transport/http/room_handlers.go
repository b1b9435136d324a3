package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danrvk/cardroom-server/internal/core"
	"github.com/danrvk/cardroom-server/internal/proto"
)

// RoomHandlers provides HTTP handlers for room lifecycle endpoints.
type RoomHandlers struct {
	coord *core.Coordinator
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(coord *core.Coordinator, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		coord: coord,
		log:   logger,
	}
}

// CreateRoomRequest represents the create room request body.
type CreateRoomRequest struct {
	RoomID     string `json:"room_id" binding:"required,min=1,max=64"`
	GameType   string `json:"game_type" binding:"required,min=1,max=32"`
	PlayerName string `json:"player_name" binding:"required,min=1,max=32"`
}

// JoinRoomRequest represents the join room request body.
type JoinRoomRequest struct {
	PlayerName string `json:"player_name" binding:"required,min=1,max=32"`
}

// RoomMessageResponse pairs a human-readable message with the room state.
type RoomMessageResponse struct {
	Message string           `json:"message"`
	Room    *proto.RoomState `json:"room,omitempty"`
}

// RoomSummaryResponse represents a room in list responses.
type RoomSummaryResponse struct {
	RoomID   string   `json:"room_id"`
	GameType string   `json:"game_type"`
	Status   string   `json:"status"`
	Players  []string `json:"players"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid create room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	snap, err := h.coord.CreateRoom(req.RoomID, req.GameType, req.PlayerName)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RoomMessageResponse{
		Message: "Room created successfully.",
		Room:    roomStateFromSnapshot(snap),
	})
}

// JoinRoom handles a player joining an existing room.
// POST /api/rooms/:room_id/join
func (h *RoomHandlers) JoinRoom(c *gin.Context) {
	roomID := c.Param("room_id")

	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid join room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	snap, seated, err := h.coord.JoinRoom(roomID, req.PlayerName)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	message := "Player " + req.PlayerName + " joined room " + roomID
	if !seated {
		message = "Player already in the room"
	}
	c.JSON(http.StatusOK, RoomMessageResponse{
		Message: message,
		Room:    roomStateFromSnapshot(snap),
	})
}

// GetRoom returns the full observable state of one room.
// GET /api/rooms/:room_id
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	snap, err := h.coord.GetRoom(c.Param("room_id"))
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, roomStateFromSnapshot(snap))
}

// ListRooms returns summaries of all rooms in creation order.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	summaries := h.coord.ListRooms()

	response := make([]RoomSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, RoomSummaryResponse{
			RoomID:   s.RoomID,
			GameType: s.GameType,
			Status:   string(s.Status),
			Players:  s.Players,
		})
	}
	c.JSON(http.StatusOK, response)
}

// DeleteRoom removes a room after its observers have been notified.
// DELETE /api/rooms/:room_id
func (h *RoomHandlers) DeleteRoom(c *gin.Context) {
	roomID := c.Param("room_id")
	if err := h.coord.DeleteRoom(roomID); err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoomMessageResponse{Message: "Room " + roomID + " deleted"})
}
