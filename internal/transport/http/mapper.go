package http

import (
	"errors"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/danrvk/cardroom-server/internal/core"
	"github.com/danrvk/cardroom-server/internal/proto"
)

func roomStateFromSnapshot(snap *core.RoomSnapshot) *proto.RoomState {
	if snap == nil {
		return nil
	}
	players := make([]proto.PlayerState, 0, len(snap.Players))
	for _, p := range snap.Players {
		players = append(players, proto.PlayerState{
			Name:  p.Name,
			Chips: p.Chips,
			Card:  p.Card,
		})
	}
	state := &proto.RoomState{
		RoomID:   snap.RoomID,
		GameType: snap.GameType,
		Status:   string(snap.Status),
		Players:  players,
	}
	if lr := snap.LastResult; lr != nil {
		state.LastRound = &proto.RoundResultState{
			RoundNumber: lr.Number,
			Winner:      lr.Winner,
			Tie:         lr.Tie,
			Payout:      lr.Payout,
			Cards:       lr.Cards,
		}
	}
	if rd := snap.Round; rd != nil {
		state.Round = &proto.RoundState{
			CurrentTurn:    rd.CurrentTurn,
			Pot:            rd.Pot,
			RoundCompleted: rd.RoundCompleted,
			RoundNumber:    rd.RoundNumber,
			Winner:         rd.Winner,
		}
	}
	return state
}

func outboundFromEvent(event core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomDeleted:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomDeleted,
			Room: event.Room,
		}
	default:
		return proto.Outbound{
			Type: proto.OutboundTypeSnapshot,
			Room: event.Room,
			Data: roomStateFromSnapshot(event.Snapshot),
		}
	}
}

// writeCoreError maps a domain error to its wire status: 404 for missing
// rooms, 409 for duplicate creation, 400 for everything else the caller
// can correct.
func writeCoreError(c *gin.Context, err error) {
	var ce *core.CoreError
	if !errors.As(err, &ce) {
		c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	switch ce.Code {
	case core.ErrCodeRoomNotFound:
		c.JSON(stdhttp.StatusNotFound, ErrorResponse{Error: ce.Message})
	case core.ErrCodeAlreadyExists:
		c.JSON(stdhttp.StatusConflict, ErrorResponse{Error: ce.Message})
	default:
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: ce.Message})
	}
}
