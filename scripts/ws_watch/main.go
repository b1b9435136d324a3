package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/danrvk/cardroom-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_watch: %v", err)
		os.Exit(1)
	}
}

func run() error {
	host := flag.String("host", "ws://localhost:8080", "server base URL")
	room := flag.String("room", "", "room to observe")
	flag.Parse()

	if *room == "" {
		return errors.New("room is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := *host + "/api/rooms/" + *room + "/ws"
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Observing room %s. Ctrl+C to exit.\n", *room)

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		switch outbound.Type {
		case proto.OutboundTypeRoomDeleted:
			fmt.Printf("room %s was deleted\n", outbound.Room)
			return nil
		case proto.OutboundTypeSnapshot:
			printSnapshot(outbound.Data)
		default:
			fmt.Printf("unknown frame type %q\n", outbound.Type)
		}
	}
}

func printSnapshot(state *proto.RoomState) {
	if state == nil {
		return
	}
	fmt.Printf("[%s] status=%s", state.RoomID, state.Status)
	if rd := state.Round; rd != nil {
		fmt.Printf(" round=%d pot=%d turn=%d completed=%v", rd.RoundNumber, rd.Pot, rd.CurrentTurn, rd.RoundCompleted)
	}
	fmt.Println()
	for _, p := range state.Players {
		if p.Card != nil {
			fmt.Printf("  %s: chips=%d card=%d\n", p.Name, p.Chips, *p.Card)
		} else {
			fmt.Printf("  %s: chips=%d\n", p.Name, p.Chips)
		}
	}
}
