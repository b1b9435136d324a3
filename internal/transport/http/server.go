package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danrvk/cardroom-server/internal/config"
	"github.com/danrvk/cardroom-server/internal/core"
)

// NewServer builds the HTTP server with REST and WebSocket routes.
func NewServer(coord *core.Coordinator, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware())

	router.GET("/health", healthHandler)

	roomHandlers := NewRoomHandlers(coord, logger)
	gameHandlers := NewGameHandlers(coord, logger)
	wsHandler := NewWSHandler(coord, logger)

	rooms := router.Group("/api/rooms")
	{
		rooms.POST("", roomHandlers.CreateRoom)
		rooms.GET("", roomHandlers.ListRooms)
		rooms.GET("/:room_id", roomHandlers.GetRoom)
		rooms.POST("/:room_id/join", roomHandlers.JoinRoom)
		rooms.DELETE("/:room_id", roomHandlers.DeleteRoom)
		rooms.POST("/:room_id/action", gameHandlers.Action)
		rooms.POST("/:room_id/reveal", gameHandlers.Reveal)
		rooms.GET("/:room_id/ws", wsHandler.Handle)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
