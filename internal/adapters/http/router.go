package http

import (
	"context"
	"net/http"

	"github.com/dkeye/linechat/internal/adapters/line"
	"github.com/dkeye/linechat/internal/config"
	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RequestIDMiddleware tags every request so the ws session log lines can be
// matched to the access log.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, rooms core.RoomManager, ctl *line.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, rooms.List())
	})

	api.GET("/rooms/:name/users", func(c *gin.Context) {
		name, err := domain.NewRoomName(c.Param("name"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		users, ok := rooms.ListUsers(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": name, "users": users})
	})

	api.GET("/ws", func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Str("module", "adapters.http").Err(err).Msg("ws upgrade failed")
			return
		}
		log.Info().Str("module", "adapters.http").Str("request_id", c.GetString("request_id")).Msg("ws line session")
		conn := line.NewWSConn(ws, cfg.MaxLineLen, cfg.MaxOutboundLen, cfg.WSReadLimit, cfg.WriteTimeout)
		if err := ctl.Serve(ctx, conn); err != nil {
			log.Error().Str("module", "adapters.http").Err(err).Msg("ws session ended with error")
		}
	})

	return r
}
