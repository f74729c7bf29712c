package controllers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/realtime"
)

type RealtimeController struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewRealtimeController accepts upgrades from allowedOrigins; "*" allows any.
func NewRealtimeController(hub *realtime.Hub, allowedOrigins []string, logger zerolog.Logger) *RealtimeController {
	return &RealtimeController{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// AlertsWS handles GET /api/alerts/ws
func (rc *RealtimeController) AlertsWS(c *gin.Context) {
	conn, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		rc.logger.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}
	rc.hub.Serve(realtime.NewClient(middleware.UserID(c), conn), realtime.PingInterval)
}
