package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mkarsten/waveline/realtime"
	"github.com/mkarsten/waveline/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are filtered by the CORS middleware in front of this handler.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RealtimeController upgrades authenticated requests to websocket connections
// registered in the hub under the user's id.
type RealtimeController struct {
	hub *realtime.Hub
}

// NewRealtimeController creates a RealtimeController.
func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

// Connect upgrades the request and starts the client pumps.
func (r *RealtimeController) Connect(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		if utils.Sugar != nil {
			utils.Sugar.Warnf("websocket upgrade failed for user=%d: %v", userID, err)
		}
		return
	}

	realtime.NewClient(r.hub, conn, userID).Start()
}
