package handlers

import (
	"net/http"
	"strconv"

	"rescue-dashboard/middleware"
	"rescue-dashboard/models"
	"rescue-dashboard/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub *services.WebSocketHub
}

func NewWebSocketHandler(hub *services.WebSocketHub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ListenReports upgrades the connection and subscribes the caller to report
// events.
func (h *WebSocketHandler) ListenReports(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	log.Infof("WebSocket connection request from user %d", userID)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow all origins for now
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("Error upgrading connection to WebSocket: %v", err)
		return
	}

	h.hub.RegisterClient(conn, strconv.FormatInt(userID, 10))
}

// HealthCheck reports the hub state.
func (h *WebSocketHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Message:          "Rescue dashboard WebSocket service is running",
		Service:          "rescue-dashboard-websocket",
		ConnectedClients: h.hub.GetConnectedClientsCount(),
	})
}
