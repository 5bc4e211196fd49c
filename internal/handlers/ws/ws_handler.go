// internal/handlers/ws/ws_handler.go
package ws

import (
	"net/http"
	"strings"

	"flotaops-service/internal/pkg/response"
	"flotaops-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the dashboard origin once it is deployed
		return true
	},
}

type AlertHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewAlertHandler(hub *ws.Hub, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection authenticates and upgrades a client onto the one-way
// alert stream.
func (h *AlertHandler) HandleConnection(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "missing authentication token", nil)
		return
	}

	auth, err := h.hub.AuthenticateClient(c.Request.Context(), token)
	if err != nil {
		h.logger.Error("websocket authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()))
		response.Error(c, http.StatusUnauthorized, "authentication failed", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()))
		return
	}

	client := ws.NewClient(h.hub, conn, auth)
	h.hub.RegisterClient(client)

	h.logger.Info("websocket client connected",
		zap.Int64("identity_id", auth.IdentityID),
		zap.String("role", string(auth.Role)))

	go client.WritePump()
	go client.ReadPump()
}

// Stats reports how many clients are attached to the alert stream.
func (h *AlertHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, "websocket stats", gin.H{
		"connected_clients": h.hub.TotalClients(),
	})
}

func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
