package system

import (
	"go-cra/internal/features/notification"
	"go-cra/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub *notification.Hub
	Log *zap.Logger
}

func NewWebSocketController(hub *notification.Hub, log *zap.Logger) *WebSocketController {
	return &WebSocketController{Hub: hub, Log: log}
}

// HandleWebSocket authenticates the connection by token query param and keeps
// it registered on the notification hub until the client drops.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	token := c.Query("token")
	claims, err := utils.ValidateToken(token)
	if err != nil {
		_ = c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid token"))
		_ = c.Close()
		return
	}

	h.Hub.Register(claims.UserID, c)
	defer h.Hub.Unregister(claims.UserID, c)

	// Drain incoming frames; the connection is push-only.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			h.Log.Debug("websocket closed", zap.String("userId", claims.UserID), zap.Error(err))
			break
		}
	}
}
