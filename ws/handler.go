package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"aula_backend/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from arbitrary origins; auth happens at the
	// application layer via register_user.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests into relay connections.
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// ServeWS handles GET /ws. A user_id query parameter registers the user
// immediately; otherwise the client registers with a register_user event.
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, h.manager)
	h.manager.Register(client)
	if userID := c.Query("user_id"); userID != "" {
		h.manager.BindUser(userID, client)
	}

	go client.WritePump()
	go client.ReadPump()
}
