package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/nazaninghn/sustindex/internal/services"
	"github.com/nazaninghn/sustindex/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub            *ws.Hub
	attemptService *services.AttemptService
}

func NewWSHandler(hub *ws.Hub, attemptService *services.AttemptService) *WSHandler {
	return &WSHandler{hub: hub, attemptService: attemptService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleAttemptWebSocket godoc
// @Summary      WebSocket stream of progress updates for an attempt
// @Tags         websocket
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Router       /ws/attempts/{id} [get]
func (h *WSHandler) HandleAttemptWebSocket(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	if _, err := h.attemptService.GetOwned(uint(attemptID), userID); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	aid := uint(attemptID)
	h.hub.AddConnection(aid, conn)
	defer h.hub.RemoveConnection(aid, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
