// websocket.go - Surface event channel for live viewers
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/venue-navigator/backend/internal/models"
)

// WebSocket message types for the surface event protocol
const (
	// Client -> Server messages
	MsgTypeSurfaceResize = "surface:resize"
	MsgTypeSurfaceLoaded = "surface:loaded"
	MsgTypePing          = "ping"

	// Server -> Client messages
	MsgTypeOverlayUpdated = "overlay:updated"
	MsgTypeError          = "error"
	MsgTypePong           = "pong"
)

// WSMessage is the envelope for both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// surfacePayload carries the measured rendered size of the floor-plan image.
// Resize and image-load events share it: a load event is simply the first
// measurement after the image's natural size became known.
type surfacePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// overlayUpdatedPayload notifies the viewer that the overlay image changed
// and carries the fresh session snapshot so the summary panel can update
// without an extra request.
type overlayUpdatedPayload struct {
	Session models.NavSession `json:"session"`
}

// WebSocketHandler manages per-session event connections.
type WebSocketHandler struct {
	handler  *Handler
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the surface event channel handler.
func NewWebSocketHandler(h *Handler) *WebSocketHandler {
	return &WebSocketHandler{
		handler: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The API is same-origin in deployment; dev servers connect
				// cross-origin.
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and runs the event loop for one
// session. Overlay updates triggered from any source (HTTP route requests
// included) are pushed to the connected viewer.
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ctrl, err := wsh.handler.sessionFromParam(c)
	if err != nil {
		return err
	}

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	sessionID := c.Param("sessionId")
	fmt.Printf("[WebSocket] Viewer connected to session %s\n", shortID(sessionID))

	// Serialize writes: pushes race with pong replies otherwise.
	var writeMu sync.Mutex
	send := func(msg WSMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := ws.WriteJSON(msg); err != nil {
			fmt.Printf("[WebSocket] Write failed: %v\n", err)
		}
	}

	pushSnapshot := func() {
		payload, err := json.Marshal(overlayUpdatedPayload{Session: ctrl.Snapshot()})
		if err != nil {
			return
		}
		send(WSMessage{
			Type:      MsgTypeOverlayUpdated,
			Payload:   payload,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	ctrl.OnUpdate(pushSnapshot)
	defer ctrl.OnUpdate(nil)

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			send(WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
		case MsgTypeSurfaceResize, MsgTypeSurfaceLoaded:
			var p surfacePayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				wsh.sendError(send, "invalid surface payload: "+err.Error())
				continue
			}
			// Triggers a redraw; pushSnapshot runs via OnUpdate.
			ctrl.Resize(models.SurfaceSize{Width: p.Width, Height: p.Height})
		default:
			wsh.sendError(send, "unknown message type: "+msg.Type)
		}
	}

	fmt.Printf("[WebSocket] Viewer disconnected from session %s\n", shortID(sessionID))
	return nil
}

func (wsh *WebSocketHandler) sendError(send func(WSMessage), message string) {
	payload, _ := json.Marshal(map[string]string{"message": message})
	send(WSMessage{
		Type:      MsgTypeError,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
