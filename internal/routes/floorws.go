package routes

import (
	"encoding/json"

	"golang.org/x/net/websocket"

	"github.com/plazahq/plaza/internal/hub"
	"github.com/plazahq/plaza/internal/middleware"
	"github.com/plazahq/plaza/internal/wire"
)

// FloorWS is the realtime endpoint. One connection puts one authenticated
// player on one floor; the read loop below feeds the floor until the socket
// dies, and leaving is handled on the way out.
func (h *RouteHandler) FloorWS(ws *websocket.Conn) {
	req := ws.Request()
	userID := middleware.GetUserID(req)
	username := middleware.GetUsername(req)
	floorID := req.PathValue("id")
	if userID == "" || floorID == "" {
		ws.Close()
		return
	}

	floor := h.floors.GetOrCreate(floorID)
	client := hub.NewClient(ws, floor.Metrics())
	floor.Join(userID, username, client)
	defer floor.Leave(userID, client)

	for {
		var env wire.RawEnvelope
		if err := websocket.JSON.Receive(ws, &env); err != nil {
			return
		}
		h.dispatch(floor, userID, env)
	}
}

func (h *RouteHandler) dispatch(floor *hub.Floor, userID string, env wire.RawEnvelope) {
	switch env.Type {
	case wire.TypeMove:
		var m wire.Move
		if json.Unmarshal(env.Payload, &m) == nil {
			floor.HandleMove(userID, m)
		}
	case wire.TypeThrowTomato:
		var t wire.Throw
		if json.Unmarshal(env.Payload, &t) == nil {
			floor.HandleThrow(userID, wire.TypeTomatoThrown, t)
		}
	case wire.TypeThrowPlane:
		var t wire.Throw
		if json.Unmarshal(env.Payload, &t) == nil {
			floor.HandleThrow(userID, wire.TypePlaneThrown, t)
		}
	case wire.TypePoke:
		var p wire.Poke
		if json.Unmarshal(env.Payload, &p) == nil {
			floor.HandlePoke(userID, p)
		}
	case wire.TypeSendMessage:
		var m wire.SendMessage
		if json.Unmarshal(env.Payload, &m) == nil {
			floor.HandleMessage(userID, m)
		}
	default:
		h.logger.Debugw("unknown message type", "type", env.Type, "user", userID)
	}
}
