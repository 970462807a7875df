package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	actionJoinRoom = "join-room"
	actionMakeMove = "make-move"
	actionRestart  = "restart"

	actionRoomState   = "room-state"
	actionRoomDeleted = "room-deleted"
)

// Message is the envelope for every websocket exchange, inbound and outbound.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinRoomPayload struct {
	RoomID string       `json:"roomId"`
	User   *entity.User `json:"user"`
}

type MakeMovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type RoomDeletedPayload struct {
	RoomID string `json:"roomId"`
}
