package websocket

import (
	"context"
	"encoding/json"
)

// handleJoinRoom - binds the connection to a user and a room, then forwards
// the join. Joining another room on the same connection first detaches the
// session from the old one, exactly as a transport-level disconnect would.
func (that *Server) handleJoinRoom(ctx context.Context, sess *session, payload json.RawMessage) {
	log := that.logger.With("method", "handleJoinRoom", "connID", sess.id)

	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Debug("dropping malformed payload", "error", err)
		return
	}

	if req.User == nil || req.User.ID == "" || req.RoomID == "" {
		log.Debug("dropping join-room without user or room id")
		return
	}

	if sess.roomID != "" && sess.roomID != req.RoomID {
		oldRoomID := sess.roomID
		that.leaveGroup(sess, oldRoomID)
		that.rooms.Disconnect(ctx, sess.id, sess.user.ID, oldRoomID)
	}

	sess.user = req.User
	sess.roomID = req.RoomID

	that.joinGroup(sess, req.RoomID)
	that.rooms.Join(ctx, sess.id, req.RoomID, req.User)
}

// handleMakeMove - forwards a move for the bound user; unbound connections
// are dropped silently.
func (that *Server) handleMakeMove(ctx context.Context, sess *session, payload json.RawMessage) {
	log := that.logger.With("method", "handleMakeMove", "connID", sess.id)

	if sess.user == nil || sess.roomID == "" {
		log.Debug("dropping make-move from a connection with no room")
		return
	}

	var req MakeMovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Debug("dropping malformed payload", "error", err)
		return
	}

	that.rooms.MakeMove(ctx, sess.user.ID, sess.roomID, req.X, req.Y)
}

func (that *Server) handleRestart(ctx context.Context, sess *session, _ json.RawMessage) {
	log := that.logger.With("method", "handleRestart", "connID", sess.id)

	if sess.user == nil || sess.roomID == "" {
		log.Debug("dropping restart from a connection with no room")
		return
	}

	that.rooms.Restart(ctx, sess.user.ID, sess.roomID)
}
