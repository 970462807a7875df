package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const shutdownTimeout = 5 * time.Second

type roomService interface {
	Join(ctx context.Context, connID, roomID string, user *entity.User)
	MakeMove(ctx context.Context, userID, roomID string, x, y int)
	Restart(ctx context.Context, userID, roomID string)
	Disconnect(ctx context.Context, connID, userID, roomID string)
}

// session is the per-connection context: the connection handle plus the
// bound user and room. user and roomID are written only by the connection's
// own read loop; the write mutex serializes concurrent broadcasts.
type session struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	user   *entity.User
	roomID string
}

func (that *session) send(message *Message) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger   *slog.Logger
	rooms    roomService
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[*session]struct{}
	groups   map[string]map[*session]struct{}

	handlers map[string]func(ctx context.Context, sess *session, payload json.RawMessage)
}

func New(logger *slog.Logger, rooms roomService) *Server {
	server := &Server{
		logger: logger,
		rooms:  rooms,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[*session]struct{}),
		groups:   make(map[string]map[*session]struct{}),
		handlers: make(map[string]func(context.Context, *session, json.RawMessage)),
	}

	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionRestart] = server.handleRestart

	return server
}

// Handler - returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveConnection)

	return mux
}

// Start - starts the WebSocket server and blocks until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: that.Handler(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the request and runs the connection's read loop
// until the peer goes away.
func (that *Server) serveConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	sess := &session{
		id:   pkg.GenerateConnID(),
		conn: conn,
	}

	that.mu.Lock()
	that.sessions[sess] = struct{}{}
	that.mu.Unlock()

	log = log.With("connID", sess.id)
	log.Info("WebSocket connection established")

	defer that.closeSession(sess)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug("connection closed", "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("dropping malformed message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("dropping unknown action", "action", message.Action)
			continue
		}

		handler(req.Context(), sess, message.Payload)
	}
}

// closeSession - transport-level disconnect: the session leaves its broadcast
// group before the room service is told, so a dead connection never receives
// the resulting snapshot.
func (that *Server) closeSession(sess *session) {
	that.mu.Lock()
	delete(that.sessions, sess)
	that.leaveGroupLocked(sess, sess.roomID)
	that.mu.Unlock()

	_ = sess.conn.Close()

	if sess.user != nil && sess.roomID != "" {
		that.rooms.Disconnect(context.Background(), sess.id, sess.user.ID, sess.roomID)
	}
}

func (that *Server) joinGroup(sess *session, roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	group, ok := that.groups[roomID]
	if !ok {
		group = make(map[*session]struct{})
		that.groups[roomID] = group
	}

	group[sess] = struct{}{}
}

func (that *Server) leaveGroup(sess *session, roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.leaveGroupLocked(sess, roomID)
}

func (that *Server) leaveGroupLocked(sess *session, roomID string) {
	if roomID == "" {
		return
	}

	if group, ok := that.groups[roomID]; ok {
		delete(group, sess)
		if len(group) == 0 {
			delete(that.groups, roomID)
		}
	}
}

// BroadcastRoomState - sends the room snapshot to every member of the room's
// broadcast group.
func (that *Server) BroadcastRoomState(roomID string, state *entity.RoomState) {
	log := that.logger.With("method", "BroadcastRoomState", "roomID", roomID)

	message, err := newMessage(actionRoomState, state)
	if err != nil {
		log.Error("failed to marshal room state", "error", err)
		return
	}

	for _, sess := range that.groupMembers(roomID) {
		if err = sess.send(message); err != nil {
			log.Error("failed to send room state", "connID", sess.id, "error", err)
		}
	}
}

// BroadcastRoomDeleted - announces a torn-down room to every connected
// client and drops the room's broadcast group.
func (that *Server) BroadcastRoomDeleted(roomID string) {
	log := that.logger.With("method", "BroadcastRoomDeleted", "roomID", roomID)

	message, err := newMessage(actionRoomDeleted, RoomDeletedPayload{RoomID: roomID})
	if err != nil {
		log.Error("failed to marshal room deletion", "error", err)
		return
	}

	that.mu.Lock()
	delete(that.groups, roomID)
	targets := make([]*session, 0, len(that.sessions))
	for sess := range that.sessions {
		targets = append(targets, sess)
	}
	that.mu.Unlock()

	for _, sess := range targets {
		if err = sess.send(message); err != nil {
			log.Error("failed to send room deletion", "connID", sess.id, "error", err)
		}
	}
}

func (that *Server) groupMembers(roomID string) []*session {
	that.mu.RLock()
	defer that.mu.RUnlock()

	members := make([]*session, 0, len(that.groups[roomID]))
	for sess := range that.groups[roomID] {
		members = append(members, sess)
	}

	return members
}

func newMessage(action string, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &Message{Action: action, Payload: raw}, nil
}
