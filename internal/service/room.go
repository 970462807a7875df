package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
)

// Broadcaster fans room events out to live connections. The room service
// never touches a connection itself.
type Broadcaster interface {
	BroadcastRoomState(roomID string, state *entity.RoomState)
	BroadcastRoomDeleted(roomID string)
}

type historyRecorder interface {
	RecordOutcomeAsync(winnerID, firstID, secondID string)
}

// RoomService is the target of every session event. A single mutex serializes
// all room mutations, including grace-timer callbacks, so each room behaves
// as if events were processed one at a time. Invalid gameplay events are
// dropped silently; clients get no error channel.
type RoomService struct {
	logger  *slog.Logger
	history historyRecorder

	mu       sync.Mutex
	registry repository.RoomRegistry

	graceTimeout time.Duration
	broadcaster  Broadcaster
}

func NewRoomService(logger *slog.Logger, registry repository.RoomRegistry, history historyRecorder, graceTimeout time.Duration) *RoomService {
	return &RoomService{
		logger:       logger,
		registry:     registry,
		history:      history,
		graceTimeout: graceTimeout,
	}
}

// SetBroadcaster - attaches the fan-out sink. Must be called before the first
// event reaches the service.
func (that *RoomService) SetBroadcaster(broadcaster Broadcaster) {
	that.broadcaster = broadcaster
}

func (that *RoomService) mustBroadcaster() Broadcaster {
	if that.broadcaster == nil {
		panic("room service: broadcaster is not attached, call SetBroadcaster first")
	}

	return that.broadcaster
}

// CreateRoom - allocates a room with a generated code.
func (that *RoomService) CreateRoom(_ context.Context) *entity.Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.registry.Create("")
}

// Join - resolves or lazily creates the room, cancels a pending grace timer
// for the returning user, upserts presence, seats the user if a seat is free
// and assigns host if the room has none. Broadcasts the new snapshot.
func (that *RoomService) Join(_ context.Context, connID, roomID string, user *entity.User) {
	log := that.logger.With("method", "Join", "roomID", roomID)

	if user == nil || user.ID == "" || roomID == "" {
		log.Debug("dropping join without user or room id")
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomID)
	if err != nil {
		room = that.registry.Create(roomID)
		log.Info("room created on first join")
	}

	if timer, pending := room.OfflineTimers[user.ID]; pending {
		timer.Stop()
		delete(room.OfflineTimers, user.ID)
	}

	room.AddConn(user, connID)
	room.Seat(user)

	if room.HostID == "" {
		room.HostID = user.ID
	}

	that.mustBroadcaster().BroadcastRoomState(room.ID, room.State())
}

// MakeMove - applies a move for the user and broadcasts the resulting
// snapshot. A finished game's outcome is pushed to the pair history in the
// background, crediting the winner against their opponent.
func (that *RoomService) MakeMove(_ context.Context, userID, roomID string, x, y int) {
	log := that.logger.With("method", "MakeMove", "roomID", roomID)

	if userID == "" || roomID == "" {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomID)
	if err != nil {
		log.Debug("dropping move for unknown room")
		return
	}

	if err = room.ApplyMove(userID, x, y); err != nil {
		log.Debug("dropping invalid move", "error", err)
		return
	}

	switch {
	case room.Outcome.IsWin():
		if opponent := room.Opponent(userID); opponent != nil {
			that.history.RecordOutcomeAsync(userID, userID, opponent.ID)
		}
	case room.Outcome.IsDraw():
		if len(room.Players) == 2 {
			that.history.RecordOutcomeAsync("", room.Players[0].ID, room.Players[1].ID)
		}
	}

	that.mustBroadcaster().BroadcastRoomState(room.ID, room.State())
}

// Restart - starts a fresh game in the room on behalf of a seated player.
func (that *RoomService) Restart(_ context.Context, userID, roomID string) {
	log := that.logger.With("method", "Restart", "roomID", roomID)

	if userID == "" || roomID == "" {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomID)
	if err != nil {
		log.Debug("dropping restart for unknown room")
		return
	}

	if err = room.Restart(userID); err != nil {
		log.Debug("dropping restart", "error", err)
		return
	}

	that.mustBroadcaster().BroadcastRoomState(room.ID, room.State())
}

// Disconnect - drops one connection handle from the user's presence. The
// first time a user loses their last handle a single grace timer is armed;
// reconnecting before it fires keeps seat, mark and host status.
func (that *RoomService) Disconnect(_ context.Context, connID, userID, roomID string) {
	log := that.logger.With("method", "Disconnect", "roomID", roomID, "userID", userID)

	if userID == "" || roomID == "" {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomID)
	if err != nil {
		return
	}

	online, known := room.DropConn(userID, connID)
	if !known || online {
		that.mustBroadcaster().BroadcastRoomState(room.ID, room.State())
		return
	}

	if _, pending := room.OfflineTimers[userID]; !pending {
		room.OfflineTimers[userID] = time.AfterFunc(that.graceTimeout, func() {
			that.expireOffline(roomID, userID)
		})
		log.Info("grace timer started")
	}

	// the member stays visible, now flagged offline, until the timer fires
	that.mustBroadcaster().BroadcastRoomState(room.ID, room.State())
}

// expireOffline - grace-timer callback. Fires long after scheduling, so room
// and presence are re-resolved fresh under the lock: the user may have
// reconnected or the room may already be gone.
func (that *RoomService) expireOffline(roomID, userID string) {
	log := that.logger.With("method", "expireOffline", "roomID", roomID, "userID", userID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomID)
	if err != nil {
		return
	}

	delete(room.OfflineTimers, userID)

	if room.IsOnline(userID) {
		log.Info("user reconnected within the grace window")
		return
	}

	room.RemoveMember(userID)
	log.Info("user removed after grace window")

	if room.HostID == userID {
		room.HostID = room.ElectHost()

		if room.HostID == "" {
			that.teardownLocked(room)
			return
		}
	}

	that.mustBroadcaster().BroadcastRoomState(room.ID, room.State())
}

// DeleteRoom - tears a room down on request, notifying every connected
// client.
func (that *RoomService) DeleteRoom(_ context.Context, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomID)
	if err != nil {
		return err
	}

	that.teardownLocked(room)

	return nil
}

// teardownLocked - stops pending timers, removes the room from the registry
// and announces the deletion globally. No room-state is broadcast for a room
// that no longer exists. Callers hold the service mutex.
func (that *RoomService) teardownLocked(room *entity.Room) {
	log := that.logger.With("method", "teardownLocked", "roomID", room.ID)

	for userID, timer := range room.OfflineTimers {
		timer.Stop()
		delete(room.OfflineTimers, userID)
	}

	that.registry.Delete(room.ID)
	that.mustBroadcaster().BroadcastRoomDeleted(room.ID)

	log.Info("room deleted")
}
