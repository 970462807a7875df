package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
)

type userService interface {
	CreateUser(ctx context.Context, name string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

type roomService interface {
	CreateRoom(ctx context.Context) *entity.Room
	DeleteRoom(ctx context.Context, roomID string) error
}

type historyService interface {
	PairHistory(ctx context.Context, meID, opponentID string) (*entity.PairHistory, error)
}

type Handlers struct {
	logger  *slog.Logger
	users   userService
	rooms   roomService
	history historyService
}

func NewHandlers(logger *slog.Logger, users userService, rooms roomService, history historyService) *Handlers {
	return &Handlers{
		logger:  logger,
		users:   users,
		rooms:   rooms,
		history: history,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// CreateUser - mints a user identifier for a display name.
func (that *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateUser")

	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := that.users.CreateUser(r.Context(), req.Name)
	if errors.Is(err, apperror.ErrEmptyName) {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	if err != nil {
		log.Error("failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (that *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetUser")

	user, err := that.users.GetUserByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if err != nil {
		log.Error("failed to get user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// CreateRoom - allocates a room and returns its identifier.
func (that *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	room := that.rooms.CreateRoom(r.Context())

	writeJSON(w, http.StatusOK, map[string]string{"roomId": room.ID})
}

// DeleteRoom - tears a room down; its members are notified over the
// real-time channel.
func (that *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "DeleteRoom")

	err := that.rooms.DeleteRoom(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrRoomNotFound) {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	if err != nil {
		log.Error("failed to delete room", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete room")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHistory - returns the pairwise tally from the caller's perspective.
func (that *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetHistory")

	userID := r.URL.Query().Get("userId")
	opponentID := r.URL.Query().Get("opponentId")

	if userID == "" || opponentID == "" {
		writeError(w, http.StatusBadRequest, "userId & opponentId required")
		return
	}

	history, err := that.history.PairHistory(r.Context(), userID, opponentID)
	if err != nil {
		log.Error("failed to get pair history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get history")
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
