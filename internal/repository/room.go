package repository

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

// RoomRegistry is the process-wide mapping from room identifier to live Room.
// It carries no locking of its own: the room service serializes every access,
// and callers must re-check existence across separate calls.
type RoomRegistry interface {
	Create(id string) *entity.Room
	Get(id string) (*entity.Room, error)
	Delete(id string)
}

type roomRegistry struct {
	boardSize int
	rooms     map[string]*entity.Room
}

func NewRoomRegistry(boardSize int) RoomRegistry {
	return &roomRegistry{
		boardSize: boardSize,
		rooms:     make(map[string]*entity.Room),
	}
}

// Create - registers a new room, generating a room code when id is empty.
func (that *roomRegistry) Create(id string) *entity.Room {
	for id == "" {
		code := pkg.GenerateRoomCode()
		if _, taken := that.rooms[code]; !taken {
			id = code
		}
	}

	room := entity.NewRoom(id, that.boardSize)
	that.rooms[id] = room

	return room
}

func (that *roomRegistry) Get(id string) (*entity.Room, error) {
	room, ok := that.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

func (that *roomRegistry) Delete(id string) {
	delete(that.rooms, id)
}
