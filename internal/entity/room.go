package entity

import (
	"sort"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// Presence tracks the live connection handles a room member currently holds.
// A member is online iff the set is non-empty.
type Presence struct {
	User  *User
	Conns map[string]struct{}
}

func (that *Presence) Online() bool {
	return len(that.Conns) > 0
}

// Move holds board coordinates of a placed mark.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Room is one game session: the board, the two seated players, the presence
// of every connected member, turn state and outcome. Board dimensions are
// fixed for the lifetime of the room. Rooms carry no synchronization of
// their own; callers serialize all mutations.
type Room struct {
	ID            string
	Board         [][]string
	Players       []*Player
	Turn          string
	Outcome       Outcome
	LastMove      *Move
	HostID        string
	Members       map[string]*Presence
	OfflineTimers map[string]*time.Timer
	FirstMoverID  string
	LastWinnerID  string
}

func NewRoom(id string, boardSize int) *Room {
	return &Room{
		ID:            id,
		Board:         gomoku.NewBoard(boardSize),
		Turn:          gomoku.PlayerX,
		Outcome:       NoOutcome(),
		Members:       make(map[string]*Presence),
		OfflineTimers: make(map[string]*time.Timer),
	}
}

func (that *Room) PlayerByID(userID string) *Player {
	for _, player := range that.Players {
		if player.ID == userID {
			return player
		}
	}

	return nil
}

func (that *Room) PlayerByMark(mark string) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

// Opponent - returns the single other seated player, or nil.
func (that *Room) Opponent(userID string) *Player {
	for _, player := range that.Players {
		if player.ID != userID {
			return player
		}
	}

	return nil
}

// Seat - binds the user to a free seat. An empty room's first seat gets X;
// a second seat gets whichever mark the already-seated player does not hold,
// so marks stay distinct even after a freed seat is retaken. A user already
// seated keeps their seat. When the X seat is taken and no first-mover is on
// record yet, the seated user becomes the first-mover. Returns nil when both
// seats are taken.
func (that *Room) Seat(user *User) *Player {
	if player := that.PlayerByID(user.ID); player != nil {
		return player
	}

	if len(that.Players) >= 2 {
		return nil
	}

	mark := gomoku.PlayerX
	if len(that.Players) == 1 {
		mark = gomoku.ToggleMark(that.Players[0].Mark)
	}

	player := &Player{User: *user, Mark: mark}
	that.Players = append(that.Players, player)

	if that.FirstMoverID == "" && mark == gomoku.PlayerX {
		that.FirstMoverID = user.ID
	}

	return player
}

// AddConn - upserts the user's presence with a new connection handle and
// refreshes the stored display name.
func (that *Room) AddConn(user *User, connID string) {
	presence, ok := that.Members[user.ID]
	if !ok {
		presence = &Presence{User: user, Conns: make(map[string]struct{})}
		that.Members[user.ID] = presence
	}

	presence.User = user
	presence.Conns[connID] = struct{}{}
}

// DropConn - removes one connection handle from the user's presence.
// Reports whether the user is still online and whether they were known at all.
func (that *Room) DropConn(userID, connID string) (online, known bool) {
	presence, ok := that.Members[userID]
	if !ok {
		return false, false
	}

	delete(presence.Conns, connID)

	return presence.Online(), true
}

func (that *Room) IsOnline(userID string) bool {
	presence, ok := that.Members[userID]

	return ok && presence.Online()
}

// RemoveMember - drops the user from presence and, if seated, from the players.
func (that *Room) RemoveMember(userID string) {
	delete(that.Members, userID)

	for i, player := range that.Players {
		if player.ID == userID {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			break
		}
	}
}

// ElectHost - picks the next host: the first seated player still holding a
// live connection, otherwise any online member, otherwise nobody.
func (that *Room) ElectHost() string {
	for _, player := range that.Players {
		if that.IsOnline(player.ID) {
			return player.ID
		}
	}

	memberIDs := make([]string, 0, len(that.Members))
	for userID := range that.Members {
		memberIDs = append(memberIDs, userID)
	}
	sort.Strings(memberIDs)

	for _, userID := range memberIDs {
		if that.IsOnline(userID) {
			return userID
		}
	}

	return ""
}

// ApplyMove - places the user's mark at (x, y) and updates turn and outcome.
// Every rejection is a sentinel error so callers can drop the move silently.
func (that *Room) ApplyMove(userID string, x, y int) error {
	if !that.Outcome.IsNone() {
		return apperror.ErrGameFinished
	}

	player := that.PlayerByID(userID)
	if player == nil {
		return apperror.ErrNotAPlayer
	}

	if that.Turn != player.Mark {
		return apperror.ErrNotYourTurn
	}

	if !gomoku.Contains(that.Board, x, y) {
		return apperror.ErrInvalidCell
	}

	if gomoku.IsOccupied(that.Board, x, y) {
		return apperror.ErrCellOccupied
	}

	that.Board[y][x] = player.Mark
	that.LastMove = &Move{X: x, Y: y}

	switch {
	case gomoku.Winner(that.Board, x, y) == player.Mark:
		that.Outcome = WinOutcome(player.Mark, player.ID)
		that.LastWinnerID = player.ID
	case gomoku.IsFull(that.Board):
		that.Outcome = DrawOutcome()
		that.LastWinnerID = ""
	default:
		that.Turn = gomoku.ToggleMark(that.Turn)
	}

	return nil
}

// Restart - resets the board for a new game between the same seats. The
// winner of the finished game moves first; after a draw the recorded
// first-mover keeps the right; with no history the X seat starts.
func (that *Room) Restart(userID string) error {
	if that.PlayerByID(userID) == nil {
		return apperror.ErrNotAPlayer
	}

	starterID := that.LastWinnerID
	if starterID == "" {
		starterID = that.FirstMoverID
	}

	var starter *Player
	if starterID != "" {
		starter = that.PlayerByID(starterID)
	}

	that.Board = gomoku.NewBoard(len(that.Board))
	that.Outcome = NoOutcome()
	that.LastMove = nil

	if starter != nil {
		that.Turn = starter.Mark
		that.FirstMoverID = starter.ID
	} else {
		that.Turn = gomoku.PlayerX
		that.FirstMoverID = ""
		if seatX := that.PlayerByMark(gomoku.PlayerX); seatX != nil {
			that.FirstMoverID = seatX.ID
		}
	}

	that.LastWinnerID = ""

	return nil
}
