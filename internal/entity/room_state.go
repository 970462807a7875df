package entity

import "sort"

// MemberState is the presence view of one room member.
type MemberState struct {
	User   *User `json:"user"`
	Online bool  `json:"online"`
}

// RoomState is the full snapshot broadcast to room members after every
// mutation. It is the only shape transports ever see.
type RoomState struct {
	ID           string        `json:"id"`
	Board        [][]string    `json:"board"`
	Players      []*Player     `json:"players"`
	NextTurn     string        `json:"nextTurn"`
	Outcome      Outcome       `json:"outcome"`
	LastMove     *Move         `json:"lastMove,omitempty"`
	HostID       string        `json:"hostId,omitempty"`
	Members      []MemberState `json:"members"`
	FirstMoverID string        `json:"firstMoverId,omitempty"`
}

// State - builds a point-in-time snapshot of the room. The board and players
// are copied so later mutations never leak into an already-broadcast state.
func (that *Room) State() *RoomState {
	board := make([][]string, len(that.Board))
	for y := range that.Board {
		board[y] = make([]string, len(that.Board[y]))
		copy(board[y], that.Board[y])
	}

	players := make([]*Player, len(that.Players))
	for i, player := range that.Players {
		copied := *player
		players[i] = &copied
	}

	var lastMove *Move
	if that.LastMove != nil {
		move := *that.LastMove
		lastMove = &move
	}

	members := make([]MemberState, 0, len(that.Members))
	for _, presence := range that.Members {
		user := *presence.User
		members = append(members, MemberState{User: &user, Online: presence.Online()})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].User.ID < members[j].User.ID })

	return &RoomState{
		ID:           that.ID,
		Board:        board,
		Players:      players,
		NextTurn:     that.Turn,
		Outcome:      that.Outcome,
		LastMove:     lastMove,
		HostID:       that.HostID,
		Members:      members,
		FirstMoverID: that.FirstMoverID,
	}
}
