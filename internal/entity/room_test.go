package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

func newTestRoom() *Room {
	return NewRoom("ROOM42", gomoku.DefaultBoardSize)
}

// drawMark is a board filling with no winning run through (14, 14),
// used to drive a game into a draw on the final cell.
func drawMark(x, y int) string {
	if (x/3+y)%2 == 0 {
		return gomoku.PlayerX
	}

	return gomoku.PlayerO
}

func TestRoomSeat(t *testing.T) {
	t.Run("Gives X to the first seat and O to the second", func(t *testing.T) {
		// Given: an empty room
		room := newTestRoom()

		// When: two users take seats
		first := room.Seat(&User{ID: "user-1", Name: "Alice"})
		second := room.Seat(&User{ID: "user-2", Name: "Bob"})

		// Then: marks follow seating order and the first seat is the first-mover
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, gomoku.PlayerX, first.Mark)
		assert.Equal(t, gomoku.PlayerO, second.Mark)
		assert.Equal(t, "user-1", room.FirstMoverID)
	})

	t.Run("Keeps the seat of an already-seated user", func(t *testing.T) {
		// Given: a seated user
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})

		// When: the same user asks for a seat again
		player := room.Seat(&User{ID: "user-1", Name: "Alice"})

		// Then: they keep X and no second seat is taken
		require.NotNil(t, player)
		assert.Equal(t, gomoku.PlayerX, player.Mark)
		assert.Len(t, room.Players, 1)
	})

	t.Run("Gives the freed X mark to a newcomer after the X seat empties", func(t *testing.T) {
		// Given: a full room whose X-seat player was removed
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})
		room.Seat(&User{ID: "user-2", Name: "Bob"})
		room.RemoveMember("user-1")

		// When: a newcomer takes the free seat
		player := room.Seat(&User{ID: "user-3", Name: "Carol"})

		// Then: they get X, so the two seated marks stay distinct
		require.NotNil(t, player)
		assert.Equal(t, gomoku.PlayerX, player.Mark)
		assert.NotEqual(t, room.Players[0].Mark, room.Players[1].Mark)

		// And: a restarted game is playable, X opening as usual
		require.NoError(t, room.Restart("user-3"))
		assert.Equal(t, gomoku.PlayerX, room.Turn)
		require.NoError(t, room.ApplyMove("user-3", 7, 7))
		require.NoError(t, room.ApplyMove("user-2", 8, 8))
	})

	t.Run("Gives the freed O mark to a newcomer after the O seat empties", func(t *testing.T) {
		// Given: a full room whose O-seat player was removed
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})
		room.Seat(&User{ID: "user-2", Name: "Bob"})
		room.RemoveMember("user-2")

		// When: a newcomer takes the free seat
		player := room.Seat(&User{ID: "user-3", Name: "Carol"})

		// Then: they get O
		require.NotNil(t, player)
		assert.Equal(t, gomoku.PlayerO, player.Mark)
	})

	t.Run("Returns nil when both seats are taken", func(t *testing.T) {
		// Given: a full room
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})
		room.Seat(&User{ID: "user-2", Name: "Bob"})

		// When: a third user asks for a seat
		player := room.Seat(&User{ID: "user-3", Name: "Carol"})

		// Then: they get none and stay a spectator
		assert.Nil(t, player)
		assert.Len(t, room.Players, 2)
	})
}

func TestRoomPresence(t *testing.T) {
	t.Run("Tracks online state across connection handles", func(t *testing.T) {
		// Given: a member holding two connections
		room := newTestRoom()
		user := &User{ID: "user-1", Name: "Alice"}
		room.AddConn(user, "conn-a")
		room.AddConn(user, "conn-b")

		require.True(t, room.IsOnline("user-1"))

		// When: one connection drops
		online, known := room.DropConn("user-1", "conn-a")

		// Then: the member is still online
		assert.True(t, online)
		assert.True(t, known)

		// When: the last connection drops
		online, known = room.DropConn("user-1", "conn-b")

		// Then: the member is offline but still known
		assert.False(t, online)
		assert.True(t, known)
		assert.False(t, room.IsOnline("user-1"))
	})

	t.Run("Reports an unknown user as not known", func(t *testing.T) {
		room := newTestRoom()

		online, known := room.DropConn("ghost", "conn-a")

		assert.False(t, online)
		assert.False(t, known)
	})

	t.Run("Refreshes the display name on reconnect", func(t *testing.T) {
		// Given: a member who joined with one name
		room := newTestRoom()
		room.AddConn(&User{ID: "user-1", Name: "Alice"}, "conn-a")

		// When: they connect again with a new name
		room.AddConn(&User{ID: "user-1", Name: "Alicia"}, "conn-b")

		// Then: the stored name follows the latest join
		assert.Equal(t, "Alicia", room.Members["user-1"].User.Name)
	})
}

func TestRoomRemoveMember(t *testing.T) {
	// Given: a seated, connected member
	room := newTestRoom()
	user := &User{ID: "user-1", Name: "Alice"}
	room.Seat(user)
	room.AddConn(user, "conn-a")

	// When: the member is removed
	room.RemoveMember("user-1")

	// Then: both the seat and the presence are gone
	assert.Nil(t, room.PlayerByID("user-1"))
	assert.NotContains(t, room.Members, "user-1")
}

func TestRoomElectHost(t *testing.T) {
	t.Run("Prefers the first online seated player", func(t *testing.T) {
		// Given: the X seat offline and the O seat online
		room := newTestRoom()
		alice := &User{ID: "user-1", Name: "Alice"}
		bob := &User{ID: "user-2", Name: "Bob"}
		room.Seat(alice)
		room.Seat(bob)
		room.AddConn(alice, "conn-a")
		room.AddConn(bob, "conn-b")
		room.DropConn("user-1", "conn-a")

		// Then: the online seated player is elected
		assert.Equal(t, "user-2", room.ElectHost())
	})

	t.Run("Falls back to an online spectator when no player is online", func(t *testing.T) {
		// Given: both players offline and one spectator online
		room := newTestRoom()
		alice := &User{ID: "user-1", Name: "Alice"}
		room.Seat(alice)
		room.AddConn(alice, "conn-a")
		room.DropConn("user-1", "conn-a")
		room.AddConn(&User{ID: "user-3", Name: "Carol"}, "conn-c")

		assert.Equal(t, "user-3", room.ElectHost())
	})

	t.Run("Returns nobody when everyone is offline", func(t *testing.T) {
		room := newTestRoom()
		room.AddConn(&User{ID: "user-1", Name: "Alice"}, "conn-a")
		room.DropConn("user-1", "conn-a")

		assert.Empty(t, room.ElectHost())
	})
}

func TestRoomApplyMove(t *testing.T) {
	seatBoth := func(room *Room) (*Player, *Player) {
		px := room.Seat(&User{ID: "user-1", Name: "Alice"})
		po := room.Seat(&User{ID: "user-2", Name: "Bob"})

		return px, po
	}

	t.Run("Rejects a move by a spectator", func(t *testing.T) {
		room := newTestRoom()
		seatBoth(room)

		err := room.ApplyMove("user-3", 0, 0)

		assert.ErrorIs(t, err, apperror.ErrNotAPlayer)
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		room := newTestRoom()
		seatBoth(room)

		err := room.ApplyMove("user-2", 0, 0)

		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects coordinates outside the board", func(t *testing.T) {
		room := newTestRoom()
		seatBoth(room)

		assert.ErrorIs(t, room.ApplyMove("user-1", -1, 0), apperror.ErrInvalidCell)
		assert.ErrorIs(t, room.ApplyMove("user-1", 0, gomoku.DefaultBoardSize), apperror.ErrInvalidCell)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		room := newTestRoom()
		seatBoth(room)
		require.NoError(t, room.ApplyMove("user-1", 7, 7))

		err := room.ApplyMove("user-2", 7, 7)

		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Rejects any move after the game finished", func(t *testing.T) {
		room := newTestRoom()
		seatBoth(room)
		room.Outcome = DrawOutcome()

		err := room.ApplyMove("user-1", 0, 0)

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Alternates the turn after a regular move", func(t *testing.T) {
		// Given: a fresh game
		room := newTestRoom()
		seatBoth(room)

		// When: X places a mark
		require.NoError(t, room.ApplyMove("user-1", 7, 7))

		// Then: the board, last move and turn reflect it
		assert.Equal(t, gomoku.PlayerX, room.Board[7][7])
		assert.Equal(t, &Move{X: 7, Y: 7}, room.LastMove)
		assert.Equal(t, gomoku.PlayerO, room.Turn)
		assert.True(t, room.Outcome.IsNone())
	})

	t.Run("Finishes the game on a run of five", func(t *testing.T) {
		// Given: X one move away from five in a row
		room := newTestRoom()
		seatBoth(room)
		for x := 0; x < 4; x++ {
			require.NoError(t, room.ApplyMove("user-1", x, 0))
			require.NoError(t, room.ApplyMove("user-2", x, 1))
		}

		// When: X completes the run
		require.NoError(t, room.ApplyMove("user-1", 4, 0))

		// Then: X wins and the turn stops advancing
		assert.Equal(t, WinOutcome(gomoku.PlayerX, "user-1"), room.Outcome)
		assert.Equal(t, "user-1", room.LastWinnerID)
		assert.Equal(t, gomoku.PlayerX, room.Turn)
	})

	t.Run("Finishes the game in a draw when the board fills", func(t *testing.T) {
		// Given: one empty cell left and no winning run through it
		room := newTestRoom()
		px, _ := seatBoth(room)
		for y := range room.Board {
			for x := range room.Board[y] {
				room.Board[y][x] = drawMark(x, y)
			}
		}
		room.Board[14][14] = gomoku.EmptyCell
		room.Turn = px.Mark

		// When: the last cell is filled
		require.NoError(t, room.ApplyMove(px.ID, 14, 14))

		// Then: the game is a draw with no winner on record
		assert.True(t, room.Outcome.IsDraw())
		assert.Empty(t, room.LastWinnerID)
	})
}

func TestRoomRestart(t *testing.T) {
	playToXWin := func(room *Room) {
		for x := 0; x < 4; x++ {
			require.NoError(t, room.ApplyMove("user-1", x, 0))
			require.NoError(t, room.ApplyMove("user-2", x, 1))
		}
		require.NoError(t, room.ApplyMove("user-1", 4, 0))
	}

	t.Run("Rejects a restart by a spectator", func(t *testing.T) {
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})

		err := room.Restart("user-3")

		assert.ErrorIs(t, err, apperror.ErrNotAPlayer)
	})

	t.Run("Lets the last winner move first", func(t *testing.T) {
		// Given: a finished game won by O
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})
		room.Seat(&User{ID: "user-2", Name: "Bob"})
		room.ApplyMove("user-1", 7, 7)
		room.Board = gomoku.NewBoard(gomoku.DefaultBoardSize)
		room.Outcome = WinOutcome(gomoku.PlayerO, "user-2")
		room.LastWinnerID = "user-2"

		// When: either player restarts
		require.NoError(t, room.Restart("user-1"))

		// Then: the winner's mark opens and becomes the recorded first-mover
		assert.Equal(t, gomoku.PlayerO, room.Turn)
		assert.Equal(t, "user-2", room.FirstMoverID)
	})

	t.Run("Keeps the first-mover after a draw", func(t *testing.T) {
		// Given: a drawn game where X moved first
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})
		room.Seat(&User{ID: "user-2", Name: "Bob"})
		room.Outcome = DrawOutcome()

		// When: the game restarts
		require.NoError(t, room.Restart("user-2"))

		// Then: the previous first-mover opens again
		assert.Equal(t, gomoku.PlayerX, room.Turn)
		assert.Equal(t, "user-1", room.FirstMoverID)
	})

	t.Run("Clears the board, outcome and last move", func(t *testing.T) {
		// Given: a finished game with marks on the board
		room := newTestRoom()
		room.Seat(&User{ID: "user-1", Name: "Alice"})
		room.Seat(&User{ID: "user-2", Name: "Bob"})
		playToXWin(room)

		// When: the game restarts
		require.NoError(t, room.Restart("user-2"))

		// Then: the room is ready for a fresh game
		assert.True(t, room.Outcome.IsNone())
		assert.Nil(t, room.LastMove)
		assert.Empty(t, room.LastWinnerID)
		for y := range room.Board {
			for x := range room.Board[y] {
				assert.Equal(t, gomoku.EmptyCell, room.Board[y][x])
			}
		}
	})
}

func TestRoomState(t *testing.T) {
	t.Run("Copies the board and players into the snapshot", func(t *testing.T) {
		// Given: a room mid-game with one offline member
		room := newTestRoom()
		alice := &User{ID: "user-1", Name: "Alice"}
		bob := &User{ID: "user-2", Name: "Bob"}
		room.Seat(alice)
		room.Seat(bob)
		room.AddConn(alice, "conn-a")
		room.AddConn(bob, "conn-b")
		room.DropConn("user-2", "conn-b")
		room.HostID = "user-1"
		require.NoError(t, room.ApplyMove("user-1", 3, 4))

		// When: a snapshot is taken and the room mutates afterwards
		state := room.State()
		room.Board[4][3] = gomoku.EmptyCell
		room.Players[0].Name = "Mallory"

		// Then: the snapshot is unaffected by later mutations
		assert.Equal(t, gomoku.PlayerX, state.Board[4][3])
		assert.Equal(t, "Alice", state.Players[0].Name)
		assert.Equal(t, &Move{X: 3, Y: 4}, state.LastMove)
		assert.Equal(t, gomoku.PlayerO, state.NextTurn)
		assert.Equal(t, "user-1", state.HostID)
		assert.Equal(t, "user-1", state.FirstMoverID)
	})

	t.Run("Lists members sorted by user ID with their online flag", func(t *testing.T) {
		room := newTestRoom()
		room.AddConn(&User{ID: "user-2", Name: "Bob"}, "conn-b")
		room.AddConn(&User{ID: "user-1", Name: "Alice"}, "conn-a")
		room.DropConn("user-2", "conn-b")

		state := room.State()

		require.Len(t, state.Members, 2)
		assert.Equal(t, "user-1", state.Members[0].User.ID)
		assert.True(t, state.Members[0].Online)
		assert.Equal(t, "user-2", state.Members[1].User.ID)
		assert.False(t, state.Members[1].Online)
	})
}
