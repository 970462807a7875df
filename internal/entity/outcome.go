package entity

const (
	OutcomeNone = "none"
	OutcomeWin  = "win"
	OutcomeDraw = "draw"
)

// Outcome is the result of a game as a single tagged value: no outcome yet,
// a win by a mark, or a draw.
type Outcome struct {
	Kind     string `json:"kind"`
	Mark     string `json:"mark,omitempty"`
	WinnerID string `json:"winnerId,omitempty"`
}

func NoOutcome() Outcome {
	return Outcome{Kind: OutcomeNone}
}

func WinOutcome(mark, winnerID string) Outcome {
	return Outcome{Kind: OutcomeWin, Mark: mark, WinnerID: winnerID}
}

func DrawOutcome() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func (that Outcome) IsNone() bool {
	return that.Kind == OutcomeNone || that.Kind == ""
}

func (that Outcome) IsWin() bool {
	return that.Kind == OutcomeWin
}

func (that Outcome) IsDraw() bool {
	return that.Kind == OutcomeDraw
}
