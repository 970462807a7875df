package entity

// PairRecord is the durable win/loss/draw tally between two participants.
// PlayerA and PlayerB are always the lexicographically sorted pair, no matter
// who played first or who won.
type PairRecord struct {
	PairKey string
	PlayerA string
	PlayerB string
	WinsA   int
	WinsB   int
	Draws   int
}

// PairHistory is a PairRecord read from one participant's perspective.
type PairHistory struct {
	Me       string `json:"me"`
	Opponent string `json:"opponent"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
	Total    int    `json:"total"`
}

// CanonicalPair - sorts two participant identifiers into the stored (A, B)
// ordering.
func CanonicalPair(firstID, secondID string) (a, b string) {
	if firstID <= secondID {
		return firstID, secondID
	}

	return secondID, firstID
}

// PairKey - builds the primary key for a pair's record.
func PairKey(firstID, secondID string) string {
	a, b := CanonicalPair(firstID, secondID)

	return a + "|" + b
}

// NewPairRecord - returns the all-zero record for a pair.
func NewPairRecord(firstID, secondID string) *PairRecord {
	a, b := CanonicalPair(firstID, secondID)

	return &PairRecord{
		PairKey: a + "|" + b,
		PlayerA: a,
		PlayerB: b,
	}
}
