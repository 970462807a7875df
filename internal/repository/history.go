package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// HistoryRepository is the durable pairwise win/loss/draw tally. Records are
// keyed by the sorted pair of identifiers; a missing record reads as all
// zeros.
type HistoryRepository interface {
	IncrementOutcome(ctx context.Context, winnerID, firstID, secondID string) error
	GetByPair(ctx context.Context, firstID, secondID string) (*entity.PairRecord, error)
}

type dbHistory struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &dbHistory{
		conn: conn,
	}
}

// IncrementOutcome - atomically bumps exactly one counter on the canonical
// record, creating it with zero counters first if absent. An empty winnerID
// records a draw. A self-pair is never recorded.
func (that *dbHistory) IncrementOutcome(ctx context.Context, winnerID, firstID, secondID string) error {
	a, b := entity.CanonicalPair(firstID, secondID)
	if a == b {
		return nil
	}

	var column string
	switch winnerID {
	case "":
		column = "draws"
	case a:
		column = "wins_a"
	case b:
		column = "wins_b"
	default:
		return fmt.Errorf("%w: %s", apperror.ErrWinnerNotInPair, winnerID)
	}

	query := fmt.Sprintf(`INSERT INTO histories (pair_key, player_a, player_b, %s, updated_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(pair_key) DO UPDATE SET %s = %s + 1, updated_at = excluded.updated_at`,
		column, column, column)

	_, err := that.conn.ExecContext(ctx, query, entity.PairKey(a, b), a, b, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	return nil
}

// GetByPair - returns the canonical record for the pair, or the all-zero
// default when the pair has no history yet.
func (that *dbHistory) GetByPair(ctx context.Context, firstID, secondID string) (*entity.PairRecord, error) {
	query := `SELECT pair_key, player_a, player_b, wins_a, wins_b, draws FROM histories WHERE pair_key = ?`

	record := &entity.PairRecord{}

	err := that.conn.QueryRowContext(ctx, query, entity.PairKey(firstID, secondID)).
		Scan(&record.PairKey, &record.PlayerA, &record.PlayerB, &record.WinsA, &record.WinsB, &record.Draws)

	if errors.Is(err, sql.ErrNoRows) {
		return entity.NewPairRecord(firstID, secondID), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get pair record: %w", err)
	}

	return record, nil
}
