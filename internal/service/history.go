package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// recordTimeout bounds how long a background outcome write may take.
const recordTimeout = 5 * time.Second

type HistoryService interface {
	RecordOutcome(ctx context.Context, winnerID, firstID, secondID string) error
	RecordOutcomeAsync(winnerID, firstID, secondID string)
	PairHistory(ctx context.Context, meID, opponentID string) (*entity.PairHistory, error)
}

type historyRepo interface {
	IncrementOutcome(ctx context.Context, winnerID, firstID, secondID string) error
	GetByPair(ctx context.Context, firstID, secondID string) (*entity.PairRecord, error)
}

type historyService struct {
	logger      *slog.Logger
	historyRepo historyRepo
}

func NewHistoryService(logger *slog.Logger, historyRepo historyRepo) HistoryService {
	return &historyService{
		logger:      logger,
		historyRepo: historyRepo,
	}
}

// RecordOutcome - credits the winner against their opponent, or a draw when
// winnerID is empty. The pair arguments may arrive in either order.
func (that *historyService) RecordOutcome(ctx context.Context, winnerID, firstID, secondID string) error {
	if err := that.historyRepo.IncrementOutcome(ctx, winnerID, firstID, secondID); err != nil {
		return fmt.Errorf("failed to increment outcome: %w", err)
	}

	return nil
}

// RecordOutcomeAsync - fire-and-forget recording for the move path: the
// in-memory outcome and its broadcast never wait on store latency, and a
// failed write is logged and swallowed.
func (that *historyService) RecordOutcomeAsync(winnerID, firstID, secondID string) {
	log := that.logger.With("method", "RecordOutcomeAsync")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.RecordOutcome(ctx, winnerID, firstID, secondID); err != nil {
			log.Error("failed to record game outcome", "error", err)
		}
	}()
}

// PairHistory - reads the canonical record and adjusts it to the caller's
// perspective.
func (that *historyService) PairHistory(ctx context.Context, meID, opponentID string) (*entity.PairHistory, error) {
	record, err := that.historyRepo.GetByPair(ctx, meID, opponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pair record: %w", err)
	}

	history := &entity.PairHistory{
		Me:       meID,
		Opponent: opponentID,
		Draws:    record.Draws,
		Total:    record.WinsA + record.WinsB + record.Draws,
	}

	if record.PlayerA == meID {
		history.Wins = record.WinsA
		history.Losses = record.WinsB
	} else {
		history.Wins = record.WinsB
		history.Losses = record.WinsA
	}

	return history, nil
}
