package repository

import (
	"context"
	"time"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create inserts a new pending bet
	// MUST be called within a transaction
	Create(ctx context.Context, tx pgx.Tx, bet *models.Bet) error

	// GetByID retrieves a bet by ID
	// Returns ErrBetNotFound if the bet doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)

	// GetPendingByMatchForUpdate retrieves every pending bet referencing the
	// match, locked FOR UPDATE so concurrent settlement runs serialize
	// MUST be called within a transaction
	GetPendingByMatchForUpdate(ctx context.Context, tx pgx.Tx, matchID string) ([]*models.Bet, error)

	// Settle finalizes a bet with a conditional pending-only write
	// Returns ErrBetAlreadySettled if the bet left the pending state first
	// MUST be called within a transaction
	Settle(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.BetStatus, winnings decimal.Decimal, settledAt time.Time) error

	// GetByUserID gets bets for a user with pagination
	// Returns empty slice if no bets found
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Bet, error)
}
