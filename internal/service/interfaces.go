package service

import (
	"context"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Database abstracts the transactional store entry point (satisfied by
// pgxpool.Pool and by pgxmock in tests)
type Database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BetService defines the business logic interface for placement and settlement
type BetService interface {
	// PlaceBet verifies the slip against the registry, debits the stake and
	// records the bet as one atomic unit
	PlaceBet(ctx context.Context, req *PlaceBetRequest) (*models.Bet, error)

	// SettleMatch evaluates every pending bet referencing a finished match and
	// atomically finalizes bets and credits winners; operator only
	// Returns the number of bets finalized by this call
	SettleMatch(ctx context.Context, principal models.Principal, matchID string) (int, error)

	// RecordMatchResult records final scores and status on the registry;
	// operator only
	RecordMatchResult(ctx context.Context, principal models.Principal, req *RecordResultRequest) error

	// GetBetByID retrieves a single bet by ID
	GetBetByID(ctx context.Context, betID uuid.UUID) (*models.Bet, error)

	// GetUserBets retrieves bets for a specific user with pagination
	GetUserBets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Bet, error)
}

// SelectionInput is one client-claimed selection on the slip. The odd is what
// the client believes the price is; payout math never trusts it.
type SelectionInput struct {
	MatchID string          `json:"match_id" validate:"required"`
	Market  string          `json:"market" validate:"required"`
	Pick    string          `json:"pick" validate:"required"`
	Odd     decimal.Decimal `json:"odd"`
}

// PlaceBetRequest represents the request to place a new bet
type PlaceBetRequest struct {
	UserID     uuid.UUID        `validate:"required"`
	Selections []SelectionInput `validate:"required,dive"`
	Stake      decimal.Decimal  `validate:"required"`
}

// RecordResultRequest represents the operator request to record a final result
type RecordResultRequest struct {
	MatchID   string             `validate:"required"`
	HomeScore int                `validate:"gte=0"`
	AwayScore int                `validate:"gte=0"`
	Status    models.MatchStatus `validate:"required,oneof=upcoming open finished cancelled"`
}
