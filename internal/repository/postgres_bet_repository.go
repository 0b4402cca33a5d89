package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PostgresBetRepository implements BetRepository using PostgreSQL
type PostgresBetRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresBetRepository creates a new PostgreSQL bet repository
func NewPostgresBetRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresBetRepository {
	return &PostgresBetRepository{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_bet_repository").Logger(),
	}
}

const betColumns = `id, user_id, selections, stake, total_odds, potential_payout,
	   status, winnings, match_ids, created_at, settled_at`

// Create inserts a new pending bet
func (r *PostgresBetRepository) Create(ctx context.Context, tx pgx.Tx, bet *models.Bet) error {
	query := `
		INSERT INTO bets (
			id, user_id, selections, stake, total_odds, potential_payout,
			status, winnings, match_ids, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if bet.ID == uuid.Nil {
		bet.ID = uuid.New()
	}
	if bet.CreatedAt.IsZero() {
		bet.CreatedAt = time.Now()
	}
	if bet.Status == "" {
		bet.Status = models.BetStatusPending
	}

	selectionsJSON, err := json.Marshal(bet.Selections)
	if err != nil {
		return fmt.Errorf("marshal selections: %w", err)
	}

	_, err = tx.Exec(ctx, query,
		bet.ID,
		bet.UserID,
		selectionsJSON,
		bet.Stake.String(),
		bet.TotalOdds.String(),
		bet.PotentialPayout.String(),
		bet.Status,
		decimal.Zero.String(),
		bet.MatchIDs,
		bet.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("bet_id", bet.ID.String()).
			Str("user_id", bet.UserID.String()).
			Msg("failed to create bet")
		return fmt.Errorf("create bet: %w", err)
	}

	r.logger.Info().
		Str("bet_id", bet.ID.String()).
		Str("user_id", bet.UserID.String()).
		Str("stake", bet.Stake.String()).
		Str("total_odds", bet.TotalOdds.String()).
		Int("selections", len(bet.Selections)).
		Msg("bet created")

	return nil
}

// GetByID retrieves a bet by ID
func (r *PostgresBetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	return r.scanBet(r.pool.QueryRow(ctx, query, id))
}

// GetPendingByMatchForUpdate retrieves pending bets referencing the match with
// a FOR UPDATE lock so a concurrent settlement run blocks rather than reading
// the same pending set
func (r *PostgresBetRepository) GetPendingByMatchForUpdate(ctx context.Context, tx pgx.Tx, matchID string) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE $1 = ANY(match_ids) AND status = $2
		ORDER BY created_at ASC
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, matchID, models.BetStatusPending)
	if err != nil {
		r.logger.Error().Err(err).
			Str("match_id", matchID).
			Msg("failed to query pending bets for match")
		return nil, fmt.Errorf("query pending bets: %w", err)
	}
	defer rows.Close()

	return r.scanBets(rows)
}

// Settle finalizes a bet; the status guard makes pending -> won/lost a
// one-way transition that exactly one settlement run can perform
func (r *PostgresBetRepository) Settle(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.BetStatus, winnings decimal.Decimal, settledAt time.Time) error {
	query := `
		UPDATE bets
		SET status = $1, winnings = $2, settled_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := tx.Exec(ctx, query,
		status,
		winnings.String(),
		settledAt,
		id,
		models.BetStatusPending,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("bet_id", id.String()).
			Str("status", string(status)).
			Msg("failed to settle bet")
		return fmt.Errorf("settle bet: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.logger.Warn().
			Str("bet_id", id.String()).
			Msg("bet no longer pending, skipping settlement")
		return models.ErrBetAlreadySettled
	}

	r.logger.Info().
		Str("bet_id", id.String()).
		Str("status", string(status)).
		Str("winnings", winnings.String()).
		Msg("bet settled")

	return nil
}

// GetByUserID gets bets for a user with pagination
func (r *PostgresBetRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to query bets by user")
		return nil, fmt.Errorf("query bets by user: %w", err)
	}
	defer rows.Close()

	return r.scanBets(rows)
}

// scanBet scans a single bet from a row
func (r *PostgresBetRepository) scanBet(row pgx.Row) (*models.Bet, error) {
	bet, err := scanBetRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrBetNotFound
		}
		r.logger.Error().Err(err).Msg("failed to scan bet")
		return nil, err
	}
	return bet, nil
}

// scanBets scans multiple bets from rows
func (r *PostgresBetRepository) scanBets(rows pgx.Rows) ([]*models.Bet, error) {
	var bets []*models.Bet

	for rows.Next() {
		bet, err := scanBetRow(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bet")
			return nil, err
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("rows error")
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return bets, nil
}

func scanBetRow(row pgx.Row) (*models.Bet, error) {
	var bet models.Bet
	var selectionsJSON []byte
	var stakeStr, totalOddsStr, payoutStr, winningsStr string

	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&selectionsJSON,
		&stakeStr,
		&totalOddsStr,
		&payoutStr,
		&bet.Status,
		&winningsStr,
		&bet.MatchIDs,
		&bet.CreatedAt,
		&bet.SettledAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(selectionsJSON, &bet.Selections); err != nil {
		return nil, fmt.Errorf("unmarshal selections: %w", err)
	}

	if bet.Stake, err = decimal.NewFromString(stakeStr); err != nil {
		return nil, fmt.Errorf("parse stake: %w", err)
	}
	if bet.TotalOdds, err = decimal.NewFromString(totalOddsStr); err != nil {
		return nil, fmt.Errorf("parse total_odds: %w", err)
	}
	if bet.PotentialPayout, err = decimal.NewFromString(payoutStr); err != nil {
		return nil, fmt.Errorf("parse potential_payout: %w", err)
	}
	if bet.Winnings, err = decimal.NewFromString(winningsStr); err != nil {
		return nil, fmt.Errorf("parse winnings: %w", err)
	}

	return &bet, nil
}
