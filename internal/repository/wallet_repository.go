package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletRepository is the sole authority for balance mutation. Debit and
// Credit run inside the caller's transaction so a balance change commits or
// aborts together with the bet writes that caused it.
type WalletRepository interface {
	// GetByID retrieves a user by ID
	// Returns ErrUserNotFound if the user doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Debit subtracts amount from the user's balance with an atomic
	// balance >= amount guard, closing the check-then-act race
	// Returns ErrInsufficientFunds or ErrUserNotFound
	// MUST be called within a transaction
	Debit(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) error

	// Credit adds amount to the user's balance
	// Returns ErrUserNotFound if the user doesn't exist
	// MUST be called within a transaction
	Credit(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) error
}

// PostgresWalletRepository implements WalletRepository using PostgreSQL
type PostgresWalletRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresWalletRepository creates a new PostgreSQL wallet repository
func NewPostgresWalletRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresWalletRepository {
	return &PostgresWalletRepository{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_wallet_repository").Logger(),
	}
}

// GetByID retrieves a user by ID
func (r *PostgresWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, balance, created_at, updated_at FROM users WHERE id = $1`

	var user models.User
	var balanceStr string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&balanceStr,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error().Err(err).
			Str("user_id", id.String()).
			Msg("failed to get user")
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}

	return &user, nil
}

// Debit subtracts amount from the balance. The guard in the WHERE clause is
// the commit-time re-validation: two concurrent debits against the same user
// cannot both pass a stale balance read.
func (r *PostgresWalletRepository) Debit(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance >= $2
	`

	result, err := tx.Exec(ctx, query, id, amount.String())
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", id.String()).
			Str("amount", amount.String()).
			Msg("failed to debit user")
		return fmt.Errorf("debit user: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing user from an insufficient balance
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}
		if !exists {
			return models.ErrUserNotFound
		}
		r.logger.Warn().
			Str("user_id", id.String()).
			Str("amount", amount.String()).
			Msg("debit rejected, insufficient balance")
		return models.ErrInsufficientFunds
	}

	r.logger.Debug().
		Str("user_id", id.String()).
		Str("amount", amount.String()).
		Msg("user debited")

	return nil
}

// Credit adds amount to the balance
func (r *PostgresWalletRepository) Credit(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, amount.String())
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", id.String()).
			Str("amount", amount.String()).
			Msg("failed to credit user")
		return fmt.Errorf("credit user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	r.logger.Debug().
		Str("user_id", id.String()).
		Str("amount", amount.String()).
		Msg("user credited")

	return nil
}
