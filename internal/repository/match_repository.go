package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// MatchRepository is the read side of the external match registry, plus the
// operator path that pushes final scores in ahead of settlement.
type MatchRepository interface {
	// GetByID retrieves a match by ID
	// Returns ErrMatchNotFound if the match doesn't exist
	GetByID(ctx context.Context, id string) (*models.Match, error)

	// GetByIDs retrieves several matches in one round trip
	// Missing ids are simply absent from the result map
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Match, error)

	// UpdateScoreAndStatus records final scores and the new status
	// Returns ErrMatchNotFound if the match doesn't exist
	UpdateScoreAndStatus(ctx context.Context, id string, homeScore, awayScore int, status models.MatchStatus) error
}

// PostgresMatchRepository implements MatchRepository using PostgreSQL
type PostgresMatchRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresMatchRepository creates a new PostgreSQL match repository
func NewPostgresMatchRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresMatchRepository {
	return &PostgresMatchRepository{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_match_repository").Logger(),
	}
}

// GetByID retrieves a match by ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT id, status, odds, home_score, away_score, updated_at
		FROM matches
		WHERE id = $1
	`

	match, err := scanMatchRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrMatchNotFound
		}
		r.logger.Error().Err(err).
			Str("match_id", id).
			Msg("failed to get match")
		return nil, err
	}
	return match, nil
}

// GetByIDs retrieves several matches with a single id = ANY query, so
// verification cost is bounded by distinct matches, not selections
func (r *PostgresMatchRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Match, error) {
	query := `
		SELECT id, status, odds, home_score, away_score, updated_at
		FROM matches
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).
			Strs("match_ids", ids).
			Msg("failed to query matches")
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := make(map[string]*models.Match, len(ids))
	for rows.Next() {
		match, err := scanMatchRow(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan match")
			return nil, err
		}
		matches[match.ID] = match
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return matches, nil
}

// UpdateScoreAndStatus records the final scores and status for a match
func (r *PostgresMatchRepository) UpdateScoreAndStatus(ctx context.Context, id string, homeScore, awayScore int, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET home_score = $2, away_score = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, homeScore, awayScore, status, time.Now())
	if err != nil {
		r.logger.Error().Err(err).
			Str("match_id", id).
			Msg("failed to update match")
		return fmt.Errorf("update match: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrMatchNotFound
	}

	r.logger.Info().
		Str("match_id", id).
		Int("home_score", homeScore).
		Int("away_score", awayScore).
		Str("status", string(status)).
		Msg("match score and status updated")

	return nil
}

func scanMatchRow(row pgx.Row) (*models.Match, error) {
	var match models.Match
	var oddsJSON []byte

	err := row.Scan(
		&match.ID,
		&match.Status,
		&oddsJSON,
		&match.HomeScore,
		&match.AwayScore,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(oddsJSON, &match.Odds); err != nil {
		return nil, fmt.Errorf("unmarshal odds: %w", err)
	}

	return &match, nil
}
