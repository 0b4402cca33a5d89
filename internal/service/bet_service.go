package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/betstack/bet-engine/internal/cache"
	"github.com/betstack/bet-engine/internal/config"
	"github.com/betstack/bet-engine/internal/models"
	"github.com/betstack/bet-engine/internal/observability"
	"github.com/betstack/bet-engine/internal/repository"
	"github.com/betstack/bet-engine/pkg/outcome"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BetServiceImpl implements the BetService interface
type BetServiceImpl struct {
	db         Database
	betRepo    repository.BetRepository
	walletRepo repository.WalletRepository
	matchRepo  repository.MatchRepository
	outboxRepo repository.OutboxRepository
	verifier   *OddsVerifier
	authorizer Authorizer
	outcomes   *outcome.Table
	matchCache *cache.MatchCache // optional
	betting    config.BettingConfig
	metrics    *observability.Metrics
	logger     zerolog.Logger
	validator  *validator.Validate
}

// NewBetService creates a new bet service instance. matchCache may be nil.
func NewBetService(
	db Database,
	betRepo repository.BetRepository,
	walletRepo repository.WalletRepository,
	matchRepo repository.MatchRepository,
	outboxRepo repository.OutboxRepository,
	authorizer Authorizer,
	matchCache *cache.MatchCache,
	betting config.BettingConfig,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *BetServiceImpl {
	return &BetServiceImpl{
		db:         db,
		betRepo:    betRepo,
		walletRepo: walletRepo,
		matchRepo:  matchRepo,
		outboxRepo: outboxRepo,
		verifier:   NewOddsVerifier(matchRepo, matchCache, betting, metrics, logger),
		authorizer: authorizer,
		outcomes:   outcome.DefaultTable(),
		matchCache: matchCache,
		betting:    betting,
		metrics:    metrics,
		logger:     logger.With().Str("component", "bet_service").Logger(),
		validator:  validator.New(),
	}
}

// PlaceBet verifies the slip, debits the stake and records the bet as one
// atomic unit. A failed placement leaves no partial state and may be retried.
func (s *BetServiceImpl) PlaceBet(ctx context.Context, req *PlaceBetRequest) (*models.Bet, error) {
	start := time.Now()

	// Preconditions, in order; the first failure short-circuits before any
	// mutation happens.
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if len(req.Selections) == 0 {
		s.metrics.BetsRejectedTotal.WithLabelValues("no_selections").Inc()
		return nil, models.ErrNoSelections
	}
	if len(req.Selections) > s.betting.MaxSelectionsPerTicket {
		s.metrics.BetsRejectedTotal.WithLabelValues("too_many_selections").Inc()
		return nil, fmt.Errorf("%w: %d > %d", models.ErrTooManySelections, len(req.Selections), s.betting.MaxSelectionsPerTicket)
	}
	if !req.Stake.IsPositive() || req.Stake.LessThan(s.betting.MinStake) || req.Stake.GreaterThan(s.betting.MaxStake) {
		s.metrics.BetsRejectedTotal.WithLabelValues("invalid_stake").Inc()
		return nil, fmt.Errorf("%w: %s not in [%s, %s]", models.ErrInvalidStake, req.Stake, s.betting.MinStake, s.betting.MaxStake)
	}

	user, err := s.walletRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.metrics.BetsRejectedTotal.WithLabelValues("user_not_found").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Balance.LessThan(req.Stake) {
		s.metrics.BetsRejectedTotal.WithLabelValues("insufficient_funds").Inc()
		return nil, models.ErrInsufficientFunds
	}

	ticket, err := s.verifier.Verify(ctx, req.Selections)
	if err != nil {
		s.metrics.BetsRejectedTotal.WithLabelValues("verification").Inc()
		return nil, err
	}

	bet := &models.Bet{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Selections:      ticket.Selections,
		Stake:           req.Stake,
		TotalOdds:       ticket.TotalOdds,
		PotentialPayout: req.Stake.Mul(ticket.TotalOdds),
		Status:          models.BetStatusPending,
		Winnings:        decimal.Zero,
		MatchIDs:        ticket.MatchIDs,
		CreatedAt:       time.Now(),
	}

	// Atomic unit: debit + bet record + outbox event commit together or not
	// at all. The debit re-validates the balance under the transaction, so the
	// pre-read above can go stale without double-spending.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.walletRepo.Debit(ctx, tx, req.UserID, req.Stake); err != nil {
		if errors.Is(err, models.ErrInsufficientFunds) || errors.Is(err, models.ErrUserNotFound) {
			s.metrics.BetsRejectedTotal.WithLabelValues("insufficient_funds").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to debit stake: %w", err)
	}

	if err := s.betRepo.Create(ctx, tx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	outboxEvent := &models.OutboxEvent{
		AggregateID:   bet.ID,
		AggregateType: models.AggregateTypeBet,
		EventType:     models.EventTypeBetPlaced,
		EventPayload: map[string]interface{}{
			"bet_id":           bet.ID.String(),
			"user_id":          bet.UserID.String(),
			"stake":            bet.Stake.String(),
			"total_odds":       bet.TotalOdds.String(),
			"potential_payout": bet.PotentialPayout.String(),
			"match_ids":        bet.MatchIDs,
			"placed_at":        bet.CreatedAt.Format(time.RFC3339),
		},
	}
	if err := s.outboxRepo.Create(ctx, tx, outboxEvent); err != nil {
		return nil, fmt.Errorf("failed to insert outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.metrics.BetsPlacedTotal.Inc()
	s.metrics.StakeAmountTotal.Add(bet.Stake.InexactFloat64())
	s.metrics.PendingBets.Inc()
	s.metrics.PlacementDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	s.logger.Info().
		Str("bet_id", bet.ID.String()).
		Str("user_id", bet.UserID.String()).
		Str("stake", bet.Stake.String()).
		Str("total_odds", bet.TotalOdds.String()).
		Str("potential_payout", bet.PotentialPayout.String()).
		Int("selections", len(bet.Selections)).
		Msg("bet placed successfully")

	return bet, nil
}

// SettleMatch finalizes every pending bet referencing the match that can be
// decided from the scores known so far. Bets finalize won only once every
// referenced match is finished with all legs correct; a single wrong leg on
// any finished match loses the whole ticket immediately; everything else
// stays pending. Safe to retry: already-finalized bets are never re-examined.
func (s *BetServiceImpl) SettleMatch(ctx context.Context, principal models.Principal, matchID string) (int, error) {
	start := time.Now()

	if err := s.authorizer.Authorize(principal, ActionSettleMatch); err != nil {
		return 0, err
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if !match.Finished() {
		return 0, fmt.Errorf("%w: match %s status %q", models.ErrMatchNotFinished, matchID, match.Status)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pending, err := s.betRepo.GetPendingByMatchForUpdate(ctx, tx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to load pending bets: %w", err)
	}
	if len(pending) == 0 {
		s.logger.Info().Str("match_id", matchID).Msg("no pending bets to settle")
		return 0, nil
	}

	matches, err := s.referencedMatches(ctx, match, pending)
	if err != nil {
		return 0, fmt.Errorf("failed to load referenced matches: %w", err)
	}

	settledAt := time.Now()
	settledCount := 0
	wonCount := 0
	credits := make(map[uuid.UUID]decimal.Decimal)

	for _, bet := range pending {
		status, final := s.evaluateBet(bet, matches)
		if !final {
			continue
		}

		winnings := decimal.Zero
		if status == models.BetStatusWon {
			winnings = bet.PotentialPayout
		}

		err := s.betRepo.Settle(ctx, tx, bet.ID, status, winnings, settledAt)
		if errors.Is(err, models.ErrBetAlreadySettled) {
			// A concurrent settlement finalized it first; not ours to count.
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to settle bet: %w", err)
		}
		settledCount++

		if status == models.BetStatusWon {
			wonCount++
			credits[bet.UserID] = credits[bet.UserID].Add(winnings)
		}

		outboxEvent := &models.OutboxEvent{
			AggregateID:   bet.ID,
			AggregateType: models.AggregateTypeBet,
			EventType:     models.EventTypeBetSettled,
			EventPayload: map[string]interface{}{
				"bet_id":     bet.ID.String(),
				"user_id":    bet.UserID.String(),
				"match_id":   matchID,
				"status":     string(status),
				"winnings":   winnings.String(),
				"settled_at": settledAt.Format(time.RFC3339),
			},
		}
		if err := s.outboxRepo.Create(ctx, tx, outboxEvent); err != nil {
			return 0, fmt.Errorf("failed to insert outbox event: %w", err)
		}
	}

	// One aggregated credit per winner, inside the same transaction as the
	// status transitions.
	for userID, amount := range credits {
		if err := s.walletRepo.Credit(ctx, tx, userID, amount); err != nil {
			return 0, fmt.Errorf("failed to credit winnings: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for userID, amount := range credits {
		s.metrics.PayoutTotal.Add(amount.InexactFloat64())
		s.logger.Info().
			Str("user_id", userID.String()).
			Str("amount", amount.String()).
			Msg("winnings credited")
	}
	s.metrics.BetsSettledTotal.WithLabelValues(string(models.BetStatusWon)).Add(float64(wonCount))
	s.metrics.BetsSettledTotal.WithLabelValues(string(models.BetStatusLost)).Add(float64(settledCount - wonCount))
	s.metrics.PendingBets.Sub(float64(settledCount))
	s.metrics.SettlementDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	s.logger.Info().
		Str("match_id", matchID).
		Int("candidates", len(pending)).
		Int("settled", settledCount).
		Int("won", wonCount).
		Msg("settlement complete")

	return settledCount, nil
}

// referencedMatches returns every match referenced by the candidate bets,
// fetched in one batch read, seeded with the match being settled.
func (s *BetServiceImpl) referencedMatches(ctx context.Context, settling *models.Match, bets []*models.Bet) (map[string]*models.Match, error) {
	seen := map[string]struct{}{settling.ID: {}}
	var otherIDs []string
	for _, bet := range bets {
		for _, id := range bet.MatchIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			otherIDs = append(otherIDs, id)
		}
	}

	matches := map[string]*models.Match{settling.ID: settling}
	if len(otherIDs) == 0 {
		return matches, nil
	}

	fetched, err := s.matchRepo.GetByIDs(ctx, otherIDs)
	if err != nil {
		return nil, err
	}
	for id, match := range fetched {
		matches[id] = match
	}
	return matches, nil
}

// evaluateBet applies the accumulator rule over every leg whose match is
// already finished. One wrong leg loses the ticket now; winning requires all
// referenced matches finished and every leg correct; otherwise the bet stays
// pending.
func (s *BetServiceImpl) evaluateBet(bet *models.Bet, matches map[string]*models.Match) (models.BetStatus, bool) {
	allFinished := true

	for _, sel := range bet.Selections {
		match, ok := matches[sel.MatchID]
		if !ok {
			// Referenced match missing from the registry: it can never
			// finish, so the bet cannot win, but nothing proves it lost.
			s.logger.Warn().
				Str("bet_id", bet.ID.String()).
				Str("match_id", sel.MatchID).
				Msg("bet references unknown match")
			allFinished = false
			continue
		}
		if !match.Finished() {
			allFinished = false
			continue
		}

		correct, err := s.outcomes.Evaluate(sel.Market, sel.Pick, *match.HomeScore, *match.AwayScore)
		if err != nil {
			// A market the table cannot score can never be won.
			s.logger.Warn().Err(err).
				Str("bet_id", bet.ID.String()).
				Str("match_id", sel.MatchID).
				Str("market", sel.Market).
				Msg("selection not settleable")
			correct = false
		}
		if !correct {
			return models.BetStatusLost, true
		}
	}

	if allFinished {
		return models.BetStatusWon, true
	}
	return models.BetStatusPending, false
}

// RecordMatchResult records final scores and status on the match registry
func (s *BetServiceImpl) RecordMatchResult(ctx context.Context, principal models.Principal, req *RecordResultRequest) error {
	if err := s.authorizer.Authorize(principal, ActionRecordResult); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.matchRepo.UpdateScoreAndStatus(ctx, req.MatchID, req.HomeScore, req.AwayScore, req.Status); err != nil {
		return err
	}

	if s.matchCache != nil {
		s.matchCache.Invalidate(ctx, req.MatchID)
	}

	s.logger.Info().
		Str("match_id", req.MatchID).
		Int("home_score", req.HomeScore).
		Int("away_score", req.AwayScore).
		Str("status", string(req.Status)).
		Msg("match result recorded")

	return nil
}

// GetBetByID retrieves a single bet by ID
func (s *BetServiceImpl) GetBetByID(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, err
	}
	return bet, nil
}

// GetUserBets retrieves bets for a specific user with pagination
func (s *BetServiceImpl) GetUserBets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Bet, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	bets, err := s.betRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bets: %w", err)
	}
	return bets, nil
}
