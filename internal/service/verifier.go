package service

import (
	"context"
	"fmt"

	"github.com/betstack/bet-engine/internal/cache"
	"github.com/betstack/bet-engine/internal/config"
	"github.com/betstack/bet-engine/internal/models"
	"github.com/betstack/bet-engine/internal/observability"
	"github.com/betstack/bet-engine/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// VerifiedTicket is the authoritative version of a bet slip: every odd is the
// registry's value, never the client's.
type VerifiedTicket struct {
	Selections []models.Selection
	MatchIDs   []string // distinct, in first-appearance order
	TotalOdds  decimal.Decimal
}

// OddsVerifier cross-checks client-claimed selections against the match
// registry and substitutes authoritative odds.
type OddsVerifier struct {
	matchRepo  repository.MatchRepository
	matchCache *cache.MatchCache // optional
	betting    config.BettingConfig
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewOddsVerifier creates a verifier. matchCache may be nil.
func NewOddsVerifier(
	matchRepo repository.MatchRepository,
	matchCache *cache.MatchCache,
	betting config.BettingConfig,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *OddsVerifier {
	return &OddsVerifier{
		matchRepo:  matchRepo,
		matchCache: matchCache,
		betting:    betting,
		metrics:    metrics,
		logger:     logger.With().Str("component", "odds_verifier").Logger(),
	}
}

// Verify validates every claimed selection and returns the ticket with
// authoritative odds and their exact decimal product.
func (v *OddsVerifier) Verify(ctx context.Context, selections []SelectionInput) (*VerifiedTicket, error) {
	matchIDs := distinctMatchIDs(selections)

	matches, err := v.fetchMatches(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}

	ticket := &VerifiedTicket{
		Selections: make([]models.Selection, 0, len(selections)),
		MatchIDs:   matchIDs,
		TotalOdds:  decimal.NewFromInt(1),
	}

	for _, claimed := range selections {
		match, ok := matches[claimed.MatchID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrMatchNotFound, claimed.MatchID)
		}

		if !v.betting.Betable(match.Status) {
			return nil, fmt.Errorf("%w: match %s status %q", models.ErrMatchNotBetable, match.ID, match.Status)
		}

		odd, marketOK, pickOK := match.Odd(claimed.Market, claimed.Pick)
		if !marketOK {
			return nil, fmt.Errorf("%w: market %q, match %s", models.ErrMarketNotFound, claimed.Market, match.ID)
		}
		if !pickOK || !odd.IsPositive() {
			return nil, fmt.Errorf("%w: pick %q, market %q, match %s", models.ErrInvalidOdd, claimed.Pick, claimed.Market, match.ID)
		}

		if !claimed.Odd.Equal(odd) {
			// Price drift: the client slip was built against stale odds.
			v.metrics.OddsDriftTotal.Inc()
			v.logger.Warn().
				Str("match_id", match.ID).
				Str("market", claimed.Market).
				Str("pick", claimed.Pick).
				Str("client_odd", claimed.Odd.String()).
				Str("authoritative_odd", odd.String()).
				Msg("client odd differs from authoritative odd")
			if v.betting.RejectOnOddsDrift {
				return nil, fmt.Errorf("%w: match %s market %q", models.ErrOddsChanged, match.ID, claimed.Market)
			}
		}

		ticket.Selections = append(ticket.Selections, models.Selection{
			MatchID: claimed.MatchID,
			Market:  claimed.Market,
			Pick:    claimed.Pick,
			Odd:     odd,
		})
		ticket.TotalOdds = ticket.TotalOdds.Mul(odd)
	}

	return ticket, nil
}

// fetchMatches resolves match documents through the cache, falling back to a
// single batch registry read for the misses.
func (v *OddsVerifier) fetchMatches(ctx context.Context, ids []string) (map[string]*models.Match, error) {
	matches := make(map[string]*models.Match, len(ids))
	var missing []string

	if v.matchCache != nil {
		for _, id := range ids {
			if match, ok := v.matchCache.Get(ctx, id); ok {
				matches[id] = match
			} else {
				missing = append(missing, id)
			}
		}
	} else {
		missing = ids
	}

	if len(missing) == 0 {
		return matches, nil
	}

	fetched, err := v.matchRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, match := range fetched {
		matches[id] = match
		if v.matchCache != nil {
			v.matchCache.Set(ctx, match)
		}
	}

	return matches, nil
}

func distinctMatchIDs(selections []SelectionInput) []string {
	seen := make(map[string]struct{}, len(selections))
	ids := make([]string, 0, len(selections))
	for _, s := range selections {
		if _, ok := seen[s.MatchID]; ok {
			continue
		}
		seen[s.MatchID] = struct{}{}
		ids = append(ids, s.MatchID)
	}
	return ids
}
