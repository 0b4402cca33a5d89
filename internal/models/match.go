package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus represents the state of a match in the external registry
type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusOpen      MatchStatus = "open"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// MarketOdds maps a selection label to its decimal odd within one market.
type MarketOdds map[string]decimal.Decimal

// Match is the registry's view of a sporting match. The core reads it;
// only the score/status update path mutates it, and only through the
// operator-facing registry call.
type Match struct {
	ID        string                `json:"id"`
	Status    MatchStatus           `json:"status"`
	Odds      map[string]MarketOdds `json:"odds"` // market -> pick -> odd
	HomeScore *int                  `json:"home_score,omitempty"`
	AwayScore *int                  `json:"away_score,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Finished reports whether the match has a final result to settle against.
func (m *Match) Finished() bool {
	return m.Status == MatchStatusFinished && m.HomeScore != nil && m.AwayScore != nil
}

// Odd returns the authoritative odd for a market/pick pair.
// The second return distinguishes a missing market from a missing pick.
func (m *Match) Odd(market, pick string) (decimal.Decimal, bool, bool) {
	odds, marketOK := m.Odds[market]
	if !marketOK {
		return decimal.Decimal{}, false, false
	}
	odd, pickOK := odds[pick]
	return odd, true, pickOK
}
