package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetStatus represents the lifecycle state of a bet ticket
type BetStatus string

const (
	BetStatusPending BetStatus = "pending" // Placed, awaiting settlement
	BetStatusWon     BetStatus = "won"     // Every leg correct, payout credited
	BetStatusLost    BetStatus = "lost"    // At least one leg wrong
)

// Selection is one predicted outcome within a market of a match.
// The odd is the registry's authoritative value at verification time and is
// immutable once the selection is embedded in a bet.
type Selection struct {
	MatchID string          `json:"match_id"`
	Market  string          `json:"market"` // e.g. "1X2", "OU2.5"
	Pick    string          `json:"pick"`   // e.g. "1", "X", "2", "over"
	Odd     decimal.Decimal `json:"odd"`
}

// Bet represents a placed accumulator ticket.
// Created only by the placement engine; the status transition
// pending -> won/lost happens exactly once, in the settlement engine.
type Bet struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Selections      []Selection     `json:"selections"`
	Stake           decimal.Decimal `json:"stake"`
	TotalOdds       decimal.Decimal `json:"total_odds"`       // Product of all selection odds
	PotentialPayout decimal.Decimal `json:"potential_payout"` // stake * total_odds
	Status          BetStatus       `json:"status"`
	Winnings        decimal.Decimal `json:"winnings"`  // 0 until settled won
	MatchIDs        []string        `json:"match_ids"` // Distinct matches referenced, for settlement lookup
	CreatedAt       time.Time       `json:"created_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
}

// IsSettled reports whether the bet has left the pending state.
func (b *Bet) IsSettled() bool {
	return b.Status != BetStatusPending
}

// SelectionsFor returns the legs of the bet that reference the given match.
func (b *Bet) SelectionsFor(matchID string) []Selection {
	var legs []Selection
	for _, s := range b.Selections {
		if s.MatchID == matchID {
			legs = append(legs, s)
		}
	}
	return legs
}
