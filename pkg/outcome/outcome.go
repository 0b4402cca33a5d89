// Package outcome derives canonical market outcomes from final match scores.
// Markets are scored through a table of evaluators so new market families can
// be added without touching the settlement engine.
package outcome

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownMarket = errors.New("market not settleable")
	ErrUnknownPick   = errors.New("pick not valid for market")
)

// Picks for the 1X2 market family
const (
	PickHomeWin = "1"
	PickDraw    = "X"
	PickAwayWin = "2"
)

// Picks for goal-line market families
const (
	PickOver  = "over"
	PickUnder = "under"
)

// EvalFunc scores a single pick against the final scores.
type EvalFunc func(pick string, homeScore, awayScore int) (bool, error)

// prefixRule resolves a market family whose name encodes a parameter,
// e.g. "OU2.5" is the over/under 2.5 total-goals line.
type prefixRule struct {
	prefix string
	build  func(param string) (EvalFunc, error)
}

// Table maps market names to evaluators.
type Table struct {
	exact    map[string]EvalFunc
	prefixes []prefixRule
}

// DefaultTable returns the settleable-market table: the 1X2 family plus
// over/under goal lines on total ("OU"), home ("HOU") and away ("AOU") goals.
func DefaultTable() *Table {
	t := &Table{exact: make(map[string]EvalFunc)}
	t.Register("1X2", evalMatchWinner)
	t.RegisterPrefix("HOU", goalLine(func(home, away int) int { return home }))
	t.RegisterPrefix("AOU", goalLine(func(home, away int) int { return away }))
	t.RegisterPrefix("OU", goalLine(func(home, away int) int { return home + away }))
	return t
}

// Register adds an evaluator for an exact market name.
func (t *Table) Register(market string, eval EvalFunc) {
	t.exact[market] = eval
}

// RegisterPrefix adds a parameterized market family. Prefixes are matched in
// registration order, so register longer prefixes first.
func (t *Table) RegisterPrefix(prefix string, build func(param string) (EvalFunc, error)) {
	t.prefixes = append(t.prefixes, prefixRule{prefix: prefix, build: build})
}

// Evaluate reports whether the pick is correct for the market given the final
// scores. Returns ErrUnknownMarket for markets outside the table.
func (t *Table) Evaluate(market, pick string, homeScore, awayScore int) (bool, error) {
	if eval, ok := t.exact[market]; ok {
		return eval(pick, homeScore, awayScore)
	}
	for _, rule := range t.prefixes {
		if strings.HasPrefix(market, rule.prefix) {
			eval, err := rule.build(strings.TrimPrefix(market, rule.prefix))
			if err != nil {
				return false, err
			}
			return eval(pick, homeScore, awayScore)
		}
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownMarket, market)
}

// MatchWinner returns the 1X2 outcome for the final scores.
func MatchWinner(homeScore, awayScore int) string {
	switch {
	case homeScore > awayScore:
		return PickHomeWin
	case homeScore < awayScore:
		return PickAwayWin
	default:
		return PickDraw
	}
}

func evalMatchWinner(pick string, homeScore, awayScore int) (bool, error) {
	switch pick {
	case PickHomeWin, PickDraw, PickAwayWin:
		return pick == MatchWinner(homeScore, awayScore), nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownPick, pick)
	}
}

// goalLine builds an over/under evaluator over the goals selected by count.
// Lines landing exactly on an integer total win neither side.
func goalLine(count func(home, away int) int) func(param string) (EvalFunc, error) {
	return func(param string) (EvalFunc, error) {
		line, err := decimal.NewFromString(param)
		if err != nil {
			return nil, fmt.Errorf("%w: bad goal line %q", ErrUnknownMarket, param)
		}
		return func(pick string, homeScore, awayScore int) (bool, error) {
			total := decimal.NewFromInt(int64(count(homeScore, awayScore)))
			switch pick {
			case PickOver:
				return total.GreaterThan(line), nil
			case PickUnder:
				return total.LessThan(line), nil
			default:
				return false, fmt.Errorf("%w: %s", ErrUnknownPick, pick)
			}
		}, nil
	}
}
