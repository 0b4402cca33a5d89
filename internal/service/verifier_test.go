package service

import (
	"context"
	"testing"

	"github.com/betstack/bet-engine/internal/mocks"
	"github.com/betstack/bet-engine/internal/models"
	"github.com/betstack/bet-engine/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupVerifier(t *testing.T) (*OddsVerifier, *mocks.MockMatchRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockMatchRepo := mocks.NewMockMatchRepository(ctrl)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetricsWithRegistry(registry)

	verifier := NewOddsVerifier(mockMatchRepo, nil, defaultBettingConfig(), metrics, zerolog.Nop())
	return verifier, mockMatchRepo, ctrl
}

func TestOddsVerifier_Verify_BatchesDistinctMatches(t *testing.T) {
	verifier, mockMatchRepo, ctrl := setupVerifier(t)
	defer ctrl.Finish()

	// Three selections across two matches: one registry round trip with the
	// distinct ids in first-appearance order.
	mockMatchRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{"match-1", "match-2"}).
		Return(map[string]*models.Match{
			"match-1": openMatch("match-1"),
			"match-2": openMatch("match-2"),
		}, nil)

	ticket, err := verifier.Verify(context.Background(), []SelectionInput{
		{MatchID: "match-1", Market: "1X2", Pick: "1", Odd: decimal.NewFromFloat(1.8)},
		{MatchID: "match-2", Market: "1X2", Pick: "X", Odd: decimal.NewFromFloat(3.2)},
		{MatchID: "match-1", Market: "OU2.5", Pick: "over", Odd: decimal.NewFromFloat(1.95)},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"match-1", "match-2"}, ticket.MatchIDs)
	assert.Len(t, ticket.Selections, 3)

	// 1.8 * 3.2 * 1.95, exact decimal product
	expected := decimal.NewFromFloat(1.8).
		Mul(decimal.NewFromFloat(3.2)).
		Mul(decimal.NewFromFloat(1.95))
	assert.True(t, ticket.TotalOdds.Equal(expected))
}

func TestOddsVerifier_Verify_SubstitutesAuthoritativeOdd(t *testing.T) {
	verifier, mockMatchRepo, ctrl := setupVerifier(t)
	defer ctrl.Finish()

	mockMatchRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{"match-1"}).
		Return(map[string]*models.Match{"match-1": openMatch("match-1")}, nil)

	ticket, err := verifier.Verify(context.Background(), []SelectionInput{
		{MatchID: "match-1", Market: "1X2", Pick: "1", Odd: decimal.NewFromFloat(9.9)},
	})

	require.NoError(t, err)
	assert.True(t, ticket.Selections[0].Odd.Equal(decimal.NewFromFloat(1.8)))
	assert.True(t, ticket.TotalOdds.Equal(decimal.NewFromFloat(1.8)))
}

func TestOddsVerifier_Verify_UnknownPick(t *testing.T) {
	verifier, mockMatchRepo, ctrl := setupVerifier(t)
	defer ctrl.Finish()

	mockMatchRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{"match-1"}).
		Return(map[string]*models.Match{"match-1": openMatch("match-1")}, nil)

	ticket, err := verifier.Verify(context.Background(), []SelectionInput{
		{MatchID: "match-1", Market: "1X2", Pick: "banana"},
	})

	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, models.ErrInvalidOdd)
}

func TestOddsVerifier_Verify_NonPositiveOddRejected(t *testing.T) {
	verifier, mockMatchRepo, ctrl := setupVerifier(t)
	defer ctrl.Finish()

	match := openMatch("match-1")
	match.Odds["1X2"]["1"] = decimal.Zero

	mockMatchRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{"match-1"}).
		Return(map[string]*models.Match{"match-1": match}, nil)

	ticket, err := verifier.Verify(context.Background(), []SelectionInput{
		{MatchID: "match-1", Market: "1X2", Pick: "1"},
	})

	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, models.ErrInvalidOdd)
}

func TestOddsVerifier_Verify_UpcomingMatchIsBetable(t *testing.T) {
	verifier, mockMatchRepo, ctrl := setupVerifier(t)
	defer ctrl.Finish()

	match := openMatch("match-1")
	match.Status = models.MatchStatusUpcoming

	mockMatchRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{"match-1"}).
		Return(map[string]*models.Match{"match-1": match}, nil)

	ticket, err := verifier.Verify(context.Background(), []SelectionInput{
		{MatchID: "match-1", Market: "1X2", Pick: "1", Odd: decimal.NewFromFloat(1.8)},
	})

	assert.NoError(t, err)
	assert.NotNil(t, ticket)
}

func TestOddsVerifier_Verify_CancelledMatchRejected(t *testing.T) {
	verifier, mockMatchRepo, ctrl := setupVerifier(t)
	defer ctrl.Finish()

	match := openMatch("match-1")
	match.Status = models.MatchStatusCancelled

	mockMatchRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{"match-1"}).
		Return(map[string]*models.Match{"match-1": match}, nil)

	ticket, err := verifier.Verify(context.Background(), []SelectionInput{
		{MatchID: "match-1", Market: "1X2", Pick: "1"},
	})

	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, models.ErrMatchNotBetable)
}
