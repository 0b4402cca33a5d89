package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bet engine
type Metrics struct {
	// Bet operations
	BetsPlacedTotal   prometheus.Counter
	BetsSettledTotal  *prometheus.CounterVec
	BetsRejectedTotal *prometheus.CounterVec

	// Money flow
	StakeAmountTotal prometheus.Counter
	PayoutTotal      prometheus.Counter

	// Verification
	OddsDriftTotal prometheus.Counter

	// Pending bets gauge
	PendingBets prometheus.Gauge

	// Performance
	PlacementDuration  *prometheus.HistogramVec
	SettlementDuration *prometheus.HistogramVec

	// Database
	DatabaseErrors *prometheus.CounterVec

	// Outbox publisher
	OutboxEventsPublished *prometheus.CounterVec
	OutboxEventsFailed    *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics with the default registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates metrics with a custom registry (useful for testing)
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BetsPlacedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "betengine_bets_placed_total",
				Help: "Total number of bets placed",
			},
		),
		BetsSettledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betengine_bets_settled_total",
				Help: "Total number of bets settled",
			},
			[]string{"result"}, // won, lost
		),
		BetsRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betengine_bets_rejected_total",
				Help: "Total number of bet placements rejected",
			},
			[]string{"reason"},
		),
		StakeAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "betengine_stake_amount_total",
				Help: "Total stake amount debited for placed bets",
			},
		),
		PayoutTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "betengine_payout_total",
				Help: "Total payout amount credited for winning bets",
			},
		),
		OddsDriftTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "betengine_odds_drift_total",
				Help: "Selections where the client odd differed from the authoritative odd",
			},
		),
		PendingBets: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "betengine_pending_bets",
				Help: "Number of bets currently pending settlement",
			},
		),
		PlacementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "betengine_placement_duration_seconds",
				Help:    "Duration of bet placement operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"}, // success, failure
		),
		SettlementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "betengine_settlement_duration_seconds",
				Help:    "Duration of match settlement operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		DatabaseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betengine_database_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation", "error_type"},
		),
		OutboxEventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betengine_outbox_events_published_total",
				Help: "Total number of outbox events successfully published",
			},
			[]string{"event_type"},
		),
		OutboxEventsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betengine_outbox_events_failed_total",
				Help: "Total number of outbox events failed to publish",
			},
			[]string{"event_type"},
		),
	}
}
