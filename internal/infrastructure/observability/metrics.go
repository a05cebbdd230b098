package observability

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	CreditsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_credits_total",
			Help: "Credits added to or deducted from wallets",
		},
		[]string{"direction"},
	)

	VacancyTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancy_transitions_total",
			Help: "Vacancy status transitions performed from the dashboard",
		},
		[]string{"to"},
	)

	SideEffectFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "side_effect_failures_total",
			Help: "Fire-and-forget side effects that failed",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(RepositoryCalls, RepositoryDuration, CreditsMoved, VacancyTransitions, SideEffectFailures)
}

// InitMetrics serves /metrics on a dedicated listener.
func InitMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
}
