package game

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	sessionsStarted *prometheus.CounterVec
	verdicts        *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	liveSessions    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		sessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "game_sessions_started_total",
				Help: "Sessions started, by kind of start.",
			},
			[]string{"kind"},
		),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "game_verdicts_total",
				Help: "Board verdicts on submitted budgets.",
			},
			[]string{"approved"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "game_oracle_fallbacks_total",
				Help: "Oracle calls that failed and were replaced with static content.",
			},
			[]string{"call"},
		),
		liveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "game_live_sessions",
				Help: "Sessions with a running actor.",
			},
		),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.sessionsStarted, m.verdicts, m.fallbacks, m.liveSessions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
