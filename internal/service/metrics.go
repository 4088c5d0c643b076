package service

import "github.com/prometheus/client_golang/prometheus"

var authOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "auth_outcomes_total", Help: "Signup/signin/token outcomes"},
	[]string{"action", "result"},
)

func init() { prometheus.MustRegister(authOutcomes) }

func observeAuth(action string, err error) {
	result := "ok"
	if err != nil {
		result = outcomeOf(err)
	}
	authOutcomes.WithLabelValues(action, result).Inc()
}
