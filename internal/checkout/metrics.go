package checkout

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeEmptyCart    = "empty_cart"
	outcomeNothingToBuy = "nothing_to_buy"
	outcomeGatewayError = "gateway_error"
	outcomeRedirected   = "redirected"
	outcomeCompleted    = "completed"
	outcomeNoop         = "noop"
	outcomePersistError = "persist_error"
)

type Metrics struct {
	Outcomes *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_total",
		Help:      "Checkout attempts and completions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(outcomes)
	return &Metrics{Outcomes: outcomes}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
}
