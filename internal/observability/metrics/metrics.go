package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

const (
	ChargeOutcomeSubmitted = "submitted"
	ChargeOutcomeFailed    = "failed"
)

// Metrics holds the webhook pipeline counters.
type Metrics struct {
	WebhooksReceived *prometheus.CounterVec
	WebhooksRejected prometheus.Counter
	OrdersIngested   prometheus.Counter
	UsageCharges     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WebhooksReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shopmeter_webhooks_received_total",
			Help: "Webhook deliveries accepted after signature verification, by topic.",
		}, []string{"topic"}),
		WebhooksRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopmeter_webhooks_rejected_total",
			Help: "Webhook deliveries rejected by signature verification.",
		}),
		OrdersIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopmeter_orders_ingested_total",
			Help: "Distinct orders recorded in the ledger.",
		}),
		UsageCharges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shopmeter_usage_charges_total",
			Help: "Usage charge submissions by outcome.",
		}, []string{"outcome"}),
	}
}

func provide() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

var Module = fx.Module("metrics",
	fx.Provide(provide),
)
