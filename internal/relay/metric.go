package relay

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	relayed *prometheus.CounterVec
	batches prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		relayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "relay",
			Name:      "messages_total",
			Help:      "Outbox messages handed to the broker, by topic and result.",
		}, []string{"topic", "result"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "relay",
			Name:      "batches_total",
			Help:      "Non-empty outbox batches relayed.",
		}),
	}
	reg.MustRegister(m.relayed, m.batches)
	return m
}
