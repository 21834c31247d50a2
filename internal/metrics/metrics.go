package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"planner-agent/internal/domain/entity"
)

// Metrics aggregates the orchestration counters. A nil *Metrics is a valid
// no-op receiver, so tests and one-shot runs can skip registration.
type Metrics struct {
	plansNegotiated    prometheus.Counter
	negotiationRetries prometheus.Counter
	tasksDispatched    *prometheus.CounterVec
	replansApplied     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		plansNegotiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_plans_negotiated_total",
			Help: "Plans successfully produced by negotiation.",
		}),
		negotiationRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_negotiation_retries_total",
			Help: "Negotiation attempts that failed to yield a plan.",
		}),
		tasksDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_tasks_dispatched_total",
			Help: "Tasks dispatched to executors.",
		}, []string{"capability", "outcome"}),
		replansApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_replans_applied_total",
			Help: "Replans that replaced the working plan.",
		}),
	}
}

func (m *Metrics) PlanNegotiated() {
	if m == nil {
		return
	}
	m.plansNegotiated.Inc()
}

func (m *Metrics) NegotiationRetry() {
	if m == nil {
		return
	}
	m.negotiationRetries.Inc()
}

func (m *Metrics) TaskDispatched(capability entity.Capability, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.tasksDispatched.WithLabelValues(capability.String(), outcome).Inc()
}

func (m *Metrics) ReplanApplied() {
	if m == nil {
		return
	}
	m.replansApplied.Inc()
}
