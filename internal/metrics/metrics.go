// Package metrics holds the service's prometheus registry and counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics bundles the counters the runner and handlers increment.
type Metrics struct {
	Registry *prometheus.Registry

	PlansExecuted    prometheus.Counter
	PlansFailed      prometheus.Counter
	AllocationsRun   prometheus.Counter
	PortfolioImports prometheus.Counter
}

// New creates a registry with Go runtime collectors plus the service counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		PlansExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldplan_plans_executed_total",
			Help: "Plans the runner brought to completion.",
		}),
		PlansFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldplan_plans_failed_total",
			Help: "Plans the runner marked as error.",
		}),
		AllocationsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldplan_allocations_total",
			Help: "Crew allocation runs solved.",
		}),
		PortfolioImports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldplan_portfolio_imports_total",
			Help: "Portfolio YAML documents imported.",
		}),
	}
	reg.MustRegister(m.PlansExecuted, m.PlansFailed, m.AllocationsRun, m.PortfolioImports)

	return m
}
