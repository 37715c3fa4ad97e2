// Package metrics provides Prometheus observability metrics for the call
// scheduler. The core stays metric-free; the CLI shell records a finished
// run via RecordSchedule.
package metrics

import (
	"strconv"

	"call-scheduler/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// AgentsUnmetTotal tracks total unmet agent demand across all hours.
// High values indicate capacity planning issues.
var AgentsUnmetTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "agents_unmet_total",
	Help:      "Total number of agents that could not be allocated due to capacity constraints",
})

// AgentsAllocatedTotal tracks total agents successfully allocated.
var AgentsAllocatedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "agents_allocated_total",
	Help:      "Total number of agents successfully allocated",
})

// AgentsDemandedTotal tracks total agent demand across all hours.
var AgentsDemandedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "agents_demanded_total",
	Help:      "Total number of agents demanded across all customers and hours",
})

// HoursWithUnmetDemand tracks number of hours where capacity was exceeded.
var HoursWithUnmetDemand = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "hours_with_unmet_demand",
	Help:      "Number of hours in the schedule where demand exceeded capacity",
})

// UnmetDemandByPriority tracks unmet agents by priority level.
var UnmetDemandByPriority = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "unmet_demand_by_priority",
	Help:      "Unmet agent demand broken down by priority level",
}, []string{"priority"})

// HighPriorityFullySatisfied tracks count of priority-1 customers fully served.
var HighPriorityFullySatisfied = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "high_priority_fully_satisfied_total",
	Help:      "Count of priority-1 (highest) customers whose full volume was served",
})

// HighPriorityPartiallySatisfied tracks count of priority-1 customers only partially served.
var HighPriorityPartiallySatisfied = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "high_priority_partially_satisfied_total",
	Help:      "Count of priority-1 customers whose volume was only partially served",
})

// HighPriorityUnsatisfied tracks count of priority-1 customers with zero served volume.
var HighPriorityUnsatisfied = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "high_priority_unsatisfied_total",
	Help:      "Count of priority-1 customers that received zero allocation",
})

// CallsRedistributedTotal counts call movements made by the shift algorithm.
var CallsRedistributedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "calls_redistributed_total",
	Help:      "Number of call movements made by the shift allocation algorithm",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// SchedulerDurationSeconds tracks time to generate schedule.
var SchedulerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "duration_seconds",
	Help:      "Time taken to generate the schedule",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// SchedulerCustomersProcessed tracks number of customers per scheduling run.
var SchedulerCustomersProcessed = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "customers_processed",
	Help:      "Number of customers processed per scheduling run",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetSchedulerGauges resets all scheduler gauges before a new scheduling run.
func ResetSchedulerGauges() {
	AgentsUnmetTotal.Set(0)
	AgentsAllocatedTotal.Set(0)
	AgentsDemandedTotal.Set(0)
	HoursWithUnmetDemand.Set(0)
	UnmetDemandByPriority.Reset()
}

// RecordSchedule publishes the outcome of a finished run.
func RecordSchedule(s *models.Schedule) {
	allocated := 0
	unmet := 0
	hoursWithUnmet := 0
	unmetByPriority := make(map[int]int)

	for _, hour := range s.Hours {
		allocated += hour.TotalAgents
		if len(hour.Unmet) > 0 {
			hoursWithUnmet++
		}
		for _, u := range hour.Unmet {
			unmet += u.Agents
			unmetByPriority[u.Priority] += u.Agents
		}
	}

	AgentsAllocatedTotal.Set(float64(allocated))
	AgentsUnmetTotal.Set(float64(unmet))
	AgentsDemandedTotal.Set(float64(allocated + unmet))
	HoursWithUnmetDemand.Set(float64(hoursWithUnmet))
	for priority, agents := range unmetByPriority {
		UnmetDemandByPriority.WithLabelValues(strconv.Itoa(priority)).Set(float64(agents))
	}

	for _, report := range s.Reports {
		if report.Priority != 1 {
			continue
		}
		switch {
		case report.UnmetCalls.Sign() <= 0:
			HighPriorityFullySatisfied.Inc()
		case report.ServedCalls.Sign() > 0:
			HighPriorityPartiallySatisfied.Inc()
		default:
			HighPriorityUnsatisfied.Inc()
		}
	}

	CallsRedistributedTotal.Add(float64(len(s.Moves)))
	SchedulerCustomersProcessed.Observe(float64(len(s.Reports)))
}
