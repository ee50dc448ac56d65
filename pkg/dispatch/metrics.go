package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueueDepth is the number of tasks waiting to run on the loop.
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_queue_depth",
			Help: "Number of tasks waiting to run on the dispatch loop",
		},
	)

	// TotalTasks is the total number of tasks by outcome.
	TotalTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_total_tasks",
			Help: "Total number of dispatched tasks",
		},
		[]string{"task", "outcome"},
	)

	// TaskDuration is the time a task spent running on the loop.
	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dispatch_task_duration",
			Help: "Duration of dispatched tasks",
		},
		[]string{"task"},
	)
)

const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomePanic    = "panic"
	outcomeRejected = "rejected"
	outcomeDropped  = "dropped"
)
