package tickets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalTicketsOpened is the total number of tickets opened.
	TotalTicketsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_total_opened",
			Help: "Total number of tickets opened",
		},
		[]string{"category"},
	)

	// TotalTicketsClosed is the total number of tickets closed.
	TotalTicketsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_total_closed",
			Help: "Total number of tickets closed",
		},
	)

	// TotalTicketFailures is the total number of failed ticket operations.
	TotalTicketFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_total_failures",
			Help: "Total number of failed ticket operations",
		},
		[]string{"operation", "reason"},
	)
)
