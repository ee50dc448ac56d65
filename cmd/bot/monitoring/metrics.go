package monitoring

import (
	"fmt"

	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDiscordEvents is the total number of events.
	TotalDiscordEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_discord_events", config.AppName),
			Help: "Total number of events",
		},
		[]string{"event"},
	)

	// TotalInteractions is the total number of component interactions by custom id and whether they were scheduled.
	TotalInteractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_interactions", config.AppName),
			Help: "Total number of component interactions",
		},
		[]string{"custom_id", "outcome"},
	)

	// HttpTotalRequests is the total number of http requests.
	HttpTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_total_requests", config.AppName),
			Help: "Total number of http requests",
		},
		[]string{"path", "method", "status_code"},
	)

	// HttpRequestDuration is the duration of the http request.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_http_request_duration", config.AppName),
			Help: "Duration of the http request",
		},
		[]string{"path", "method", "status_code"},
	)

	TotalDiscordGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_total_discord_guilds", config.AppName),
			Help: "Total number of discord guilds",
		},
	)
)

const (
	// OutcomeScheduled is recorded when an interaction was handed to the dispatch loop.
	OutcomeScheduled = "scheduled"

	// OutcomeIgnored is recorded for interactions that are not for this bot.
	OutcomeIgnored = "ignored"

	// OutcomeRejected is recorded when the dispatch loop did not accept the interaction.
	OutcomeRejected = "rejected"
)
