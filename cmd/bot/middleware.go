package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/request"
	"github.com/Jacobbrewer1/ticketdesk/pkg/tickets"
	"github.com/gorilla/mux"
)

type Controller func(w http.ResponseWriter, r *http.Request)

// interactionScheduler hands a component interaction to the dispatch loop.
type interactionScheduler interface {
	HandleInteraction(i *discordgo.Interaction) (*dispatch.Future, error)
}

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.Header().Set("Content-Type", "application/json")
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// The status code is only known once the handler has returned.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler acknowledges component interactions and schedules them on the dispatch loop.
// It never waits for them.
func interactionHandler(a IApp, router interactionScheduler) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}

		customID := i.MessageComponentData().CustomID
		a.Log().Debug("Handling interaction " + customID)

		f, err := router.HandleInteraction(i.Interaction)
		switch {
		case errors.Is(err, tickets.ErrUnknownInteraction):
			monitoring.TotalInteractions.WithLabelValues(customID, monitoring.OutcomeIgnored).Inc()
			a.Log().Debug("Ignoring interaction", slog.String("custom_id", customID))
		case errors.Is(err, tickets.ErrAcknowledgeFailed):
			// Without an acknowledgement there is nothing to follow up on.
			monitoring.TotalInteractions.WithLabelValues(customID, monitoring.OutcomeRejected).Inc()
			a.Log().Error(fmt.Sprintf("Error acknowledging interaction %s", customID),
				slog.String(logging.KeyError, err.Error()))
		case err != nil:
			monitoring.TotalInteractions.WithLabelValues(customID, monitoring.OutcomeRejected).Inc()
			a.Log().Error(fmt.Sprintf("Error scheduling interaction %s", customID),
				slog.String(logging.KeyError, err.Error()))

			if err := followUpError(a, i); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
		default:
			monitoring.TotalInteractions.WithLabelValues(customID, monitoring.OutcomeScheduled).Inc()
			a.Log().Debug("Interaction scheduled",
				slog.String("custom_id", customID),
				slog.String(logging.KeyTask, f.ID()),
			)
		}
	}
}
