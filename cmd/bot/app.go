package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketdesk/pkg/directory"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
	"github.com/Jacobbrewer1/ticketdesk/pkg/request"
	"github.com/Jacobbrewer1/ticketdesk/pkg/tickets"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"

	// shutdownTimeout bounds how long the loop and the servers get to finish on shutdown.
	shutdownTimeout = 10 * time.Second
)

// IApp is the interface for the application.
type IApp interface {
	// Log returns the application logger.
	Log() *slog.Logger

	// Client returns the chat platform client.
	Client() platform.Client

	// Directory returns the channel directory.
	Directory() *directory.Directory

	// Scheduler returns the dispatch loop.
	Scheduler() dispatch.Scheduler
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the monitoring server.
	r *mux.Router

	// svr is the monitoring server.
	svr *http.Server

	// adminSvr is the admin server.
	adminSvr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// client wraps the discord session.
	client platform.Client

	// dir caches the channel names shown on the admin form.
	dir *directory.Directory

	// seq numbers the tickets.
	seq *tickets.Sequencer

	// loop runs every ticket operation and directory refresh.
	loop *dispatch.Loop

	// tickets routes component interactions onto the loop.
	tickets *tickets.Router

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router, dir *directory.Directory, seq *tickets.Sequencer) *App {
	return &App{
		Logger: l,
		r:      r,
		dir:    dir,
		seq:    seq,
	}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Register bot.
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	a.loop = dispatch.NewLoop(a.Logger, config.DispatchQueueSize)
	a.tickets = tickets.NewRouter(a.Logger, a.loop, tickets.NewController(a.Logger, a.client, a.seq), a.client)

	a.RegisterDiscordHandlers()

	// Start event listener.
	go a.eventListener()

	// The loop is stopped with Close so that accepted tasks still run.
	go func() {
		if err := a.loop.Run(context.Background()); err != nil {
			a.Error("Dispatch loop stopped", slog.String(logging.KeyError, err.Error()))
		}
	}()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		a.loop.Close()
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	if err := a.setupAdmin(); err != nil {
		return errors.Join(fmt.Errorf("error setting up admin server: %w", err), a.ShutdownHook())
	}

	a.generateServer()
	a.setupRoutes()
	a.runServers()

	<-ctx.Done()
	a.Info("Received shutdown signal")
	return a.ShutdownHook()
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, svr := range []*http.Server{a.adminSvr, a.svr} {
		if svr == nil {
			continue
		}
		if err := svr.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down server %s: %w", svr.Addr, err))
		}
	}

	// Let the loop finish what it has accepted while the session can still reach Discord.
	a.loop.Close()
	select {
	case <-a.loop.Stopped():
	case <-ctx.Done():
		a.Warn("Dispatch loop did not drain before shutdown", slog.Int("pending", a.loop.Pending()))
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	if a.eventNotifier == nil {
		// Create event notifier. It is buffered to prevent blocking.
		a.eventNotifier = make(chan any, 100)
	}

	dg.SetEventNotifier(a.eventNotifier)

	a.s = dg
	a.client = platform.NewDiscord(dg)
	return nil
}

func (a *App) runServers() {
	go a.serve("monitoring", a.svr)
	go a.serve("admin", a.adminSvr)
}

func (a *App) serve(name string, svr *http.Server) {
	a.Info("Starting "+name+" server", slog.String("addr", svr.Addr))
	if err := svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.Error("Error starting "+name+" server", slog.String(logging.KeyError, err.Error()))
		a.Warn(name + " server will not be available")
	}
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)

	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + config.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (a *App) RegisterDiscordHandlers() {
	// Bot connected.
	a.s.AddHandler(readyHandler(a))

	// Bot joined guild, or the guild became available.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Interaction create handler.
	a.s.AddHandler(interactionHandler(a, a.tickets))
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Client() platform.Client {
	return a.client
}

func (a *App) Directory() *directory.Directory {
	return a.dir
}

func (a *App) Scheduler() dispatch.Scheduler {
	return a.loop
}
