package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/ticketdesk/pkg/admin"
	"github.com/Jacobbrewer1/ticketdesk/pkg/panel"
	"github.com/Jacobbrewer1/ticketdesk/pkg/request"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// panelLimiter returns nil when submissions are not limited.
func panelLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

// adminRouter builds the routes of the admin server.
func adminRouter(a IApp, srv *admin.Server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(admin.PathIndex, middlewareHttp(srv.Index, a)).Methods(http.MethodGet)
	r.HandleFunc(admin.PathPanel, middlewareHttp(srv.PanelForm, a)).Methods(http.MethodGet)
	r.HandleFunc(admin.PathPanel, middlewareHttp(srv.SubmitPanel, a)).Methods(http.MethodPost)

	r.NotFoundHandler = request.NotFoundHandler(a.Log())
	r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Log())
	return r
}

func (a *App) setupAdmin() error {
	var opts []admin.Option
	if limiter := panelLimiter(config.PanelSubmissionsPerMinute); limiter != nil {
		opts = append(opts, admin.WithLimiter(limiter))
	}

	composer := panel.NewComposer(a.Logger, a.client, a.loop)
	srv, err := admin.NewServer(a.Logger, a.dir, composer, admin.NewCookieStore(config.AdminSecret), opts...)
	if err != nil {
		return fmt.Errorf("error creating admin server: %w", err)
	}

	a.adminSvr = &http.Server{
		Addr:              ":" + config.AdminPort,
		Handler:           adminRouter(a, srv),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}
