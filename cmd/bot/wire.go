//go:build wireinject
// +build wireinject

package main

import (
	"github.com/Jacobbrewer1/ticketdesk/pkg/directory"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/tickets"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

func InitializeApp() (*App, error) {
	wire.Build(
		wire.Value(logging.Name(AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		mux.NewRouter,
		directory.New,
		tickets.NewSequencer,
		NewApp,
	)
	return new(App), nil
}
