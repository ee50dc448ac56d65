package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
)

// AppName is the name of the application.
const AppName = config.AppName

func main() {
	a, err := InitializeApp()
	if err != nil {
		log.Fatalln(err)
	}
	if err := config.Parse(a.Log(), os.Args[1:]); err != nil {
		a.Error("Error parsing configuration", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
	a.Info("Starting application")
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
