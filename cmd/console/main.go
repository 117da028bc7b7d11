// Interactive console for the property back-office API.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rentdesk/property-system/internal/console/client"
	"github.com/rentdesk/property-system/internal/console/gate"
	"github.com/rentdesk/property-system/internal/console/session"
	"github.com/rentdesk/property-system/internal/console/shell"
	"github.com/rentdesk/property-system/internal/pkg/config"
	"github.com/rentdesk/property-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Console: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := session.NewStore(cfg.SessionFile)
	if err != nil {
		log.Fatal().Err(err).Msg("session store init failed")
	}

	c := client.New(cfg.APIBaseURL, store, log)
	sh := shell.New(c, os.Stdin, os.Stdout, log)
	g := gate.New(store, c, sh, log)
	sh.Bind(g)

	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("console exited")
	}
}
