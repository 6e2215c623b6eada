package main

import (
	"context"
	"os"

	"github.com/avolkovs/flixcli/internal/client/cli"
	"github.com/avolkovs/flixcli/internal/client/config"
	"github.com/avolkovs/flixcli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.NewConsole(cfg.LogLevel)

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Run(ctx)
}
