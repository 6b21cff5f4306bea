package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/alumnilink/internal/buildinfo"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
	"github.com/dmitrijs2005/alumnilink/internal/server"
	"github.com/dmitrijs2005/alumnilink/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, "json", cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
