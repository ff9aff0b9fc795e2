package main

import (
	"context"
	"log"
	"os"

	"github.com/stockbook-app/stockbook/internal/buildinfo"
	"github.com/stockbook-app/stockbook/internal/server"
	"github.com/stockbook-app/stockbook/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
