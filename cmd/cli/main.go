package main

import (
	"context"
	"log"
	"os"

	"github.com/stockbook-app/stockbook/internal/buildinfo"
	"github.com/stockbook-app/stockbook/internal/client/cli"
	"github.com/stockbook-app/stockbook/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
