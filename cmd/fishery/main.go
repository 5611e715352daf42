package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pixil98/go-fishery/cmd/fishery/command"
	"github.com/pixil98/go-service/service"
)

func main() {
	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		slog.Error("creating application", "error", err)
		os.Exit(1)
	}

	err = app.Run(context.Background())
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}
