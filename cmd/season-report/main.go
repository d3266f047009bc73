package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/eplhistory/cmd/season-report/commands"
	"github.com/okian/eplhistory/pkg/logger"
)

func main() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	commands.ExecuteContext(ctx)
}
