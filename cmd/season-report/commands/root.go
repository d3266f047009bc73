// Package commands implements the season-report CLI.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/eplhistory/internal/app"
	"github.com/okian/eplhistory/internal/config"
	"github.com/okian/eplhistory/pkg/logger"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "season-report",
		Short:         "season-report prints Premier League club history from the configured match data.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTeamsCmd(), newStatsCmd(), newMatrixCmd(), newChartCmd())
	return root
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openService loads the match table through the same configuration as the
// server, without warm-up workers.
func openService(ctx context.Context) (*service.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.WarmWorkers = 0

	opts, release, err := service.OptionsFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = release() }()

	svc := service.New(append(opts, service.WithLogger(logger.Named("season-report")))...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// withService loads the match table only for commands that read it and
// stops the service however run returns.
func withService(run func(cmd *cobra.Command, svc *service.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Stop()
		return run(cmd, svc)
	}
}
