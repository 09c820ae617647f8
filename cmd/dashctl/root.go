package main

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/snapsense/snapsense-server/internal/config"
	"github.com/snapsense/snapsense-server/internal/di"
	"github.com/snapsense/snapsense-server/internal/di/providers"
	"github.com/snapsense/snapsense-server/internal/logger"
	"github.com/snapsense/snapsense-server/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Manage SnapSense profiles and reports",
		Long:          "dashctl works on the server's data directory. Stop the server before running it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("data-path", "", "Directory for local storage (overrides DATA_PATH)")
	root.PersistentFlags().String("env-file", ".env", "Path to .env file")

	root.AddCommand(newProfilesCmd())
	root.AddCommand(newReportCmd())
	return root
}

// app is an opened data directory.
type app struct {
	injector *do.RootScope
	cfg      *config.Config
	log      *logger.Logger
	profiles *service.ProfileService
	journal  *providers.JournalHandle
}

// openApp loads configuration from the persistent flags and opens the
// stores. Call close when done.
func openApp(cmd *cobra.Command) (*app, error) {
	args := []string{"-log-level", "warn"}
	if p, _ := cmd.Flags().GetString("data-path"); p != "" {
		args = append(args, "-data-path", p)
	}
	if p, _ := cmd.Flags().GetString("env-file"); p != "" {
		args = append(args, "-env-file", p)
	}

	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	injector := di.NewCLIContainer(cfg)
	a := &app{injector: injector, cfg: cfg}
	if a.profiles, err = do.Invoke[*service.ProfileService](injector); err != nil {
		injector.Shutdown()
		return nil, err
	}
	a.log = do.MustInvoke[*logger.Logger](injector)
	a.journal = do.MustInvoke[*providers.JournalHandle](injector)

	a.profiles.Initialize(context.Background())
	return a, nil
}

func (a *app) close() {
	a.injector.Shutdown()
}
