package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapsense/snapsense-server/internal/datasource"
	"github.com/snapsense/snapsense-server/internal/service"
)

func newReportCmd() *cobra.Command {
	var (
		format    string
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "report ID",
		Short: "Print a profile's weekly report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			source := datasource.NewMockSource(
				datasource.WithLatency(0),
				datasource.WithLogger(a.log.Logger),
			)
			if a.cfg.DataSource.FixturesPath != "" {
				if err := source.ReloadFixtures(a.cfg.DataSource.FixturesPath); err != nil {
					return err
				}
			}
			dashboards := service.NewDashboardService(source, a.journal.Store, service.NoopEmitter{}, a.log.Logger)
			reports := service.NewReportService(a.profiles, dashboards, nil, nil, a.log.Logger)

			r, err := reports.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "text":
				out = r.Text()
			case "html":
				out, err = r.HTML()
			case "markdown", "md":
				out, err = r.Markdown()
			default:
				return fmt.Errorf("unknown format %q (text, html, markdown)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if chartPath == "" {
				return nil
			}
			f, err := os.Create(chartPath)
			if err != nil {
				return err
			}
			if err := r.WriteChart(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, html or markdown")
	cmd.Flags().StringVar(&chartPath, "chart", "", "Also write the EXP chart PNG to this file")
	return cmd
}
