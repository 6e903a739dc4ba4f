package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/prism/internal/adapters/http"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Watch the theme and serve its output",
		Long: `Serve rebuilds the theme on change and serves the output and components
directories at the configured origin, with CORS enabled for the site.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return newBuildService(cfg, cfg.Server.Origin()).WatchTheme(ctx)
			})
			g.Go(func() error {
				return http.NewServer(cfg).ListenAndServe(ctx)
			})
			return g.Wait()
		},
	}
}
