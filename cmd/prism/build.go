package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prism/internal/core"
	"github.com/3-lines-studio/prism/internal/usecase"
)

func newBuildCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the theme",
		Long: `Build compiles entries and components into the output directory,
mirrors vendor packages and writes the manifest.

With --watch, the theme is rebuilt on every change. Watch builds leave
component files in the staging directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			service := newBuildService(cfg, "")
			if watch {
				return service.WatchTheme(ctx)
			}

			result := service.BuildTheme(ctx, usecase.BuildInput{Mode: core.ModeFull})
			return result.Error
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild on change")
	return cmd
}
