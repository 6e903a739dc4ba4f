package main

import (
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/usecase"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the theme layout",
		Long: `Doctor reports missing entries, components without sources, vendor
packages absent from node_modules and a staging directory left behind by
an interrupted build. Findings are warnings; the command only fails when
the configuration cannot be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			usecase.NewDoctorService(cfg, fs.NewOSFileSystem(), newOutput()).Check()
			return nil
		},
	}
}
