package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/usecase"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <theme-dir>",
		Short: "Create a new theme",
		Example: `  prism init web/themes/custom/fresh
  prism init .`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			themeDir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			service := usecase.NewInitService(fs.NewOSFileSystem(), newOutput())
			return service.InitTheme(usecase.InitInput{ThemeDir: themeDir}).Error
		},
	}
}
