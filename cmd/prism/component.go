package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/discovery"
	"github.com/3-lines-studio/prism/internal/usecase"
)

func newComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component",
		Short: "Component operations",
	}

	cmd.AddCommand(newComponentNewCmd())
	return cmd
}

func newComponentNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			service := usecase.NewInitService(fs.NewOSFileSystem(), newOutput())
			return service.NewComponent(cfg, usecase.ComponentInput{Name: args[0]}).Error
		},
	}
}

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List discovered components and their sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			found, err := discovery.Scan(fs.NewOSFileSystem(), cfg.AbsRoot(), cfg.ComponentsDir)
			if err != nil {
				return err
			}

			out := newOutput()
			w := out.Writer()
			for _, component := range found.Components {
				_, _ = fmt.Fprintln(w, out.Green(component.ID))
				for _, source := range component.Sources() {
					_, _ = fmt.Fprintln(w, "  "+out.Gray(source))
				}
			}
			for _, id := range found.Skipped {
				_, _ = fmt.Fprintln(w, out.Yellow(id)+" "+out.Gray("(no sources in "+filepath.ToSlash(filepath.Join(cfg.ComponentsDir, id, "src"))+")"))
			}
			return nil
		},
	}
}
