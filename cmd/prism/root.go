package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prism/internal/adapters/cli"
	"github.com/3-lines-studio/prism/internal/adapters/esbuild"
	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/config"
	"github.com/3-lines-studio/prism/internal/core"
	"github.com/3-lines-studio/prism/internal/usecase"
)

var (
	flagRoot    string
	flagConfig  string
	flagVerbose bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Theme build tool",
	Long: `prism builds a site theme: the main script and stylesheets plus every
component under components/<name>/src. Compiled component files are moved
back next to their sources after a full build.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cli.SetupLogging(flagVerbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "r", ".", "theme directory")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (default <root>/prism.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored output (env: NO_COLOR)")

	rootCmd.AddCommand(
		newBuildCmd(),
		newServeCmd(),
		newInitCmd(),
		newComponentCmd(),
		newComponentsCmd(),
		newDoctorCmd(),
	)
}

func newOutput() *cli.Output {
	out := cli.NewOutput()
	if flagNoColor {
		out.DisableColors()
	}
	return out
}

func loadConfig() (config.Config, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load(flagRoot, flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	slog.Debug("configuration loaded", "root", cfg.Root, "file", loader.ConfigFileUsed(), "match", cfg.Match)
	return cfg, nil
}

// newBuildService wires the esbuild bundler. publicOrigin prefixes the
// public path when files are served by the dev server.
func newBuildService(cfg config.Config, publicOrigin string) *usecase.BuildService {
	bundler := esbuild.NewBundler(esbuild.Options{
		Root:       cfg.AbsRoot(),
		OutDir:     cfg.OutPath(),
		PublicPath: publicOrigin + core.PublicPath(cfg.Base, cfg.OutDir),
		Aliases:    cfg.Aliases,
		Splitting:  cfg.Splitting,
		Minify:     cfg.Minify,
	})
	return usecase.NewBuildService(cfg, bundler, fs.NewOSFileSystem(), newOutput())
}
