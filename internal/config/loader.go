package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "PRISM"
	// FileName is looked up in the theme root when no config file is given.
	FileName = "prism.yaml"
)

// Loader merges defaults, the optional prism.yaml and PRISM_* environment
// variables.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// First set wins, mirroring local Drupal stacks.
	_ = v.BindEnv("server.host", "PRISM_SERVER_HOST", "DDEV_HOSTNAME", "VIRTUAL_HOST")
	_ = v.BindEnv("server.port", "PRISM_SERVER_PORT")
	_ = v.BindEnv("server.protocol", "PRISM_SERVER_PROTOCOL")
	_ = v.BindEnv("outDir", "PRISM_OUT_DIR")
	_ = v.BindEnv("match", "PRISM_MATCH")

	v.SetDefault("componentsDir", DefaultComponentsDir)
	v.SetDefault("outDir", DefaultOutDir)
	v.SetDefault("publicDir", DefaultPublicDir)
	v.SetDefault("nodeModulesDir", DefaultNodeModulesDir)
	v.SetDefault("entries", DefaultEntries)
	v.SetDefault("vendor", DefaultVendor)
	v.SetDefault("match", "exact")
	v.SetDefault("server.protocol", DefaultProtocol)
	v.SetDefault("server.port", DefaultPort)

	return &Loader{v: v}
}

// Load reads configuration for the theme at root. configFile may be empty,
// in which case root/prism.yaml is used when present.
func (l *Loader) Load(root, configFile string) (Config, error) {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("resolving theme root: %w", err)
	}

	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(absRoot, FileName)
	}

	l.v.SetConfigFile(configFile)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if !missing || explicit {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Root = absRoot

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ConfigFileUsed returns the file viper read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
