// Package config holds the build configuration of a theme. A Config is
// loaded once at startup and passed to every component that needs it.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/3-lines-studio/prism/internal/core"
)

const (
	DefaultComponentsDir  = "components"
	DefaultOutDir         = "dist"
	DefaultPublicDir      = "assets"
	DefaultNodeModulesDir = "node_modules"
	DefaultProtocol       = "https"
	DefaultPort           = 3000
)

var (
	DefaultEntries = []string{"src/main.ts", "src/main.css", "src/ckeditor.css"}
	DefaultVendor  = []string{"heroicons"}
	DefaultAliases = map[string]string{
		"@src":        "src",
		"@components": "components",
		"@daisyui":    "src/daisyui",
		"@swiper":     "node_modules/swiper",
	}
)

type Config struct {
	// Root is the theme directory; every other path is relative to it.
	Root           string            `mapstructure:"root"`
	ComponentsDir  string            `mapstructure:"componentsDir"`
	OutDir         string            `mapstructure:"outDir"`
	PublicDir      string            `mapstructure:"publicDir"`
	NodeModulesDir string            `mapstructure:"nodeModulesDir"`
	Entries        []string          `mapstructure:"entries"`
	Vendor         []string          `mapstructure:"vendor"`
	Aliases        map[string]string `mapstructure:"aliases"`
	Match          string            `mapstructure:"match"`
	Splitting      bool              `mapstructure:"splitting"`
	Minify         bool              `mapstructure:"minify"`
	Base           string            `mapstructure:"base"`
	Server         ServerConfig      `mapstructure:"server"`
}

type ServerConfig struct {
	Protocol string `mapstructure:"protocol"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// Origin is the dev server origin advertised to the site.
func (s ServerConfig) Origin() string {
	host := s.Host
	if host == "" {
		host = "localhost"
	}
	return s.Protocol + "://" + host + ":" + strconv.Itoa(s.Port)
}

func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

func (s ServerConfig) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// WithDefaults fills every unset field.
func (c Config) WithDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.ComponentsDir == "" {
		c.ComponentsDir = DefaultComponentsDir
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.PublicDir == "" {
		c.PublicDir = DefaultPublicDir
	}
	if c.NodeModulesDir == "" {
		c.NodeModulesDir = DefaultNodeModulesDir
	}
	if c.Entries == nil {
		c.Entries = append([]string(nil), DefaultEntries...)
	}
	if c.Vendor == nil {
		c.Vendor = append([]string(nil), DefaultVendor...)
	}
	if c.Aliases == nil {
		c.Aliases = make(map[string]string, len(DefaultAliases))
		for k, v := range DefaultAliases {
			c.Aliases[k] = v
		}
	}
	if c.Match == "" {
		c.Match = string(core.MatchExact)
	}
	if c.Server.Protocol == "" {
		c.Server.Protocol = DefaultProtocol
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Base == "" {
		c.Base = core.BasePath(c.AbsRoot())
	}
	return c
}

func (c Config) Validate() error {
	if _, err := core.ParseMatchMode(c.Match); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if (c.Server.CertFile == "") != (c.Server.KeyFile == "") {
		return fmt.Errorf("server certFile and keyFile must be set together")
	}
	components := filepath.Clean(c.ComponentsDir)
	if filepath.IsAbs(components) || components == ".." || strings.HasPrefix(components, ".."+string(filepath.Separator)) {
		return fmt.Errorf("componentsDir %q must be inside the theme root", c.ComponentsDir)
	}
	if filepath.Clean(c.OutDir) == components {
		return fmt.Errorf("outDir and componentsDir must differ")
	}
	return nil
}

func (c Config) MatchMode() core.MatchMode {
	mode, err := core.ParseMatchMode(c.Match)
	if err != nil {
		return core.MatchExact
	}
	return mode
}

func (c Config) AbsRoot() string {
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return c.Root
	}
	return abs
}

func (c Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.AbsRoot(), rel)
}

func (c Config) ComponentsPath() string {
	return c.Path(c.ComponentsDir)
}

func (c Config) OutPath() string {
	return c.Path(c.OutDir)
}

// StagingDir is where compiled component files land before relocation,
// relative to the theme root. It mirrors the components directory inside
// the output directory, as routed by core.Router.
func (c Config) StagingDir() string {
	return filepath.Join(c.OutDir, c.ComponentsDir)
}

func (c Config) StagingPath() string {
	return filepath.Join(c.OutPath(), c.ComponentsDir)
}

func (c Config) VendorPath() string {
	return filepath.Join(c.OutPath(), "vendor")
}

func (c Config) PublicPath() string {
	return c.Path(c.PublicDir)
}

func (c Config) NodeModulesPath() string {
	return c.Path(c.NodeModulesDir)
}

func (c Config) ManifestPath() string {
	return filepath.Join(c.OutPath(), core.ManifestFile)
}
