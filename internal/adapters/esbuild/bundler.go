// Package esbuild runs the esbuild Go API as the theme bundler.
package esbuild

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/3-lines-studio/prism/internal/core"
)

const chunkNames = "chunks/[name]-[hash]"

var assetLoaders = map[string]api.Loader{
	".woff":  api.LoaderFile,
	".woff2": api.LoaderFile,
	".ttf":   api.LoaderFile,
	".otf":   api.LoaderFile,
	".eot":   api.LoaderFile,
	".svg":   api.LoaderFile,
	".png":   api.LoaderFile,
	".jpg":   api.LoaderFile,
	".jpeg":  api.LoaderFile,
	".gif":   api.LoaderFile,
	".webp":  api.LoaderFile,
	".avif":  api.LoaderFile,
}

type Options struct {
	// Root is the absolute theme directory.
	Root string
	// OutDir is the absolute output directory.
	OutDir     string
	PublicPath string
	Aliases    map[string]string
	Splitting  bool
	Minify     bool
}

type Bundler struct {
	opts Options
}

func NewBundler(opts Options) *Bundler {
	return &Bundler{opts: opts}
}

func (b *Bundler) Build(ctx context.Context, entries []core.EntryPoint) (core.BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return core.BundleResult{}, err
	}
	if len(entries) == 0 {
		return core.BundleResult{}, nil
	}

	result := api.Build(b.buildOptions(entries))
	return b.convert(result), nil
}

// Watch rebuilds on every change until ctx is done. onEnd runs once per
// completed build, never per file.
func (b *Bundler) Watch(ctx context.Context, entries []core.EntryPoint, onEnd func(core.BundleResult)) error {
	if len(entries) == 0 {
		return fmt.Errorf("nothing to watch: no entry points")
	}

	opts := b.buildOptions(entries, buildEndPlugin(func(result api.BuildResult) {
		onEnd(b.convert(result))
	}))

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return fmt.Errorf("creating build context: %s", strings.Join(formatMessages(ctxErr.Errors), "; "))
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}
	slog.Info("watching for changes", "entries", len(entries))

	<-ctx.Done()
	buildCtx.Cancel()
	return nil
}

func (b *Bundler) buildOptions(entries []core.EntryPoint, plugins ...api.Plugin) api.BuildOptions {
	points := make([]api.EntryPoint, 0, len(entries))
	for _, entry := range entries {
		points = append(points, api.EntryPoint{
			InputPath:  "./" + strings.TrimPrefix(entry.Source, "./"),
			OutputPath: entry.OutputPath,
		})
	}

	return api.BuildOptions{
		EntryPointsAdvanced: points,
		AbsWorkingDir:       b.opts.Root,
		Outdir:              b.opts.OutDir,
		Bundle:              true,
		Write:               false,
		Metafile:            true,
		Splitting:           b.opts.Splitting,
		Format:              api.FormatESModule,
		Platform:            api.PlatformBrowser,
		Target:              api.ES2020,
		ChunkNames:          chunkNames,
		AssetNames:          "[name]",
		PublicPath:          b.opts.PublicPath,
		MinifyWhitespace:    b.opts.Minify,
		MinifyIdentifiers:   b.opts.Minify,
		MinifySyntax:        b.opts.Minify,
		Loader:              assetLoaders,
		LogLevel:            api.LogLevelSilent,
		Plugins:             append([]api.Plugin{aliasPlugin(b.opts.Root, b.opts.Aliases)}, plugins...),
	}
}

func (b *Bundler) convert(result api.BuildResult) core.BundleResult {
	out := core.BundleResult{
		Errors:   formatMessages(result.Errors),
		Warnings: formatMessages(result.Warnings),
	}
	if len(result.Errors) > 0 {
		return out
	}

	meta, err := parseMetafile(result.Metafile)
	if err != nil {
		out.Errors = append(out.Errors, fmt.Sprintf("parsing metafile: %v", err))
		return out
	}

	for _, file := range result.OutputFiles {
		key, err := core.RelSlash(b.opts.Root, file.Path)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("locating %s: %v", file.Path, err))
			continue
		}
		rel, err := core.RelSlash(b.opts.OutDir, file.Path)
		if err != nil || strings.HasPrefix(rel, "../") {
			out.Errors = append(out.Errors, fmt.Sprintf("output %s is outside %s", file.Path, b.opts.OutDir))
			continue
		}

		out.Files = append(out.Files, b.emitted(rel, meta.Outputs[key], file.Contents))
	}
	return out
}

// emitted classifies one output. rel is relative to the output directory.
func (b *Bundler) emitted(rel string, output metafileOutput, contents []byte) core.EmittedFile {
	base := path.Base(rel)
	ext := strings.TrimPrefix(path.Ext(base), ".")
	stem := strings.TrimSuffix(base, path.Ext(base))

	file := core.EmittedFile{
		Path:     rel,
		Source:   output.EntryPoint,
		Contents: contents,
	}

	switch {
	case output.EntryPoint != "" && ext == "js":
		file.Artifact = core.Artifact{
			Kind:         core.ArtifactEntry,
			Name:         core.LogicalName(output.EntryPoint),
			FacadeModule: output.EntryPoint,
			Ext:          ext,
		}
		if output.CSSBundle != "" {
			if css, err := core.RelSlash(b.opts.OutDir, filepath.Join(b.opts.Root, filepath.FromSlash(output.CSSBundle))); err == nil {
				file.CSSBundle = css
			}
		}
	case ext == "js":
		name, hash := core.SplitHashedName(stem)
		if vendor, ok := vendorName(output.Inputs); ok {
			name = vendor
		}
		file.Artifact = core.Artifact{
			Kind: core.ArtifactChunk,
			Name: name,
			Ext:  ext,
			Hash: hash,
		}
	default:
		name := stem
		if output.EntryPoint != "" {
			name = core.LogicalName(output.EntryPoint)
		}
		file.Artifact = core.Artifact{
			Kind:     core.ArtifactAsset,
			Name:     name,
			FileName: base,
			Ext:      ext,
		}
	}

	return file
}

// vendorName names a chunk whose inputs all belong to one dependency.
func vendorName(inputs map[string]inputContrib) (string, bool) {
	if len(inputs) == 0 {
		return "", false
	}

	var name string
	for input := range inputs {
		candidate, ok := core.VendorChunkName(input)
		if !ok {
			return "", false
		}
		if name != "" && candidate != name {
			return "", false
		}
		name = candidate
	}
	return name, true
}

func formatMessages(messages []api.Message) []string {
	formatted := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg.Location != nil {
			formatted = append(formatted, fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text))
			continue
		}
		formatted = append(formatted, msg.Text)
	}
	return formatted
}
