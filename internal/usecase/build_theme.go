package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/prism/internal/adapters/cli"
	"github.com/3-lines-studio/prism/internal/config"
	"github.com/3-lines-studio/prism/internal/core"
	"github.com/3-lines-studio/prism/internal/discovery"
)

type BuildInput struct {
	Mode core.BuildMode
}

type BuildOutput struct {
	Success    bool
	Error      error
	Manifest   *core.Manifest
	Relocation RelocationOutput
	Vendor     []VendorResult
}

type BuildService struct {
	cfg     config.Config
	bundler Bundler
	fs      FileSystem
	cli     CLIOutput
}

func NewBuildService(cfg config.Config, bundler Bundler, fs FileSystem, cli CLIOutput) *BuildService {
	return &BuildService{
		cfg:     cfg,
		bundler: bundler,
		fs:      fs,
		cli:     cli,
	}
}

// buildPlan is computed once per invocation, before the bundler starts.
type buildPlan struct {
	router     *core.Router
	entries    []core.EntryPoint
	components int
}

func (s *BuildService) BuildTheme(ctx context.Context, input BuildInput) BuildOutput {
	s.cli.PrintHeader("Prism Build")
	report := cli.NewBuildReport(s.cli, s.cfg.OutPath())

	plan, err := s.plan(report)
	if err != nil {
		return BuildOutput{Success: false, Error: err}
	}

	stepBundle := report.StartStep("Bundling entry points")
	result, err := s.bundler.Build(ctx, plan.entries)
	if err != nil {
		report.EndStep(stepBundle, false, err.Error())
		return BuildOutput{Success: false, Error: fmt.Errorf("failed to run bundler: %w", err)}
	}
	s.reportBundle(report, result)
	if result.Failed() {
		report.EndStep(stepBundle, false, "")
		report.Render()
		return BuildOutput{Success: false, Error: fmt.Errorf("bundling failed with %d error(s)", len(result.Errors))}
	}
	report.EndStep(stepBundle, true, "")

	output, err := s.complete(plan, result, input.Mode, report)
	report.Render()
	if err != nil {
		output.Success = false
		output.Error = err
		return output
	}

	output.Success = true
	return output
}

// WatchTheme rebuilds until ctx is done. Rebuilds never relocate component
// files or delete the staging directory.
func (s *BuildService) WatchTheme(ctx context.Context) error {
	s.cli.PrintHeader("Prism Watch")
	report := cli.NewBuildReport(s.cli, s.cfg.OutPath())

	plan, err := s.plan(report)
	if err != nil {
		return err
	}

	return s.bundler.Watch(ctx, plan.entries, func(result core.BundleResult) {
		report := cli.NewBuildReport(s.cli, s.cfg.OutPath())
		report.SetComponentCount(plan.components)
		s.reportBundle(report, result)
		if result.Failed() {
			for _, msg := range result.Errors {
				slog.Error("rebuild failed", "error", msg)
			}
			return
		}

		if _, err := s.complete(plan, result, core.ModeWatch, report); err != nil {
			slog.Error("rebuild failed", "error", err)
			return
		}
		report.Render()
	})
}

func (s *BuildService) plan(report *cli.BuildReport) (buildPlan, error) {
	stepScan := report.StartStep("Discovering components")
	found, err := discovery.Scan(s.fs, s.cfg.AbsRoot(), s.cfg.ComponentsDir)
	if err != nil {
		report.EndStep(stepScan, false, err.Error())
		return buildPlan{}, fmt.Errorf("failed to discover components: %w", err)
	}
	report.EndStep(stepScan, true, "")
	report.SetComponentCount(len(found.Components))
	for _, id := range found.Skipped {
		slog.Debug("component has no sources", "component", id)
	}

	router := core.NewRouter(s.cfg.ComponentsDir, found.Set, s.cfg.MatchMode())

	var sources []string
	for _, entry := range s.cfg.Entries {
		rel := filepath.ToSlash(filepath.Clean(entry))
		if !s.fs.FileExists(s.cfg.Path(rel)) {
			slog.Warn("entry point not found", "entry", rel)
			report.AddWarning(rel, "Entry point not found, skipped", nil)
			continue
		}
		sources = append(sources, rel)
	}
	sources = append(sources, found.Entries...)

	if len(sources) == 0 {
		return buildPlan{}, fmt.Errorf("no entry points found")
	}

	entries := make([]core.EntryPoint, 0, len(sources))
	for _, source := range sources {
		entries = append(entries, core.EntryPoint{
			Source:     source,
			OutputPath: router.EntryOutputPath(source),
		})
	}

	return buildPlan{router: router, entries: entries, components: len(found.Components)}, nil
}

// complete runs after the bundler finished a whole build.
func (s *BuildService) complete(plan buildPlan, result core.BundleResult, mode core.BuildMode, report *cli.BuildReport) (BuildOutput, error) {
	manifest := core.NewManifest()

	stepWrite := report.StartStep("Writing output files")
	written, err := s.writeOutputs(plan.router, result, manifest, report)
	if err != nil {
		report.EndStep(stepWrite, false, err.Error())
		return BuildOutput{Manifest: manifest}, err
	}
	report.AddFiles(written)
	report.EndStep(stepWrite, true, "")

	stepPublic := report.StartStep("Copying public assets")
	if err := s.copyPublicDir(); err != nil {
		report.AddWarning("Public assets", "Failed to copy public assets", []string{err.Error()})
	}
	report.EndStep(stepPublic, true, "")

	stepVendor := report.StartStep("Mirroring vendor packages")
	vendor := MirrorVendor(s.fs, s.cfg.NodeModulesPath(), s.cfg.VendorPath(), s.cfg.Vendor)
	for _, v := range vendor {
		switch {
		case v.Missing:
			report.AddWarning(v.Package, "Vendor package not found in "+s.cfg.NodeModulesDir, nil)
		case v.Err != nil:
			report.AddWarning(v.Package, "Failed to copy vendor package", []string{v.Err.Error()})
		}
	}
	report.EndStep(stepVendor, true, "")

	var relocation RelocationOutput
	if core.ShouldRelocate(mode) {
		stepRelocate := report.StartStep("Relocating component files")
		relocation = RelocateComponents(s.fs, s.cfg.StagingPath(), s.cfg.ComponentsPath(), mode)
		for _, failed := range core.FailedMoves(relocation.Results) {
			report.AddWarning(failed.Move.File, "Failed to move file to "+filepath.Join(s.cfg.ComponentsDir, failed.Move.Component), []string{failed.Err.Error()})
		}
		if relocation.Cleanup != nil {
			report.AddWarning(s.cfg.StagingPath(), "Failed to remove staging directory", []string{relocation.Cleanup.Error()})
		}
		moved := make(map[string]bool, len(relocation.Results))
		componentsDir := strings.Trim(filepath.ToSlash(s.cfg.ComponentsDir), "/")
		for _, result := range relocation.Results {
			if result.Err == nil {
				moved[path.Join(componentsDir, result.Move.Component, result.Move.File)] = true
			}
		}
		manifest.MarkRelocated(func(file string) bool {
			return plan.router.IsComponentPath(file) && moved[file]
		})
		report.EndStep(stepRelocate, true, "")
	}

	data, err := manifest.Marshal()
	if err != nil {
		return BuildOutput{Manifest: manifest}, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := s.fs.WriteFile(s.cfg.ManifestPath(), data, 0644); err != nil {
		return BuildOutput{Manifest: manifest}, fmt.Errorf("failed to write manifest: %w", err)
	}

	return BuildOutput{Manifest: manifest, Relocation: relocation, Vendor: vendor}, nil
}

func (s *BuildService) writeOutputs(router *core.Router, result core.BundleResult, manifest *core.Manifest, report *cli.BuildReport) (int, error) {
	outDir := s.cfg.OutPath()
	dests := make([]string, len(result.Files))
	destByPath := make(map[string]string, len(result.Files))
	moved := make(map[string]string)

	for i, file := range result.Files {
		dests[i] = router.Route(file.Artifact)
		destByPath[file.Path] = dests[i]
		if file.Artifact.IsScript() {
			moved[file.Path] = dests[i]
		}
	}

	owners := make(map[string]string, len(dests))
	for i, file := range result.Files {
		dest := dests[i]
		if previous, ok := owners[dest]; ok {
			slog.Warn("two outputs routed to the same file", "file", dest, "first", previous, "second", file.Path)
			report.AddWarning(dest, "Overwritten by another output", []string{previous, file.Path})
		}
		owners[dest] = file.Path

		contents := file.Contents
		if file.Artifact.IsScript() {
			contents = core.RewriteImports(contents, file.Path, dest, moved)
		}

		target := filepath.Join(outDir, filepath.FromSlash(dest))
		if unchanged(s.fs, target, contents) {
			manifest.Add(file, dest)
			continue
		}
		if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return i, fmt.Errorf("failed to create directory for %s: %w", dest, err)
		}
		if err := s.fs.WriteFile(target, contents, 0644); err != nil {
			return i, fmt.Errorf("failed to write %s: %w", dest, err)
		}

		manifest.Add(file, dest)
		if file.Path != dest {
			slog.Debug("routed output", "from", file.Path, "to", dest)
		}
	}

	for _, file := range result.Files {
		if file.Source != "" && file.CSSBundle != "" {
			manifest.LinkCSS(file.Source, destByPath[file.CSSBundle])
		}
	}

	return len(result.Files), nil
}

// unchanged reports whether target already holds contents. Rebuilds leave
// such files untouched so their modification time stays stable.
func unchanged(fsys FileSystem, target string, contents []byte) bool {
	existing, err := fsys.ReadFile(target)
	return err == nil && bytes.Equal(existing, contents)
}

func (s *BuildService) copyPublicDir() error {
	src := s.cfg.PublicPath()
	if !s.fs.FileExists(src) {
		return nil
	}
	if !s.fs.IsDir(src) {
		return fmt.Errorf("public path is not a directory: %s", src)
	}
	return s.fs.CopyDir(src, s.cfg.OutPath())
}

func (s *BuildService) reportBundle(report *cli.BuildReport, result core.BundleResult) {
	if len(result.Errors) > 0 {
		report.AddError("Bundle", "Bundling failed", result.Errors)
	}
	if len(result.Warnings) > 0 {
		report.AddWarning("Bundle", "Bundler warnings", result.Warnings)
	}
}
