package usecase

import (
	"path/filepath"

	"github.com/3-lines-studio/prism/internal/config"
	"github.com/3-lines-studio/prism/internal/discovery"
)

type Finding struct {
	Subject string
	Message string
}

type DoctorOutput struct {
	Findings   []Finding
	Components int
}

func (o DoctorOutput) Healthy() bool {
	return len(o.Findings) == 0
}

type DoctorService struct {
	cfg config.Config
	fs  FileSystem
	cli CLIOutput
}

func NewDoctorService(cfg config.Config, fs FileSystem, cli CLIOutput) *DoctorService {
	return &DoctorService{cfg: cfg, fs: fs, cli: cli}
}

// Check inspects the theme layout. Problems are reported, never fixed.
func (s *DoctorService) Check() DoctorOutput {
	s.cli.PrintHeader("Prism Doctor")

	var out DoctorOutput
	add := func(subject, message string) {
		out.Findings = append(out.Findings, Finding{Subject: subject, Message: message})
		s.cli.PrintWarning("%s: %s", subject, message)
	}

	if !s.fs.IsDir(s.cfg.ComponentsPath()) {
		add(s.cfg.ComponentsDir, "components directory not found")
	} else {
		found, err := discovery.Scan(s.fs, s.cfg.AbsRoot(), s.cfg.ComponentsDir)
		if err != nil {
			add(s.cfg.ComponentsDir, err.Error())
		}
		out.Components = len(found.Components)
		for _, id := range found.Skipped {
			add(filepath.ToSlash(filepath.Join(s.cfg.ComponentsDir, id)), "no src/"+id+".ts, .js or .css source")
		}
	}

	for _, entry := range s.cfg.Entries {
		if !s.fs.FileExists(s.cfg.Path(entry)) {
			add(entry, "entry point not found")
		}
	}

	for _, pkg := range s.cfg.Vendor {
		if !s.fs.IsDir(filepath.Join(s.cfg.NodeModulesPath(), pkg)) {
			add(pkg, "vendor package missing from "+s.cfg.NodeModulesDir+", run npm install")
		}
	}

	if s.fs.IsDir(s.cfg.StagingPath()) {
		add(filepath.ToSlash(s.cfg.StagingDir()), "leftover staging directory, component files were not relocated")
	}

	if out.Healthy() {
		s.cli.PrintDone("No problems found")
	} else {
		s.cli.PrintStep("", "%d problem(s) found", len(out.Findings))
	}
	return out
}
