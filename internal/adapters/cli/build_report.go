package cli

import (
	"fmt"
	"io"
	"sort"
	"time"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type cliOutputWithColors interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Writer() io.Writer
	ErrWriter() io.Writer
}

type BuildError struct {
	Subject string
	Message string
	Details []string
}

type BuildReport struct {
	colors      cliOutputWithColors
	steps       []*BuildStep
	warnings    []BuildError
	errors      []BuildError
	startTime   time.Time
	components  int
	files       int
	outputDir   string
	hasFailures bool
}

func NewBuildReport(colors cliOutputWithColors, outputDir string) *BuildReport {
	return &BuildReport{
		colors:    colors,
		steps:     make([]*BuildStep, 0),
		warnings:  make([]BuildError, 0),
		errors:    make([]BuildError, 0),
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetComponentCount(count int) {
	r.components = count
}

func (r *BuildReport) AddFiles(count int) {
	r.files += count
}

func (r *BuildReport) StartStep(name string) *BuildStep {
	step := &BuildStep{
		Name:      name,
		StartTime: time.Now(),
	}
	r.steps = append(r.steps, step)
	return step
}

func (r *BuildReport) EndStep(step *BuildStep, success bool, err string) {
	step.EndTime = time.Now()
	step.Success = success
	step.Error = err
	if !success {
		r.hasFailures = true
	}
}

func (r *BuildReport) AddWarning(subject string, message string, details []string) {
	r.warnings = append(r.warnings, BuildError{
		Subject: subject,
		Message: message,
		Details: details,
	})
}

func (r *BuildReport) AddError(subject string, message string, details []string) {
	r.errors = append(r.errors, BuildError{
		Subject: subject,
		Message: message,
		Details: details,
	})
	r.hasFailures = true
}

func (r *BuildReport) Render() {
	duration := time.Since(r.startTime)

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

func (r *BuildReport) renderMinimal(duration time.Duration) {
	out := r.colors.Writer()
	fmt.Fprintf(out, "  "+r.colors.Green("✓ ")+"%d components found, %d files written\n", r.components, r.files)

	stepLines := make([]string, 0, len(r.steps))
	allSuccessful := true

	for _, step := range r.steps {
		if !step.Success {
			allSuccessful = false
			stepLines = append(stepLines, "  "+r.colors.Red("✗ ")+step.Name)
		}
	}

	if allSuccessful {
		fmt.Fprintf(out, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Failed steps:")
		for _, line := range stepLines {
			fmt.Fprintln(out, line)
		}
	}

	if r.outputDir != "" {
		fmt.Fprintf(out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	out := r.colors.Writer()
	errOut := r.colors.ErrWriter()
	fmt.Fprintf(out, "  %d components found, %d files written\n", r.components, r.files)

	fmt.Fprintln(out)
	for _, step := range r.steps {
		status := r.colors.Green("✓")
		if !step.Success {
			status = r.colors.Red("✗")
		}
		fmt.Fprintf(out, "  %s %s\n", status, step.Name)
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(errOut, "  "+r.colors.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderErrors(r.errors, r.colors.Red("✗"))
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  "+r.colors.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderErrors(r.warnings, r.colors.Yellow("⚠"))
	}

	fmt.Fprintln(out)
	if len(r.errors) > 0 {
		fmt.Fprintf(errOut, "  %s\n", r.colors.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(out, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}

	if r.outputDir != "" {
		fmt.Fprintf(out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderErrors(errors []BuildError, marker string) {
	out := r.colors.Writer()
	for _, err := range errors {
		fmt.Fprintf(out, "  %s %s\n", marker, err.Subject)
		fmt.Fprintf(out, "    %s\n", err.Message)

		deduplicated := deduplicateStrings(err.Details)
		for _, detail := range deduplicated {
			fmt.Fprintf(out, "      • %s\n", detail)
		}
	}
}

func (r *BuildReport) Warnings() []BuildError {
	return r.warnings
}

func (r *BuildReport) Errors() []BuildError {
	return r.errors
}

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[string]int)
	for _, item := range items {
		seen[item]++
	}

	result := make([]string, 0, len(seen))
	for _, item := range sortedKeys(seen) {
		count := seen[item]
		if count > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, count))
		} else {
			result = append(result, item)
		}
	}

	return result
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
