package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_MinimalRender(t *testing.T) {
	var buf bytes.Buffer
	report := NewBuildReport(NewWriterOutput(&buf), "/theme/dist")
	report.SetComponentCount(3)
	report.AddFiles(5)

	step := report.StartStep("Bundling")
	report.EndStep(step, true, "")
	report.Render()

	out := buf.String()
	assert.Contains(t, out, "3 components found, 5 files written")
	assert.Contains(t, out, "Build complete in")
	assert.Contains(t, out, "Output: /theme/dist")
	assert.False(t, report.HasFailures())
}

func TestBuildReport_VerboseRenderWithWarnings(t *testing.T) {
	var buf bytes.Buffer
	report := NewBuildReport(NewWriterOutput(&buf), "")

	first := report.StartStep("Bundling")
	second := report.StartStep("Relocating component files")
	report.EndStep(first, true, "")
	report.EndStep(second, true, "")
	report.AddWarning("button.js", "Failed to move file", []string{"permission denied", "permission denied"})
	report.Render()

	out := buf.String()
	assert.Contains(t, out, "Warnings (1):")
	assert.Contains(t, out, "button.js")
	assert.Contains(t, out, "permission denied (2 occurrences)")
	assert.False(t, report.HasFailures(), "warnings alone are not failures")
}

func TestBuildReport_StepsSurviveGrowth(t *testing.T) {
	report := NewBuildReport(NewWriterOutput(&bytes.Buffer{}), "")

	steps := make([]*BuildStep, 0, 10)
	for i := 0; i < 10; i++ {
		steps = append(steps, report.StartStep("step"))
	}
	report.EndStep(steps[0], false, "boom")

	require.True(t, report.HasFailures())
	assert.False(t, steps[0].Success)
	assert.Equal(t, "boom", steps[0].Error)
}

func TestBuildReport_ErrorsMarkFailure(t *testing.T) {
	var buf bytes.Buffer
	report := NewBuildReport(NewWriterOutput(&buf), "")
	report.AddError("src/main.ts", "Bundling failed", []string{"Could not resolve \"x\""})
	report.Render()

	assert.True(t, report.HasFailures())
	assert.Len(t, report.Errors(), 1)
	assert.Contains(t, buf.String(), "Build failed after")
}

func TestOutputWithoutColors(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriterOutput(&buf)

	out.PrintSuccess("moved %d files", 2)
	out.PrintWarning("missing %s", "heroicons")
	out.PrintError("failed")

	assert.Equal(t, "  ✓ moved 2 files\n  ⚠ missing heroicons\n  ✗ failed\n", buf.String())
}
