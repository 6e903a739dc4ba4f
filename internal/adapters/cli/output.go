package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	grayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

func NewOutput() *Output {
	return &Output{
		out:          os.Stdout,
		errOut:       os.Stderr,
		enableColors: isTerminal(),
	}
}

// NewWriterOutput writes everything to w without colors.
func NewWriterOutput(w io.Writer) *Output {
	return &Output{out: w, errOut: w}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) render(style lipgloss.Style, text string) string {
	if !o.enableColors {
		return text
	}
	return style.Render(text)
}

func (o *Output) Green(text string) string {
	return o.render(greenStyle, text)
}

func (o *Output) Yellow(text string) string {
	return o.render(yellowStyle, text)
}

func (o *Output) Red(text string) string {
	return o.render(redStyle, text)
}

func (o *Output) Gray(text string) string {
	return o.render(grayStyle, text)
}

func (o *Output) Writer() io.Writer {
	return o.out
}

func (o *Output) ErrWriter() io.Writer {
	return o.errOut
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, o.render(headerStyle, msg))
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	prefix := "  "
	if emoji != "" {
		prefix += emoji + " "
	}
	fmt.Fprintf(o.out, prefix+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Green("✓ ")+"%s\n", formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
