// Package report renders run progress for an operator at a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jonwraymond/snippetexec/run"
)

// Options configures a Console.
type Options struct {
	// Stdout receives code, snippet output, and tallies. Default: os.Stdout.
	Stdout io.Writer

	// Stderr receives snippet error output and failures. Default: os.Stderr.
	Stderr io.Writer

	// Styled forces styling on or off. Default: on when Stdout is a terminal.
	Styled *bool
}

// Console is a run.Reporter writing human-readable output.
type Console struct {
	stdout io.Writer
	stderr io.Writer
	styled bool

	header  lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
}

// NewConsole creates a Console.
func NewConsole(opts Options) *Console {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	styled := isTerminal(stdout)
	if opts.Styled != nil {
		styled = *opts.Styled
	}

	return &Console{
		stdout:  stdout,
		stderr:  stderr,
		styled:  styled,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Snippet prints the code about to run.
func (c *Console) Snippet(index int, code string) {
	fmt.Fprintln(c.stdout, c.render(c.header, fmt.Sprintf("── snippet %d ──", index+1)))
	fmt.Fprintln(c.stdout, code)
}

// Output prints the snippet's stdout to Stdout and its stderr to Stderr.
func (c *Console) Output(_ int, stdout, stderr string) {
	fmt.Fprintln(c.stdout, c.render(c.muted, "stdout:"))
	fmt.Fprintln(c.stdout, strings.TrimRight(stdout, "\n"))
	fmt.Fprintln(c.stderr, c.render(c.muted, "stderr:"))
	fmt.Fprintln(c.stderr, strings.TrimRight(stderr, "\n"))
}

// Error prints a backend failure.
func (c *Console) Error(_ int, err error) {
	fmt.Fprintln(c.stderr, c.render(c.errText, "Error executing snippet"))
	fmt.Fprintln(c.stderr, err)
}

// Tally prints the running counts.
func (c *Console) Tally(t run.Tally) {
	fmt.Fprintln(c.stdout, c.render(c.muted, fmt.Sprintf("%d snippets skipped", t.Skipped)))
	fmt.Fprintln(c.stdout, c.render(c.ok, fmt.Sprintf("%d snippets succeeded", t.Succeeded)))
	fmt.Fprintln(c.stdout, c.render(c.fail, fmt.Sprintf("%d snippets failed", t.Failed)))
}

// Summary prints the final line of a run.
func (c *Console) Summary(provider string, t run.Tally) {
	style := c.ok
	if t.Failed > 0 {
		style = c.fail
	}
	line := fmt.Sprintf("%s: %d/%d snippets succeeded", provider, t.Succeeded, t.Total())
	fmt.Fprintln(c.stdout, c.render(style, line))
}

func (c *Console) render(style lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}
	return style.Render(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var _ run.Reporter = (*Console)(nil)
