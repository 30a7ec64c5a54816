// Package console is the line-oriented terminal boundary of the
// application: prompts, styled status lines and input parsing.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// Console reads answers line by line and writes human-readable output.
// Styling degrades to plain text when out is not a terminal.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	styles styles
}

func New(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		styles: styles{
			title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
			success: r.NewStyle().Bold(true).Foreground(colorSuccess),
			warning: r.NewStyle().Bold(true).Foreground(colorWarning),
			err:     r.NewStyle().Bold(true).Foreground(colorError),
			muted:   r.NewStyle().Foreground(colorMuted),
		},
	}
}

// Prompt writes label followed by ": " and returns the next input line with
// surrounding whitespace removed. It returns io.EOF once input is exhausted.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label+": ")
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Title(text string) {
	fmt.Fprintln(c.out, c.styles.title.Render(text))
}

func (c *Console) Success(text string) {
	fmt.Fprintln(c.out, c.styles.success.Render(text))
}

func (c *Console) Warning(text string) {
	fmt.Fprintln(c.out, c.styles.warning.Render(text))
}

func (c *Console) Error(text string) {
	fmt.Fprintln(c.out, c.styles.err.Render(text))
}

func (c *Console) Muted(text string) {
	fmt.Fprintln(c.out, c.styles.muted.Render(text))
}
