// Package output writes styled messages and diffs to the terminal.
//
// Styling is applied only when the destination is a terminal; redirected
// output stays plain text.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes results to Out and diagnostics to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer

	out, err styles
}

type styles struct {
	color  bool
	header lipgloss.Style
	hunk   lipgloss.Style
	insert lipgloss.Style
	delete lipgloss.Style
	errorS lipgloss.Style
	notice lipgloss.Style
}

// New returns a Printer for out and err, coloring each one only if it is
// a terminal.
func New(out, err io.Writer) *Printer {
	return &Printer{Out: out, Err: err, out: newStyles(out), err: newStyles(err)}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newStyles(w io.Writer) styles {
	if !IsTerminal(w) {
		return styles{}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		color:  true,
		header: r.NewStyle().Bold(true),
		hunk:   r.NewStyle().Foreground(lipgloss.Color("cyan")),
		insert: r.NewStyle().Foreground(lipgloss.Color("green")),
		delete: r.NewStyle().Foreground(lipgloss.Color("red")),
		errorS: r.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		notice: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// Print writes text to Out unchanged.
func (p *Printer) Print(text string) {
	fmt.Fprint(p.Out, text)
}

// Diff writes a unified diff to Out, coloring added and removed lines.
func (p *Printer) Diff(d string) {
	if !p.out.color {
		fmt.Fprint(p.Out, d)
		return
	}
	for _, line := range strings.SplitAfter(d, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		var st lipgloss.Style
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			st = p.out.header
		case strings.HasPrefix(text, "@@"):
			st = p.out.hunk
		case strings.HasPrefix(text, "+"):
			st = p.out.insert
		case strings.HasPrefix(text, "-"):
			st = p.out.delete
		default:
			fmt.Fprint(p.Out, line)
			continue
		}
		fmt.Fprintln(p.Out, st.Render(text))
	}
}

// Errorf writes an error line to Err prefixed with the program name.
func (p *Printer) Errorf(format string, args ...any) {
	msg := "splicefmt: " + fmt.Sprintf(format, args...)
	fmt.Fprintln(p.Err, p.err.render(p.err.errorS, msg))
}

// Notice writes an informational line, such as a file name, to Err.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.Err, p.err.render(p.err.notice, msg))
}
