// Package diff produces line-based unified diffs.
package diff

import (
	"fmt"
	"strings"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

// Op is the kind of a line edit.
type Op byte

const (
	Keep   Op = ' '
	Delete Op = '-'
	Insert Op = '+'
)

// Line is one line of a hunk with its edit kind. Text keeps its line
// break when it had one.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based
// as printed in the "@@" header.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Header returns the "@@ -a,b +c,d @@" line of h without a line break.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Stat counts inserted and deleted lines across hunks.
func Stat(hunks []Hunk) (inserted, deleted int) {
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Op {
			case Insert:
				inserted++
			case Delete:
				deleted++
			}
		}
	}
	return inserted, deleted
}

// Unified returns the unified diff from oldText to newText labelled with
// name, or "" when they are equal.
func Unified(name, oldText, newText string) string {
	hunks := Hunks(oldText, newText)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteByte(byte(l.Op))
			b.WriteString(l.Text)
			if !strings.HasSuffix(l.Text, "\n") {
				b.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return b.String()
}

// Hunks computes the changes from oldText to newText grouped with
// Context lines around them.
func Hunks(oldText, newText string) []Hunk {
	if oldText == newText {
		return nil
	}
	a, b := split(oldText), split(newText)
	return group(script(a, b), a, b)
}

// split cuts s after every line break. A final line without a break is
// kept as is.
func split(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// step is one edit of the script: the op and the index it consumes in
// the old (Keep, Delete) or new (Insert) slice.
type step struct {
	op       Op
	old, new int
}

// script returns a shortest edit script from a to b using Myers' greedy
// forward search.
func script(a, b []string) []step {
	n, m := len(a), len(b)
	offset := n + m + 1
	frontier := make([]int, 2*offset+1)
	var history [][]int

	for d := 0; d <= n+m; d++ {
		history = append(history, append([]int(nil), frontier...))
		for k := -d; k <= d; k += 2 {
			x := frontier[offset+k-1] + 1
			if k == -d || (k != d && frontier[offset+k-1] < frontier[offset+k+1]) {
				x = frontier[offset+k+1]
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x, y = x+1, y+1
			}
			frontier[offset+k] = x
			if x >= n && y >= m {
				return trace(history, offset, n, m)
			}
		}
	}
	return nil
}

// trace walks the search history backwards from (n, m).
func trace(history [][]int, offset, n, m int) []step {
	var out []step
	x, y := n, m
	for d := len(history) - 1; d > 0; d-- {
		v := history[d]
		k := x - y
		down := k == -d || (k != d && v[offset+k-1] < v[offset+k+1])
		prev := k - 1
		if down {
			prev = k + 1
		}
		px := v[offset+prev]
		py := px - prev
		for x > px && y > py {
			x, y = x-1, y-1
			out = append(out, step{Keep, x, y})
		}
		if down {
			y--
			out = append(out, step{Insert, x, y})
		} else {
			x--
			out = append(out, step{Delete, x, y})
		}
	}
	for x > 0 && y > 0 {
		x, y = x-1, y-1
		out = append(out, step{Keep, x, y})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// group cuts the script into hunks, merging changes whose context
// windows touch.
func group(steps []step, a, b []string) []Hunk {
	var hunks []Hunk
	start, end := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		hunks = append(hunks, hunk(steps[max(start-Context, 0):min(end+Context+1, len(steps))], a, b))
		start, end = -1, -1
	}

	for i, s := range steps {
		if s.op == Keep {
			continue
		}
		if start >= 0 && i-end > 2*Context {
			flush()
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	flush()
	return hunks
}

func hunk(steps []step, a, b []string) Hunk {
	h := Hunk{OldStart: steps[0].old + 1, NewStart: steps[0].new + 1}
	for _, s := range steps {
		switch s.op {
		case Keep:
			h.OldLines++
			h.NewLines++
			h.Lines = append(h.Lines, Line{Keep, a[s.old]})
		case Delete:
			h.OldLines++
			h.Lines = append(h.Lines, Line{Delete, a[s.old]})
		case Insert:
			h.NewLines++
			h.Lines = append(h.Lines, Line{Insert, b[s.new]})
		}
	}
	// An empty side is reported at the line before it.
	if h.OldLines == 0 {
		h.OldStart--
	}
	if h.NewLines == 0 {
		h.NewStart--
	}
	return h
}
