// Package xmldiff compares a translation with the output file it would
// replace.
package xmldiff

import (
	"fmt"
	"strings"
)

// Op is the kind of a diff line.
type Op int

const (
	// Keep is an unchanged context line.
	Keep Op = iota

	// Insert is a line only in the new translation.
	Insert

	// Delete is a line only in the existing output.
	Delete
)

// contextLines is the number of unchanged lines kept around a change.
const contextLines = 3

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with its surrounding context. Start positions
// are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is the line diff between an existing output file and a new
// translation.
type Diff struct {
	// Path names the output file in the headers.
	Path string

	Hunks []Hunk

	Inserted int
	Deleted  int
}

// Compute returns the diff that turns old into updated, or nil when they
// hold the same lines. A missing output file is passed as a nil old.
func Compute(path string, old, updated []byte) *Diff {
	a, b := lines(old), lines(updated)
	ops := script(a, b)

	d := &Diff{Path: path}
	for _, l := range ops {
		switch l.Op {
		case Insert:
			d.Inserted++
		case Delete:
			d.Deleted++
		}
	}
	if d.Inserted == 0 && d.Deleted == 0 {
		return nil
	}
	d.Hunks = hunks(ops)
	return d
}

// HasChanges reports whether d changes anything.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns d in unified diff format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			b.WriteByte(" +-"[l.Op])
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// lines splits content at newlines, dropping the empty piece after a
// final newline.
func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	out := strings.Split(string(content), "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// script computes an edit script from a longest common subsequence
// table. Deletions come before insertions within a change.
func script(a, b []string) []Line {
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, max(n, m))
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, Line{Op: Keep, Text: a[i]})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Op: Delete, Text: a[i]})
			i++
		default:
			ops = append(ops, Line{Op: Insert, Text: b[j]})
			j++
		}
	}
	return ops
}

// hunks groups an edit script into hunks. Changes separated by at most
// twice the context share a hunk.
func hunks(ops []Line) []Hunk {
	var out []Hunk

	// prevEnd is the index after the last line of the previous hunk.
	oldLine, newLine, prevEnd := 1, 1, 0
	for k := 0; k < len(ops); {
		if ops[k].Op == Keep {
			oldLine++
			newLine++
			k++
			continue
		}

		// ops[first:last] is the span of changes merged into this hunk.
		first, last := k, k
		for last < len(ops) {
			if ops[last].Op != Keep {
				last++
				continue
			}
			gap := last
			for gap < len(ops) && ops[gap].Op == Keep {
				gap++
			}
			if gap == len(ops) || gap-last > 2*contextLines {
				break
			}
			last = gap
		}

		lead := min(contextLines, first-prevEnd)
		trail := 0
		for last+trail < len(ops) && trail < contextLines && ops[last+trail].Op == Keep {
			trail++
		}

		h := Hunk{OldStart: oldLine - lead, NewStart: newLine - lead}
		for _, l := range ops[first-lead : last+trail] {
			h.Lines = append(h.Lines, l)
			if l.Op != Insert {
				h.OldCount++
			}
			if l.Op != Delete {
				h.NewCount++
			}
		}
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}
		out = append(out, h)

		for _, l := range ops[first : last+trail] {
			if l.Op != Insert {
				oldLine++
			}
			if l.Op != Delete {
				newLine++
			}
		}
		k = last + trail
		prevEnd = k
	}
	return out
}
