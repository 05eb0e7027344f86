package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept around each hunk.
const contextLines = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// UnifiedDiff renders the line diff between before and after in unified
// format with a/ and b/ prefixes. Identical inputs yield "".
func UnifiedDiff(path string, before, after []byte) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	src, dst, lineArray := dmp.DiffLinesToRunes(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lineArray)

	var lines []diffLine
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			lines = append(lines, diffLine{op: d.Type, text: text})
		}
	}

	// line numbers in the old and new file at each position
	oldNo := make([]int, len(lines)+1)
	newNo := make([]int, len(lines)+1)
	o, n := 1, 1
	for i, l := range lines {
		oldNo[i], newNo[i] = o, n
		switch l.op {
		case diffmatchpatch.DiffEqual:
			o++
			n++
		case diffmatchpatch.DiffDelete:
			o++
		case diffmatchpatch.DiffInsert:
			n++
		}
	}
	oldNo[len(lines)], newNo[len(lines)] = o, n

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)

	for _, h := range hunks(lines) {
		oldCount, newCount := 0, 0
		for _, l := range lines[h[0]:h[1]] {
			if l.op != diffmatchpatch.DiffInsert {
				oldCount++
			}
			if l.op != diffmatchpatch.DiffDelete {
				newCount++
			}
		}
		oldStart, newStart := oldNo[h[0]], newNo[h[0]]
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}

		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, l := range lines[h[0]:h[1]] {
			b.WriteString(prefix(l.op))
			b.WriteString(strings.TrimSuffix(l.text, "\n"))
			b.WriteString("\n")
			if !strings.HasSuffix(l.text, "\n") {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return b.String()
}

// hunks groups changed lines into [start, end) ranges including context.
func hunks(lines []diffLine) [][2]int {
	var out [][2]int
	for i := 0; i < len(lines); i++ {
		if lines[i].op == diffmatchpatch.DiffEqual {
			continue
		}

		start := max(0, i-contextLines)
		last := i
		for j := i + 1; j < len(lines) && j <= last+2*contextLines; j++ {
			if lines[j].op != diffmatchpatch.DiffEqual {
				last = j
			}
		}
		end := min(len(lines), last+contextLines+1)

		out = append(out, [2]int{start, end})
		i = end - 1
	}
	return out
}

func splitLines(text string) []string {
	parts := strings.SplitAfter(text, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func prefix(op diffmatchpatch.Operation) string {
	switch op {
	case diffmatchpatch.DiffDelete:
		return "-"
	case diffmatchpatch.DiffInsert:
		return "+"
	default:
		return " "
	}
}
