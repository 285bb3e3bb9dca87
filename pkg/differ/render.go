package differ

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	hunkStyle   = color.New(color.FgMagenta)
	addStyle    = color.New(color.FgGreen)
	delStyle    = color.New(color.FgRed)
)

// RenderOptions control the display renderers.
type RenderOptions struct {
	Color       bool
	Context     int // context lines around changes; negative renders everything with no hunk headers
	SourceLabel string
	TargetLabel string
	Width       int // total side-by-side width; 0 means 120
}

// renderLine pairs one emitted line with its position in both inputs.
type renderLine struct {
	tag   byte // ' ', '+' or '-'
	text  string
	oldNo int // 1-based line number in the source text, 0 for insertions
	newNo int // 1-based line number in the target text, 0 for deletions
}

func toRenderLines(ops []EditOperation) []renderLine {
	lines := make([]renderLine, 0, len(ops))
	oldNo, newNo := 0, 0
	for _, op := range ops {
		switch op.Op {
		case OpEqual:
			oldNo++
			newNo++
			lines = append(lines, renderLine{tag: ' ', text: op.Text, oldNo: oldNo, newNo: newNo})
		case OpDelete:
			oldNo++
			lines = append(lines, renderLine{tag: '-', text: op.Text, oldNo: oldNo})
		case OpInsert:
			newNo++
			lines = append(lines, renderLine{tag: '+', text: op.Text, newNo: newNo})
		}
	}
	return lines
}

// RenderUnified renders a diff for terminal display: optional ---/+++ label
// headers, @@ hunk headers with the configured amount of context, and
// optional color. Display output only; apply patches generated with
// GeneratePatch instead. A negative Context renders every line with no hunk
// headers.
func RenderUnified(d *DiffResult, opts RenderOptions) string {
	lines := toRenderLines(d.Ops)
	var sb strings.Builder
	if opts.SourceLabel != "" || opts.TargetLabel != "" {
		writeStyled(&sb, opts.Color, headerStyle, "--- "+opts.SourceLabel)
		writeStyled(&sb, opts.Color, headerStyle, "+++ "+opts.TargetLabel)
	}
	if opts.Context < 0 {
		for _, ln := range lines {
			writeDiffLine(&sb, opts.Color, ln)
		}
		return sb.String()
	}
	for _, h := range groupHunks(lines, opts.Context) {
		writeStyled(&sb, opts.Color, hunkStyle, hunkHeader(lines, h))
		for _, ln := range lines[h.start:h.end] {
			writeDiffLine(&sb, opts.Color, ln)
		}
	}
	return sb.String()
}

func writeStyled(sb *strings.Builder, colored bool, style *color.Color, text string) {
	if colored {
		sb.WriteString(style.Sprint(text))
	} else {
		sb.WriteString(text)
	}
	sb.WriteByte('\n')
}

func writeDiffLine(sb *strings.Builder, colored bool, ln renderLine) {
	text := string(ln.tag) + ln.text
	if colored {
		switch ln.tag {
		case '+':
			text = addStyle.Sprint(text)
		case '-':
			text = delStyle.Sprint(text)
		}
	}
	sb.WriteString(text)
	sb.WriteByte('\n')
}

// hunkRange is a half-open range over render lines.
type hunkRange struct {
	start, end int
}

// groupHunks returns the line ranges to print: every run of changes padded
// with context, with overlapping or touching ranges merged into one hunk.
func groupHunks(lines []renderLine, context int) []hunkRange {
	var hunks []hunkRange
	for idx, ln := range lines {
		if ln.tag == ' ' {
			continue
		}
		start := max(idx-context, 0)
		end := min(idx+context+1, len(lines))
		if n := len(hunks); n > 0 && start <= hunks[n-1].end {
			hunks[n-1].end = end
			continue
		}
		hunks = append(hunks, hunkRange{start: start, end: end})
	}
	return hunks
}

// hunkHeader formats the @@ header for one hunk. A side with no lines in
// the hunk anchors at the last line number seen before it, matching the
// unified convention for pure insert or delete hunks.
func hunkHeader(lines []renderLine, h hunkRange) string {
	oldStart, oldCount, newStart, newCount := 0, 0, 0, 0
	for _, ln := range lines[h.start:h.end] {
		if ln.oldNo > 0 {
			if oldStart == 0 {
				oldStart = ln.oldNo
			}
			oldCount++
		}
		if ln.newNo > 0 {
			if newStart == 0 {
				newStart = ln.newNo
			}
			newCount++
		}
	}
	if oldCount == 0 {
		for i := h.start - 1; i >= 0; i-- {
			if lines[i].oldNo > 0 {
				oldStart = lines[i].oldNo
				break
			}
		}
	}
	if newCount == 0 {
		for i := h.start - 1; i >= 0; i-- {
			if lines[i].newNo > 0 {
				newStart = lines[i].newNo
				break
			}
		}
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}

// sbsRow is one side-by-side line pair.
type sbsRow struct {
	left, right string
	marker      byte // ' ' equal, '<' delete, '>' insert, '|' replace
}

// buildRows pairs each run of deletions with the insertions that follow it
// so a replacement shows as a single row.
func buildRows(ops []EditOperation) []sbsRow {
	var rows []sbsRow
	var unpaired []int
	for _, op := range ops {
		switch op.Op {
		case OpEqual:
			unpaired = unpaired[:0]
			rows = append(rows, sbsRow{left: op.Text, right: op.Text, marker: ' '})
		case OpDelete:
			rows = append(rows, sbsRow{left: op.Text, marker: '<'})
			unpaired = append(unpaired, len(rows)-1)
		case OpInsert:
			if len(unpaired) > 0 {
				row := &rows[unpaired[0]]
				row.right = op.Text
				row.marker = '|'
				unpaired = unpaired[1:]
				continue
			}
			rows = append(rows, sbsRow{right: op.Text, marker: '>'})
		}
	}
	return rows
}

// RenderSideBySide renders the diff as two display-width-aware columns
// separated by a change gutter. Overlong cells are truncated with an
// ellipsis; padding and truncation account for wide runes.
func RenderSideBySide(d *DiffResult, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 120
	}
	colWidth := max((width-3)/2, 8)
	var sb strings.Builder
	for _, row := range buildRows(d.Ops) {
		left := runewidth.FillRight(runewidth.Truncate(row.left, colWidth, "…"), colWidth)
		right := runewidth.Truncate(row.right, colWidth, "…")
		if opts.Color {
			if row.marker == '<' || row.marker == '|' {
				left = delStyle.Sprint(left)
			}
			if row.marker == '>' || row.marker == '|' {
				right = addStyle.Sprint(right)
			}
		}
		line := fmt.Sprintf("%s %c %s", left, row.marker, right)
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
