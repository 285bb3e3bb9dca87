package differ

import (
	"slices"
	"strings"
)

// Conflict markers emitted into merged text around unreconciled regions.
const (
	markerOurs   = "<<<<<<< A"
	markerSep    = "======="
	markerTheirs = ">>>>>>> B"
)

// MergeConflict records one base position modified differently by both
// variants. BaseLineIndex is 0-based; insertions ahead of an empty or
// untouched first line report index 0. Resolved is always false on
// creation; resolution is the caller's concern.
type MergeConflict struct {
	BaseLineIndex int       `json:"base_line_index"`
	Variants      [2]string `json:"variants"`
	Resolved      bool      `json:"resolved"`
}

// MergeResult is the merged text plus any unresolved conflicts. Conflicting
// regions also appear in Result wrapped in conflict markers.
type MergeResult struct {
	Result    string          `json:"result"`
	Conflicts []MergeConflict `json:"conflicts"`
}

// baseEdit describes what one variant does at a single base position:
// whether the base line survives, and the lines inserted after it.
type baseEdit struct {
	keep bool
	post []string
}

func (e baseEdit) changed() bool { return !e.keep || len(e.post) > 0 }

// render returns the variant's replacement lines for this base position.
func (e baseEdit) render(baseLine string) []string {
	lines := make([]string, 0, len(e.post)+1)
	if e.keep {
		lines = append(lines, baseLine)
	}
	return append(lines, e.post...)
}

// sideEdits folds an edit script over base into per-position edits.
// Insertions attach after the most recently consumed base position, so a
// delete-then-insert replacement stays local to the line it replaces.
// Insertions arriving before any base line was consumed form the head.
func sideEdits(d *DiffResult, baseLen int) (head []string, edits []baseEdit) {
	edits = make([]baseEdit, baseLen)
	consumed := 0
	for _, op := range d.Ops {
		switch op.Op {
		case OpInsert:
			if consumed == 0 {
				head = append(head, op.Text)
			} else {
				edits[consumed-1].post = append(edits[consumed-1].post, op.Text)
			}
		case OpEqual:
			edits[consumed].keep = true
			consumed++
		case OpDelete:
			consumed++
		}
	}
	return head, edits
}

// MergeThreeWay merges two variants of a common base, line-based. A base
// position changed by exactly one side takes that side's change; changed
// identically by both sides, the shared change is taken once; changed
// differently, both renderings are emitted between conflict markers and
// recorded. Base content untouched by either side passes through.
func MergeThreeWay(base, variantA, variantB string) (*MergeResult, error) {
	diffA, err := ComputeDiff(base, variantA, Options{})
	if err != nil {
		return nil, err
	}
	diffB, err := ComputeDiff(base, variantB, Options{})
	if err != nil {
		return nil, err
	}
	baseLines := tokenize(base, Options{})
	aHead, aEdits := sideEdits(diffA, len(baseLines))
	bHead, bEdits := sideEdits(diffB, len(baseLines))

	out := make([]string, 0, len(baseLines))
	var conflicts []MergeConflict

	switch {
	case len(aHead) > 0 && len(bHead) > 0:
		if slices.Equal(aHead, bHead) {
			out = append(out, aHead...)
			break
		}
		out = appendConflict(out, aHead, bHead)
		conflicts = append(conflicts, newConflict(0, aHead, bHead))
	case len(aHead) > 0:
		out = append(out, aHead...)
	case len(bHead) > 0:
		out = append(out, bHead...)
	}

	for i, line := range baseLines {
		aCh, bCh := aEdits[i].changed(), bEdits[i].changed()
		switch {
		case aCh && bCh:
			aLines, bLines := aEdits[i].render(line), bEdits[i].render(line)
			if slices.Equal(aLines, bLines) {
				out = append(out, aLines...)
				continue
			}
			out = appendConflict(out, aLines, bLines)
			conflicts = append(conflicts, newConflict(i, aLines, bLines))
		case aCh:
			out = append(out, aEdits[i].render(line)...)
		case bCh:
			out = append(out, bEdits[i].render(line)...)
		default:
			out = append(out, line)
		}
	}

	return &MergeResult{Result: strings.Join(out, "\n"), Conflicts: conflicts}, nil
}

func newConflict(baseIndex int, aLines, bLines []string) MergeConflict {
	return MergeConflict{
		BaseLineIndex: baseIndex,
		Variants:      [2]string{strings.Join(aLines, "\n"), strings.Join(bLines, "\n")},
	}
}

func appendConflict(out []string, aLines, bLines []string) []string {
	out = append(out, markerOurs)
	out = append(out, aLines...)
	out = append(out, markerSep)
	out = append(out, bLines...)
	return append(out, markerTheirs)
}
