package differ

import (
	"fmt"
	"strings"
)

// PatchLineKind tags one body line of a patch.
type PatchLineKind uint8

const (
	// PatchContext is an unchanged line, serialized with a leading space.
	PatchContext PatchLineKind = iota
	// PatchAdded is an inserted line, serialized with a leading '+'.
	PatchAdded
	// PatchRemoved is a deleted line, serialized with a leading '-'.
	PatchRemoved
)

// PatchLine is one body line of a patch. Line is the 1-based line number in
// the patch text it was parsed from, 0 for generated patches.
type PatchLine struct {
	Kind PatchLineKind
	Text string
	Line int
}

// Patch is the parsed form of the serialized diff format: two label headers
// followed by prefixed body lines. It round-trips through String and
// ParsePatch.
type Patch struct {
	SourceLabel string
	TargetLabel string
	Lines       []PatchLine
}

// String serializes the patch: "--- source", "+++ target", then one
// prefixed body line per entry, every line newline-terminated.
func (p *Patch) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", p.SourceLabel)
	fmt.Fprintf(&sb, "+++ %s\n", p.TargetLabel)
	for _, pl := range p.Lines {
		switch pl.Kind {
		case PatchAdded:
			sb.WriteByte('+')
		case PatchRemoved:
			sb.WriteByte('-')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(pl.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BuildPatch converts an edit script into its patch representation.
func BuildPatch(d *DiffResult, sourceLabel, targetLabel string) *Patch {
	p := &Patch{
		SourceLabel: sourceLabel,
		TargetLabel: targetLabel,
		Lines:       make([]PatchLine, 0, len(d.Ops)),
	}
	for _, op := range d.Ops {
		switch op.Op {
		case OpInsert:
			p.Lines = append(p.Lines, PatchLine{Kind: PatchAdded, Text: op.Text})
		case OpDelete:
			p.Lines = append(p.Lines, PatchLine{Kind: PatchRemoved, Text: op.Text})
		default:
			p.Lines = append(p.Lines, PatchLine{Kind: PatchContext, Text: op.Text})
		}
	}
	return p
}

// GeneratePatch diffs textA against textB in line mode and serializes the
// result under the given labels.
func GeneratePatch(textA, textB, labelA, labelB string) (string, error) {
	result, err := ComputeDiff(textA, textB, Options{})
	if err != nil {
		return "", err
	}
	return BuildPatch(result, labelA, labelB).String(), nil
}

// PatchError is one format violation found in patch text.
type PatchError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e PatchError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ValidationResult reports every format violation in a patch. Valid is true
// exactly when Errors is empty.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []PatchError `json:"errors"`
}

// ValidatePatch checks patch text against the format. It never returns a Go
// error: all violations, each with its 1-based line number, land in the
// result. Blank body lines are permitted and carry no content.
func ValidatePatch(patchText string) *ValidationResult {
	lines := strings.Split(patchText, "\n")
	var errs []PatchError
	if len(lines) < 1 || !strings.HasPrefix(lines[0], "---") {
		errs = append(errs, PatchError{Line: 1, Message: `patch must start with a "---" source header`})
	}
	if len(lines) < 2 {
		errs = append(errs, PatchError{Line: 2, Message: `missing "+++" target header`})
	} else if !strings.HasPrefix(lines[1], "+++") {
		errs = append(errs, PatchError{Line: 2, Message: `second line must be a "+++" target header`})
	}
	for i := 2; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		switch line[0] {
		case ' ', '+', '-':
		default:
			errs = append(errs, PatchError{
				Line:    i + 1,
				Message: fmt.Sprintf("body line must start with ' ', '+' or '-', got %q", line[0]),
			})
		}
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ParsePatch parses patch text, failing on the first format violation with
// a wrapped ErrMalformedPatch naming the offending line.
func ParsePatch(patchText string) (*Patch, error) {
	lines := strings.Split(patchText, "\n")
	if len(lines) < 1 || !strings.HasPrefix(lines[0], "---") {
		return nil, fmt.Errorf(`%w: line 1: patch must start with a "---" source header`, ErrMalformedPatch)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf(`%w: line 2: missing "+++" target header`, ErrMalformedPatch)
	}
	if !strings.HasPrefix(lines[1], "+++") {
		return nil, fmt.Errorf(`%w: line 2: second line must be a "+++" target header`, ErrMalformedPatch)
	}
	p := &Patch{
		SourceLabel: strings.TrimSpace(strings.TrimPrefix(lines[0], "---")),
		TargetLabel: strings.TrimSpace(strings.TrimPrefix(lines[1], "+++")),
	}
	for i := 2; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		var kind PatchLineKind
		switch line[0] {
		case ' ':
			kind = PatchContext
		case '+':
			kind = PatchAdded
		case '-':
			kind = PatchRemoved
		default:
			return nil, fmt.Errorf("%w: line %d: body line must start with ' ', '+' or '-', got %q",
				ErrMalformedPatch, i+1, line[0])
		}
		p.Lines = append(p.Lines, PatchLine{Kind: kind, Text: line[1:], Line: i + 1})
	}
	return p, nil
}
