package differ

import "strings"

// Markers wrapped around changed units by Highlight.
const (
	delOpen  = "[-"
	delClose = "-]"
	insOpen  = "[+"
	insClose = "+]"
)

// HighlightResult carries both inputs annotated for display.
type HighlightResult struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

// Highlight annotates both texts for display: units deleted from textA are
// wrapped in [-…-], units inserted into textB in [+…+]. Annotation walks
// the edit script directly rather than searching for unit text, so repeated
// identical units are marked correctly. With normalization enabled the
// annotated text is the normalized form. Display-only; the edit script
// remains the authoritative output.
func Highlight(textA, textB string, opts Options) (*HighlightResult, error) {
	result, err := ComputeDiff(textA, textB, opts)
	if err != nil {
		return nil, err
	}
	sep := opts.Mode.separator()
	var aUnits, bUnits []string
	for _, op := range result.Ops {
		switch op.Op {
		case OpEqual:
			aUnits = append(aUnits, op.Text)
			bUnits = append(bUnits, op.Text)
		case OpDelete:
			aUnits = append(aUnits, delOpen+op.Text+delClose)
		case OpInsert:
			bUnits = append(bUnits, insOpen+op.Text+insClose)
		}
	}
	return &HighlightResult{
		TextA: strings.Join(aUnits, sep),
		TextB: strings.Join(bUnits, sep),
	}, nil
}
