package differ

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalize applies the configured normalization ahead of splitting. Case
// folding runs first so whitespace collapsing sees the folded text.
func normalize(text string, opts Options) string {
	if opts.IgnoreCase {
		text = cases.Fold().String(text)
	}
	if opts.IgnoreWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	}
	return text
}

// tokenize splits text into comparison units under the configured mode.
// Input with no units yields a nil sequence, never a single empty unit.
// The mode has been validated by the caller.
func tokenize(text string, opts Options) []string {
	text = normalize(text, opts)
	if text == "" {
		return nil
	}
	switch opts.Mode {
	case ModeWords:
		// Fields hands back a non-nil empty slice for all-blank text.
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return nil
		}
		return fields
	case ModeCharacters:
		runes := []rune(text)
		units := make([]string, len(runes))
		for i, r := range runes {
			units[i] = string(r)
		}
		return units
	}
	return strings.Split(text, "\n")
}
