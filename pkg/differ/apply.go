package differ

import (
	"fmt"
	"strings"
)

// ApplyPatch replays a patch against original and returns the patched text.
// The original is tokenized line-based, matching the serializer. Context and
// Removed lines are both verified against the token at the cursor; any
// mismatch fails with a wrapped ErrApplyConflict and the original text is
// returned unchanged. Output is built in a single linear pass, so a failure
// can never expose a partially patched result.
func ApplyPatch(original, patchText string) (string, error) {
	patch, err := ParsePatch(patchText)
	if err != nil {
		return original, err
	}
	source := tokenize(original, Options{})
	out := make([]string, 0, len(source))
	cursor := 0
	for _, pl := range patch.Lines {
		switch pl.Kind {
		case PatchContext:
			if cursor >= len(source) {
				return original, fmt.Errorf("%w: line %d: context %q beyond end of input",
					ErrApplyConflict, pl.Line, pl.Text)
			}
			if source[cursor] != pl.Text {
				return original, fmt.Errorf("%w: line %d: context mismatch: want %q, have %q",
					ErrApplyConflict, pl.Line, pl.Text, source[cursor])
			}
			out = append(out, source[cursor])
			cursor++
		case PatchRemoved:
			if cursor >= len(source) {
				return original, fmt.Errorf("%w: line %d: removal %q beyond end of input",
					ErrApplyConflict, pl.Line, pl.Text)
			}
			if source[cursor] != pl.Text {
				return original, fmt.Errorf("%w: line %d: removal mismatch: want %q, have %q",
					ErrApplyConflict, pl.Line, pl.Text, source[cursor])
			}
			cursor++
		case PatchAdded:
			out = append(out, pl.Text)
		}
	}
	out = append(out, source[cursor:]...)
	return strings.Join(out, "\n"), nil
}
