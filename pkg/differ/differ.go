// Package differ provides text diffing utilities: LCS-based edit scripts,
// a serializable patch format with content-verified application, three-way
// merge with conflict detection, and display renderers.
package differ

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects the comparison granularity.
type Mode uint8

const (
	// ModeLines compares newline-separated lines.
	ModeLines Mode = iota
	// ModeWords compares whitespace-separated words; zero-length tokens are
	// dropped.
	ModeWords
	// ModeCharacters compares Unicode scalar values (runes). That is the
	// documented character granularity; UTF-16 code units are never used.
	ModeCharacters
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLines:
		return "lines"
	case ModeWords:
		return "words"
	case ModeCharacters:
		return "characters"
	}
	return "unknown"
}

// separator joins units of this mode back into display text.
func (m Mode) separator() string {
	switch m {
	case ModeWords:
		return " "
	case ModeCharacters:
		return ""
	}
	return "\n"
}

// ParseMode converts a mode name from a flag or config file into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lines", "line":
		return ModeLines, nil
	case "words", "word":
		return ModeWords, nil
	case "characters", "chars", "char":
		return ModeCharacters, nil
	}
	return ModeLines, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, s)
}

// DefaultMaxCells is the default LCS cell budget: diffs where the token
// counts multiply beyond it fail with ErrInputTooLarge.
const DefaultMaxCells = 4_000_000

// Options control tokenization and resource limits for a diff.
type Options struct {
	Mode             Mode
	IgnoreWhitespace bool // collapse whitespace runs and trim ends before splitting
	IgnoreCase       bool // Unicode case folding before splitting
	MaxCells         int  // LCS cell budget; 0 means DefaultMaxCells
}

func (o Options) validate() error {
	if o.Mode > ModeCharacters {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidOptions, uint8(o.Mode))
	}
	if o.MaxCells < 0 {
		return fmt.Errorf("%w: negative cell budget %d", ErrInvalidOptions, o.MaxCells)
	}
	return nil
}

func (o Options) maxCells() int {
	if o.MaxCells == 0 {
		return DefaultMaxCells
	}
	return o.MaxCells
}

// Op identifies the kind of an edit operation.
type Op uint8

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// String returns the lowercase name of the operation.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// MarshalJSON encodes the operation as its name.
func (op Op) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(op.String())), nil
}

// EditOperation is one step of an edit script. Position is the operation's
// index in the final emitted order. The Equal operations, read in order,
// reproduce a common subsequence of both inputs; no unchanged unit is ever
// reordered.
type EditOperation struct {
	Op       Op     `json:"op"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Statistics aggregates an edit script. TotalUnits is the token count of
// the longer input. Changed is reserved for a future add+delete collapsing
// pass and is always 0.
type Statistics struct {
	TotalUnits        int `json:"total_units"`
	Added             int `json:"added"`
	Deleted           int `json:"deleted"`
	Equal             int `json:"equal"`
	Changed           int `json:"changed"`
	SimilarityPercent int `json:"similarity_percent"`
}

// DiffResult is an ordered edit script plus its statistics. It is immutable
// once produced.
type DiffResult struct {
	Ops   []EditOperation `json:"ops"`
	Stats Statistics      `json:"stats"`
}

// HasChanges reports whether the diff contains any insertion or deletion.
func (d *DiffResult) HasChanges() bool {
	return d.Stats.Added > 0 || d.Stats.Deleted > 0
}

// Summary returns a human-readable summary of the diff.
func (d *DiffResult) Summary() string {
	if !d.HasChanges() {
		return "No changes detected"
	}
	return fmt.Sprintf("%d additions, %d deletions, %d%% similar",
		d.Stats.Added, d.Stats.Deleted, d.Stats.SimilarityPercent)
}

// ComputeDiff compares textA and textB under the given options and returns
// the edit script transforming A into B, with statistics.
func ComputeDiff(textA, textB string, opts Options) (*DiffResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	a := tokenize(textA, opts)
	b := tokenize(textB, opts)
	table, err := buildLCSTable(a, b, opts.maxCells())
	if err != nil {
		return nil, err
	}
	ops := backtrack(table, a, b)
	return &DiffResult{Ops: ops, Stats: computeStats(ops, len(a), len(b))}, nil
}

// Similarity returns the percentage [0,100] of unchanged lines relative to
// the longer input. Two empty texts are 100% similar.
func Similarity(textA, textB string) (int, error) {
	result, err := ComputeDiff(textA, textB, Options{})
	if err != nil {
		return 0, err
	}
	return result.Stats.SimilarityPercent, nil
}

func computeStats(ops []EditOperation, m, n int) Statistics {
	stats := Statistics{TotalUnits: max(m, n)}
	for _, op := range ops {
		switch op.Op {
		case OpEqual:
			stats.Equal++
		case OpInsert:
			stats.Added++
		case OpDelete:
			stats.Deleted++
		}
	}
	if stats.TotalUnits == 0 {
		stats.SimilarityPercent = 100
		return stats
	}
	stats.SimilarityPercent = int(math.Round(float64(stats.Equal) / float64(stats.TotalUnits) * 100))
	return stats
}
