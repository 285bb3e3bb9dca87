package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLCSTable(t *testing.T) {
	table, err := buildLCSTable([]string{"a", "b", "c"}, []string{"a", "c"}, DefaultMaxCells)
	require.NoError(t, err)
	require.Len(t, table, 4)
	require.Len(t, table[0], 3)
	assert.Equal(t, 1, table[1][1])
	assert.Equal(t, 1, table[2][2])
	assert.Equal(t, 2, table[3][2])
}

func TestBuildLCSTable_Budget(t *testing.T) {
	a := []string{"a", "b"}
	b := []string{"c", "d"}

	_, err := buildLCSTable(a, b, 4)
	require.NoError(t, err, "a budget of exactly m*n cells must pass")

	_, err = buildLCSTable(a, b, 3)
	require.ErrorIs(t, err, ErrInputTooLarge)
}

func opsOf(t *testing.T, textA, textB string) []EditOperation {
	t.Helper()
	result, err := ComputeDiff(textA, textB, Options{})
	require.NoError(t, err)
	return result.Ops
}

func TestBacktrack_ReplacementOrder(t *testing.T) {
	ops := opsOf(t, "a\nb", "a\nc")
	require.Len(t, ops, 3)
	assert.Equal(t, EditOperation{Op: OpEqual, Text: "a", Position: 0}, ops[0])
	assert.Equal(t, EditOperation{Op: OpDelete, Text: "b", Position: 1}, ops[1])
	assert.Equal(t, EditOperation{Op: OpInsert, Text: "c", Position: 2}, ops[2])
}

// A swapped pair has two minimal edit scripts; the insert-preferring
// tie-break must always pick the one keeping the earlier line of the
// target.
func TestBacktrack_TieBreak(t *testing.T) {
	ops := opsOf(t, "a\nb", "b\na")
	require.Len(t, ops, 3)
	assert.Equal(t, OpDelete, ops[0].Op)
	assert.Equal(t, "a", ops[0].Text)
	assert.Equal(t, OpEqual, ops[1].Op)
	assert.Equal(t, "b", ops[1].Text)
	assert.Equal(t, OpInsert, ops[2].Op)
	assert.Equal(t, "a", ops[2].Text)
}

func TestBacktrack_EmptySides(t *testing.T) {
	ops := opsOf(t, "", "x\ny")
	require.Len(t, ops, 2)
	assert.Equal(t, EditOperation{Op: OpInsert, Text: "x", Position: 0}, ops[0])
	assert.Equal(t, EditOperation{Op: OpInsert, Text: "y", Position: 1}, ops[1])

	ops = opsOf(t, "x\ny", "")
	require.Len(t, ops, 2)
	assert.Equal(t, OpDelete, ops[0].Op)
	assert.Equal(t, OpDelete, ops[1].Op)

	assert.Empty(t, opsOf(t, "", ""))
}

// Equal operations must read out as a subsequence of both inputs in their
// original order.
func TestBacktrack_EqualOrderPreserved(t *testing.T) {
	a := "one\ntwo\nthree\nfour"
	b := "zero\none\nthree\nfour\nfive"
	ops := opsOf(t, a, b)

	var equals []string
	for _, op := range ops {
		if op.Op == OpEqual {
			equals = append(equals, op.Text)
		}
	}
	assert.Equal(t, []string{"one", "three", "four"}, equals)
}
