package differ

import "fmt"

// buildLCSTable fills the (m+1)×(n+1) longest-common-subsequence table for
// the token sequences a and b. The table dominates the engine's cost at
// O(m·n) time and space, so the cell budget is checked before allocation.
func buildLCSTable(a, b []string, maxCells int) ([][]int, error) {
	m, n := len(a), len(b)
	if int64(m)*int64(n) > int64(maxCells) {
		return nil, fmt.Errorf("%w: %d×%d tokens exceed the %d cell budget",
			ErrInputTooLarge, m, n, maxCells)
	}
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				table[i][j] = table[i-1][j-1] + 1
			case table[i][j-1] >= table[i-1][j]:
				table[i][j] = table[i][j-1]
			default:
				table[i][j] = table[i-1][j]
			}
		}
	}
	return table, nil
}

// backtrack walks the filled table from (m,n) to the origin and emits the
// edit script. On ties the >= comparison prefers insertion; the tie-break is
// part of the output contract, so identical inputs always produce identical
// scripts. Operations come out in reverse and are flipped in place before
// positions are assigned.
func backtrack(table [][]int, a, b []string) []EditOperation {
	ops := make([]EditOperation, 0, len(a)+len(b))
	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			ops = append(ops, EditOperation{Op: OpEqual, Text: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			ops = append(ops, EditOperation{Op: OpInsert, Text: b[j-1]})
			j--
		default:
			ops = append(ops, EditOperation{Op: OpDelete, Text: a[i-1]})
			i--
		}
	}
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	for k := range ops {
		ops[k].Position = k
	}
	return ops
}
