package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPatch_RoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"line1\nline2\nline3", "line1\nline2\nnew line\nline3"},
		{"a\nb", "a\nc"},
		{"", "from nothing"},
		{"to nothing", ""},
		{"same\nsame", "same\nsame"},
		{"one\ntwo\nthree\nfour", "zero\ntwo\nfour\nfive"},
		{"trailing\nnewline\n", "trailing\nchanged\n"},
	}
	for _, pair := range pairs {
		patch, err := GeneratePatch(pair[0], pair[1], "a", "b")
		require.NoError(t, err)

		got, err := ApplyPatch(pair[0], patch)
		require.NoError(t, err, "applying %q -> %q", pair[0], pair[1])
		assert.Equal(t, pair[1], got, "round trip of %q -> %q", pair[0], pair[1])
	}
}

func TestApplyPatch_ContextMismatch(t *testing.T) {
	original := "x\ny"
	result, err := ApplyPatch(original, "--- a\n+++ b\n z\n")
	require.ErrorIs(t, err, ErrApplyConflict)
	assert.Contains(t, err.Error(), "context mismatch")
	assert.Equal(t, original, result, "original must come back unchanged")
}

func TestApplyPatch_RemovalMismatch(t *testing.T) {
	original := "keep\ndrop"
	result, err := ApplyPatch(original, "--- a\n+++ b\n keep\n-other\n")
	require.ErrorIs(t, err, ErrApplyConflict)
	assert.Contains(t, err.Error(), "removal mismatch")
	assert.Contains(t, err.Error(), `"other"`)
	assert.Contains(t, err.Error(), `"drop"`)
	assert.Equal(t, original, result)
}

func TestApplyPatch_BeyondEnd(t *testing.T) {
	result, err := ApplyPatch("only", "--- a\n+++ b\n only\n-gone\n")
	require.ErrorIs(t, err, ErrApplyConflict)
	assert.Contains(t, err.Error(), "beyond end of input")
	assert.Equal(t, "only", result)
}

func TestApplyPatch_Malformed(t *testing.T) {
	result, err := ApplyPatch("text", "no headers here")
	require.ErrorIs(t, err, ErrMalformedPatch)
	assert.Equal(t, "text", result)
}

func TestApplyPatch_InsertOnly(t *testing.T) {
	got, err := ApplyPatch("", "--- a\n+++ b\n+first\n+second\n")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)
}

func TestApplyPatch_TrailingOriginalKept(t *testing.T) {
	// A patch covering only a prefix leaves the rest of the input alone.
	got, err := ApplyPatch("head\ntail1\ntail2", "--- a\n+++ b\n-head\n+HEAD\n")
	require.NoError(t, err)
	assert.Equal(t, "HEAD\ntail1\ntail2", got)
}

func TestApplyPatch_ErrorNamesPatchLine(t *testing.T) {
	_, err := ApplyPatch("a\nb", "--- x\n+++ y\n a\n-mismatch\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}
