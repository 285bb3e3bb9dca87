// Package input reads comparison inputs from files or standard input.
package input

import (
	"fmt"
	"io"
	"os"
)

// StdinPath is the pseudo path that selects standard input.
const StdinPath = "-"

// Read returns the content of path, or of standard input when path is
// StdinPath. Standard input can back at most one argument per invocation;
// callers enforce that with CheckPaths.
func Read(path string) (string, error) {
	if path == StdinPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// CheckPaths rejects argument lists that name standard input more than once.
func CheckPaths(paths ...string) error {
	stdinCount := 0
	for _, p := range paths {
		if p == StdinPath {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return fmt.Errorf("standard input %q can only be used for one argument", StdinPath)
	}
	return nil
}
