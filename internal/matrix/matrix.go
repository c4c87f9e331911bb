package matrix

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Ordered list of build targets.
//
// The index of a target is its position in declaration order and is stable
// for the lifetime of the matrix.
type Matrix struct {
	entries []Target
}

// Creates a [Matrix] holding the given targets in order.
func New(targets ...Target) *Matrix {
	return &Matrix{entries: slices.Clone(targets)}
}

// Returns the default release matrix: amd64 builds for
// darwin, linux, freebsd, and windows.
func Default() *Matrix {
	return New(
		MustTarget(DefaultPlatformVariable, Var("GOOS", "darwin"), Var("GOARCH", "amd64")),
		MustTarget(DefaultPlatformVariable, Var("GOOS", "linux"), Var("GOARCH", "amd64")),
		MustTarget(DefaultPlatformVariable, Var("GOOS", "freebsd"), Var("GOARCH", "amd64")),
		MustTarget(DefaultPlatformVariable, Var("GOOS", "windows"), Var("GOARCH", "amd64")),
	)
}

// Returns the number of targets.
func (m *Matrix) Len() int {
	return len(m.entries)
}

// Returns every target in declaration order.
func (m *Matrix) All() []Target {
	return slices.Clone(m.entries)
}

// Returns a singleton list holding the target at index i.
//
// Returns [ErrIndexOutOfRange] when i is outside [0, Len()).
func (m *Matrix) SelectByIndex(i int) ([]Target, error) {
	if i < 0 || i >= len(m.entries) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(m.entries))
	}
	return []Target{m.entries[i]}, nil
}

// Resolves a command line selector to the targets it names.
//
// An empty selector selects the full matrix. A non-negative decimal integer
// selects the target at that index. Anything else is rejected with
// [ErrInvalidSelector].
func (m *Matrix) Select(selector string) ([]Target, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return m.All(), nil
	}

	if strings.TrimLeft(selector, "0123456789") != "" {
		return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidSelector, selector)
	}

	i, err := strconv.Atoi(selector)
	if err != nil {
		// Only overflow is left: the selector is all digits.
		return nil, fmt.Errorf("%w: %s not in [0, %d)", ErrIndexOutOfRange, selector, len(m.entries))
	}

	return m.SelectByIndex(i)
}
