package matrix

import (
	"fmt"
	"slices"
	"strings"
)

// Default name of the variable identifying the operating system family.
const DefaultPlatformVariable = "GOOS"

// Separator used between the project name and each variable value in
// archive names.
const nameSeparator = "-"

// A single environment variable assignment.
type Variable struct {
	Name  string // Environment variable name (e.g., "GOARCH").
	Value string // Value assigned for the target (e.g., "arm64").
}

// Shorthand for constructing a [Variable].
func Var(name, value string) Variable {
	return Variable{Name: name, Value: value}
}

// Returns the variable formatted as "NAME=value".
func (v Variable) String() string {
	return v.Name + "=" + v.Value
}

// One point in the build matrix.
//
// Targets are immutable once constructed. Accessors return copies so that a
// caller cannot reorder or edit the assignments of a target held by a
// [Matrix].
type Target struct {
	platform  string     // Name of the variable identifying the OS family.
	variables []Variable // Assignments in declaration order.
}

// Creates a [Target] from ordered variable assignments.
//
// Returns [ErrInvalidTarget] when a variable name is empty, when a name is
// assigned twice, or when the platform variable is not among the
// assignments.
func NewTarget(platform string, vars ...Variable) (Target, error) {
	if platform == "" {
		return Target{}, fmt.Errorf("%w: empty platform variable", ErrInvalidTarget)
	}

	seen := make(map[string]struct{}, len(vars))
	for i, v := range vars {
		if v.Name == "" {
			return Target{}, fmt.Errorf("%w: variable %d has no name", ErrInvalidTarget, i+1)
		}
		if _, dup := seen[v.Name]; dup {
			return Target{}, fmt.Errorf("%w: variable %s assigned more than once", ErrInvalidTarget, v.Name)
		}
		seen[v.Name] = struct{}{}
	}

	if _, ok := seen[platform]; !ok {
		return Target{}, fmt.Errorf("%w: platform variable %s is not set", ErrInvalidTarget, platform)
	}

	return Target{platform: platform, variables: slices.Clone(vars)}, nil
}

// Like [NewTarget] but panics on error. Intended for static matrices.
func MustTarget(platform string, vars ...Variable) Target {
	t, err := NewTarget(platform, vars...)
	if err != nil {
		panic(err)
	}
	return t
}

// Returns a copy of the variable assignments in declaration order.
func (t Target) Variables() []Variable {
	return slices.Clone(t.variables)
}

// Returns the name of the platform variable.
func (t Target) PlatformVariable() string {
	return t.platform
}

// Returns the value of the platform variable (e.g., "windows").
func (t Target) Platform() string {
	v, _ := t.Lookup(t.platform)
	return v
}

// Returns the value assigned to name and whether it is assigned at all.
func (t Target) Lookup(name string) (string, bool) {
	for _, v := range t.variables {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Returns the archive name stem for the given project.
//
// The stem is the project name followed by every variable value in
// declaration order, separated by dashes (e.g., "demo-linux-arm-7").
func (t Target) ArchiveBaseName(project string) string {
	parts := make([]string, 0, len(t.variables)+1)
	parts = append(parts, project)
	for _, v := range t.variables {
		parts = append(parts, v.Value)
	}
	return strings.Join(parts, nameSeparator)
}

// Returns the assignments as space-separated "NAME=value" pairs.
func (t Target) String() string {
	parts := make([]string, len(t.variables))
	for i, v := range t.variables {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
