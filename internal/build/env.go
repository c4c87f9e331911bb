package build

import (
	"maps"
	"slices"
	"strings"

	"github.com/cruciblehq/cruxrel/internal/matrix"
)

// Immutable set of environment variables.
//
// The zero value is an empty environment. Every operation that changes the
// variables returns a new [Env]; the receiver is never modified, so one
// base environment can be shared by every target of a run.
type Env struct {
	vars map[string]string
}

// Creates an [Env] from "NAME=value" entries such as [os.Environ].
//
// Entries without "=" are skipped. When a name repeats, the last entry wins.
func NewEnv(environ []string) Env {
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok && k != "" {
			vars[k] = v
		}
	}
	return Env{vars: vars}
}

// Returns a new [Env] with each variable applied on top of base in order.
//
// Later assignments win on name collision. The base is not modified.
func Overlay(base Env, vars ...matrix.Variable) Env {
	merged := make(map[string]string, len(base.vars)+len(vars))
	maps.Copy(merged, base.vars)
	for _, v := range vars {
		merged[v.Name] = v.Value
	}
	return Env{vars: merged}
}

// Returns the value of name and whether it is set.
func (e Env) Get(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Returns the number of variables.
func (e Env) Len() int {
	return len(e.vars)
}

// Formats the environment as "NAME=value" entries sorted by name, suitable
// for [os/exec.Cmd.Env].
func (e Env) Environ() []string {
	names := slices.Sorted(maps.Keys(e.vars))
	environ := make([]string, len(names))
	for i, name := range names {
		environ[i] = name + "=" + e.vars[name]
	}
	return environ
}
