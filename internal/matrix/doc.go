// Package matrix describes the set of platforms a release is built for.
//
// A [Target] is one point in the build matrix: an ordered list of
// environment variable assignments (GOOS, GOARCH, and any architecture
// variant such as GOARM) with one variable designated as the platform. The
// order of the assignments is significant. Archive names are derived by
// joining the values in declaration order, and variant variables are only
// meaningful once the variable they refine has been set.
//
// A [Matrix] is an ordered list of targets. The position of a target in the
// matrix is its selection index, which is how a single target is chosen from
// the command line.
//
// Example usage:
//
//	m := matrix.New(
//	    matrix.MustTarget("GOOS", matrix.Var("GOOS", "linux"), matrix.Var("GOARCH", "amd64")),
//	    matrix.MustTarget("GOOS", matrix.Var("GOOS", "windows"), matrix.Var("GOARCH", "amd64")),
//	)
//
//	targets, err := m.Select(arg)
//	if err != nil {
//	    return err
//	}
package matrix
