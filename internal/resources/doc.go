// Package resources prepares auxiliary release files before the build.
//
// Some files shipped in every archive are not checked into the repository.
// A download resource fetches a file over HTTP (for example a data list
// published elsewhere), retrying transient failures with exponential
// backoff and caching the body under the user cache directory. A generate
// resource runs a command that writes the file (for example the program
// itself emitting a configuration template).
//
// Resources are prepared in order. The first failure stops preparation and
// is reported as [ErrResource].
package resources
