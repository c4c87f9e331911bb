// Parses flags, configures logging and dispatches cruxrel subcommands.
//
// The tool accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output (adds source locations to logs).
//	-d, --debug     Enable debug output.
//	-f, --file      Release file (default release.yaml).
//
// Running cruxrel without a subcommand builds the release, so "cruxrel 2"
// and "cruxrel build 2" are equivalent. When no --file is given and the
// default release file does not exist, the built-in defaults are used with
// the current directory name as the project.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level and verbosity before
// the subcommand runs.
package cli
