// Provides platform-appropriate paths for cruxrel.
//
// Paths follow XDG conventions on Linux and platform-native conventions on
// macOS and Windows. The tool name "cruxrel" is used as the subdirectory
// under each base path.
package paths
