// Package release loads the release file describing what to build.
//
// A release file is YAML. Every field is optional except project; omitted
// fields fall back to the defaults of [Default]:
//
//	project: mos-chinadns
//	binary: mos-chinadns          # defaults to project
//	package: .                    # Go package to build
//	platform: GOOS                # variable that decides the executable suffix
//	suffix_platform: windows
//	suffix: .exe
//	flags: -trimpath -ldflags "-s -w"
//	env:
//	  CGO_ENABLED: 0
//	compress:
//	  enabled: true
//	  tool: upx
//	  args: -9 -q
//	archive:
//	  files: [README.md, LICENSE, config-example.json, chn.list]
//	  checksums: false
//	resources:
//	  - generate: go run ./ -gen config-example.json
//	    dest: config-example.json
//	  - download: https://example.com/chn.list
//	    dest: chn.list
//	matrix:
//	  - {GOOS: linux, GOARCH: amd64}
//	  - {GOOS: windows, GOARCH: amd64}
//
// The flags, compress.args and generate values are shell-quoted strings
// split into arguments without invoking a shell. The env and matrix
// mappings keep their key order.
//
// Example usage:
//
//	cfg, err := release.Load("release.yaml")
//	if err != nil {
//	    return err
//	}
//	targets, err := cfg.Matrix.Select(selector)
package release
