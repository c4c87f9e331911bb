package matrix

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decodes a matrix from a YAML sequence of mappings.
//
// Each mapping is one target. Mapping keys are variable names and the key
// order in the document is the declaration order of the target:
//
//	- {GOOS: linux, GOARCH: amd64}
//	- GOOS: linux
//	  GOARCH: arm
//	  GOARM: 7
//
// The decoder works on [yaml.Node] rather than maps because Go maps do not
// keep insertion order.
func DecodeYAML(node *yaml.Node, platform string) (*Matrix, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: expected a list of targets", ErrInvalidMatrixDoc, node.Line)
	}

	targets := make([]Target, 0, len(node.Content))
	for i, entry := range node.Content {
		t, err := decodeTarget(entry, platform)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		targets = append(targets, t)
	}

	return New(targets...), nil
}

// Decodes a single target from a YAML mapping node.
func decodeTarget(node *yaml.Node, platform string) (Target, error) {
	vars, err := DecodeVariables(node)
	if err != nil {
		return Target{}, err
	}
	return NewTarget(platform, vars...)
}

// Decodes ordered variable assignments from a YAML mapping of scalars.
//
// A null or empty node yields no variables.
func DecodeVariables(node *yaml.Node) ([]Variable, error) {
	if node == nil || node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of variables", ErrInvalidMatrixDoc, node.Line)
	}

	vars := make([]Variable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: value of %s must be a scalar", ErrInvalidMatrixDoc, value.Line, key.Value)
		}
		vars = append(vars, Var(key.Value, value.Value))
	}
	return vars, nil
}
