package release

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/cruciblehq/cruxrel/internal/matrix"
	"github.com/cruciblehq/cruxrel/internal/resources"
)

// On-disk layout of a release file. Pointer fields distinguish an omitted
// key from an explicit zero value.
type document struct {
	Project        string        `yaml:"project"`
	Binary         string        `yaml:"binary"`
	Package        string        `yaml:"package"`
	Platform       string        `yaml:"platform"`
	SuffixPlatform string        `yaml:"suffix_platform"`
	Suffix         *string       `yaml:"suffix"`
	Flags          *string       `yaml:"flags"`
	Env            yaml.Node     `yaml:"env"`
	Compress       compressDoc   `yaml:"compress"`
	Archive        archiveDoc    `yaml:"archive"`
	Resources      []resourceDoc `yaml:"resources"`
	Matrix         yaml.Node     `yaml:"matrix"`
}

type compressDoc struct {
	Enabled *bool   `yaml:"enabled"`
	Tool    string  `yaml:"tool"`
	Args    *string `yaml:"args"`
}

type archiveDoc struct {
	Files     []string `yaml:"files"`
	Checksums bool     `yaml:"checksums"`
}

type resourceDoc struct {
	Download string `yaml:"download"`
	Generate string `yaml:"generate"`
	Dest     string `yaml:"dest"`
}

// Reads and parses the release file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parses a release file.
//
// Unknown keys are rejected. Every error wraps [ErrInvalidConfig].
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg, err := doc.resolve()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Applies defaults and validates the document.
func (d *document) resolve() (*Config, error) {
	project := strings.TrimSpace(d.Project)
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}

	cfg := Default(project)

	if d.Binary != "" {
		cfg.Binary = d.Binary
	}
	if strings.ContainsAny(cfg.Binary, `/\`) {
		return nil, fmt.Errorf("binary %q must be a base name", cfg.Binary)
	}
	if d.Package != "" {
		cfg.Package = d.Package
	}
	if d.Platform != "" {
		cfg.Platform = d.Platform
	}
	if d.SuffixPlatform != "" {
		cfg.SuffixPlatform = d.SuffixPlatform
	}
	if d.Suffix != nil {
		cfg.Suffix = *d.Suffix
	}

	if d.Flags != nil {
		flags, err := shlex.Split(*d.Flags)
		if err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
		cfg.Flags = flags
	}

	if d.Env.Kind != 0 {
		env, err := matrix.DecodeVariables(&d.Env)
		if err != nil {
			return nil, fmt.Errorf("env: %w", err)
		}
		cfg.Env = env
	}

	if err := d.Compress.apply(&cfg.Compress); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	if d.Archive.Files != nil {
		cfg.Files = d.Archive.Files
	}
	cfg.Checksums = d.Archive.Checksums

	for i, r := range d.Resources {
		res, err := r.resolve()
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		cfg.Resources = append(cfg.Resources, res)
	}

	switch {
	case d.Matrix.Kind != 0:
		m, err := matrix.DecodeYAML(&d.Matrix, cfg.Platform)
		if err != nil {
			return nil, fmt.Errorf("matrix: %w", err)
		}
		cfg.Matrix = m
	case cfg.Platform != matrix.DefaultPlatformVariable:
		return nil, fmt.Errorf("matrix is required when platform is %q", cfg.Platform)
	}
	if cfg.Matrix.Len() == 0 {
		return nil, fmt.Errorf("matrix is empty")
	}

	return cfg, nil
}

func (c compressDoc) apply(dst *Compress) error {
	if c.Enabled != nil {
		dst.Enabled = *c.Enabled
	}
	if c.Tool != "" {
		dst.Tool = c.Tool
	}
	if c.Args != nil {
		args, err := shlex.Split(*c.Args)
		if err != nil {
			return fmt.Errorf("args: %w", err)
		}
		dst.Args = args
	}
	return nil
}

// Converts a resource entry. Exactly one of download and generate is set.
func (r resourceDoc) resolve() (resources.Resource, error) {
	if r.Dest == "" {
		return resources.Resource{}, fmt.Errorf("dest is required")
	}

	switch {
	case r.Download != "" && r.Generate != "":
		return resources.Resource{}, fmt.Errorf("%s: download and generate are exclusive", r.Dest)
	case r.Download != "":
		return resources.Resource{Kind: resources.Download, URL: r.Download, Dest: r.Dest}, nil
	case r.Generate != "":
		cmd, err := shlex.Split(r.Generate)
		if err != nil {
			return resources.Resource{}, fmt.Errorf("%s: %w", r.Dest, err)
		}
		if len(cmd) == 0 {
			return resources.Resource{}, fmt.Errorf("%s: empty command", r.Dest)
		}
		return resources.Resource{Kind: resources.Generate, Command: cmd, Dest: r.Dest}, nil
	default:
		return resources.Resource{}, fmt.Errorf("%s: one of download or generate is required", r.Dest)
	}
}
