package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Project represents a coolc.yaml project file.
type Project struct {
	// Coolc is a semver constraint on the tool version (e.g. ">= 1.2, < 2").
	// Empty means any version.
	Coolc string `yaml:"coolc,omitempty"`

	// Sources lists the program files, relative to the project file.
	// All files together form one program.
	Sources []string `yaml:"sources"`

	// RequireMain enables the entry point check (class Main with method main).
	RequireMain bool `yaml:"require_main,omitempty"`

	// Color is "auto" (default), "always" or "never".
	Color string `yaml:"color,omitempty"`

	// Archive is an optional SQLite database that records every run.
	Archive string `yaml:"archive,omitempty"`

	// Dir is the directory the project file was loaded from.
	Dir string `yaml:"-"`
}

// ErrVersionMismatch is returned when the tool does not satisfy the project's constraint.
var ErrVersionMismatch = errors.New("coolc version does not satisfy project constraint")

// Load reads and validates a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Dir = filepath.Dir(path)
	return p, nil
}

// Parse decodes a project file and validates it against the running tool version.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	if err := p.Validate(Version); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks field values and the version constraint.
func (p *Project) Validate(toolVersion string) error {
	switch p.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color: unknown mode %q", p.Color)
	}
	if p.Coolc == "" {
		return nil
	}
	c, err := semver.NewConstraint(p.Coolc)
	if err != nil {
		return fmt.Errorf("coolc: invalid constraint %q: %w", p.Coolc, err)
	}
	v, err := semver.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", toolVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not match %q", ErrVersionMismatch, toolVersion, p.Coolc)
	}
	return nil
}

// SourcePaths returns Sources resolved against the project directory.
func (p *Project) SourcePaths() []string {
	paths := make([]string, 0, len(p.Sources))
	for _, s := range p.Sources {
		if filepath.IsAbs(s) || p.Dir == "" {
			paths = append(paths, s)
			continue
		}
		paths = append(paths, filepath.Join(p.Dir, s))
	}
	return paths
}

// ArchivePath resolves Archive against the project directory.
func (p *Project) ArchivePath() string {
	if p.Archive == "" || filepath.IsAbs(p.Archive) || p.Dir == "" {
		return p.Archive
	}
	return filepath.Join(p.Dir, p.Archive)
}
