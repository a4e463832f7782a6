// Package manifest handles sol25.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up in project directories.
const FileName = "sol25.toml"

// Manifest represents a sol25.toml project configuration.
type Manifest struct {
	Project Project     `toml:"project"`
	Run     Run         `toml:"run"`
	Image   ImageConfig `toml:"image"`

	// Dir is the directory containing the sol25.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Run configures the default interpreter invocation: where the parsed
// program XML lives and which file feeds String read.
type Run struct {
	Source string `toml:"source"`
	Input  string `toml:"input"`
}

// ImageConfig configures compiled image output.
type ImageConfig struct {
	Output string `toml:"output"`
}

// Load parses a sol25.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a sol25.toml file, then loads
// and returns the manifest. Returns nil without error if no manifest is
// found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// SourcePath resolves the configured source file relative to the manifest
// directory. Empty when the manifest does not configure one.
func (m *Manifest) SourcePath() string {
	return m.resolve(m.Run.Source)
}

// InputPath resolves the configured input file relative to the manifest
// directory.
func (m *Manifest) InputPath() string {
	return m.resolve(m.Run.Input)
}

// ImagePath resolves the configured image output file relative to the
// manifest directory.
func (m *Manifest) ImagePath() string {
	return m.resolve(m.Image.Output)
}

func (m *Manifest) resolve(p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}
