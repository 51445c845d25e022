// Package manifest handles mrusty.toml embedding configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a mrusty.toml embedding configuration: how the
// host opens an interpreter instance, which Data descriptors it
// registers at init, and which chunk store it preloads from.
type Manifest struct {
	Instance  Instance   `toml:"instance"`
	DataTypes []DataType `toml:"data_types"`
	Chunks    Chunks     `toml:"chunks"`

	// Dir is the directory containing the mrusty.toml file (set at load time).
	Dir string `toml:"-"`
}

// Instance contains instance-level settings.
type Instance struct {
	Name      string `toml:"name"`
	Verbosity int    `toml:"verbosity"`
}

// DataType declares a host type embedded as Data: the descriptor name
// and the class its values present as. Descriptors are registered once,
// at instance initialization, and live for the instance's lifetime.
type DataType struct {
	Name  string `toml:"name"`
	Class string `toml:"class"`
}

// Chunks configures the constant-pool store.
type Chunks struct {
	Store   string   `toml:"store"`
	Preload []string `toml:"preload"`
}

// Load parses a mrusty.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "mrusty.toml")
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

	// Defaults
	if m.Instance.Name == "" {
		m.Instance.Name = "mrusty"
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a mrusty.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "mrusty.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks structural constraints: every descriptor needs a
// name, and one descriptor per name.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.DataTypes))
	for i, dt := range m.DataTypes {
		if dt.Name == "" {
			return fmt.Errorf("data_types[%d]: missing name", i)
		}
		if seen[dt.Name] {
			return fmt.Errorf("data_types: duplicate descriptor %q", dt.Name)
		}
		seen[dt.Name] = true
	}
	return nil
}

// StorePath returns the absolute path of the chunk store, or "" when
// no store is configured.
func (m *Manifest) StorePath() string {
	if m.Chunks.Store == "" {
		return ""
	}
	if filepath.IsAbs(m.Chunks.Store) {
		return m.Chunks.Store
	}
	return filepath.Join(m.Dir, m.Chunks.Store)
}
