// Package manifest loads crate metadata from a Cargo.toml file.
//
// The renderer consumes the package name, version, and description
// when filling the generated Perl module's boilerplate; nothing else
// of the manifest is interpreted.
package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Package is the [package] table of a Cargo.toml.
type Package struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Description string   `toml:"description"`
	Authors     []string `toml:"authors"`
	License     string   `toml:"license"`
}

// Manifest is the subset of a Cargo.toml the generator consumes.
type Manifest struct {
	Package Package `toml:"package"`
}

// Load reads and decodes a Cargo.toml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes Cargo.toml contents.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("manifest has no package.name")
	}
	return m, nil
}
