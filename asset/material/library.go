package material

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset"
)

// Registry resolves material and light names to descriptors.
type Registry interface {
	Lookup(name string) (*Descriptor, bool)
}

// Library is a Registry backed by an in-memory map.
type Library struct {
	materials map[string]*Descriptor
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		materials: make(map[string]*Descriptor, 0),
	}
}

// Add registers a descriptor under its name, replacing any previous entry.
func (l *Library) Add(d *Descriptor) {
	l.materials[d.Name] = d
}

// Lookup implements Registry.
func (l *Library) Lookup(name string) (*Descriptor, bool) {
	d, exists := l.materials[name]
	return d, exists
}

// Len returns the number of registered materials.
func (l *Library) Len() int {
	return len(l.materials)
}

// Names returns the sorted list of registered material names.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadLibrary reads a material library file. The format is selected by the
// file extension: .yaml/.yml, .toml or wavefront .mtl. Relative texture paths
// inside .mtl files are kept as-is and resolved at injection time.
func LoadLibrary(filename string) (*Library, error) {
	res, err := asset.NewResource(filename, "")
	if err != nil {
		return nil, err
	}
	defer res.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return decodeYAML(res)
	case ".toml":
		return decodeTOML(res)
	case ".mtl":
		return parseMTL(res)
	}

	return nil, fmt.Errorf("material: unsupported library format %q", filepath.Ext(filename))
}
