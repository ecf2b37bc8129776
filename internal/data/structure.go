package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// StructureKind describes one placeable structure type.
type StructureKind struct {
	Name    string     `yaml:"name"`
	Mesh    string     `yaml:"mesh"`    // opaque visual handle
	Extents [3]float64 `yaml:"extents"` // full size along X, Y, Z
	Grid    float64    `yaml:"grid"`    // placement snap step, 0 = free
}

// Size returns the extents as a vector.
func (k *StructureKind) Size() mgl64.Vec3 {
	return mgl64.Vec3{k.Extents[0], k.Extents[1], k.Extents[2]}
}

type structureListFile struct {
	Structures []StructureKind `yaml:"structures"`
}

// StructureCatalog holds all structure kinds indexed by name.
type StructureCatalog struct {
	kinds map[string]*StructureKind
}

// Get returns the kind with the given name.
func (c *StructureCatalog) Get(name string) (*StructureKind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

func (c *StructureCatalog) Count() int {
	return len(c.kinds)
}

// Names returns all kind names in sorted order.
func (c *StructureCatalog) Names() []string {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadStructureCatalog loads structure kinds from a YAML file.
func LoadStructureCatalog(path string) (*StructureCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read structure_list: %w", err)
	}
	c, err := ParseStructureCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parse structure_list: %w", err)
	}
	return c, nil
}

func ParseStructureCatalog(raw []byte) (*StructureCatalog, error) {
	var f structureListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	c := &StructureCatalog{kinds: make(map[string]*StructureKind, len(f.Structures))}
	for i := range f.Structures {
		k := f.Structures[i]
		if k.Name == "" {
			return nil, fmt.Errorf("structure #%d: missing name", i)
		}
		if k.Mesh == "" {
			return nil, fmt.Errorf("structure %q: missing mesh", k.Name)
		}
		for axis, e := range k.Extents {
			if e <= 0 {
				return nil, fmt.Errorf("structure %q: extent %d must be positive", k.Name, axis)
			}
		}
		if k.Grid < 0 {
			return nil, fmt.Errorf("structure %q: negative grid", k.Name)
		}
		if _, dup := c.kinds[k.Name]; dup {
			return nil, fmt.Errorf("structure %q: duplicate name", k.Name)
		}
		c.kinds[k.Name] = &k
	}
	return c, nil
}
