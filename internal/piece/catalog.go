package piece

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPiece is returned by Lookup for names not in the catalog.
var ErrUnknownPiece = errors.New("unknown piece")

//go:embed pieces.yaml
var defaultCatalog []byte

type catalogFile struct {
	Pieces []Spec `yaml:"pieces"`
}

// Catalog is an ordered, validated set of piece specs keyed by name.
type Catalog struct {
	specs  []Spec
	byName map[string]int
}

// ParseCatalog decodes a YAML catalog and validates every entry. Unknown fields are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{byName: make(map[string]int, len(f.Pieces))}
	for _, s := range f.Pieces {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate piece %q", ErrInvalidSpec, s.Name)
		}
		c.byName[s.Name] = len(c.specs)
		c.specs = append(c.specs, s.WithDefaults())
	}
	return c, nil
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the built-in straight, corner and intersection pieces.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// Lookup returns the spec with the given name.
func (c *Catalog) Lookup(name string) (Spec, error) {
	i, ok := c.byName[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownPiece, name)
	}
	return c.specs[i], nil
}

// Specs returns the specs in file order.
func (c *Catalog) Specs() []Spec {
	out := make([]Spec, len(c.specs))
	copy(out, c.specs)
	return out
}
