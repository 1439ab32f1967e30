package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"sensory-safari-api/internal/domain/animals"

	"go.yaml.in/yaml/v3"
)

//go:embed reference.yaml
var defaultReference []byte

var ErrInvalidReference = errors.New("invalid reference list")

// Entry es una tupla canónica de la lista de referencia.
type Entry struct {
	Name     string           `yaml:"name"`
	Category animals.Category `yaml:"category"`
	Habitat  string           `yaml:"habitat"`
	Facts    string           `yaml:"facts"`
}

type Reference struct {
	Entries []Entry
	Aliases AliasTable
}

type referenceFile struct {
	Animals []Entry             `yaml:"animals"`
	Aliases map[string][]string `yaml:"aliases"`
}

// DefaultReference devuelve la lista embebida.
func DefaultReference() (Reference, error) {
	return ParseReference(defaultReference)
}

// LoadReference lee la lista desde un archivo YAML. path vacío => embebida.
func LoadReference(path string) (Reference, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultReference()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Reference{}, fmt.Errorf("read reference %s: %w", path, err)
	}
	return ParseReference(b)
}

func ParseReference(b []byte) (Reference, error) {
	var f referenceFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	seen := make(map[string]string, len(f.Animals))
	for i, e := range f.Animals {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return Reference{}, fmt.Errorf("%w: entry %d has no name", ErrInvalidReference, i+1)
		}
		c, ok := animals.ParseCategory(string(e.Category))
		if !ok {
			return Reference{}, fmt.Errorf("%w: %s: unknown category %q", ErrInvalidReference, e.Name, e.Category)
		}
		e.Category = c

		n := Normalize(e.Name)
		if prev, dup := seen[n]; dup {
			return Reference{}, fmt.Errorf("%w: %q and %q normalize to the same name", ErrInvalidReference, prev, e.Name)
		}
		seen[n] = e.Name
		f.Animals[i] = e
	}

	aliases := DefaultAliases()
	if f.Aliases != nil {
		aliases = NewAliasTable(f.Aliases)
	}
	return Reference{Entries: f.Animals, Aliases: aliases}, nil
}
