package scenario

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DefaultWorldFile is the embedded world used when no file is given.
const DefaultWorldFile = "data/oakhaven.yaml"

// ElementSpec describes an interactive element by its ordered descriptions.
type ElementSpec struct {
	Name         string   `yaml:"name"`
	Descriptions []string `yaml:"descriptions"`
}

// LocationSpec is the serializable form of a Location.
type LocationSpec struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Exits       map[string]string `yaml:"exits,omitempty"` // keyword → location id
	Items       []Item            `yaml:"items,omitempty"`
	Elements    []ElementSpec     `yaml:"elements,omitempty"`
	Lock        *Lock             `yaml:"lock,omitempty"`
}

// Definition is the static description of a world. A fresh World is built
// from it for every session.
type Definition struct {
	Title     string         `yaml:"title"`
	Intro     []string       `yaml:"intro"`
	Start     string         `yaml:"start"`
	Guide     string         `yaml:"guide"` // display name of the guide
	Locations []LocationSpec `yaml:"locations"`
	Spawnable []Item         `yaml:"spawnable,omitempty"`
	Script    Script         `yaml:"script"`
}

// Decode reads a definition, rejecting unknown fields.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode world definition: %w", err)
	}
	return &def, nil
}

// LoadFile reads a definition from disk.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Default returns the embedded Oakhaven world.
func Default() (*Definition, error) {
	data, err := dataFS.ReadFile(DefaultWorldFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded world: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Build creates a new World from the definition. Exits that name unknown
// locations are skipped with a warning; a missing start location falls back
// to a placeholder.
func (d *Definition) Build(logger *slog.Logger) (*World, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w := NewWorld()
	for _, spec := range d.Locations {
		loc := NewLocation(spec.ID, spec.Name, spec.Description)
		if spec.Lock != nil {
			lock := *spec.Lock
			loc.Lock = &lock
		}
		for _, it := range spec.Items {
			loc.AddItem(it.Clone())
		}
		for _, el := range spec.Elements {
			loc.AddElement(NewInteractiveElement(el.Name, el.Descriptions...))
		}
		if err := w.AddLocation(loc); err != nil {
			return nil, fmt.Errorf("failed to add location: %w", err)
		}
	}

	for _, spec := range d.Locations {
		loc, _ := w.FindLocation(spec.ID)
		for keyword, target := range spec.Exits {
			dest, ok := w.FindLocation(target)
			if !ok {
				logger.Warn("Exit points at unknown location", "location", spec.ID, "exit", keyword, "target", target)
				continue
			}
			loc.AddExit(keyword, dest)
		}
	}

	for _, it := range d.Spawnable {
		w.AddSpawnable(it)
	}

	w.SetStart(d.Start, logger)
	return w, nil
}
