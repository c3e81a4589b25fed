package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ItemKind tags what using an item can do.
type ItemKind string

const (
	ItemGeneric          ItemKind = "generic"           // nothing special happens on use
	ItemEscapeTool       ItemKind = "escape_tool"       // a part needed to fix the car
	ItemDefensive        ItemKind = "defensive"         // decides the final confrontation
	ItemNarrativeTrigger ItemKind = "narrative_trigger" // using it may advance the story
)

// Valid reports whether k is one of the known kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemGeneric, ItemEscapeTool, ItemDefensive, ItemNarrativeTrigger:
		return true
	}
	return false
}

// UnmarshalYAML defaults an empty kind to generic and rejects unknown kinds.
func (k *ItemKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*k = ItemGeneric
		return nil
	}
	kind := ItemKind(s)
	if !kind.Valid() {
		return fmt.Errorf("unknown item kind %q", s)
	}
	*k = kind
	return nil
}

// Item is a portable object. At any time it is held by exactly one
// container: a Location or the player's inventory.
type Item struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kind        ItemKind `yaml:"kind,omitempty"`
}

// Clone returns a fresh copy so every session owns its own items.
func (i Item) Clone() *Item {
	if i.Kind == "" {
		i.Kind = ItemGeneric
	}
	return &i
}
