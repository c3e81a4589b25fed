package scenario

import (
	"slices"
	"sort"
)

// Lock keeps a location closed until the story reaches a given beat.
type Lock struct {
	Until   string `yaml:"until"`   // narrative state name that opens the lock
	Message string `yaml:"message"` // shown when the player tries to enter early
}

// Location is a place in the world. Exits point at other locations owned by
// the same World; items placed here are owned by the location until taken.
type Location struct {
	ID          string
	Name        string
	Description string
	Lock        *Lock

	exits    map[string]*Location
	items    []*Item
	elements []*InteractiveElement
}

// NewLocation creates an empty location.
func NewLocation(id, name, description string) *Location {
	return &Location{
		ID:          id,
		Name:        name,
		Description: description,
		exits:       make(map[string]*Location),
	}
}

// AddExit links keyword to target. Keywords are unique per location, so a
// second call with the same keyword replaces the target.
func (l *Location) AddExit(keyword string, target *Location) {
	if target == nil {
		return
	}
	l.exits[keyword] = target
}

// Exit returns the destination for keyword.
func (l *Location) Exit(keyword string) (*Location, bool) {
	dest, ok := l.exits[keyword]
	return dest, ok
}

// ExitKeywords returns exit keywords in alphabetical order.
func (l *Location) ExitKeywords() []string {
	keys := make([]string, 0, len(l.exits))
	for k := range l.exits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AddItem places item here. Nil items are ignored.
func (l *Location) AddItem(item *Item) {
	if item == nil {
		return
	}
	l.items = append(l.items, item)
}

// RemoveItem takes the first item with id out of the location.
func (l *Location) RemoveItem(id string) (*Item, bool) {
	idx := slices.IndexFunc(l.items, func(it *Item) bool { return it.ID == id })
	if idx < 0 {
		return nil, false
	}
	item := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	return item, true
}

// PeekItem looks at an item without removing it.
func (l *Location) PeekItem(id string) (*Item, bool) {
	idx := slices.IndexFunc(l.items, func(it *Item) bool { return it.ID == id })
	if idx < 0 {
		return nil, false
	}
	return l.items[idx], true
}

// Items returns the items currently here, in placement order.
func (l *Location) Items() []*Item {
	return slices.Clone(l.items)
}

// AddElement attaches an interactive element.
func (l *Location) AddElement(e *InteractiveElement) {
	if e == nil {
		return
	}
	l.elements = append(l.elements, e)
}

// Element finds an interactive element by name.
func (l *Location) Element(name string) (*InteractiveElement, bool) {
	for _, e := range l.elements {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Elements returns the interactive elements here.
func (l *Location) Elements() []*InteractiveElement {
	return slices.Clone(l.elements)
}
