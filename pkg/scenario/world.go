package scenario

import (
	"fmt"
	"log/slog"
)

// DefaultStartID names the placeholder location used when a world
// definition does not contain its own start location.
const DefaultStartID = "default_start"

// World owns every location of a session along with the catalog of items
// that can appear later in play.
type World struct {
	locations map[string]*Location
	order     []string
	start     *Location
	spawnable map[string]Item
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		locations: make(map[string]*Location),
		spawnable: make(map[string]Item),
	}
}

// AddLocation registers loc. A location with an existing id is rejected.
func (w *World) AddLocation(loc *Location) error {
	if loc == nil {
		return fmt.Errorf("location cannot be nil")
	}
	if _, exists := w.locations[loc.ID]; exists {
		return fmt.Errorf("duplicate location id %q", loc.ID)
	}
	w.locations[loc.ID] = loc
	w.order = append(w.order, loc.ID)
	return nil
}

// FindLocation looks up a location by id.
func (w *World) FindLocation(id string) (*Location, bool) {
	loc, ok := w.locations[id]
	return loc, ok
}

// Locations returns all locations in definition order.
func (w *World) Locations() []*Location {
	out := make([]*Location, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.locations[id])
	}
	return out
}

// Start is where a new player begins.
func (w *World) Start() *Location {
	return w.start
}

// SetStart selects the start location. If id is unknown a placeholder
// location is created so play can still begin.
func (w *World) SetStart(id string, logger *slog.Logger) *Location {
	if loc, ok := w.locations[id]; ok {
		w.start = loc
		return loc
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("Start location not found, using placeholder", "start", id, "placeholder", DefaultStartID)
	placeholder, ok := w.locations[DefaultStartID]
	if !ok {
		placeholder = NewLocation(DefaultStartID, "Default Start Room", "Something went wrong, starting in a default room.")
		_ = w.AddLocation(placeholder)
	}
	w.start = placeholder
	return placeholder
}

// AddSpawnable registers an item that is not placed at setup.
func (w *World) AddSpawnable(item Item) {
	w.spawnable[item.ID] = item
}

// Spawnable returns a fresh copy of a catalog item.
func (w *World) Spawnable(id string) (*Item, bool) {
	item, ok := w.spawnable[id]
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

// TakeItem removes the item with id from whichever location holds it.
func (w *World) TakeItem(id string) (*Item, *Location, bool) {
	for _, locID := range w.order {
		loc := w.locations[locID]
		if item, ok := loc.RemoveItem(id); ok {
			return item, loc, true
		}
	}
	return nil, nil, false
}
