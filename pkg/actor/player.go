package actor

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
)

// Flag is a named boolean on the player. Item flags mirror possession of
// key items; the rest record story progress.
type Flag string

const (
	FlagHasGasCan       Flag = "has_gas_can"
	FlagHasSpareTire    Flag = "has_spare_tire"
	FlagHasOilFluid     Flag = "has_oil_fluid"
	FlagHasSurgicalItem Flag = "has_surgical_item"
	FlagHasFirstAidKit  Flag = "has_first_aid_kit"

	FlagCleanedMemorial   Flag = "cleaned_memorial"
	FlagOrganizedArchives Flag = "organized_archives"
	FlagTrimmedGarden     Flag = "trimmed_garden"
)

// itemFlags is the fixed mapping from key item ids to possession flags.
var itemFlags = map[string]Flag{
	"gas_can":       FlagHasGasCan,
	"spare_tire":    FlagHasSpareTire,
	"oil_fluid":     FlagHasOilFluid,
	"surgical_item": FlagHasSurgicalItem,
	"first_aid_kit": FlagHasFirstAidKit,
}

// MeansToLeave lists the car parts needed to drive away.
var MeansToLeave = []string{"gas_can", "spare_tire", "oil_fluid"}

// ItemFlag returns the possession flag for a key item.
func ItemFlag(itemID string) (Flag, bool) {
	f, ok := itemFlags[itemID]
	return f, ok
}

// PlayerSpec configures the player's vitals.
type PlayerSpec struct {
	ID         string
	Name       string
	MaxHP      int
	AC         int
	Attributes map[string]int
}

// DefaultPlayerSpec is an ordinary traveller: no training, no armor.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		ID:    "player",
		Name:  "Traveller",
		MaxHP: 8,
		AC:    10,
		Attributes: map[string]int{
			"strength":  10,
			"dexterity": 12,
			"wisdom":    11,
		},
	}
}

// Player is the single actor controlled by the user. The player owns the
// items in its inventory; Location is a reference into the World.
type Player struct {
	Name   string
	Vitals *d20.Actor

	location  *scenario.Location
	inventory []*scenario.Item
	flags     map[Flag]bool
}

// NewPlayer creates a player standing at start.
func NewPlayer(spec PlayerSpec, start *scenario.Location) (*Player, error) {
	vitals, err := d20.NewActor(spec.ID).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(spec.Attributes).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	return &Player{
		Name:     spec.Name,
		Vitals:   vitals,
		location: start,
		flags:    make(map[Flag]bool),
	}, nil
}

// Location is where the player stands.
func (p *Player) Location() *scenario.Location {
	return p.location
}

// MoveTo changes the player's location. Nil destinations are ignored.
func (p *Player) MoveTo(loc *scenario.Location) {
	if loc == nil {
		return
	}
	p.location = loc
}

// UserLocation returns the current location id.
func (p *Player) UserLocation() string {
	if p.location == nil {
		return ""
	}
	return p.location.ID
}

// PickUp takes ownership of item and sets its possession flag.
func (p *Player) PickUp(item *scenario.Item) {
	if item == nil {
		return
	}
	p.inventory = append(p.inventory, item)
	if f, ok := itemFlags[item.ID]; ok {
		p.flags[f] = true
	}
}

// HasItem reports whether the inventory holds an item with id.
func (p *Player) HasItem(id string) bool {
	_, ok := p.GetItem(id)
	return ok
}

// GetItem returns a held item without removing it.
func (p *Player) GetItem(id string) (*scenario.Item, bool) {
	idx := slices.IndexFunc(p.inventory, func(it *scenario.Item) bool { return it.ID == id })
	if idx < 0 {
		return nil, false
	}
	return p.inventory[idx], true
}

// Drop releases an item and clears its possession flag. The caller is
// responsible for placing the item somewhere.
func (p *Player) Drop(id string) (*scenario.Item, bool) {
	idx := slices.IndexFunc(p.inventory, func(it *scenario.Item) bool { return it.ID == id })
	if idx < 0 {
		return nil, false
	}
	item := p.inventory[idx]
	p.inventory = slices.Delete(p.inventory, idx, idx+1)
	if f, ok := itemFlags[id]; ok && !p.HasItem(id) {
		p.flags[f] = false
	}
	return item, true
}

// Inventory returns the held items in pickup order.
func (p *Player) Inventory() []*scenario.Item {
	return slices.Clone(p.inventory)
}

// InventoryIDs returns the ids of held items in pickup order.
func (p *Player) InventoryIDs() []string {
	ids := make([]string, 0, len(p.inventory))
	for _, it := range p.inventory {
		ids = append(ids, it.ID)
	}
	return ids
}

// Flag reads a named flag.
func (p *Player) Flag(name string) bool {
	return p.flags[Flag(name)]
}

// SetFlag sets or clears a named flag.
func (p *Player) SetFlag(name string, value bool) {
	p.flags[Flag(name)] = value
}

// HasAllMeansToLeave reports whether every car part is held.
func (p *Player) HasAllMeansToLeave() bool {
	for _, id := range MeansToLeave {
		if !p.flags[itemFlags[id]] {
			return false
		}
	}
	return true
}

// Collapse drops the player's hit points to zero.
func (p *Player) Collapse() error {
	if p.Vitals == nil {
		return nil
	}
	if err := p.Vitals.SetHP(0); err != nil {
		return fmt.Errorf("failed to set HP: %w", err)
	}
	return nil
}

// IsConscious reports whether the player still has hit points.
func (p *Player) IsConscious() bool {
	return p.Vitals == nil || p.Vitals.HP() > 0
}
