package narrative

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/visitor-center/pkg/actor"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
)

// Context is the slice of the game the machine may read and change.
type Context interface {
	Player() *actor.Player
	World() *scenario.World
}

// EffectKind is the closed set of world changes a transition can make.
type EffectKind int

const (
	EffectSetFlag        EffectKind = iota // set Flag on the player
	EffectClearFlag                        // clear Flag on the player
	EffectAdvanceElement                   // advance Element in Location by one level
	EffectRevealElement                    // advance Element in Location to Level
	EffectSpawnItem                        // place catalog Item in Location once, guarded by Flag
	EffectCollapse                         // the player's hit points drop to zero
)

// Effect is one world change applied when a transition fires.
type Effect struct {
	Kind     EffectKind
	Flag     string
	Location string
	Element  string
	Level    int
	Item     string
}

func SetFlag(flag string) Effect   { return Effect{Kind: EffectSetFlag, Flag: flag} }
func ClearFlag(flag string) Effect { return Effect{Kind: EffectClearFlag, Flag: flag} }
func Collapse() Effect             { return Effect{Kind: EffectCollapse} }

func AdvanceElement(location, element string) Effect {
	return Effect{Kind: EffectAdvanceElement, Location: location, Element: element}
}

func RevealElement(location, element string, level int) Effect {
	return Effect{Kind: EffectRevealElement, Location: location, Element: element, Level: level}
}

// SpawnItem places item at location the first time it applies. The flag
// records that the spawn happened.
func SpawnItem(item, location, onceFlag string) Effect {
	return Effect{Kind: EffectSpawnItem, Item: item, Location: location, Flag: onceFlag}
}

// apply performs the effect. Missing locations or elements are logged and
// skipped; they indicate a world definition error, not a player mistake.
func (e Effect) apply(ctx Context, logger *slog.Logger) error {
	p := ctx.Player()
	switch e.Kind {
	case EffectSetFlag:
		p.SetFlag(e.Flag, true)

	case EffectClearFlag:
		p.SetFlag(e.Flag, false)

	case EffectAdvanceElement, EffectRevealElement:
		el, err := findElement(ctx.World(), e.Location, e.Element)
		if err != nil {
			return err
		}
		if e.Kind == EffectAdvanceElement {
			el.Advance()
		} else {
			el.AdvanceTo(e.Level)
		}

	case EffectSpawnItem:
		if e.Flag != "" && p.Flag(e.Flag) {
			return nil
		}
		loc, ok := ctx.World().FindLocation(e.Location)
		if !ok {
			return fmt.Errorf("spawn location %q not found", e.Location)
		}
		item, ok := ctx.World().Spawnable(e.Item)
		if !ok {
			return fmt.Errorf("spawnable item %q not found", e.Item)
		}
		loc.AddItem(item)
		if e.Flag != "" {
			p.SetFlag(e.Flag, true)
		}
		logger.Debug("Item spawned", "item", e.Item, "location", e.Location)

	case EffectCollapse:
		if err := p.Collapse(); err != nil {
			return fmt.Errorf("failed to collapse player: %w", err)
		}

	default:
		return fmt.Errorf("unknown effect kind %d", e.Kind)
	}
	return nil
}

func findElement(w *scenario.World, locationID, name string) (*scenario.InteractiveElement, error) {
	loc, ok := w.FindLocation(locationID)
	if !ok {
		return nil, fmt.Errorf("location %q not found", locationID)
	}
	el, ok := loc.Element(name)
	if !ok {
		return nil, fmt.Errorf("element %q not found in %s", name, locationID)
	}
	return el, nil
}
