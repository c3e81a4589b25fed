package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/command"
	"github.com/jwebster45206/visitor-center/pkg/narrative"
)

// debugItems are granted by dbg_items, in this order.
var debugItems = []string{"gas_can", "spare_tire", "oil_fluid", "surgical_item", "first_aid_kit"}

func (gs *GameState) handleDebug(in command.Intent) []chat.Message {
	if !gs.Debug {
		return say(unknownCommand)
	}

	switch in.Verb {
	case "dbg_setstate":
		return gs.debugSetState(in.Target())
	case "dbg_items", "dbg_playeritems":
		return gs.debugGrantItems()
	case "dbg_state":
		return []chat.Message{chat.Debug(gs.debugSummary())}
	default:
		return say(unknownCommand)
	}
}

func (gs *GameState) debugSetState(arg string) []chat.Message {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return []chat.Message{chat.Debug("Invalid state value.")}
	}
	res, err := gs.machine.Force(narrative.State(n), gs)
	if err != nil {
		gs.logger.Warn("Debug state change failed", "error", err, "value", n)
		if res.Accepted {
			return append(res.Messages, chat.Debug(err.Error()))
		}
		return []chat.Message{chat.Debug("Invalid state value.")}
	}
	return append(res.Messages, chat.Debug(fmt.Sprintf("State set to %d (%s)", n, gs.machine.Current())))
}

// debugGrantItems moves every key item into the inventory. Items are taken
// from wherever they lie, or spawned from the catalog when never placed,
// so no item ever exists twice.
func (gs *GameState) debugGrantItems() []chat.Message {
	var granted []string
	for _, id := range debugItems {
		if gs.player.HasItem(id) {
			continue
		}
		item, _, ok := gs.world.TakeItem(id)
		if !ok {
			item, ok = gs.world.Spawnable(id)
			if !ok {
				gs.logger.Warn("Debug item not found", "item", id)
				continue
			}
			if id == narrative.ItemSurgicalItem {
				gs.player.SetFlag(narrative.FlagSurgicalItemSpawned, true)
			}
		}
		gs.player.PickUp(item)
		granted = append(granted, id)
	}

	msgs := []chat.Message{chat.Debug("Granted: " + strings.Join(granted, ", "))}
	return append(msgs, gs.handleInventory()...)
}

func (gs *GameState) debugSummary() string {
	inv := gs.player.InventoryIDs()
	if len(inv) == 0 {
		inv = []string{"(empty)"}
	}
	s := gs.machine.Current()
	return fmt.Sprintf("State: %s (%d) | Location: %s | Inventory: %s",
		s, int(s), gs.player.UserLocation(), strings.Join(inv, ", "))
}
