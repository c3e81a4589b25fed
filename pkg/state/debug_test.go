package state

import (
	"testing"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebug_GatedWhenOff(t *testing.T) {
	gs := newGame(t)
	for _, line := range []string{"dbg_setstate 14", "dbg_items", "dbg_playeritems", "dbg_state"} {
		res := play(t, gs, line)
		assert.Equal(t, unknownCommand, text(res), line)
	}
	assert.Equal(t, narrative.StateIntro, gs.Story())
	assert.Empty(t, gs.Player().InventoryIDs())
}

func TestDebug_SetState(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		state    narrative.State
	}{
		{name: "numeric", line: "dbg_setstate 9", expected: "[Debug] State set to 9 (awaiting_task_4)", state: narrative.StateAwaitingTask4},
		{name: "cascades", line: "dbg_setstate 11", expected: "[Debug] State set to 11 (choice_point)", state: narrative.StateChoicePoint},
		{name: "not a number", line: "dbg_setstate nine", expected: "[Debug] Invalid state value.", state: narrative.StateIntro},
		{name: "missing value", line: "dbg_setstate", expected: "[Debug] Invalid state value.", state: narrative.StateIntro},
		{name: "out of range", line: "dbg_setstate 99", expected: "[Debug] Invalid state value.", state: narrative.StateIntro},
		{name: "negative", line: "dbg_setstate -1", expected: "[Debug] Invalid state value.", state: narrative.StateIntro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newGame(t, WithDebug(true))
			res := play(t, gs, tt.line)
			require.NotEmpty(t, res.Messages)
			last := res.Messages[len(res.Messages)-1]
			assert.Equal(t, chat.RoleDebug, last.Role)
			assert.Equal(t, tt.expected, last.Content)
			assert.Equal(t, tt.state, gs.Story())
		})
	}
}

func TestDebug_SetStateToEnding(t *testing.T) {
	gs := newGame(t, WithDebug(true))
	res := play(t, gs, "dbg_setstate 24")
	assert.Equal(t, narrative.StateEndingEscaped, gs.Story())
	assert.True(t, res.Ended)
	assert.Contains(t, text(res), "--- ENDING 2: The Escape ---")
}

func TestDebug_GrantItemsMovesRealItems(t *testing.T) {
	gs := newGame(t, WithDebug(true))

	res := play(t, gs, "dbg_items")
	assert.Contains(t, text(res), "[Debug] Granted: gas_can, spare_tire, oil_fluid, surgical_item, first_aid_kit")
	assert.ElementsMatch(t, debugItems, gs.Player().InventoryIDs())
	assert.True(t, gs.Player().HasAllMeansToLeave())
	assert.True(t, gs.Player().Flag(narrative.FlagSurgicalItemSpawned))

	for _, id := range []string{"gas_can", "oil_fluid", "first_aid_kit"} {
		_, _, found := gs.World().TakeItem(id)
		assert.False(t, found, "%s was moved, not copied", id)
	}

	res = play(t, gs, "dbg_playeritems")
	assert.Contains(t, text(res), "[Debug] Granted: ")
	assert.Len(t, gs.Player().InventoryIDs(), len(debugItems), "a second grant adds nothing")
}

func TestDebug_GrantAfterSpawn(t *testing.T) {
	gs := newGame(t, WithDebug(true))
	force(t, gs, narrative.StateMenacingTableau)
	place(t, gs, "office")
	play(t, gs, "get oil_fluid")

	office, _ := gs.World().FindLocation("office")
	_, ok := office.PeekItem("surgical_item")
	require.True(t, ok)

	play(t, gs, "dbg_items")
	_, ok = office.PeekItem("surgical_item")
	assert.False(t, ok, "the spawned instrument is taken, not duplicated")
	assert.True(t, gs.Player().HasItem("surgical_item"))

	// The oil pickup can no longer spawn a second instrument.
	play(t, gs, "drop oil_fluid", "get oil_fluid")
	_, ok = office.PeekItem("surgical_item")
	assert.False(t, ok)
}

func TestDebug_State(t *testing.T) {
	gs := newGame(t, WithDebug(true))
	res := play(t, gs, "dbg_state")
	assert.Equal(t, "[Debug] State: intro (0) | Location: car_breakdown | Inventory: (empty)", text(res))
}

func TestDebug_AllowedInFinalConfrontation(t *testing.T) {
	gs := newGame(t, WithDebug(true))
	force(t, gs, narrative.StateFinalConfrontation)

	play(t, gs, "dbg_state")
	assert.Equal(t, narrative.StateFinalConfrontation, gs.Story())

	play(t, gs, "look")
	assert.Equal(t, narrative.StateEndingVictim, gs.Story())
}
