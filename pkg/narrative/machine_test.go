package narrative

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/visitor-center/pkg/actor"
	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/conditionals"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testContext struct {
	player *actor.Player
	world  *scenario.World
}

func (c *testContext) Player() *actor.Player   { return c.player }
func (c *testContext) World() *scenario.World { return c.world }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func firstPick(int) int { return 0 }

// newStory builds the default world, a player at the main hall and a
// machine over the real transition table.
func newStory(t *testing.T) (*Machine, *testContext) {
	t.Helper()
	def, err := scenario.Default()
	require.NoError(t, err)
	w, err := def.Build(quietLogger())
	require.NoError(t, err)

	hall, ok := w.FindLocation(LocMainHall)
	require.True(t, ok)
	p, err := actor.NewPlayer(actor.DefaultPlayerSpec(), hall)
	require.NoError(t, err)

	m, err := NewMachine(Transitions(), NewNarrator(&def.Script, def.Guide, firstPick), quietLogger())
	require.NoError(t, err)
	return m, &testContext{player: p, world: w}
}

func give(t *testing.T, ctx *testContext, ids ...string) {
	t.Helper()
	for _, id := range ids {
		item, _, ok := ctx.world.TakeItem(id)
		if !ok {
			item, ok = ctx.world.Spawnable(id)
		}
		require.True(t, ok, "item %s", id)
		ctx.player.PickUp(item)
	}
}

func moveTo(t *testing.T, ctx *testContext, id string) {
	t.Helper()
	loc, ok := ctx.world.FindLocation(id)
	require.True(t, ok)
	ctx.player.MoveTo(loc)
}

func contents(msgs []chat.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Content)
	}
	return out
}

func TestNewMachine_StartsInIntro(t *testing.T) {
	m, _ := newStory(t)
	assert.Equal(t, StateIntro, m.Current())
}

func TestNewMachine_RejectsInvalidTables(t *testing.T) {
	narr := NewNarrator(nil, "Guide", firstPick)

	tests := []struct {
		name  string
		table []Transition
	}{
		{name: "auto moving backwards", table: []Transition{{From: StateChoicePoint, On: Auto(), To: StateIntro}}},
		{name: "auto to itself", table: []Transition{{From: StateChoicePoint, On: Auto(), To: StateChoicePoint}}},
		{name: "auto from any state", table: []Transition{{From: AnyState, On: Auto(), To: StateGameOver}}},
		{name: "auto with route", table: []Transition{{From: StateIntro, On: Auto(), To: StateGameOver, Route: routeConfrontation}}},
		{name: "unknown source", table: []Transition{{From: State(99), On: Talk(), To: StateIntro}}},
		{name: "unknown target", table: []Transition{{From: StateIntro, On: Talk(), To: State(99)}}},
		{name: "terminal source", table: []Transition{{From: StateEndingEscaped, On: Talk(), To: StateIntro}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMachine(tt.table, narr, quietLogger())
			assert.Error(t, err)
		})
	}

	_, err := NewMachine(nil, nil, quietLogger())
	assert.Error(t, err, "narrator is required")
}

func TestAttempt_Unhandled(t *testing.T) {
	m, ctx := newStory(t)

	res := m.Attempt(Talk(), ctx)
	assert.False(t, res.Handled)
	assert.False(t, res.Accepted)
	assert.Equal(t, StateIntro, m.Current())
	assert.Empty(t, res.Messages)
}

func TestAttempt_FirstEncounterCascades(t *testing.T) {
	m, ctx := newStory(t)

	res := m.Attempt(Enter(LocMainHall), ctx)
	require.True(t, res.Accepted)
	assert.Equal(t, StateIntro, res.From)
	assert.Equal(t, StateAwaitingTask1, res.To, "first encounter follows up automatically")
	assert.Equal(t, StateAwaitingTask1, m.Current())
	assert.True(t, res.Changed())

	require.NotEmpty(t, res.Messages)
	assert.Equal(t, chat.RoleGuide, res.Messages[0].Role)
	assert.Contains(t, res.Messages[0].Content, "Oh! A visitor")
}

func TestAttempt_TaskAppliesEffectsBeforeText(t *testing.T) {
	m, ctx := newStory(t)
	m.Attempt(Enter(LocMainHall), ctx)

	res := m.Attempt(Task(TaskClean), ctx)
	require.True(t, res.Accepted)
	assert.Equal(t, StateTask1Complete, m.Current())
	assert.True(t, ctx.player.Flag(string(actor.FlagCleanedMemorial)))

	hall, _ := ctx.world.FindLocation(LocMainHall)
	box, _ := hall.Element(ElemMusicBox)
	memorial, _ := hall.Element(ElemMemorial)
	assert.Equal(t, 1, box.Level())
	assert.Equal(t, 1, memorial.Level())
	assert.Contains(t, contents(res.Messages), "The small music box has fallen from its shelf, shattering on the floorboards.")
}

func TestAttempt_StayTransitionsRunOnce(t *testing.T) {
	m, ctx := newStory(t)
	_, err := m.Force(StateTask2Complete, ctx)
	require.NoError(t, err)

	res := m.Attempt(Enter(LocMainHall), ctx)
	require.True(t, res.Accepted)
	assert.False(t, res.Changed())
	assert.Equal(t, StateTask2Complete, m.Current())
	require.NotEmpty(t, res.Messages)
	assert.Contains(t, res.Messages[0].Content, "The figures that were originally facing forward")

	hall, _ := ctx.world.FindLocation(LocMainHall)
	figures, _ := hall.Element(ElemFigures)
	assert.Equal(t, FiguresStirred, figures.Level())

	again := m.Attempt(Enter(LocMainHall), ctx)
	assert.True(t, again.Handled)
	assert.False(t, again.Accepted, "the scare happens only once")
	assert.Empty(t, again.Messages, "a silent guard produces no output")
}

func TestAttempt_SurgicalItemSpawnsOnce(t *testing.T) {
	for _, start := range []State{StateIntro, StateMenacingTableau, StateChoicePoint} {
		t.Run(start.String(), func(t *testing.T) {
			m, ctx := newStory(t)
			if start != StateIntro {
				_, err := m.Force(start, ctx)
				require.NoError(t, err)
			}
			before := m.Current()

			give(t, ctx, ItemOilFluid)
			res := m.Attempt(Acquire(ItemOilFluid), ctx)
			require.True(t, res.Accepted)
			assert.Equal(t, before, m.Current(), "spawning does not change the story state")
			assert.Equal(t, []string{"As you pick up the oil, a glint of metal from a shadowy corner catches your eye."}, contents(res.Messages))

			office, _ := ctx.world.FindLocation(LocOffice)
			_, ok := office.PeekItem(ItemSurgicalItem)
			assert.True(t, ok)

			// Drop and take the oil again: no second instrument.
			dropped, _ := ctx.player.Drop(ItemOilFluid)
			office.AddItem(dropped)
			item, _ := office.RemoveItem(ItemOilFluid)
			ctx.player.PickUp(item)
			res = m.Attempt(Acquire(ItemOilFluid), ctx)
			assert.False(t, res.Accepted)

			count := 0
			for _, it := range office.Items() {
				if it.ID == ItemSurgicalItem {
					count++
				}
			}
			assert.Equal(t, 1, count)
		})
	}
}

func TestAttempt_GuardRejectionMessage(t *testing.T) {
	m, ctx := newStory(t)
	_, err := m.Force(StateVigilMistake, ctx)
	require.NoError(t, err)

	res := m.Attempt(Enter(LocMainHall), ctx)
	assert.True(t, res.Handled)
	assert.False(t, res.Accepted)
	assert.Equal(t, rejectHallWithoutParts, res.Rejection)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, chat.RoleSystem, res.Messages[0].Role)
	assert.Equal(t, StateVigilMistake, m.Current())
}

func TestAttempt_AllMeansCascadesToChoicePoint(t *testing.T) {
	for _, start := range []State{StateAwaitingTask4, StateVigilMistake} {
		t.Run(start.String(), func(t *testing.T) {
			m, ctx := newStory(t)
			_, err := m.Force(start, ctx)
			require.NoError(t, err)

			give(t, ctx, "gas_can", "spare_tire", "oil_fluid")
			res := m.Attempt(Enter(LocMainHall), ctx)
			require.True(t, res.Accepted)
			assert.Equal(t, StateChoicePoint, m.Current())
			assert.True(t, ctx.player.Flag(FlagGuideFeigning))
			assert.Contains(t, contents(res.Messages), "(Weakly) Help me... please... First Aid... in the office...")
			assert.Contains(t, contents(res.Messages), "You have all the parts to fix your car. Your choice is stark and immediate: will you 'leave' or 'assist' him?")
		})
	}
}

func TestAttempt_LeaveEndsUnworthy(t *testing.T) {
	m, ctx := newStory(t)
	_, err := m.Force(StateChoicePoint, ctx)
	require.NoError(t, err)

	res := m.Attempt(Choice(ChoiceLeave), ctx)
	require.True(t, res.Accepted)
	assert.Equal(t, StateEndingNotWorthy, m.Current())
	assert.True(t, m.Current().IsTerminal())
	assert.Contains(t, contents(res.Messages), "--- ENDING 1: The Unworthy ---")
}

func TestAttempt_AssistBranches(t *testing.T) {
	t.Run("without the kit", func(t *testing.T) {
		m, ctx := newStory(t)
		_, err := m.Force(StateChoicePoint, ctx)
		require.NoError(t, err)

		m.Attempt(Choice(ChoiceAssist), ctx)
		assert.Equal(t, StateSearchMedkit, m.Current())

		moveTo(t, ctx, LocOffice)
		give(t, ctx, ItemFirstAidKit)
		res := m.Attempt(Acquire(ItemFirstAidKit), ctx)
		assert.Equal(t, StateFoundMedkit, m.Current(), "the reveal waits for the hall")
		assert.Contains(t, contents(res.Messages), "You have the First Aid Kit. You should return to the Guide in the main hall.")

		moveTo(t, ctx, LocMainHall)
		res = m.Attempt(Enter(LocMainHall), ctx)
		assert.Equal(t, StateFinalConfrontation, m.Current())
		assert.Contains(t, contents(res.Messages), "You burst back into the main hall, First Aid Kit in hand, to find... silence.")
	})

	t.Run("kit picked up in the hall", func(t *testing.T) {
		m, ctx := newStory(t)
		_, err := m.Force(StateSearchMedkit, ctx)
		require.NoError(t, err)

		give(t, ctx, ItemFirstAidKit)
		res := m.Attempt(Acquire(ItemFirstAidKit), ctx)
		assert.Equal(t, StateFinalConfrontation, m.Current())
		assert.NotContains(t, contents(res.Messages), "You have the First Aid Kit. You should return to the Guide in the main hall.")
	})

	t.Run("already holding the kit", func(t *testing.T) {
		m, ctx := newStory(t)
		_, err := m.Force(StateChoicePoint, ctx)
		require.NoError(t, err)
		ctx.player.SetFlag(FlagGuideFeigning, true)

		give(t, ctx, ItemFirstAidKit)
		res := m.Attempt(Choice(ChoiceAssist), ctx)
		assert.Equal(t, StateFinalConfrontation, m.Current(), "the guide is right here, so the reveal follows at once")
		assert.False(t, ctx.player.Flag(FlagGuideFeigning))
		assert.Contains(t, contents(res.Messages), "You already carry the First Aid Kit. You kneel beside him and tear it open.")
		assert.NotContains(t, contents(res.Messages), "You burst back into the main hall, First Aid Kit in hand, to find... silence.")
	})
}

func TestAttempt_ChoiceTextFollowsVigil(t *testing.T) {
	guilt := "But you caused this. You feel the weight of your mistake, the chilling belief that you have doomed him."
	praise := "You've done well. Almost ready to rush back to your mother's side. But before you go..."

	t.Run("after the vigil", func(t *testing.T) {
		m, ctx := newStory(t)
		_, err := m.Force(StateAwaitingTask4, ctx)
		require.NoError(t, err)
		give(t, ctx, "gas_can", "spare_tire", "oil_fluid")

		moveTo(t, ctx, LocOffice)
		require.True(t, m.Attempt(Use(ElemCandle), ctx).Accepted)

		moveTo(t, ctx, LocMainHall)
		res := m.Attempt(Enter(LocMainHall), ctx)
		assert.Equal(t, StateChoicePoint, m.Current())
		out := contents(res.Messages)
		assert.Contains(t, out, guilt)
		assert.NotContains(t, out, praise)
		assert.NotContains(t, out, "The Guide waits for you in the center of the hall, wringing his hands.")
	})

	t.Run("without the vigil", func(t *testing.T) {
		m, ctx := newStory(t)
		_, err := m.Force(StateAwaitingTask4, ctx)
		require.NoError(t, err)
		give(t, ctx, "gas_can", "spare_tire", "oil_fluid")

		res := m.Attempt(Enter(LocMainHall), ctx)
		assert.Equal(t, StateChoicePoint, m.Current())
		out := contents(res.Messages)
		assert.Contains(t, out, praise)
		assert.NotContains(t, out, guilt)
	})
}

func TestAttempt_RevealCascadesToConfrontation(t *testing.T) {
	m, ctx := newStory(t)
	moveTo(t, ctx, LocOffice)
	_, err := m.Force(StateFoundMedkit, ctx)
	require.NoError(t, err)
	require.Equal(t, StateFoundMedkit, m.Current())
	ctx.player.SetFlag(FlagGuideFeigning, true)

	moveTo(t, ctx, LocMainHall)
	res := m.Attempt(Enter(LocMainHall), ctx)
	require.True(t, res.Accepted)
	assert.Equal(t, StateFinalConfrontation, m.Current(), "the cascade stops at the confrontation")
	assert.False(t, ctx.player.Flag(FlagGuideFeigning))

	hall, _ := ctx.world.FindLocation(LocMainHall)
	figures, _ := hall.Element(ElemFigures)
	guide, _ := hall.Element(ElemGuide)
	assert.Equal(t, FiguresRevealed, figures.Level())
	assert.Equal(t, 1, guide.Level())
}

func TestAttempt_EndingSelectionDependsOnlyOnDefensiveItem(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		expected State
	}{
		{name: "holding the instrument escapes", items: []string{ItemSurgicalItem}, expected: StateEndingEscaped},
		{name: "holding everything else is not enough", items: []string{"gas_can", "spare_tire", ItemOilFluid, ItemFirstAidKit}, expected: StateEndingVictim},
		{name: "empty handed", items: nil, expected: StateEndingVictim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctx := newStory(t)
			_, err := m.Force(StateFinalConfrontation, ctx)
			require.NoError(t, err)
			give(t, ctx, tt.items...)

			res := m.Attempt(AnyCommand(), ctx)
			require.True(t, res.Accepted)
			assert.Equal(t, tt.expected, m.Current())
			assert.True(t, m.Current().IsEnding())
			assert.Equal(t, tt.expected == StateEndingEscaped, ctx.player.IsConscious())
		})
	}
}

func TestAttempt_TerminalStatesAbsorb(t *testing.T) {
	triggers := []Trigger{
		Enter(LocMainHall), Acquire(ItemOilFluid), Task(TaskClean), Use(ElemCandle),
		Talk(), Choice(ChoiceLeave), Choice(ChoiceAssist), AnyCommand(), Auto(),
	}

	for _, end := range []State{StateEndingNotWorthy, StateEndingEscaped, StateEndingVictim} {
		t.Run(end.String(), func(t *testing.T) {
			m, ctx := newStory(t)
			_, err := m.Force(end, ctx)
			require.NoError(t, err)

			for _, trig := range triggers {
				res := m.Attempt(trig, ctx)
				assert.False(t, res.Handled, "trigger %s", trig)
				assert.Empty(t, res.Messages)
				assert.Equal(t, end, m.Current())
			}

			_, err = m.Force(StateIntro, ctx)
			assert.ErrorIs(t, err, ErrTerminalState)

			m.Quit()
			assert.Equal(t, end, m.Current(), "quit does not replace an ending")
		})
	}
}

func TestForce(t *testing.T) {
	m, ctx := newStory(t)

	_, err := m.Force(State(42), ctx)
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = m.Force(State(-5), ctx)
	assert.ErrorIs(t, err, ErrUnknownState)

	res, err := m.Force(StateAttackPrelude, ctx)
	require.NoError(t, err)
	assert.Equal(t, StateChoicePoint, res.To, "forced states still run their follow-ups")
}

func TestQuit(t *testing.T) {
	m, _ := newStory(t)
	m.Quit()
	assert.Equal(t, StateGameOver, m.Current())
	assert.True(t, m.Current().IsTerminal())
}

func TestCascade_Limit(t *testing.T) {
	narr := NewNarrator(nil, "Guide", firstPick)
	m, err := NewMachine([]Transition{
		{From: StateIntro, On: Talk(), To: StateFirstEncounter},
		{From: StateFirstEncounter, On: Auto(), To: StateAwaitingTask1},
		{From: StateAwaitingTask1, On: Auto(), To: StateTask1Complete},
		{From: StateTask1Complete, On: Auto(), To: StateAwaitingTask2},
	}, narr, quietLogger())
	require.NoError(t, err)
	m.maxCascade = 2

	_, ctx := newStory(t)
	res := m.Attempt(Talk(), ctx)
	assert.True(t, res.Accepted)
	assert.Equal(t, StateTask1Complete, m.Current(), "cascade stops at the cap")

	_, err = m.Force(StateFirstEncounter, ctx)
	assert.True(t, errors.Is(err, ErrCascadeLimit))
}

func TestCascade_GuardedAuto(t *testing.T) {
	narr := NewNarrator(nil, "Guide", firstPick)
	m, err := NewMachine([]Transition{
		{From: StateIntro, On: Talk(), To: StateFirstEncounter},
		{
			From: StateFirstEncounter, On: Auto(), To: StateAwaitingTask1,
			When: &conditionals.When{Flags: []string{"ready"}},
		},
	}, narr, quietLogger())
	require.NoError(t, err)

	_, ctx := newStory(t)
	m.Attempt(Talk(), ctx)
	assert.Equal(t, StateFirstEncounter, m.Current(), "a failing guard halts the cascade")
}

func TestHandles(t *testing.T) {
	m, ctx := newStory(t)
	assert.True(t, m.Handles(Enter(LocMainHall)))
	assert.False(t, m.Handles(AnyCommand()))
	assert.True(t, m.Handles(Acquire(ItemOilFluid)), "any-state transitions count")

	_, err := m.Force(StateFinalConfrontation, ctx)
	require.NoError(t, err)
	assert.True(t, m.Handles(AnyCommand()))
}
