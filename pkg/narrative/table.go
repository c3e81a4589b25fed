package narrative

import (
	"github.com/jwebster45206/visitor-center/pkg/actor"
	"github.com/jwebster45206/visitor-center/pkg/conditionals"
)

// Location, element and item ids the story refers to.
const (
	LocMainHall    = "main_hall"
	LocStorageRoom = "storage_room"
	LocOffice      = "office"
	LocWestWing    = "west_wing"

	ElemFigures  = "figures"
	ElemGuide    = "guide"
	ElemMusicBox = "music_box"
	ElemMemorial = "memorial"
	ElemArchives = "archives"
	ElemGarden   = "garden"
	ElemCandle   = "candle"

	ItemGasCan       = "gas_can"
	ItemOilFluid     = "oil_fluid"
	ItemSurgicalItem = "surgical_item"
	ItemFirstAidKit  = "first_aid_kit"

	ChoiceLeave  = "leave"
	ChoiceAssist = "assist"
)

// One-time world flags kept on the player alongside the task flags.
const (
	FlagFiguresStirred      = "figures_stirred"
	FlagFiguresGathered     = "figures_gathered"
	FlagSurgicalItemSpawned = "surgical_item_spawned"
	FlagGuideFeigning       = "guide_feigning"
	FlagVigilHeld           = "vigil_held"
)

// Figure reveal levels.
const (
	FiguresStirred  = 1
	FiguresGathered = 2
	FiguresRevealed = 3
)

const rejectHallWithoutParts = "The main hall is empty. Somewhere deeper in the building the screaming goes on. Whatever you decide, you'll need the gas can, the spare tire and the oil before you can drive away."

// routeConfrontation picks the ending branch: only the defensive item matters.
func routeConfrontation(ctx Context) State {
	if ctx.Player().HasItem(ItemSurgicalItem) {
		return StateUsesSurgicalItem
	}
	return StateFailsDefense
}

func revealGuide() []Effect {
	return []Effect{ClearFlag(FlagGuideFeigning), RevealElement(LocMainHall, ElemGuide, 1)}
}

// Transitions returns the story's transition table.
func Transitions() []Transition {
	return []Transition{
		{From: StateIntro, On: Enter(LocMainHall), To: StateFirstEncounter},
		{From: StateFirstEncounter, On: Auto(), To: StateAwaitingTask1},

		// Task 1: clean the memorial.
		{
			From: StateAwaitingTask1, On: Task(TaskClean), To: StateTask1Complete,
			Effects: []Effect{
				SetFlag(string(actor.FlagCleanedMemorial)),
				AdvanceElement(LocMainHall, ElemMemorial),
				AdvanceElement(LocMainHall, ElemMusicBox),
			},
		},
		{From: StateTask1Complete, On: Acquire(ItemGasCan), To: StateAwaitingTask2},

		// Task 2: organize the archives.
		{
			From: StateAwaitingTask2, On: Task(TaskOrganize), To: StateTask2Complete,
			Effects: []Effect{
				SetFlag(string(actor.FlagOrganizedArchives)),
				AdvanceElement(LocStorageRoom, ElemArchives),
			},
		},
		{
			From: StateTask2Complete, On: Enter(LocMainHall), To: Stay,
			When:    &conditionals.When{NotFlags: []string{FlagFiguresStirred}},
			Effects: []Effect{SetFlag(FlagFiguresStirred), RevealElement(LocMainHall, ElemFigures, FiguresStirred)},
			Event:   "figures_stir",
		},
		{From: StateTask2Complete, On: Talk(), To: StateAwaitingTask3},

		// Task 3: trim the garden.
		{
			From: StateAwaitingTask3, On: Task(TaskTrim), To: StateTask3Complete,
			Effects: []Effect{
				SetFlag(string(actor.FlagTrimmedGarden)),
				AdvanceElement(LocWestWing, ElemGarden),
			},
		},
		{From: StateTask3Complete, On: Talk(), To: StateMenacingTableau},
		{
			From: StateMenacingTableau, On: Enter(LocMainHall), To: Stay,
			When:    &conditionals.When{NotFlags: []string{FlagFiguresGathered}},
			Effects: []Effect{SetFlag(FlagFiguresGathered), RevealElement(LocMainHall, ElemFigures, FiguresGathered)},
			Event:   "figures_gather",
		},
		{
			From: StateMenacingTableau, On: Talk(), To: StateAwaitingTask4,
			Effects: []Effect{RevealElement(LocMainHall, ElemFigures, FiguresGathered)},
		},

		// The instrument appears the first time the oil is taken.
		{
			From: AnyState, On: Acquire(ItemOilFluid), To: Stay,
			When:    &conditionals.When{NotFlags: []string{FlagSurgicalItemSpawned}},
			Effects: []Effect{SpawnItem(ItemSurgicalItem, LocOffice, FlagSurgicalItemSpawned)},
			Event:   "surgical_glint",
		},

		// Task 4: the vigil.
		{
			From: StateAwaitingTask4, On: Use(ElemCandle), To: StateVigilMistake,
			When:    &conditionals.When{Location: LocOffice},
			Reject:  "Now doesn't seem like the right time or place to use the candle.",
			Effects: []Effect{AdvanceElement(LocOffice, ElemCandle), SetFlag(FlagVigilHeld)},
		},

		// The staged attack once the player holds every car part.
		{
			From: StateAwaitingTask4, On: Enter(LocMainHall), To: StateAttackPrelude,
			When: &conditionals.When{AllMeansToLeave: true},
		},
		// After the vigil the attack is already under way.
		{
			From: StateVigilMistake, On: Enter(LocMainHall), To: StateAttackSounds,
			When:   &conditionals.When{AllMeansToLeave: true},
			Reject: rejectHallWithoutParts,
			Event:  "vigil_aftermath",
		},
		{From: StateAttackPrelude, On: Auto(), To: StateAttackSounds},
		{
			From: StateAttackSounds, On: Auto(), To: StateGuideFeigningInjury,
			Effects: []Effect{SetFlag(FlagGuideFeigning)},
		},
		{
			From: StateGuideFeigningInjury, On: Auto(), To: StateChoicePoint,
			When:  &conditionals.When{Flags: []string{FlagVigilHeld}},
			Event: "choice_guilt",
		},
		{From: StateGuideFeigningInjury, On: Auto(), To: StateChoicePoint, Event: "choice_doubt"},

		// The choice.
		{From: StateChoicePoint, On: Choice(ChoiceLeave), To: StateChoosesLeave},
		{From: StateChoosesLeave, On: Auto(), To: StateEndingNotWorthy},
		{
			From: StateChoicePoint, On: Choice(ChoiceAssist), To: StateFoundMedkit,
			When:  &conditionals.When{HasItems: []string{ItemFirstAidKit}},
			Event: "kit_in_hand",
		},
		{From: StateChoicePoint, On: Choice(ChoiceAssist), To: StateSearchMedkit},
		{
			From: StateSearchMedkit, On: Acquire(ItemFirstAidKit), To: StateFoundMedkit,
			When:  &conditionals.When{Location: LocMainHall},
			Event: "kit_at_hand",
		},
		{From: StateSearchMedkit, On: Acquire(ItemFirstAidKit), To: StateFoundMedkit, Event: "kit_found"},

		// The reveal, either on returning with the kit or at once when the
		// kit was already at hand.
		{
			From: StateFoundMedkit, On: Enter(LocMainHall), To: StateGuideReveal,
			Effects: revealGuide(),
			Event:   "kit_returned",
		},
		{
			From: StateFoundMedkit, On: Auto(), To: StateGuideReveal,
			When:    &conditionals.When{Location: LocMainHall},
			Effects: revealGuide(),
		},
		{
			From: StateGuideReveal, On: Auto(), To: StateFiguresRevealed,
			Effects: []Effect{RevealElement(LocMainHall, ElemFigures, FiguresRevealed)},
		},
		{From: StateFiguresRevealed, On: Auto(), To: StateFinalConfrontation},

		// Whatever the player does next decides the ending.
		{From: StateFinalConfrontation, On: AnyCommand(), Route: routeConfrontation},
		{From: StateUsesSurgicalItem, On: Auto(), To: StateEndingEscaped},
		{From: StateFailsDefense, On: Auto(), To: StateEndingVictim, Effects: []Effect{Collapse()}},
	}
}
