package state

import (
	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/command"
	"github.com/jwebster45206/visitor-center/pkg/narrative"
)

// TurnResult is everything one line of input produced.
type TurnResult struct {
	Intent   command.Intent
	Messages []chat.Message
	Ended    bool // the story reached an ending or the player quit
	Quit     bool // the player typed quit
}

// HandleInput runs one full turn: resolve the line, execute the intent and
// every narrative transition it causes. After the game has ended no input
// is processed.
func (gs *GameState) HandleInput(line string) *TurnResult {
	res := &TurnResult{Ended: gs.IsEnded}
	if gs.IsEnded {
		return res
	}

	res.Intent = command.Parse(line)
	if res.Intent.Kind == command.IntentNone {
		return res
	}
	gs.TurnCounter++

	gs.logger.Debug("Handling input",
		"turn", gs.TurnCounter,
		"intent", res.Intent.Kind.String(),
		"args", res.Intent.Args,
		"state", gs.machine.Current().String())

	if gs.intercepts(res.Intent) {
		out := gs.machine.Attempt(narrative.AnyCommand(), gs)
		res.Messages = out.Messages
	} else {
		res.Messages = gs.dispatch(res.Intent)
	}

	if res.Intent.Kind == command.IntentQuit {
		res.Quit = true
	}
	if gs.machine.Current().IsTerminal() {
		gs.IsEnded = true
		gs.logger.Info("Game ended", "state", gs.machine.Current().String(), "turns", gs.TurnCounter)
	}
	res.Ended = gs.IsEnded
	return res
}

// intercepts reports whether the story takes over this intent. In the
// final confrontation whatever the player does decides the ending; only
// quit and debug commands are exempt.
func (gs *GameState) intercepts(in command.Intent) bool {
	switch in.Kind {
	case command.IntentQuit:
		return false
	case command.IntentDebug:
		if gs.Debug {
			return false
		}
	}
	return gs.machine.Handles(narrative.AnyCommand())
}

func (gs *GameState) dispatch(in command.Intent) []chat.Message {
	switch in.Kind {
	case command.IntentMove:
		return gs.handleMove(in)
	case command.IntentLook:
		return gs.handleLook()
	case command.IntentExamine:
		return gs.handleExamine(in)
	case command.IntentTake:
		return gs.handleTake(in)
	case command.IntentDrop:
		return gs.handleDrop(in)
	case command.IntentInventory:
		return gs.handleInventory()
	case command.IntentTalk:
		return gs.handleTalk(in)
	case command.IntentUse:
		return gs.handleUse(in)
	case command.IntentTaskVerb:
		return gs.handleTask(in)
	case command.IntentChoice:
		return gs.handleChoice(in)
	case command.IntentHelp:
		return gs.handleHelp(in)
	case command.IntentQuit:
		return gs.handleQuit()
	case command.IntentDebug:
		return gs.handleDebug(in)
	default:
		return []chat.Message{chat.System(unknownCommand)}
	}
}
