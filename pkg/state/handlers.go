package state

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/command"
	"github.com/jwebster45206/visitor-center/pkg/narrative"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
)

const (
	unknownCommand = "Unknown command. Type 'help' for options."
	guideWatching  = "The Guide watches you, a faint, unreadable expression on his face."
	candleNotNow   = "Now doesn't seem like the right time or place to use the candle."
	nowhere        = "You are nowhere in particular. This is odd."
)

func reply(format string, args ...any) []chat.Message {
	return []chat.Message{chat.System(fmt.Sprintf(format, args...))}
}

// say shows world or script text as is. It never goes through a format.
func say(text string) []chat.Message {
	return []chat.Message{chat.System(text)}
}

func (gs *GameState) handleMove(in command.Intent) []chat.Message {
	keyword := in.Target()
	if keyword == "" {
		return reply("Go where?")
	}

	here := gs.player.Location()
	if here == nil {
		return say(nowhere)
	}
	next, ok := here.Exit(keyword)
	if !ok {
		return reply("You can't go '%s' from here.", keyword)
	}
	if msg, locked := gs.locked(next); locked {
		return say(msg)
	}

	gs.player.MoveTo(next)
	gs.logger.Debug("Player moved", "from", here.ID, "to", next.ID)

	msgs := gs.describeLocation()
	res := gs.machine.Attempt(narrative.Enter(next.ID), gs)
	return append(msgs, res.Messages...)
}

// locked reports whether loc cannot be entered yet in the current story.
func (gs *GameState) locked(loc *scenario.Location) (string, bool) {
	if loc.Lock == nil || loc.Lock.Until == "" {
		return "", false
	}
	until, ok := narrative.ParseState(loc.Lock.Until)
	if !ok {
		gs.logger.Warn("Unknown lock state, leaving location open", "location", loc.ID, "until", loc.Lock.Until)
		return "", false
	}
	if gs.machine.Current() >= until {
		return "", false
	}
	msg := loc.Lock.Message
	if msg == "" {
		msg = "The way is locked."
	}
	return msg, true
}

func (gs *GameState) handleLook() []chat.Message {
	return gs.describeLocation()
}

func (gs *GameState) describeLocation() []chat.Message {
	loc := gs.player.Location()
	if loc == nil {
		return say(nowhere)
	}

	var sb strings.Builder
	sb.WriteString(loc.Description)

	if items := loc.Items(); len(items) > 0 {
		sb.WriteString("\n\nYou see here:")
		for _, it := range items {
			fmt.Fprintf(&sb, "\n  - %s (%s)", it.Name, it.ID)
		}
	}
	if elems := loc.Elements(); len(elems) > 0 {
		sb.WriteString("\n\nAlso here:")
		for _, el := range elems {
			sb.WriteString("\n  - " + el.Name)
		}
	}
	if exits := loc.ExitKeywords(); len(exits) > 0 {
		sb.WriteString("\n\nExits:")
		for _, k := range exits {
			sb.WriteString("\n  - " + k)
		}
	} else {
		sb.WriteString("\n\nThere are no obvious exits.")
	}

	msgs := []chat.Message{chat.Heading(loc.Name), chat.System(sb.String())}
	if loc.ID == narrative.LocMainHall && gs.machine.Current() <= narrative.StateAwaitingTask3 {
		msgs = append(msgs, chat.System(guideWatching))
	}
	return msgs
}

func (gs *GameState) handleExamine(in command.Intent) []chat.Message {
	target := in.Target()
	if target == "" {
		return reply("Examine what?")
	}

	if loc := gs.player.Location(); loc != nil {
		if it, ok := loc.PeekItem(target); ok {
			return say(it.Description)
		}
		if el, ok := loc.Element(target); ok {
			return say(el.Describe())
		}
	}
	if it, ok := gs.player.GetItem(target); ok {
		return say(it.Description)
	}
	if target == narrative.ElemGuide {
		return reply("The Guide isn't here.")
	}
	return reply("You don't see any '%s' here to examine, nor are you carrying it.", target)
}

func (gs *GameState) handleTake(in command.Intent) []chat.Message {
	id := in.Target()
	if id == "" {
		return reply("Get what?")
	}

	loc := gs.player.Location()
	if loc == nil {
		return say(nowhere)
	}
	item, ok := loc.RemoveItem(id)
	if !ok {
		return reply("You don't see any '%s' here.", id)
	}
	gs.player.PickUp(item)
	gs.logger.Debug("Item taken", "item", item.ID, "location", loc.ID)

	msgs := reply("You picked up the %s.", item.Name)
	res := gs.machine.Attempt(narrative.Acquire(item.ID), gs)
	return append(msgs, res.Messages...)
}

func (gs *GameState) handleDrop(in command.Intent) []chat.Message {
	id := in.Target()
	if id == "" {
		return reply("Drop what?")
	}
	loc := gs.player.Location()
	if loc == nil {
		return say(nowhere)
	}

	item, ok := gs.player.Drop(id)
	if !ok {
		return reply("You don't have a '%s' to drop.", id)
	}
	loc.AddItem(item)
	return reply("You dropped the %s.", item.Name)
}

func (gs *GameState) handleInventory() []chat.Message {
	items := gs.player.Inventory()
	if len(items) == 0 {
		return reply("Your inventory is empty.")
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("  - %s (%s)", it.Name, it.ID))
	}
	return []chat.Message{chat.Heading("Inventory"), chat.System(strings.Join(lines, "\n"))}
}

// talksToGuide accepts "talk guide", "talk to guide" and "talk with guide".
func talksToGuide(args []string) bool {
	switch {
	case len(args) == 1:
		return args[0] == narrative.ElemGuide
	case len(args) >= 2:
		return (args[0] == "to" || args[0] == "with") && args[1] == narrative.ElemGuide
	}
	return false
}

func (gs *GameState) handleTalk(in command.Intent) []chat.Message {
	if !talksToGuide(in.Args) {
		return reply("Talk to whom? (e.g., 'talk to guide')")
	}
	loc := gs.player.Location()
	if loc == nil {
		return reply("The Guide is not here.")
	}
	if _, ok := loc.Element(narrative.ElemGuide); !ok {
		return reply("The Guide is not here.")
	}

	before := gs.machine.Current()
	res := gs.machine.Attempt(narrative.Talk(), gs)
	if res.Accepted {
		return res.Messages
	}
	return gs.machine.Narrator().Talk(before)
}

func (gs *GameState) handleUse(in command.Intent) []chat.Message {
	target := in.Target()
	if target == "" {
		return reply("Use what?")
	}

	if target == narrative.ElemCandle {
		res := gs.machine.Attempt(narrative.Use(narrative.ElemCandle), gs)
		if !res.Handled {
			return say(candleNotNow)
		}
		return res.Messages
	}

	item, ok := gs.player.GetItem(target)
	if !ok {
		return reply("You don't have a '%s' to use.", target)
	}

	if gs.machine.Handles(narrative.Use(item.ID)) {
		if res := gs.machine.Attempt(narrative.Use(item.ID), gs); res.Accepted || len(res.Messages) > 0 {
			return res.Messages
		}
	}

	switch item.Kind {
	case scenario.ItemEscapeTool:
		return reply("The %s is for your car. It will have to wait until you can get back to it.", item.Name)
	case scenario.ItemDefensive:
		return reply("You turn the %s over in your hand and slip it back into your pocket. Best to keep it close.", item.Name)
	case scenario.ItemNarrativeTrigger:
		return reply("There is no one here who needs the %s.", item.Name)
	default:
		return reply("You try to use the %s, but nothing specific happens.", item.ID)
	}
}

func (gs *GameState) handleTask(in command.Intent) []chat.Message {
	task, ok := narrative.LookupTask(in.Verb)
	if !ok {
		return say(unknownCommand)
	}
	if in.Target() != task.Noun {
		return say(task.WhatPrompt())
	}
	if gs.player.UserLocation() != task.Location {
		return say(task.Absent)
	}
	if gs.player.Flag(string(task.Flag)) {
		return say(task.AlreadyDone())
	}

	res := gs.machine.Attempt(narrative.Task(task.Verb), gs)
	if !res.Accepted {
		if len(res.Messages) > 0 {
			return res.Messages
		}
		return say(narrative.NotNow)
	}
	return res.Messages
}

func (gs *GameState) handleChoice(in command.Intent) []chat.Message {
	if gs.machine.Current() != narrative.StateChoicePoint {
		return reply("You can't do that right now.")
	}
	res := gs.machine.Attempt(narrative.Choice(in.Verb), gs)
	if !res.Handled {
		return reply("That's not a valid choice here. Try 'leave' or 'assist'.")
	}
	return res.Messages
}

func (gs *GameState) handleHelp(in command.Intent) []chat.Message {
	script := gs.def.Script
	if gs.machine.Current() == narrative.StateChoicePoint && script.ChoiceHelp != "" {
		return []chat.Message{chat.Heading("Help"), chat.System(script.ChoiceHelp)}
	}

	topic := in.Target()
	if topic == "" {
		topic = "general"
	}
	text := script.HelpTopic(topic)
	if text == "" {
		return say(unknownCommand)
	}
	return []chat.Message{chat.Heading("Help"), chat.System(text)}
}

func (gs *GameState) handleQuit() []chat.Message {
	gs.machine.Quit()
	return reply("Exiting game.")
}
