package command

import (
	"slices"
	"strings"
)

// IntentKind is the closed set of things a player can ask for.
type IntentKind int

const (
	IntentNone IntentKind = iota // empty input
	IntentMove
	IntentLook
	IntentExamine
	IntentTake
	IntentDrop
	IntentInventory
	IntentTalk
	IntentUse
	IntentTaskVerb
	IntentChoice
	IntentHelp
	IntentQuit
	IntentDebug
	IntentUnknown
)

var intentNames = map[IntentKind]string{
	IntentNone:      "none",
	IntentMove:      "move",
	IntentLook:      "look",
	IntentExamine:   "examine",
	IntentTake:      "take",
	IntentDrop:      "drop",
	IntentInventory: "inventory",
	IntentTalk:      "talk",
	IntentUse:       "use",
	IntentTaskVerb:  "task_verb",
	IntentChoice:    "choice",
	IntentHelp:      "help",
	IntentQuit:      "quit",
	IntentDebug:     "debug",
	IntentUnknown:   "unknown",
}

func (k IntentKind) String() string {
	if s, ok := intentNames[k]; ok {
		return s
	}
	return "unknown"
}

// Intent is the resolved meaning of one input line. Verb is the word the
// player typed to select the intent; Args are the remaining words.
type Intent struct {
	Kind IntentKind
	Verb string
	Args []string
}

// Target returns the first argument or an empty string.
func (i Intent) Target() string {
	if len(i.Args) == 0 {
		return ""
	}
	return i.Args[0]
}

// known maps every accepted first word to its intent.
var known = map[string]IntentKind{
	"go":   IntentMove,
	"move": IntentMove,

	"look": IntentLook,
	"l":    IntentLook,

	"examine": IntentExamine,
	"x":       IntentExamine,
	"inspect": IntentExamine,

	"get":    IntentTake,
	"take":   IntentTake,
	"pickup": IntentTake,

	"drop": IntentDrop,

	"inventory": IntentInventory,
	"i":         IntentInventory,
	"inv":       IntentInventory,

	"talk": IntentTalk,
	"use":  IntentUse,

	"clean":    IntentTaskVerb,
	"organize": IntentTaskVerb,
	"trim":     IntentTaskVerb,

	"leave":  IntentChoice,
	"assist": IntentChoice,

	"help": IntentHelp,
	"?":    IntentHelp,

	"quit": IntentQuit,

	"dbg_setstate":    IntentDebug,
	"dbg_items":       IntentDebug,
	"dbg_playeritems": IntentDebug,
	"dbg_state":       IntentDebug,
}

// Tokenize lowercases raw input and splits it on whitespace.
func Tokenize(raw string) []string {
	return strings.Fields(strings.ToLower(raw))
}

// Resolve maps words to an intent. Resolution does not depend on game
// state: the same words always produce the same intent.
func Resolve(words []string) Intent {
	if len(words) == 0 {
		return Intent{Kind: IntentNone}
	}

	verb := words[0]
	kind, ok := known[verb]
	if !ok {
		kind = IntentUnknown
	}

	args := slices.DeleteFunc(slices.Clone(words[1:]), func(w string) bool {
		return w == "the"
	})
	return Intent{Kind: kind, Verb: verb, Args: args}
}

// Parse tokenizes and resolves raw input.
func Parse(raw string) Intent {
	return Resolve(Tokenize(raw))
}
