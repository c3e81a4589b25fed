package narrative

import (
	"fmt"

	"github.com/jwebster45206/visitor-center/pkg/actor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	TaskClean    = "clean"
	TaskOrganize = "organize"
	TaskTrim     = "trim"
)

// TaskSpec is a respect task the guide asks for.
type TaskSpec struct {
	Verb     string
	Noun     string // the only thing the verb applies to
	Location string // where the task can be done
	Flag     actor.Flag
	Past     string // past tense of Verb
	Absent   string // shown when Noun is not here
}

var tasks = map[string]TaskSpec{
	TaskClean: {
		Verb: TaskClean, Noun: ElemMemorial, Location: LocMainHall,
		Flag: actor.FlagCleanedMemorial, Past: "cleaned",
		Absent: "There is no memorial to clean here.",
	},
	TaskOrganize: {
		Verb: TaskOrganize, Noun: ElemArchives, Location: LocStorageRoom,
		Flag: actor.FlagOrganizedArchives, Past: "organized",
		Absent: "There are no archives to organize here.",
	},
	TaskTrim: {
		Verb: TaskTrim, Noun: ElemGarden, Location: LocWestWing,
		Flag: actor.FlagTrimmedGarden, Past: "trimmed",
		Absent: "There is no garden to trim here.",
	},
}

// LookupTask returns the task for a verb.
func LookupTask(verb string) (TaskSpec, bool) {
	t, ok := tasks[verb]
	return t, ok
}

// WhatPrompt asks the player which object they meant.
func (t TaskSpec) WhatPrompt() string {
	title := cases.Title(language.English).String(t.Verb)
	return fmt.Sprintf("%s what? (Perhaps '%s %s'?)", title, t.Verb, t.Noun)
}

// AlreadyDone is shown when the task is repeated.
func (t TaskSpec) AlreadyDone() string {
	return fmt.Sprintf("You've already %s the %s.", t.Past, t.Noun)
}

// NotNow is shown when the story is not waiting for this task.
const NotNow = "That doesn't seem necessary right now."
