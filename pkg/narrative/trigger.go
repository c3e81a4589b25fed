package narrative

import "fmt"

// TriggerKind is the kind of event that may move the story forward.
type TriggerKind int

const (
	TriggerEnter      TriggerKind = iota // player entered a location
	TriggerAcquire                       // player picked up an item
	TriggerTask                          // player performed a task verb
	TriggerUse                           // player used an item or prop
	TriggerTalk                          // player talked to the guide
	TriggerChoice                        // player made the leave/assist choice
	TriggerAnyCommand                    // any command at all
	TriggerAuto                          // automatic follow-up of the current state
)

var triggerKindNames = map[TriggerKind]string{
	TriggerEnter:      "enter",
	TriggerAcquire:    "acquire",
	TriggerTask:       "task",
	TriggerUse:        "use",
	TriggerTalk:       "talk",
	TriggerChoice:     "choice",
	TriggerAnyCommand: "any_command",
	TriggerAuto:       "auto",
}

func (k TriggerKind) String() string {
	if s, ok := triggerKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Trigger identifies what happened. Target is a location id, item id, task
// verb, prop name or choice word, depending on Kind.
type Trigger struct {
	Kind   TriggerKind
	Target string
}

func (t Trigger) String() string {
	if t.Target == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Target)
}

func Enter(locationID string) Trigger { return Trigger{Kind: TriggerEnter, Target: locationID} }
func Acquire(itemID string) Trigger   { return Trigger{Kind: TriggerAcquire, Target: itemID} }
func Task(verb string) Trigger        { return Trigger{Kind: TriggerTask, Target: verb} }
func Use(target string) Trigger       { return Trigger{Kind: TriggerUse, Target: target} }
func Talk() Trigger                   { return Trigger{Kind: TriggerTalk} }
func Choice(choice string) Trigger    { return Trigger{Kind: TriggerChoice, Target: choice} }
func AnyCommand() Trigger             { return Trigger{Kind: TriggerAnyCommand} }
func Auto() Trigger                   { return Trigger{Kind: TriggerAuto} }
