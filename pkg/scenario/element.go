package scenario

// InteractiveElement is a fixed, non-portable feature of a location whose
// description reflects story progress. The level only moves forward and
// never passes the last description.
type InteractiveElement struct {
	Name         string
	descriptions []string
	level        int
}

// NewInteractiveElement creates an element at level 0.
func NewInteractiveElement(name string, descriptions ...string) *InteractiveElement {
	return &InteractiveElement{
		Name:         name,
		descriptions: append([]string(nil), descriptions...),
	}
}

// Level is the current reveal level.
func (e *InteractiveElement) Level() int {
	return e.level
}

// MaxLevel is the highest level the element can reach.
func (e *InteractiveElement) MaxLevel() int {
	if len(e.descriptions) == 0 {
		return 0
	}
	return len(e.descriptions) - 1
}

// Describe returns the description for the current level.
func (e *InteractiveElement) Describe() string {
	if len(e.descriptions) == 0 {
		return "There is nothing remarkable about the " + e.Name + "."
	}
	return e.descriptions[e.level]
}

// Advance moves one level forward. It saturates at the last description.
func (e *InteractiveElement) Advance() {
	e.AdvanceTo(e.level + 1)
}

// AdvanceTo jumps forward to level. Lower levels are ignored and higher
// ones are clamped.
func (e *InteractiveElement) AdvanceTo(level int) {
	level = min(level, e.MaxLevel())
	if level > e.level {
		e.level = level
	}
}
