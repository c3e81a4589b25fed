package conditionals

// When defines the conditions that must all hold for a guard to pass.
type When struct {
	Location        string   `yaml:"location,omitempty"`           // player must be at this location
	HasItems        []string `yaml:"has_items,omitempty"`          // player must hold every item
	LacksItems      []string `yaml:"lacks_items,omitempty"`        // player must hold none of these
	Flags           []string `yaml:"flags,omitempty"`              // every flag must be set
	NotFlags        []string `yaml:"not_flags,omitempty"`          // no flag may be set
	AllMeansToLeave bool     `yaml:"all_means_to_leave,omitempty"` // player holds every car part
}

// IsEmpty reports whether no condition is specified.
func (w When) IsEmpty() bool {
	return w.Location == "" &&
		len(w.HasItems) == 0 &&
		len(w.LacksItems) == 0 &&
		len(w.Flags) == 0 &&
		len(w.NotFlags) == 0 &&
		!w.AllMeansToLeave
}

// View provides the minimal interface needed to evaluate conditions.
// This avoids import cycles with the actor and state packages.
type View interface {
	UserLocation() string
	HasItem(id string) bool
	Flag(name string) bool
	HasAllMeansToLeave() bool
}

// EvaluateWhen checks if all conditions in a When clause are met
func EvaluateWhen(when When, v View) bool {
	// If no conditions specified, return false (guard should not pass)
	if when.IsEmpty() {
		return false
	}

	if when.Location != "" && v.UserLocation() != when.Location {
		return false
	}

	for _, id := range when.HasItems {
		if !v.HasItem(id) {
			return false
		}
	}
	for _, id := range when.LacksItems {
		if v.HasItem(id) {
			return false
		}
	}

	for _, f := range when.Flags {
		if !v.Flag(f) {
			return false
		}
	}
	for _, f := range when.NotFlags {
		if v.Flag(f) {
			return false
		}
	}

	if when.AllMeansToLeave && !v.HasAllMeansToLeave() {
		return false
	}

	return true
}
