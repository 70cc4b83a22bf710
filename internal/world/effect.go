package world

import "fmt"

// Kind names what an Effect records. The engine knows the kinds below; rule
// content declares its own Kind constants alongside its components.
type Kind string

const (
	// MoS is the margin of success: attacker result minus defender result.
	MoS Kind = "MoS"

	Hit  Kind = "Hit"
	Miss Kind = "Miss"

	Hull      Kind = "Hull"
	Structure Kind = "Structure"

	// ModDice, ModResult and ModThreshold accumulate roll modifiers; a roll
	// reads them back by summing every Effect of the kind.
	ModDice      Kind = "ModDice"
	ModResult    Kind = "ModResult"
	ModThreshold Kind = "ModThreshold"
)

// Effect is one immutable fact attached to a possible world. Effects are
// compared by value, so two Effects with different sources or values coexist
// in the same world.
type Effect struct {
	Name   Kind    `json:"name"`
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}

// Flag returns a boolean-style Effect with value 1.
func Flag(name Kind, source string) Effect {
	return Effect{Name: name, Source: source, Value: 1}
}

func (e Effect) String() string {
	return fmt.Sprintf("%s (%s): %g", e.Name, e.Source, e.Value)
}

// Match selects Effects by field equality. Empty fields match anything.
type Match struct {
	Name   Kind
	Source string
}

// Named matches every Effect of the given kind.
func Named(name Kind) Match {
	return Match{Name: name}
}

// From matches Effects of the given kind produced by source.
func From(name Kind, source string) Match {
	return Match{Name: name, Source: source}
}

// Matches reports whether e satisfies every non-empty field of m.
func (m Match) Matches(e Effect) bool {
	if m.Name != "" && e.Name != m.Name {
		return false
	}
	if m.Source != "" && e.Source != m.Source {
		return false
	}
	return true
}

// AnyOf matches Effects of any of the given kinds.
func AnyOf(names ...Kind) func(Effect) bool {
	return func(e Effect) bool {
		for _, n := range names {
			if e.Name == n {
				return true
			}
		}
		return false
	}
}
