// Package world models possible worlds: probability-weighted, immutable sets
// of Effects describing one way an attack can play out.
//
// Every operation on a State returns a new State. Slices handed out by a
// State are copies, so callers can never reach into another world's effects.
package world

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// State is one possible world. Effects are kept sorted and free of exact
// duplicates, which makes two worlds with the same facts compare equal by Key.
type State struct {
	Prob    float64
	effects []Effect
}

// New returns a world with probability prob holding effects.
func New(prob float64, effects ...Effect) State {
	s := State{Prob: prob}
	for _, e := range effects {
		s = s.Add(e)
	}
	return s
}

func compareEffects(a, b Effect) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Source, b.Source); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// Add returns a copy of s with e added. Adding an identical Effect twice is a
// no-op.
func (s State) Add(e Effect) State {
	i, found := slices.BinarySearchFunc(s.effects, e, compareEffects)
	if found {
		return s
	}
	effects := make([]Effect, 0, len(s.effects)+1)
	effects = append(effects, s.effects[:i]...)
	effects = append(effects, e)
	effects = append(effects, s.effects[i:]...)
	return State{Prob: s.Prob, effects: effects}
}

// Remove returns a copy of s without the Effects matching m.
func (s State) Remove(m Match) State {
	return s.RemoveFunc(m.Matches)
}

// RemoveFunc returns a copy of s without the Effects for which pred is true.
func (s State) RemoveFunc(pred func(Effect) bool) State {
	effects := make([]Effect, 0, len(s.effects))
	for _, e := range s.effects {
		if !pred(e) {
			effects = append(effects, e)
		}
	}
	return State{Prob: s.Prob, effects: effects}
}

// Effects returns the Effects matching m.
func (s State) Effects(m Match) []Effect {
	return s.EffectsFunc(m.Matches)
}

// EffectsFunc returns the Effects for which pred is true.
func (s State) EffectsFunc(pred func(Effect) bool) []Effect {
	var out []Effect
	for _, e := range s.effects {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// All returns every Effect in s.
func (s State) All() []Effect {
	return slices.Clone(s.effects)
}

// Has reports whether any Effect matches m.
func (s State) Has(m Match) bool {
	return slices.ContainsFunc(s.effects, m.Matches)
}

// Sum adds up the values of the Effects matching m. No match sums to zero.
func (s State) Sum(m Match) float64 {
	return s.SumFunc(m.Matches)
}

// SumFunc adds up the values of the Effects for which pred is true.
func (s State) SumFunc(pred func(Effect) bool) float64 {
	var total float64
	for _, e := range s.effects {
		if pred(e) {
			total += e.Value
		}
	}
	return total
}

// WithProb returns a copy of s carrying probability p.
func (s State) WithProb(p float64) State {
	return State{Prob: p, effects: s.effects}
}

// Scale returns a copy of s with its probability multiplied by f, the
// conditional probability of a branch taken from s.
func (s State) Scale(f float64) State {
	return s.WithProb(s.Prob * f)
}

// Key identifies the effect set of s independently of its probability.
func (s State) Key() string {
	var b strings.Builder
	for i, e := range s.effects {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(e.Name))
		b.WriteByte('\x1f')
		b.WriteString(e.Source)
		b.WriteByte('\x1f')
		b.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))
	}
	return b.String()
}

func (s State) String() string {
	lines := []string{"Prob: " + strconv.FormatFloat(s.Prob*100, 'f', 2, 64) + "%"}
	for _, e := range s.effects {
		lines = append(lines, "\t"+e.String())
	}
	return strings.Join(lines, "\n")
}
