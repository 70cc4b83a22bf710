package world

import "sort"

// Set is a collection of possible worlds. A complete Set sums to probability 1.
type Set []State

// Start returns the default starting set: one world, certain, with no effects.
func Start() Set {
	return Set{New(1)}
}

// Merge collapses worlds holding identical effects into one world carrying
// their summed probability. The result is ordered by Key so that identical
// inputs always produce identical Sets.
func Merge(states ...State) Set {
	byKey := make(map[string]State, len(states))
	for _, s := range states {
		k := s.Key()
		if prev, ok := byKey[k]; ok {
			s = prev.WithProb(prev.Prob + s.Prob)
		}
		byKey[k] = s
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Set, 0, len(keys))
	for _, k := range keys {
		out = append(out, byKey[k])
	}
	return out
}

// Total returns the summed probability of every world in the set.
func (s Set) Total() float64 {
	var total float64
	for _, st := range s {
		total += st.Prob
	}
	return total
}
