// Package analysis turns a terminal world set into distributions of the
// quantities players care about: margins, hits, damage and status effects.
package analysis

import (
	"sort"

	"hgbdice/internal/world"
)

// Point is the probability of one value.
type Point struct {
	Value float64 `json:"value"`
	Prob  float64 `json:"prob"`
}

// PMF is a distribution ordered by ascending value.
type PMF []Point

// Key extracts the value a world is grouped under.
type Key func(world.State) float64

// EffectKey sums the values of the Effects matching m.
func EffectKey(m world.Match) Key {
	return func(st world.State) float64 {
		return st.Sum(m)
	}
}

// GroupBy sums the probability of every world sharing a key.
func GroupBy(states world.Set, key Key) PMF {
	byValue := make(map[float64]float64)
	for _, st := range states {
		byValue[key(st)] += st.Prob
	}
	out := make(PMF, 0, len(byValue))
	for v, p := range byValue {
		out = append(out, Point{Value: v, Prob: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Normalize keeps the positive values of p and multiplies their probability
// by scale. A scale of zero or less rescales them to sum to 1; when nothing
// is positive the probabilities are kept as they are.
func Normalize(p PMF, scale float64) PMF {
	var positive PMF
	for _, pt := range p {
		if pt.Value > 0 {
			positive = append(positive, pt)
		}
	}
	if scale <= 0 {
		scale = successScale(p)
	}
	out := make(PMF, len(positive))
	for i, pt := range positive {
		out[i] = Point{Value: pt.Value, Prob: pt.Prob * scale}
	}
	return out
}

// successScale is 1 over the probability of a positive value, or 1 when the
// value is never positive.
func successScale(p PMF) float64 {
	var success float64
	for _, pt := range p {
		if pt.Value > 0 {
			success += pt.Prob
		}
	}
	if success == 0 {
		return 1
	}
	return 1 / success
}

// AtLeast returns, for every value of p, the probability of seeing that value
// or more.
func AtLeast(p PMF) PMF {
	out := make(PMF, len(p))
	var tail float64
	for i := len(p) - 1; i >= 0; i-- {
		tail += p[i].Prob
		out[i] = Point{Value: p[i].Value, Prob: tail}
	}
	return out
}

// Average is the probability-weighted mean of p.
func Average(p PMF) float64 {
	var sum float64
	for _, pt := range p {
		sum += pt.Value * pt.Prob
	}
	return sum
}

// Total is the summed probability of p.
func (p PMF) Total() float64 {
	var sum float64
	for _, pt := range p {
		sum += pt.Prob
	}
	return sum
}

// Prob returns the probability of exactly v.
func (p PMF) Prob(v float64) float64 {
	i := sort.Search(len(p), func(i int) bool { return p[i].Value >= v })
	if i < len(p) && p[i].Value == v {
		return p[i].Prob
	}
	return 0
}
