// Package dice computes exact probability mass functions for the dice pools
// used by opposed skill rolls. Face values are integers from 1 to sides.
//
// Nothing here enumerates die faces: the highest-face distribution comes from
// P(max <= f) = (f/sides)^n and threshold counts are binomial.
package dice

import (
	"math"
	"sort"
)

// PMF maps an outcome to its probability.
type PMF map[int]float64

// HighestFace returns the distribution of the highest single face shown by
// numDice dice with the given number of sides. It is not the sum of the dice.
//
// numDice must be at least 1; callers clamp the pool before rolling.
func HighestFace(numDice, sides int) PMF {
	out := make(PMF, sides)
	n := float64(numDice)
	s := float64(sides)
	for f := 1; f <= sides; f++ {
		out[f] = math.Pow(float64(f)/s, n) - math.Pow(float64(f-1)/s, n)
	}
	return out
}

// ThresholdCount returns the distribution of how many of numDice dice meet or
// exceed threshold. An unreachable threshold or an empty pool always yields
// zero successes.
func ThresholdCount(numDice, sides, threshold int) PMF {
	if threshold > sides || numDice < 1 {
		return PMF{0: 1}
	}
	// Every face meets a threshold of 1 or less.
	p := float64(min(sides, max(0, sides-threshold+1))) / float64(sides)
	out := make(PMF, numDice+1)
	for k := 0; k <= numDice; k++ {
		out[k] = binomial(numDice, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(numDice-k))
	}
	return out
}

// RerollBelowAverage models rerolling every result below the expected value
// once: those results give up their mass, which is spread over the original
// distribution again. A reroll is never rerolled.
func RerollBelowAverage(p PMF) PMF {
	avg := Expected(p)
	out := make(PMF, len(p))
	var rerolled float64
	for v, prob := range p {
		if float64(v) < avg {
			rerolled += prob
			out[v] = 0
			continue
		}
		out[v] = prob
	}
	for v, prob := range p {
		out[v] += rerolled * prob
	}
	return out
}

// Expected returns the probability-weighted mean of p.
func Expected(p PMF) float64 {
	var sum float64
	for _, v := range Keys(p) {
		sum += float64(v) * p[v]
	}
	return sum
}

// StdDev returns the standard deviation of the discrete distribution p.
func StdDev(p PMF) float64 {
	exp := Expected(p)
	var sum float64
	for _, v := range Keys(p) {
		d := float64(v) - exp
		sum += d * d * p[v]
	}
	return math.Sqrt(sum)
}

// Total returns the summed probability of p, 1 for a complete distribution.
func Total(p PMF) float64 {
	var sum float64
	for _, v := range Keys(p) {
		sum += p[v]
	}
	return sum
}

// Keys returns the outcomes of p in ascending order.
func Keys(p PMF) []int {
	keys := make([]int, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return c
}
