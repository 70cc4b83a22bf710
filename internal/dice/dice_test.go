package dice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

// enumerateHighest counts the highest face over every combination of faces.
func enumerateHighest(numDice, sides int) PMF {
	counts := map[int]int{}
	faces := make([]int, numDice)
	for i := range faces {
		faces[i] = 1
	}
	total := 0
	for {
		best := 0
		for _, f := range faces {
			best = max(best, f)
		}
		counts[best]++
		total++

		i := 0
		for i < numDice {
			faces[i]++
			if faces[i] <= sides {
				break
			}
			faces[i] = 1
			i++
		}
		if i == numDice {
			break
		}
	}
	out := PMF{}
	for k, c := range counts {
		out[k] = float64(c) / float64(total)
	}
	return out
}

func TestHighestFace_SumsToOne(t *testing.T) {
	for dice := 1; dice <= 10; dice++ {
		for _, sides := range []int{2, 4, 6, 8, 12} {
			assert.InDelta(t, 1.0, Total(HighestFace(dice, sides)), tolerance, "%dd%d", dice, sides)
		}
	}
}

func TestHighestFace_MatchesEnumeration(t *testing.T) {
	for dice := 1; dice <= 4; dice++ {
		want := enumerateHighest(dice, 6)
		got := HighestFace(dice, 6)
		require.Len(t, got, 6)
		for face := 1; face <= 6; face++ {
			assert.InDelta(t, want[face], got[face], tolerance, "%dd6 face %d", dice, face)
		}
	}
}

func TestHighestFace_TwoD6(t *testing.T) {
	got := HighestFace(2, 6)
	assert.InDelta(t, 1.0/36, got[1], tolerance)
	assert.InDelta(t, 11.0/36, got[6], tolerance)
}

func TestThresholdCount(t *testing.T) {
	t.Run("binomial", func(t *testing.T) {
		got := ThresholdCount(2, 6, 4)
		require.Len(t, got, 3)
		assert.InDelta(t, 0.25, got[0], tolerance)
		assert.InDelta(t, 0.5, got[1], tolerance)
		assert.InDelta(t, 0.25, got[2], tolerance)
	})

	t.Run("threshold above sides", func(t *testing.T) {
		assert.Equal(t, PMF{0: 1}, ThresholdCount(3, 5, 6))
	})

	t.Run("no dice", func(t *testing.T) {
		assert.Equal(t, PMF{0: 1}, ThresholdCount(0, 6, 4))
		assert.Equal(t, PMF{0: 1}, ThresholdCount(-1, 6, 4))
	})

	t.Run("threshold at or below one always succeeds", func(t *testing.T) {
		got := ThresholdCount(3, 6, 1)
		assert.InDelta(t, 1.0, got[3], tolerance)
		assert.InDelta(t, 0.0, got[0], tolerance)

		got = ThresholdCount(3, 6, -2)
		assert.InDelta(t, 1.0, got[3], tolerance)
		assert.InDelta(t, 1.0, Total(got), tolerance)
	})

	t.Run("sums to one", func(t *testing.T) {
		for dice := 1; dice <= 8; dice++ {
			for threshold := 1; threshold <= 6; threshold++ {
				assert.InDelta(t, 1.0, Total(ThresholdCount(dice, 6, threshold)), tolerance)
			}
		}
	})
}

func TestPure(t *testing.T) {
	assert.Equal(t, HighestFace(3, 6), HighestFace(3, 6))
	assert.Equal(t, ThresholdCount(4, 6, 3), ThresholdCount(4, 6, 3))
}

func TestRerollBelowAverage(t *testing.T) {
	for dice := 1; dice <= 6; dice++ {
		before := HighestFace(dice, 6)
		after := RerollBelowAverage(before)
		assert.InDelta(t, 1.0, Total(after), tolerance)
		assert.GreaterOrEqual(t, Expected(after)+tolerance, Expected(before), "%dd6", dice)
	}
}

func TestRerollBelowAverage_SingleDie(t *testing.T) {
	// 1d6 averages 3.5: faces 1-3 are rerolled once.
	got := RerollBelowAverage(HighestFace(1, 6))
	assert.InDelta(t, 1.0/12, got[1], tolerance)
	assert.InDelta(t, 1.0/6+1.0/12, got[6], tolerance)
}

func TestMoments(t *testing.T) {
	d6 := HighestFace(1, 6)
	assert.InDelta(t, 3.5, Expected(d6), tolerance)
	assert.InDelta(t, math.Sqrt(35.0/12), StdDev(d6), tolerance)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, Keys(d6))
}

func TestBinomial(t *testing.T) {
	assert.Equal(t, 10.0, binomial(5, 2))
	assert.Equal(t, 1.0, binomial(5, 0))
	assert.Equal(t, 0.0, binomial(2, 3))
}
