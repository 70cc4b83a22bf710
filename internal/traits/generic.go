package traits

import (
	"hgbdice/internal/game"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

// Modifier adds a fixed roll modifier at the step that gathers it. Negative
// values are penalties.
type Modifier struct {
	rules.Base
	eff world.Effect
}

func newModifier(step rules.Step, kind world.Kind, source string, value int) *Modifier {
	c := &Modifier{eff: world.Effect{Name: kind, Source: source, Value: float64(value)}}
	c.On(step, c.add)
	return c
}

// DiceBonus changes the size of the dice pool.
func DiceBonus(source string, value int) *Modifier {
	return newModifier(game.GatherDice, world.ModDice, source, value)
}

// ResultBonus changes the final result of the roll.
func ResultBonus(source string, value int) *Modifier {
	return newModifier(game.GatherResultBonuses, world.ModResult, source, value)
}

// ThresholdBonus changes the target number of the skill dice.
func ThresholdBonus(source string, value int) *Modifier {
	return newModifier(game.GatherThresholdBonuses, world.ModThreshold, source, value)
}

func (c *Modifier) add(st world.State) []world.State {
	return rules.Same(st.Add(c.eff))
}

// Fact records a piece of data other rules read, both for the rolls and again
// for the resolution, which starts from fresh worlds.
type Fact struct {
	rules.Base
	eff world.Effect
}

func NewFact(kind world.Kind, source string, value float64) *Fact {
	c := &Fact{eff: world.Effect{Name: kind, Source: source, Value: value}}
	c.On(game.Initialize, c.add)
	c.On(game.GatherModelData, c.add)
	return c
}

func (c *Fact) add(st world.State) []world.State {
	return rules.Same(st.Add(c.eff))
}
