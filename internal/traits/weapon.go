package traits

import (
	"hgbdice/internal/game"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

// AP guarantees damage on a hit: up to value, bounded by the margin, and at
// least one. It is added before marginal hits resolve, so it replaces them.
type AP struct {
	rules.Base
	value float64
}

func NewAP(value int) *AP {
	c := &AP{value: float64(value)}
	c.On(game.CalcAttackDamage, c.pierce)
	return c
}

func (c *AP) pierce(st world.State) []world.State {
	if st.Has(world.Named(world.Miss)) {
		return rules.Same(st)
	}
	st = st.Remove(world.Named(game.MarginalHit))
	attack := st.Sum(world.Named(game.AttackDamage))
	ap := min(c.value, st.Sum(world.Named(world.MoS)))
	if ap == 0 {
		ap = 1
	}
	if ap > attack {
		st = st.Add(world.Effect{Name: game.AttackDamage, Source: game.SourceAP, Value: ap - attack})
	}
	return rules.Same(st)
}

// AntiAir adds a die against aircraft.
type AntiAir struct{ rules.Base }

func NewAntiAir() *AntiAir {
	c := &AntiAir{}
	c.On(game.GatherDice, c.dice)
	return c
}

func (c *AntiAir) dice(st world.State) []world.State {
	if !st.Has(world.Named(Aircraft)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "AA", Value: 1}))
}

// Blast ignores partial cover with indirect attacks.
type Blast struct{ rules.Base }

func NewBlast() *Blast {
	c := &Blast{}
	c.On(game.CheckCover, c.blast)
	return c
}

func (c *Blast) blast(st world.State) []world.State {
	if !st.Has(world.Named(Indirect)) || !st.Has(world.Named(Partial)) {
		return rules.Same(st)
	}
	return rules.Same(st.Remove(world.Named(Partial)))
}

// Advanced adds one to the result at optimal range.
type Advanced struct{ rules.Base }

func NewAdvanced() *Advanced {
	c := &Advanced{}
	c.On(game.GatherResultBonuses, c.result)
	return c
}

func (c *Advanced) result(st world.State) []world.State {
	if !st.Has(world.Named(Optimal)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModResult, Source: "Advanced", Value: 1}))
}

// Guided adds a die to fire missions called in with a target designator.
type Guided struct{ rules.Base }

func NewGuided() *Guided {
	c := &Guided{}
	c.On(game.GatherDice, c.dice)
	return c
}

func (c *Guided) dice(st world.State) []world.State {
	if !st.Has(world.Named(FireMission)) || !st.Has(world.Named(TD)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "Guided", Value: 1}))
}

// Range records the attack range. Suboptimal range costs a die except in
// melee.
type Range struct {
	rules.Base
	rng world.Kind
}

func NewRange(rng world.Kind) *Range {
	c := &Range{rng: rng}
	c.On(game.Initialize, c.record)
	c.On(game.GatherDice, c.dice)
	return c
}

func (c *Range) record(st world.State) []world.State {
	return rules.Same(st.Add(world.Flag(c.rng, "Range")))
}

func (c *Range) dice(st world.State) []world.State {
	if c.rng != Suboptimal || st.Has(world.Named(Melee)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: string(c.rng), Value: -1}))
}

// Method records the attack method. Indirect attacks cost a die unless they
// are fire missions.
type Method struct {
	rules.Base
	method world.Kind
}

func NewMethod(method world.Kind) *Method {
	c := &Method{method: method}
	c.On(game.Initialize, c.record)
	c.On(game.GatherDice, c.dice)
	return c
}

func (c *Method) record(st world.State) []world.State {
	return rules.Same(st.Add(world.Flag(c.method, "Attack Method")))
}

func (c *Method) dice(st world.State) []world.State {
	if c.method != Indirect || st.Has(world.Named(FireMission)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: string(c.method), Value: -1}))
}
