package game

import (
	"hgbdice/internal/dice"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

// BaseRules returns the shared rules entity every scenario runs ahead of the
// attacker and defender: dice pools, hit/miss, attack damage and the damage
// bookkeeping used by analysis.
func BaseRules() *rules.Entity {
	return rules.NewEntity(rules.RoleRules,
		NewDiceRule(),
		NewAttackRule(),
		NewAnalysisRule(),
	)
}

// DiceRule grants the two base dice of every skill roll and rolls the pool.
type DiceRule struct {
	rules.Base
}

func NewDiceRule() *DiceRule {
	r := &DiceRule{}
	r.On(GatherDice, r.baseDice)
	r.On(RollDice, r.roll)
	return r
}

func (r *DiceRule) baseDice(st world.State) []world.State {
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: SourceBaseRules, Value: 2}))
}

// roll branches st into one world per highest face. A pool never drops below
// one die.
func (r *DiceRule) roll(st world.State) []world.State {
	n := max(int(st.Sum(world.Named(world.ModDice))), 1)
	pmf := dice.HighestFace(n, DieSides)
	if st.Has(world.Named(RerollBelowAverage)) {
		pmf = dice.RerollBelowAverage(pmf)
	}

	out := make([]world.State, 0, len(pmf))
	for _, face := range dice.Keys(pmf) {
		if pmf[face] == 0 {
			continue
		}
		eff := world.Effect{Name: world.ModResult, Source: SourceResultDie, Value: float64(face)}
		out = append(out, st.Scale(pmf[face]).Add(eff))
	}
	return out
}

// AttackRule turns a margin of success into a hit or miss and, on a hit,
// into damage against the defender.
type AttackRule struct {
	rules.Base
}

func NewAttackRule() *AttackRule {
	r := &AttackRule{}
	r.On(ApplyHitMiss, r.hitMiss)
	r.On(CalcAttackDamage, r.attackDamage)
	r.On(ModAttackDamage, r.marginalHit)
	r.On(ApplyAttackDamage, r.applyAttackDamage)
	return r
}

// A zero margin is a hit.
func (r *AttackRule) hitMiss(st world.State) []world.State {
	if st.Sum(world.Named(world.MoS)) >= 0 {
		return rules.Same(st.Add(world.Flag(world.Hit, SourceBaseRules)))
	}
	return rules.Same(st.Add(world.Flag(world.Miss, SourceBaseRules)))
}

func (r *AttackRule) attackDamage(st world.State) []world.State {
	if !st.Has(world.Named(world.Hit)) {
		return rules.Same(st)
	}
	damage := st.Sum(world.Named(WeaponDamage)) +
		st.Sum(world.Named(world.MoS)) -
		st.Sum(world.Named(Armor))
	if damage == 0 {
		st = st.Add(world.Flag(MarginalHit, SourceBaseRules))
	}
	return rules.Same(st.Add(world.Effect{Name: AttackDamage, Source: SourceAttackDamage, Value: max(damage, 0)}))
}

// marginalHit resolves a pending marginal hit into two equally likely
// worlds, one of them taking a point of damage.
func (r *AttackRule) marginalHit(st world.State) []world.State {
	if !st.Has(world.Named(MarginalHit)) {
		return rules.Same(st)
	}
	st = st.Remove(world.Named(MarginalHit)).Scale(0.5)
	hit := st.Add(world.Effect{Name: AttackDamage, Source: SourceMarginalHit, Value: 1})
	return []world.State{st, hit}
}

func (r *AttackRule) applyAttackDamage(st world.State) []world.State {
	if st.Has(world.Named(world.Miss)) {
		return rules.Same(st)
	}
	for _, source := range DamageOrder {
		st = ApplyDamage(st, world.From(AttackDamage, source))
	}
	return rules.Same(st)
}

// AnalysisRule folds every kind of damage dealt into Damage effects, keeping
// the source, so one analysis covers them all.
type AnalysisRule struct {
	rules.Base
}

func NewAnalysisRule() *AnalysisRule {
	r := &AnalysisRule{}
	r.On(Cleanup, r.cleanup)
	return r
}

func (r *AnalysisRule) cleanup(st world.State) []world.State {
	dealt := world.AnyOf(AttackDamage, BonusDamage)
	for _, eff := range st.EffectsFunc(dealt) {
		st = st.Add(world.Effect{Name: Damage, Source: eff.Source, Value: eff.Value})
	}
	return rules.Same(st.RemoveFunc(dealt))
}
