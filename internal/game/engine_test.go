package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hgbdice/internal/dice"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

// fact adds fixed effects at one step.
type fact struct {
	rules.Base
}

func newFact(step rules.Step, effs ...world.Effect) *fact {
	c := &fact{}
	c.On(step, func(st world.State) []world.State {
		for _, e := range effs {
			st = st.Add(e)
		}
		return rules.Same(st)
	})
	return c
}

func result(v float64) *fact {
	return newFact(GatherResultBonuses, world.Effect{Name: world.ModResult, Source: "Test", Value: v})
}

func defenderStats(armor, hull, structure float64) *fact {
	return newFact(GatherModelData,
		world.Effect{Name: Armor, Source: "Armor", Value: armor},
		world.Effect{Name: world.Hull, Source: SourceHull, Value: hull},
		world.Effect{Name: world.Structure, Source: SourceStructure, Value: structure},
	)
}

func weapon(damage float64) *fact {
	return newFact(GatherModelData, world.Effect{Name: WeaponDamage, Source: "Weapon", Value: damage})
}

// diceless resolves rolls from result bonuses alone, so margins are exact.
func diceless() Option {
	return WithBaseRules(rules.NewEntity(rules.RoleRules, NewAttackRule(), NewAnalysisRule()))
}

func probOf(set world.Set, pred func(world.State) bool) float64 {
	var p float64
	for _, st := range set {
		if pred(st) {
			p += st.Prob
		}
	}
	return p
}

func TestCombine(t *testing.T) {
	att := world.Set{
		world.New(0.25, world.Effect{Name: world.ModResult, Source: SourceResultDie, Value: 3}),
		world.New(0.75, world.Effect{Name: world.ModResult, Source: SourceResultDie, Value: 4}),
	}
	def := world.Set{
		world.New(0.5, world.Effect{Name: world.ModResult, Source: SourceResultDie, Value: 3}),
		world.New(0.5,
			world.Effect{Name: world.ModResult, Source: SourceResultDie, Value: 2},
			world.Effect{Name: world.ModResult, Source: SourceSkill, Value: 1},
		),
	}

	out := Combine(att, def)
	require.Len(t, out, 2)
	assert.InDelta(t, 1.0, out.Total(), 1e-12)
	for _, st := range out {
		require.Len(t, st.All(), 1)
		switch st.Sum(world.Named(world.MoS)) {
		case 0:
			assert.InDelta(t, 0.25, st.Prob, 1e-12)
		case 1:
			assert.InDelta(t, 0.75, st.Prob, 1e-12)
		default:
			t.Errorf("Unexpected margin in %v", st)
		}
	}
}

func TestScenario_MarginalHit(t *testing.T) {
	att := rules.NewEntity(rules.RoleAttacker, result(2), weapon(1))
	def := rules.NewEntity(rules.RoleDefender, result(1), defenderStats(2, 5, 5))

	out := NewScenario(att, def, diceless()).Evaluate(context.Background())
	require.Len(t, out, 2)
	for _, st := range out {
		assert.InDelta(t, 0.5, st.Prob, 1e-12)
		assert.False(t, st.Has(world.Named(MarginalHit)))
		assert.Equal(t, 0.0, st.Sum(world.From(Damage, SourceAttackDamage)))
	}
	assert.InDelta(t, 0.5, probOf(out, func(st world.State) bool {
		return st.Sum(world.From(Damage, SourceMarginalHit)) == 1 && st.Sum(world.Named(world.Hull)) == 4
	}), 1e-12)
	assert.InDelta(t, 0.5, probOf(out, func(st world.State) bool {
		return st.Sum(world.Named(Damage)) == 0 && st.Sum(world.Named(world.Hull)) == 5
	}), 1e-12)
}

func TestScenario_DestroyedNotCrippled(t *testing.T) {
	att := rules.NewEntity(rules.RoleAttacker, result(0), weapon(5))
	def := rules.NewEntity(rules.RoleDefender, result(0), defenderStats(0, 1, 1))

	out := NewScenario(att, def, diceless()).Evaluate(context.Background())
	assert.InDelta(t, 1.0, out.Total(), 1e-12)
	assert.InDelta(t, 1.0, probOf(out, func(st world.State) bool { return st.Has(world.Named(Destroyed)) }), 1e-12)
	assert.Zero(t, probOf(out, func(st world.State) bool { return st.Has(world.Named(Crippled)) }))
	for _, st := range out {
		assert.Equal(t, 3.0, st.Sum(world.Named(Overdamage)))
		assert.Equal(t, 5.0, st.Sum(world.Named(Damage)))
	}
}

func TestScenario_Miss(t *testing.T) {
	att := rules.NewEntity(rules.RoleAttacker, result(1), weapon(8))
	def := rules.NewEntity(rules.RoleDefender, result(2), defenderStats(0, 3, 3))

	out := NewScenario(att, def, diceless()).Evaluate(context.Background())
	require.Len(t, out, 1)
	st := out[0]
	assert.True(t, st.Has(world.Named(world.Miss)))
	assert.False(t, st.Has(world.Named(world.Hit)))
	assert.False(t, st.Has(world.Named(Damage)))
	assert.Equal(t, 3.0, st.Sum(world.Named(world.Hull)))
}

// Two identical unmodified pools hit whenever the attacker ties or wins.
func TestScenario_SymmetricHitRate(t *testing.T) {
	att := rules.NewEntity(rules.RoleAttacker, weapon(1))
	def := rules.NewEntity(rules.RoleDefender, defenderStats(0, 10, 10))

	out := NewScenario(att, def, WithLogger(zaptest.NewLogger(t))).Evaluate(context.Background())
	assert.InDelta(t, 1.0, out.Total(), 1e-9)

	face := dice.HighestFace(2, DieSides)
	var tie float64
	for _, p := range face {
		tie += p * p
	}
	hit := probOf(out, func(st world.State) bool { return st.Has(world.Named(world.Hit)) })
	assert.InDelta(t, 0.5+0.5*tie, hit, 1e-9)
	assert.InDelta(t, 1-hit, probOf(out, func(st world.State) bool { return st.Has(world.Named(world.Miss)) }), 1e-9)
}

func TestScenario_RollsConserveMass(t *testing.T) {
	att := rules.NewEntity(rules.RoleAttacker,
		newFact(GatherDice, world.Effect{Name: world.ModDice, Source: "Test", Value: 1}),
	)
	def := rules.NewEntity(rules.RoleDefender,
		newFact(GatherDice, world.Effect{Name: world.ModDice, Source: "Test", Value: -5}),
	)

	a, d := NewScenario(att, def).Rolls(context.Background())
	assert.Len(t, a, DieSides)
	assert.Len(t, d, DieSides)
	assert.InDelta(t, 1.0, a.Total(), 1e-12)
	assert.InDelta(t, 1.0, d.Total(), 1e-12)

	// The defender's pool clamps to a single die.
	for _, st := range d {
		assert.InDelta(t, 1.0/DieSides, st.Prob, 1e-12)
	}
}

func TestScenario_RerollRaisesExpectation(t *testing.T) {
	plain := rules.NewEntity(rules.RoleAttacker)
	reroll := rules.NewEntity(rules.RoleAttacker, newFact(GatherDice, world.Flag(RerollBelowAverage, "Reroll")))
	def := rules.NewEntity(rules.RoleDefender)

	expected := func(set world.Set) float64 {
		var e float64
		for _, st := range set {
			e += st.Prob * st.Sum(world.From(world.ModResult, SourceResultDie))
		}
		return e
	}

	before, _ := NewScenario(plain, def).Rolls(context.Background())
	after, _ := NewScenario(reroll, def).Rolls(context.Background())
	assert.InDelta(t, 1.0, after.Total(), 1e-12)
	assert.Greater(t, expected(after), expected(before))
	assert.InDelta(t, dice.Expected(dice.RerollBelowAverage(dice.HighestFace(2, DieSides))), expected(after), 1e-12)
}

func TestScenario_SharedStepsReachBothSides(t *testing.T) {
	cover := world.Kind("Cover")
	att := rules.NewEntity(rules.RoleAttacker)
	def := rules.NewEntity(rules.RoleDefender, newFact(Initialize, world.Flag(cover, "Cover")))

	a, d := NewScenario(att, def).PreRolls(context.Background())
	require.Len(t, a, 1)
	require.Len(t, d, 1)
	assert.True(t, a[0].Has(world.Named(cover)))
	assert.True(t, d[0].Has(world.Named(cover)))
}

func TestScenario_Start(t *testing.T) {
	half := world.Kind("Half")
	start := world.Set{world.New(0.5), world.New(0.5, world.Flag(half, "Test"))}
	att := rules.NewEntity(rules.RoleAttacker)
	def := rules.NewEntity(rules.RoleDefender)

	a, _ := NewScenario(att, def, WithStart(start)).PreRolls(context.Background())
	assert.Len(t, a, 2)
	assert.InDelta(t, 1.0, a.Total(), 1e-12)
}

func TestScenario_Describe(t *testing.T) {
	att := rules.NewEntity(rules.RoleAttacker,
		newFact(GatherDice, world.Effect{Name: world.ModDice, Source: "Test", Value: 1}),
		result(1),
		newFact(GatherThresholdBonuses,
			world.Effect{Name: world.ModThreshold, Source: SourceSkill, Value: 4},
			world.Effect{Name: world.ModThreshold, Source: "Elevation", Value: -1},
		),
	)
	def := rules.NewEntity(rules.RoleDefender,
		newFact(GatherDice, world.Effect{Name: world.ModDice, Source: "Test", Value: -3}),
		result(-2),
		newFact(GatherThresholdBonuses, world.Effect{Name: world.ModThreshold, Source: SourceSkill, Value: 5}),
	)

	got := NewScenario(att, def).Describe(context.Background())
	assert.Equal(t, "Skill 4 3d6 +1R TN: 3", got.Attacker)
	assert.Equal(t, "Skill 5 1d6 -2R TN: 5", got.Defender)
}
