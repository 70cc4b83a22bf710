package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hgbdice/internal/dice"
	"hgbdice/internal/world"
)

func target(hull, structure float64, effs ...world.Effect) world.State {
	st := world.New(1,
		world.Effect{Name: world.Hull, Source: SourceHull, Value: hull},
		world.Effect{Name: world.Structure, Source: SourceStructure, Value: structure},
	)
	for _, e := range effs {
		st = st.Add(e)
	}
	return st
}

func TestApplyDamage_HullFirst(t *testing.T) {
	st := target(3, 2, world.Effect{Name: AttackDamage, Source: SourceAttackDamage, Value: 2})
	st = ApplyDamage(st, world.From(AttackDamage, SourceAttackDamage))

	assert.Equal(t, 1.0, st.Sum(world.Named(world.Hull)))
	assert.Equal(t, 2.0, st.Sum(world.Named(world.Structure)))
	assert.False(t, st.Has(world.Named(Crippled)))
	assert.False(t, st.Has(world.Named(Overdamage)))
}

func TestApplyDamage_CrippledAtZeroHull(t *testing.T) {
	st := target(2, 2, world.Effect{Name: AttackDamage, Source: SourceAttackDamage, Value: 2})
	st = ApplyDamage(st, world.From(AttackDamage, SourceAttackDamage))

	assert.Equal(t, 0.0, st.Sum(world.Named(world.Hull)))
	assert.Equal(t, 2.0, st.Sum(world.Named(world.Structure)))
	assert.True(t, st.Has(world.From(Crippled, SourceAttackDamage)))
	assert.False(t, st.Has(world.Named(Destroyed)))
}

func TestApplyDamage_DestroyedClearsCrippled(t *testing.T) {
	st := target(1, 2,
		world.Effect{Name: AttackDamage, Source: SourceAttackDamage, Value: 1},
		world.Effect{Name: AttackDamage, Source: SourceAP, Value: 4},
	)
	st = ApplyDamage(st, world.From(AttackDamage, SourceAttackDamage))
	require.True(t, st.Has(world.Named(Crippled)))

	st = ApplyDamage(st, world.From(AttackDamage, SourceAP))
	assert.True(t, st.Has(world.From(Destroyed, SourceAP)))
	assert.False(t, st.Has(world.Named(Crippled)))
	assert.Equal(t, 2.0, st.Sum(world.From(Overdamage, SourceAP)))
}

func TestApplyDamage_NoopOnceDestroyed(t *testing.T) {
	st := target(0, 0,
		world.Flag(Destroyed, SourceBaseRules),
		world.Effect{Name: BonusDamage, Source: "Fire", Value: 3},
	)
	out := ApplyDamage(st, world.Named(BonusDamage))
	assert.Equal(t, st.Key(), out.Key())
}

func TestApplyDamageBranches(t *testing.T) {
	st := target(1, 1).Scale(0.5)
	pmf := dice.ThresholdCount(2, DieSides, 4)

	out := ApplyDamageBranches(st, "Fire", pmf)
	require.Len(t, out, 3)
	set := world.Merge(out...)
	assert.InDelta(t, 0.5, set.Total(), 1e-12)

	for _, b := range out {
		switch b.Sum(world.From(BonusDamage, "Fire")) {
		case 0:
			assert.InDelta(t, 0.5*pmf[0], b.Prob, 1e-12)
			assert.Equal(t, 1.0, b.Sum(world.Named(world.Hull)))
		case 1:
			assert.InDelta(t, 0.5*pmf[1], b.Prob, 1e-12)
			assert.True(t, b.Has(world.Named(Crippled)))
		case 2:
			assert.InDelta(t, 0.5*pmf[2], b.Prob, 1e-12)
			assert.True(t, b.Has(world.From(Destroyed, "Fire")))
		}
	}
}

func TestApplyDamageBranches_SkipsImpossibleOutcomes(t *testing.T) {
	st := target(2, 2)
	pmf := dice.ThresholdCount(2, DieSides, 1)
	require.Equal(t, 0.0, pmf[0])

	out := ApplyDamageBranches(st, "Fire", pmf)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Prob)
	assert.Equal(t, 2.0, out[0].Sum(world.From(BonusDamage, "Fire")))
}
