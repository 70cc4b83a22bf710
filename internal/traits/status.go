package traits

import (
	"hgbdice/internal/dice"
	"hgbdice/internal/game"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

// Status damage rolls a die per point of pending damage; each 4+ deals one.
const statusThreshold = 4

func statusDamage(n float64) dice.PMF {
	return dice.ThresholdCount(int(n), game.DieSides, statusThreshold)
}

// StatusWeapon leaves pending damage on a defender it hits and later rolls
// whatever pending damage the defender did not deal with.
type StatusWeapon struct {
	rules.Base
	source  string
	status  world.Kind
	pending world.Kind
	value   int
}

func newStatusWeapon(source string, status, pending world.Kind, value int, roll rules.Step) *StatusWeapon {
	c := &StatusWeapon{source: source, status: status, pending: pending, value: value}
	c.On(game.AddExtraEffects, c.afflict)
	c.On(roll, c.roll)
	return c
}

// NewFire sets the defender on fire for value dice of damage, rolled straight
// after the attack.
func NewFire(value int) *StatusWeapon {
	return newStatusWeapon("Fire", "", game.FireDamage, value, game.ApplyExtraDamage)
}

// NewHaywire haywires the defender and rolls a die of damage after the attack.
func NewHaywire() *StatusWeapon {
	return newStatusWeapon("Haywire", game.Haywired, game.HaywireDamage, 1, game.ApplyExtraDamage)
}

// NewCorrosion corrodes the defender and rolls a die of damage at the end of
// the round.
func NewCorrosion() *StatusWeapon {
	return newStatusWeapon("Corrosion", game.Corrosion, game.CorrosionDamage, 1, game.EndOfRound)
}

func (c *StatusWeapon) afflict(st world.State) []world.State {
	if flag(st, world.Miss, game.Destroyed) {
		return rules.Same(st)
	}
	if c.status != "" {
		st = st.Add(world.Flag(c.status, c.source))
	}
	return rules.Same(st.Add(world.Effect{Name: c.pending, Source: c.source, Value: float64(c.value)}))
}

func (c *StatusWeapon) roll(st world.State) []world.State {
	if st.Has(world.Named(game.Destroyed)) {
		return rules.Same(st.Remove(world.Named(c.pending)))
	}
	n := st.Sum(world.Named(c.pending))
	st = st.Remove(world.Named(c.pending))
	return game.ApplyDamageBranches(st, c.source, statusDamage(n))
}

// Vulnerability takes pending status damage in full instead of rolling it.
type Vulnerability struct {
	rules.Base
	source  string
	pending world.Kind
}

func newVulnerability(source string, pending world.Kind) *Vulnerability {
	c := &Vulnerability{source: source, pending: pending}
	c.On(game.AddExtraEffects, c.take)
	return c
}

func NewVulnFire() *Vulnerability      { return newVulnerability("Fire", game.FireDamage) }
func NewVulnHaywire() *Vulnerability   { return newVulnerability("Haywire", game.HaywireDamage) }
func NewVulnCorrosion() *Vulnerability { return newVulnerability("Corrosion", game.CorrosionDamage) }

func (c *Vulnerability) take(st world.State) []world.State {
	if st.Has(world.Named(game.Destroyed)) {
		return rules.Same(st.Remove(world.Named(c.pending)))
	}
	n := st.Sum(world.Named(c.pending))
	if n == 0 {
		return rules.Same(st)
	}
	st = st.Remove(world.Named(c.pending))
	eff := world.Effect{Name: game.BonusDamage, Source: c.source, Value: n}
	return rules.Same(game.ApplyDamage(st.Add(eff), world.From(game.BonusDamage, c.source)))
}

// Resistance shrugs off pending status damage. Damage denied is recorded as
// half a point, or for fire as the damage the roll would have dealt on
// average, capped by what the defender had left.
type Resistance struct {
	rules.Base
	source  string
	pending world.Kind
}

func newResistance(source string, pending world.Kind) *Resistance {
	c := &Resistance{source: source, pending: pending}
	c.On(game.AddExtraEffects, c.resist)
	return c
}

func NewResistFire() *Resistance      { return newResistance("Resist Fire", game.FireDamage) }
func NewResistHaywire() *Resistance   { return newResistance("Resist Haywire", game.HaywireDamage) }
func NewResistCorrosion() *Resistance { return newResistance("Resist Corrosion", game.CorrosionDamage) }

func (c *Resistance) resist(st world.State) []world.State {
	if !st.Has(world.Named(c.pending)) {
		return rules.Same(st)
	}
	denied := 0.5
	if c.pending == game.FireDamage {
		health := st.Sum(world.Named(world.Hull)) + st.Sum(world.Named(world.Structure))
		pmf := statusDamage(st.Sum(world.Named(c.pending)))
		denied = 0
		for _, k := range dice.Keys(pmf) {
			denied += pmf[k] * min(float64(k), health)
		}
	}
	st = st.Remove(world.Named(c.pending))
	return rules.Same(st.Add(world.Effect{Name: game.DamageDenied, Source: c.source, Value: denied}))
}
