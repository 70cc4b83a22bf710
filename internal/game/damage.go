package game

import (
	"hgbdice/internal/dice"
	"hgbdice/internal/world"
)

// ApplyDamage applies the pending damage Effects selected by m to hull, then
// structure. Hull reaching 0 cripples the target; structure reaching 0
// destroys it and clears Crippled. Damage beyond structure is recorded as
// Overdamage. A destroyed target takes no further damage.
func ApplyDamage(st world.State, m world.Match) world.State {
	for _, eff := range st.Effects(m) {
		st = applyDamage(st, eff)
	}
	return st
}

func applyDamage(st world.State, eff world.Effect) world.State {
	if st.Has(world.Named(Destroyed)) {
		return st
	}
	damage := eff.Value
	hull := st.Sum(world.Named(world.Hull))
	structure := st.Sum(world.Named(world.Structure))

	hullDamage := min(damage, hull)
	hull -= hullDamage
	damage -= hullDamage
	structureDamage := min(damage, structure)
	structure -= structureDamage
	damage -= structureDamage

	st = st.Remove(world.Named(world.Hull)).
		Remove(world.Named(world.Structure)).
		Add(world.Effect{Name: world.Hull, Source: SourceHull, Value: hull}).
		Add(world.Effect{Name: world.Structure, Source: SourceStructure, Value: structure})

	switch {
	case structure == 0:
		st = st.Add(world.Flag(Destroyed, eff.Source)).Remove(world.Named(Crippled))
	case hull == 0 && !st.Has(world.Named(Crippled)):
		st = st.Add(world.Flag(Crippled, eff.Source))
	}

	if damage > 0 {
		st = st.Add(world.Effect{Name: Overdamage, Source: eff.Source, Value: damage})
	}
	return st
}

// ApplyDamageBranches adds a damage Effect of each rolled amount to st and
// applies it, one world per possible outcome of pmf. A zero outcome adds
// nothing.
func ApplyDamageBranches(st world.State, source string, pmf dice.PMF) []world.State {
	out := make([]world.State, 0, len(pmf))
	for _, v := range dice.Keys(pmf) {
		if pmf[v] == 0 {
			continue
		}
		branch := st.Scale(pmf[v])
		if v > 0 {
			eff := world.Effect{Name: BonusDamage, Source: source, Value: float64(v)}
			branch = applyDamage(branch.Add(eff), eff)
		}
		out = append(out, branch)
	}
	return out
}
