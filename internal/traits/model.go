package traits

import (
	"hgbdice/internal/dice"
	"hgbdice/internal/game"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

func flag(st world.State, kinds ...world.Kind) bool {
	for _, k := range kinds {
		if st.Has(world.Named(k)) {
			return true
		}
	}
	return false
}

// Agile turns a zero-margin hit into a miss.
type Agile struct{ rules.Base }

func NewAgile() *Agile {
	c := &Agile{}
	c.On(game.ApplyHitMiss, c.dodge)
	return c
}

func (c *Agile) dodge(st world.State) []world.State {
	if st.Sum(world.Named(world.MoS)) != 0 {
		return rules.Same(st)
	}
	return rules.Same(st.Remove(world.Named(world.Hit)).Add(world.Flag(world.Miss, "Agile")))
}

// Brawl adds dice to melee attacks.
type Brawl struct {
	rules.Base
	source string
	value  int
}

func NewBrawl(source string, value int) *Brawl {
	c := &Brawl{source: source, value: value}
	c.On(game.GatherDice, c.brawl)
	return c
}

func (c *Brawl) brawl(st world.State) []world.State {
	if !st.Has(world.Named(Melee)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: c.source, Value: float64(c.value)}))
}

// Cover grants the defender a die when in partial or full cover.
type Cover struct {
	rules.Base
	amount world.Kind
}

func NewCover(amount world.Kind) *Cover {
	c := &Cover{amount: amount}
	c.On(game.Initialize, c.init)
	c.On(game.GatherDice, c.cover)
	return c
}

func (c *Cover) init(st world.State) []world.State {
	return rules.Same(st.Add(world.Flag(c.amount, "Cover")))
}

func (c *Cover) cover(st world.State) []world.State {
	if !flag(st, Partial, Full) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "Cover", Value: 1}))
}

// Facing gives attacks from the rear a bonus: two dice against vehicles,
// one against anything but infantry.
type Facing struct {
	rules.Base
	facing world.Kind
}

func NewFacing(facing world.Kind) *Facing {
	c := &Facing{facing: facing}
	c.On(game.GatherDice, c.dice)
	return c
}

func (c *Facing) dice(st world.State) []world.State {
	if c.facing != Rear || st.Has(world.Named(Infantry)) {
		return rules.Same(st)
	}
	bonus := 1.0
	if st.Has(world.Named(Vehicle)) {
		bonus = 2
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "Facing " + string(c.facing), Value: bonus}))
}

// ElevatedVTOL makes a defender count as an aircraft and lowers the target
// number of an attacker.
type ElevatedVTOL struct{ rules.Base }

func NewElevatedVTOL() *ElevatedVTOL {
	c := &ElevatedVTOL{}
	c.On(game.Initialize, c.aircraft)
	c.On(game.GatherModelData, c.aircraft)
	c.On(game.GatherThresholdBonuses, c.elevated)
	return c
}

func (c *ElevatedVTOL) aircraft(st world.State) []world.State {
	if c.Role() != rules.RoleDefender {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Flag(Aircraft, "Elevated VTOL")))
}

func (c *ElevatedVTOL) elevated(st world.State) []world.State {
	if c.Role() != rules.RoleAttacker {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModThreshold, Source: "Elevated VTOL", Value: -1}))
}

// FieldArmor reduces attack damage by one, down to a minimum of one. AP
// damage is reduced first.
type FieldArmor struct{ rules.Base }

func NewFieldArmor() *FieldArmor {
	c := &FieldArmor{}
	c.On(game.ModAttackDamage, c.reduce)
	return c
}

func (c *FieldArmor) reduce(st world.State) []world.State {
	if st.Has(world.Named(world.Miss)) {
		return rules.Same(st)
	}
	ap := st.Sum(world.From(game.AttackDamage, game.SourceAP))
	attack := st.SumFunc(func(e world.Effect) bool {
		return e.Name == game.AttackDamage && e.Source != game.SourceAP
	})
	if attack+ap <= 1 {
		return rules.Same(st)
	}

	st = st.Add(world.Effect{Name: game.DamageDenied, Source: "Field Armor", Value: 1})
	if ap > 0 {
		st = replaceDamage(st, game.SourceAP, ap-1)
	} else {
		st = replaceDamage(st, game.SourceAttackDamage, attack-1)
	}
	return rules.Same(st)
}

// replaceDamage swaps the attack damage from source for value. A source left
// with no AP damage is dropped; base damage is kept at zero.
func replaceDamage(st world.State, source string, value float64) world.State {
	st = st.Remove(world.From(game.AttackDamage, source))
	if value <= 0 && source == game.SourceAP {
		return st
	}
	return st.Add(world.Effect{Name: game.AttackDamage, Source: source, Value: value})
}

// InfantryModel marks the model as infantry, adds a die in cover and caps
// attack damage at 2 unless the weapon is anti-infantry.
type InfantryModel struct{ rules.Base }

func NewInfantry() *InfantryModel {
	c := &InfantryModel{}
	c.On(game.Initialize, c.kind)
	c.On(game.GatherModelData, c.kind)
	c.On(game.GatherDice, c.cover)
	c.On(game.CalcAttackDamage, c.capDamage)
	return c
}

func (c *InfantryModel) kind(st world.State) []world.State {
	return rules.Same(st.Add(world.Flag(Infantry, "Type")))
}

func (c *InfantryModel) cover(st world.State) []world.State {
	if !flag(st, Partial, Full) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "Infantry Cover", Value: 1}))
}

func (c *InfantryModel) capDamage(st world.State) []world.State {
	if flag(st, world.Miss, AntiInfantry) {
		return rules.Same(st)
	}
	attack := st.Sum(world.From(game.AttackDamage, game.SourceAttackDamage))
	ap := st.Sum(world.From(game.AttackDamage, game.SourceAP))
	drop := attack + ap - 2
	if drop <= 0 {
		return rules.Same(st)
	}

	st = st.Add(world.Effect{Name: game.DamageDenied, Source: "Infantry", Value: drop})
	apDrop := min(drop, ap)
	drop -= apDrop
	if apDrop > 0 {
		st = replaceDamage(st, game.SourceAP, ap-apDrop)
	}
	if drop > 0 {
		st = replaceDamage(st, game.SourceAttackDamage, attack-drop)
	}
	return rules.Same(st)
}

// Lumbering cancels the defense bonus of moving at top speed.
type Lumbering struct{ rules.Base }

func NewLumbering() *Lumbering {
	c := &Lumbering{}
	c.On(game.GatherDice, c.lumber)
	return c
}

func (c *Lumbering) lumber(st world.State) []world.State {
	if !st.Has(world.From(Top, string(rules.RoleDefender))) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "Lumbering", Value: -1}))
}

// Reroll lets a roll below the pool's average be rolled again.
type Reroll struct {
	rules.Base
	rule string
}

func NewReroll(rule string) *Reroll {
	c := &Reroll{rule: rule}
	c.On(game.GatherDice, c.reroll)
	return c
}

func (c *Reroll) reroll(st world.State) []world.State {
	if c.rule != BelowAverage {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Flag(game.RerollBelowAverage, "Reroll")))
}

// Speed records how fast the model moves and adjusts its dice: attackers
// shoot worse on the move and better braced, defenders the other way round.
type Speed struct {
	rules.Base
	speed world.Kind
}

func NewSpeed(speed world.Kind) *Speed {
	c := &Speed{speed: speed}
	c.On(game.Initialize, c.record)
	c.On(game.GatherDice, c.dice)
	return c
}

func (c *Speed) record(st world.State) []world.State {
	return rules.Same(st.Add(world.Flag(c.speed, string(c.Role()))))
}

func (c *Speed) dice(st world.State) []world.State {
	var mod float64
	switch c.Role() {
	case rules.RoleAttacker:
		switch c.speed {
		case Top, Immobilized:
			mod = -1
		case Braced:
			mod = 1
		}
	case rules.RoleDefender:
		switch c.speed {
		case Braced, Immobilized:
			mod = -1
		case Top:
			mod = 1
		}
	}
	if mod == 0 {
		return rules.Same(st)
	}
	source := string(c.Role()) + " " + string(c.speed) + " Speed"
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: source, Value: mod}))
}

// Skill sets the target number of the roll and, once the result die is
// known, adds one to the result for every other die meeting it.
type Skill struct {
	rules.Base
	value int
}

func NewSkill(value int) *Skill {
	c := &Skill{value: value}
	c.On(game.GatherThresholdBonuses, c.threshold)
	c.On(game.AddSkill, c.bonus)
	return c
}

func (c *Skill) threshold(st world.State) []world.State {
	return rules.Same(st.Add(world.Effect{Name: world.ModThreshold, Source: game.SourceSkill, Value: float64(c.value)}))
}

// The other dice can show no more than the result die, so it stands in for
// their number of sides.
func (c *Skill) bonus(st world.State) []world.State {
	n := int(st.Sum(world.Named(world.ModDice))) - 1
	sides := int(st.Sum(world.From(world.ModResult, game.SourceResultDie)))
	tn := int(st.Sum(world.Named(world.ModThreshold)))

	pmf := dice.ThresholdCount(n, sides, tn)
	out := make([]world.State, 0, len(pmf))
	for _, k := range dice.Keys(pmf) {
		if pmf[k] == 0 {
			continue
		}
		eff := world.Effect{Name: world.ModResult, Source: game.SourceSkill, Value: float64(k)}
		out = append(out, st.Scale(pmf[k]).Add(eff))
	}
	return out
}

// Stable grants an attacker moving at combat or top speed an extra die.
type Stable struct{ rules.Base }

func NewStable() *Stable {
	c := &Stable{}
	c.On(game.GatherDice, c.stable)
	return c
}

func (c *Stable) stable(st world.State) []world.State {
	attacker := string(rules.RoleAttacker)
	if !st.Has(world.From(Combat, attacker)) && !st.Has(world.From(Top, attacker)) {
		return rules.Same(st)
	}
	return rules.Same(st.Add(world.Effect{Name: world.ModDice, Source: "Stable", Value: 1}))
}
