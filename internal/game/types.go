package game

import (
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

// Roll-phase steps, run before the attacker and defender results are compared.
const (
	Initialize             rules.Step = "INITIALIZE"
	CheckCover             rules.Step = "CHECK_COVER"
	GatherDice             rules.Step = "GATHER_DICE"
	GatherResultBonuses    rules.Step = "GATHER_RESULT_BONUSES"
	GatherThresholdBonuses rules.Step = "GATHER_THRESHOLD_BONUSES"
	RollDice               rules.Step = "ROLL_DICE"
	AddSkill               rules.Step = "ADD_SKILL"
)

// Resolve-phase steps, run on the combined margin-of-success worlds.
const (
	GatherModelData   rules.Step = "GATHER_MODEL_DATA"
	ApplyHitMiss      rules.Step = "APPLY_HIT_MISS"
	CalcAttackDamage  rules.Step = "CALC_ATTACK_DAMAGE"
	ModAttackDamage   rules.Step = "MOD_ATTACK_DAMAGE"
	ApplyAttackDamage rules.Step = "APPLY_ATTACK_DAMAGE"
	AddExtraEffects   rules.Step = "ADD_EXTRA_EFFECTS"
	ApplyExtraDamage  rules.Step = "APPLY_EXTRA_DAMAGE"
	EndOfRound        rules.Step = "END_OF_ROUND"
	Cleanup           rules.Step = "CLEANUP"
)

var (
	// SharedSteps run once over the starting worlds for every entity, so that
	// both sides' rolls see situational facts from either model.
	SharedSteps = []rules.Step{Initialize, CheckCover}
	// PreRollSteps run separately for each side.
	PreRollSteps = []rules.Step{GatherDice, GatherResultBonuses, GatherThresholdBonuses}
	// RollSteps turn pre-roll worlds into rolled results, per side.
	RollSteps = []rules.Step{RollDice, AddSkill}
	// ResolveSteps run on the combined worlds for rules, attacker, defender.
	ResolveSteps = []rules.Step{
		GatherModelData,
		ApplyHitMiss,
		CalcAttackDamage,
		ModAttackDamage,
		ApplyAttackDamage,
		AddExtraEffects,
		ApplyExtraDamage,
		EndOfRound,
		Cleanup,
	}
)

// Attack effects.
const (
	WeaponDamage world.Kind = "WeaponDamage"
	AttackDamage world.Kind = "AttackDamage"
	// MarginalHit is pending until ModAttackDamage splits it 50/50.
	MarginalHit world.Kind = "MarginalHit"
	BonusDamage world.Kind = "BonusDamage"
	Armor       world.Kind = "Armor"
)

// Status effects. The *Damage kinds are pending damage waiting to be rolled.
const (
	FireDamage      world.Kind = "FireDamage"
	HaywireDamage   world.Kind = "HaywireDamage"
	CorrosionDamage world.Kind = "CorrosionDamage"
	Haywired        world.Kind = "Haywired"
	Corrosion       world.Kind = "Corrosion"
	Crippled        world.Kind = "Crippled"
	Destroyed       world.Kind = "Destroyed"
)

// Analysis effects exist for statistics rather than rules.
const (
	Damage       world.Kind = "Damage"
	Overdamage   world.Kind = "Overdamage"
	DamageDenied world.Kind = "DamageDenied"
)

// RerollBelowAverage asks the roll to reroll results under the pool average.
const RerollBelowAverage world.Kind = "RerollBelowAverage"

// Effect sources owned by the base rules.
const (
	SourceBaseRules    = "Base Rules"
	SourceAttackDamage = "Attack Damage"
	SourceResultDie    = "Result Die"
	SourceSkill        = "Skill"
	SourceMarginalHit  = "Marginal Hit"
	SourceAP           = "AP"
	SourceHull         = "Hull"
	SourceStructure    = "Structure"
)

// DamageOrder is the order attack damage sources reach hull and structure.
var DamageOrder = []string{SourceAttackDamage, SourceMarginalHit, SourceAP}

// DieSides is the die every roll uses.
const DieSides = 6
