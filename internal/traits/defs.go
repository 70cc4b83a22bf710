package traits

import (
	"hgbdice/internal/game"
	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

var (
	attackerOnly = []rules.Role{rules.RoleAttacker}
	defenderOnly = []rules.Role{rules.RoleDefender}
	valueParam   = []Param{ParamValue}
	optionParam  = []Param{ParamOption}
)

func fact(kind world.Kind, source string) func(Spec) rules.Component {
	return func(Spec) rules.Component { return NewFact(kind, source, 1) }
}

func valueFact(kind world.Kind, source string) func(Spec) rules.Component {
	return func(s Spec) rules.Component { return NewFact(kind, source, float64(s.value())) }
}

func fixed(build func() rules.Component) func(Spec) rules.Component {
	return func(Spec) rules.Component { return build() }
}

func diceBonus(source string, value int) func(Spec) rules.Component {
	return func(Spec) rules.Component { return DiceBonus(source, value) }
}

// Model returns the catalog of traits a model can carry.
func Model() Catalog {
	return newCatalog(
		Trait{
			Name:        "Agile",
			Description: "Attacks with a margin of exactly 0 miss",
			Roles:       defenderOnly,
			build:       fixed(func() rules.Component { return NewAgile() }),
		},
		Trait{
			Name:        "Aircraft",
			Description: "Model type: aircraft",
			build:       fact(Aircraft, "Type"),
		},
		Trait{
			Name:        "ANN",
			Description: "-1 to the skill target number",
			build:       func(Spec) rules.Component { return ThresholdBonus("ANN", -1) },
		},
		Trait{
			Name:        "Armor",
			Description: "Subtracted from attack damage",
			Params:      valueParam,
			build:       valueFact(game.Armor, "Armor"),
		},
		Trait{
			Name:        "Brawl",
			Description: "Extra dice in melee",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return NewBrawl("Model Brawl", s.value()) },
		},
		Trait{
			Name:        "Cover",
			Description: "Partial or full cover grants a die",
			Params:      optionParam,
			Options:     CoverOptions,
			build:       func(s Spec) rules.Component { return NewCover(world.Kind(s.Option)) },
		},
		Trait{
			Name:        "Crippled",
			Description: "-1 die",
			build:       diceBonus("Crippled", -1),
		},
		Trait{
			Name:        "CustomDice",
			Description: "Any dice modifier",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return DiceBonus("Custom", s.value()) },
		},
		Trait{
			Name:        "CustomResult",
			Description: "Any result modifier",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return ResultBonus("Custom", s.value()) },
		},
		Trait{
			Name:        "CustomThreshold",
			Description: "Any target number modifier",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return ThresholdBonus("Custom", s.value()) },
		},
		Trait{
			Name:        "ECMDefense",
			Description: "+1 die",
			build:       diceBonus("ECM Defense", 1),
		},
		Trait{
			Name:        "Elevated",
			Description: "-1 to the attacker's target number",
			Roles:       attackerOnly,
			build:       func(Spec) rules.Component { return ThresholdBonus("Elevation", -1) },
		},
		Trait{
			Name:        "ElevatedVTOL",
			Description: "Elevated attacker; aircraft when defending",
			Excludes:    []string{"Elevated"},
			build:       fixed(func() rules.Component { return NewElevatedVTOL() }),
		},
		Trait{
			Name:        "Facing",
			Description: "Facing of the defender the attack comes from",
			Params:      optionParam,
			Options:     FacingOptions,
			build:       func(s Spec) rules.Component { return NewFacing(world.Kind(s.Option)) },
		},
		Trait{
			Name:        "FieldArmor",
			Description: "Damage reduced by 1, to a minimum of 1",
			Roles:       defenderOnly,
			build:       fixed(func() rules.Component { return NewFieldArmor() }),
		},
		Trait{
			Name:        "FireMission",
			Description: "The attack is a fire mission",
			build:       fact(FireMission, "Fire Mission"),
		},
		Trait{
			Name:        "Gear",
			Description: "Model type: gear",
			build:       fact(Gear, "Type"),
		},
		Trait{
			Name:        "Hull",
			Description: "Damage taken before structure",
			Params:      valueParam,
			build:       valueFact(world.Hull, game.SourceHull),
		},
		Trait{
			Name:        "Infantry",
			Description: "Model type: infantry; extra cover die, damage capped at 2",
			build:       fixed(func() rules.Component { return NewInfantry() }),
		},
		Trait{
			Name:        "Lumbering",
			Description: "No defense bonus at top speed",
			Roles:       defenderOnly,
			build:       fixed(func() rules.Component { return NewLumbering() }),
		},
		Trait{
			Name:        "Reroll",
			Description: "Reroll results below the pool average",
			Params:      optionParam,
			Options:     RerollOptions,
			build:       func(s Spec) rules.Component { return NewReroll(s.Option) },
		},
		Trait{
			Name:        "ResistCorrosion",
			Description: "Ignores corrosion damage",
			Roles:       defenderOnly,
			Excludes:    []string{"VulnCorrosion"},
			build:       fixed(func() rules.Component { return NewResistCorrosion() }),
		},
		Trait{
			Name:        "ResistFire",
			Description: "Ignores fire damage",
			Roles:       defenderOnly,
			Excludes:    []string{"VulnFire"},
			build:       fixed(func() rules.Component { return NewResistFire() }),
		},
		Trait{
			Name:        "ResistHaywire",
			Description: "Ignores haywire damage",
			Roles:       defenderOnly,
			Excludes:    []string{"VulnHaywire"},
			build:       fixed(func() rules.Component { return NewResistHaywire() }),
		},
		Trait{
			Name:        "Skill",
			Description: "Target number of the skill dice",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return NewSkill(s.value()) },
		},
		Trait{
			Name:        "Smoke",
			Description: "+1 die",
			build:       diceBonus("Smoke", 1),
		},
		Trait{
			Name:        "Speed",
			Description: "Speed the model moved at",
			Params:      optionParam,
			Options:     SpeedOptions,
			build:       func(s Spec) rules.Component { return NewSpeed(world.Kind(s.Option)) },
		},
		Trait{
			Name:        "Stable",
			Description: "+1 die at combat or top speed",
			Roles:       attackerOnly,
			build:       fixed(func() rules.Component { return NewStable() }),
		},
		Trait{
			Name:        "Structure",
			Description: "Damage taken after hull",
			Params:      valueParam,
			build:       valueFact(world.Structure, game.SourceStructure),
		},
		Trait{
			Name:        "Vehicle",
			Description: "Model type: vehicle",
			build:       fact(Vehicle, "Type"),
		},
		Trait{
			Name:        "VulnCorrosion",
			Description: "Takes corrosion damage in full",
			Roles:       defenderOnly,
			Excludes:    []string{"ResistCorrosion"},
			build:       fixed(func() rules.Component { return NewVulnCorrosion() }),
		},
		Trait{
			Name:        "VulnFire",
			Description: "Takes fire damage in full",
			Roles:       defenderOnly,
			Excludes:    []string{"ResistFire"},
			build:       fixed(func() rules.Component { return NewVulnFire() }),
		},
		Trait{
			Name:        "VulnHaywire",
			Description: "Takes haywire damage in full",
			Roles:       defenderOnly,
			Excludes:    []string{"ResistHaywire"},
			build:       fixed(func() rules.Component { return NewVulnHaywire() }),
		},
	)
}

// Weapon returns the catalog of traits an attacking weapon can carry.
func Weapon() Catalog {
	return newCatalog(
		Trait{
			Name:        "Damage",
			Description: "Weapon damage",
			Params:      valueParam,
			build:       valueFact(game.WeaponDamage, "Damage"),
		},
		Trait{
			Name:        "Range",
			Description: "Suboptimal range costs a die",
			Params:      optionParam,
			Options:     RangeOptions,
			build:       func(s Spec) rules.Component { return NewRange(world.Kind(s.Option)) },
		},
		Trait{
			Name:        "Method",
			Description: "Indirect attacks cost a die unless fire missions",
			Params:      optionParam,
			Options:     MethodOptions,
			build:       func(s Spec) rules.Component { return NewMethod(world.Kind(s.Option)) },
		},
		Trait{
			Name:        "Advanced",
			Description: "+1 result at optimal range",
			build:       fixed(func() rules.Component { return NewAdvanced() }),
		},
		Trait{
			Name:        "AESecondary",
			Description: "-1 die against secondary area targets",
			build:       diceBonus("AE Secondary Target", -1),
		},
		Trait{
			Name:        "AntiAir",
			Description: "+1 die against aircraft",
			build:       fixed(func() rules.Component { return NewAntiAir() }),
		},
		Trait{
			Name:        "AntiInfantry",
			Description: "Ignores the infantry damage cap",
			build:       fact(AntiInfantry, "AntiInfantry"),
		},
		Trait{
			Name:        "AP",
			Description: "Guaranteed damage on a hit",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return NewAP(s.value()) },
		},
		Trait{
			Name:        "Blast",
			Description: "Indirect attacks ignore partial cover",
			build:       fixed(func() rules.Component { return NewBlast() }),
		},
		Trait{
			Name:        "Brawl",
			Description: "Extra dice in melee",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return NewBrawl("Weapon Brawl", s.value()) },
		},
		Trait{
			Name:        "Burst",
			Description: "Extra dice",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return DiceBonus("Burst", s.value()) },
		},
		Trait{
			Name:        "Corrosion",
			Description: "Corrodes the target, rolling damage at the end of the round",
			build:       fixed(func() rules.Component { return NewCorrosion() }),
		},
		Trait{
			Name:        "Fire",
			Description: "Sets the target on fire for value dice of damage",
			Params:      valueParam,
			build:       func(s Spec) rules.Component { return NewFire(s.value()) },
		},
		Trait{
			Name:        "FireMission",
			Description: "The attack is a fire mission",
			build:       fact(FireMission, "Fire Mission"),
		},
		Trait{
			Name:        "Focus",
			Description: "+1 die",
			build:       diceBonus("Focus", 1),
		},
		Trait{
			Name:        "Frag",
			Description: "+2 dice",
			build:       diceBonus("Frag", 2),
		},
		Trait{
			Name:        "Guided",
			Description: "+1 die to fire missions with a target designator",
			build:       fixed(func() rules.Component { return NewGuided() }),
		},
		Trait{
			Name:        "Haywire",
			Description: "Haywires the target for a die of damage",
			build:       fixed(func() rules.Component { return NewHaywire() }),
		},
		Trait{
			Name:        "Link",
			Description: "+1 die",
			build:       diceBonus("Link", 1),
		},
		Trait{
			Name:        "Precise",
			Description: "+1 result",
			build:       func(Spec) rules.Component { return ResultBonus("Precise", 1) },
		},
		Trait{
			Name:        "Splitting",
			Description: "-1 die",
			build:       diceBonus("Split", -1),
		},
		Trait{
			Name:        "TD",
			Description: "A target designator marks the target",
			build:       fact(TD, "TD"),
		},
	)
}
