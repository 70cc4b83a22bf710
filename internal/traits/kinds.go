package traits

import "hgbdice/internal/world"

// Situational facts traits record for each other during the roll phase.
const (
	Optimal    world.Kind = "Optimal"
	Suboptimal world.Kind = "Suboptimal"

	Direct   world.Kind = "Direct"
	Indirect world.Kind = "Indirect"
	Melee    world.Kind = "Melee"

	// Speed facts are sourced by the role of the model moving at that speed.
	Combat      world.Kind = "Combat"
	Top         world.Kind = "Top"
	Braced      world.Kind = "Braced"
	Immobilized world.Kind = "Immobilized"

	Open    world.Kind = "Open"
	Partial world.Kind = "Partial"
	Full    world.Kind = "Full"

	Front world.Kind = "Front"
	Rear  world.Kind = "Rear"
)

// Model types.
const (
	Gear     world.Kind = "Gear"
	Vehicle  world.Kind = "Vehicle"
	Infantry world.Kind = "Infantry"
	Aircraft world.Kind = "Aircraft"
)

// Weapon facts other traits react to.
const (
	FireMission  world.Kind = "FireMission"
	TD           world.Kind = "TD"
	AntiInfantry world.Kind = "AntiInfantry"
)

// Reroll rules.
const (
	Never        = "Never"
	BelowAverage = "BelowAverage"
)

// Option values accepted by traits taking an option.
var (
	RangeOptions  = []string{string(Optimal), string(Suboptimal)}
	MethodOptions = []string{string(Direct), string(Indirect), string(Melee)}
	SpeedOptions  = []string{string(Combat), string(Top), string(Braced), string(Immobilized)}
	CoverOptions  = []string{string(Open), string(Partial), string(Full)}
	FacingOptions = []string{string(Front), string(Rear)}
	RerollOptions = []string{Never, BelowAverage}
)
