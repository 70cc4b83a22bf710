package analysis

import (
	"sort"

	"hgbdice/internal/game"
	"hgbdice/internal/world"
)

// Type says how an analysis is read and plotted.
type Type string

const (
	// Bool analyses measure whether an effect happened at all.
	Bool Type = "bool"
	// Range analyses measure how much of something happened.
	Range Type = "range"
)

// SourceAll names the breakdown over every source.
const SourceAll = "All"

// Analysis describes one measurable quantity.
type Analysis struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        Type        `json:"type"`
	Match       world.Match `json:"-"`
	// SplitBySource adds a breakdown for every source the effect comes from.
	SplitBySource bool `json:"split_by_source"`
	// ShowIfMissing keeps the result even when the effect never happens.
	ShowIfMissing bool `json:"show_if_missing"`
}

// SourceResult holds the distributions of one analysis, limited to one
// source or, for SourceAll, to none.
type SourceResult struct {
	Source            string  `json:"source"`
	Totals            PMF     `json:"totals"`
	Average           float64 `json:"average"`
	NormalizedTotals  PMF     `json:"normalized_totals"`
	NormalizedAverage float64 `json:"normalized_average"`
	// MinTotals is the "at least" distribution, for Range analyses only.
	MinTotals PMF `json:"min_totals,omitempty"`
}

type Result struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        Type           `json:"type"`
	Sources     []SourceResult `json:"sources"`
}

// All returns the breakdown over every source.
func (r Result) All() SourceResult {
	s, _ := r.Source(SourceAll)
	return s
}

// Source returns the breakdown for one source.
func (r Result) Source(name string) (SourceResult, bool) {
	for _, s := range r.Sources {
		if s.Source == name {
			return s, true
		}
	}
	return SourceResult{}, false
}

// Run analyzes states for a. The "All" breakdown comes first, followed by
// one per source in name order when a.SplitBySource is set. Every breakdown
// is normalized with the overall success probability so sources stay
// comparable with each other.
func Run(states world.Set, a Analysis) Result {
	res := Result{Name: a.Name, Description: a.Description, Type: a.Type}

	totals := GroupBy(states, EffectKey(a.Match))
	scale := successScale(totals)
	res.Sources = append(res.Sources, sourceResult(SourceAll, a.Type, totals, scale))

	if !a.SplitBySource {
		return res
	}
	for _, src := range sources(states, a.Match) {
		m := a.Match
		m.Source = src
		res.Sources = append(res.Sources, sourceResult(src, a.Type, GroupBy(states, EffectKey(m)), scale))
	}
	return res
}

func sourceResult(source string, typ Type, totals PMF, scale float64) SourceResult {
	normalized := Normalize(totals, scale)
	out := SourceResult{
		Source:            source,
		Totals:            totals,
		Average:           Average(totals),
		NormalizedTotals:  normalized,
		NormalizedAverage: Average(normalized),
	}
	if typ == Range {
		out.MinTotals = AtLeast(totals)
	}
	return out
}

func sources(states world.Set, m world.Match) []string {
	seen := make(map[string]struct{})
	for _, st := range states {
		for _, e := range st.Effects(m) {
			seen[e.Source] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Occurs reports whether any world holds an Effect matching m.
func Occurs(states world.Set, m world.Match) bool {
	for _, st := range states {
		if st.Has(m) {
			return true
		}
	}
	return false
}

// RunAll runs every analysis over states, in order, leaving out analyses of
// effects that never happen unless they ask to be shown anyway.
func RunAll(states world.Set, analyses []Analysis) []Result {
	out := make([]Result, 0, len(analyses))
	for _, a := range analyses {
		if !a.ShowIfMissing && !Occurs(states, a.Match) {
			continue
		}
		out = append(out, Run(states, a))
	}
	return out
}

// Basic returns the analyses every attack is worth looking at.
func Basic() []Analysis {
	return []Analysis{
		{
			Name:          "MoS",
			Description:   "Margin of Success",
			Type:          Range,
			Match:         world.Named(world.MoS),
			ShowIfMissing: true,
		},
		{
			Name:          "Hit",
			Description:   "Hit Rate",
			Type:          Bool,
			Match:         world.Named(world.Hit),
			ShowIfMissing: true,
		},
		{
			Name:          "Miss",
			Description:   "Miss Rate (including Agile if present)",
			Type:          Bool,
			Match:         world.Named(world.Miss),
			SplitBySource: true,
			ShowIfMissing: true,
		},
		{
			Name:          "Damage",
			Description:   "Total damage dealt",
			Type:          Range,
			Match:         world.Named(game.Damage),
			SplitBySource: true,
			ShowIfMissing: true,
		},
		{
			Name:          "Damage Denied",
			Description:   "Damage prevented by traits",
			Type:          Range,
			Match:         world.Named(game.DamageDenied),
			SplitBySource: true,
		},
		{
			Name:          "Overdamage",
			Description:   "Damage dealt in excess of H/S",
			Type:          Range,
			Match:         world.Named(game.Overdamage),
			SplitBySource: true,
		},
	}
}

// Status returns the analyses of lasting effects on the defender.
func Status() []Analysis {
	return []Analysis{
		{
			Name:          "Crippled",
			Description:   "Defender crippled",
			Type:          Bool,
			Match:         world.Named(game.Crippled),
			SplitBySource: true,
		},
		{
			Name:          "Destroyed",
			Description:   "Defender destroyed",
			Type:          Bool,
			Match:         world.Named(game.Destroyed),
			SplitBySource: true,
		},
		{
			Name:        "Haywired",
			Description: "Defender Haywired",
			Type:        Bool,
			Match:       world.Named(game.Haywired),
		},
		{
			Name:        "Corrosion",
			Description: "Defender has Corrosion",
			Type:        Bool,
			Match:       world.Named(game.Corrosion),
		},
	}
}

// All returns Basic followed by Status.
func All() []Analysis {
	return append(Basic(), Status()...)
}

// Lookup finds an analysis of All by name.
func Lookup(name string) (Analysis, bool) {
	for _, a := range All() {
		if a.Name == name {
			return a, true
		}
	}
	return Analysis{}, false
}
