package scenario

import (
	"context"

	"hgbdice/internal/analysis"
	"hgbdice/internal/game"
)

// Outcome is everything one evaluation of a document produced.
type Outcome struct {
	Name    string            `json:"name"`
	Summary game.RollSummary  `json:"summary"`
	Results []analysis.Result `json:"results"`
	// Worlds is the number of distinct terminal worlds.
	Worlds int `json:"worlds"`
}

// Analyze builds d, evaluates it and runs its analyses.
func Analyze(ctx context.Context, d *Document, opts ...game.Option) (*Outcome, error) {
	list, err := d.AnalysisList()
	if err != nil {
		return nil, err
	}
	sc, err := d.Build(opts...)
	if err != nil {
		return nil, err
	}
	states := sc.Evaluate(ctx)
	return &Outcome{
		Name:    d.Name,
		Summary: sc.Describe(ctx),
		Results: analysis.RunAll(states, list),
		Worlds:  len(states),
	}, nil
}
