package game

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"hgbdice/internal/rules"
	"hgbdice/internal/world"
)

var tracer = otel.Tracer("hgbdice/internal/game")

// Scenario resolves one attack of attacker against defender into the full set
// of possible outcomes.
type Scenario struct {
	attacker *rules.Entity
	defender *rules.Entity
	base     *rules.Entity
	start    world.Set
	log      *zap.Logger
}

type Option func(*Scenario)

// WithBaseRules replaces BaseRules(). The replacement is responsible for
// rolling dice.
func WithBaseRules(e *rules.Entity) Option {
	return func(s *Scenario) { s.base = e }
}

// WithStart seeds resolution with set instead of a single certain world.
func WithStart(set world.Set) Option {
	return func(s *Scenario) { s.start = set }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Scenario) {
		if l != nil {
			s.log = l
		}
	}
}

func NewScenario(attacker, defender *rules.Entity, opts ...Option) *Scenario {
	s := &Scenario{
		attacker: attacker,
		defender: defender,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.base == nil {
		s.base = BaseRules()
	}
	if s.start == nil {
		s.start = world.Start()
	}
	return s
}

// PreRolls returns each side's worlds after every modifier is gathered and
// before any die is rolled.
func (s *Scenario) PreRolls(ctx context.Context) (att, def world.Set) {
	_, span := tracer.Start(ctx, "game.PreRolls")
	defer span.End()

	shared := s.run("shared", s.start, SharedSteps, s.base, s.attacker, s.defender)
	att = s.run("attacker", shared, PreRollSteps, s.base, s.attacker)
	def = s.run("defender", shared, PreRollSteps, s.base, s.defender)
	span.SetAttributes(attribute.Int("attacker.worlds", len(att)), attribute.Int("defender.worlds", len(def)))
	return att, def
}

// Rolls returns the independent rolled results of each side.
func (s *Scenario) Rolls(ctx context.Context) (att, def world.Set) {
	ctx, span := tracer.Start(ctx, "game.Rolls")
	defer span.End()

	att, def = s.PreRolls(ctx)
	att = s.run("attacker", att, RollSteps, s.base, s.attacker)
	def = s.run("defender", def, RollSteps, s.base, s.defender)
	span.SetAttributes(attribute.Int("attacker.worlds", len(att)), attribute.Int("defender.worlds", len(def)))
	return att, def
}

// Combine pairs every attacker result with every defender result. Each
// distinct margin of success becomes one fresh world holding only its MoS.
func Combine(att, def world.Set) world.Set {
	margins := make(map[float64]float64)
	for _, a := range att {
		ar := a.Sum(world.Named(world.ModResult))
		for _, d := range def {
			margins[ar-d.Sum(world.Named(world.ModResult))] += a.Prob * d.Prob
		}
	}
	out := make([]world.State, 0, len(margins))
	for mos, p := range margins {
		out = append(out, world.New(p, world.Effect{Name: world.MoS, Source: SourceBaseRules, Value: mos}))
	}
	return world.Merge(out...)
}

// Evaluate runs the whole attack and returns the terminal worlds.
func (s *Scenario) Evaluate(ctx context.Context) world.Set {
	ctx, span := tracer.Start(ctx, "game.Evaluate")
	defer span.End()

	att, def := s.Rolls(ctx)
	set := Combine(att, def)
	s.log.Debug("combined rolls",
		zap.Int("attacker", len(att)),
		zap.Int("defender", len(def)),
		zap.Int("margins", len(set)),
	)

	set = s.resolve(ctx, set)
	span.SetAttributes(attribute.Int("worlds", len(set)))
	return set
}

func (s *Scenario) resolve(ctx context.Context, set world.Set) world.Set {
	_, span := tracer.Start(ctx, "game.Resolve", trace.WithAttributes(attribute.Int("margins", len(set))))
	defer span.End()
	return s.run("resolve", set, ResolveSteps, s.base, s.attacker, s.defender)
}

func (s *Scenario) run(phase string, set world.Set, steps []rules.Step, entities ...*rules.Entity) world.Set {
	for _, step := range steps {
		for _, e := range entities {
			set = e.DispatchSet(step, set)
		}
		s.log.Debug("step",
			zap.String("phase", phase),
			zap.String("step", string(step)),
			zap.Int("worlds", len(set)),
		)
	}
	return set
}

// RollSummary describes the roll each side makes, e.g. "Skill 4 2d6 +0R TN: 4".
type RollSummary struct {
	Attacker string `json:"attacker"`
	Defender string `json:"defender"`
}

// Describe summarizes the skill, dice pool, result bonus and target number of
// both rolls.
func (s *Scenario) Describe(ctx context.Context) RollSummary {
	att, def := s.PreRolls(ctx)
	return RollSummary{Attacker: describeRoll(att), Defender: describeRoll(def)}
}

// Every pre-roll world of a side carries the same modifiers, so the first one
// stands for all of them.
func describeRoll(set world.Set) string {
	if len(set) == 0 {
		return ""
	}
	st := set[0]
	skill := st.Sum(world.From(world.ModThreshold, SourceSkill))
	pool := max(st.Sum(world.Named(world.ModDice)), 1)
	result := st.Sum(world.Named(world.ModResult))
	tn := st.Sum(world.Named(world.ModThreshold))
	return strings.Join([]string{
		fmt.Sprintf("Skill %g", skill),
		fmt.Sprintf("%dd%d", int(pool), DieSides),
		fmt.Sprintf("%+dR", int(result)),
		fmt.Sprintf("TN: %d", int(tn)),
	}, " ")
}
