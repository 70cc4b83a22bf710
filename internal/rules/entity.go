package rules

import (
	"sort"

	"hgbdice/internal/world"
)

// Role identifies which side of an attack an Entity plays.
type Role string

const (
	RoleAttacker Role = "Attacker"
	RoleDefender Role = "Defender"
	// RoleRules marks the shared base-rules Entity.
	RoleRules Role = "Rules"
)

// Entity owns the Components of one participant. It is built once per
// scenario and not safe for concurrent mutation.
type Entity struct {
	Role Role

	components    []Component
	subscriptions map[Step][]Component
}

// NewEntity returns an Entity with role holding components, in order.
func NewEntity(role Role, components ...Component) *Entity {
	e := &Entity{Role: role, subscriptions: make(map[Step][]Component)}
	for _, c := range components {
		e.Add(c)
	}
	return e
}

// Add subscribes c to every step it responds to and makes e its owner.
func (e *Entity) Add(c Component) {
	if e.subscriptions == nil {
		e.subscriptions = make(map[Step][]Component)
	}
	for _, step := range c.Steps() {
		e.subscriptions[step] = append(e.subscriptions[step], c)
	}
	e.components = append(e.components, c)
	c.attach(e)
}

// Components returns the Components in registration order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	copy(out, e.components)
	return out
}

// Steps returns the union of steps the Components respond to.
func (e *Entity) Steps() []Step {
	steps := make([]Step, 0, len(e.subscriptions))
	for s := range e.subscriptions {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })
	return steps
}

// Subscribed reports whether any Component responds to step.
func (e *Entity) Subscribed(step Step) bool {
	return len(e.subscriptions[step]) > 0
}

// Dispatch feeds st through every Component subscribed to step. Each
// Component receives every world the previous one produced.
func (e *Entity) Dispatch(step Step, st world.State) []world.State {
	working := []world.State{st}
	for _, c := range e.subscriptions[step] {
		next := make([]world.State, 0, len(working))
		for _, w := range working {
			next = append(next, c.Respond(step, w)...)
		}
		working = next
	}
	return working
}

// DispatchSet runs step over every world in set and merges the results. A
// step no Component subscribes to returns set untouched.
func (e *Entity) DispatchSet(step Step, set world.Set) world.Set {
	if !e.Subscribed(step) {
		return set
	}
	out := make([]world.State, 0, len(set))
	for _, st := range set {
		out = append(out, e.Dispatch(step, st)...)
	}
	return world.Merge(out...)
}
