// Package rules routes resolution steps to pluggable rule components.
//
// A Component reacts to the steps it registered for and leaves every other
// step alone. An Entity bundles Components for one participant and feeds a
// world through each subscribed Component in registration order, letting any
// of them branch the world into several.
package rules

import (
	"sort"

	"hgbdice/internal/world"
)

// Step names one phase of the resolution pipeline.
type Step string

// Behavior is one rule's reaction to one step. A Behavior that branches must
// return worlds whose probabilities sum to the input's.
type Behavior func(world.State) []world.State

// Component is a rule unit. Implementations embed Base, which provides the
// dispatch table and the link back to the owning Entity.
type Component interface {
	// Steps lists the steps this component has behaviors for.
	Steps() []Step
	// Respond runs the behavior registered for step, or returns st unchanged.
	Respond(step Step, st world.State) []world.State

	attach(e *Entity)
}

// Base is embedded by every Component.
type Base struct {
	behaviors map[Step]Behavior
	parent    *Entity
}

// On registers b as the behavior for step, replacing any earlier one.
func (c *Base) On(step Step, b Behavior) {
	if c.behaviors == nil {
		c.behaviors = make(map[Step]Behavior)
	}
	c.behaviors[step] = b
}

// Steps returns the registered steps in a stable order.
func (c *Base) Steps() []Step {
	steps := make([]Step, 0, len(c.behaviors))
	for s := range c.behaviors {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })
	return steps
}

// Respond dispatches st to the behavior for step. Unregistered steps are the
// identity.
func (c *Base) Respond(step Step, st world.State) []world.State {
	b, ok := c.behaviors[step]
	if !ok {
		return []world.State{st}
	}
	return b(st)
}

// Entity returns the Entity this component was added to, or nil.
func (c *Base) Entity() *Entity {
	return c.parent
}

// Role is a shortcut for the owning Entity's role. Detached components have
// no role.
func (c *Base) Role() Role {
	if c.parent == nil {
		return ""
	}
	return c.parent.Role
}

func (c *Base) attach(e *Entity) {
	c.parent = e
}

// Same returns st as the only outcome. Behaviors that never branch end with it.
func Same(st world.State) []world.State {
	return []world.State{st}
}
