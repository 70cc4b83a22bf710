// Package traits is the catalog of model and weapon traits: named,
// parameterized rules that build into components for the attack engine.
package traits

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/go-multierror"

	"hgbdice/internal/rules"
)

var (
	ErrUnknownTrait = errors.New("unknown trait")
	ErrMissingParam = errors.New("missing parameter")
	ErrBadOption    = errors.New("invalid option")
	ErrRole         = errors.New("trait not allowed for role")
	ErrRequires     = errors.New("trait requires another trait")
	ErrExcluded     = errors.New("trait excluded by another trait")
	ErrDuplicate    = errors.New("duplicate trait")
)

// Param names a parameter a trait needs.
type Param string

const (
	ParamValue  Param = "value"
	ParamOption Param = "option"
)

// Spec asks for one trait with its parameters, as a scenario states it.
type Spec struct {
	Name   string `yaml:"name" json:"name"`
	Value  *int   `yaml:"value,omitempty" json:"value,omitempty"`
	Option string `yaml:"option,omitempty" json:"option,omitempty"`
}

// Named asks for a trait without parameters.
func Named(name string) Spec {
	return Spec{Name: name}
}

// WithValue asks for a trait taking a number.
func WithValue(name string, v int) Spec {
	return Spec{Name: name, Value: &v}
}

// WithOption asks for a trait taking one of a set of options.
func WithOption(name, option string) Spec {
	return Spec{Name: name, Option: option}
}

func (s Spec) value() int {
	if s.Value == nil {
		return 0
	}
	return *s.Value
}

func (s Spec) String() string {
	switch {
	case s.Value != nil:
		return fmt.Sprintf("%s %d", s.Name, *s.Value)
	case s.Option != "":
		return s.Name + " " + s.Option
	}
	return s.Name
}

// Trait defines one named rule and the components it builds into.
type Trait struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params,omitempty"`
	// Options lists the accepted values of ParamOption.
	Options []string `json:"options,omitempty"`
	// Roles a model may carry the trait in. Empty allows any.
	Roles []rules.Role `json:"roles,omitempty"`
	// Requires and Excludes name other traits of the same model. Exclusion
	// is not necessarily mutual.
	Requires []string `json:"requires,omitempty"`
	Excludes []string `json:"excludes,omitempty"`

	build func(Spec) rules.Component
}

func (t Trait) check(role rules.Role, s Spec, present map[string]bool) error {
	var errs *multierror.Error
	for _, p := range t.Params {
		switch {
		case p == ParamValue && s.Value == nil,
			p == ParamOption && s.Option == "":
			errs = multierror.Append(errs, fmt.Errorf("%s: %w %q", t.Name, ErrMissingParam, p))
		case p == ParamOption && !slices.Contains(t.Options, s.Option):
			errs = multierror.Append(errs, fmt.Errorf("%s: %w %q, want one of %v", t.Name, ErrBadOption, s.Option, t.Options))
		}
	}
	if len(t.Roles) > 0 && !slices.Contains(t.Roles, role) {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w %s", t.Name, ErrRole, role))
	}
	for _, r := range t.Requires {
		if !present[r] {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w %s", t.Name, ErrRequires, r))
		}
	}
	for _, x := range t.Excludes {
		if present[x] {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w %s", x, ErrExcluded, t.Name))
		}
	}
	return errs.ErrorOrNil()
}

// Catalog maps trait names to their definitions.
type Catalog map[string]Trait

func newCatalog(traits ...Trait) Catalog {
	c := make(Catalog, len(traits))
	for _, t := range traits {
		c[t.Name] = t
	}
	return c
}

// Names returns the trait names in order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// List returns the traits ordered by name.
func (c Catalog) List() []Trait {
	out := make([]Trait, 0, len(c))
	for _, n := range c.Names() {
		out = append(out, c[n])
	}
	return out
}

// Build validates specs for a model playing role and turns them into
// components, in order. Every problem found is reported in the one error.
func (c Catalog) Build(role rules.Role, specs []Spec) ([]rules.Component, error) {
	var errs *multierror.Error
	present := make(map[string]bool, len(specs))
	for _, s := range specs {
		if present[s.Name] {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", s.Name, ErrDuplicate))
		}
		present[s.Name] = true
	}

	comps := make([]rules.Component, 0, len(specs))
	for _, s := range specs {
		t, ok := c[s.Name]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("%w %q", ErrUnknownTrait, s.Name))
			continue
		}
		if err := t.check(role, s, present); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		comps = append(comps, t.build(s))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return comps, nil
}

// NewAttacker builds the attacking entity from its model and weapon traits.
func NewAttacker(model, weapon []Spec) (*rules.Entity, error) {
	var errs *multierror.Error
	mc, err := Model().Build(rules.RoleAttacker, model)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("attacker model: %w", err))
	}
	wc, err := Weapon().Build(rules.RoleAttacker, weapon)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("weapon: %w", err))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return rules.NewEntity(rules.RoleAttacker, append(mc, wc...)...), nil
}

// NewDefender builds the defending entity from its model traits.
func NewDefender(model []Spec) (*rules.Entity, error) {
	comps, err := Model().Build(rules.RoleDefender, model)
	if err != nil {
		return nil, fmt.Errorf("defender model: %w", err)
	}
	return rules.NewEntity(rules.RoleDefender, comps...), nil
}
