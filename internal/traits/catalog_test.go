package traits

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hgbdice/internal/rules"
)

func TestCatalog_Build(t *testing.T) {
	comps, err := Model().Build(rules.RoleDefender, []Spec{
		WithValue("Armor", 6),
		WithValue("Hull", 3),
		WithOption("Cover", "Partial"),
		Named("Agile"),
	})
	require.NoError(t, err)
	assert.Len(t, comps, 4)
}

func TestCatalog_BuildReportsEveryProblem(t *testing.T) {
	_, err := Model().Build(rules.RoleAttacker, []Spec{
		Named("Teleport"),
		Named("Armor"),
		WithOption("Speed", "Warp"),
		Named("Agile"),
		Named("Elevated"),
		Named("ElevatedVTOL"),
		Named("Smoke"),
		Named("Smoke"),
	})
	require.Error(t, err)

	for _, want := range []error{
		ErrUnknownTrait,
		ErrMissingParam,
		ErrBadOption,
		ErrRole,
		ErrExcluded,
		ErrDuplicate,
	} {
		assert.True(t, errors.Is(err, want), "expected %v in %v", want, err)
	}
	assert.False(t, errors.Is(err, ErrRequires))
}

func TestCatalog_Requires(t *testing.T) {
	c := newCatalog(
		Trait{Name: "Guided", Requires: []string{"TD"}, build: func(Spec) rules.Component { return NewGuided() }},
		Trait{Name: "TD", build: fact(TD, "TD")},
	)

	_, err := c.Build(rules.RoleAttacker, []Spec{Named("Guided")})
	assert.ErrorIs(t, err, ErrRequires)

	comps, err := c.Build(rules.RoleAttacker, []Spec{Named("Guided"), Named("TD")})
	require.NoError(t, err)
	assert.Len(t, comps, 2)
}

func TestCatalog_ListIsSorted(t *testing.T) {
	list := Weapon().List()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
	for _, tr := range Model().List() {
		assert.NotNil(t, tr.build, tr.Name)
		assert.NotEmpty(t, tr.Description, tr.Name)
	}
}

func TestNewAttacker(t *testing.T) {
	att, err := NewAttacker(
		[]Spec{WithValue("Skill", 4), WithValue("Brawl", 1)},
		[]Spec{WithValue("Damage", 8), WithValue("Brawl", 2)},
	)
	require.NoError(t, err)
	assert.Equal(t, rules.RoleAttacker, att.Role)
	assert.Len(t, att.Components(), 4)

	_, err = NewAttacker([]Spec{Named("Agile")}, []Spec{Named("Nope")})
	assert.ErrorIs(t, err, ErrRole)
	assert.ErrorIs(t, err, ErrUnknownTrait)
}

func TestNewDefender(t *testing.T) {
	def, err := NewDefender([]Spec{Named("FieldArmor"), Named("ResistFire")})
	require.NoError(t, err)
	assert.Equal(t, rules.RoleDefender, def.Role)

	_, err = NewDefender([]Spec{Named("Stable")})
	assert.ErrorIs(t, err, ErrRole)
}

func TestSpec_String(t *testing.T) {
	assert.Equal(t, "Armor 6", WithValue("Armor", 6).String())
	assert.Equal(t, "Speed Top", WithOption("Speed", "Top").String())
	assert.Equal(t, "Agile", Named("Agile").String())
}
