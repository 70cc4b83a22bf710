// Package scenario reads attack scenarios from YAML documents.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"hgbdice/internal/analysis"
	"hgbdice/internal/game"
	"hgbdice/internal/traits"
)

//go:embed scenario.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("https://hgbdice.dev/scenario.schema.json", schemaJSON)

var (
	ErrInvalid         = errors.New("invalid scenario")
	ErrUnknownAnalysis = errors.New("unknown analysis")
)

// Document describes one attack: who attacks, with what, against whom.
// Fields mirror the basic parameters of every attack; anything else is
// listed as traits.
type Document struct {
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Attacker Attacker `yaml:"attacker" json:"attacker"`
	Weapon   Weapon   `yaml:"weapon" json:"weapon"`
	Defender Defender `yaml:"defender" json:"defender"`
	// Analyses to run, by name. Empty runs them all.
	Analyses []string `yaml:"analyses,omitempty" json:"analyses,omitempty"`
}

type Attacker struct {
	Skill int    `yaml:"skill" json:"skill"`
	Speed string `yaml:"speed,omitempty" json:"speed,omitempty"`
	// Facing is the side of the defender the attack comes from.
	Facing string        `yaml:"facing,omitempty" json:"facing,omitempty"`
	Traits []traits.Spec `yaml:"traits,omitempty" json:"traits,omitempty"`
}

type Weapon struct {
	Damage int           `yaml:"damage" json:"damage"`
	Method string        `yaml:"method,omitempty" json:"method,omitempty"`
	Range  string        `yaml:"range,omitempty" json:"range,omitempty"`
	Traits []traits.Spec `yaml:"traits,omitempty" json:"traits,omitempty"`
}

type Defender struct {
	Skill     int           `yaml:"skill" json:"skill"`
	Speed     string        `yaml:"speed,omitempty" json:"speed,omitempty"`
	Armor     int           `yaml:"armor" json:"armor"`
	Hull      int           `yaml:"hull" json:"hull"`
	Structure int           `yaml:"structure" json:"structure"`
	Cover     string        `yaml:"cover,omitempty" json:"cover,omitempty"`
	Traits    []traits.Spec `yaml:"traits,omitempty" json:"traits,omitempty"`
}

// Parse validates and decodes a scenario. JSON documents are accepted too.
func Parse(b []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var d Document
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	d.setDefaults()
	return &d, nil
}

// The validator wants JSON values, so the YAML tree goes through a JSON
// encoding first.
func validate(raw any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load reads a scenario file.
func Load(path string) (*Document, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned
	if err != nil {
		return nil, err
	}
	d, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(cleanPath), filepath.Ext(cleanPath))
	}
	return d, nil
}

// LoadDir reads every .yaml scenario in dir, keyed by name.
func LoadDir(dir string) (map[string]*Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	out := make(map[string]*Document, len(paths))
	for _, p := range paths {
		d, err := Load(p)
		if err != nil {
			return nil, err
		}
		out[d.Name] = d
	}
	return out, nil
}

func (d *Document) setDefaults() {
	if d.Attacker.Speed == "" {
		d.Attacker.Speed = "Combat"
	}
	if d.Attacker.Facing == "" {
		d.Attacker.Facing = "Front"
	}
	if d.Weapon.Method == "" {
		d.Weapon.Method = "Direct"
	}
	if d.Weapon.Range == "" {
		d.Weapon.Range = "Optimal"
	}
	if d.Defender.Speed == "" {
		d.Defender.Speed = "Combat"
	}
	if d.Defender.Cover == "" {
		d.Defender.Cover = "Open"
	}
}

// AttackerTraits lists every trait of the attacking model, basic
// parameters first.
func (d *Document) AttackerTraits() []traits.Spec {
	return append([]traits.Spec{
		traits.WithValue("Skill", d.Attacker.Skill),
		traits.WithOption("Speed", d.Attacker.Speed),
		traits.WithOption("Facing", d.Attacker.Facing),
	}, d.Attacker.Traits...)
}

func (d *Document) WeaponTraits() []traits.Spec {
	return append([]traits.Spec{
		traits.WithValue("Damage", d.Weapon.Damage),
		traits.WithOption("Method", d.Weapon.Method),
		traits.WithOption("Range", d.Weapon.Range),
	}, d.Weapon.Traits...)
}

func (d *Document) DefenderTraits() []traits.Spec {
	return append([]traits.Spec{
		traits.WithValue("Skill", d.Defender.Skill),
		traits.WithOption("Speed", d.Defender.Speed),
		traits.WithValue("Armor", d.Defender.Armor),
		traits.WithValue("Hull", d.Defender.Hull),
		traits.WithValue("Structure", d.Defender.Structure),
		traits.WithOption("Cover", d.Defender.Cover),
	}, d.Defender.Traits...)
}

// Build turns the document into a scenario ready to evaluate.
func (d *Document) Build(opts ...game.Option) (*game.Scenario, error) {
	att, attErr := traits.NewAttacker(d.AttackerTraits(), d.WeaponTraits())
	def, defErr := traits.NewDefender(d.DefenderTraits())
	if err := errors.Join(attErr, defErr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return game.NewScenario(att, def, opts...), nil
}

// AnalysisList resolves the analyses the document asks for.
func (d *Document) AnalysisList() ([]analysis.Analysis, error) {
	if len(d.Analyses) == 0 {
		return analysis.All(), nil
	}
	out := make([]analysis.Analysis, 0, len(d.Analyses))
	for _, name := range d.Analyses {
		a, ok := analysis.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownAnalysis, name)
		}
		out = append(out, a)
	}
	return out, nil
}
