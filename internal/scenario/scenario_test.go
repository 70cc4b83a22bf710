package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hgbdice/internal/analysis"
	"hgbdice/internal/traits"
)

const duelYAML = `name: duel
attacker:
  skill: 4
weapon:
  damage: 7
  traits:
    - name: AP
      value: 1
defender:
  skill: 5
  armor: 6
  hull: 2
  structure: 2
  cover: Partial
analyses: [Hit, Damage]
`

func TestParse_Valid(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Unexpected error parsing scenario: %v", err)
	}

	if d.Name != "duel" {
		t.Errorf("Expected name 'duel', got '%s'", d.Name)
	}
	if d.Attacker.Speed != "Combat" || d.Attacker.Facing != "Front" {
		t.Errorf("Expected attacker defaults, got speed '%s' facing '%s'", d.Attacker.Speed, d.Attacker.Facing)
	}
	if d.Weapon.Method != "Direct" || d.Weapon.Range != "Optimal" {
		t.Errorf("Expected weapon defaults, got method '%s' range '%s'", d.Weapon.Method, d.Weapon.Range)
	}
	if d.Defender.Cover != "Partial" {
		t.Errorf("Expected cover 'Partial', got '%s'", d.Defender.Cover)
	}
	if len(d.Weapon.Traits) != 1 || d.Weapon.Traits[0].String() != "AP 1" {
		t.Errorf("Expected weapon traits [AP 1], got %v", d.Weapon.Traits)
	}
}

func TestParse_JSON(t *testing.T) {
	body := `{"attacker":{"skill":3},"weapon":{"damage":5},"defender":{"skill":4,"armor":5,"hull":1,"structure":1}}`
	d, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Unexpected error parsing JSON scenario: %v", err)
	}
	if d.Weapon.Damage != 5 {
		t.Errorf("Expected damage 5, got %d", d.Weapon.Damage)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "attacker: [unclosed"},
		{"missing defender", "attacker: {skill: 4}\nweapon: {damage: 5}\n"},
		{"unknown field", duelYAML + "extra: true\n"},
		{"bad speed", strings.Replace(duelYAML, "skill: 4", "skill: 4\n  speed: Warp", 1)},
		{"skill out of range", strings.Replace(duelYAML, "skill: 4", "skill: 9", 1)},
		{"trait without name", strings.Replace(duelYAML, "- name: AP", "- option: AP", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "from-file.yaml")
	body := strings.Replace(duelYAML, "name: duel\n", "", 1)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to create test scenario file: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error loading scenario: %v", err)
	}
	if d.Name != "from-file" {
		t.Errorf("Expected name 'from-file', got '%s'", d.Name)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	if _, err := Load("non_existent_file.yaml"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadDir_Examples(t *testing.T) {
	docs, err := LoadDir(filepath.Join("..", "..", "scenarios"))
	if err != nil {
		t.Fatalf("Unexpected error loading example scenarios: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected example scenarios")
	}

	for name, d := range docs {
		sc, err := d.Build()
		if err != nil {
			t.Errorf("%s: unexpected build error: %v", name, err)
			continue
		}
		got := sc.Evaluate(context.Background()).Total()
		if got < 1-1e-9 || got > 1+1e-9 {
			t.Errorf("%s: expected total probability 1, got %v", name, got)
		}
		if _, err := d.AnalysisList(); err != nil {
			t.Errorf("%s: unexpected analysis error: %v", name, err)
		}
	}
}

func TestDocument_Build(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Unexpected error parsing scenario: %v", err)
	}
	sc, err := d.Build()
	if err != nil {
		t.Fatalf("Unexpected build error: %v", err)
	}

	sum := sc.Describe(context.Background())
	if !strings.HasPrefix(sum.Attacker, "Skill 4 ") {
		t.Errorf("Expected attacker skill 4, got '%s'", sum.Attacker)
	}
	if !strings.HasPrefix(sum.Defender, "Skill 5 ") {
		t.Errorf("Expected defender skill 5, got '%s'", sum.Defender)
	}
}

func TestDocument_BuildRejectsTraits(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Unexpected error parsing scenario: %v", err)
	}
	d.Attacker.Traits = append(d.Attacker.Traits, traits.Named("Agile"))
	d.Defender.Traits = append(d.Defender.Traits, traits.Named("Nope"))

	_, err = d.Build()
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
	if !errors.Is(err, traits.ErrRole) || !errors.Is(err, traits.ErrUnknownTrait) {
		t.Errorf("Expected both trait errors, got %v", err)
	}
}

func TestDocument_AnalysisList(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Unexpected error parsing scenario: %v", err)
	}

	list, err := d.AnalysisList()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Hit" || list[1].Name != "Damage" {
		t.Errorf("Expected [Hit Damage], got %v", list)
	}

	d.Analyses = nil
	list, _ = d.AnalysisList()
	if len(list) != len(analysis.All()) {
		t.Errorf("Expected every analysis, got %d", len(list))
	}

	d.Analyses = []string{"Luck"}
	if _, err := d.AnalysisList(); !errors.Is(err, ErrUnknownAnalysis) {
		t.Errorf("Expected ErrUnknownAnalysis, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Unexpected error parsing scenario: %v", err)
	}

	out, err := Analyze(context.Background(), d)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Name != "duel" || out.Worlds == 0 {
		t.Errorf("Expected named outcome with worlds, got %+v", out)
	}
	if len(out.Results) != 2 || out.Results[0].Name != "Hit" {
		t.Fatalf("Expected Hit and Damage results, got %d", len(out.Results))
	}

	hit := out.Results[0].All().Average
	if hit <= 0 || hit >= 1 {
		t.Errorf("Expected a hit probability strictly between 0 and 1, got %v", hit)
	}

	d.Analyses = []string{"Luck"}
	if _, err := Analyze(context.Background(), d); !errors.Is(err, ErrUnknownAnalysis) {
		t.Errorf("Expected ErrUnknownAnalysis, got %v", err)
	}
}
