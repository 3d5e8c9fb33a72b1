package simulation

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	ScenarioUrban    = "urban"
	ScenarioSuburban = "suburban"
	ScenarioRural    = "rural"

	// FallbackScenario is used whenever generated content is unusable.
	FallbackScenario = ScenarioSuburban
)

//go:embed data/scenarios.yaml
var scenariosYAML []byte

// Scenario is a district archetype with its starting state and school roster.
type Scenario struct {
	ID             string    `json:"id" yaml:"id" example:"urban"`
	Title          string    `json:"title" yaml:"title" example:"Urban / Declining"`
	Description    string    `json:"description" yaml:"description"`
	Difficulty     string    `json:"difficulty" yaml:"difficulty" example:"Hard"`
	InitialState   GameState `json:"initialState" yaml:"initialState"`
	InitialSchools []School  `json:"initialSchools" yaml:"initialSchools"`
}

var (
	scenarios     []Scenario
	scenariosOnce sync.Once
)

func loadScenarios() {
	var doc struct {
		Scenarios []Scenario `yaml:"scenarios"`
	}

	dec := yaml.NewDecoder(bytes.NewReader(scenariosYAML))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		panic(fmt.Errorf("built-in scenarios are invalid: %w", err))
	}

	scenarios = doc.Scenarios
}

// Scenarios returns the built-in scenarios.
func Scenarios() []Scenario {
	scenariosOnce.Do(loadScenarios)

	list := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		list = append(list, s.clone())
	}
	return list
}

// LookupScenario returns the built-in scenario with the ID.
func LookupScenario(id string) (Scenario, error) {
	for _, s := range Scenarios() {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownScenario, id)
}

// IsArchetype reports whether id names a built-in scenario.
func IsArchetype(id string) bool {
	_, err := LookupScenario(id)
	return err == nil
}

func (s Scenario) clone() Scenario {
	s.InitialSchools = append([]School{}, s.InitialSchools...)
	return s
}
