package simulation

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// ScenarioAll marks a pool card as valid in every scenario.
const ScenarioAll = "all"

//go:embed data/pool.yaml
var poolYAML []byte

// Pool is the static catalog of budget cards.
type Pool struct {
	cards []PoolCard
}

// NewPool creates a pool from card templates. Card IDs must be unique.
func NewPool(cards []PoolCard) (Pool, error) {
	seen := make(map[string]bool, len(cards))
	templates := make([]PoolCard, 0, len(cards))
	for _, c := range cards {
		if c.ID == "" {
			return Pool{}, fmt.Errorf("%w: card %q has no id", ErrInvalidPool, c.Title)
		}
		if seen[c.ID] {
			return Pool{}, fmt.Errorf("%w: duplicate card id %s", ErrInvalidPool, c.ID)
		}
		seen[c.ID] = true

		if c.Effects == nil {
			c.Effects = []Effect{}
		}
		c.Selected = SelectionNone
		templates = append(templates, c)
	}

	return Pool{cards: templates}, nil
}

// ParsePool reads a YAML card catalog.
func ParsePool(data []byte) (Pool, error) {
	var doc struct {
		Cards []PoolCard `yaml:"cards"`
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Pool{}, fmt.Errorf("%w: %w", ErrInvalidPool, err)
	}

	return NewPool(doc.Cards)
}

var (
	defaultPool     Pool
	defaultPoolOnce sync.Once
)

// DefaultPool returns the built-in card catalog.
func DefaultPool() Pool {
	defaultPoolOnce.Do(func() {
		p, err := ParsePool(poolYAML)
		if err != nil {
			panic(err)
		}
		defaultPool = p
	})
	return defaultPool
}

// Cards returns all card templates in catalog order.
func (p Pool) Cards() []PoolCard {
	return slices.Clone(p.cards)
}

// Lookup returns the template for a card ID.
func (p Pool) Lookup(id string) (PoolCard, bool) {
	i := slices.IndexFunc(p.cards, func(c PoolCard) bool { return c.ID == id })
	if i < 0 {
		return PoolCard{}, false
	}
	return p.cards[i], true
}

// Eligible returns the cards valid for the scenario, minus unique cards that have been funded.
func (p Pool) Eligible(scenarioID string, fundedUnique map[string]bool) []PoolCard {
	eligible := make([]PoolCard, 0, len(p.cards))
	for _, c := range p.cards {
		if !c.ValidFor(scenarioID) {
			continue
		}
		if c.Unique && fundedUnique[c.ID] {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}
