package simulation

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const (
	// HandSize is the number of cards proposed each year.
	HandSize = 8

	crisisSavings  = 3
	defaultSavings = 1
)

// CrisisThreshold is the structural gap below which the hand is weighted towards savings.
var CrisisThreshold = decimal.NewFromInt(-1_000_000)

// ShuffleFunc randomizes the order of n elements, like rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Generator draws yearly hands of proposals from a pool.
type Generator struct {
	pool    Pool
	shuffle ShuffleFunc
}

// NewGenerator creates a generator. A nil shuffle uses math/rand/v2.
func NewGenerator(pool Pool, shuffle ShuffleFunc) *Generator {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	return &Generator{
		pool:    pool,
		shuffle: shuffle,
	}
}

// Pool returns the catalog the generator draws from.
func (g *Generator) Pool() Pool {
	return g.pool
}

// Generate draws a hand of up to HandSize cards for the scenario.
//
// At least one savings card is included if the pool has one, three when the
// structural gap is below CrisisThreshold. Unique cards that have been funded
// are never drawn again. With fewer eligible cards than HandSize, all of them
// are returned.
func (g *Generator) Generate(scenarioID string, structuralGap decimal.Decimal, fundedUnique map[string]bool) []Card {
	eligible := g.pool.Eligible(scenarioID, fundedUnique)

	savings := make([]PoolCard, 0)
	for _, c := range eligible {
		if c.Cost.IsNegative() {
			savings = append(savings, c)
		}
	}

	forced := defaultSavings
	if structuralGap.LessThan(CrisisThreshold) {
		forced = crisisSavings
	}

	g.shuffle(len(savings), func(i, j int) { savings[i], savings[j] = savings[j], savings[i] })
	hand := make([]PoolCard, 0, HandSize)
	hand = append(hand, savings[:min(forced, len(savings))]...)

	chosen := make(map[string]bool, len(hand))
	for _, c := range hand {
		chosen[c.ID] = true
	}

	remaining := make([]PoolCard, 0, len(eligible))
	for _, c := range eligible {
		if !chosen[c.ID] {
			remaining = append(remaining, c)
		}
	}

	g.shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
	hand = append(hand, remaining[:min(HandSize-len(hand), len(remaining))]...)

	g.shuffle(len(hand), func(i, j int) { hand[i], hand[j] = hand[j], hand[i] })

	cards := make([]Card, 0, len(hand))
	for _, c := range hand {
		card := c.Card
		card.Effects = append([]Effect{}, c.Effects...)
		card.Selected = SelectionNone
		cards = append(cards, card)
	}

	return cards
}
