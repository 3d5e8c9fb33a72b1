package simulation

import (
	"fmt"
)

// CheckMove validates that a card may be placed in the destination.
//
// Savings cards have nothing to pay for, so one-time grant money cannot fund them.
func CheckMove(card Card, dest Selection) error {
	if !dest.Valid() {
		return ErrInvalidSelection
	}

	if dest == SelectionOneTime && card.IsSavings() {
		return ErrSavingsOneTime
	}

	return nil
}

// Ledger is the record of decisions for one year with linear undo and redo.
//
// Every entry of the history is a full snapshot of the hand. The ledger is not
// safe for concurrent use, it is owned by exactly one session.
type Ledger struct {
	history [][]Card
	index   int
}

// NewLedger starts a ledger with the hand as its only history entry.
func NewLedger(hand []Card) *Ledger {
	return &Ledger{
		history: [][]Card{cloneCards(hand)},
		index:   0,
	}
}

// RestoreLedger rebuilds a ledger from a persisted history and cursor.
func RestoreLedger(history [][]Card, index int) *Ledger {
	if len(history) == 0 {
		return NewLedger(nil)
	}

	restored := make([][]Card, 0, len(history))
	for _, h := range history {
		restored = append(restored, cloneCards(h))
	}

	return &Ledger{
		history: restored,
		index:   max(0, min(index, len(history)-1)),
	}
}

// Decisions returns a copy of the current hand.
func (l *Ledger) Decisions() []Card {
	return cloneCards(l.history[l.index])
}

// History returns a copy of all snapshots and the current cursor.
func (l *Ledger) History() ([][]Card, int) {
	history := make([][]Card, 0, len(l.history))
	for _, h := range l.history {
		history = append(history, cloneCards(h))
	}
	return history, l.index
}

// Move sets the selection of a card in the current hand.
func (l *Ledger) Move(cardID string, dest Selection) error {
	if !dest.Valid() {
		return ErrInvalidSelection
	}

	next := l.Decisions()
	found := false
	for i := range next {
		if next[i].ID == cardID {
			next[i].Selected = dest
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}

	l.push(next)
	return nil
}

// Add appends a card to the current hand.
func (l *Ledger) Add(card Card) error {
	next := l.Decisions()
	for _, c := range next {
		if c.ID == card.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, card.ID)
		}
	}

	l.push(append(next, card))
	return nil
}

// Undo moves back one entry. It reports false if there is nothing to undo.
func (l *Ledger) Undo() bool {
	if !l.CanUndo() {
		return false
	}
	l.index--
	return true
}

// Redo moves forward one entry. It reports false if there is nothing to redo.
func (l *Ledger) Redo() bool {
	if !l.CanRedo() {
		return false
	}
	l.index++
	return true
}

func (l *Ledger) CanUndo() bool {
	return l.index > 0
}

func (l *Ledger) CanRedo() bool {
	return l.index < len(l.history)-1
}

// push discards the redo tail and appends a snapshot.
func (l *Ledger) push(snapshot []Card) {
	l.history = append(l.history[:l.index+1], snapshot)
	l.index = len(l.history) - 1
}

// AllSorted reports whether every card in the hand has a selection.
func AllSorted(decisions []Card) bool {
	for _, d := range decisions {
		if d.Selected == SelectionNone {
			return false
		}
	}
	return true
}

func cloneCards(cards []Card) []Card {
	clone := make([]Card, 0, len(cards))
	for _, c := range cards {
		c.Effects = append([]Effect{}, c.Effects...)
		clone = append(clone, c)
	}
	return clone
}
