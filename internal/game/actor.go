package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/google/uuid"
)

// state is everything an actor owns. It is only ever touched by the actor goroutine.
type state struct {
	session    models.Session
	ledger     *simulation.Ledger
	generation uint64             // Incremented on every mutation
	pending    *models.YearResult // Persisted together with the next save
}

// sync writes the ledger back into the persisted history.
func (s *state) sync() {
	s.session.History, s.session.HistoryIndex = s.ledger.History()
}

// generations is shared by all actors so that a reloaded session never
// repeats a generation an earlier actor handed out.
var generations atomic.Uint64

// mutated marks a change that invalidates oracle results computed before it.
func (s *state) mutated() {
	s.generation = generations.Add(1)
	s.sync()
}

// actor serializes all access to one session.
type actor struct {
	id   uuid.UUID
	cmds chan func(*state)
	quit chan struct{}
	done chan struct{}
	once sync.Once

	// idle is how long the actor waits for commands before it asks
	// retire to let it exit.
	idle   time.Duration
	retire func(*actor) bool

	// retired is set when the actor exited because it was idle.
	retired atomic.Bool
}

func newActor(session models.Session, idle time.Duration, retire func(*actor) bool) *actor {
	a := &actor{
		id:     session.ID,
		cmds:   make(chan func(*state)),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		idle:   idle,
		retire: retire,
	}

	st := &state{
		session:    session,
		ledger:     simulation.RestoreLedger(session.History, session.HistoryIndex),
		generation: generations.Add(1),
	}

	go a.run(st)
	return a
}

func (a *actor) run(st *state) {
	defer close(a.done)

	timer := time.NewTimer(a.idle)
	defer timer.Stop()

	for {
		select {
		case fn := <-a.cmds:
			fn(st)
			timer.Reset(a.idle)
		case <-timer.C:
			if a.retire(a) {
				a.retired.Store(true)
				return
			}
			timer.Reset(a.idle)
		case <-a.quit:
			return
		}
	}
}

// do runs fn on the actor and waits for its result.
//
// Once the actor accepted fn, it runs to completion even if ctx is cancelled.
func (a *actor) do(ctx context.Context, fn func(*state) error) error {
	errc := make(chan error, 1)

	select {
	case a.cmds <- func(st *state) { errc <- fn(st) }:
	case <-a.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-errc
}

// stop ends the actor and waits for it to exit.
func (a *actor) stop() {
	a.once.Do(func() { close(a.quit) })
	<-a.done
}
