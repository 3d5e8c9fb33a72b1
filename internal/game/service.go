// Package game owns the live sessions of the superintendent game.
//
// Every session is owned by one actor goroutine that executes all reads and
// mutations in order. Calls to the oracle run outside of the actor on a
// snapshot of the session and are only committed if nothing changed in the
// meantime.
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/oracle"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DefaultIdleTimeout is how long a session stays live without requests.
// Idle sessions are reloaded from the database when they are used again.
const DefaultIdleTimeout = 30 * time.Minute

// DefaultOracleTimeout limits every single oracle call.
const DefaultOracleTimeout = 90 * time.Second

// DataSource looks up public data about a district.
type DataSource interface {
	Lookup(ctx context.Context, ncesID, districtName string) (opendata.Result, error)
}

// Config configures a Service. Only DB is required.
type Config struct {
	DB            *gorm.DB
	Oracle        oracle.Oracle         // Defaults to oracle.Disabled
	OpenData      DataSource            // No public data is used if nil
	Generator     *simulation.Generator // Defaults to the built-in pool with random shuffling
	Registerer    prometheus.Registerer // Metrics are not registered if nil
	OracleTimeout time.Duration         // Defaults to DefaultOracleTimeout
	IdleTimeout   time.Duration         // Defaults to DefaultIdleTimeout
}

type Service struct {
	db            *gorm.DB
	oracle        oracle.Oracle
	data          DataSource
	gen           *simulation.Generator
	oracleTimeout time.Duration
	idleTimeout   time.Duration
	metrics       *metrics

	mu     sync.Mutex
	actors map[uuid.UUID]*actor
	closed bool
}

func NewService(c Config) (*Service, error) {
	if c.DB == nil {
		return nil, errors.New("a database is required")
	}

	if c.Oracle == nil {
		c.Oracle = oracle.Disabled{}
	}

	if c.Generator == nil {
		c.Generator = simulation.NewGenerator(simulation.DefaultPool(), nil)
	}

	if c.OracleTimeout <= 0 {
		c.OracleTimeout = DefaultOracleTimeout
	}

	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}

	m, err := newMetrics(c.Registerer)
	if err != nil {
		return nil, err
	}

	return &Service{
		db:            c.DB,
		oracle:        c.Oracle,
		data:          c.OpenData,
		gen:           c.Generator,
		oracleTimeout: c.OracleTimeout,
		idleTimeout:   c.IdleTimeout,
		metrics:       m,
		actors:        make(map[uuid.UUID]*actor),
	}, nil
}

// Generator returns the proposal generator of the service.
func (s *Service) Generator() *simulation.Generator {
	return s.gen
}

// Close stops all actors. Every later call fails with ErrSessionClosed.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	actors := s.actors
	s.actors = make(map[uuid.UUID]*actor)
	s.mu.Unlock()

	for _, a := range actors {
		a.stop()
	}
	s.metrics.liveSessions.Set(0)
}

// actor returns the actor of a session, loading the session if it is not live.
func (s *Service) actor(ctx context.Context, id uuid.UUID) (*actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	if a, ok := s.actors[id]; ok {
		return a, nil
	}

	session, err := models.FindSession(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return s.spawn(session), nil
}

// spawn starts the actor for a session. s.mu must be held.
func (s *Service) spawn(session models.Session) *actor {
	a := newActor(session, s.idleTimeout, s.retire)
	s.actors[session.ID] = a
	s.metrics.liveSessions.Inc()
	return a
}

// retire removes an idle actor. It reports false if the actor is no longer
// registered, in which case Delete or Close is about to stop it.
func (s *Service) retire(a *actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.actors[a.id] != a {
		return false
	}

	delete(s.actors, a.id)
	s.metrics.liveSessions.Dec()
	log.Debug().Str("session", a.id.String()).Msg("session idle, actor stopped")
	return true
}

// exec runs fn on the actor. If the actor retired for being idle, the
// session is reloaded and fn runs on the new actor, which is returned.
func (s *Service) exec(ctx context.Context, a *actor, fn func(*state) error) (*actor, error) {
	for {
		err := a.do(ctx, fn)
		if !errors.Is(err, ErrSessionClosed) || !a.retired.Load() {
			return a, err
		}

		a, err = s.actor(ctx, a.id)
		if err != nil {
			return a, err
		}
	}
}

// Delete removes a session and stops its actor.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.actor(ctx, id)
	if err != nil {
		return err
	}

	a, err = s.exec(ctx, a, func(st *state) error {
		return s.db.WithContext(ctx).Delete(&st.session).Error
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.actors[id] == a {
		delete(s.actors, id)
		s.metrics.liveSessions.Dec()
	}
	s.mu.Unlock()

	a.stop()
	return nil
}

// errUnchanged is returned by update functions that did not change anything.
var errUnchanged = errors.New("unchanged")

// update runs fn on the session after check passed and persists the result.
//
// If fn or persisting fails, the session is left as it was before.
func (s *Service) update(ctx context.Context, a *actor, check, fn func(*state) error) (View, error) {
	var view View

	_, err := s.exec(ctx, a, func(st *state) error {
		if check != nil {
			if err := check(st); err != nil {
				return err
			}
		}

		session, generation := st.session, st.generation
		ledger := simulation.RestoreLedger(st.ledger.History())
		restore := func() {
			st.session, st.ledger, st.generation, st.pending = session, ledger, generation, nil
		}

		err := fn(st)
		if errors.Is(err, errUnchanged) {
			view = newView(st)
			return nil
		}
		if err != nil {
			restore()
			return err
		}

		st.mutated()
		if err := s.save(ctx, st); err != nil {
			restore()
			return err
		}

		view = newView(st)
		return nil
	})

	return view, err
}

// read runs fn on the session without changing it.
func (s *Service) read(ctx context.Context, a *actor, fn func(*state) error) error {
	_, err := s.exec(ctx, a, fn)
	return err
}

func (s *Service) save(ctx context.Context, st *state) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if st.pending != nil {
			if err := tx.Omit("Session").Create(st.pending).Error; err != nil {
				return err
			}
			st.pending = nil
		}

		return tx.Save(&st.session).Error
	})
}

func inPhase(phase models.Phase) func(*state) error {
	return func(st *state) error {
		if st.session.Phase != phase {
			return ErrWrongPhase
		}
		return nil
	}
}

// unchangedSince fails with ErrStaleResult if the session was mutated after generation.
func unchangedSince(generation uint64, phase models.Phase) func(*state) error {
	return func(st *state) error {
		if st.generation != generation {
			log.Warn().Str("session", st.session.ID.String()).Msg("discarding stale oracle result")
			return ErrStaleResult
		}
		return inPhase(phase)(st)
	}
}

func (s *Service) oracleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.oracleTimeout)
}

// fallback records that static content replaced an oracle result.
func (s *Service) fallback(call string, err error) {
	s.metrics.fallbacks.WithLabelValues(call).Inc()

	if errors.Is(err, oracle.ErrUnavailable) {
		log.Debug().Str("call", call).Msg("oracle disabled, using fallback")
		return
	}
	log.Warn().Str("call", call).Err(err).Msg("oracle failed, using fallback")
}
