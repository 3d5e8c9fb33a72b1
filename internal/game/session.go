package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/oracle"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// MinNarrativeLength is the minimum number of characters of a submitted narrative.
const MinNarrativeLength = 10

// fallbackRosterGap is the structural gap the first hand is drawn for when
// no roster could be generated for a district.
var fallbackRosterGap = decimal.NewFromInt(-1_000_000)

// StartRequest starts a session either for a built-in scenario or for a real district.
type StartRequest struct {
	Scenario string
	District *simulation.District
}

// Proposal is a player authored card.
type Proposal struct {
	Title     string
	Amount    decimal.Decimal
	Savings   bool
	Recurring bool
}

// Start creates a new session in the briefing phase.
//
// For a district, the oracle writes the briefing. If it fails, the session
// falls back to the suburban scenario.
func (s *Service) Start(ctx context.Context, req StartRequest) (View, error) {
	var session models.Session
	var hand []simulation.Card
	kind := "scenario"

	switch {
	case req.District != nil && strings.TrimSpace(req.District.Name) != "":
		kind = "district"
		session, hand = s.briefing(ctx, *req.District)
	case req.Scenario != "":
		scenario, err := simulation.LookupScenario(req.Scenario)
		if err != nil {
			return View{}, err
		}
		session, hand = s.fromScenario(scenario)
	default:
		return View{}, ErrMissingScenario
	}

	session.Phase = models.PhaseBriefing
	session.History = [][]simulation.Card{hand}
	session.FundedUnique = map[string]bool{}

	err := s.db.WithContext(ctx).Create(&session).Error
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrSessionClosed
	}
	a := s.spawn(session)
	s.mu.Unlock()

	s.metrics.sessionsStarted.WithLabelValues(kind).Inc()
	log.Info().Str("session", session.ID.String()).Str("scenario", session.ScenarioID).Str("kind", kind).Msg("session started")

	var view View
	err = s.read(ctx, a, func(st *state) error {
		view = newView(st)
		return nil
	})
	return view, err
}

func (s *Service) fromScenario(scenario simulation.Scenario) (models.Session, []simulation.Card) {
	return models.Session{
		ScenarioID:  scenario.ID,
		Title:       scenario.Title,
		Description: scenario.Description,
		Base:        scenario.InitialState,
		Schools:     scenario.InitialSchools,
	}, s.gen.Generate(scenario.ID, scenario.InitialState.StructuralGap, nil)
}

// briefing asks the oracle about a district. Schools and the first hand are
// only generated when the briefing is accepted.
func (s *Service) briefing(ctx context.Context, district simulation.District) (models.Session, []simulation.Card) {
	octx, cancel := s.oracleContext(ctx)
	defer cancel()

	b, err := s.oracle.Briefing(octx, district)
	if err != nil {
		s.fallback("briefing", err)
		scenario, _ := simulation.LookupScenario(simulation.FallbackScenario)
		return s.fromScenario(scenario)
	}

	return models.Session{
		ScenarioID:  b.Archetype,
		Title:       b.Title,
		Description: b.Description,
		District:    district,
		Base:        b.InitialState,
		Schools:     []simulation.School{},
	}, []simulation.Card{}
}

// Get returns the current view of a session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	var view View
	err = s.read(ctx, a, func(st *state) error {
		view = newView(st)
		return nil
	})
	return view, err
}

// districtSetup is the result of building the model of a real district.
type districtSetup struct {
	base       simulation.GameState
	schools    []simulation.School
	hand       []simulation.Card
	source     string
	datasetURL string
}

// Accept starts the first year of a session.
//
// For a district, the public data and the school roster are fetched first.
// Without a roster, the suburban schools are used.
func (s *Service) Accept(ctx context.Context, id uuid.UUID) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	var snapshot models.Session
	var generation uint64
	err = s.read(ctx, a, func(st *state) error {
		if err := inPhase(models.PhaseBriefing)(st); err != nil {
			return err
		}
		snapshot, generation = st.session, st.generation
		return nil
	})
	if err != nil {
		return View{}, err
	}

	if snapshot.District.Name == "" {
		return s.update(ctx, a, unchangedSince(generation, models.PhaseBriefing), func(st *state) error {
			st.session.Phase = models.PhasePlaying
			return nil
		})
	}

	setup, err := s.district(ctx, snapshot)
	if err != nil {
		return View{}, err
	}

	return s.update(ctx, a, unchangedSince(generation, models.PhaseBriefing), func(st *state) error {
		st.session.Base = setup.base
		st.session.Schools = setup.schools
		st.session.DataSource = setup.source
		st.session.DatasetURL = setup.datasetURL
		st.session.Phase = models.PhasePlaying
		st.ledger = simulation.NewLedger(setup.hand)
		return nil
	})
}

func (s *Service) district(ctx context.Context, snapshot models.Session) (districtSetup, error) {
	octx, cancel := s.oracleContext(ctx)
	defer cancel()

	ncesID, err := s.oracle.DistrictID(octx, snapshot.District)
	if err != nil {
		s.fallback("district_id", err)
		ncesID = ""
	}

	var result opendata.Result
	if s.data != nil {
		result, err = s.data.Lookup(ctx, ncesID, snapshot.District.Name)
		if err != nil {
			return districtSetup{}, err
		}
	}

	setup := districtSetup{
		base:       snapshot.Base,
		datasetURL: result.DatasetURL,
	}
	if result.Financials != nil {
		setup.source = result.Financials.Source
	}

	schools, err := s.oracle.Roster(octx, snapshot.District, result.Financials)
	if err == nil && len(schools) == 0 {
		err = oracle.ErrEmptyResponse
	}
	if err != nil {
		s.fallback("roster", err)
		scenario, _ := simulation.LookupScenario(simulation.FallbackScenario)
		setup.schools = scenario.InitialSchools
		setup.hand = s.gen.Generate(snapshot.ScenarioID, fallbackRosterGap, nil)
		return setup, nil
	}

	if result.Financials != nil {
		setup.base = opendata.ApplyFinancials(setup.base, *result.Financials)
	}
	setup.schools = schools
	setup.hand = s.gen.Generate(snapshot.ScenarioID, setup.base.StructuralGap, nil)

	return setup, nil
}

// Move sets the selection of a card in the current hand.
func (s *Service) Move(ctx context.Context, id uuid.UUID, cardID string, dest simulation.Selection) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	return s.update(ctx, a, inPhase(models.PhasePlaying), func(st *state) error {
		decisions := st.ledger.Decisions()
		i := slices.IndexFunc(decisions, func(c simulation.Card) bool { return c.ID == cardID })
		if i < 0 {
			return fmt.Errorf("%w: %s", simulation.ErrUnknownCard, cardID)
		}

		if err := simulation.CheckMove(decisions[i], dest); err != nil {
			return err
		}

		return st.ledger.Move(cardID, dest)
	})
}

// Undo reverts the last change of the current hand. At the start of the history, nothing happens.
func (s *Service) Undo(ctx context.Context, id uuid.UUID) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	return s.update(ctx, a, inPhase(models.PhasePlaying), func(st *state) error {
		if !st.ledger.Undo() {
			return errUnchanged
		}
		return nil
	})
}

// Redo restores the last undone change. At the end of the history, nothing happens.
func (s *Service) Redo(ctx context.Context, id uuid.UUID) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	return s.update(ctx, a, inPhase(models.PhasePlaying), func(st *state) error {
		if !st.ledger.Redo() {
			return errUnchanged
		}
		return nil
	})
}

// AddProposal adds a player authored card to the current hand.
func (s *Service) AddProposal(ctx context.Context, id uuid.UUID, p Proposal) (View, error) {
	if strings.TrimSpace(p.Title) == "" || !p.Amount.Abs().IsPositive() {
		return View{}, ErrInvalidProposal
	}

	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	card := simulation.CustomCard("custom-"+uuid.NewString(), p.Title, p.Amount, p.Savings, p.Recurring)
	return s.update(ctx, a, inPhase(models.PhasePlaying), func(st *state) error {
		return st.ledger.Add(card)
	})
}

// NarrativeTemplate returns a starting point for the narrative of the current decisions.
func (s *Service) NarrativeTemplate(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return "", err
	}

	var template string
	err = s.read(ctx, a, func(st *state) error {
		template = simulation.NarrativeTemplate(st.ledger.Decisions())
		return nil
	})
	return template, err
}

// Submit lets the board vote on the current decisions.
//
// If the oracle fails, the budget passes by manual override.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, narrative string) (View, error) {
	narrative = strings.TrimSpace(narrative)
	if utf8.RuneCountInString(narrative) < MinNarrativeLength {
		return View{}, ErrNarrativeTooShort
	}

	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	var req oracle.VerdictRequest
	var generation uint64
	err = s.read(ctx, a, func(st *state) error {
		if err := inPhase(models.PhasePlaying)(st); err != nil {
			return err
		}

		decisions := st.ledger.Decisions()
		if len(decisions) == 0 || !simulation.AllSorted(decisions) {
			return ErrUnsortedProposals
		}

		req = oracle.VerdictRequest{
			Title:       st.session.Title,
			Description: st.session.Description,
			State:       simulation.ProjectBudget(st.session.Base, decisions),
			Decisions:   decisions,
			Narrative:   narrative,
		}
		generation = st.generation
		return nil
	})
	if err != nil {
		return View{}, err
	}

	octx, cancel := s.oracleContext(ctx)
	verdict, err := s.oracle.Verdict(octx, req)
	cancel()
	if err != nil {
		s.fallback("verdict", err)
		verdict = oracle.FallbackVerdict()
	}

	view, err := s.update(ctx, a, unchangedSince(generation, models.PhasePlaying), func(st *state) error {
		st.session.Narrative = narrative
		st.session.Verdict = &verdict
		st.session.Chat = []simulation.ChatMessage{{Role: simulation.RoleBoard, Text: verdict.Feedback}}
		st.session.Phase = models.PhaseJudged
		return nil
	})
	if err != nil {
		return View{}, err
	}

	s.metrics.verdicts.WithLabelValues(strconv.FormatBool(verdict.Approved)).Inc()
	return view, nil
}

// Revise discards the verdict and returns to sorting cards.
func (s *Service) Revise(ctx context.Context, id uuid.UUID) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	return s.update(ctx, a, inPhase(models.PhaseJudged), func(st *state) error {
		st.session.Phase = models.PhasePlaying
		st.session.Verdict = nil
		st.session.Chat = nil
		return nil
	})
}

// Advance closes an approved year and starts the next one.
func (s *Service) Advance(ctx context.Context, id uuid.UUID) (View, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	return s.update(ctx, a, inPhase(models.PhaseJudged), func(st *state) error {
		if st.session.Verdict == nil {
			return ErrWrongPhase
		}
		if !st.session.Verdict.Approved {
			return ErrNotApproved
		}

		decisions := st.ledger.Decisions()
		derived := simulation.ProjectBudget(st.session.Base, decisions)

		st.pending = &models.YearResult{
			SessionID: st.session.ID,
			Year:      st.session.Base.Year,
			Verdict:   *st.session.Verdict,
			Narrative: st.session.Narrative,
			State:     derived,
			Decisions: decisions,
		}

		t := simulation.Advance(s.gen, st.session.ScenarioID, derived, decisions, st.session.FundedUnique)
		st.session.Base = t.Base
		st.session.FundedUnique = t.FundedUnique
		st.session.Phase = models.PhasePlaying
		st.session.Verdict = nil
		st.session.Chat = nil
		st.session.Narrative = ""
		st.ledger = simulation.NewLedger(t.Hand)
		return nil
	})
}

// Chat asks the board a question about its verdict.
func (s *Service) Chat(ctx context.Context, id uuid.UUID, message string) (View, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return View{}, ErrEmptyMessage
	}

	a, err := s.actor(ctx, id)
	if err != nil {
		return View{}, err
	}

	var req oracle.ChatRequest
	var generation uint64
	err = s.read(ctx, a, func(st *state) error {
		if err := inPhase(models.PhaseJudged)(st); err != nil {
			return err
		}
		if st.session.Verdict == nil {
			return ErrWrongPhase
		}

		decisions := st.ledger.Decisions()
		req = oracle.ChatRequest{
			Title:     st.session.Title,
			Verdict:   *st.session.Verdict,
			State:     simulation.ProjectBudget(st.session.Base, decisions),
			Decisions: decisions,
			History:   slices.Clone(st.session.Chat),
			Message:   message,
		}
		generation = st.generation
		return nil
	})
	if err != nil {
		return View{}, err
	}

	octx, cancel := s.oracleContext(ctx)
	reply, err := s.oracle.Chat(octx, req)
	cancel()
	if err != nil {
		s.fallback("chat", err)
		reply = oracle.ChatUnavailable
	}

	return s.update(ctx, a, unchangedSince(generation, models.PhaseJudged), func(st *state) error {
		st.session.Chat = append(slices.Clone(st.session.Chat),
			simulation.ChatMessage{Role: simulation.RoleUser, Text: message},
			simulation.ChatMessage{Role: simulation.RoleBoard, Text: reply},
		)
		return nil
	})
}

// YearResults lists the finished years of a session.
func (s *Service) YearResults(ctx context.Context, id uuid.UUID) ([]models.YearResult, error) {
	a, err := s.actor(ctx, id)
	if err != nil {
		return nil, err
	}

	var results []models.YearResult
	err = s.read(ctx, a, func(st *state) error {
		var findErr error
		results, findErr = st.session.YearResults(s.db.WithContext(ctx))
		return findErr
	})
	return results, err
}

// Fact returns a statistic about school finance.
func (s *Service) Fact(ctx context.Context) string {
	octx, cancel := s.oracleContext(ctx)
	defer cancel()

	fact, err := s.oracle.Fact(octx)
	if err != nil {
		s.fallback("fact", err)
		return oracle.StaticFact()
	}
	return fact
}
