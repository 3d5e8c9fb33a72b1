package game_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/oracle"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/edunomics/superintendent/internal/test"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func noShuffle(int, func(i, j int)) {}

// fakeOracle answers with canned responses. Unset responses fail with oracle.ErrUnavailable.
type fakeOracle struct {
	mu sync.Mutex

	briefing   *oracle.Briefing
	districtID string
	roster     []simulation.School
	verdict    *simulation.Verdict
	reply      string
	fact       string

	// beforeVerdict runs while the board deliberates
	beforeVerdict func()

	financials   *opendata.Financials
	verdicts     []oracle.VerdictRequest
	chatRequests []oracle.ChatRequest
}

var _ oracle.Oracle = (*fakeOracle)(nil)

func (f *fakeOracle) Briefing(context.Context, simulation.District) (oracle.Briefing, error) {
	if f.briefing == nil {
		return oracle.Briefing{}, oracle.ErrUnavailable
	}
	return *f.briefing, nil
}

func (f *fakeOracle) DistrictID(context.Context, simulation.District) (string, error) {
	if f.districtID == "" {
		return "", oracle.ErrUnavailable
	}
	return f.districtID, nil
}

func (f *fakeOracle) Roster(_ context.Context, _ simulation.District, financials *opendata.Financials) ([]simulation.School, error) {
	f.mu.Lock()
	f.financials = financials
	f.mu.Unlock()

	if f.roster == nil {
		return nil, oracle.ErrInvalidResponse
	}
	return f.roster, nil
}

func (f *fakeOracle) Verdict(_ context.Context, req oracle.VerdictRequest) (simulation.Verdict, error) {
	f.mu.Lock()
	f.verdicts = append(f.verdicts, req)
	f.mu.Unlock()

	if f.beforeVerdict != nil {
		f.beforeVerdict()
	}

	if f.verdict == nil {
		return simulation.Verdict{}, oracle.ErrUnavailable
	}
	return *f.verdict, nil
}

func (f *fakeOracle) Chat(_ context.Context, req oracle.ChatRequest) (string, error) {
	f.mu.Lock()
	f.chatRequests = append(f.chatRequests, req)
	f.mu.Unlock()

	if f.reply == "" {
		return "", oracle.ErrUnavailable
	}
	return f.reply, nil
}

func (f *fakeOracle) Fact(context.Context) (string, error) {
	if f.fact == "" {
		return "", oracle.ErrUnavailable
	}
	return f.fact, nil
}

type fakeData struct {
	ncesID string
	result opendata.Result
}

func (f *fakeData) Lookup(_ context.Context, ncesID, _ string) (opendata.Result, error) {
	f.ncesID = ncesID
	return f.result, nil
}

type setup struct {
	oracle   oracle.Oracle
	data     game.DataSource
	registry *prometheus.Registry
	idle     time.Duration
	pool     *simulation.Pool
}

// newService connects a fresh database and creates a service on it.
// All actors of the service must be stopped when the test ends.
func newService(t *testing.T, s setup) *game.Service {
	require.NoError(t, models.Connect(test.TmpFile(t)))
	db := models.DB
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return serviceOn(t, s)
}

// serviceOn creates an additional service on the current database.
func serviceOn(t *testing.T, s setup) *game.Service {
	ignore := goleak.IgnoreCurrent()

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	pool := simulation.DefaultPool()
	if s.pool != nil {
		pool = *s.pool
	}

	svc, err := game.NewService(game.Config{
		DB:          models.DB,
		Oracle:      s.oracle,
		OpenData:    s.data,
		Generator:   simulation.NewGenerator(pool, noShuffle),
		Registerer:  s.registry,
		IdleTimeout: s.idle,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		svc.Close()
		goleak.VerifyNone(t, ignore)
	})

	return svc
}
