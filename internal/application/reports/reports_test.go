package reports

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// ------- fakes -------

// stubReportRepo devuelve agregados fijos y registra el since recibido.
type stubReportRepo struct {
	mu        sync.Mutex
	calls     int
	lastSince *time.Time

	stats  repository.InventoryStats
	totals repository.MovementTotals
	byDay  []repository.DayMovementResult
	byCat  []repository.CategoryStockResult
	top    []repository.TopItemResult
	low    []repository.LowStockResult
}

func (s *stubReportRepo) GetInventoryStats(_ context.Context, _ string) (*repository.InventoryStats, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	st := s.stats
	return &st, nil
}

func (s *stubReportRepo) GetMovementTotals(_ context.Context, _ string, since *time.Time) (*repository.MovementTotals, error) {
	s.mu.Lock()
	s.lastSince = since
	s.mu.Unlock()
	t := s.totals
	return &t, nil
}

func (s *stubReportRepo) GetMovementsByDay(_ context.Context, _ string, _ *time.Time) ([]repository.DayMovementResult, error) {
	return s.byDay, nil
}

func (s *stubReportRepo) GetStockByCategory(_ context.Context, _ string) ([]repository.CategoryStockResult, error) {
	return s.byCat, nil
}

func (s *stubReportRepo) GetTopMovingItems(_ context.Context, _ string, _ *time.Time, _ int) ([]repository.TopItemResult, error) {
	return s.top, nil
}

func (s *stubReportRepo) GetLowStockItems(_ context.Context, _ string, _ int) ([]repository.LowStockResult, error) {
	return s.low, nil
}

type stubMovementRepo struct {
	movements []*entity.StockMovement
}

func (s *stubMovementRepo) Create(_ context.Context, _ *entity.StockMovement) error { return nil }

func (s *stubMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.Limit > 0 && len(s.movements) > f.Limit {
		return s.movements[:f.Limit], nil
	}
	return s.movements, nil
}

func (s *stubMovementRepo) ListByItemAsc(_ context.Context, _ string) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (s *stubMovementRepo) CountByItem(_ context.Context, _ string) (int, error) { return 0, nil }

type allowAllGate struct{ denied error }

func (g *allowAllGate) Assert(_ context.Context, _ access.Identity, _ string) error {
	return g.denied
}

// memViewCache cache en memoria para los tests.
type memViewCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemViewCache() *memViewCache { return &memViewCache{entries: map[string][]byte{}} }

func (c *memViewCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *memViewCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *memViewCache) InvalidateTeam(_ context.Context, teamID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		delete(c.entries, k)
	}
	_ = teamID
}

func testIdentity() access.Identity {
	return access.Identity{UserID: "user-1", TeamID: "team-1", Role: entity.RoleAdmin}
}

func sampleRepo() *stubReportRepo {
	return &stubReportRepo{
		stats: repository.InventoryStats{
			TotalItems: 12, LowStock: 3, OutOfStock: 1,
			TotalValue: decimal.RequireFromString("1520.505"),
		},
		totals: repository.MovementTotals{Movements: 40, TotalIn: 100, TotalOut: 60, TotalAdjust: 5},
		low: []repository.LowStockResult{
			{ItemID: "i1", ItemName: "Resina A2", CurrentStock: 2, Threshold: 5, Deficit: 3},
		},
		top: []repository.TopItemResult{
			{ItemID: "i1", ItemName: "Resina A2", TotalIn: 50, TotalOut: 30, TotalMovement: 80},
		},
	}
}

// ------- tablero -------

func TestDashboardResumen(t *testing.T) {
	repo := sampleRepo()
	movs := &stubMovementRepo{movements: []*entity.StockMovement{
		{ID: "m1", TeamID: "team-1", ItemID: "i1", Type: entity.MovementTypeIn, Quantity: 5, PreviousStock: 0, NewStock: 5},
	}}
	uc := NewDashboardUseCase(repo, movs, &allowAllGate{}, nil)

	resp, err := uc.GetSummary(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stats.TotalItems)
	assert.Equal(t, 3, resp.Stats.LowStock)
	assert.Equal(t, 1, resp.Stats.OutOfStock)
	assert.True(t, resp.Stats.TotalValue.Equal(decimal.RequireFromString("1520.51")))
	require.Len(t, resp.LowStockItems, 1)
	assert.Equal(t, 3, resp.LowStockItems[0].Deficit)
	require.Len(t, resp.RecentMovements, 1)
	assert.Equal(t, "m1", resp.RecentMovements[0].ID)
}

func TestDashboardUsaCache(t *testing.T) {
	repo := sampleRepo()
	cache := newMemViewCache()
	uc := NewDashboardUseCase(repo, &stubMovementRepo{}, &allowAllGate{}, cache)

	_, err := uc.GetSummary(context.Background(), testIdentity())
	require.NoError(t, err)
	first := repo.calls

	// Segunda consulta: servida desde cache, sin tocar el repositorio.
	_, err = uc.GetSummary(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.Equal(t, first, repo.calls)

	// Tras invalidar, se recalcula.
	cache.InvalidateTeam(context.Background(), "team-1")
	_, err = uc.GetSummary(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.Equal(t, first+1, repo.calls)
}

func TestDashboardGateDenegado(t *testing.T) {
	uc := NewDashboardUseCase(sampleRepo(), &stubMovementRepo{}, &allowAllGate{denied: domain.ErrSubscriptionExpired}, nil)

	_, err := uc.GetSummary(context.Background(), testIdentity())
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)
}

// ------- reporte por período -------

func TestReportePeriodos(t *testing.T) {
	repo := sampleRepo()
	uc := NewReportsUseCase(repo, nil, &allowAllGate{}, nil, nil)

	for _, period := range []string{Period7d, Period30d, Period90d} {
		resp, err := uc.Get(context.Background(), testIdentity(), period)
		require.NoError(t, err)
		assert.Equal(t, period, resp.Period)
		require.NotNil(t, repo.lastSince)
	}

	resp, err := uc.Get(context.Background(), testIdentity(), PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, resp.Period)
	assert.Nil(t, repo.lastSince)
}

func TestReportePeriodoPorDefecto(t *testing.T) {
	uc := NewReportsUseCase(sampleRepo(), nil, &allowAllGate{}, nil, nil)

	resp, err := uc.Get(context.Background(), testIdentity(), "")
	require.NoError(t, err)
	assert.Equal(t, Period30d, resp.Period)
}

func TestReportePeriodoInvalido(t *testing.T) {
	uc := NewReportsUseCase(sampleRepo(), nil, &allowAllGate{}, nil, nil)

	_, err := uc.Get(context.Background(), testIdentity(), "365d")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReporteResumen(t *testing.T) {
	repo := sampleRepo()
	repo.byDay = []repository.DayMovementResult{
		{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), In: 10, Out: 4},
	}
	repo.byCat = []repository.CategoryStockResult{
		{CategoryID: "c1", CategoryName: "Resinas", ItemCount: 4, TotalStock: 40, TotalValue: decimal.NewFromInt(900)},
	}
	uc := NewReportsUseCase(repo, nil, &allowAllGate{}, nil, nil)

	resp, err := uc.Get(context.Background(), testIdentity(), Period30d)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Summary.TotalMovements)
	assert.Equal(t, 100, resp.Summary.TotalIn)
	assert.Equal(t, 60, resp.Summary.TotalOut)
	assert.Equal(t, 3, resp.Summary.LowStockCount)
	require.Len(t, resp.MovementTrends, 1)
	require.Len(t, resp.StockByCategory, 1)
	require.Len(t, resp.TopMovingItems, 1)
	assert.Equal(t, 80, resp.TopMovingItems[0].TotalMovement)
}

func TestReporteCachePorPeriodo(t *testing.T) {
	repo := sampleRepo()
	cache := newMemViewCache()
	uc := NewReportsUseCase(repo, nil, &allowAllGate{}, cache, nil)

	_, err := uc.Get(context.Background(), testIdentity(), Period7d)
	require.NoError(t, err)
	first := repo.calls

	_, err = uc.Get(context.Background(), testIdentity(), Period7d)
	require.NoError(t, err)
	assert.Equal(t, first, repo.calls)

	// Otro período es otra clave: recalcula.
	_, err = uc.Get(context.Background(), testIdentity(), Period90d)
	require.NoError(t, err)
	assert.Equal(t, first+1, repo.calls)
}

// ------- exportación PDF -------

type stubPDF struct{ rendered *dto.ReportResponse }

func (s *stubPDF) Render(report *dto.ReportResponse, _ string) ([]byte, error) {
	s.rendered = report
	return []byte("%PDF-1.7 stub"), nil
}

type stubTeamRepo struct{}

func (stubTeamRepo) Create(_ context.Context, _ *entity.Team) error { return nil }

func (stubTeamRepo) GetByID(_ context.Context, id string) (*entity.Team, error) {
	return &entity.Team{ID: id, Name: "Laboratorio Pérez"}, nil
}

func (stubTeamRepo) GetDetails(_ context.Context, id string) (*entity.TeamDetails, error) {
	return &entity.TeamDetails{Team: entity.Team{ID: id, Name: "Laboratorio Pérez"}}, nil
}

func (stubTeamRepo) GetPlanByName(_ context.Context, _ string) (*entity.Plan, error) {
	return nil, nil
}

func TestExportPDF(t *testing.T) {
	pdf := &stubPDF{}
	uc := NewReportsUseCase(sampleRepo(), stubTeamRepo{}, &allowAllGate{}, nil, pdf)

	raw, err := uc.ExportPDF(context.Background(), testIdentity(), Period30d)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	require.NotNil(t, pdf.rendered)
	assert.Equal(t, Period30d, pdf.rendered.Period)
}

// ------- /teams/me -------

func TestTeamsMe(t *testing.T) {
	uc := NewTeamUseCase(stubTeamRepo{})

	resp, err := uc.Me(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.Equal(t, "Laboratorio Pérez", resp.Name)
	assert.False(t, resp.Expired)
}

func TestTeamsMeSinIdentidad(t *testing.T) {
	uc := NewTeamUseCase(stubTeamRepo{})

	_, err := uc.Me(context.Background(), access.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
