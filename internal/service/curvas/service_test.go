package curvas

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dashboard-curvas/internal/storage"
)

type MockCurvasStorage struct {
	mock.Mock
}

func (m *MockCurvasStorage) GetMonthlyRows(ctx context.Context, scope storage.Scope) ([]storage.RawMonthlyRow, error) {
	args := m.Called(ctx, scope)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]storage.RawMonthlyRow), args.Error(1)
}

func newTestService(st CurvasStorage) *Service {
	return NewService(st, NewAggregator(fixedNow), Options{Kpi: DefaultKpiOptions()})
}

func TestService_CurvaS(t *testing.T) {
	mockStorage := new(MockCurvasStorage)
	rows := []storage.RawMonthlyRow{
		{ProjectCode: "P1", Month: "2024-01", Lider: "Ana", CustoTotalMes: 1000, ReceitaMes: 2000, Margem55Mes: 1100, ReceitaBrutaTotal: 10000},
		{ProjectCode: "P1", Month: "2024-03", Lider: "Ana", CustoTotalMes: 500, ReceitaMes: 0, Margem55Mes: 0, ReceitaBrutaTotal: 10000},
		{ProjectCode: "P2", Month: "2024-02", Lider: "Bruno", CustoTotalMes: 9999, ReceitaBrutaTotal: 50000},
	}
	mockStorage.On("GetMonthlyRows", mock.Anything, storage.Scope{}).Return(rows, nil)

	res, err := newTestService(mockStorage).CurvaS(context.Background(), storage.Scope{}, Filter{Lideres: []string{"ana"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, months(res.Series))
	assert.Equal(t, 0.0, res.Series[1].CustoTotal)
	require.Len(t, res.Curves, 3)
	assert.Equal(t, 1500.0, res.Curves[2].CustoTotalAcumulado)
	assert.Equal(t, 10000.0, res.Kpis.ValorContrato)
	assert.Equal(t, 8000.0, res.Kpis.FaltaReceber)
	assert.Equal(t, 750.0, res.Kpis.CustoMedio)

	mockStorage.AssertExpectations(t)
}

func TestService_CurvaS_InvalidFilter(t *testing.T) {
	mockStorage := new(MockCurvasStorage)

	_, err := newTestService(mockStorage).CurvaS(context.Background(), storage.Scope{}, Filter{De: "jan"})

	assert.ErrorIs(t, err, ErrInvalidFilter)
	mockStorage.AssertNotCalled(t, "GetMonthlyRows")
}

func TestService_CurvaS_StorageError(t *testing.T) {
	mockStorage := new(MockCurvasStorage)
	mockStorage.On("GetMonthlyRows", mock.Anything, storage.Scope{Lider: "Ana"}).Return(nil, assert.AnError)

	_, err := newTestService(mockStorage).CurvaS(context.Background(), storage.Scope{Lider: "Ana"}, Filter{})

	assert.ErrorIs(t, err, assert.AnError)
	mockStorage.AssertExpectations(t)
}

func TestService_Compute_EmptyRows(t *testing.T) {
	res, err := newTestService(new(MockCurvasStorage)).Compute(nil, Filter{})
	require.NoError(t, err)

	assert.Empty(t, res.Series)
	assert.Empty(t, res.Curves)
	assert.Equal(t, KpiSet{}, res.Kpis)
}

func TestService_Compute_Idempotent(t *testing.T) {
	svc := newTestService(new(MockCurvasStorage))
	rows := []storage.RawMonthlyRow{
		{ProjectCode: "P1", Month: "2024-01", CustoTotalMes: "R$ 10,00"},
		{ProjectCode: "P1", Month: "2024-04", CustoTotalMes: 5},
	}

	first, err := svc.Compute(rows, Filter{})
	require.NoError(t, err)
	second, err := svc.Compute(rows, Filter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Rows_SharesConcurrentFetches(t *testing.T) {
	mockStorage := new(MockCurvasStorage)
	release := make(chan struct{})
	entered := make(chan struct{})

	mockStorage.On("GetMonthlyRows", mock.Anything, storage.Scope{Lider: "Ana"}).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return([]storage.RawMonthlyRow{{ProjectCode: "P1"}}, nil).
		Once()

	svc := newTestService(mockStorage)

	var wg sync.WaitGroup
	results := make([][]storage.RawMonthlyRow, 2)
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.Rows(context.Background(), storage.Scope{Lider: "Ana"})
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], errs[1] = svc.Rows(context.Background(), storage.Scope{Lider: "Ana"})
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 1)
	}
	mockStorage.AssertNumberOfCalls(t, "GetMonthlyRows", 1)
}

func TestService_Rows_CallerCanceled(t *testing.T) {
	mockStorage := new(MockCurvasStorage)
	release := make(chan struct{})
	defer close(release)

	mockStorage.On("GetMonthlyRows", mock.Anything, storage.Scope{}).
		Run(func(args mock.Arguments) { <-release }).
		Return(nil, errors.New("unreachable"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(mockStorage).Rows(ctx, storage.Scope{})

	assert.ErrorIs(t, err, context.Canceled)
}
