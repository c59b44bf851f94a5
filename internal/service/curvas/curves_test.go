package curvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-curvas/internal/storage"
)

func TestBuildCurves_Accumulates(t *testing.T) {
	series := []MonthlyAggregate{
		{Mes: "2024-01", CustoTotal: 100, ReceitaMes: 300, Margem55Mes: 165},
		{Mes: "2024-02"},
		{Mes: "2024-03", CustoTotal: 200, ReceitaMes: 100, Margem55Mes: 55},
	}

	points := BuildCurves(series)

	require.Len(t, points, 3)
	assert.Equal(t, CumulativePoint{
		Mes: "2024-01", CustoTotalMes: 100, CustoTotalAcumulado: 100, ReceitaBrutaAcumulado: 300,
		Margem55Acumulado: 165, MargemOperacionalAcumulado: 65,
	}, points[0])
	assert.Equal(t, 100.0, points[1].CustoTotalAcumulado)
	assert.Equal(t, 0.0, points[1].CustoTotalMes)
	assert.Equal(t, CumulativePoint{
		Mes: "2024-03", CustoTotalMes: 200, CustoTotalAcumulado: 300, ReceitaBrutaAcumulado: 400,
		Margem55Acumulado: 220, MargemOperacionalAcumulado: -80,
	}, points[2])
}

func TestBuildCurves_FloorsAtZero(t *testing.T) {
	series := []MonthlyAggregate{
		{Mes: "2024-01", CustoTotal: -50, ReceitaMes: -10, Margem55Mes: -5},
		{Mes: "2024-02", CustoTotal: 30, ReceitaMes: 20, Margem55Mes: 10},
	}

	points := BuildCurves(series)

	assert.Equal(t, 0.0, points[0].CustoTotalAcumulado)
	assert.Equal(t, 0.0, points[0].ReceitaBrutaAcumulado)
	assert.Equal(t, 0.0, points[0].Margem55Acumulado)
	assert.Equal(t, 30.0, points[1].CustoTotalAcumulado)
	assert.Equal(t, 20.0, points[1].ReceitaBrutaAcumulado)
	assert.Equal(t, 10.0, points[1].Margem55Acumulado)
	assert.Equal(t, -20.0, points[1].MargemOperacionalAcumulado)
}

func TestBuildCurves_Empty(t *testing.T) {
	points := BuildCurves(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestBuildCurves_MonotoneOverAggregatedSeries(t *testing.T) {
	agg := NewAggregator(fixedNow)
	series := agg.Aggregate([]storage.RawMonthlyRow{
		{ProjectCode: "P1", Month: "2024-01", CustoTotalMes: -500, ReceitaMes: "R$ 100,00", Margem55Mes: 55},
		{ProjectCode: "P1", Month: "2024-03", CustoTotalMes: 10, ReceitaMes: "-20", Margem55Mes: -11},
		{ProjectCode: "P2", Month: "2024-05", CustoTotalMes: 1, ReceitaMes: 0, Margem55Mes: 0},
	})

	points := BuildCurves(series)
	require.Len(t, points, len(series))

	for i, p := range points {
		assert.GreaterOrEqual(t, p.CustoTotalAcumulado, 0.0)
		assert.GreaterOrEqual(t, p.ReceitaBrutaAcumulado, 0.0)
		assert.GreaterOrEqual(t, p.Margem55Acumulado, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, p.CustoTotalAcumulado, points[i-1].CustoTotalAcumulado)
			assert.GreaterOrEqual(t, p.ReceitaBrutaAcumulado, points[i-1].ReceitaBrutaAcumulado)
			assert.GreaterOrEqual(t, p.Margem55Acumulado, points[i-1].Margem55Acumulado)
		}
		assert.Equal(t, series[i].Mes, p.Mes)
	}
	assert.Less(t, points[len(points)-1].MargemOperacionalAcumulado, 0.0)
}
