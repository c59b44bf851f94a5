package curvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dashboard-curvas/internal/storage"
)

func TestComputeKpis(t *testing.T) {
	curves := []CumulativePoint{
		{Mes: "2024-01", CustoTotalMes: 1000, CustoTotalAcumulado: 1000, ReceitaBrutaAcumulado: 2000, Margem55Acumulado: 1100, MargemOperacionalAcumulado: 100},
		{Mes: "2024-02", CustoTotalMes: 100, CustoTotalAcumulado: 1100, ReceitaBrutaAcumulado: 2000, Margem55Acumulado: 1100, MargemOperacionalAcumulado: 0},
		{Mes: "2024-03", CustoTotalMes: 2000, CustoTotalAcumulado: 3100, ReceitaBrutaAcumulado: 6000, Margem55Acumulado: 3300, MargemOperacionalAcumulado: 200},
	}
	rows := []storage.RawMonthlyRow{
		{ProjectCode: "P1", ReceitaBrutaTotal: 5000},
		{ProjectCode: "P1", ReceitaBrutaTotal: "R$ 5.000,00"},
		{ProjectCode: "P2", ReceitaBrutaTotal: map[string]any{"value": 3000}},
	}

	kpis := ComputeKpis(curves, rows, DefaultKpiOptions())

	assert.InDelta(t, (3300.0-3100.0)/3300.0*100, kpis.MargemPercentual, 1e-9)
	assert.Equal(t, 1500.0, kpis.CustoMedio)
	assert.Equal(t, 2, kpis.MesesAtivos)
	assert.Equal(t, 8000.0, kpis.ValorContrato)
	assert.Equal(t, 2000.0, kpis.FaltaReceber)
	assert.Equal(t, 2, kpis.Projetos)
	assert.Equal(t, "2024-03", kpis.UltimoMes)
	assert.Equal(t, 3100.0, kpis.CustoTotalAcumulado)
	assert.Equal(t, 6000.0, kpis.ReceitaBrutaAcumulada)
	assert.Equal(t, 3300.0, kpis.Margem55Acumulada)
	assert.Equal(t, 200.0, kpis.MargemOperacionalAcumulada)
}

func TestComputeKpis_ContractValueCountedOncePerProject(t *testing.T) {
	var rows []storage.RawMonthlyRow
	for _, mes := range []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"} {
		rows = append(rows, storage.RawMonthlyRow{ProjectCode: "P1", Month: mes, ReceitaBrutaTotal: 500000})
	}

	kpis := ComputeKpis(nil, rows, DefaultKpiOptions())

	assert.Equal(t, 500000.0, kpis.ValorContrato)
	assert.Equal(t, 500000.0, kpis.FaltaReceber)
}

func TestComputeKpis_ZeroMarginGivesZeroPercent(t *testing.T) {
	curves := []CumulativePoint{{Mes: "2024-01", CustoTotalMes: 5000, CustoTotalAcumulado: 5000}}

	kpis := ComputeKpis(curves, nil, DefaultKpiOptions())

	assert.Equal(t, 0.0, kpis.MargemPercentual)
}

func TestComputeKpis_RevenueAboveContract(t *testing.T) {
	curves := []CumulativePoint{{Mes: "2024-01", ReceitaBrutaAcumulado: 1200}}
	rows := []storage.RawMonthlyRow{{ProjectCode: "P1", ReceitaBrutaTotal: 1000}}

	kpis := ComputeKpis(curves, rows, DefaultKpiOptions())

	assert.Equal(t, -200.0, kpis.FaltaReceber)
}

func TestComputeKpis_NoActiveMonths(t *testing.T) {
	curves := []CumulativePoint{
		{Mes: "2024-01", CustoTotalMes: 299.99},
		{Mes: "2024-02", CustoTotalMes: 0},
	}

	kpis := ComputeKpis(curves, nil, DefaultKpiOptions())

	assert.Equal(t, 0.0, kpis.CustoMedio)
	assert.Equal(t, 0, kpis.MesesAtivos)
}

func TestComputeKpis_ThresholdIsInclusive(t *testing.T) {
	curves := []CumulativePoint{
		{Mes: "2024-01", CustoTotalMes: 300},
		{Mes: "2024-02", CustoTotalMes: 100},
	}

	kpis := ComputeKpis(curves, nil, DefaultKpiOptions())

	assert.Equal(t, 300.0, kpis.CustoMedio)
	assert.Equal(t, 1, kpis.MesesAtivos)
}

func TestComputeKpis_Empty(t *testing.T) {
	assert.Equal(t, KpiSet{}, ComputeKpis(nil, nil, DefaultKpiOptions()))
}

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, 0.0, MarginPercent(0, 100))
	assert.Equal(t, 0.0, MarginPercent(-10, 100))
	assert.Equal(t, 50.0, MarginPercent(200, 100))
	assert.Equal(t, -100.0, MarginPercent(100, 200))
}

func TestComputeKpis_BlankProjectCodeIsNotAContract(t *testing.T) {
	rows := []storage.RawMonthlyRow{
		{ProjectCode: "P1", ReceitaBrutaTotal: 1000},
		{ProjectCode: "", ReceitaBrutaTotal: 9000},
		{ProjectCode: "   ", ReceitaBrutaTotal: 7000},
	}

	kpis := ComputeKpis(nil, rows, DefaultKpiOptions())

	assert.Equal(t, 1000.0, kpis.ValorContrato)
	assert.Equal(t, 1, kpis.Projetos)
}
