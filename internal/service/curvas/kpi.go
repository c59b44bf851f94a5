package curvas

import (
	"strings"

	"github.com/shopspring/decimal"

	"dashboard-curvas/internal/constants"
	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/storage"
)

type KpiOptions struct {
	// MinActiveMonthCost excludes months below it from the average cost.
	MinActiveMonthCost float64
}

func DefaultKpiOptions() KpiOptions {
	return KpiOptions{MinActiveMonthCost: constants.MinActiveMonthCost}
}

// ComputeKpis reads the last point of the curve as "today" and derives the
// headline metrics. rows are the filtered warehouse rows behind the curve.
func ComputeKpis(curves []CumulativePoint, rows []storage.RawMonthlyRow, opts KpiOptions) KpiSet {
	var kpis KpiSet

	if len(curves) > 0 {
		last := curves[len(curves)-1]

		kpis.UltimoMes = last.Mes
		kpis.CustoTotalAcumulado = last.CustoTotalAcumulado
		kpis.ReceitaBrutaAcumulada = last.ReceitaBrutaAcumulado
		kpis.Margem55Acumulada = last.Margem55Acumulado
		kpis.MargemOperacionalAcumulada = last.MargemOperacionalAcumulado
		kpis.MargemPercentual = MarginPercent(last.Margem55Acumulado, last.CustoTotalAcumulado)
	}

	kpis.CustoMedio, kpis.MesesAtivos = averageCost(curves, opts.MinActiveMonthCost)

	contrato, projetos := contractValue(rows)
	kpis.ValorContrato = contrato
	kpis.Projetos = projetos
	kpis.FaltaReceber = decimal.NewFromFloat(contrato).
		Sub(decimal.NewFromFloat(kpis.ReceitaBrutaAcumulada)).
		InexactFloat64()

	return kpis
}

// MarginPercent is (margin55 - cost) / margin55 * 100, or 0 when there is no margin.
func MarginPercent(margem55, custo float64) float64 {
	if margem55 <= 0 {
		return 0
	}
	return (margem55 - custo) / margem55 * 100
}

func averageCost(curves []CumulativePoint, threshold float64) (float64, int) {
	sum := decimal.Zero
	months := 0

	for _, p := range curves {
		if p.CustoTotalMes < threshold {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(p.CustoTotalMes))
		months++
	}

	if months == 0 {
		return 0, 0
	}

	return sum.Div(decimal.NewFromInt(int64(months))).InexactFloat64(), months
}

// contractValue sums receita_bruta_total once per project. The field repeats
// on every monthly row; the largest value seen for a project wins so one
// unreadable row does not zero it. Rows without a project code belong to no
// contract and are skipped.
func contractValue(rows []storage.RawMonthlyRow) (float64, int) {
	perProject := make(map[string]float64)
	for _, row := range rows {
		code := strings.TrimSpace(row.ProjectCode)
		if code == "" {
			continue
		}
		v := normalize.AbsAmount(row.ReceitaBrutaTotal)
		if cur, ok := perProject[code]; !ok || v > cur {
			perProject[code] = v
		}
	}

	total := decimal.Zero
	for _, v := range perProject {
		total = total.Add(decimal.NewFromFloat(v))
	}

	return total.InexactFloat64(), len(perProject)
}
