package curvas

import "github.com/shopspring/decimal"

type runningTotals struct {
	custo    decimal.Decimal
	receita  decimal.Decimal
	margem55 decimal.Decimal
}

// next adds one month and floors each total at zero: a negative cumulative
// cost or revenue has no business meaning.
func (r runningTotals) next(m MonthlyAggregate) runningTotals {
	return runningTotals{
		custo:    floorZero(r.custo.Add(decimal.NewFromFloat(m.CustoTotal))),
		receita:  floorZero(r.receita.Add(decimal.NewFromFloat(m.ReceitaMes))),
		margem55: floorZero(r.margem55.Add(decimal.NewFromFloat(m.Margem55Mes))),
	}
}

// BuildCurves accumulates the monthly series into the S-curve. The operational
// margin is derived as margin55 minus cost and is never clamped.
func BuildCurves(series []MonthlyAggregate) []CumulativePoint {
	points := make([]CumulativePoint, 0, len(series))

	var totals runningTotals
	for _, m := range series {
		totals = totals.next(m)

		points = append(points, CumulativePoint{
			Mes:                        m.Mes,
			CustoTotalMes:              m.CustoTotal,
			CustoTotalAcumulado:        totals.custo.InexactFloat64(),
			ReceitaBrutaAcumulado:      totals.receita.InexactFloat64(),
			Margem55Acumulado:          totals.margem55.InexactFloat64(),
			MargemOperacionalAcumulado: totals.margem55.Sub(totals.custo).InexactFloat64(),
		})
	}

	return points
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
