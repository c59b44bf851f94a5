package curvas

import (
	"time"

	"github.com/shopspring/decimal"

	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/storage"
)

// Aggregator builds the gap-free monthly series of a filtered row set.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator returns an Aggregator using now as the clock; nil means time.Now.
func NewAggregator(now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}

	return &Aggregator{now: now}
}

type monthSums struct {
	custoTotal           decimal.Decimal
	custoDireto          decimal.Decimal
	custoIndireto        decimal.Decimal
	horas                decimal.Decimal
	receitaMes           decimal.Decimal
	receitaLiquidaMes    decimal.Decimal
	margem55Mes          decimal.Decimal
	margemOperacionalMes decimal.Decimal
}

// add folds one row in. Every field is summed as an absolute value except
// the operational margin, which may be a loss.
func (s monthSums) add(row storage.RawMonthlyRow) monthSums {
	return monthSums{
		custoTotal:           s.custoTotal.Add(abs(row.CustoTotalMes)),
		custoDireto:          s.custoDireto.Add(abs(row.CustoDiretoMes)),
		custoIndireto:        s.custoIndireto.Add(abs(row.CustoIndiretoMes)),
		horas:                s.horas.Add(abs(row.HorasMes)),
		receitaMes:           s.receitaMes.Add(abs(row.ReceitaMes)),
		receitaLiquidaMes:    s.receitaLiquidaMes.Add(abs(row.ReceitaLiquidaMes)),
		margem55Mes:          s.margem55Mes.Add(abs(row.Margem55Mes)),
		margemOperacionalMes: s.margemOperacionalMes.Add(signed(row.MargemOperacionalMes)),
	}
}

func (s monthSums) aggregate(mes string) MonthlyAggregate {
	return MonthlyAggregate{
		Mes:                  mes,
		CustoTotal:           s.custoTotal.InexactFloat64(),
		CustoDireto:          s.custoDireto.InexactFloat64(),
		CustoIndireto:        s.custoIndireto.InexactFloat64(),
		Horas:                s.horas.InexactFloat64(),
		ReceitaMes:           s.receitaMes.InexactFloat64(),
		ReceitaLiquidaMes:    s.receitaLiquidaMes.InexactFloat64(),
		Margem55Mes:          s.margem55Mes.InexactFloat64(),
		MargemOperacionalMes: s.margemOperacionalMes.InexactFloat64(),
	}
}

// Aggregate groups rows by month and walks every month from the first to the
// last one present, stopping before the current calendar month. Months without
// rows come out as zero aggregates. Rows whose month cannot be read are dropped.
func (a *Aggregator) Aggregate(rows []storage.RawMonthlyRow) []MonthlyAggregate {
	grouped := make(map[string]monthSums)
	var first, last string

	for _, row := range rows {
		mes, ok := normalize.Month(row.Month)
		if !ok {
			continue
		}

		grouped[mes] = grouped[mes].add(row)

		if first == "" || mes < first {
			first = mes
		}
		if mes > last {
			last = mes
		}
	}

	series := make([]MonthlyAggregate, 0, len(grouped))
	if len(grouped) == 0 {
		return series
	}

	current := normalize.MonthOf(a.now())
	for mes := first; mes <= last && mes < current; {
		if sums, ok := grouped[mes]; ok {
			series = append(series, sums.aggregate(mes))
		} else {
			series = append(series, MonthlyAggregate{Mes: mes})
		}

		next, err := normalize.AddMonths(mes, 1)
		if err != nil {
			break
		}
		mes = next
	}

	return series
}

func abs(raw any) decimal.Decimal {
	return decimal.NewFromFloat(normalize.AbsAmount(raw))
}

func signed(raw any) decimal.Decimal {
	return decimal.NewFromFloat(normalize.Amount(raw))
}
