package reconcile

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/storage"
)

type MonthTotal struct {
	Mes   string  `json:"mes"`
	Total float64 `json:"total"`
}

// Record compares the ledger total of a month with what was distributed to projects.
type Record struct {
	Mes        string  `json:"mes"`
	TotalFonte float64 `json:"total_fonte"`
	TotalDist  float64 `json:"total_dist"`
	Diferenca  float64 `json:"diferenca"`
	Divergente bool    `json:"divergente"`
}

type Summary struct {
	TotalDivergentMonths  int     `json:"totalDivergentMonths"`
	SumAbsoluteDifference float64 `json:"sumAbsoluteDifference"`
}

type Report struct {
	Tolerance float64  `json:"tolerance"`
	All       []Record `json:"all"`
	Divergent []Record `json:"divergent"`
	Summary   Summary  `json:"summary"`
}

// Reconcile joins both sides by month, treating a missing side as zero.
// A month diverges when |total_fonte - total_dist| > tolerance.
// Repeated months on one side are summed.
func Reconcile(source, distributed []MonthTotal, tolerance float64) Report {
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = 0
	}
	tol := decimal.NewFromFloat(tolerance)

	fonte := sumByMonth(source)
	dist := sumByMonth(distributed)

	months := make([]string, 0, len(fonte)+len(dist))
	for mes := range fonte {
		months = append(months, mes)
	}
	for mes := range dist {
		if _, ok := fonte[mes]; !ok {
			months = append(months, mes)
		}
	}
	sort.Strings(months)

	report := Report{
		Tolerance: tolerance,
		All:       make([]Record, 0, len(months)),
		Divergent: make([]Record, 0),
	}
	sumAbs := decimal.Zero

	for _, mes := range months {
		diff := fonte[mes].Sub(dist[mes])
		rec := Record{
			Mes:        mes,
			TotalFonte: fonte[mes].InexactFloat64(),
			TotalDist:  dist[mes].InexactFloat64(),
			Diferenca:  diff.InexactFloat64(),
			Divergente: diff.Abs().GreaterThan(tol),
		}

		report.All = append(report.All, rec)
		if rec.Divergente {
			report.Divergent = append(report.Divergent, rec)
			sumAbs = sumAbs.Add(diff.Abs())
		}
	}

	report.Summary = Summary{
		TotalDivergentMonths:  len(report.Divergent),
		SumAbsoluteDifference: sumAbs.InexactFloat64(),
	}

	return report
}

// SumTotals normalizes warehouse totals into month keys. Rows without a
// readable month are dropped; unreadable amounts count as zero.
func SumTotals(raw []storage.RawMonthTotal) []MonthTotal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range raw {
		mes, ok := normalize.Month(r.Month)
		if !ok {
			continue
		}
		sums[mes] = sums[mes].Add(decimal.NewFromFloat(normalize.Amount(r.Total)))
	}

	out := make([]MonthTotal, 0, len(sums))
	for mes, total := range sums {
		out = append(out, MonthTotal{Mes: mes, Total: total.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mes < out[j].Mes })

	return out
}

func sumByMonth(totals []MonthTotal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		if !normalize.ValidMonth(t.Mes) {
			continue
		}
		out[t.Mes] = out[t.Mes].Add(decimal.NewFromFloat(normalize.Amount(t.Total)))
	}
	return out
}
