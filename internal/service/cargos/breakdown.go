package cargos

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dashboard-curvas/internal/constants"
	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/storage"
)

// PersonCost is one person's share of the filtered projects.
type PersonCost struct {
	Usuario string  `json:"usuario"`
	Horas   float64 `json:"horas"`
	// HorasTotaisMes is the person's hours on all projects, summed over distinct months.
	HorasTotaisMes float64 `json:"horasTotaisMes"`
	// PctHoras is nil when the total hours are unknown.
	PctHoras      *float64 `json:"pctHoras"`
	CustoDireto   float64  `json:"custoDireto"`
	CustoIndireto float64  `json:"custoIndireto"`
	CustoTotal    float64  `json:"custoTotal"`
	Meses         int      `json:"meses"`
}

type CargoGroup struct {
	Cargo          string       `json:"cargo"`
	TotalHoras     float64      `json:"totalHoras"`
	HorasTotaisMes float64      `json:"horasTotaisMes"`
	PctHoras       *float64     `json:"pctHoras"`
	CustoDireto    float64      `json:"custoDireto"`
	CustoIndireto  float64      `json:"custoIndireto"`
	CustoTotal     float64      `json:"custoTotal"`
	Pessoas        []PersonCost `json:"pessoas"`
}

type personKey struct {
	cargo   string
	usuario string
}

type personSums struct {
	horas         decimal.Decimal
	custoDireto   decimal.Decimal
	custoIndireto decimal.Decimal
	// totalsByMonth holds one total per distinct month; project rows of the
	// same month repeat it and must not add up.
	totalsByMonth map[string]float64
}

// BuildBreakdown groups cargo rows by role and person. A non-empty filterMonth
// keeps only the rows of that month. Rows from the month of now onwards are
// dropped, as in the monthly series, since that month is still open.
func BuildBreakdown(rows []storage.CargoRow, filterMonth string, now time.Time) ([]CargoGroup, error) {
	if filterMonth != "" && !normalize.ValidMonth(filterMonth) {
		return nil, fmt.Errorf("breakdown month %q: %w", filterMonth, normalize.ErrInvalidMonth)
	}

	openMonth := normalize.MonthOf(now)

	people := make(map[personKey]*personSums)
	for _, row := range rows {
		mes, ok := normalize.Month(row.Month)
		if !ok || mes >= openMonth {
			continue
		}
		if filterMonth != "" && mes != filterMonth {
			continue
		}

		key := personKey{cargo: label(row.Cargo, constants.NoCargo), usuario: label(row.Usuario, constants.NoUsuario)}
		sums, ok := people[key]
		if !ok {
			sums = &personSums{totalsByMonth: make(map[string]float64)}
			people[key] = sums
		}

		sums.horas = sums.horas.Add(decimal.NewFromFloat(normalize.AbsAmount(row.Horas)))
		sums.custoDireto = sums.custoDireto.Add(decimal.NewFromFloat(normalize.AbsAmount(row.CustoDireto)))
		sums.custoIndireto = sums.custoIndireto.Add(decimal.NewFromFloat(normalize.AbsAmount(row.CustoIndireto)))

		total := normalize.AbsAmount(row.HorasTotaisMes)
		if cur, seen := sums.totalsByMonth[mes]; !seen || total > cur {
			sums.totalsByMonth[mes] = total
		}
	}

	byCargo := make(map[string][]PersonCost)
	for key, sums := range people {
		byCargo[key.cargo] = append(byCargo[key.cargo], sums.person(key.usuario))
	}

	groups := make([]CargoGroup, 0, len(byCargo))
	for cargo, pessoas := range byCargo {
		groups = append(groups, newGroup(cargo, pessoas))
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].CustoTotal != groups[j].CustoTotal {
			return groups[i].CustoTotal > groups[j].CustoTotal
		}
		return groups[i].Cargo < groups[j].Cargo
	})

	return groups, nil
}

func (s *personSums) person(usuario string) PersonCost {
	totais := decimal.Zero
	for _, v := range s.totalsByMonth {
		totais = totais.Add(decimal.NewFromFloat(v))
	}

	horas := s.horas.InexactFloat64()
	horasTotais := totais.InexactFloat64()

	return PersonCost{
		Usuario:        usuario,
		Horas:          horas,
		HorasTotaisMes: horasTotais,
		PctHoras:       pct(horas, horasTotais),
		CustoDireto:    s.custoDireto.InexactFloat64(),
		CustoIndireto:  s.custoIndireto.InexactFloat64(),
		CustoTotal:     s.custoDireto.Add(s.custoIndireto).InexactFloat64(),
		Meses:          len(s.totalsByMonth),
	}
}

func newGroup(cargo string, pessoas []PersonCost) CargoGroup {
	sort.Slice(pessoas, func(i, j int) bool {
		if pessoas[i].CustoTotal != pessoas[j].CustoTotal {
			return pessoas[i].CustoTotal > pessoas[j].CustoTotal
		}
		return pessoas[i].Usuario < pessoas[j].Usuario
	})

	var horas, totais, direto, indireto decimal.Decimal
	for _, p := range pessoas {
		horas = horas.Add(decimal.NewFromFloat(p.Horas))
		totais = totais.Add(decimal.NewFromFloat(p.HorasTotaisMes))
		direto = direto.Add(decimal.NewFromFloat(p.CustoDireto))
		indireto = indireto.Add(decimal.NewFromFloat(p.CustoIndireto))
	}

	g := CargoGroup{
		Cargo:          cargo,
		TotalHoras:     horas.InexactFloat64(),
		HorasTotaisMes: totais.InexactFloat64(),
		CustoDireto:    direto.InexactFloat64(),
		CustoIndireto:  indireto.InexactFloat64(),
		CustoTotal:     direto.Add(indireto).InexactFloat64(),
		Pessoas:        pessoas,
	}
	g.PctHoras = pct(g.TotalHoras, g.HorasTotaisMes)

	return g
}

func pct(horas, total float64) *float64 {
	if total <= 0 {
		return nil
	}

	v := horas / total * 100
	return &v
}

func label(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
