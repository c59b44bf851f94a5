package curvas

import (
	"errors"
	"fmt"
	"strings"

	"dashboard-curvas/internal/constants"
	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/storage"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter narrows the warehouse rows to the selection made on the dashboard.
// Empty fields do not restrict anything. Text fields compare accent and case insensitive.
type Filter struct {
	Projetos []string `json:"projetos"`
	Lideres  []string `json:"lideres"`
	Times    []string `json:"times"`
	Status   []string `json:"status"`
	// Fases are phase groups from constants.Fases, e.g. "ativos".
	Fases []string `json:"fases"`
	De    string   `json:"de"`
	Ate   string   `json:"ate"`
}

func (f Filter) Validate() error {
	if f.De != "" && !normalize.ValidMonth(f.De) {
		return fmt.Errorf("%w: de=%q: %w", ErrInvalidFilter, f.De, normalize.ErrInvalidMonth)
	}
	if f.Ate != "" && !normalize.ValidMonth(f.Ate) {
		return fmt.Errorf("%w: ate=%q: %w", ErrInvalidFilter, f.Ate, normalize.ErrInvalidMonth)
	}
	if f.De != "" && f.Ate != "" && f.De > f.Ate {
		return fmt.Errorf("%w: de %s is after ate %s", ErrInvalidFilter, f.De, f.Ate)
	}
	for _, fase := range f.Fases {
		if _, ok := constants.Fases[normalize.Text(fase)]; !ok {
			return fmt.Errorf("%w: unknown fase %q", ErrInvalidFilter, fase)
		}
	}

	return nil
}

// Apply returns the rows matching f. The input slice is not modified.
func (f Filter) Apply(rows []storage.RawMonthlyRow) []storage.RawMonthlyRow {
	m := f.matcher()

	out := make([]storage.RawMonthlyRow, 0, len(rows))
	for _, row := range rows {
		if m.match(row) {
			out = append(out, row)
		}
	}

	return out
}

// ProjectCodes returns the distinct project codes of the rows matching f.
func (f Filter) ProjectCodes(rows []storage.RawMonthlyRow) map[string]bool {
	m := f.matcher()

	codes := make(map[string]bool)
	for _, row := range rows {
		if m.match(row) {
			codes[strings.TrimSpace(row.ProjectCode)] = true
		}
	}

	return codes
}

// InRange reports whether a month key falls inside De..Ate.
// Months that fail to normalize are left for the aggregator to drop.
func (f Filter) InRange(raw any) bool {
	if f.De == "" && f.Ate == "" {
		return true
	}

	mes, ok := normalize.Month(raw)
	if !ok {
		return true
	}
	if f.De != "" && mes < f.De {
		return false
	}
	if f.Ate != "" && mes > f.Ate {
		return false
	}

	return true
}

type matcher struct {
	filter   Filter
	projetos map[string]bool
	lideres  map[string]bool
	times    map[string]bool
	status   map[string]bool
	fases    []map[string]bool
}

func (f Filter) matcher() matcher {
	m := matcher{
		filter:   f,
		projetos: set(f.Projetos, strings.TrimSpace),
		lideres:  set(f.Lideres, normalize.Text),
		times:    set(f.Times, normalize.Text),
		status:   set(f.Status, normalize.Text),
	}
	for _, fase := range f.Fases {
		if vocab, ok := constants.Fases[normalize.Text(fase)]; ok {
			m.fases = append(m.fases, vocab)
		}
	}

	return m
}

func (m matcher) match(row storage.RawMonthlyRow) bool {
	if len(m.projetos) > 0 && !m.projetos[strings.TrimSpace(row.ProjectCode)] {
		return false
	}
	if len(m.lideres) > 0 && !m.lideres[normalize.Text(row.Lider)] {
		return false
	}
	if len(m.times) > 0 && !m.times[normalize.Text(row.NomeTime)] {
		return false
	}

	status := normalize.Text(row.Status)
	if len(m.status) > 0 && !m.status[status] {
		return false
	}
	if len(m.fases) > 0 {
		found := false
		for _, vocab := range m.fases {
			if vocab[status] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return m.filter.InRange(row.Month)
}

func set(values []string, fold func(string) string) map[string]bool {
	if len(values) == 0 {
		return nil
	}

	out := make(map[string]bool, len(values))
	for _, v := range values {
		if k := fold(v); k != "" {
			out[k] = true
		}
	}

	return out
}
