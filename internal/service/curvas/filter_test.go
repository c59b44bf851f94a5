package curvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dashboard-curvas/internal/storage"
)

func filterRows() []storage.RawMonthlyRow {
	return []storage.RawMonthlyRow{
		{ProjectCode: "P1", Month: "2024-01", Lider: "João Silva", NomeTime: "Estruturas", Status: "Em execução"},
		{ProjectCode: "P1", Month: "2024-02", Lider: "João Silva", NomeTime: "Estruturas", Status: "Em execução"},
		{ProjectCode: "P2", Month: "2024-03", Lider: "Maria", NomeTime: "Fundações", Status: "Concluído"},
		{ProjectCode: "P3", Month: "bad", Lider: "Maria", NomeTime: "Fundações", Status: "Pausado"},
	}
}

func TestFilter_Empty(t *testing.T) {
	rows := filterRows()
	assert.Equal(t, rows, Filter{}.Apply(rows))
}

func TestFilter_TextFieldsFoldAccents(t *testing.T) {
	got := Filter{Lideres: []string{"joao silva"}, Times: []string{"ESTRUTURAS"}}.Apply(filterRows())

	assert.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "P1", r.ProjectCode)
	}
}

func TestFilter_Projects(t *testing.T) {
	got := Filter{Projetos: []string{" P2 ", "P3"}}.Apply(filterRows())
	assert.Len(t, got, 2)
}

func TestFilter_StatusAndFase(t *testing.T) {
	assert.Len(t, Filter{Status: []string{"concluido"}}.Apply(filterRows()), 1)
	assert.Len(t, Filter{Fases: []string{"ativos"}}.Apply(filterRows()), 2)
	assert.Len(t, Filter{Fases: []string{"Finalizados", "pausados"}}.Apply(filterRows()), 2)
}

func TestFilter_MonthRangeKeepsUnreadableMonths(t *testing.T) {
	got := Filter{De: "2024-02", Ate: "2024-03"}.Apply(filterRows())

	codes := make([]string, 0, len(got))
	for _, r := range got {
		codes = append(codes, r.ProjectCode)
	}
	assert.Equal(t, []string{"P1", "P2", "P3"}, codes)
}

func TestFilter_ProjectCodes(t *testing.T) {
	codes := Filter{Lideres: []string{"Maria"}}.ProjectCodes(filterRows())
	assert.Equal(t, map[string]bool{"P2": true, "P3": true}, codes)
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{De: "2024-01", Ate: "2024-01", Fases: []string{"Ativos"}}.Validate())

	assert.ErrorIs(t, Filter{De: "2024-1"}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, Filter{Ate: "março"}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, Filter{De: "2024-05", Ate: "2024-01"}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, Filter{Fases: []string{"todos"}}.Validate(), ErrInvalidFilter)
}
