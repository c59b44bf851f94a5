package constants

const (
	// MonthLayout is the canonical month key layout. Keys sort as plain strings.
	MonthLayout = "2006-01"

	// MinActiveMonthCost is the lowest monthly cost counted as an operating month in the average cost KPI.
	MinActiveMonthCost = 300.0

	// ReconciliationTolerance is the largest accepted absolute difference between ledger and distributed totals.
	ReconciliationTolerance = 1.0

	// Labels for breakdown rows without a role or a person.
	NoCargo   = "Sem cargo"
	NoUsuario = "Não informado"
)

// Project phase groups used by the "fase" filter. Keys are folded with normalize.Text.
var (
	FaseAtivos = map[string]bool{
		"em andamento": true,
		"em execucao":  true,
		"execucao":     true,
		"ativo":        true,
		"mobilizacao":  true,
		"iniciado":     true,
	}

	FaseFinalizados = map[string]bool{
		"finalizado": true,
		"concluido":  true,
		"encerrado":  true,
		"entregue":   true,
	}

	FasePausados = map[string]bool{
		"pausado":    true,
		"suspenso":   true,
		"paralisado": true,
		"cancelado":  true,
	}
)

// Fases maps the public phase group name to its status vocabulary.
var Fases = map[string]map[string]bool{
	"ativos":      FaseAtivos,
	"finalizados": FaseFinalizados,
	"pausados":    FasePausados,
}
