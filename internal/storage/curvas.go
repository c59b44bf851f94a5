package storage

// RawMonthlyRow is one project's metrics for one month as read from the warehouse.
// Month and numeric fields keep whatever representation the source produced.
type RawMonthlyRow struct {
	ProjectCode          string `json:"project_code"`
	Month                any    `json:"month"`
	Lider                string `json:"lider"`
	NomeTime             string `json:"nome_time"`
	Status               string `json:"status"`
	CustoDiretoMes       any    `json:"custo_direto_mes"`
	CustoIndiretoMes     any    `json:"custo_indireto_mes"`
	CustoTotalMes        any    `json:"custo_total_mes"`
	HorasMes             any    `json:"horas_mes"`
	ReceitaMes           any    `json:"receita_mes"`
	ReceitaLiquidaMes    any    `json:"receita_liquida_mes"`
	Margem55Mes          any    `json:"margem_55_mes"`
	MargemOperacionalMes any    `json:"margem_operacional_mes"`
	ReceitaBrutaTotal    any    `json:"receita_bruta_total"`
}

// CargoRow is one person's hours and costs on one project in one month.
type CargoRow struct {
	ProjectCode    string `json:"project_code"`
	Month          any    `json:"month"`
	Cargo          string `json:"cargo"`
	Usuario        string `json:"usuario"`
	Horas          any    `json:"horas"`
	HorasTotaisMes any    `json:"horas_totais_mes"`
	CustoDireto    any    `json:"custo_direto"`
	CustoIndireto  any    `json:"custo_indireto"`
}

// RawMonthTotal is a monthly cost total from either the ledger or the project distribution.
type RawMonthTotal struct {
	Month any `json:"month"`
	Total any `json:"total"`
}

// Scope is the coarse access restriction applied by the warehouse query.
// An empty Lider means no restriction.
type Scope struct {
	Lider string `json:"lider"`
}
