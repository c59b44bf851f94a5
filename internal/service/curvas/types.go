package curvas

// MonthlyAggregate is the sum of every filtered row of one month.
type MonthlyAggregate struct {
	Mes                  string  `json:"mes"`
	CustoTotal           float64 `json:"custoTotal"`
	CustoDireto          float64 `json:"custoDireto"`
	CustoIndireto        float64 `json:"custoIndireto"`
	Horas                float64 `json:"horas"`
	ReceitaMes           float64 `json:"receitaMes"`
	ReceitaLiquidaMes    float64 `json:"receitaLiquidaMes"`
	Margem55Mes          float64 `json:"margem55Mes"`
	MargemOperacionalMes float64 `json:"margemOperacionalMes"`
}

// CumulativePoint is one month of the S-curve.
type CumulativePoint struct {
	Mes                        string  `json:"mes"`
	CustoTotalMes              float64 `json:"custoTotalMes"`
	CustoTotalAcumulado        float64 `json:"custoTotalAcumulado"`
	ReceitaBrutaAcumulado      float64 `json:"receitaBrutaAcumulado"`
	Margem55Acumulado          float64 `json:"margem55Acumulado"`
	MargemOperacionalAcumulado float64 `json:"margemOperacionalAcumulado"`
}

type KpiSet struct {
	MargemPercentual float64 `json:"margemPercentual"`
	CustoMedio       float64 `json:"custoMedio"`
	ValorContrato    float64 `json:"valorContrato"`
	FaltaReceber     float64 `json:"faltaReceber"`

	CustoTotalAcumulado        float64 `json:"custoTotalAcumulado"`
	ReceitaBrutaAcumulada      float64 `json:"receitaBrutaAcumulada"`
	Margem55Acumulada          float64 `json:"margem55Acumulada"`
	MargemOperacionalAcumulada float64 `json:"margemOperacionalAcumulada"`

	MesesAtivos int    `json:"mesesAtivos"`
	Projetos    int    `json:"projetos"`
	UltimoMes   string `json:"ultimoMes"`
}

// Result is everything the Curva S view renders for one filter selection.
type Result struct {
	Series []MonthlyAggregate `json:"series"`
	Curves []CumulativePoint  `json:"curves"`
	Kpis   KpiSet             `json:"kpis"`
}
