package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"dashboard-curvas/internal/service/cargos"
	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

const (
	sheetCurva  = "Curva S"
	sheetKpis   = "KPIs"
	sheetCargos = "Cargos"
)

type CurvaSource interface {
	CurvaS(ctx context.Context, scope storage.Scope, f curvas.Filter) (*curvas.Result, error)
}

type CargoSource interface {
	Breakdown(ctx context.Context, scope storage.Scope, f curvas.Filter, month string) ([]cargos.CargoGroup, error)
}

type GenerateExcelService struct {
	curvas CurvaSource
	cargos CargoSource
}

func NewGenerateService(curvas CurvaSource, cargos CargoSource) *GenerateExcelService {
	return &GenerateExcelService{curvas: curvas, cargos: cargos}
}

// GenerateCurvaS renders the dashboard selection as a workbook with the
// monthly series, the KPIs and the role breakdown.
func (g *GenerateExcelService) GenerateCurvaS(ctx context.Context, scope storage.Scope, f curvas.Filter) ([]byte, error) {
	const op = "service.generate_excel.GenerateCurvaS"

	var (
		result *curvas.Result
		groups []cargos.CargoGroup
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		result, err = g.curvas.CurvaS(egCtx, scope, f)
		return err
	})
	eg.Go(func() error {
		var err error
		groups, err = g.cargos.Breakdown(egCtx, scope, f, "")
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetCurva); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, name := range []string{sheetKpis, sheetCargos} {
		if _, err := file.NewSheet(name); err != nil {
			return nil, fmt.Errorf("%s: new sheet %s: %w", op, name, err)
		}
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}
	moneyStyle, err := file.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("%s: money style: %w", op, err)
	}

	w := sheetWriter{f: file, header: headerStyle, money: moneyStyle}
	w.curva(result)
	w.kpis(result.Kpis)
	w.cargos(groups)
	if w.err != nil {
		return nil, fmt.Errorf("%s: %w", op, w.err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

// sheetWriter keeps the first cell error so the sheet builders stay linear.
type sheetWriter struct {
	f      *excelize.File
	header int
	money  int
	err    error
}

func (w *sheetWriter) set(sheet string, col, row int, v any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(sheet, cellName(col, row), v)
}

func (w *sheetWriter) headerRow(sheet string, headers []string) {
	for i, h := range headers {
		w.set(sheet, i+1, 1, h)
	}
	if w.err != nil {
		return
	}

	w.err = w.f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), w.header)
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) styleRange(sheet string, fromCol, toCol, lastRow int) {
	if w.err != nil || lastRow < 2 {
		return
	}
	w.err = w.f.SetCellStyle(sheet, cellName(fromCol, 2), cellName(toCol, lastRow), w.money)
}

func (w *sheetWriter) curva(res *curvas.Result) {
	headers := []string{
		"Mês", "Custo direto", "Custo indireto", "Custo total", "Horas",
		"Receita", "Receita líquida", "Margem 55", "Margem operacional",
		"Custo acumulado", "Receita acumulada", "Margem 55 acumulada", "Margem operacional acumulada",
	}
	w.headerRow(sheetCurva, headers)

	for i, m := range res.Series {
		row := i + 2
		w.set(sheetCurva, 1, row, m.Mes)
		w.set(sheetCurva, 2, row, m.CustoDireto)
		w.set(sheetCurva, 3, row, m.CustoIndireto)
		w.set(sheetCurva, 4, row, m.CustoTotal)
		w.set(sheetCurva, 5, row, m.Horas)
		w.set(sheetCurva, 6, row, m.ReceitaMes)
		w.set(sheetCurva, 7, row, m.ReceitaLiquidaMes)
		w.set(sheetCurva, 8, row, m.Margem55Mes)
		w.set(sheetCurva, 9, row, m.MargemOperacionalMes)

		if i < len(res.Curves) {
			c := res.Curves[i]
			w.set(sheetCurva, 10, row, c.CustoTotalAcumulado)
			w.set(sheetCurva, 11, row, c.ReceitaBrutaAcumulado)
			w.set(sheetCurva, 12, row, c.Margem55Acumulado)
			w.set(sheetCurva, 13, row, c.MargemOperacionalAcumulado)
		}
	}

	w.styleRange(sheetCurva, 2, len(headers), len(res.Series)+1)
	if w.err == nil {
		w.err = w.f.SetColWidth(sheetCurva, "A", "M", 18)
	}
}

func (w *sheetWriter) kpis(k curvas.KpiSet) {
	w.headerRow(sheetKpis, []string{"Indicador", "Valor"})

	rows := []struct {
		name  string
		value any
	}{
		{"Margem (%)", k.MargemPercentual},
		{"Custo médio mensal", k.CustoMedio},
		{"Valor do contrato", k.ValorContrato},
		{"Falta receber", k.FaltaReceber},
		{"Custo total acumulado", k.CustoTotalAcumulado},
		{"Receita bruta acumulada", k.ReceitaBrutaAcumulada},
		{"Margem 55 acumulada", k.Margem55Acumulada},
		{"Margem operacional acumulada", k.MargemOperacionalAcumulada},
		{"Meses ativos", k.MesesAtivos},
		{"Projetos", k.Projetos},
		{"Último mês", k.UltimoMes},
	}
	for i, r := range rows {
		w.set(sheetKpis, 1, i+2, r.name)
		w.set(sheetKpis, 2, i+2, r.value)
	}

	if w.err == nil {
		w.err = w.f.SetColWidth(sheetKpis, "A", "B", 30)
	}
}

func (w *sheetWriter) cargos(groups []cargos.CargoGroup) {
	headers := []string{"Cargo", "Pessoa", "Horas", "Horas totais", "% horas", "Custo direto", "Custo indireto", "Custo total"}
	w.headerRow(sheetCargos, headers)

	row := 2
	for _, g := range groups {
		w.set(sheetCargos, 1, row, g.Cargo)
		w.set(sheetCargos, 3, row, g.TotalHoras)
		w.set(sheetCargos, 4, row, g.HorasTotaisMes)
		w.set(sheetCargos, 5, row, pct(g.PctHoras))
		w.set(sheetCargos, 6, row, g.CustoDireto)
		w.set(sheetCargos, 7, row, g.CustoIndireto)
		w.set(sheetCargos, 8, row, g.CustoTotal)
		row++

		for _, p := range g.Pessoas {
			w.set(sheetCargos, 2, row, p.Usuario)
			w.set(sheetCargos, 3, row, p.Horas)
			w.set(sheetCargos, 4, row, p.HorasTotaisMes)
			w.set(sheetCargos, 5, row, pct(p.PctHoras))
			w.set(sheetCargos, 6, row, p.CustoDireto)
			w.set(sheetCargos, 7, row, p.CustoIndireto)
			w.set(sheetCargos, 8, row, p.CustoTotal)
			row++
		}
	}

	w.styleRange(sheetCargos, 6, 8, row-1)
	if w.err == nil {
		w.err = w.f.SetColWidth(sheetCargos, "A", "H", 18)
	}
}

// pct renders an unknown share as a dash instead of zero.
func pct(v *float64) any {
	if v == nil {
		return "-"
	}
	return *v
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
