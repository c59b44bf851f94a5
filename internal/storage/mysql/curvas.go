package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dashboard-curvas/internal/storage"
)

// Month and numeric columns are scanned into `any` on purpose: depending on the
// column type the driver hands back []byte, int64, float64 or time.Time, and
// the engine normalizes all of them.

func (s *Storage) GetMonthlyRows(ctx context.Context, scope storage.Scope) ([]storage.RawMonthlyRow, error) {
	const op = "storage.mysql.GetMonthlyRows"

	stmt := `
		SELECT project_code, mes, lider, nome_time, status,
		       custo_direto_mes, custo_indireto_mes, custo_total_mes, horas_mes,
		       receita_mes, receita_liquida_mes, margem_55_mes, margem_operacional_mes,
		       receita_bruta_total
		FROM vw_curva_s_mensal
	`
	var args []interface{}
	if scope.Lider != "" {
		stmt += ` WHERE nome_time IN (SELECT nome_time FROM vw_curva_s_mensal WHERE lider = ?)`
		args = append(args, scope.Lider)
	}
	stmt += ` ORDER BY project_code, mes`

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query monthly rows: %w", op, err)
	}
	defer rows.Close()

	var result []storage.RawMonthlyRow
	for rows.Next() {
		var r storage.RawMonthlyRow
		var code, lider, nomeTime, status sql.NullString

		err := rows.Scan(
			&code, &r.Month, &lider, &nomeTime, &status,
			&r.CustoDiretoMes, &r.CustoIndiretoMes, &r.CustoTotalMes, &r.HorasMes,
			&r.ReceitaMes, &r.ReceitaLiquidaMes, &r.Margem55Mes, &r.MargemOperacionalMes,
			&r.ReceitaBrutaTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan monthly row: %w", op, err)
		}

		r.ProjectCode = code.String
		r.Lider = lider.String
		r.NomeTime = nomeTime.String
		r.Status = status.String

		result = append(result, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate monthly rows: %w", op, err)
	}

	return result, nil
}

func (s *Storage) GetCargoRows(ctx context.Context, scope storage.Scope) ([]storage.CargoRow, error) {
	const op = "storage.mysql.GetCargoRows"

	stmt := `
		SELECT project_code, mes, cargo, usuario, horas, horas_totais_mes, custo_direto, custo_indireto
		FROM vw_custo_cargo_mensal
	`
	var args []interface{}
	if scope.Lider != "" {
		stmt += ` WHERE project_code IN (
			SELECT project_code FROM vw_curva_s_mensal
			WHERE nome_time IN (SELECT nome_time FROM vw_curva_s_mensal WHERE lider = ?)
		)`
		args = append(args, scope.Lider)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query cargo rows: %w", op, err)
	}
	defer rows.Close()

	var result []storage.CargoRow
	for rows.Next() {
		var r storage.CargoRow
		var code, cargo, usuario sql.NullString

		err := rows.Scan(&code, &r.Month, &cargo, &usuario, &r.Horas, &r.HorasTotaisMes, &r.CustoDireto, &r.CustoIndireto)
		if err != nil {
			return nil, fmt.Errorf("%s: scan cargo row: %w", op, err)
		}

		r.ProjectCode = code.String
		r.Cargo = cargo.String
		r.Usuario = usuario.String

		result = append(result, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate cargo rows: %w", op, err)
	}

	return result, nil
}

func (s *Storage) GetLedgerTotals(ctx context.Context, from, to string) ([]storage.RawMonthTotal, error) {
	return s.monthTotals(ctx, "storage.mysql.GetLedgerTotals", "vw_custo_fonte_mensal", from, to)
}

func (s *Storage) GetDistributedTotals(ctx context.Context, from, to string) ([]storage.RawMonthTotal, error) {
	return s.monthTotals(ctx, "storage.mysql.GetDistributedTotals", "vw_custo_distribuido_mensal", from, to)
}

// monthTotals reads (mes, total) pairs from one of the fixed audit views.
func (s *Storage) monthTotals(ctx context.Context, op, view, from, to string) ([]storage.RawMonthTotal, error) {
	where, args := monthRange("mes", from, to)
	stmt := `SELECT mes, total FROM ` + view + where + ` ORDER BY mes`

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", op, view, err)
	}
	defer rows.Close()

	var result []storage.RawMonthTotal
	for rows.Next() {
		var r storage.RawMonthTotal
		if err := rows.Scan(&r.Month, &r.Total); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

// monthRange builds an inclusive YYYY-MM range condition on a date column.
func monthRange(column, from, to string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if from != "" {
		conds = append(conds, "DATE_FORMAT("+column+", '%Y-%m') >= ?")
		args = append(args, from)
	}
	if to != "" {
		conds = append(conds, "DATE_FORMAT("+column+", '%Y-%m') <= ?")
		args = append(args, to)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}
