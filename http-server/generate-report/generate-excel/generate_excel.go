package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"dashboard-curvas/http-server/params"
	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

type ReportGenerator interface {
	GenerateCurvaS(ctx context.Context, scope storage.Scope, f curvas.Filter) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen ReportGenerator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		ctx, cancel := context.WithTimeout(r.Context(), params.Timeout(timeout))
		defer cancel()

		excelBytes, err := gen.GenerateCurvaS(ctx, params.Scope(r), params.Filter(r))
		if err != nil {
			code, msg := params.Status(err)
			log.Error("failed to generate excel",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
			http.Error(w, msg, code)
			return
		}

		fileName := fmt.Sprintf("Curva_S_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Warn("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
