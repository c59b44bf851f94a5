package reconcile

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dashboard-curvas/http-server/params"
	"dashboard-curvas/internal/service/reconcile"
)

type Auditor interface {
	Audit(ctx context.Context, from, to string) (*reconcile.Report, error)
}

// GetReconciliation serves the ledger audit for ?de=YYYY-MM&ate=YYYY-MM.
// By default only the divergent months are listed; ?todos=true adds the full list.
func GetReconciliation(log *slog.Logger, auditor Auditor, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetReconciliation"

		ctx, cancel := context.WithTimeout(r.Context(), params.Timeout(timeout))
		defer cancel()

		q := r.URL.Query()
		from := strings.TrimSpace(q.Get("de"))
		to := strings.TrimSpace(q.Get("ate"))

		report, err := auditor.Audit(ctx, from, to)
		if err != nil {
			code, msg := params.Status(err)
			log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			).Error("failed to reconcile ledger")
			http.Error(w, msg, code)
			return
		}

		if q.Get("todos") != "true" {
			report.All = nil
		}

		log.Info("reconciliation served",
			slog.String("op", op),
			slog.String("de", from),
			slog.String("ate", to),
			slog.Int("divergent", report.Summary.TotalDivergentMonths),
		)

		render.JSON(w, r, report)
	}
}
