package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dashboard-curvas/http-server/params"
	"dashboard-curvas/internal/service/cargos"
	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

type BreakdownProvider interface {
	Breakdown(ctx context.Context, scope storage.Scope, f curvas.Filter, month string) ([]cargos.CargoGroup, error)
}

// GetCargos serves the cargo/person cost tree. ?mes=YYYY-MM drills down to one month.
func GetCargos(log *slog.Logger, provider BreakdownProvider, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cargos.GetCargos"

		ctx, cancel := context.WithTimeout(r.Context(), params.Timeout(timeout))
		defer cancel()

		scope := params.Scope(r)
		groups, err := provider.Breakdown(ctx, scope, params.Filter(r), params.Month(r))
		if err != nil {
			code, msg := params.Status(err)
			log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("lider", scope.Lider),
				slog.String("error", err.Error()),
			).Error("failed to build cargo breakdown")
			http.Error(w, msg, code)
			return
		}

		if groups == nil {
			groups = []cargos.CargoGroup{}
		}

		render.JSON(w, r, groups)
	}
}
