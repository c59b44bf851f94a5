package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dashboard-curvas/http-server/params"
	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

type CurvaSProvider interface {
	CurvaS(ctx context.Context, scope storage.Scope, f curvas.Filter) (*curvas.Result, error)
}

func GetCurvaS(log *slog.Logger, provider CurvaSProvider, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.curva-s.GetCurvaS"

		ctx, cancel := context.WithTimeout(r.Context(), params.Timeout(timeout))
		defer cancel()

		scope := params.Scope(r)
		result, err := provider.CurvaS(ctx, scope, params.Filter(r))
		if err != nil {
			code, msg := params.Status(err)
			log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("lider", scope.Lider),
				slog.String("error", err.Error()),
			).Error("failed to build curva s")
			http.Error(w, msg, code)
			return
		}

		render.JSON(w, r, result)
	}
}
