package compute

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dashboard-curvas/http-server/params"
	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

// maxBody caps uploaded row sets.
const maxBody = 16 << 20

type Computer interface {
	Compute(rows []storage.RawMonthlyRow, f curvas.Filter) (*curvas.Result, error)
}

type Request struct {
	Rows   []storage.RawMonthlyRow `json:"rows"`
	Filter curvas.Filter           `json:"filter"`
}

// ComputeCurvaS runs the engine over rows posted by the client, for what-if
// views that never touch the warehouse.
func ComputeCurvaS(log *slog.Logger, computer Computer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.curva-s.ComputeCurvaS"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		r.Body = http.MaxBytesReader(w, r.Body, maxBody)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Warn("failed to decode rows", slog.String("error", err.Error()))
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		result, err := computer.Compute(req.Rows, req.Filter)
		if err != nil {
			code, msg := params.Status(err)
			log.Error("failed to compute curva s", slog.String("error", err.Error()))
			http.Error(w, msg, code)
			return
		}

		render.JSON(w, r, result)
	}
}
