// Package params reads the dashboard selection from query strings and maps
// engine errors to HTTP statuses.
package params

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

// DefaultTimeout bounds a request when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Timeout returns d, or DefaultTimeout when d is not positive.
func Timeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// ScopeHeader is set by the upstream auth proxy to the signed-in leader.
const ScopeHeader = "X-Lider"

// Filter builds a curvas.Filter from the query string. List params may repeat
// or carry comma separated values. Validation is left to the services.
func Filter(r *http.Request) curvas.Filter {
	q := r.URL.Query()

	return curvas.Filter{
		Projetos: list(q["projeto"]),
		Lideres:  list(q["lider"]),
		Times:    list(q["time"]),
		Status:   list(q["status"]),
		Fases:    list(q["fase"]),
		De:       strings.TrimSpace(q.Get("de")),
		Ate:      strings.TrimSpace(q.Get("ate")),
	}
}

// Month is the optional drill-down month.
func Month(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("mes"))
}

func Scope(r *http.Request) storage.Scope {
	return storage.Scope{Lider: strings.TrimSpace(r.Header.Get(ScopeHeader))}
}

// Status maps a service error to the response status and a client-safe message.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, curvas.ErrInvalidFilter), errors.Is(err, normalize.ErrInvalidMonth):
		return http.StatusBadRequest, "invalid filter"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "warehouse timeout"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func list(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
