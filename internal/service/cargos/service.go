package cargos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"dashboard-curvas/internal/service/curvas"
	"dashboard-curvas/internal/storage"
)

type CargoStorage interface {
	GetCargoRows(ctx context.Context, scope storage.Scope) ([]storage.CargoRow, error)
}

// MonthlyRows resolves which projects the dashboard filter selects.
type MonthlyRows interface {
	Rows(ctx context.Context, scope storage.Scope) ([]storage.RawMonthlyRow, error)
}

type Service struct {
	monthly MonthlyRows
	storage CargoStorage
	now     func() time.Time
}

// NewService builds the breakdown service; now is the clock that decides the
// open month, nil means time.Now.
func NewService(monthly MonthlyRows, storage CargoStorage, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{monthly: monthly, storage: storage, now: now}
}

// Breakdown returns the role breakdown of the projects selected by f,
// optionally drilled down to one month.
func (s *Service) Breakdown(ctx context.Context, scope storage.Scope, f curvas.Filter, month string) ([]CargoGroup, error) {
	const op = "service.cargos.Breakdown"

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		monthly   []storage.RawMonthlyRow
		cargoRows []storage.CargoRow
	)

	g, gCtx := errgroup.WithContext(ctx)
	if selectsProjects(f) {
		g.Go(func() error {
			var err error
			monthly, err = s.monthly.Rows(gCtx, scope)
			if err != nil {
				return fmt.Errorf("monthly rows: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		cargoRows, err = s.storage.GetCargoRows(gCtx, scope)
		if err != nil {
			return fmt.Errorf("cargo rows: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var projects map[string]bool
	if selectsProjects(f) {
		projects = f.ProjectCodes(monthly)
	}

	selected := make([]storage.CargoRow, 0, len(cargoRows))
	for _, row := range cargoRows {
		if projects != nil && !projects[strings.TrimSpace(row.ProjectCode)] {
			continue
		}
		if !f.InRange(row.Month) {
			continue
		}
		selected = append(selected, row)
	}

	groups, err := BuildBreakdown(selected, month, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groups, nil
}

// selectsProjects reports whether f narrows the project set, which needs the
// monthly rows to resolve.
func selectsProjects(f curvas.Filter) bool {
	return len(f.Projetos)+len(f.Lideres)+len(f.Times)+len(f.Status)+len(f.Fases) > 0
}
