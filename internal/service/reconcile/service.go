package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dashboard-curvas/internal/normalize"
	"dashboard-curvas/internal/storage"
)

type AuditStorage interface {
	GetLedgerTotals(ctx context.Context, from, to string) ([]storage.RawMonthTotal, error)
	GetDistributedTotals(ctx context.Context, from, to string) ([]storage.RawMonthTotal, error)
}

// Service runs the read-only ledger audit. It never writes back.
type Service struct {
	storage   AuditStorage
	tolerance float64
}

func NewService(storage AuditStorage, tolerance float64) *Service {
	return &Service{storage: storage, tolerance: tolerance}
}

// Audit compares ledger and distributed totals for the months in from..to.
// Empty bounds are open.
func (s *Service) Audit(ctx context.Context, from, to string) (*Report, error) {
	const op = "service.reconcile.Audit"

	for _, m := range []string{from, to} {
		if m != "" && !normalize.ValidMonth(m) {
			return nil, fmt.Errorf("%s: %q: %w", op, m, normalize.ErrInvalidMonth)
		}
	}

	var ledger, distributed []storage.RawMonthTotal

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledger, err = s.storage.GetLedgerTotals(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("ledger totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		distributed, err = s.storage.GetDistributedTotals(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("distributed totals: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := Reconcile(inRange(SumTotals(ledger), from, to), inRange(SumTotals(distributed), from, to), s.tolerance)

	return &report, nil
}

func inRange(totals []MonthTotal, from, to string) []MonthTotal {
	out := make([]MonthTotal, 0, len(totals))
	for _, t := range totals {
		if from != "" && t.Mes < from {
			continue
		}
		if to != "" && t.Mes > to {
			continue
		}
		out = append(out, t)
	}
	return out
}
