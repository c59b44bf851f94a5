package curvas

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"dashboard-curvas/internal/storage"
)

type CurvasStorage interface {
	GetMonthlyRows(ctx context.Context, scope storage.Scope) ([]storage.RawMonthlyRow, error)
}

const defaultFetchTimeout = 5 * time.Second

type Options struct {
	Kpi KpiOptions
	// FetchTimeout bounds a shared warehouse query independently of the
	// request that started it.
	FetchTimeout time.Duration
}

type Service struct {
	storage      CurvasStorage
	aggregator   *Aggregator
	kpiOpts      KpiOptions
	fetchTimeout time.Duration
	fetches      singleflight.Group
}

func NewService(storage CurvasStorage, aggregator *Aggregator, opts Options) *Service {
	if aggregator == nil {
		aggregator = NewAggregator(nil)
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	return &Service{
		storage:      storage,
		aggregator:   aggregator,
		kpiOpts:      opts.Kpi,
		fetchTimeout: opts.FetchTimeout,
	}
}

// Rows fetches the monthly rows visible to scope. Concurrent calls with the
// same scope share one warehouse query. The returned slice must not be modified.
func (s *Service) Rows(ctx context.Context, scope storage.Scope) ([]storage.RawMonthlyRow, error) {
	const op = "service.curvas.Rows"

	ch := s.fetches.DoChan("monthly:"+scope.Lider, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		return s.storage.GetMonthlyRows(fetchCtx, scope)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, res.Err)
		}
		return res.Val.([]storage.RawMonthlyRow), nil
	}
}

// CurvaS fetches the rows for scope and runs the whole pipeline on them.
func (s *Service) CurvaS(ctx context.Context, scope storage.Scope, f Filter) (*Result, error) {
	const op = "service.curvas.CurvaS"

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.Rows(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.Compute(rows, f)
}

// Compute runs filter, aggregation, curves and KPIs over rows already in memory.
func (s *Service) Compute(rows []storage.RawMonthlyRow, f Filter) (*Result, error) {
	const op = "service.curvas.Compute"

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := f.Apply(rows)
	series := s.aggregator.Aggregate(filtered)
	curves := BuildCurves(series)

	return &Result{
		Series: series,
		Curves: curves,
		Kpis:   ComputeKpis(curves, filtered, s.kpiOpts),
	}, nil
}
