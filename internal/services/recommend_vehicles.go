package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"vehicle-allocation-service/internal/domain"
	"vehicle-allocation-service/internal/platform/obs"
	"vehicle-allocation-service/internal/ports"

	"go.uber.org/zap"
)

// Receives one observation per optimizer run.
type RunRecorder interface {
	ObserveRun(outcome string, explored, generated, nonDominated, returned int, dur time.Duration)
}

type RecommendVehiclesRequest struct {
	Passengers   int
	Days         float64
	MaxSolutions int
	MaxExplored  int
}

// RecommendVehicles loads the catalog through repo and runs Optimize on it.
//
// The search itself cannot be interrupted, so it runs on its own goroutine and
// the call returns ctx.Err() as soon as ctx ends; the late result is discarded.
// rec may be nil.
func RecommendVehicles(
	ctx context.Context,
	req RecommendVehiclesRequest,
	repo ports.VehicleTypeRepository,
	rec RunRecorder,
) (_ *OptimizeResult, err error) {
	ctx = obs.WithRunID(ctx)
	defer obs.Time(ctx, "services.RecommendVehicles")(&err)

	if repo == nil {
		return nil, errors.New("recommend vehicles: repository must be non-nil")
	}

	types, err := repo.ListVehicleTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommend vehicles: list vehicle types: %w", err)
	}

	start := time.Now()
	if err := ctx.Err(); err != nil {
		record(rec, "timeout", OptimizeStats{}, 0, 0)
		return nil, fmt.Errorf("recommend vehicles: passengers=%d: %w", req.Passengers, err)
	}

	type outcome struct {
		res OptimizeResult
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := OptimizeWithStats(OptimizeRequest{
			VehicleTypes: types,
			Passengers:   req.Passengers,
			Days:         req.Days,
			MaxSolutions: req.MaxSolutions,
			MaxExplored:  req.MaxExplored,
		})
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		record(rec, "timeout", OptimizeStats{}, 0, time.Since(start))
		return nil, fmt.Errorf("recommend vehicles: passengers=%d: %w", req.Passengers, ctx.Err())
	case out := <-done:
		dur := time.Since(start)
		if out.err != nil {
			record(rec, errorOutcome(out.err), out.res.Stats, 0, dur)
			return nil, fmt.Errorf("recommend vehicles: %w", out.err)
		}

		label := "ok"
		if len(out.res.Combinations) == 0 {
			label = "empty"
		}
		record(rec, label, out.res.Stats, len(out.res.Combinations), dur)

		zap.L().Info("vehicle recommendation computed",
			zap.String("run_id", obs.RunID(ctx)),
			zap.Int("passengers", req.Passengers),
			zap.Int("billed_days", out.res.Stats.BilledDays),
			zap.Int("explored", out.res.Stats.Explored),
			zap.Int("generated", out.res.Stats.Generated),
			zap.Int("non_dominated", out.res.Stats.NonDominated),
			zap.Int("returned", len(out.res.Combinations)),
			zap.Duration("dur", dur),
		)

		return &out.res, nil
	}
}

// PriceStoredAllocation re-prices an allocation kept by the booking side.
//
// The lookup covers inactive vehicle types too, so a deactivated type still
// prices at its recorded rate; only IDs the catalog no longer holds are skipped.
func PriceStoredAllocation(
	ctx context.Context,
	allocation []domain.AllocationItem,
	days float64,
	repo ports.VehicleTypeRepository,
) (_ PriceBreakdown, err error) {
	ctx = obs.WithRunID(ctx)
	defer obs.Time(ctx, "services.PriceStoredAllocation")(&err)

	if repo == nil {
		return PriceBreakdown{}, errors.New("price stored allocation: repository must be non-nil")
	}
	if err := ValidateDays(days); err != nil {
		return PriceBreakdown{}, fmt.Errorf("price stored allocation: %w", err)
	}

	var lookup map[int]domain.VehicleType

	// Prefer a targeted lookup when the repository supports it.
	if l, ok := repo.(ports.VehicleTypeLookup); ok {
		ids := make([]int, 0, len(allocation))
		for _, item := range allocation {
			ids = append(ids, item.VehicleTypeID)
		}
		lookup, err = l.GetVehicleTypes(ctx, ids)
		if err != nil {
			return PriceBreakdown{}, fmt.Errorf("price stored allocation: get vehicle types: %w", err)
		}
	} else {
		types, err := repo.ListVehicleTypes(ctx)
		if err != nil {
			return PriceBreakdown{}, fmt.Errorf("price stored allocation: list vehicle types: %w", err)
		}
		lookup = domain.IndexVehicleTypes(types)
	}

	b := PriceAllocation(allocation, days, lookup)
	if len(b.UnknownIDs) > 0 {
		zap.L().Warn("allocation references unknown vehicle types",
			zap.String("run_id", obs.RunID(ctx)),
			zap.Ints("vehicle_type_ids", b.UnknownIDs),
		)
	}

	return b, nil
}

func record(rec RunRecorder, outcome string, stats OptimizeStats, returned int, dur time.Duration) {
	if rec == nil {
		return
	}
	rec.ObserveRun(outcome, stats.Explored, stats.Generated, stats.NonDominated, returned, dur)
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrSearchLimitExceeded):
		return "search_limit"
	case errors.Is(err, domain.ErrInvalidVehicleType):
		return "invalid_catalog"
	case errors.Is(err, domain.ErrDurationTooLong):
		return "invalid_request"
	default:
		return "error"
	}
}
