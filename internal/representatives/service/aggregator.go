package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"represent/internal/representatives/metrics"
	"represent/internal/representatives/models"
	"represent/internal/representatives/ocd"
	"represent/internal/representatives/ports"
	"represent/internal/representatives/providers"
	"represent/pkg/platform/sentinel"
)

// Jurisdiction fetch results used in logs and metric labels.
const (
	resultData   = "data"
	resultEmpty  = "empty"
	resultFailed = "failed"
)

// Aggregator fans out one fetch per jurisdiction and merges the answers.
type Aggregator struct {
	fetcher ports.RepresentativeFetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewAggregator builds an Aggregator. metrics may be nil.
func NewAggregator(fetcher ports.RepresentativeFetcher, logger *slog.Logger, m *metrics.Metrics) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{fetcher: fetcher, logger: logger, metrics: m}
}

// outcome is what one jurisdiction's fetch produced. Each goroutine owns
// exactly one slot of the outcomes slice.
type outcome struct {
	reps []models.Representative
	err  error
}

// Aggregate fetches every jurisdiction concurrently, then merges in
// jurisdiction order: first occurrence of an ID wins, later duplicates are
// dropped. Individual fetch failures become warnings; only when every fetch
// fails does Aggregate return an error.
func (a *Aggregator) Aggregate(ctx context.Context, jurisdictions []models.Jurisdiction) (*models.LookupResult, error) {
	outcomes := make([]outcome, len(jurisdictions))

	var g errgroup.Group
	for i := range jurisdictions {
		g.Go(func() error {
			start := time.Now()
			reps, err := a.fetcher.FetchByJurisdiction(ctx, jurisdictions[i])
			outcomes[i] = outcome{reps: reps, err: err}
			a.logger.DebugContext(ctx, "jurisdiction fetched",
				"jurisdiction", jurisdictions[i].Identifier,
				"count", len(reps),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return an error; failures live in outcomes

	return a.merge(ctx, jurisdictions, outcomes)
}

func (a *Aggregator) merge(ctx context.Context, jurisdictions []models.Jurisdiction, outcomes []outcome) (*models.LookupResult, error) {
	result := &models.LookupResult{
		Federal:  []models.Representative{},
		State:    []models.Representative{},
		Local:    []models.Representative{},
		Warnings: []string{},
	}
	seen := make(map[string]struct{})
	var failures []error

	for i := range jurisdictions {
		j := &jurisdictions[i]
		o := outcomes[i]
		level := j.GovernmentLevel
		if !level.IsValid() {
			level = ocd.Categorize(j.Identifier)
		}

		switch {
		case o.err != nil:
			j.HasData = false
			failures = append(failures, o.err)
			category := providers.GetCategory(o.err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not retrieve data for %s (%s): %s",
				ocd.LastSegment(j.Identifier), j.Identifier, category))
			a.metrics.IncrementJurisdictionFetch(string(level), resultFailed)
			a.logger.WarnContext(ctx, "jurisdiction fetch failed",
				"jurisdiction", j.Identifier,
				"category", category,
				"error", o.err,
			)
		case len(o.reps) == 0:
			j.HasData = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("no data for %s (%s)",
				ocd.LastSegment(j.Identifier), j.Identifier))
			a.metrics.IncrementJurisdictionFetch(string(level), resultEmpty)
		default:
			j.HasData = true
			a.metrics.IncrementJurisdictionFetch(string(level), resultData)
		}

		for _, rep := range o.reps {
			if rep.ID == "" {
				continue
			}
			if _, dup := seen[rep.ID]; dup {
				continue
			}
			seen[rep.ID] = struct{}{}
			rep.GovernmentLevel = level
			result.Add(rep)
		}
	}

	if len(jurisdictions) > 0 && len(failures) == len(jurisdictions) {
		return nil, allFailedError(failures)
	}

	result.Metadata.TotalCount = result.Total()
	result.Metadata.GovernmentLevels = result.LevelsPresent()
	result.Metadata.DivisionCount = len(jurisdictions)
	return result, nil
}

// allFailedError reports rate_limited when every failure was throttling,
// provider_outage otherwise. The individual failures stay reachable via errors.Is.
func allFailedError(failures []error) error {
	category := providers.ErrorRateLimited
	for _, err := range failures {
		if !errors.Is(err, sentinel.ErrRateLimited) {
			category = providers.ErrorProviderOutage
			break
		}
	}
	joined := errors.Join(append([]error{providers.ErrAllProvidersFailed}, failures...)...)
	return providers.NewProviderError(category, providers.ProviderOpenStates,
		fmt.Sprintf("all %d jurisdiction fetches failed", len(failures)), joined)
}
