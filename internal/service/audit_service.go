// Package service provides the business logic layer for the audit job.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Schera-ole/metricsaudit/internal/classifier"
	models "github.com/Schera-ole/metricsaudit/internal/model"
	"github.com/Schera-ole/metricsaudit/internal/repository"
	"github.com/Schera-ole/metricsaudit/internal/telemetry"
)

// AuditService finds custom metrics without series data in the trailing window.
//
// It reads the inventory once, keeps custom metrics only, and probes each of
// them. A failed probe affects only its own metric.
type AuditService struct {
	inventory   repository.Inventory
	prober      repository.Prober
	classifier  *classifier.Classifier
	logger      *zap.SugaredLogger
	stats       *telemetry.RunStats
	concurrency int
	now         func() time.Time
}

// Option configures an AuditService.
type Option func(*AuditService)

// WithConcurrency sets how many probes may run at once. Values below 1 mean sequential.
func WithConcurrency(n int) Option {
	return func(as *AuditService) {
		as.concurrency = n
	}
}

// WithStats records run counters into stats.
func WithStats(stats *telemetry.RunStats) Option {
	return func(as *AuditService) {
		as.stats = stats
	}
}

// WithClock replaces time.Now for window computation.
func WithClock(now func() time.Time) Option {
	return func(as *AuditService) {
		as.now = now
	}
}

// NewAuditService creates an AuditService. A nil classifier uses the standard prefixes.
func NewAuditService(
	inventory repository.Inventory,
	prober repository.Prober,
	cls *classifier.Classifier,
	logger *zap.SugaredLogger,
	opts ...Option,
) *AuditService {
	if cls == nil {
		cls = classifier.New()
	}
	as := &AuditService{
		inventory:   inventory,
		prober:      prober,
		classifier:  cls,
		logger:      logger,
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(as)
	}
	if as.stats == nil {
		as.stats = telemetry.NewRunStats()
	}
	return as
}

// Stats returns the counters of this service.
func (as *AuditService) Stats() *telemetry.RunStats {
	return as.stats
}

// Run performs one audit pass. An inventory error aborts the run; probe errors
// only drop the affected metric into Failed.
func (as *AuditService) Run(ctx context.Context) (models.AuditResult, error) {
	start := as.now()
	window := models.NewWindow(start)
	result := models.AuditResult{
		Window:    window,
		Checked:   make([]string, 0),
		Unqueried: make([]string, 0),
		Failed:    make([]string, 0),
	}

	names, err := as.inventory.ListMetricNames(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list metrics: %w", err)
	}
	as.logger.Debugf("inventory returned %d metrics", len(names))

	for _, name := range names {
		if !as.classifier.IsCustom(name) {
			as.stats.Skipped.Inc()
			continue
		}
		result.Checked = append(result.Checked, name)
	}

	for _, probe := range as.probeAll(ctx, result.Checked, window) {
		switch probe.Outcome {
		case models.OutcomeUnqueried:
			result.Unqueried = append(result.Unqueried, probe.Metric)
		case models.OutcomeFailed:
			result.Failed = append(result.Failed, probe.Metric)
		}
	}

	as.stats.Finish(start, as.now())
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// probeAll returns one result per name, in the order of names.
func (as *AuditService) probeAll(ctx context.Context, names []string, window models.Window) []models.ProbeResult {
	results := make([]models.ProbeResult, len(names))
	if as.concurrency <= 1 {
		for i, name := range names {
			results[i] = as.Probe(ctx, name, window)
		}
		return results
	}

	// A plain group: one failed probe must not cancel the others.
	var g errgroup.Group
	g.SetLimit(as.concurrency)
	for i, name := range names {
		g.Go(func() error {
			results[i] = as.Probe(ctx, name, window)
			return nil
		})
	}
	g.Wait()
	return results
}

// Probe checks a single metric for series data in window.
func (as *AuditService) Probe(ctx context.Context, name string, window models.Window) models.ProbeResult {
	as.logger.Infof("Checking custom metric: %s", name)
	as.stats.Checked.Inc()

	result := models.ProbeResult{Metric: name, Outcome: models.OutcomeQueried}
	response, err := as.prober.QueryMetric(ctx, name, window)
	switch {
	case err != nil:
		as.logger.Errorf("Error querying metric %s: %v", name, err)
		as.stats.ProbeFailures.Inc()
		result.Outcome = models.OutcomeFailed
		result.Err = err
	case !response.HasData():
		as.logger.Infof("Adding metric %s to unqueried list", name)
		as.stats.Unqueried.Inc()
		result.Outcome = models.OutcomeUnqueried
	}

	as.logger.Debugf("metric %s: %s", name, result.Outcome)
	return result
}
