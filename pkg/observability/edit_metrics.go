package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricDeletedTotal  = "modelfang.edit.elements.deleted.total"
	metricAddedTotal    = "modelfang.edit.elements.added.total"
	metricReplacedTotal = "modelfang.edit.elements.replaced.total"
	metricMergeDuration = "modelfang.edit.merge.duration.seconds"
	metricCacheTotal    = "modelfang.pattern.cache.lookups.total"

	attrOutcome = "outcome"
)

// durationBucketBoundaries covers 1ms to 60s, from trivial single-package
// merges to library-wide plans.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// EditMetrics holds OTel instruments for edit-engine metrics.
type EditMetrics struct {
	deletedTotal  metric.Int64Counter
	addedTotal    metric.Int64Counter
	replacedTotal metric.Int64Counter
	mergeDuration metric.Float64Histogram
	cacheLookups  metric.Int64Counter
}

// EditStats holds the statistics for a single applied plan, decoupled from
// engine types.
type EditStats struct {
	Deleted       int
	Added         int
	Replaced      int
	MergeDuration time.Duration
	CacheHits     int64
	CacheMisses   int64
}

// NewEditMetrics creates edit metric instruments from the given meter.
func NewEditMetrics(mt metric.Meter) (*EditMetrics, error) {
	deleted, err := mt.Int64Counter(metricDeletedTotal,
		metric.WithDescription("Total elements deleted by edit plans"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDeletedTotal, err)
	}

	added, err := mt.Int64Counter(metricAddedTotal,
		metric.WithDescription("Total elements added by edit plans"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricAddedTotal, err)
	}

	replaced, err := mt.Int64Counter(metricReplacedTotal,
		metric.WithDescription("Total elements replaced by edit plans"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricReplacedTotal, err)
	}

	mergeDur, err := mt.Float64Histogram(metricMergeDuration,
		metric.WithDescription("Plan application duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricMergeDuration, err)
	}

	lookups, err := mt.Int64Counter(metricCacheTotal,
		metric.WithDescription("Pattern cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheTotal, err)
	}

	return &EditMetrics{
		deletedTotal:  deleted,
		addedTotal:    added,
		replacedTotal: replaced,
		mergeDuration: mergeDur,
		cacheLookups:  lookups,
	}, nil
}

// RecordPlan records the statistics of a completed plan application.
// Safe to call on a nil receiver (no-op).
func (em *EditMetrics) RecordPlan(ctx context.Context, stats EditStats) {
	if em == nil {
		return
	}

	em.deletedTotal.Add(ctx, int64(stats.Deleted))
	em.addedTotal.Add(ctx, int64(stats.Added))
	em.replacedTotal.Add(ctx, int64(stats.Replaced))
	em.mergeDuration.Record(ctx, stats.MergeDuration.Seconds())

	hitAttrs := metric.WithAttributes(attribute.String(attrOutcome, "hit"))
	em.cacheLookups.Add(ctx, stats.CacheHits, hitAttrs)

	missAttrs := metric.WithAttributes(attribute.String(attrOutcome, "miss"))
	em.cacheLookups.Add(ctx, stats.CacheMisses, missAttrs)
}
