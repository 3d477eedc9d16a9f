// Package repository provides access to the monitoring platform: the metric
// inventory and the time-series query endpoint.
package repository

import (
	"context"

	models "github.com/Schera-ole/metricsaudit/internal/model"
)

// Inventory lists every metric name known to the platform.
type Inventory interface {
	ListMetricNames(ctx context.Context) ([]string, error)
}

// Prober queries a single metric over a time window.
type Prober interface {
	QueryMetric(ctx context.Context, name string, window models.Window) (models.QueryResponse, error)
}
