package repository

import (
	"context"
	"sync"

	models "github.com/Schera-ole/metricsaudit/internal/model"
)

// MemSource is an in-memory Inventory and Prober.
//
// Metrics without configured series answer with an empty response, which the
// audit treats as unqueried.
type MemSource struct {
	mu           sync.Mutex
	names        []string
	series       map[string][]models.Series
	errors       map[string]error
	inventoryErr error
	queried      []string
}

// NewMemSource creates a source whose inventory is names, in order.
func NewMemSource(names ...string) *MemSource {
	return &MemSource{
		names:  append([]string(nil), names...),
		series: make(map[string][]models.Series),
		errors: make(map[string]error),
	}
}

// SetSeries makes queries for name return series.
func (ms *MemSource) SetSeries(name string, series ...models.Series) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.series[name] = series
}

// SetError makes queries for name fail with err.
func (ms *MemSource) SetError(name string, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errors[name] = err
}

// SetInventoryError makes ListMetricNames fail with err.
func (ms *MemSource) SetInventoryError(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.inventoryErr = err
}

func (ms *MemSource) ListMetricNames(ctx context.Context) ([]string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.inventoryErr != nil {
		return nil, ms.inventoryErr
	}
	return append([]string(nil), ms.names...), nil
}

func (ms *MemSource) QueryMetric(ctx context.Context, name string, window models.Window) (models.QueryResponse, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.queried = append(ms.queried, name)
	if err := ctx.Err(); err != nil {
		return models.QueryResponse{}, err
	}
	if err, exists := ms.errors[name]; exists {
		return models.QueryResponse{}, err
	}
	return models.QueryResponse{
		Status: "ok",
		Query:  QueryExpression(name),
		Series: ms.series[name],
	}, nil
}

// Queried returns the names passed to QueryMetric in call order.
func (ms *MemSource) Queried() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.queried...)
}
