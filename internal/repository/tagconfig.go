package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"go.uber.org/zap"

	internalerrors "github.com/Schera-ole/metricsaudit/internal/errors"
)

// serverIndexByName selects the SDK server template "{protocol}://{name}".
const serverIndexByName = 1

// TagConfigInventory lists metric names through the tag configuration endpoint.
// The endpoint returns one record per metric, so the record ids are the inventory.
type TagConfigInventory struct {
	api      *datadogV2.MetricsApi
	apiKey   string
	appKey   string
	protocol string
	name     string
	logger   *zap.SugaredLogger
}

// NewTagConfigInventory creates an inventory client for the API at baseURL.
func NewTagConfigInventory(baseURL, apiKey, appKey string, client *http.Client, logger *zap.SugaredLogger) (*TagConfigInventory, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid API URL %q", internalerrors.ErrInvalidConfig, baseURL)
	}

	configuration := datadog.NewConfiguration()
	if client != nil {
		configuration.HTTPClient = client
	}

	return &TagConfigInventory{
		api:      datadogV2.NewMetricsApi(datadog.NewAPIClient(configuration)),
		apiKey:   apiKey,
		appKey:   appKey,
		protocol: u.Scheme,
		name:     u.Host + strings.TrimRight(u.Path, "/"),
		logger:   logger,
	}, nil
}

// ListMetricNames returns the metric ids in the order the platform sent them.
// The inventory is read in a single request.
func (i *TagConfigInventory) ListMetricNames(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: i.apiKey},
		"appKeyAuth": {Key: i.appKey},
	})
	ctx = context.WithValue(ctx, datadog.ContextServerIndex, serverIndexByName)
	ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
		"protocol": i.protocol,
		"name":     i.name,
	})

	response, httpResponse, err := i.api.ListTagConfigurations(ctx)
	if err != nil {
		if httpResponse != nil {
			return nil, fmt.Errorf("%w: status %d: %v", internalerrors.ErrInventoryFetch, httpResponse.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: %v", internalerrors.ErrInventoryFetch, err)
	}

	data := response.GetData()
	names := make([]string, 0, len(data))
	for idx, item := range data {
		name, ok := metricID(item)
		if !ok {
			i.logger.Warnf("skipping inventory record %d without a metric id", idx)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func metricID(item datadogV2.MetricsAndMetricTagConfigurations) (string, bool) {
	switch {
	case item.Metric != nil && item.Metric.Id != nil:
		return item.Metric.GetId(), true
	case item.MetricTagConfiguration != nil && item.MetricTagConfiguration.Id != nil:
		return item.MetricTagConfiguration.GetId(), true
	default:
		return "", false
	}
}
