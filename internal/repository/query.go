package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	internalerrors "github.com/Schera-ole/metricsaudit/internal/errors"
	models "github.com/Schera-ole/metricsaudit/internal/model"
)

const queryPath = "/api/v1/query"

// QueryProber calls the time-series query endpoint directly.
type QueryProber struct {
	client  *http.Client
	baseURL string
	apiKey  string
	appKey  string
}

// NewQueryProber creates a prober for the API at baseURL.
func NewQueryProber(baseURL, apiKey, appKey string, client *http.Client) *QueryProber {
	if client == nil {
		client = &http.Client{}
	}
	return &QueryProber{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		appKey:  appKey,
	}
}

// QueryExpression averages name over every tag combination.
func QueryExpression(name string) string {
	return "avg:" + name + "{*}"
}

// QueryMetric runs QueryExpression(name) over window. A non-2xx response is
// returned as *errors.StatusError.
func (p *QueryProber) QueryMetric(ctx context.Context, name string, window models.Window) (models.QueryResponse, error) {
	params := url.Values{}
	params.Set("from", strconv.FormatInt(window.Start, 10))
	params.Set("to", strconv.FormatInt(window.End, 10))
	params.Set("query", QueryExpression(name))
	endpoint := p.baseURL + queryPath + "?" + params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.QueryResponse{}, fmt.Errorf("error creating request for %s: %w", name, err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("DD-API-KEY", p.apiKey)
	request.Header.Set("DD-APPLICATION-KEY", p.appKey)

	response, err := p.client.Do(request)
	if err != nil {
		return models.QueryResponse{}, fmt.Errorf("error sending request for %s: %w", name, err)
	}
	body, err := io.ReadAll(response.Body)
	response.Body.Close()
	if err != nil {
		return models.QueryResponse{}, fmt.Errorf("error reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return models.QueryResponse{}, &internalerrors.StatusError{
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var result models.QueryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return models.QueryResponse{}, fmt.Errorf("%w: %v", internalerrors.ErrDecodeResponse, err)
	}
	return result, nil
}
