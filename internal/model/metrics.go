// Package models defines the data structures used throughout the audit job.
package models

import "time"

// WindowSize is the trailing interval probed for query activity.
const WindowSize = 24 * time.Hour

// Window is a closed time range in epoch seconds.
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// NewWindow returns the trailing 24 hour window ending at now.
func NewWindow(now time.Time) Window {
	end := now.Unix()
	return Window{
		Start: end - int64(WindowSize/time.Second),
		End:   end,
	}
}

// QueryResponse is the decoded body of the time-series query endpoint.
type QueryResponse struct {
	// Status is "ok" on success
	Status string `json:"status,omitempty"`

	// Query echoes the submitted query expression
	Query string `json:"query,omitempty"`

	// FromDate and ToDate are the queried range in epoch milliseconds
	FromDate int64 `json:"from_date,omitempty"`
	ToDate   int64 `json:"to_date,omitempty"`

	// Series holds one entry per matching time series (absent when nothing matched)
	Series []Series `json:"series,omitempty"`

	// Error is set by the platform for rejected queries
	Error string `json:"error,omitempty"`
}

// HasData reports whether the query returned at least one series.
func (r QueryResponse) HasData() bool {
	return len(r.Series) > 0
}

// Series is a single time series returned by a query.
type Series struct {
	Metric      string       `json:"metric"`
	DisplayName string       `json:"display_name,omitempty"`
	Scope       string       `json:"scope,omitempty"`
	Expression  string       `json:"expression,omitempty"`
	Length      int          `json:"length,omitempty"`
	Pointlist   [][]*float64 `json:"pointlist,omitempty"`
}

// ProbeOutcome classifies the result of probing a single metric.
type ProbeOutcome int

const (
	OutcomeQueried ProbeOutcome = iota
	OutcomeUnqueried
	OutcomeFailed
)

func (o ProbeOutcome) String() string {
	switch o {
	case OutcomeQueried:
		return "queried"
	case OutcomeUnqueried:
		return "unqueried"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProbeResult is the per-metric result of a query activity probe.
type ProbeResult struct {
	// Metric is the probed metric name
	Metric string

	// Outcome tells whether series data was found, not found, or the probe failed
	Outcome ProbeOutcome

	// Err is set only when Outcome is OutcomeFailed
	Err error
}

// AuditResult is the outcome of one audit run.
//
// Checked, Unqueried and Failed keep inventory order. Every name in Unqueried
// or Failed is also in Checked, and no name is in both Unqueried and Failed.
type AuditResult struct {
	Window    Window   `json:"window"`
	Checked   []string `json:"checked"`
	Unqueried []string `json:"unqueried"`
	Failed    []string `json:"failed"`
}
