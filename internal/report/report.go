// Package report renders audit results for the operator.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Schera-ole/metricsaudit/internal/config"
	internalerrors "github.com/Schera-ole/metricsaudit/internal/errors"
	models "github.com/Schera-ole/metricsaudit/internal/model"
)

// Write renders r to w in the given format.
func Write(w io.Writer, format string, r models.AuditResult) error {
	switch format {
	case config.FormatText, "":
		return WriteText(w, r)
	case config.FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%w: %q", internalerrors.ErrUnsupportedFormat, format)
	}
}

// WriteText prints the unqueried metrics followed by the totals.
func WriteText(w io.Writer, r models.AuditResult) error {
	if _, err := fmt.Fprintln(w, "Custom metrics not queried in the last 24 hours:"); err != nil {
		return err
	}
	for _, name := range r.Unqueried {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Total custom metrics checked: %d\n", len(r.Checked)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total unqueried custom metrics: %d\n", len(r.Unqueried))
	return err
}

type jsonReport struct {
	models.AuditResult
	CheckedTotal   int `json:"checked_total"`
	UnqueriedTotal int `json:"unqueried_total"`
}

// WriteJSON prints r as a single indented JSON document.
func WriteJSON(w io.Writer, r models.AuditResult) error {
	report := jsonReport{
		AuditResult:    r,
		CheckedTotal:   len(r.Checked),
		UnqueriedTotal: len(r.Unqueried),
	}
	for _, list := range []*[]string{&report.Checked, &report.Unqueried, &report.Failed} {
		if *list == nil {
			*list = []string{}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
