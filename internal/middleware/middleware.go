// Package middlewareinternal provides HTTP client middleware for the platform API clients.
//
// It logs every outbound request with its status, duration and response size.
// Authentication headers are never logged.
package middlewareinternal

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	responseData struct {
		status int
		size   int
	}

	countingBody struct {
		io.ReadCloser
		responseData *responseData
		onClose      func()
		closed       bool
	}
)

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.responseData.size += n
	return n, err
}

func (b *countingBody) Close() error {
	err := b.ReadCloser.Close()
	if !b.closed {
		b.closed = true
		b.onClose()
	}
	return err
}

type loggingTransport struct {
	next   http.RoundTripper
	logger *zap.SugaredLogger
}

// LoggingTransport wraps next so that each request is logged once its body is closed.
// A nil next uses http.DefaultTransport.
func LoggingTransport(logger *zap.SugaredLogger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	uri := r.URL.Path
	method := r.Method

	response, err := t.next.RoundTrip(r)
	if err != nil {
		t.logger.Debugln(
			"uri", uri,
			"method", method,
			"duration", time.Since(start),
			"error", err,
		)
		return response, err
	}

	responseData := &responseData{status: response.StatusCode}
	response.Body = &countingBody{
		ReadCloser:   response.Body,
		responseData: responseData,
		onClose: func() {
			t.logger.Debugln(
				"uri", uri,
				"method", method,
				"status", responseData.status,
				"duration", time.Since(start),
				"size", responseData.size,
			)
		},
	}
	return response, nil
}

// NewClient returns an http.Client whose transport logs through logger.
func NewClient(logger *zap.SugaredLogger) *http.Client {
	return &http.Client{Transport: LoggingTransport(logger, nil)}
}
