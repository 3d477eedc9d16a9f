package repository

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

const (
	testAPIKey = "test-api-key"
	testAppKey = "test-app-key"
)

type fakeQuery struct {
	status int
	body   string
}

type fakeRecord struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// fakeAPI emulates the tag configuration and query endpoints.
type fakeAPI struct {
	mu              sync.Mutex
	inventory       []fakeRecord
	inventoryStatus int
	queries         map[string]fakeQuery
	requests        []*http.Request
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{queries: make(map[string]fakeQuery)}
	router := chi.NewRouter()
	router.Use(api.recordRequest)
	router.Use(api.requireKeys)
	router.Get("/api/v2/metrics", api.listTagConfigurations)
	router.Get("/api/v1/query", api.query)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return api, server
}

func (a *fakeAPI) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, r.Clone(r.Context()))
		a.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (a *fakeAPI) requireKeys(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("DD-API-KEY") != testAPIKey || r.Header.Get("DD-APPLICATION-KEY") != testAppKey {
			writeJSON(w, http.StatusForbidden, map[string]any{"errors": []string{"Forbidden"}})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *fakeAPI) listTagConfigurations(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.inventoryStatus != 0 {
		writeJSON(w, a.inventoryStatus, map[string]any{"errors": []string{"Internal Server Error"}})
		return
	}
	records := a.inventory
	if records == nil {
		records = []fakeRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (a *fakeAPI) query(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	q, ok := a.queries[r.URL.Query().Get("query")]
	a.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "series": []any{}})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(q.status)
	w.Write([]byte(q.body))
}

func (a *fakeAPI) setQuery(metric string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries[QueryExpression(metric)] = fakeQuery{status: status, body: body}
}

func (a *fakeAPI) lastRequest() *http.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.requests) == 0 {
		return nil
	}
	return a.requests[len(a.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
