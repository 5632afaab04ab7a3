package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tracker/internal/core"
	"tracker/internal/log"
	"tracker/internal/service"
	"tracker/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	svc := service.New(memory.New(), nil)
	s := NewServer(":0", svc, logger)
	t.Cleanup(func() {
		s.rateLimiter.stop()
	})
	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeExpense(t *testing.T, rec *httptest.ResponseRecorder) core.Expense {
	t.Helper()
	var e core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode expense: %v (body %s)", err, rec.Body.String())
	}
	return e
}

func TestCreateAndListRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/expenses", `{"title":"Coffee","amount":1.50,"category":"Food","date":"2024-01-05"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeExpense(t, rec)
	if created.ID == "" {
		t.Fatal("no id assigned")
	}
	if created.Amount.Cents != 150 || created.Category != core.Food || created.Date.String() != "2024-01-05" {
		t.Fatalf("created %+v", created)
	}

	rec = doJSON(t, s, http.MethodGet, "/expenses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	var list []core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].Title != "Coffee" {
		t.Fatalf("list %+v", list)
	}
}

func TestListOrderedByDateDescending(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"title":"Older","amount":"10","category":"Bills","date":"2024-01-01"}`,
		`{"title":"Newer","amount":"20","category":"Bills","date":"2024-03-01"}`,
		`{"title":"Middle","amount":"30","category":"Bills","date":"2024-02-01"}`,
	} {
		if rec := doJSON(t, s, http.MethodPost, "/expenses", body); rec.Code != http.StatusCreated {
			t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, s, http.MethodGet, "/expenses", "")
	var list []core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 3 || list[0].Title != "Newer" || list[1].Title != "Middle" || list[2].Title != "Older" {
		t.Fatalf("order: %+v", list)
	}
}

func TestCreateValidationError(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"amount":5,"category":"Food"}`},
		{"missing category", `{"title":"Coffee","amount":5}`},
		{"missing amount", `{"title":"Coffee","category":"Food"}`},
		{"negative amount", `{"title":"Coffee","amount":-1,"category":"Food"}`},
		{"category sentinel", `{"title":"Coffee","amount":5,"category":"All"}`},
		{"unknown category", `{"title":"Coffee","amount":5,"category":"Groceries"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/expenses", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
			}
			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil || payload["error"] == "" {
				t.Fatalf("error payload %s", rec.Body.String())
			}
		})
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	s := newTestServer(t)

	created := decodeExpense(t, doJSON(t, s, http.MethodPost, "/expenses",
		`{"title":"Coffee","amount":1.50,"category":"Food","date":"2024-01-05"}`))

	rec := doJSON(t, s, http.MethodPut, "/expenses/"+created.ID, `{"amount":2.00}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeExpense(t, rec)
	if updated.Amount.Cents != 200 {
		t.Fatalf("amount %d", updated.Amount.Cents)
	}
	if updated.Title != "Coffee" || updated.Category != core.Food || updated.Date.String() != "2024-01-05" {
		t.Fatalf("other fields changed: %+v", updated)
	}
}

func TestUpdateMissingExpense(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPut, "/expenses/nope", `{"amount":2}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Expense not found"}` {
		t.Fatalf("body %s", body)
	}
}

func TestDeleteThenDeleteAgain(t *testing.T) {
	s := newTestServer(t)

	created := decodeExpense(t, doJSON(t, s, http.MethodPost, "/expenses",
		`{"title":"Coffee","amount":1.50,"category":"Food"}`))

	rec := doJSON(t, s, http.MethodDelete, "/expenses/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil || payload["deletedId"] != created.ID {
		t.Fatalf("delete payload %s", rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/expenses", "")
	var list []core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list after delete: %+v", list)
	}

	// Deleting the same id again is still a 404, list unchanged.
	rec = doJSON(t, s, http.MethodDelete, "/expenses/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d", rec.Code)
	}
}

func TestMalformedBodyRejected(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/expenses", `{"title":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/expenses", "")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestHandlerLogsCarryRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Handler: slog.NewTextHandler(&buf, nil)})
	svc := service.New(memory.New(), nil)
	s := NewServer(":0", svc, logger)
	t.Cleanup(func() { s.rateLimiter.stop() })

	rec := doJSON(t, s, http.MethodPost, "/expenses", `{"title":"Coffee","amount":1.50,"category":"Food"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "Expense created") && !strings.Contains(line, log.FieldRequestID+"=req_") {
			t.Fatalf("handler log line missing request id: %s", line)
		}
	}
	if !strings.Contains(buf.String(), "Expense created") {
		t.Fatal("expected a handler log line for the create")
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s status %d", path, rec.Code)
		}
	}
}
