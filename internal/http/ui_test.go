package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func doForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func createViaForm(t *testing.T, s *Server, title, amount, category, date string) {
	t.Helper()
	rec := doForm(t, s, "/ui/expenses", url.Values{
		"title":    {title},
		"amount":   {amount},
		"category": {category},
		"date":     {date},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("form create status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIndexRenders(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Expense Tracker") || !strings.Contains(body, `value="Food"`) {
		t.Fatalf("unexpected index body:\n%s", body)
	}
}

func TestFormSubmitCreatesAndRefreshesList(t *testing.T) {
	s := newTestServer(t)

	rec := doForm(t, s, "/ui/expenses", url.Values{
		"title":    {"Coffee"},
		"amount":   {"1.50"},
		"category": {"Food"},
		"date":     {"2026-08-10"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "form:reset") {
		t.Error("missing HX-Trigger form reset")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Coffee") || !strings.Contains(body, "Total: 1.50") {
		t.Fatalf("list partial:\n%s", body)
	}
}

func TestFormSubmitValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		form url.Values
	}{
		{"missing title", url.Values{"amount": {"1"}, "category": {"Food"}}},
		{"missing amount", url.Values{"title": {"Coffee"}, "category": {"Food"}}},
		{"missing category", url.Values{"title": {"Coffee"}, "amount": {"1"}}},
		{"garbage amount", url.Values{"title": {"Coffee"}, "amount": {"abc"}, "category": {"Food"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doForm(t, s, "/ui/expenses", tc.form)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `class="error"`) {
				t.Fatalf("no error div: %s", rec.Body.String())
			}
		})
	}
}

func TestExpenseListFiltering(t *testing.T) {
	s := newTestServer(t)
	createViaForm(t, s, "Coffee", "1.50", "Food", "2026-08-10")
	createViaForm(t, s, "Train ticket", "12", "Transport", "2026-08-11")

	rec := doJSON(t, s, http.MethodGet, "/ui/expenses?category=Transport", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Coffee") || !strings.Contains(body, "Train ticket") {
		t.Fatalf("category filter:\n%s", body)
	}
	if !strings.Contains(body, "Total: 12") {
		t.Fatalf("total:\n%s", body)
	}

	// Search matches the category too, case-insensitively.
	rec = doJSON(t, s, http.MethodGet, "/ui/expenses?search=transp", "")
	body = rec.Body.String()
	if strings.Contains(body, "Coffee") || !strings.Contains(body, "Train ticket") {
		t.Fatalf("search filter:\n%s", body)
	}

	rec = doJSON(t, s, http.MethodGet, "/ui/expenses?from=2026-08-11&to=2026-08-12", "")
	body = rec.Body.String()
	if strings.Contains(body, "Coffee") || !strings.Contains(body, "Train ticket") {
		t.Fatalf("date filter:\n%s", body)
	}
}

func TestExpenseFormPrefillsForEdit(t *testing.T) {
	s := newTestServer(t)
	createViaForm(t, s, "Coffee", "1.50", "Food", "2026-08-10")

	list := doJSON(t, s, http.MethodGet, "/expenses", "")
	id := extractFirstID(t, list.Body.String())

	rec := doJSON(t, s, http.MethodGet, "/ui/expense-form?id="+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`value="Coffee"`, `value="1.50"`, `value="2026-08-10"`, `value="` + id + `"`} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %s:\n%s", want, body)
		}
	}
}

func TestExpenseFormUnknownID(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/ui/expense-form?id=nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Expense not found") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestFormSubmitWithIDUpdates(t *testing.T) {
	s := newTestServer(t)
	createViaForm(t, s, "Coffee", "1.50", "Food", "2026-08-10")

	list := doJSON(t, s, http.MethodGet, "/expenses", "")
	id := extractFirstID(t, list.Body.String())

	rec := doForm(t, s, "/ui/expenses", url.Values{
		"id":       {id},
		"title":    {"Espresso"},
		"amount":   {"2"},
		"category": {"Food"},
		"date":     {"2026-08-10"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Espresso") || strings.Contains(body, ">Coffee<") {
		t.Fatalf("list after edit:\n%s", body)
	}
}

func TestUIDeleteRemovesRow(t *testing.T) {
	s := newTestServer(t)
	createViaForm(t, s, "Coffee", "1.50", "Food", "2026-08-10")

	list := doJSON(t, s, http.MethodGet, "/expenses", "")
	id := extractFirstID(t, list.Body.String())

	rec := doJSON(t, s, http.MethodDelete, "/ui/expenses/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "Coffee") {
		t.Fatalf("row still present:\n%s", rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodDelete, "/ui/expenses/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d", rec.Code)
	}
}

// extractFirstID pulls the first "id" value out of a JSON list response.
func extractFirstID(t *testing.T, body string) string {
	t.Helper()
	const marker = `"id":"`
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("no id in body: %s", body)
	}
	rest := body[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		t.Fatalf("unterminated id in body: %s", body)
	}
	return rest[:j]
}
