package http

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tracker/internal/core"
	"tracker/internal/log"
	"tracker/internal/store"
)

type indexData struct {
	Categories []core.Category
}

type listData struct {
	Expenses []core.Expense
	Total    core.Amount
	Criteria core.Criteria
}

type formData struct {
	ID          string
	Title       string
	Amount      string
	Category    core.Category
	Date        string
	Description string
	Categories  []core.Category
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", indexData{Categories: core.Categories()}); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleExpenseList renders the filtered expense list partial with its
// running total.
func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	s.renderList(w, r, parseCriteria(r))
}

// handleExpenseForm renders the create form, or the edit form when an id is
// given.
func (s *Server) handleExpenseForm(w http.ResponseWriter, r *http.Request) {
	data := formData{
		Date:       core.Today().String(),
		Categories: core.Categories(),
	}

	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		e, err := s.service.Get(r.Context(), id)
		if err != nil {
			respondUIError(w, r, err)
			return
		}
		data = formData{
			ID:          e.ID,
			Title:       e.Title,
			Amount:      e.Amount.String(),
			Category:    e.Category,
			Date:        core.DateOf(e.Date.Time).String(),
			Description: e.Description,
			Categories:  core.Categories(),
		}
	}

	if err := s.templates.ExecuteTemplate(w, "expense_form", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Form template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleFormSubmit dispatches create vs update on the hidden id field and
// answers with the refreshed list partial.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Parse form error", log.FieldError, err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	title := sanitizeInput(r.Form.Get("title"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	category := core.Category(strings.TrimSpace(r.Form.Get("category")))
	description := sanitizeInput(r.Form.Get("description"))

	if title == "" || amountStr == "" || category == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Title, amount and category are required</div>`))
		return
	}

	amount, err := core.ParseAmount(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	fields := store.Fields{
		Title:       &title,
		Amount:      &amount,
		Category:    &category,
		Description: &description,
	}
	if v := strings.TrimSpace(r.Form.Get("date")); v != "" {
		date, err := core.ParseDate(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
			return
		}
		fields.Date = &date
	}

	var saved core.Expense
	if id == "" {
		saved, err = s.service.Create(r.Context(), fields)
	} else {
		saved, err = s.service.Update(r.Context(), id, fields)
	}
	if err != nil {
		respondUIError(w, r, err)
		return
	}

	w.Header().Set("HX-Trigger", fmt.Sprintf(`{"form:reset": {}, "show-notification": {"type": "success", "message": "Saved: %s", "duration": 3000}}`,
		template.JSEscapeString(saved.Title)))
	s.renderList(w, r, core.Criteria{})
}

// handleExpenseDelete removes a record and answers with the refreshed list.
// The browser-side confirmation gate is the form's hx-confirm attribute.
func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.service.Delete(r.Context(), id); err != nil {
		respondUIError(w, r, err)
		return
	}
	s.renderList(w, r, parseCriteria(r))
}

func (s *Server) renderList(w http.ResponseWriter, r *http.Request, criteria core.Criteria) {
	expenses, err := s.service.List(r.Context())
	if err != nil {
		respondUIError(w, r, err)
		return
	}
	filtered, total := core.FilterTotal(expenses, criteria)

	data := listData{Expenses: filtered, Total: total, Criteria: criteria}
	if err := s.templates.ExecuteTemplate(w, "expense_list", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondUIError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong"
	switch {
	case isNotFound(err):
		status = http.StatusNotFound
		message = "Expense not found"
	case isValidationError(err):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "UI request failed", log.FieldError, err)
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`))
}
