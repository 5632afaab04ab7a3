package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"tracker/internal/log"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Listing expenses failed",
			log.FieldError, err,
			log.FieldOperation, log.OpList)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.service.Create(r.Context(), fields)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Creating expense failed",
			log.FieldError, err,
			log.FieldOperation, log.OpCreate)
		respondStoreError(w, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Expense created",
		log.FieldExpenseID, created.ID,
		log.FieldTitle, created.Title,
		log.FieldAmountCents, created.Amount.Cents,
		log.FieldCategory, created.Category,
		log.FieldOperation, log.OpCreate)

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	fields, err := decodeFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.service.Update(r.Context(), id, fields)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Updating expense failed",
			log.FieldError, err,
			log.FieldExpenseID, id,
			log.FieldOperation, log.OpUpdate)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.service.Delete(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Deleting expense failed",
			log.FieldError, err,
			log.FieldExpenseID, id,
			log.FieldOperation, log.OpDelete)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deletedId": id})
}
