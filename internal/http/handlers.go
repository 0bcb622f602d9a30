package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tally/internal/core"
)

type addExpenseRequest struct {
	Date        string   `json:"date"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Note        string   `json:"note"`
}

// editExpenseRequest mirrors core.ExpenseUpdate: a field absent from the
// JSON body stays nil and is left unchanged; a field present with any value,
// empty string included, is overwritten.
type editExpenseRequest struct {
	Date        *string  `json:"date"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Note        *string  `json:"note"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	if req.Amount == nil {
		writeDomainError(w, &core.ValidationError{Field: "amount", Reason: "required"})
		return
	}

	id, err := s.ledger.AddExpense(r.Context(), core.NewExpense{
		Date:        req.Date,
		Amount:      *req.Amount,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Note:        req.Note,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to add expense",
			"error", err,
			"date", req.Date,
			"category", req.Category)
		writeDomainError(w, err)
		return
	}

	writeOK(w, http.StatusCreated, id)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	expenses, err := s.ledger.ListExpenses(r.Context(), start, end)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to list expenses",
			"error", err,
			"start_date", start,
			"end_date", end)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req editExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	upd := core.ExpenseUpdate{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Note:        req.Note,
	}

	if err := s.ledger.EditExpense(r.Context(), id, upd); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to edit expense", "error", err, "id", id)
		writeDomainError(w, err)
		return
	}

	writeOK(w, http.StatusOK, id)
}

func (s *Server) handleSummarizeExpenses(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRangeParams(w, r)
	if !ok {
		return
	}
	category := r.URL.Query().Get("category")

	totals, err := s.ledger.SummarizeExpenses(r.Context(), start, end, category)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to summarize expenses",
			"error", err,
			"start_date", start,
			"end_date", end,
			"category", category)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// handleCategories serves the external category catalog verbatim. The file
// is re-read on every request so edits show up without a restart.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	data, err := s.catalog.Read(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to read category catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "category catalog unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// dateRangeParams extracts and validates start_date and end_date. An
// inverted range is legal (it matches nothing); malformed dates are not.
func dateRangeParams(w http.ResponseWriter, r *http.Request) (start, end string, ok bool) {
	q := r.URL.Query()
	start = q.Get("start_date")
	end = q.Get("end_date")

	if !core.ValidDate(start) {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return "", "", false
	}
	if !core.ValidDate(end) {
		writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return "", "", false
	}
	return start, end, true
}
