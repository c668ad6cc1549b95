/*
handlers.go - HTTP handlers for the record book

PURPOSE:
  The thin presentation adapter between the UI and the Book. Handlers parse
  and validate JSON, call the domain mutators, and serialize state back.
  Confirmation prompts live in the UI; by the time a destructive request
  reaches here it is executed unconditionally, except the empty-shift close
  which needs an explicit force flag.

ENDPOINTS:
  Dashboard:
    GET    /api/dashboard             Totals, counts, ledger, shift, prices
    GET    /api/transactions/filtered Filtered view with subtotals

  Transactions:
    POST   /api/transactions          Add transaction
    DELETE /api/transactions/{id}     Delete transaction (idempotent)
    PUT    /api/transactions/{id}/method  Reclassify payment method
    PUT    /api/transactions/filter   Switch the active filter

  Shift:
    GET    /api/shift                 Current shift (+ suggested start)
    PUT    /api/shift                 Save shift info
    POST   /api/shift/end             End shift (force closes empty shifts)

  History:
    GET    /api/history               Archived shifts
    GET    /api/history/{id}          One archived shift
    DELETE /api/history/{id}          Delete one shift
    DELETE /api/history               Clear history

  Prices & calculator:
    GET    /api/prices                Current price table
    PUT    /api/prices                Replace price table (all-or-nothing)
    POST   /api/calculator/amount     Amount-mode discount
    POST   /api/calculator/volume     Volume-mode discount

  Backup:
    GET    /api/export                Versioned backup document
    POST   /api/import                Merge a backup document
    DELETE /api/data                  Clear current shift data

ERROR HANDLING:
  - 400: validation errors, malformed documents
  - 409: empty-shift close without force (UI shows the confirmation)
  - 500: everything else
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Book *ledger.Book
}

// NewHandler creates a handler around the application state.
func NewHandler(book *ledger.Book) *Handler {
	return &Handler{Book: book}
}

// =============================================================================
// DASHBOARD
// =============================================================================

// GetDashboard returns everything the current-shift page renders.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DashboardDTO{
		Totals:       h.Book.Totals(),
		Counts:       h.Book.Counts(),
		Filter:       h.Book.ActiveFilter(),
		Transactions: h.Book.Transactions(),
		ShiftInfo:    h.Book.ShiftInfo(),
		FuelPrices:   h.Book.Prices(),
	})
}

// GetFiltered returns the transactions passing the active filter plus
// their subtotals.
func (h *Handler) GetFiltered(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FilteredDTO{
		Filter:       h.Book.ActiveFilter(),
		Transactions: h.Book.FilteredTransactions(),
		Totals:       h.Book.FilteredTotals(),
	})
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// AddTransaction records a new payment.
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Book.AddTransaction(r.Context(), req.Amount, req.Discount, ledger.PaymentMethod(req.PaymentMethod))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// DeleteTransaction removes a transaction. Always 204: absent ids are a
// designed no-op.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction id", err)
		return
	}
	h.Book.DeleteTransaction(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// UpdatePaymentMethod reclassifies a transaction.
func (h *Handler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction id", err)
		return
	}

	var req UpdateMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Book.UpdatePaymentMethod(r.Context(), id, ledger.PaymentMethod(req.PaymentMethod)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFilter switches the active method filter.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filter string `json:"filter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Book.SetFilter(ledger.MethodFilter(req.Filter)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SHIFT
// =============================================================================

// GetShift returns the open shift, or a suggested start time when none is.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	info := h.Book.ShiftInfo()
	dto := ShiftInfoDTO{ShiftInfo: info, Open: !info.Empty()}
	if info.Empty() {
		now := ledger.Now()
		dto.SuggestedStart = &now
	}
	writeJSON(w, http.StatusOK, dto)
}

// SaveShift opens or updates the current shift.
func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req ShiftInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := ledger.ParseTimestamp(req.ShiftStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift start time", err)
		return
	}
	var end *ledger.Timestamp
	if req.ShiftEnd != "" {
		parsed, err := ledger.ParseTimestamp(req.ShiftEnd)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid shift end time", err)
			return
		}
		end = &parsed
	}

	if err := h.Book.SaveShiftInfo(r.Context(), req.EmployeeName, start, end); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Book.ShiftInfo())
}

// EndShift closes the current shift and returns the archived summary.
func (h *Handler) EndShift(w http.ResponseWriter, r *http.Request) {
	var req EndShiftRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	summary, err := h.Book.EndShift(r.Context(), req.Force)
	if errors.Is(err, ledger.ErrEmptyShift) {
		// The UI turns this into the "end anyway?" confirmation.
		writeError(w, http.StatusConflict, "No transactions recorded; set force to end anyway", err)
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// =============================================================================
// HISTORY
// =============================================================================

// ListHistory returns all archived shifts, most recent first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Book.History())
}

// GetShiftSummary returns one archived shift.
func (h *Handler) GetShiftSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}
	shift, ok := h.Book.ShiftByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, shift)
}

// DeleteShift removes one archived shift. Always 204.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}
	h.Book.DeleteShift(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory wipes all archived shifts.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.Book.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PRICES & CALCULATOR
// =============================================================================

// GetPrices returns the current price table.
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Book.Prices())
}

// SetPrices replaces the price table.
func (h *Handler) SetPrices(w http.ResponseWriter, r *http.Request) {
	var req PricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	prices := ledger.FuelPrices{Normal: req.Normal, XP95: req.XP95, Diesel: req.Diesel}
	if err := h.Book.SetPrices(r.Context(), prices); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Book.Prices())
}

// CalculateAmountMode runs the amount-mode discount calculator. The unit
// price comes from the request, or from the price table when a fuel type
// is named instead.
func (h *Handler) CalculateAmountMode(w http.ResponseWriter, r *http.Request) {
	var req AmountModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	unitPrice := req.UnitPrice
	if req.FuelType != "" {
		price, err := h.Book.PriceFor(ledger.FuelType(req.FuelType))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown fuel type", err)
			return
		}
		unitPrice = price
	}

	result, err := ledger.AmountModeDiscount(unitPrice, req.CustomerAmount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CalculateVolumeMode runs the volume-mode discount calculator.
func (h *Handler) CalculateVolumeMode(w http.ResponseWriter, r *http.Request) {
	var req VolumeModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	unitPrice := req.UnitPrice
	if req.FuelType != "" {
		price, err := h.Book.PriceFor(ledger.FuelType(req.FuelType))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown fuel type", err)
			return
		}
		unitPrice = price
	}

	result, err := ledger.VolumeModeDiscount(req.Liters, req.PerLiterDiscount, unitPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// BACKUP
// =============================================================================

// Export returns the versioned backup document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Book.Export())
}

// Import merges an uploaded backup document into the live state. The body
// is either an ImportRequest wrapper or a bare export document (the latter
// never adopts prices).
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.Book.Import(r.Context(), req.Document, req.AdoptPrices)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ClearData wipes the current shift (ledger, shift info, filter). History
// and prices survive.
func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	h.Book.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	case ledger.IsFormat(err):
		writeError(w, http.StatusBadRequest, "Invalid document", err)
	case errors.Is(err, ledger.ErrNoShift):
		writeError(w, http.StatusBadRequest, "Save shift information first", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
