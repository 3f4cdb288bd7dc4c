package http

import (
	"net/http"
	"strconv"
	"time"

	"microloan/domain"
	"microloan/service"
)

type QuoteHandler struct {
	quotes *service.QuoteService
}

func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// quoteRequest leaves the rate optional: when absent it is derived from the
// tenure tiers, matching the calculator on the portal home page.
type quoteRequest struct {
	Principal          float64  `json:"principal"`
	TermMonths         int      `json:"termMonths"`
	MonthlyRatePercent *float64 `json:"monthlyRatePercent"`
}

func (q quoteRequest) toInput() domain.QuoteInput {
	input := domain.QuoteInput{
		Principal:  q.Principal,
		TermMonths: q.TermMonths,
	}
	if q.MonthlyRatePercent != nil {
		input.MonthlyRatePercent = *q.MonthlyRatePercent
	} else {
		input.MonthlyRatePercent = service.RateForTerm(q.TermMonths)
	}
	return input
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	quote, err := h.quotes.Quote(req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, quote)
}

// Schedule previews the repayment plan for a prospective loan.
func (h *QuoteHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	schedule, err := h.quotes.Schedule(0, req.toInput(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, schedule)
}

func (h *QuoteHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Principal         float64 `json:"principal"`
		MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.quotes.RecommendTerm(req.Principal, req.MaxMonthlyPayment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// Rate resolves the tier rate for a tenure, e.g. GET /loan/rate?termMonths=12.
func (h *QuoteHandler) Rate(w http.ResponseWriter, r *http.Request) {
	term, err := strconv.Atoi(r.URL.Query().Get("termMonths"))
	if err != nil || term < 1 {
		writeError(w, service.ErrInvalidInput)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"termMonths":         term,
		"monthlyRatePercent": service.RateForTerm(term),
	})
}
