package handlers

import (
	"net/http"

	"github.com/opp-dev/polla-api/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// List обрабатывает GET /results.
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Replace обрабатывает PUT /admin/results: заменяет результаты присланных
// match_id, не трогая остальные.
func (h *ResultHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Results []services.ResultInput `json:"results"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ReplaceForMatches(r.Context(), input.Results)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
