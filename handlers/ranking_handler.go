package handlers

import (
	"net/http"

	"github.com/opp-dev/polla-api/services"
)

type RankingHandler struct {
	scoringService services.ScoringService
}

func NewRankingHandler(scoringService services.ScoringService) *RankingHandler {
	return &RankingHandler{scoringService: scoringService}
}

// Ranking обрабатывает GET /ranking: таблица позиций, пересчитанная на
// момент запроса.
func (h *RankingHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.scoringService.GetRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Detail обрабатывает GET /ranking/detail: поматчевая атрибуция очков.
func (h *RankingHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.scoringService.GetDetail(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"detail": detail}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
