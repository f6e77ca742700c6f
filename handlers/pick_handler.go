package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opp-dev/polla-api/services"
)

type PickHandler struct {
	pickService services.PickService
}

func NewPickHandler(pickService services.PickService) *PickHandler {
	return &PickHandler{pickService: pickService}
}

// Submit обрабатывает POST /picks: пачка прогнозов участника на открытые
// матчи, upsert по (имя, матч). Закрытые матчи пропускаются на сервере
// независимо от того, что прислал UI.
func (h *PickHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string               `json:"name"`
		Picks []services.PickInput `json:"picks"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	saved, err := h.pickService.SubmitPicks(r.Context(), input.Name, input.Picks)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"saved": len(saved),
		"picks": saved,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MyPicks обрабатывает GET /picks/{name}. С ?format=csv отдаёт выгрузку
// для скачивания.
func (h *PickHandler) MyPicks(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	picks, err := h.pickService.GetPicksByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		h.writePicksCSV(w, name, picks)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"picks": picks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PickHandler) writePicksCSV(w http.ResponseWriter, name string, picks []services.MyPick) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pronosticos_%s.csv"`, name))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"stage", "match_id", "home", "away", "home_pred", "away_pred", "kickoff_utc", "kickoff_local", "ts_utc"})
	for _, p := range picks {
		_ = cw.Write([]string{
			p.Stage,
			strconv.Itoa(p.MatchID),
			p.Home,
			p.Away,
			strconv.Itoa(p.HomePred),
			strconv.Itoa(p.AwayPred),
			p.KickoffUTC,
			p.KickoffLocal,
			p.TsUTC,
		})
	}
	cw.Flush()
}
