package handlers

import (
	"net/http"

	"github.com/opp-dev/polla-api/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

// List обрабатывает GET /fixtures?stage=...
func (h *FixtureHandler) List(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")

	fixtures, err := h.fixtureService.List(r.Context(), stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Upload обрабатывает POST /admin/fixtures: multipart-форма с полем "file",
// CSV полностью заменяет таблицу матчей.
func (h *FixtureHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	count, err := h.fixtureService.ReplaceAllFromCSV(r.Context(), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"loaded": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LoadSample обрабатывает POST /admin/fixtures/sample.
func (h *FixtureHandler) LoadSample(w http.ResponseWriter, r *http.Request) {
	count, err := h.fixtureService.LoadSample(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"loaded": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Template обрабатывает GET /fixtures/template: отдаёт пустой шаблон CSV.
func (h *FixtureHandler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fixtures_template.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.fixtureService.TemplateCSV())
}
