package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/casepilot/casepilot/internal/port/reportstore"
	"github.com/casepilot/casepilot/internal/port/worker"
	"github.com/casepilot/casepilot/internal/service"
)

// Handlers bundles the dependencies the REST handlers need.
type Handlers struct {
	triage       *service.Triage
	store        reportstore.Store
	registry     *worker.Registry
	maxBodyBytes int64

	// componentHealth reports per-component status for /health. Keys are
	// component names, values "ok" or a problem description.
	componentHealth func() map[string]string
}

// NewHandlers builds the handler set. componentHealth may be nil.
func NewHandlers(triage *service.Triage, store reportstore.Store, registry *worker.Registry, maxBodyBytes int64, componentHealth func() map[string]string) *Handlers {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handlers{
		triage:          triage,
		store:           store,
		registry:        registry,
		maxBodyBytes:    maxBodyBytes,
		componentHealth: componentHealth,
	}
}

type triageRequest struct {
	Text string `json:"text"`
}

// TriageText runs the pipeline on JSON-submitted case text.
func (h *Handlers) TriageText(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[triageRequest](w, r, h.maxBodyBytes)
	if !ok {
		return
	}

	rep, err := h.triage.ProcessText(r.Context(), req.Text)
	if err != nil {
		writeDomainError(w, err, "triage failed")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// TriageFile runs the pipeline on an uploaded plain-text case file.
func (h *Handlers) TriageFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	rep, err := h.triage.ProcessText(r.Context(), string(data))
	if err != nil {
		writeDomainError(w, err, "triage failed")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GetReport returns one archived report by ID.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	rep, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ListReports returns archived report summaries, newest first.
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	summaries, err := h.store.ListReports(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, "could not list reports")
		return
	}
	if summaries == nil {
		summaries = []reportstore.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": summaries})
}

type workerInfo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ListWorkers returns the registered worker roster.
func (h *Handlers) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers := h.registry.List()
	infos := make([]workerInfo, 0, len(workers))
	for _, wk := range workers {
		infos = append(infos, workerInfo{
			ID:          wk.ID(),
			Category:    string(wk.Category()),
			Description: wk.Description(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"workers": infos})
}

// Health reports service liveness and per-component status.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if h.componentHealth != nil {
		resp["components"] = h.componentHealth()
	}
	writeJSON(w, http.StatusOK, resp)
}
