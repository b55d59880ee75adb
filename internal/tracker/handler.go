// Routes:
//
//	POST   /api/applications                  → create
//	GET    /api/applications                  → list (optional ?company=)
//	GET    /api/applications/recent           → most recently updated (?limit=)
//	GET    /api/applications/active           → non-terminal applications
//	GET    /api/applications/interview        → interview stages
//	GET    /api/applications/stats            → five-count snapshot
//	GET    /api/applications/stats/breakdown  → per-status partition
//	GET    /api/applications/status/{status}  → filter by status
//	GET    /api/applications/{id}             → one application
//	PUT    /api/applications/{id}             → full replacement
//	DELETE /api/applications/{id}             → delete
//	GET    /api/statuses                      → status labels and hints

package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/p3bustos/jobtracker/internal/logger"
)

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler exposes the Service over JSON/HTTP.
type Handler struct {
	svc *Service
	log *logger.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts all tracker routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/statuses", h.listStatuses)

	r.Route("/api/applications", func(r chi.Router) {
		r.Post("/", h.createApplication)
		r.Get("/", h.listApplications)
		r.Get("/recent", h.recentApplications)
		r.Get("/active", h.listActive)
		r.Get("/interview", h.listInInterview)
		r.Get("/stats", h.stats)
		r.Get("/stats/breakdown", h.breakdown)
		r.Get("/status/{status}", h.listByStatus)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getApplication)
			r.Put("/", h.updateApplication)
			r.Delete("/", h.deleteApplication)
		})
	})
}

// ─── Individual handlers ─────────────────────────────────────────────────────

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.SearchApplications(r.Context(), r.URL.Query().Get("company"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) recentApplications(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, &ValidationError{Field: "limit", Msg: "must be a positive integer"})
			return
		}
		limit = n
	}

	apps, err := h.svc.RecentApplications(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListActive(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) listInInterview(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListInInterview(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) listByStatus(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, st)
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Breakdown(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, b)
}

func (h *Handler) listStatuses(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, StatusCatalog())
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	app, err := h.svc.GetApplication(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, app)
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request) {
	var req ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", "", http.StatusBadRequest)
		return
	}

	app, err := h.svc.CreateApplication(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *Handler) updateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", "", http.StatusBadRequest)
		return
	}

	app, err := h.svc.UpdateApplication(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, app)
}

func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteApplication(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		jsonError(w, "id must be a positive integer", "id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		ve *ValidationError
		ie *InvalidStatusError
	)
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Msg, ve.Field, http.StatusBadRequest)
	case errors.As(err, &ie):
		jsonError(w, ie.Error(), "status", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		jsonError(w, err.Error(), "", http.StatusNotFound)
	default:
		h.log.Error().Err(err).Msg("request failed")
		jsonError(w, "internal server error", "", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg, field string, code int) {
	body := map[string]string{"error": msg}
	if field != "" {
		body["field"] = field
	}
	writeJSON(w, code, body)
}
