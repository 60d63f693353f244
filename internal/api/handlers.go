package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/filter"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/session"
	"github.com/starford/othala/internal/sse"
)

// maxBodyBytes caps request bodies; a portfolio document is small.
const maxBodyBytes = 5 << 20

// ExportFileName is the well-known download name the render path looks for.
const ExportFileName = "portfolio_data.json"

// EventNotifier is called after import/export so the SSE layer can inform
// open pages. May be nil.
type EventNotifier func(kind, path string)

// Handler holds API route handlers.
type Handler struct {
	svc    *session.Service
	notify EventNotifier
}

// NewHandler creates a new Handler.
func NewHandler(svc *session.Service, notify EventNotifier) *Handler {
	return &Handler{svc: svc, notify: notify}
}

func (h *Handler) publish(kind string) {
	if h.notify != nil {
		h.notify(kind, ExportFileName)
	}
}

// GetPortfolio handles GET /portfolio.
func (h *Handler) GetPortfolio(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Document())
}

// ReplacePortfolio handles PUT /portfolio: a wholesale replace through the
// lenient parser, same path as a file import.
func (h *Handler) ReplacePortfolio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	if err := h.svc.Import(data); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	h.publish(sse.KindImported)
	writeJSON(w, http.StatusOK, h.svc.Document())
}

// UpdateProfile handles PUT /portfolio/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.svc.SetProfile(req)
	writeJSON(w, http.StatusOK, h.svc.Document())
}

// Export handles GET /portfolio/export: validate, then offer the document
// as the named download file.
func (h *Handler) Export(w http.ResponseWriter, _ *http.Request) {
	data, err := h.svc.Export()
	if err != nil {
		// Validation messages are user-facing and returned verbatim.
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	h.publish(sse.KindExported)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /portfolio/import. Accepts either multipart form
// data with a "file" field or a raw JSON body. On failure the prior
// document is untouched.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var data []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid multipart form"))
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
			return
		}
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
			return
		}
	} else {
		var err error
		data, err = io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
			return
		}
	}

	if err := h.svc.Import(data); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to parse portfolio file"))
		return
	}
	h.publish(sse.KindImported)
	writeJSON(w, http.StatusOK, h.svc.Document())
}

// CreateSocial handles POST /portfolio/socials.
func (h *Handler) CreateSocial(w http.ResponseWriter, r *http.Request) {
	var req models.Social
	if !decodeBody(w, r, &req) {
		return
	}
	h.svc.AddSocial(req)
	writeJSON(w, http.StatusCreated, h.svc.Document())
}

// UpdateSocial handles PUT /portfolio/socials/{index}. Socials have no ids
// and are addressed by position.
func (h *Handler) UpdateSocial(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid social index"))
		return
	}
	var req models.Social
	if !decodeBody(w, r, &req) {
		return
	}
	h.respondMutation(w, h.svc.UpdateSocial(index, req))
}

// DeleteSocial handles DELETE /portfolio/socials/{index}.
func (h *Handler) DeleteSocial(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid social index"))
		return
	}
	h.respondDeletion(w, h.svc.RemoveSocial(index))
}

// CreateJobProject handles POST /portfolio/jobs.
func (h *Handler) CreateJobProject(w http.ResponseWriter, r *http.Request) {
	var req models.JobProject
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.AddJobProject(req))
}

// UpdateJobProject handles PUT /portfolio/jobs/{id}.
func (h *Handler) UpdateJobProject(w http.ResponseWriter, r *http.Request) {
	var req models.JobProject
	if !decodeBody(w, r, &req) {
		return
	}
	h.respondMutation(w, h.svc.UpdateJobProject(chi.URLParam(r, "id"), req))
}

// DeleteJobProject handles DELETE /portfolio/jobs/{id}.
func (h *Handler) DeleteJobProject(w http.ResponseWriter, r *http.Request) {
	h.respondDeletion(w, h.svc.RemoveJobProject(chi.URLParam(r, "id")))
}

// CreateEducation handles POST /portfolio/education.
func (h *Handler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var req models.Education
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.AddEducation(req))
}

// UpdateEducation handles PUT /portfolio/education/{id}.
func (h *Handler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	var req models.Education
	if !decodeBody(w, r, &req) {
		return
	}
	h.respondMutation(w, h.svc.UpdateEducation(chi.URLParam(r, "id"), req))
}

// DeleteEducation handles DELETE /portfolio/education/{id}.
func (h *Handler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	h.respondDeletion(w, h.svc.RemoveEducation(chi.URLParam(r, "id")))
}

// CreateAchievement handles POST /portfolio/achievements.
func (h *Handler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req models.Achievement
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.AddAchievement(req))
}

// UpdateAchievement handles PUT /portfolio/achievements/{id}.
func (h *Handler) UpdateAchievement(w http.ResponseWriter, r *http.Request) {
	var req models.Achievement
	if !decodeBody(w, r, &req) {
		return
	}
	h.respondMutation(w, h.svc.UpdateAchievement(chi.URLParam(r, "id"), req))
}

// DeleteAchievement handles DELETE /portfolio/achievements/{id}.
func (h *Handler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	h.respondDeletion(w, h.svc.RemoveAchievement(chi.URLParam(r, "id")))
}

// Move handles POST /portfolio/{collection}/{id}/move.
func (h *Handler) Move(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := h.svc.Move(collection, chi.URLParam(r, "id"), req.Direction)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, h.svc.Document())
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		}
	}
}

// Search handles GET /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := filter.Criteria{Keyword: q.Get("q")}
	if from, err := parseQueryDate(q.Get("from")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid 'from' date"))
		return
	} else if from != nil {
		criteria.Start = from
	}
	if to, err := parseQueryDate(q.Get("to")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid 'to' date"))
		return
	} else if to != nil {
		criteria.End = to
	}
	if raw := q.Get("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				criteria.Skills = append(criteria.Skills, trimmed)
			}
		}
	}
	if raw := q.Get("links"); raw != "" {
		links, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid 'links' flag"))
			return
		}
		criteria.RequireLinks = links
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: h.svc.Search(criteria)})
}

// GetRecord handles GET /records/{id}: hydrates a search hit into the full
// record for detail display.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.svc.Resolve(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("resolve failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Skills handles GET /skills.
func (h *Handler) Skills(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SkillsResponse{Skills: h.svc.Skills()})
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// parseQueryDate accepts RFC 3339 or bare YYYY-MM-DD query values.
func parseQueryDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("unparsable date")
}

func (h *Handler) respondMutation(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.svc.Document())
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	default:
		slog.Error("mutation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (h *Handler) respondDeletion(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	default:
		slog.Error("deletion failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
