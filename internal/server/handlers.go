package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clearhire/talentview/internal/auth"
	"github.com/clearhire/talentview/internal/models"
	"github.com/clearhire/talentview/internal/ordering"
	"github.com/clearhire/talentview/internal/stats"
	"github.com/clearhire/talentview/internal/store"
	"github.com/clearhire/talentview/internal/validate"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, errs := validate.Login(req.Email, req.Password)
	if errs != nil {
		s.respondValidation(w, errs)
		return
	}

	user, token, err := s.auth.Login(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.logger.Error("login failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	filter, err := parseInterviewFilter(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	interviews, err := s.store.ListInterviews(r.Context(), filter)
	if err != nil {
		s.logger.Error("list interviews failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, interviews)
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var draft models.InterviewDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Type == "" {
		draft.Type = models.TypeAssessment
	}
	draft, errs := validate.Interview(draft)
	if errs != nil {
		s.respondValidation(w, errs)
		return
	}

	// New interviews always start pending and unscored, whatever else the
	// submitted body carried.
	iv := models.Interview{
		CandidateName: draft.CandidateName,
		Position:      draft.Position,
		Date:          draft.Date,
		Type:          draft.Type,
		Status:        models.StatusPending,
		Score:         nil,
		Notes:         draft.Notes,
		TemplateID:    draft.TemplateID,
	}
	created, err := s.store.CreateInterview(r.Context(), iv)
	if err != nil {
		s.logger.Error("create interview failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	iv, err := s.store.GetInterview(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "Interview not found")
		return
	}
	s.respondJSON(w, http.StatusOK, iv)
}

func (s *Server) handleUpdateInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.InterviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := s.checkInterviewPatch(r, id, patch); errs != nil {
		s.respondValidation(w, errs)
		return
	}

	iv, err := s.store.UpdateInterview(r.Context(), id, patch)
	if err != nil {
		s.respondStoreError(w, err, "Interview not found")
		return
	}
	s.respondJSON(w, http.StatusOK, iv)
}

// checkInterviewPatch validates the mutable fields of an interview update,
// including the cross-field rule the client-side validator leaves alone: a
// score may only accompany an interview that ends up completed.
func (s *Server) checkInterviewPatch(r *http.Request, id string, patch models.InterviewPatch) validate.Errors {
	errs := validate.Errors{}
	if patch.CandidateName != nil {
		validate.String(errs, "candidateName", *patch.CandidateName,
			validate.Trim(), validate.MinLen(2, "Name must be at least 2 characters"))
	}
	if patch.Position != nil {
		validate.String(errs, "position", *patch.Position,
			validate.Trim(), validate.NonEmpty("Please select a position"))
	}
	if patch.Type != nil {
		validate.Check(errs, "type", patch.Type.Valid(), "Unknown interview type")
	}
	if patch.Status != nil {
		validate.Check(errs, "status", patch.Status.Valid(), "Unknown interview status")
	}
	if patch.Score != nil {
		validate.Check(errs, "score", *patch.Score >= 0 && *patch.Score <= 100,
			"Score must be between 0 and 100")

		status := models.InterviewStatus("")
		if patch.Status != nil {
			status = *patch.Status
		} else if existing, err := s.store.GetInterview(r.Context(), id); err == nil {
			status = existing.Status
		}
		validate.Check(errs, "score", status == models.StatusCompleted,
			"Score can only be set on a completed interview")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteInterview(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "Interview not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.ListTemplates(r.Context())
	if err != nil {
		s.logger.Error("list templates failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var draft models.TemplateDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	draft, errs := validate.Template(draft)
	if errs != nil {
		s.respondValidation(w, errs)
		return
	}

	createdBy := "Current User"
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok && claims.Name != "" {
		createdBy = claims.Name
	}

	questions := ordering.Restamp(draft.Questions)
	tpl := models.Template{
		Name:          draft.Name,
		Description:   draft.Description,
		Category:      draft.Category,
		Questions:     questions,
		QuestionCount: len(questions),
		CreatedDate:   s.now(),
		CreatedBy:     createdBy,
	}
	created, err := s.store.CreateTemplate(r.Context(), tpl)
	if err != nil {
		s.logger.Error("create template failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tpl, err := s.store.GetTemplate(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "Template not found")
		return
	}
	s.respondJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.TemplatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := validate.Errors{}
	if patch.Name != nil {
		validate.String(errs, "name", *patch.Name,
			validate.Trim(), validate.MinLen(3, "Template name must be at least 3 characters"))
	}
	if patch.Category != nil {
		validate.Check(errs, "category", patch.Category.Valid(), "Unknown template category")
	}
	if patch.Questions != nil {
		// A replacement list must satisfy the order invariant before it is
		// stored: validate every question, then re-stamp 1..N.
		questions, qErrs := validate.Questions(*patch.Questions)
		if qErrs != nil {
			for field, msg := range qErrs {
				errs.Add(field, msg)
			}
		} else {
			restamped := ordering.Restamp(questions)
			patch.Questions = &restamped
		}
	}
	if len(errs) > 0 {
		s.respondValidation(w, errs)
		return
	}

	tpl, err := s.store.UpdateTemplate(r.Context(), id, patch)
	if err != nil {
		s.respondStoreError(w, err, "Template not found")
		return
	}
	s.respondJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteTemplate(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "Template not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := s.store.ListPositions(r.Context())
	if err != nil {
		s.logger.Error("list positions failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, positions)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	interviews, err := s.store.ListInterviews(r.Context(), store.InterviewFilter{})
	if err != nil {
		s.logger.Error("dashboard failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, stats.Build(interviews, s.now()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseInterviewFilter reads the list query parameters. Dates accept
// RFC 3339 or plain YYYY-MM-DD; bounds are inclusive.
func parseInterviewFilter(r *http.Request) (store.InterviewFilter, error) {
	q := r.URL.Query()
	filter := store.InterviewFilter{
		Search:   q.Get("search"),
		Position: q.Get("position"),
		Status:   models.InterviewStatus(q.Get("status")),
	}
	if raw := q.Get("dateFrom"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return store.InterviewFilter{}, errors.New("invalid dateFrom")
		}
		filter.DateFrom = &t
	}
	if raw := q.Get("dateTo"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return store.InterviewFilter{}, errors.New("invalid dateTo")
		}
		filter.DateTo = &t
	}
	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	s.logger.Error("store operation failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) respondValidation(w http.ResponseWriter, errs validate.Errors) {
	s.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": errs,
	})
}
