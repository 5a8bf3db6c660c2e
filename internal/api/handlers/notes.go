package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/quillstack/notes-server/internal/api/problem"
	"github.com/quillstack/notes-server/internal/domain/notes"
)

type NotesHandler struct {
	service  *notes.Service
	env      string
	validate *validator.Validate
}

func NewNotesHandler(service *notes.Service, env string) *NotesHandler {
	return &NotesHandler{
		service:  service,
		env:      env,
		validate: validator.New(),
	}
}

type createNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=500"`
	Content string   `json:"content" validate:"max=100000"`
	Tags    []string `json:"tags" validate:"max=100,dive,max=100"`
}

type publishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

type removeResponse struct {
	OK bool `json:"ok"`
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, page, err := notes.ParseListParams(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.env)
		return
	}

	result, err := h.service.List(r.Context(), filters, page)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", notes.FilterError{Field: "id", Message: "missing"}, h.env)
		return
	}

	note, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.env)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", notes.FilterError{Field: "title", Message: "must not be blank"}, h.env)
		return
	}

	note, err := h.service.Create(r.Context(), notes.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", notes.FilterError{Field: "id", Message: "missing"}, h.env)
		return
	}

	var patch notes.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.env)
		return
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", notes.FilterError{Field: "title", Message: "must not be blank"}, h.env)
		return
	}

	note, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", notes.FilterError{Field: "id", Message: "missing"}, h.env)
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, removeResponse{OK: true})
}

func (h *NotesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", notes.FilterError{Field: "id", Message: "missing"}, h.env)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.env)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, r, err)
		return
	}

	note, err := h.service.SetPublished(r.Context(), id, *req.Published)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, notes.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Note not found", err, h.env)
	case errors.Is(err, notes.ErrConflict):
		problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Conflict", err, h.env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.env)
	}
}

func (h *NotesHandler) writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		errs := make(map[string]any, len(fieldErrors))
		for _, fieldErr := range fieldErrors {
			errs[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
		}
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.env, problem.WithErrors(errs))
		return
	}
	problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.env)
}
