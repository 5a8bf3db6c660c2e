package handlers

import (
	"net/http"
	"strings"

	"github.com/quillstack/notes-server/internal/api/problem"
	"github.com/quillstack/notes-server/internal/domain/audit"
)

type AuditHandler struct {
	recorder *audit.Recorder
	env      string
}

func NewAuditHandler(recorder *audit.Recorder, env string) *AuditHandler {
	return &AuditHandler{recorder: recorder, env: env}
}

type auditListResponse struct {
	Items []audit.Event `json:"items"`
}

// List returns the audit trail, newest first, optionally restricted to a
// single note via ?noteId=. An unknown noteId yields an empty list.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	noteID := strings.TrimSpace(r.URL.Query().Get("noteId"))

	events, err := h.recorder.List(r.Context(), noteID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, auditListResponse{Items: events})
}
