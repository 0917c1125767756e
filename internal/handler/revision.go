package handler

import (
	"log/slog"
	"net/http"

	"portaldocs/internal/domain/services"
	"portaldocs/internal/httputil"
)

// RevisionHandler handles revision HTTP requests
type RevisionHandler struct {
	versionService services.VersionService
	logger         *slog.Logger
}

// NewRevisionHandler creates a new revision handler
func NewRevisionHandler(versionService services.VersionService, logger *slog.Logger) *RevisionHandler {
	return &RevisionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

// CreateRevision adds a revision to a document and makes it current
// POST /api/documents/{id}/revisions
func (h *RevisionHandler) CreateRevision(w http.ResponseWriter, r *http.Request) {
	documentID, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	var req services.CreateRevisionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Actor = httputil.GetActor(r)

	rev, err := h.versionService.CreateRevision(r.Context(), documentID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, rev)
}

// ListRevisions lists revisions of a document, newest number first
// GET /api/documents/{id}/revisions
func (h *RevisionHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	documentID, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	revs, err := h.versionService.ListRevisions(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, revs)
}

// PromoteRevision makes an existing revision the current one
// POST /api/documents/{id}/revisions/{revisionID}/promote
func (h *RevisionHandler) PromoteRevision(w http.ResponseWriter, r *http.Request) {
	documentID, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}
	revisionID, ok := pathUUID(r, "revisionID")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid revision ID format")
		return
	}

	rev, err := h.versionService.PromoteRevision(r.Context(), documentID, revisionID, httputil.GetActor(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rev)
}
