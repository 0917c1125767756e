package handler

import (
	"log/slog"
	"net/http"

	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
	"portaldocs/internal/domain/services"
	"portaldocs/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// CreateDocument creates a new document
// POST /api/documents
// Returns 201 if created, 400 with the full field error list on validation
// failure, 409 with resolution hints on a duplicate.
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Actor = httputil.GetActor(r)

	doc, err := h.docService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	doc, err := h.docService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ListDocuments lists documents, display priority first
// GET /api/documents?macro_category=&destination=&status=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	filter := &repositories.DocumentFilter{}
	q := r.URL.Query()

	if v := q.Get("macro_category"); v != "" {
		macro := models.MacroCategory(v)
		filter.MacroCategory = &macro
	}
	if v := q.Get("destination"); v != "" {
		dest := models.Destination(v)
		filter.Destination = &dest
	}
	if v := q.Get("status"); v != "" {
		status := models.DocumentStatus(v)
		filter.Status = &status
	}

	docs, err := h.docService.List(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// UpdateDocument applies a partial metadata update
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	var req services.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Actor = httputil.GetActor(r)

	doc, err := h.docService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// PublishDocument transitions a draft to published
// POST /api/documents/{id}/publish
func (h *DocumentHandler) PublishDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	doc, err := h.docService.Publish(r.Context(), id, httputil.GetActor(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ArchiveDocument transitions a published document to archived
// POST /api/documents/{id}/archive
func (h *DocumentHandler) ArchiveDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	doc, err := h.docService.Archive(r.Context(), id, httputil.GetActor(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a never-published document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	if err := h.docService.Delete(r.Context(), id, httputil.GetActor(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHistory lists the audit trail of a document
// GET /api/documents/{id}/history
func (h *DocumentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document ID format")
		return
	}

	entries, err := h.docService.History(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// HealthCheck reports service liveness
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
