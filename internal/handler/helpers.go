package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"portaldocs/internal/domain"
	"portaldocs/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Structured errors
// carry machine-readable detail in the problem payload so the portal UI can
// render per-field messages and duplicate-resolution prompts.
func handleError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		duplicateErr  *domain.DuplicateDocumentError
		lockedErr     *domain.LockedFieldError
	)

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, "validation failed", map[string]any{
			"errors": validationErr.Fields,
		})
	case errors.As(err, &duplicateErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, duplicateErr.Error(), map[string]any{
			"code":                 "DUPLICATE_DOCUMENT",
			"existing_document_id": duplicateErr.ExistingDocumentID,
			"can_version":          duplicateErr.CanVersion,
		})
	case errors.As(err, &lockedErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, lockedErr.Error(), map[string]any{
			"code":          "CLASSIFICATION_LOCKED",
			"locked_fields": lockedErr.Fields,
		})
	case errors.Is(err, domain.ErrVersioningNotAllowed):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, err.Error(), map[string]any{
			"code": "VERSIONING_NOT_ALLOWED",
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	return id, err == nil
}
