package repositories

import (
	"context"

	"github.com/google/uuid"

	"portaldocs/internal/domain/models"
)

// RevisionRepository defines data access operations for document revisions
type RevisionRepository interface {
	// Create inserts a new revision
	Create(ctx context.Context, rev *models.Revision) error

	// GetByID retrieves a revision scoped to its document. Returns
	// ErrNotFound when the revision does not exist or belongs to a
	// different document.
	GetByID(ctx context.Context, documentID, revisionID uuid.UUID) (*models.Revision, error)

	// ListByDocument lists revisions of a document, newest number first.
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]models.Revision, error)

	// CountByDocument returns the number of revisions of a document.
	CountByDocument(ctx context.Context, documentID uuid.UUID) (int, error)

	// MaxNumber returns the highest revision number assigned so far,
	// or 0 when the document has no revisions.
	MaxNumber(ctx context.Context, documentID uuid.UUID) (int, error)

	// ClearCurrent clears the is_current flag on the document's current
	// revision, if any.
	ClearCurrent(ctx context.Context, documentID uuid.UUID) error

	// MarkCurrent sets the is_current flag on the given revision.
	MarkCurrent(ctx context.Context, documentID, revisionID uuid.UUID) error
}
