package repositories

import (
	"context"

	"github.com/google/uuid"

	"portaldocs/internal/domain/models"
)

// DocumentFilter narrows List results. Nil fields are ignored.
type DocumentFilter struct {
	MacroCategory *models.MacroCategory
	Destination   *models.Destination
	Status        *models.DocumentStatus
}

// DocumentIdentity is the natural-key equivalence used by the duplicate
// guard: classification plus document number when present, classification
// plus title otherwise. Sub-category and title are matched case-insensitively.
type DocumentIdentity struct {
	MacroCategory  models.MacroCategory
	SubCategory    string
	DocumentNumber string // empty means match on title instead
	Title          string
}

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create creates a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)

	// GetByIDForUpdate retrieves a document with a row lock. Only meaningful
	// inside a transaction; used to serialize promotions and lock checks.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Document, error)

	// Update updates an existing document
	Update(ctx context.Context, doc *models.Document) error

	// Delete hard-deletes a document; revisions and history cascade.
	// Callers must enforce the never-published guard first.
	Delete(ctx context.Context, id uuid.UUID) error

	// List lists documents matching the filter, display priority first.
	List(ctx context.Context, filter *DocumentFilter) ([]models.Document, error)

	// FindByIdentity finds a document with an equivalent natural key.
	// Returns ErrNotFound when no equivalent document exists.
	FindByIdentity(ctx context.Context, identity *DocumentIdentity) (*models.Document, error)

	// SetCurrentRevision updates the denormalized current-revision pointer.
	SetCurrentRevision(ctx context.Context, documentID, revisionID uuid.UUID) error

	// MaxDisplayPriority returns the highest display priority among
	// non-archived documents of the macro-category, or 0 when none exist.
	MaxDisplayPriority(ctx context.Context, macro models.MacroCategory) (int, error)
}
