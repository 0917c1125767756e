package services

import (
	"context"

	"github.com/google/uuid"

	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
)

// DocumentService owns the document lifecycle: creation, metadata updates,
// the Draft → Published → Archived state machine, the classification lock
// and the deletion guard.
type DocumentService interface {
	// Create creates a new document in Draft with no revisions. Runs the
	// duplicate guard before any persistence.
	Create(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// Get retrieves a document by ID
	Get(ctx context.Context, id uuid.UUID) (*models.Document, error)

	// List lists documents, display priority first
	List(ctx context.Context, filter *repositories.DocumentFilter) ([]models.Document, error)

	// Update applies a partial metadata update. Classification changes are
	// rejected with LockedFieldError while the document is published with a
	// current revision.
	Update(ctx context.Context, id uuid.UUID, req *UpdateDocumentRequest) (*models.Document, error)

	// Publish transitions Draft → Published. Privileged.
	Publish(ctx context.Context, id uuid.UUID, actor models.Actor) (*models.Document, error)

	// Archive transitions Published → Archived. Permitted for the document
	// owner or a privileged actor.
	Archive(ctx context.Context, id uuid.UUID, actor models.Actor) (*models.Document, error)

	// Delete removes a document that was never published. Documents with a
	// published transition anywhere in their history cannot be deleted.
	Delete(ctx context.Context, id uuid.UUID, actor models.Actor) error

	// History lists the append-only audit trail, newest first
	History(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error)

	// SuggestedPriority returns one more than the highest display priority
	// among active documents of the macro-category. Advisory only.
	SuggestedPriority(ctx context.Context, macro models.MacroCategory) (int, error)
}

// ValidityInput is the raw validity window as submitted. Values arrive as
// strings so a single validation pass can report every malformed field.
type ValidityInput struct {
	Mode   string `json:"mode"` // "none" | "months" | "period"
	Months string `json:"months,omitempty"`
	Start  string `json:"start,omitempty"` // YYYY-MM-DD
	End    string `json:"end,omitempty"`   // YYYY-MM-DD
}

// CreateDocumentRequest represents a document creation request. Numeric and
// date metadata arrive as raw strings and are parsed during validation.
type CreateDocumentRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"` // derived from title when empty

	MacroCategory string `json:"macro_category"`
	SubCategory   string `json:"sub_category"`

	SecondaryMacroCategory *string `json:"secondary_macro_category,omitempty"`
	SecondarySubCategory   *string `json:"secondary_sub_category,omitempty"`

	IssuingBody     *string `json:"issuing_body,omitempty"`
	DocumentNumber  *string `json:"document_number,omitempty"`
	ContractedParty *string `json:"contracted_party,omitempty"`
	GlobalValue     *string `json:"global_value,omitempty"`
	Description     *string `json:"description,omitempty"`
	ReferenceYear   *string `json:"reference_year,omitempty"`
	DocumentDate    *string `json:"document_date,omitempty"` // YYYY-MM-DD
	PeriodLabel     *string `json:"period_label,omitempty"`

	Validity     ValidityInput `json:"validity"`
	Destinations []string      `json:"destinations"`

	DisplayPriority *int `json:"display_priority,omitempty"` // suggested when absent

	Actor models.Actor `json:"-"` // set by handler from auth context
}

// UpdateDocumentRequest represents a partial document update. Nil fields are
// left unchanged; non-nil pointers to empty strings clear optional metadata.
type UpdateDocumentRequest struct {
	Title *string `json:"title,omitempty"`
	Slug  *string `json:"slug,omitempty"`

	MacroCategory *string `json:"macro_category,omitempty"`
	SubCategory   *string `json:"sub_category,omitempty"`

	SecondaryMacroCategory *string `json:"secondary_macro_category,omitempty"`
	SecondarySubCategory   *string `json:"secondary_sub_category,omitempty"`

	IssuingBody     *string `json:"issuing_body,omitempty"`
	DocumentNumber  *string `json:"document_number,omitempty"`
	ContractedParty *string `json:"contracted_party,omitempty"`
	GlobalValue     *string `json:"global_value,omitempty"`
	Description     *string `json:"description,omitempty"`
	ReferenceYear   *string `json:"reference_year,omitempty"`
	DocumentDate    *string `json:"document_date,omitempty"`
	PeriodLabel     *string `json:"period_label,omitempty"`

	Validity     *ValidityInput `json:"validity,omitempty"`
	Destinations *[]string      `json:"destinations,omitempty"`

	DisplayPriority *int `json:"display_priority,omitempty"`

	Actor models.Actor `json:"-"`
}
