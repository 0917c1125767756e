package services

import (
	"context"

	"github.com/google/uuid"

	"portaldocs/internal/domain/models"
)

// VersionService owns the revision lifecycle of a document and the
// single-current invariant: for any document with at least one revision,
// exactly one revision is current at all times.
type VersionService interface {
	// CreateRevision adds a revision and atomically makes it current.
	// A first revision is always allowed; further revisions require the
	// classification's taxonomy rule to allow versioning.
	CreateRevision(ctx context.Context, documentID uuid.UUID, req *CreateRevisionRequest) (*models.Revision, error)

	// PromoteRevision atomically marks an existing revision as current,
	// e.g. to roll back to an earlier file.
	PromoteRevision(ctx context.Context, documentID, revisionID uuid.UUID, actor models.Actor) (*models.Revision, error)

	// ListRevisions lists revisions of a document, newest number first
	ListRevisions(ctx context.Context, documentID uuid.UUID) ([]models.Revision, error)
}

// CreateRevisionRequest represents a revision creation request. FilePath,
// FileSize and ContentHash come from the file-storage collaborator and are
// treated as opaque values.
type CreateRevisionRequest struct {
	Label        string `json:"label"`
	ApprovalDate string `json:"approval_date,omitempty"` // YYYY-MM-DD
	ChangeNote   string `json:"change_note,omitempty"`

	NormativeStatus   *string `json:"normative_status,omitempty"`
	ContractualStatus *string `json:"contractual_status,omitempty"`

	FilePath    string `json:"file_path"`
	FileSize    int64  `json:"file_size"`
	ContentHash string `json:"content_hash"`

	Actor models.Actor `json:"-"`
}
