package models

import (
	"time"

	"github.com/google/uuid"
)

// NormativeStatus applies to revisions of normative documents.
type NormativeStatus string

const (
	NormativeCurrent    NormativeStatus = "current"
	NormativeSuperseded NormativeStatus = "superseded"
)

// Valid reports whether s is a known normative status.
func (s NormativeStatus) Valid() bool {
	return s == NormativeCurrent || s == NormativeSuperseded
}

// ContractualStatus applies to revisions of contractual documents.
type ContractualStatus string

const (
	ContractualCurrent    ContractualStatus = "current"
	ContractualTerminated ContractualStatus = "terminated"
)

// Valid reports whether s is a known contractual status.
func (s ContractualStatus) Valid() bool {
	return s == ContractualCurrent || s == ContractualTerminated
}

// Revision is one file revision of a document. Revision numbers are assigned
// at creation, strictly increasing per document, and never reused. Exactly
// one revision per document has IsCurrent set once any revision exists.
type Revision struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DocumentID uuid.UUID `json:"document_id" db:"document_id"`
	Number     int       `json:"number" db:"number"`

	Label        string     `json:"label" db:"label"`
	ApprovalDate *time.Time `json:"approval_date,omitempty" db:"approval_date"`
	ChangeNote   string     `json:"change_note" db:"change_note"`

	// At most one of the two status dimensions is set, per the taxonomy rule
	// of the owning document's classification.
	NormativeStatus   *NormativeStatus   `json:"normative_status,omitempty" db:"normative_status"`
	ContractualStatus *ContractualStatus `json:"contractual_status,omitempty" db:"contractual_status"`

	// File reference supplied by the file-storage collaborator. The engine
	// treats these as opaque identifiers for change detection.
	FilePath    string `json:"file_path" db:"file_path"`
	FileSize    int64  `json:"file_size" db:"file_size"`
	ContentHash string `json:"content_hash" db:"content_hash"`

	IsCurrent bool      `json:"is_current" db:"is_current"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
