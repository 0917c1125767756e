package models

import (
	"time"

	"github.com/google/uuid"
)

// MacroCategory is the closed top-level classification of a document.
type MacroCategory string

const (
	MacroInstitutional         MacroCategory = "INSTITUTIONAL"
	MacroGovernance            MacroCategory = "GOVERNANCE"
	MacroInternalNormative     MacroCategory = "INTERNAL_NORMATIVE"
	MacroContractsPartnerships MacroCategory = "CONTRACTS_PARTNERSHIPS"
	MacroAccountability        MacroCategory = "ACCOUNTABILITY"
	MacroOfficialActs          MacroCategory = "OFFICIAL_ACTS"
)

// MacroCategories lists every valid macro-category, in display order.
var MacroCategories = []MacroCategory{
	MacroInstitutional,
	MacroGovernance,
	MacroInternalNormative,
	MacroContractsPartnerships,
	MacroAccountability,
	MacroOfficialActs,
}

// Valid reports whether m is one of the closed macro-category values.
func (m MacroCategory) Valid() bool {
	for _, c := range MacroCategories {
		if m == c {
			return true
		}
	}
	return false
}

// Destination is a public section in which a document is listed.
type Destination string

const (
	DestinationTransparency Destination = "TRANSPARENCY"
	DestinationBiddings     Destination = "BIDDINGS"
)

// Valid reports whether d is a known destination.
func (d Destination) Valid() bool {
	return d == DestinationTransparency || d == DestinationBiddings
}

// DocumentStatus is the lifecycle status of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPublished DocumentStatus = "published"
	StatusArchived  DocumentStatus = "archived"
)

// ValidityMode selects how the validity window of a document is expressed.
// The three modes are mutually exclusive.
type ValidityMode string

const (
	ValidityNone   ValidityMode = "none"
	ValidityMonths ValidityMode = "months"
	ValidityPeriod ValidityMode = "period"
)

// Validity is the canonical stored form of a document's validity window.
// At most one of Months or Start/End is populated at any time.
type Validity struct {
	Mode   ValidityMode `json:"mode" db:"validity_mode"`
	Months *int         `json:"months,omitempty" db:"validity_months"`
	Start  *time.Time   `json:"start,omitempty" db:"validity_start"`
	End    *time.Time   `json:"end,omitempty" db:"validity_end"`
}

// Document is a published or publishable official document. Metadata fields
// are nullable; whether each one is relevant (and mandatory) for a given
// document is decided by the taxonomy rule of its classification.
type Document struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`
	Slug  string    `json:"slug" db:"slug"` // derived from title unless overridden

	MacroCategory MacroCategory `json:"macro_category" db:"macro_category"`
	SubCategory   string        `json:"sub_category" db:"sub_category"` // free text, taxonomy-suggested

	// Secondary classification, used only when the document must also appear
	// under a different public section. Nil means "use primary classification".
	SecondaryMacroCategory *MacroCategory `json:"secondary_macro_category,omitempty" db:"secondary_macro_category"`
	SecondarySubCategory   *string        `json:"secondary_sub_category,omitempty" db:"secondary_sub_category"`

	IssuingBody     *string    `json:"issuing_body,omitempty" db:"issuing_body"`
	DocumentNumber  *string    `json:"document_number,omitempty" db:"document_number"`
	ContractedParty *string    `json:"contracted_party,omitempty" db:"contracted_party"`
	GlobalValue     *float64   `json:"global_value,omitempty" db:"global_value"`
	Description     *string    `json:"description,omitempty" db:"description"`
	ReferenceYear   *int       `json:"reference_year,omitempty" db:"reference_year"`
	DocumentDate    *time.Time `json:"document_date,omitempty" db:"document_date"`
	PeriodLabel     *string    `json:"period_label,omitempty" db:"period_label"`

	Validity Validity `json:"validity"`

	Destinations []Destination  `json:"destinations" db:"destinations"`
	Status       DocumentStatus `json:"status" db:"status"`

	// DisplayPriority sorts public listings; lower sorts first.
	DisplayPriority int `json:"display_priority" db:"display_priority"`

	// CurrentRevisionID points at the single revision shown publicly.
	// Nil until a first revision exists.
	CurrentRevisionID *uuid.UUID `json:"current_revision_id,omitempty" db:"current_revision_id"`

	CreatedBy string    `json:"created_by" db:"created_by"`
	UpdatedBy string    `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasCurrentRevision reports whether the document has a current revision.
func (d *Document) HasCurrentRevision() bool {
	return d.CurrentRevisionID != nil
}
