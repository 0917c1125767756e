package taxonomy

import "sort"

// Field names a descriptive metadata field of a document. The names match
// the field identifiers used in validation error payloads.
type Field string

const (
	FieldIssuingBody     Field = "issuing_body"
	FieldDocumentNumber  Field = "document_number"
	FieldContractedParty Field = "contracted_party"
	FieldGlobalValue     Field = "global_value"
	FieldDescription     Field = "description"
	FieldReferenceYear   Field = "reference_year"
	FieldDocumentDate    Field = "document_date"
	FieldPeriodLabel     Field = "period_label"
)

// knownFields is the closed set of metadata fields a rule may reference.
var knownFields = map[Field]bool{
	FieldIssuingBody:     true,
	FieldDocumentNumber:  true,
	FieldContractedParty: true,
	FieldGlobalValue:     true,
	FieldDescription:     true,
	FieldReferenceYear:   true,
	FieldDocumentDate:    true,
	FieldPeriodLabel:     true,
}

// FieldSet is an unordered set of metadata fields.
type FieldSet map[Field]bool

// NewFieldSet builds a set from a list of fields.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = true
	}
	return s
}

// Contains reports whether the set contains f.
func (s FieldSet) Contains(f Field) bool { return s[f] }

// SubsetOf reports whether every field of s is also in other.
func (s FieldSet) SubsetOf(other FieldSet) bool {
	for f := range s {
		if !other[f] {
			return false
		}
	}
	return true
}

// List returns the fields in sorted order, for stable payloads and logs.
func (s FieldSet) List() []Field {
	out := make([]Field, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StatusDimension selects which conditional revision-status field a
// classification requires. A classification requires a normative status, a
// contractual status, or neither, never both.
type StatusDimension string

const (
	DimensionNone        StatusDimension = "none"
	DimensionNormative   StatusDimension = "normative"
	DimensionContractual StatusDimension = "contractual"
)

// Rule is the resolved taxonomy rule for one (macro, sub-category) pair.
// RequiredFields is always a subset of VisibleFields: a field that is not
// visible cannot be mandatory.
type Rule struct {
	VisibleFields     FieldSet
	RequiredFields    FieldSet
	VersioningAllowed bool
	StatusDimension   StatusDimension
}
