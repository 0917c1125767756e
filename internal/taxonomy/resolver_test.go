package taxonomy

import (
	"testing"

	"portaldocs/internal/domain/models"
)

func TestNewResolverLoadsEmbeddedTable(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if r == nil {
		t.Fatal("NewResolver() returned nil resolver")
	}
}

func TestResolveIsTotal(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	tests := []struct {
		name  string
		macro models.MacroCategory
		sub   string
	}{
		{"known macro, known sub", models.MacroInstitutional, "Estatuto Social"},
		{"known macro, free-text sub", models.MacroGovernance, "Algo Completamente Novo"},
		{"known macro, empty sub", models.MacroAccountability, ""},
		{"unknown macro falls back to base", models.MacroCategory("BOGUS"), "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := r.Resolve(tt.macro, tt.sub)
			if rule.VisibleFields == nil || rule.RequiredFields == nil {
				t.Errorf("Resolve(%s, %q) returned an uncompiled rule", tt.macro, tt.sub)
			}
			if !rule.RequiredFields.SubsetOf(rule.VisibleFields) {
				t.Errorf("Resolve(%s, %q): required fields not a subset of visible fields", tt.macro, tt.sub)
			}
		})
	}
}

func TestResolveRequiredSubsetOfVisibleForAllMacros(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	for _, macro := range models.MacroCategories {
		rule := r.Resolve(macro, "")
		if !rule.RequiredFields.SubsetOf(rule.VisibleFields) {
			t.Errorf("macro %s: required fields not a subset of visible fields", macro)
		}
	}
}

func TestResolveSubCategoryOverride(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	// Macro default forbids versioning, the override allows it
	def := r.Resolve(models.MacroOfficialActs, "Aviso")
	if def.VersioningAllowed {
		t.Error("OFFICIAL_ACTS default should not allow versioning")
	}

	edital := r.Resolve(models.MacroOfficialActs, "Edital de Licitação")
	if !edital.VersioningAllowed {
		t.Error("Edital de Licitação override should allow versioning")
	}

	// Lookup is case-insensitive
	lower := r.Resolve(models.MacroOfficialActs, "  edital de licitação  ")
	if !lower.VersioningAllowed {
		t.Error("sub-category lookup should be case-insensitive and trimmed")
	}
}

func TestResolveStatusDimensions(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	tests := []struct {
		macro models.MacroCategory
		want  StatusDimension
	}{
		{models.MacroInternalNormative, DimensionNormative},
		{models.MacroContractsPartnerships, DimensionContractual},
		{models.MacroInstitutional, DimensionNone},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.macro, "").StatusDimension; got != tt.want {
			t.Errorf("Resolve(%s).StatusDimension = %s, want %s", tt.macro, got, tt.want)
		}
	}
}

func TestRequiredFieldsPerClassification(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	contracts := r.Resolve(models.MacroContractsPartnerships, "Contrato")
	if !contracts.RequiredFields.Contains(FieldContractedParty) {
		t.Error("contracts should require contracted_party")
	}
	if !contracts.RequiredFields.Contains(FieldGlobalValue) {
		t.Error("contracts should require global_value")
	}

	accountability := r.Resolve(models.MacroAccountability, "")
	if !accountability.RequiredFields.Contains(FieldReferenceYear) {
		t.Error("accountability should require reference_year")
	}
	if accountability.VersioningAllowed {
		t.Error("accountability should not allow versioning")
	}
}

func TestSuggestions(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	subs := r.Suggestions(models.MacroInstitutional)
	if len(subs) == 0 {
		t.Fatal("INSTITUTIONAL should have sub-category suggestions")
	}

	if got := r.Suggestions(models.MacroCategory("BOGUS")); got != nil {
		t.Errorf("Suggestions for unknown macro = %v, want nil", got)
	}
}

func TestFieldSetList(t *testing.T) {
	s := NewFieldSet(FieldPeriodLabel, FieldDescription, FieldIssuingBody)
	got := s.List()
	want := []Field{FieldDescription, FieldIssuingBody, FieldPeriodLabel}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
