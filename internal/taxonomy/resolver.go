package taxonomy

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"portaldocs/internal/domain/models"
)

//go:embed rules/*.yaml
var ruleFiles embed.FS

// ruleSpec is the YAML shape of a single rule.
type ruleSpec struct {
	Visible         []Field         `yaml:"visible"`
	Required        []Field         `yaml:"required"`
	Versioning      bool            `yaml:"versioning"`
	StatusDimension StatusDimension `yaml:"status_dimension"`
}

// macroSpec is the YAML shape of a macro-category entry.
type macroSpec struct {
	Default       ruleSpec            `yaml:"default"`
	Subcategories map[string]ruleSpec `yaml:"subcategories"`
	Suggestions   []string            `yaml:"suggestions"`
}

// tableSpec is the YAML shape of the whole rule table.
type tableSpec struct {
	Base   ruleSpec             `yaml:"base"`
	Macros map[string]macroSpec `yaml:"macros"`
}

// macroRules holds the compiled rules of one macro-category.
type macroRules struct {
	defaultRule   Rule
	subcategories map[string]Rule // keyed by normalized sub-category
	suggestions   []string
}

// Resolver resolves taxonomy rules for (macroCategory, subCategory) pairs.
// The rule table is data loaded once from an embedded YAML file; changing a
// rule never requires changes to the components consuming it.
//
// Resolution is total: an unknown sub-category falls back to the macro
// default, and an unknown macro-category falls back to the base rule, so
// free-text sub-categories always resolve to a defined rule.
type Resolver struct {
	base   Rule
	macros map[models.MacroCategory]macroRules
}

// NewResolver loads and validates the embedded rule table.
func NewResolver() (*Resolver, error) {
	data, err := ruleFiles.ReadFile("rules/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}

	var spec tableSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal rule table: %w", err)
	}

	base, err := compileRule("base", spec.Base)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		base:   base,
		macros: make(map[models.MacroCategory]macroRules, len(spec.Macros)),
	}

	for name, m := range spec.Macros {
		macro := models.MacroCategory(name)
		if !macro.Valid() {
			return nil, fmt.Errorf("rule table references unknown macro-category %q", name)
		}

		def, err := compileRule(name, m.Default)
		if err != nil {
			return nil, err
		}

		subs := make(map[string]Rule, len(m.Subcategories))
		for sub, rs := range m.Subcategories {
			rule, err := compileRule(name+"/"+sub, rs)
			if err != nil {
				return nil, err
			}
			subs[NormalizeSubCategory(sub)] = rule
		}

		r.macros[macro] = macroRules{
			defaultRule:   def,
			subcategories: subs,
			suggestions:   m.Suggestions,
		}
	}

	return r, nil
}

// compileRule converts a YAML rule spec into a Rule, enforcing the table
// invariants: only known fields, required ⊆ visible, known status dimension.
func compileRule(name string, spec ruleSpec) (Rule, error) {
	for _, f := range append(append([]Field{}, spec.Visible...), spec.Required...) {
		if !knownFields[f] {
			return Rule{}, fmt.Errorf("rule %s references unknown field %q", name, f)
		}
	}

	visible := NewFieldSet(spec.Visible...)
	required := NewFieldSet(spec.Required...)
	if !required.SubsetOf(visible) {
		return Rule{}, fmt.Errorf("rule %s: required fields must be a subset of visible fields", name)
	}

	dim := spec.StatusDimension
	if dim == "" {
		dim = DimensionNone
	}
	switch dim {
	case DimensionNone, DimensionNormative, DimensionContractual:
	default:
		return Rule{}, fmt.Errorf("rule %s: unknown status dimension %q", name, dim)
	}

	return Rule{
		VisibleFields:     visible,
		RequiredFields:    required,
		VersioningAllowed: spec.Versioning,
		StatusDimension:   dim,
	}, nil
}

// NormalizeSubCategory folds a free-text sub-category for rule lookup and
// identity comparison.
func NormalizeSubCategory(sub string) string {
	return strings.ToLower(strings.TrimSpace(sub))
}

// Resolve returns the rule for the given classification. Pure; never fails.
func (r *Resolver) Resolve(macro models.MacroCategory, sub string) Rule {
	m, ok := r.macros[macro]
	if !ok {
		return r.base
	}
	if rule, ok := m.subcategories[NormalizeSubCategory(sub)]; ok {
		return rule
	}
	return m.defaultRule
}

// Suggestions returns the advisory sub-category list for a macro-category.
// The list never constrains what a caller may submit.
func (r *Resolver) Suggestions(macro models.MacroCategory) []string {
	m, ok := r.macros[macro]
	if !ok {
		return nil
	}
	out := make([]string, len(m.suggestions))
	copy(out, m.suggestions)
	return out
}
