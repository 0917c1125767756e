package handler

import (
	"log/slog"
	"net/http"

	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/services"
	"portaldocs/internal/httputil"
	"portaldocs/internal/taxonomy"
)

// TaxonomyHandler serves the resolved taxonomy rules the portal UI renders
// forms from. Resolution is total, so these endpoints never 404 on a
// sub-category.
type TaxonomyHandler struct {
	rules      *taxonomy.Resolver
	docService services.DocumentService
	logger     *slog.Logger
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(rules *taxonomy.Resolver, docService services.DocumentService, logger *slog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		rules:      rules,
		docService: docService,
		logger:     logger,
	}
}

// ruleResponse is the wire form of a resolved rule.
type ruleResponse struct {
	VisibleFields     []taxonomy.Field         `json:"visible_fields"`
	RequiredFields    []taxonomy.Field         `json:"required_fields"`
	VersioningAllowed bool                     `json:"versioning_allowed"`
	StatusDimension   taxonomy.StatusDimension `json:"status_dimension"`
}

// GetRule resolves the rule for a classification
// GET /api/taxonomy/rule?macro_category=&sub_category=
func (h *TaxonomyHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	macro := models.MacroCategory(r.URL.Query().Get("macro_category"))
	if !macro.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "unknown macro-category")
		return
	}

	rule := h.rules.Resolve(macro, r.URL.Query().Get("sub_category"))
	httputil.RespondJSON(w, http.StatusOK, ruleResponse{
		VisibleFields:     rule.VisibleFields.List(),
		RequiredFields:    rule.RequiredFields.List(),
		VersioningAllowed: rule.VersioningAllowed,
		StatusDimension:   rule.StatusDimension,
	})
}

// ListMacroCategories lists the closed macro-category set
// GET /api/taxonomy/macro-categories
func (h *TaxonomyHandler) ListMacroCategories(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, models.MacroCategories)
}

// ListSubCategories lists the suggested sub-categories of a macro-category.
// Suggestions are advisory; any free-text sub-category is accepted on
// documents.
// GET /api/taxonomy/macro-categories/{macro}/subcategories
func (h *TaxonomyHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	macro := models.MacroCategory(r.PathValue("macro"))
	if !macro.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "unknown macro-category")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, h.rules.Suggestions(macro))
}

// SuggestedPriority returns the next display priority for a macro-category
// GET /api/taxonomy/macro-categories/{macro}/suggested-priority
func (h *TaxonomyHandler) SuggestedPriority(w http.ResponseWriter, r *http.Request) {
	macro := models.MacroCategory(r.PathValue("macro"))

	priority, err := h.docService.SuggestedPriority(r.Context(), macro)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"suggested_priority": priority})
}
