package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"portaldocs/internal/domain"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
	"portaldocs/internal/taxonomy"
)

// DuplicateCheck is the outcome of a duplicate probe. When IsDuplicate is
// set, CanVersion tells the caller whether the existing document's
// classification allows resolving the collision with a new revision.
type DuplicateCheck struct {
	IsDuplicate        bool
	ExistingDocumentID uuid.UUID
	CanVersion         bool
}

// DuplicateGuard detects equivalent documents before creation. Two documents
// are equivalent when they share a classification and a document number, or
// share a classification and a title when neither has a number. Sub-category
// and title comparisons are case-insensitive.
type DuplicateGuard struct {
	docRepo repositories.DocumentRepository
	rules   *taxonomy.Resolver
}

func NewDuplicateGuard(docRepo repositories.DocumentRepository, rules *taxonomy.Resolver) *DuplicateGuard {
	return &DuplicateGuard{docRepo: docRepo, rules: rules}
}

// Check probes for an equivalent document. excludeID skips the document being
// edited so that an update never collides with itself; pass uuid.Nil on
// creation.
func (g *DuplicateGuard) Check(ctx context.Context, macro models.MacroCategory, subCategory, documentNumber, title string, excludeID uuid.UUID) (*DuplicateCheck, error) {
	identity := &repositories.DocumentIdentity{
		MacroCategory:  macro,
		SubCategory:    taxonomy.NormalizeSubCategory(subCategory),
		DocumentNumber: documentNumber,
		Title:          title,
	}

	existing, err := g.docRepo.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &DuplicateCheck{}, nil
		}
		return nil, err
	}
	if existing.ID == excludeID {
		return &DuplicateCheck{}, nil
	}

	rule := g.rules.Resolve(existing.MacroCategory, existing.SubCategory)
	return &DuplicateCheck{
		IsDuplicate:        true,
		ExistingDocumentID: existing.ID,
		CanVersion:         rule.VersioningAllowed,
	}, nil
}
