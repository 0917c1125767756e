package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"portaldocs/internal/domain"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
	"portaldocs/internal/taxonomy"
)

// fakeTxManager runs the function directly; the in-memory repositories are
// already atomic per call.
type fakeTxManager struct{}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type memDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*models.Document
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: make(map[uuid.UUID]*models.Document)}
}

func (r *memDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = uuid.New()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (r *memDocumentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *memDocumentRepo) Update(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return domain.ErrNotFound
	}
	doc.UpdatedAt = time.Now()
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memDocumentRepo) List(ctx context.Context, filter *repositories.DocumentFilter) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, doc := range r.docs {
		if filter.MacroCategory != nil && doc.MacroCategory != *filter.MacroCategory {
			continue
		}
		if filter.Status != nil && doc.Status != *filter.Status {
			continue
		}
		if filter.Destination != nil {
			found := false
			for _, d := range doc.Destinations {
				if d == *filter.Destination {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayPriority < out[j].DisplayPriority })
	return out, nil
}

func (r *memDocumentRepo) FindByIdentity(ctx context.Context, identity *repositories.DocumentIdentity) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.docs {
		if doc.MacroCategory != identity.MacroCategory {
			continue
		}
		if taxonomy.NormalizeSubCategory(doc.SubCategory) != taxonomy.NormalizeSubCategory(identity.SubCategory) {
			continue
		}
		if identity.DocumentNumber != "" {
			if doc.DocumentNumber != nil && *doc.DocumentNumber == identity.DocumentNumber {
				cp := *doc
				return &cp, nil
			}
			continue
		}
		if taxonomy.NormalizeSubCategory(doc.Title) == taxonomy.NormalizeSubCategory(identity.Title) {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memDocumentRepo) SetCurrentRevision(ctx context.Context, documentID, revisionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	id := revisionID
	doc.CurrentRevisionID = &id
	return nil
}

func (r *memDocumentRepo) MaxDisplayPriority(ctx context.Context, macro models.MacroCategory) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, doc := range r.docs {
		if doc.MacroCategory == macro && doc.Status != models.StatusArchived && doc.DisplayPriority > max {
			max = doc.DisplayPriority
		}
	}
	return max, nil
}

type memRevisionRepo struct {
	mu   sync.Mutex
	revs map[uuid.UUID]*models.Revision
}

func newMemRevisionRepo() *memRevisionRepo {
	return &memRevisionRepo{revs: make(map[uuid.UUID]*models.Revision)}
}

func (r *memRevisionRepo) Create(ctx context.Context, rev *models.Revision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev.ID = uuid.New()
	rev.CreatedAt = time.Now()
	cp := *rev
	r.revs[rev.ID] = &cp
	return nil
}

func (r *memRevisionRepo) GetByID(ctx context.Context, documentID, revisionID uuid.UUID) (*models.Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.revs[revisionID]
	if !ok || rev.DocumentID != documentID {
		return nil, domain.ErrNotFound
	}
	cp := *rev
	return &cp, nil
}

func (r *memRevisionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]models.Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Revision
	for _, rev := range r.revs {
		if rev.DocumentID == documentID {
			out = append(out, *rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (r *memRevisionRepo) CountByDocument(ctx context.Context, documentID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, rev := range r.revs {
		if rev.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

func (r *memRevisionRepo) MaxNumber(ctx context.Context, documentID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, rev := range r.revs {
		if rev.DocumentID == documentID && rev.Number > max {
			max = rev.Number
		}
	}
	return max, nil
}

func (r *memRevisionRepo) ClearCurrent(ctx context.Context, documentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.revs {
		if rev.DocumentID == documentID {
			rev.IsCurrent = false
		}
	}
	return nil
}

func (r *memRevisionRepo) MarkCurrent(ctx context.Context, documentID, revisionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.revs[revisionID]
	if !ok || rev.DocumentID != documentID {
		return domain.ErrNotFound
	}
	rev.IsCurrent = true
	return nil
}

// currentCount reports how many revisions of the document carry the current
// flag; the single-current invariant demands exactly one once any exist.
func (r *memRevisionRepo) currentCount(documentID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, rev := range r.revs {
		if rev.DocumentID == documentID && rev.IsCurrent {
			count++
		}
	}
	return count
}

type memHistoryRepo struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{}
}

func (r *memHistoryRepo) Append(ctx context.Context, entry *models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memHistoryRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]models.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.HistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].DocumentID == documentID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *memHistoryRepo) HasAction(ctx context.Context, documentID uuid.UUID, action models.HistoryAction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.DocumentID == documentID && e.Action == action {
			return true, nil
		}
	}
	return false, nil
}
