package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"portaldocs/internal/auth"
	"portaldocs/internal/domain"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
	"portaldocs/internal/domain/services"
	"portaldocs/internal/taxonomy"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxTitleLength = 500

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   repositories.DocumentRepository
	histRepo  repositories.HistoryRepository
	txManager repositories.TransactionManager
	rules     *taxonomy.Resolver
	vigencia  *VigenciaResolver
	dupGuard  *DuplicateGuard
	authz     auth.Authorizer
	logger    *slog.Logger
}

// NewDocumentService creates a new document lifecycle service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	histRepo repositories.HistoryRepository,
	txManager repositories.TransactionManager,
	rules *taxonomy.Resolver,
	vigencia *VigenciaResolver,
	dupGuard *DuplicateGuard,
	authz auth.Authorizer,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		histRepo:  histRepo,
		txManager: txManager,
		rules:     rules,
		vigencia:  vigencia,
		dupGuard:  dupGuard,
		authz:     authz,
		logger:    logger,
	}
}

// Create creates a new document in Draft. Validation is exhaustive: shape
// problems, malformed values, rule-mandated fields and validity problems are
// all reported together in one pass.
func (s *documentService) Create(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	verr := &domain.ValidationError{}

	if err := validateCreateShape(req); err != nil {
		mergeShapeErrors(verr, err)
	}

	macro := models.MacroCategory(req.MacroCategory)
	if req.MacroCategory != "" && !macro.Valid() {
		verr.Add("macro_category", "unknown macro-category")
	}

	doc := &models.Document{
		Title:         strings.TrimSpace(req.Title),
		MacroCategory: macro,
		SubCategory:   strings.TrimSpace(req.SubCategory),
	}

	s.applySecondaryClassification(doc, req.SecondaryMacroCategory, req.SecondarySubCategory, verr)
	doc.Destinations = parseDestinations(req.Destinations, verr)

	vig, vigErr := s.vigencia.Normalize(req.Validity)
	verr.Merge(vigErr)
	doc.Validity = vig

	rule := s.rules.Resolve(macro, doc.SubCategory)
	s.applyMetadata(doc, metadataFromCreate(req), rule, verr)

	if err := verr.Err(); err != nil {
		return nil, err
	}

	check, err := s.dupGuard.Check(ctx, macro, doc.SubCategory, derefStr(doc.DocumentNumber), doc.Title, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if check.IsDuplicate {
		return nil, &domain.DuplicateDocumentError{
			ExistingDocumentID: check.ExistingDocumentID.String(),
			CanVersion:         check.CanVersion,
		}
	}

	doc.Slug = strings.TrimSpace(req.Slug)
	if doc.Slug == "" {
		doc.Slug = DeriveSlug(doc.Title)
	}

	if req.DisplayPriority != nil {
		doc.DisplayPriority = *req.DisplayPriority
	} else {
		max, err := s.docRepo.MaxDisplayPriority(ctx, macro)
		if err != nil {
			return nil, fmt.Errorf("resolve display priority: %w", err)
		}
		doc.DisplayPriority = max + 1
	}

	doc.Status = models.StatusDraft
	doc.CreatedBy = req.Actor.ID
	doc.UpdatedBy = req.Actor.ID

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}
		return s.histRepo.Append(txCtx, &models.HistoryEntry{
			DocumentID: doc.ID,
			Action:     models.ActionCreated,
			Actor:      req.Actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"macro_category", doc.MacroCategory,
		"sub_category", doc.SubCategory,
	)
	return doc, nil
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// List lists documents matching the filter, display priority first
func (s *documentService) List(ctx context.Context, filter *repositories.DocumentFilter) ([]models.Document, error) {
	if filter == nil {
		filter = &repositories.DocumentFilter{}
	}
	if filter.MacroCategory != nil && !filter.MacroCategory.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("macro_category", "unknown macro-category")
		return nil, verr
	}
	return s.docRepo.List(ctx, filter)
}

// Update applies a partial metadata update inside a transaction so the
// classification-lock check and the write are atomic.
func (s *documentService) Update(ctx context.Context, id uuid.UUID, req *services.UpdateDocumentRequest) (*models.Document, error) {
	var updated *models.Document

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if doc.Status == models.StatusArchived {
			return &domain.ConflictError{Message: "archived documents cannot be edited"}
		}

		if locked := lockedClassificationFields(doc, req); len(locked) > 0 {
			return &domain.LockedFieldError{Fields: locked}
		}

		verr := &domain.ValidationError{}
		changes := map[string]any{}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			switch {
			case title == "":
				verr.Add("title", "cannot be blank")
			case len(title) > maxTitleLength:
				verr.Add("title", fmt.Sprintf("the length must be no more than %d", maxTitleLength))
			case title != doc.Title:
				doc.Title = title
				changes["title"] = title
			}
		}
		if req.Slug != nil {
			slug := strings.TrimSpace(*req.Slug)
			if slug == "" {
				slug = DeriveSlug(doc.Title)
			}
			if slug != doc.Slug {
				doc.Slug = slug
				changes["slug"] = slug
			}
		}
		if req.MacroCategory != nil {
			macro := models.MacroCategory(*req.MacroCategory)
			if !macro.Valid() {
				verr.Add("macro_category", "unknown macro-category")
			} else if macro != doc.MacroCategory {
				doc.MacroCategory = macro
				changes["macro_category"] = macro
			}
		}
		if req.SubCategory != nil {
			sub := strings.TrimSpace(*req.SubCategory)
			if sub == "" {
				verr.Add("sub_category", "cannot be blank")
			} else if sub != doc.SubCategory {
				doc.SubCategory = sub
				changes["sub_category"] = sub
			}
		}

		if req.SecondaryMacroCategory != nil || req.SecondarySubCategory != nil {
			prevMacro, prevSub := doc.SecondaryMacroCategory, doc.SecondarySubCategory
			s.applySecondaryClassification(doc, req.SecondaryMacroCategory, req.SecondarySubCategory, verr)
			if !ptrEqual(prevMacro, doc.SecondaryMacroCategory) || !ptrEqual(prevSub, doc.SecondarySubCategory) {
				changes["secondary_classification"] = doc.SecondaryMacroCategory
			}
		}

		if req.Destinations != nil {
			if len(*req.Destinations) == 0 {
				verr.Add("destinations", "cannot be blank")
			} else if dests := parseDestinations(*req.Destinations, verr); len(dests) > 0 && !destinationsEqual(doc.Destinations, dests) {
				doc.Destinations = dests
				changes["destinations"] = dests
			}
		}

		if req.Validity != nil {
			vig, vigErr := s.vigencia.Normalize(*req.Validity)
			verr.Merge(vigErr)
			if (vigErr == nil || !vigErr.HasErrors()) && !validityEqual(doc.Validity, vig) {
				doc.Validity = vig
				changes["validity"] = vig.Mode
			}
		}

		if req.DisplayPriority != nil && *req.DisplayPriority != doc.DisplayPriority {
			doc.DisplayPriority = *req.DisplayPriority
			changes["display_priority"] = *req.DisplayPriority
		}

		rule := s.rules.Resolve(doc.MacroCategory, doc.SubCategory)
		before := snapshotMetadata(doc)
		s.applyMetadata(doc, metadataFromUpdate(req), rule, verr)
		recordMetadataChanges(before, doc, changes)

		if err := verr.Err(); err != nil {
			return err
		}

		check, err := s.dupGuard.Check(txCtx, doc.MacroCategory, doc.SubCategory, derefStr(doc.DocumentNumber), doc.Title, doc.ID)
		if err != nil {
			return fmt.Errorf("duplicate check: %w", err)
		}
		if check.IsDuplicate {
			return &domain.DuplicateDocumentError{
				ExistingDocumentID: check.ExistingDocumentID.String(),
				CanVersion:         check.CanVersion,
			}
		}

		if len(changes) == 0 {
			updated = doc
			return nil
		}

		doc.UpdatedBy = req.Actor.ID
		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.histRepo.Append(txCtx, &models.HistoryEntry{
			DocumentID: doc.ID,
			Action:     models.ActionUpdated,
			Actor:      req.Actor.ID,
			Changes:    changes,
		}); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Publish transitions Draft → Published. Requires the publisher role.
func (s *documentService) Publish(ctx context.Context, id uuid.UUID, actor models.Actor) (*models.Document, error) {
	if !s.authz.HasRole(actor, auth.RolePublisher) {
		return nil, &domain.AuthorizationError{Actor: actor.ID, Role: string(auth.RolePublisher)}
	}

	var published *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if doc.Status != models.StatusDraft {
			return &domain.ConflictError{Message: fmt.Sprintf("only draft documents can be published, status is %s", doc.Status)}
		}

		doc.Status = models.StatusPublished
		doc.UpdatedBy = actor.ID
		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.histRepo.Append(txCtx, &models.HistoryEntry{
			DocumentID: doc.ID,
			Action:     models.ActionPublished,
			Actor:      actor.ID,
		}); err != nil {
			return err
		}
		published = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document published", "document_id", id, "actor", actor.ID)
	return published, nil
}

// Archive transitions Published → Archived. The document owner may archive
// without a privileged role.
func (s *documentService) Archive(ctx context.Context, id uuid.UUID, actor models.Actor) (*models.Document, error) {
	var archived *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if doc.CreatedBy != actor.ID && !s.authz.HasRole(actor, auth.RolePublisher) {
			return &domain.AuthorizationError{Actor: actor.ID, Role: string(auth.RolePublisher)}
		}
		if doc.Status != models.StatusPublished {
			return &domain.ConflictError{Message: fmt.Sprintf("only published documents can be archived, status is %s", doc.Status)}
		}

		doc.Status = models.StatusArchived
		doc.UpdatedBy = actor.ID
		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.histRepo.Append(txCtx, &models.HistoryEntry{
			DocumentID: doc.ID,
			Action:     models.ActionArchived,
			Actor:      actor.ID,
		}); err != nil {
			return err
		}
		archived = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document archived", "document_id", id, "actor", actor.ID)
	return archived, nil
}

// Delete removes a document that has never been published. The guard reads
// the append-only history, so re-archiving or status edits cannot bypass it.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID, actor models.Actor) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if doc.CreatedBy != actor.ID && !s.authz.HasRole(actor, auth.RoleAdmin) {
			return &domain.AuthorizationError{Actor: actor.ID, Role: string(auth.RoleAdmin)}
		}

		everPublished, err := s.histRepo.HasAction(txCtx, id, models.ActionPublished)
		if err != nil {
			return fmt.Errorf("check publication history: %w", err)
		}
		if everPublished {
			return &domain.ConflictError{Message: "documents that have been published cannot be deleted, archive instead"}
		}

		return s.docRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted", "document_id", id, "actor", actor.ID)
	return nil
}

// History lists the audit trail of a document, newest first
func (s *documentService) History(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error) {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.histRepo.ListByDocument(ctx, id)
}

// SuggestedPriority returns one more than the highest display priority among
// non-archived documents of the macro-category.
func (s *documentService) SuggestedPriority(ctx context.Context, macro models.MacroCategory) (int, error) {
	if !macro.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("macro_category", "unknown macro-category")
		return 0, verr
	}
	max, err := s.docRepo.MaxDisplayPriority(ctx, macro)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// validateCreateShape checks the request shape. Domain rules (taxonomy,
// validity, duplicates) are validated separately so everything is reported
// in one response.
func validateCreateShape(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&req.MacroCategory, validation.Required),
		validation.Field(&req.SubCategory, validation.Required),
		validation.Field(&req.Destinations, validation.Required),
	)
}

// mergeShapeErrors folds ozzo's per-field errors into the accumulated
// validation error, in stable field order.
func mergeShapeErrors(verr *domain.ValidationError, err error) {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		verr.Add("request", err.Error())
		return
	}
	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		verr.Add(f, fieldErrs[f].Error())
	}
}

// lockedClassificationFields returns the classification fields an update
// tries to change while the document is published with a current revision.
func lockedClassificationFields(doc *models.Document, req *services.UpdateDocumentRequest) []string {
	if doc.Status != models.StatusPublished || !doc.HasCurrentRevision() {
		return nil
	}
	var locked []string
	if req.MacroCategory != nil && models.MacroCategory(*req.MacroCategory) != doc.MacroCategory {
		locked = append(locked, "macro_category")
	}
	if req.SubCategory != nil && !strings.EqualFold(strings.TrimSpace(*req.SubCategory), doc.SubCategory) {
		locked = append(locked, "sub_category")
	}
	return locked
}

// applySecondaryClassification sets or clears the optional secondary
// classification. The pair travels together: a macro without a sub-category
// (or the reverse) is rejected.
func (s *documentService) applySecondaryClassification(doc *models.Document, macroRaw, subRaw *string, verr *domain.ValidationError) {
	macro := derefStr(macroRaw)
	sub := strings.TrimSpace(derefStr(subRaw))

	if macro == "" && sub == "" {
		doc.SecondaryMacroCategory = nil
		doc.SecondarySubCategory = nil
		return
	}
	if macro == "" {
		verr.Add("secondary_macro_category", "required when a secondary sub-category is set")
		return
	}
	if sub == "" {
		verr.Add("secondary_sub_category", "required when a secondary macro-category is set")
		return
	}

	m := models.MacroCategory(macro)
	if !m.Valid() {
		verr.Add("secondary_macro_category", "unknown macro-category")
		return
	}
	doc.SecondaryMacroCategory = &m
	doc.SecondarySubCategory = &sub
}

// parseDestinations validates and converts the raw destination list.
func parseDestinations(raw []string, verr *domain.ValidationError) []models.Destination {
	dests := make([]models.Destination, 0, len(raw))
	for _, d := range raw {
		dest := models.Destination(d)
		if !dest.Valid() {
			verr.Add("destinations", fmt.Sprintf("unknown destination %q", d))
			continue
		}
		dests = append(dests, dest)
	}
	return dests
}

// metadataInput carries the raw descriptive metadata of a request. Nil means
// the field was not provided; a pointer to an empty string clears it.
type metadataInput struct {
	IssuingBody     *string
	DocumentNumber  *string
	ContractedParty *string
	GlobalValue     *string
	Description     *string
	ReferenceYear   *string
	DocumentDate    *string
	PeriodLabel     *string
}

func metadataFromCreate(req *services.CreateDocumentRequest) metadataInput {
	return metadataInput{
		IssuingBody:     req.IssuingBody,
		DocumentNumber:  req.DocumentNumber,
		ContractedParty: req.ContractedParty,
		GlobalValue:     req.GlobalValue,
		Description:     req.Description,
		ReferenceYear:   req.ReferenceYear,
		DocumentDate:    req.DocumentDate,
		PeriodLabel:     req.PeriodLabel,
	}
}

func metadataFromUpdate(req *services.UpdateDocumentRequest) metadataInput {
	return metadataInput{
		IssuingBody:     req.IssuingBody,
		DocumentNumber:  req.DocumentNumber,
		ContractedParty: req.ContractedParty,
		GlobalValue:     req.GlobalValue,
		Description:     req.Description,
		ReferenceYear:   req.ReferenceYear,
		DocumentDate:    req.DocumentDate,
		PeriodLabel:     req.PeriodLabel,
	}
}

// metadataSnapshot captures the stored metadata before an update so the
// history entry records only fields whose value actually changed.
type metadataSnapshot struct {
	issuingBody     *string
	documentNumber  *string
	contractedParty *string
	description     *string
	periodLabel     *string
	globalValue     *float64
	referenceYear   *int
	documentDate    *time.Time
}

func snapshotMetadata(doc *models.Document) metadataSnapshot {
	return metadataSnapshot{
		issuingBody:     doc.IssuingBody,
		documentNumber:  doc.DocumentNumber,
		contractedParty: doc.ContractedParty,
		description:     doc.Description,
		periodLabel:     doc.PeriodLabel,
		globalValue:     doc.GlobalValue,
		referenceYear:   doc.ReferenceYear,
		documentDate:    doc.DocumentDate,
	}
}

func recordMetadataChanges(before metadataSnapshot, doc *models.Document, changes map[string]any) {
	if !ptrEqual(before.issuingBody, doc.IssuingBody) {
		changes[string(taxonomy.FieldIssuingBody)] = doc.IssuingBody
	}
	if !ptrEqual(before.documentNumber, doc.DocumentNumber) {
		changes[string(taxonomy.FieldDocumentNumber)] = doc.DocumentNumber
	}
	if !ptrEqual(before.contractedParty, doc.ContractedParty) {
		changes[string(taxonomy.FieldContractedParty)] = doc.ContractedParty
	}
	if !ptrEqual(before.description, doc.Description) {
		changes[string(taxonomy.FieldDescription)] = doc.Description
	}
	if !ptrEqual(before.periodLabel, doc.PeriodLabel) {
		changes[string(taxonomy.FieldPeriodLabel)] = doc.PeriodLabel
	}
	if !ptrEqual(before.globalValue, doc.GlobalValue) {
		changes[string(taxonomy.FieldGlobalValue)] = doc.GlobalValue
	}
	if !ptrEqual(before.referenceYear, doc.ReferenceYear) {
		changes[string(taxonomy.FieldReferenceYear)] = doc.ReferenceYear
	}
	if !timePtrEqual(before.documentDate, doc.DocumentDate) {
		changes[string(taxonomy.FieldDocumentDate)] = doc.DocumentDate
	}
}

// applyMetadata parses provided metadata onto the document, drops fields the
// rule does not show, and enumerates every missing mandatory field. Fields
// already flagged as malformed are not double-reported as missing.
func (s *documentService) applyMetadata(doc *models.Document, in metadataInput, rule taxonomy.Rule, verr *domain.ValidationError) {
	flagged := map[taxonomy.Field]bool{}

	if in.IssuingBody != nil {
		doc.IssuingBody = strOrNil(*in.IssuingBody)
	}
	if in.DocumentNumber != nil {
		doc.DocumentNumber = strOrNil(*in.DocumentNumber)
	}
	if in.ContractedParty != nil {
		doc.ContractedParty = strOrNil(*in.ContractedParty)
	}
	if in.Description != nil {
		doc.Description = strOrNil(*in.Description)
	}
	if in.PeriodLabel != nil {
		doc.PeriodLabel = strOrNil(*in.PeriodLabel)
	}
	if in.GlobalValue != nil {
		doc.GlobalValue = nil
		if raw := strings.TrimSpace(*in.GlobalValue); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				verr.Add(string(taxonomy.FieldGlobalValue), "must be a non-negative number")
				flagged[taxonomy.FieldGlobalValue] = true
			} else {
				doc.GlobalValue = &v
			}
		}
	}
	if in.ReferenceYear != nil {
		doc.ReferenceYear = nil
		if raw := strings.TrimSpace(*in.ReferenceYear); raw != "" {
			y, err := strconv.Atoi(raw)
			if err != nil || y < 1900 || y > 2200 {
				verr.Add(string(taxonomy.FieldReferenceYear), "must be a four-digit year")
				flagged[taxonomy.FieldReferenceYear] = true
			} else {
				doc.ReferenceYear = &y
			}
		}
	}
	if in.DocumentDate != nil {
		doc.DocumentDate = nil
		if raw := strings.TrimSpace(*in.DocumentDate); raw != "" {
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				verr.Add(string(taxonomy.FieldDocumentDate), "must be in YYYY-MM-DD format")
				flagged[taxonomy.FieldDocumentDate] = true
			} else {
				doc.DocumentDate = &t
			}
		}
	}

	clearHiddenFields(doc, rule.VisibleFields)

	for _, f := range rule.RequiredFields.List() {
		if flagged[f] {
			continue
		}
		if !fieldPresent(doc, f) {
			verr.Add(string(f), "required for this classification")
		}
	}
}

// clearHiddenFields blanks metadata the resolved rule does not show, so a
// reclassified document never carries stale fields into storage.
func clearHiddenFields(doc *models.Document, visible taxonomy.FieldSet) {
	if !visible.Contains(taxonomy.FieldIssuingBody) {
		doc.IssuingBody = nil
	}
	if !visible.Contains(taxonomy.FieldDocumentNumber) {
		doc.DocumentNumber = nil
	}
	if !visible.Contains(taxonomy.FieldContractedParty) {
		doc.ContractedParty = nil
	}
	if !visible.Contains(taxonomy.FieldGlobalValue) {
		doc.GlobalValue = nil
	}
	if !visible.Contains(taxonomy.FieldDescription) {
		doc.Description = nil
	}
	if !visible.Contains(taxonomy.FieldReferenceYear) {
		doc.ReferenceYear = nil
	}
	if !visible.Contains(taxonomy.FieldDocumentDate) {
		doc.DocumentDate = nil
	}
	if !visible.Contains(taxonomy.FieldPeriodLabel) {
		doc.PeriodLabel = nil
	}
}

func fieldPresent(doc *models.Document, f taxonomy.Field) bool {
	switch f {
	case taxonomy.FieldIssuingBody:
		return doc.IssuingBody != nil
	case taxonomy.FieldDocumentNumber:
		return doc.DocumentNumber != nil
	case taxonomy.FieldContractedParty:
		return doc.ContractedParty != nil
	case taxonomy.FieldGlobalValue:
		return doc.GlobalValue != nil
	case taxonomy.FieldDescription:
		return doc.Description != nil
	case taxonomy.FieldReferenceYear:
		return doc.ReferenceYear != nil
	case taxonomy.FieldDocumentDate:
		return doc.DocumentDate != nil
	case taxonomy.FieldPeriodLabel:
		return doc.PeriodLabel != nil
	}
	return true
}

func strOrNil(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func destinationsEqual(a, b []models.Destination) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func validityEqual(a, b models.Validity) bool {
	return a.Mode == b.Mode &&
		ptrEqual(a.Months, b.Months) &&
		timePtrEqual(a.Start, b.Start) &&
		timePtrEqual(a.End, b.End)
}
