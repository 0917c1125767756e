package service

import (
	"context"
	"fmt"
	"log/slog"
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

// versionService implements the VersionService interface
type versionService struct {
	docRepo   repositories.DocumentRepository
	revRepo   repositories.RevisionRepository
	histRepo  repositories.HistoryRepository
	txManager repositories.TransactionManager
	rules     *taxonomy.Resolver
	authz     auth.Authorizer
	logger    *slog.Logger
}

// NewVersionService creates a new revision lifecycle service
func NewVersionService(
	docRepo repositories.DocumentRepository,
	revRepo repositories.RevisionRepository,
	histRepo repositories.HistoryRepository,
	txManager repositories.TransactionManager,
	rules *taxonomy.Resolver,
	authz auth.Authorizer,
	logger *slog.Logger,
) services.VersionService {
	return &versionService{
		docRepo:   docRepo,
		revRepo:   revRepo,
		histRepo:  histRepo,
		txManager: txManager,
		rules:     rules,
		authz:     authz,
		logger:    logger,
	}
}

// CreateRevision adds a revision and atomically makes it current. The whole
// operation runs inside one transaction with the document row locked, so two
// concurrent additions serialize and each gets a distinct number.
func (s *versionService) CreateRevision(ctx context.Context, documentID uuid.UUID, req *services.CreateRevisionRequest) (*models.Revision, error) {
	verr := &domain.ValidationError{}
	if err := validateRevisionShape(req); err != nil {
		mergeShapeErrors(verr, err)
	}

	var approvalDate *time.Time
	if raw := strings.TrimSpace(req.ApprovalDate); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			verr.Add("approval_date", "must be in YYYY-MM-DD format")
		} else {
			approvalDate = &t
		}
	}

	var created *models.Revision
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(txCtx, documentID)
		if err != nil {
			return err
		}
		if doc.Status == models.StatusArchived {
			return &domain.ConflictError{Message: "archived documents cannot receive revisions"}
		}

		rule := s.rules.Resolve(doc.MacroCategory, doc.SubCategory)

		count, err := s.revRepo.CountByDocument(txCtx, documentID)
		if err != nil {
			return fmt.Errorf("count revisions: %w", err)
		}
		// The first revision is the document's file; only further revisions
		// constitute versioning.
		if count > 0 && !rule.VersioningAllowed {
			return &domain.VersioningNotAllowedError{DocumentID: documentID.String()}
		}

		validateStatusDimension(req, rule.StatusDimension, verr)
		if err := verr.Err(); err != nil {
			return err
		}

		maxNumber, err := s.revRepo.MaxNumber(txCtx, documentID)
		if err != nil {
			return fmt.Errorf("resolve revision number: %w", err)
		}

		rev := &models.Revision{
			DocumentID:   documentID,
			Number:       maxNumber + 1,
			Label:        strings.TrimSpace(req.Label),
			ApprovalDate: approvalDate,
			ChangeNote:   strings.TrimSpace(req.ChangeNote),
			FilePath:     req.FilePath,
			FileSize:     req.FileSize,
			ContentHash:  req.ContentHash,
			IsCurrent:    true,
		}
		if req.NormativeStatus != nil && *req.NormativeStatus != "" {
			ns := models.NormativeStatus(*req.NormativeStatus)
			rev.NormativeStatus = &ns
		}
		if req.ContractualStatus != nil && *req.ContractualStatus != "" {
			cs := models.ContractualStatus(*req.ContractualStatus)
			rev.ContractualStatus = &cs
		}

		if err := s.revRepo.ClearCurrent(txCtx, documentID); err != nil {
			return err
		}
		if err := s.revRepo.Create(txCtx, rev); err != nil {
			return err
		}
		if err := s.docRepo.SetCurrentRevision(txCtx, documentID, rev.ID); err != nil {
			return err
		}
		if err := s.histRepo.Append(txCtx, &models.HistoryEntry{
			DocumentID: documentID,
			Action:     models.ActionRevisionAdded,
			Actor:      req.Actor.ID,
			Changes: map[string]any{
				"revision_id":     rev.ID,
				"revision_number": rev.Number,
				"label":           rev.Label,
			},
		}); err != nil {
			return err
		}
		created = rev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("revision added",
		"document_id", documentID,
		"revision_id", created.ID,
		"number", created.Number,
	)
	return created, nil
}

// PromoteRevision atomically makes an existing revision current. Requires
// the publisher role. Promoting the revision that is already current is a
// no-op.
func (s *versionService) PromoteRevision(ctx context.Context, documentID, revisionID uuid.UUID, actor models.Actor) (*models.Revision, error) {
	if !s.authz.HasRole(actor, auth.RolePublisher) {
		return nil, &domain.AuthorizationError{Actor: actor.ID, Role: string(auth.RolePublisher)}
	}

	var promoted *models.Revision
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.docRepo.GetByIDForUpdate(txCtx, documentID); err != nil {
			return err
		}

		rev, err := s.revRepo.GetByID(txCtx, documentID, revisionID)
		if err != nil {
			return err
		}
		if rev.IsCurrent {
			promoted = rev
			return nil
		}

		if err := s.revRepo.ClearCurrent(txCtx, documentID); err != nil {
			return err
		}
		if err := s.revRepo.MarkCurrent(txCtx, documentID, revisionID); err != nil {
			return err
		}
		if err := s.docRepo.SetCurrentRevision(txCtx, documentID, revisionID); err != nil {
			return err
		}
		if err := s.histRepo.Append(txCtx, &models.HistoryEntry{
			DocumentID: documentID,
			Action:     models.ActionRevisionPromoted,
			Actor:      actor.ID,
			Changes: map[string]any{
				"revision_id":     rev.ID,
				"revision_number": rev.Number,
			},
		}); err != nil {
			return err
		}
		rev.IsCurrent = true
		promoted = rev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("revision promoted",
		"document_id", documentID,
		"revision_id", revisionID,
		"actor", actor.ID,
	)
	return promoted, nil
}

// ListRevisions lists revisions of a document, newest number first
func (s *versionService) ListRevisions(ctx context.Context, documentID uuid.UUID) ([]models.Revision, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.revRepo.ListByDocument(ctx, documentID)
}

func validateRevisionShape(req *services.CreateRevisionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Label, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.FilePath, validation.Required),
		validation.Field(&req.FileSize, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.ContentHash, validation.Required),
	)
}

// validateStatusDimension enforces the conditional revision status: the
// dimension the rule selects is mandatory, the other is forbidden.
func validateStatusDimension(req *services.CreateRevisionRequest, dim taxonomy.StatusDimension, verr *domain.ValidationError) {
	normative := req.NormativeStatus != nil && *req.NormativeStatus != ""
	contractual := req.ContractualStatus != nil && *req.ContractualStatus != ""

	switch dim {
	case taxonomy.DimensionNormative:
		if !normative {
			verr.Add("normative_status", "required for this classification")
		} else if !models.NormativeStatus(*req.NormativeStatus).Valid() {
			verr.Add("normative_status", "must be one of: current, superseded")
		}
		if contractual {
			verr.Add("contractual_status", "not applicable to this classification")
		}
	case taxonomy.DimensionContractual:
		if !contractual {
			verr.Add("contractual_status", "required for this classification")
		} else if !models.ContractualStatus(*req.ContractualStatus).Valid() {
			verr.Add("contractual_status", "must be one of: current, terminated")
		}
		if normative {
			verr.Add("normative_status", "not applicable to this classification")
		}
	default:
		if normative {
			verr.Add("normative_status", "not applicable to this classification")
		}
		if contractual {
			verr.Add("contractual_status", "not applicable to this classification")
		}
	}
}
