package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portaldocs/internal/domain"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
)

const revisionColumns = `id, document_id, number, label, approval_date, change_note,
	normative_status, contractual_status, file_path, file_size, content_hash,
	is_current, created_at`

// PostgresRevisionRepository implements the RevisionRepository interface
type PostgresRevisionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewRevisionRepository creates a new revision repository
func NewRevisionRepository(config *RepositoryConfig) repositories.RevisionRepository {
	return &PostgresRevisionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new revision
func (r *PostgresRevisionRepository) Create(ctx context.Context, rev *models.Revision) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, number, label, approval_date, change_note,
			normative_status, contractual_status, file_path, file_size,
			content_hash, is_current)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`, r.tables.Revisions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		rev.DocumentID,
		rev.Number,
		rev.Label,
		rev.ApprovalDate,
		rev.ChangeNote,
		rev.NormativeStatus,
		rev.ContractualStatus,
		rev.FilePath,
		rev.FileSize,
		rev.ContentHash,
		rev.IsCurrent,
	).Scan(&rev.ID, &rev.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			// Revision numbers are assigned under the document row lock, so a
			// collision here means a concurrent writer bypassed the lock.
			return &domain.ConflictError{
				Message: fmt.Sprintf("revision number %d already exists for document %s", rev.Number, rev.DocumentID),
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("document %s: %w", rev.DocumentID, domain.ErrNotFound)
		}
		return fmt.Errorf("create revision: %w", err)
	}

	return nil
}

// GetByID retrieves a revision scoped to its document
func (r *PostgresRevisionRepository) GetByID(ctx context.Context, documentID, revisionID uuid.UUID) (*models.Revision, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1 AND document_id = $2
	`, revisionColumns, r.tables.Revisions)

	executor := GetExecutor(ctx, r.pool)
	rev, err := scanRevision(executor.QueryRow(ctx, query, revisionID, documentID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("revision %s of document %s: %w", revisionID, documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get revision: %w", err)
	}

	return rev, nil
}

// ListByDocument lists revisions of a document, newest number first
func (r *PostgresRevisionRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]models.Revision, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE document_id = $1 ORDER BY number DESC
	`, revisionColumns, r.tables.Revisions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []models.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}

	// Return empty slice instead of nil
	if revisions == nil {
		revisions = []models.Revision{}
	}

	return revisions, nil
}

// CountByDocument returns the number of revisions of a document
func (r *PostgresRevisionRepository) CountByDocument(ctx context.Context, documentID uuid.UUID) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE document_id = $1`, r.tables.Revisions)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, documentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count revisions: %w", err)
	}

	return count, nil
}

// MaxNumber returns the highest revision number assigned so far, or 0 when
// the document has no revisions. Revision numbers are never reused, so this
// is computed over all revisions, not only surviving ones.
func (r *PostgresRevisionRepository) MaxNumber(ctx context.Context, documentID uuid.UUID) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(number), 0) FROM %s WHERE document_id = $1
	`, r.tables.Revisions)

	var max int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, documentID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max revision number: %w", err)
	}

	return max, nil
}

// ClearCurrent clears the is_current flag on the document's current revision
func (r *PostgresRevisionRepository) ClearCurrent(ctx context.Context, documentID uuid.UUID) error {
	query := fmt.Sprintf(`
		UPDATE %s SET is_current = FALSE WHERE document_id = $1 AND is_current
	`, r.tables.Revisions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("clear current revision: %w", err)
	}

	return nil
}

// MarkCurrent sets the is_current flag on the given revision
func (r *PostgresRevisionRepository) MarkCurrent(ctx context.Context, documentID, revisionID uuid.UUID) error {
	query := fmt.Sprintf(`
		UPDATE %s SET is_current = TRUE WHERE id = $1 AND document_id = $2
	`, r.tables.Revisions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, revisionID, documentID)
	if err != nil {
		return fmt.Errorf("mark current revision: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("revision %s of document %s: %w", revisionID, documentID, domain.ErrNotFound)
	}

	return nil
}

// scanRevision scans one revision row from a pgx.Row or pgx.Rows.
func scanRevision(row pgx.Row) (*models.Revision, error) {
	var rev models.Revision
	err := row.Scan(
		&rev.ID,
		&rev.DocumentID,
		&rev.Number,
		&rev.Label,
		&rev.ApprovalDate,
		&rev.ChangeNote,
		&rev.NormativeStatus,
		&rev.ContractualStatus,
		&rev.FilePath,
		&rev.FileSize,
		&rev.ContentHash,
		&rev.IsCurrent,
		&rev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}
