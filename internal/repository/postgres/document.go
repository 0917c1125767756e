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
	"portaldocs/internal/taxonomy"
)

// documentColumns is the column list shared by every document SELECT.
const documentColumns = `id, title, slug, macro_category, sub_category,
	secondary_macro_category, secondary_sub_category,
	issuing_body, document_number, contracted_party, global_value,
	description, reference_year, document_date, period_label,
	validity_mode, validity_months, validity_start, validity_end,
	destinations, status, display_priority, current_revision_id,
	created_by, updated_by, created_at, updated_at`

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, slug, macro_category, sub_category,
			secondary_macro_category, secondary_sub_category,
			issuing_body, document_number, contracted_party, global_value,
			description, reference_year, document_date, period_label,
			validity_mode, validity_months, validity_start, validity_end,
			destinations, status, display_priority,
			created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Title,
		doc.Slug,
		doc.MacroCategory,
		doc.SubCategory,
		doc.SecondaryMacroCategory,
		doc.SecondarySubCategory,
		doc.IssuingBody,
		doc.DocumentNumber,
		doc.ContractedParty,
		doc.GlobalValue,
		doc.Description,
		doc.ReferenceYear,
		doc.DocumentDate,
		doc.PeriodLabel,
		doc.Validity.Mode,
		doc.Validity.Months,
		doc.Validity.Start,
		doc.Validity.End,
		destinationsToStrings(doc.Destinations),
		doc.Status,
		doc.DisplayPriority,
		doc.CreatedBy,
		doc.UpdatedBy,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message: fmt.Sprintf("a document with slug %q already exists", doc.Slug),
			}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// GetByIDForUpdate retrieves a document with a row lock. Only meaningful
// inside a transaction; concurrent promotions and lock checks serialize on
// this row.
func (r *PostgresDocumentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document for update: %w", err)
	}

	return doc, nil
}

// Update updates an existing document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, macro_category = $3, sub_category = $4,
			secondary_macro_category = $5, secondary_sub_category = $6,
			issuing_body = $7, document_number = $8, contracted_party = $9,
			global_value = $10, description = $11, reference_year = $12,
			document_date = $13, period_label = $14,
			validity_mode = $15, validity_months = $16, validity_start = $17,
			validity_end = $18, destinations = $19, status = $20,
			display_priority = $21, updated_by = $22, updated_at = NOW()
		WHERE id = $23
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Title,
		doc.Slug,
		doc.MacroCategory,
		doc.SubCategory,
		doc.SecondaryMacroCategory,
		doc.SecondarySubCategory,
		doc.IssuingBody,
		doc.DocumentNumber,
		doc.ContractedParty,
		doc.GlobalValue,
		doc.Description,
		doc.ReferenceYear,
		doc.DocumentDate,
		doc.PeriodLabel,
		doc.Validity.Mode,
		doc.Validity.Months,
		doc.Validity.Start,
		doc.Validity.End,
		destinationsToStrings(doc.Destinations),
		doc.Status,
		doc.DisplayPriority,
		doc.UpdatedBy,
		doc.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message: fmt.Sprintf("a document with slug %q already exists", doc.Slug),
			}
		}
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a document; revisions and history cascade.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List lists documents matching the filter, display priority first.
func (r *PostgresDocumentRepository) List(ctx context.Context, filter *repositories.DocumentFilter) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, documentColumns, r.tables.Documents)

	var args []interface{}
	paramIndex := 1

	if filter != nil {
		if filter.MacroCategory != nil {
			query += fmt.Sprintf(` AND (macro_category = $%d OR secondary_macro_category = $%d)`, paramIndex, paramIndex)
			args = append(args, *filter.MacroCategory)
			paramIndex++
		}
		if filter.Destination != nil {
			query += fmt.Sprintf(` AND $%d = ANY(destinations)`, paramIndex)
			args = append(args, string(*filter.Destination))
			paramIndex++
		}
		if filter.Status != nil {
			query += fmt.Sprintf(` AND status = $%d`, paramIndex)
			args = append(args, *filter.Status)
			paramIndex++
		}
	}

	query += ` ORDER BY display_priority ASC, created_at DESC`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// FindByIdentity finds a document with an equivalent natural key. The key is
// classification plus document number when one was submitted, classification
// plus case-folded title otherwise.
func (r *PostgresDocumentRepository) FindByIdentity(ctx context.Context, identity *repositories.DocumentIdentity) (*models.Document, error) {
	var query string
	var args []interface{}

	if identity.DocumentNumber != "" {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE macro_category = $1 AND lower(trim(sub_category)) = $2 AND document_number = $3
			LIMIT 1
		`, documentColumns, r.tables.Documents)
		args = []interface{}{identity.MacroCategory, taxonomy.NormalizeSubCategory(identity.SubCategory), identity.DocumentNumber}
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE macro_category = $1 AND lower(trim(sub_category)) = $2 AND lower(trim(title)) = $3
			LIMIT 1
		`, documentColumns, r.tables.Documents)
		args = []interface{}{identity.MacroCategory, taxonomy.NormalizeSubCategory(identity.SubCategory), taxonomy.NormalizeSubCategory(identity.Title)}
	}

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, args...))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("equivalent document: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find document by identity: %w", err)
	}

	return doc, nil
}

// SetCurrentRevision updates the denormalized current-revision pointer.
func (r *PostgresDocumentRepository) SetCurrentRevision(ctx context.Context, documentID, revisionID uuid.UUID) error {
	query := fmt.Sprintf(`
		UPDATE %s SET current_revision_id = $1, updated_at = NOW() WHERE id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, revisionID, documentID)
	if err != nil {
		return fmt.Errorf("set current revision: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	return nil
}

// MaxDisplayPriority returns the highest display priority among non-archived
// documents of the macro-category, or 0 when none exist.
func (r *PostgresDocumentRepository) MaxDisplayPriority(ctx context.Context, macro models.MacroCategory) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(display_priority), 0)
		FROM %s
		WHERE macro_category = $1 AND status != $2
	`, r.tables.Documents)

	var max int
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, macro, models.StatusArchived).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max display priority: %w", err)
	}

	return max, nil
}

// scanDocument scans one document row from a pgx.Row or pgx.Rows.
func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	var destinations []string

	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Slug,
		&doc.MacroCategory,
		&doc.SubCategory,
		&doc.SecondaryMacroCategory,
		&doc.SecondarySubCategory,
		&doc.IssuingBody,
		&doc.DocumentNumber,
		&doc.ContractedParty,
		&doc.GlobalValue,
		&doc.Description,
		&doc.ReferenceYear,
		&doc.DocumentDate,
		&doc.PeriodLabel,
		&doc.Validity.Mode,
		&doc.Validity.Months,
		&doc.Validity.Start,
		&doc.Validity.End,
		&destinations,
		&doc.Status,
		&doc.DisplayPriority,
		&doc.CurrentRevisionID,
		&doc.CreatedBy,
		&doc.UpdatedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Destinations = make([]models.Destination, len(destinations))
	for i, d := range destinations {
		doc.Destinations[i] = models.Destination(d)
	}

	return &doc, nil
}

// destinationsToStrings converts the destination set for the text[] column.
func destinationsToStrings(dests []models.Destination) []string {
	out := make([]string, len(dests))
	for i, d := range dests {
		out[i] = string(d)
	}
	return out
}
