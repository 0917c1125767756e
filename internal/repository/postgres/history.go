package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/repositories"
)

// PostgresHistoryRepository implements the HistoryRepository interface.
// History rows are append-only while the document exists.
type PostgresHistoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(config *RepositoryConfig) repositories.HistoryRepository {
	return &PostgresHistoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Append records a history entry
func (r *PostgresHistoryRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, action, actor, changed_fields)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.History)

	changes := entry.Changes
	if changes == nil {
		changes = map[string]any{}
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.DocumentID,
		entry.Action,
		entry.Actor,
		changes,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}

	return nil
}

// ListByDocument lists history entries of a document, newest first
func (r *PostgresHistoryRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]models.HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, action, actor, changed_fields, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`, r.tables.History)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.DocumentID,
			&entry.Action,
			&entry.Actor,
			&entry.Changes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	return entries, nil
}

// HasAction reports whether the document's history contains the given action
func (r *PostgresHistoryRepository) HasAction(ctx context.Context, documentID uuid.UUID, action models.HistoryAction) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE document_id = $1 AND action = $2)
	`, r.tables.History)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, documentID, action).Scan(&exists); err != nil {
		return false, fmt.Errorf("check history action: %w", err)
	}

	return exists, nil
}
