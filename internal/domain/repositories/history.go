package repositories

import (
	"context"

	"github.com/google/uuid"

	"portaldocs/internal/domain/models"
)

// HistoryRepository defines access to the append-only document history.
type HistoryRepository interface {
	// Append records a history entry. Entries are never updated or deleted
	// while the document exists.
	Append(ctx context.Context, entry *models.HistoryEntry) error

	// ListByDocument lists history entries of a document, newest first.
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]models.HistoryEntry, error)

	// HasAction reports whether the document's history contains the given
	// action. The deletion guard uses this to detect any past publication.
	HasAction(ctx context.Context, documentID uuid.UUID, action models.HistoryAction) (bool, error)
}
