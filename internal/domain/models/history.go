package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryAction identifies a recorded document event.
type HistoryAction string

const (
	ActionCreated          HistoryAction = "created"
	ActionUpdated          HistoryAction = "updated"
	ActionPublished        HistoryAction = "published"
	ActionArchived         HistoryAction = "archived"
	ActionRevisionAdded    HistoryAction = "revision_added"
	ActionRevisionPromoted HistoryAction = "revision_promoted"
)

// HistoryEntry is an append-only audit record of a document event. The
// deletion guard relies on this history, not on the current status field, so
// a document cannot be laundered back to draft to bypass the rule.
type HistoryEntry struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	DocumentID uuid.UUID      `json:"document_id" db:"document_id"`
	Action     HistoryAction  `json:"action" db:"action"`
	Actor      string         `json:"actor" db:"actor"`
	Changes    map[string]any `json:"changes" db:"changed_fields"` // snapshot of changed fields
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
