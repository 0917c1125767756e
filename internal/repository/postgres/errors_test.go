package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsPgDuplicateError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	if !IsPgDuplicateError(fmt.Errorf("insert: %w", dup)) {
		t.Error("expected unique violation to be detected through wrapping")
	}
	if IsPgDuplicateError(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation misreported as duplicate")
	}
	if IsPgDuplicateError(nil) {
		t.Error("nil error misreported as duplicate")
	}
}

func TestIsPgForeignKeyError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	if !IsPgForeignKeyError(fmt.Errorf("insert: %w", fk)) {
		t.Error("expected foreign key violation to be detected through wrapping")
	}
	if IsPgForeignKeyError(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation misreported as foreign key violation")
	}
}

func TestIsPgNoRowsError(t *testing.T) {
	if !IsPgNoRowsError(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Error("expected pgx.ErrNoRows to be detected through wrapping")
	}
	if IsPgNoRowsError(fmt.Errorf("boom")) {
		t.Error("unrelated error misreported as no rows")
	}
}
