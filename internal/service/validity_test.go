package service

import (
	"testing"

	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/services"
)

func TestNormalizeValidityNone(t *testing.T) {
	r := NewVigenciaResolver()

	for _, mode := range []string{"", "none"} {
		v, verr := r.Normalize(services.ValidityInput{Mode: mode, Months: "12", Start: "2024-01-01"})
		if verr != nil && verr.HasErrors() {
			t.Fatalf("Normalize(mode=%q) unexpected errors: %v", mode, verr)
		}
		if v.Mode != models.ValidityNone {
			t.Errorf("mode = %s, want none", v.Mode)
		}
		if v.Months != nil || v.Start != nil || v.End != nil {
			t.Error("mode none must clear months and period fields")
		}
	}
}

func TestNormalizeValidityMonths(t *testing.T) {
	r := NewVigenciaResolver()

	tests := []struct {
		name      string
		months    string
		wantValue int
		wantErr   bool
	}{
		{"valid", "12", 12, false},
		{"one month", "1", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, verr := r.Normalize(services.ValidityInput{Mode: "months", Months: tt.months})
			hasErr := verr != nil && verr.HasErrors()
			if hasErr != tt.wantErr {
				t.Fatalf("Normalize(months=%q) error = %v, wantErr %v", tt.months, verr, tt.wantErr)
			}
			if !tt.wantErr {
				if v.Months == nil || *v.Months != tt.wantValue {
					t.Errorf("months = %v, want %d", v.Months, tt.wantValue)
				}
				if v.Start != nil || v.End != nil {
					t.Error("mode months must not set period fields")
				}
			}
		})
	}
}

func TestNormalizeValidityPeriod(t *testing.T) {
	r := NewVigenciaResolver()

	t.Run("valid period", func(t *testing.T) {
		v, verr := r.Normalize(services.ValidityInput{Mode: "period", Start: "2024-01-01", End: "2024-12-31"})
		if verr != nil && verr.HasErrors() {
			t.Fatalf("unexpected errors: %v", verr)
		}
		if v.Start == nil || v.End == nil {
			t.Fatal("period fields not set")
		}
		if v.Months != nil {
			t.Error("mode period must not set months")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, verr := r.Normalize(services.ValidityInput{Mode: "period", Start: "2024-12-31", End: "2024-01-01"})
		if verr == nil || !verr.HasErrors() {
			t.Fatal("expected error for end before start")
		}
	})

	t.Run("same day is allowed", func(t *testing.T) {
		_, verr := r.Normalize(services.ValidityInput{Mode: "period", Start: "2024-06-15", End: "2024-06-15"})
		if verr != nil && verr.HasErrors() {
			t.Fatalf("unexpected errors: %v", verr)
		}
	})

	t.Run("both dates malformed reported together", func(t *testing.T) {
		_, verr := r.Normalize(services.ValidityInput{Mode: "period", Start: "15/06/2024", End: "nope"})
		if verr == nil || len(verr.Fields) != 2 {
			t.Fatalf("expected 2 field errors, got %v", verr)
		}
	})

	t.Run("missing dates", func(t *testing.T) {
		_, verr := r.Normalize(services.ValidityInput{Mode: "period"})
		if verr == nil || len(verr.Fields) != 2 {
			t.Fatalf("expected 2 field errors, got %v", verr)
		}
	})
}

func TestNormalizeValidityUnknownMode(t *testing.T) {
	r := NewVigenciaResolver()

	_, verr := r.Normalize(services.ValidityInput{Mode: "forever"})
	if verr == nil || !verr.HasErrors() {
		t.Fatal("expected error for unknown mode")
	}
}

// Re-normalizing already normalized data must change nothing.
func TestNormalizeIdempotent(t *testing.T) {
	r := NewVigenciaResolver()

	first, verr := r.Normalize(services.ValidityInput{Mode: "period", Start: "2024-01-01", End: "2025-01-01"})
	if verr != nil && verr.HasErrors() {
		t.Fatalf("unexpected errors: %v", verr)
	}

	second, verr := r.Normalize(services.ValidityInput{
		Mode:  string(first.Mode),
		Start: first.Start.Format(dateLayout),
		End:   first.End.Format(dateLayout),
	})
	if verr != nil && verr.HasErrors() {
		t.Fatalf("unexpected errors: %v", verr)
	}
	if !second.Start.Equal(*first.Start) || !second.End.Equal(*first.End) || second.Mode != first.Mode {
		t.Error("normalization is not idempotent")
	}
}
