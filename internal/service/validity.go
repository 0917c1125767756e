package service

import (
	"strconv"
	"time"

	"portaldocs/internal/domain"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/domain/services"
)

const dateLayout = "2006-01-02"

// VigenciaResolver normalizes raw validity input into exactly one of the
// three storage shapes: no validity, a month count, or an explicit period.
// Fields that do not belong to the selected mode are always cleared, so
// re-normalizing stored data is a no-op.
type VigenciaResolver struct{}

func NewVigenciaResolver() *VigenciaResolver {
	return &VigenciaResolver{}
}

// Normalize parses the raw input and returns the canonical validity. All
// problems are reported together in a single ValidationError.
func (r *VigenciaResolver) Normalize(in services.ValidityInput) (models.Validity, *domain.ValidationError) {
	verr := &domain.ValidationError{}

	mode := models.ValidityMode(in.Mode)
	if in.Mode == "" {
		mode = models.ValidityNone
	}

	switch mode {
	case models.ValidityNone:
		return models.Validity{Mode: models.ValidityNone}, nil

	case models.ValidityMonths:
		out := models.Validity{Mode: models.ValidityMonths}
		if in.Months == "" {
			verr.Add("validity.months", "months is required when mode is months")
			return out, verr
		}
		months, err := strconv.Atoi(in.Months)
		if err != nil || months <= 0 {
			verr.Add("validity.months", "months must be a positive integer")
			return out, verr
		}
		out.Months = &months
		return out, nil

	case models.ValidityPeriod:
		out := models.Validity{Mode: models.ValidityPeriod}
		start := parseDate(in.Start, "validity.start", verr)
		end := parseDate(in.End, "validity.end", verr)
		if start != nil && end != nil && end.Before(*start) {
			verr.Add("validity.end", "end date must not be before start date")
		}
		if verr.HasErrors() {
			return out, verr
		}
		out.Start = start
		out.End = end
		return out, nil

	default:
		verr.Add("validity.mode", "mode must be one of: none, months, period")
		return models.Validity{Mode: models.ValidityNone}, verr
	}
}

func parseDate(raw, field string, verr *domain.ValidationError) *time.Time {
	if raw == "" {
		verr.Add(field, "date is required when mode is period")
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		verr.Add(field, "date must be in YYYY-MM-DD format")
		return nil
	}
	return &t
}
