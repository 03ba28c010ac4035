package port

import (
	"context"

	"cleanreports/internal/domain"
)

// ReportRepository is the read-only query interface over cleaning reports.
// Predicates are ANDed; an empty slice matches every record.
type ReportRepository interface {
	Count(ctx context.Context, preds []domain.Predicate) (int, error)
	Query(ctx context.Context, preds []domain.Predicate, order []domain.OrderBy, offset, limit int) ([]domain.Report, error)
	// StoreFields returns the store collection of every matching record, one entry per record.
	StoreFields(ctx context.Context, preds []domain.Predicate) ([]domain.StoreNames, error)
}
