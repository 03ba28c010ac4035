package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"cleanreports/internal/domain"
	"cleanreports/internal/port"
)

const reportColumns = `id, report_date, cleaning_date, store_names, store_name, cleaner_name, status,
	photo_paths, photos, report_link, plan_name, usage_time, category, created_at`

// reportDateExpr resolves the legacy cleaning_date column when report_date is absent.
const reportDateExpr = "COALESCE(report_date, cleaning_date)"

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

// reportRow mirrors cleaning_reports as the sync job writes it, legacy columns included.
type reportRow struct {
	ID           string         `db:"id"`
	ReportDate   sql.NullString `db:"report_date"`
	CleaningDate sql.NullString `db:"cleaning_date"`
	StoreNames   []byte         `db:"store_names"`
	StoreName    sql.NullString `db:"store_name"`
	CleanerName  sql.NullString `db:"cleaner_name"`
	Status       sql.NullString `db:"status"`
	PhotoPaths   []byte         `db:"photo_paths"`
	Photos       []byte         `db:"photos"`
	ReportLink   sql.NullString `db:"report_link"`
	PlanName     sql.NullString `db:"plan_name"`
	UsageTime    sql.NullString `db:"usage_time"`
	Category     sql.NullString `db:"category"`
	CreatedAt    sql.NullTime   `db:"created_at"`
}

type storeFieldsRow struct {
	StoreNames []byte         `db:"store_names"`
	StoreName  sql.NullString `db:"store_name"`
}

// toDomain resolves the column aliases into a single Report.
func (row *reportRow) toDomain() (domain.Report, error) {
	r := domain.Report{
		ID:          row.ID,
		ReportDate:  firstNonEmpty(row.ReportDate, row.CleaningDate),
		CleanerName: row.CleanerName.String,
		Status:      row.Status.String,
		ReportLink:  row.ReportLink.String,
		PlanName:    row.PlanName.String,
		UsageTime:   row.UsageTime.String,
		Category:    row.Category.String,
	}
	if row.CreatedAt.Valid {
		t := row.CreatedAt.Time
		r.CreatedAt = &t
	}

	stores, err := decodeStoreNames(row.StoreNames, row.StoreName)
	if err != nil {
		return r, fmt.Errorf("report %s: %w", row.ID, err)
	}
	r.StoreNames = stores

	photos := row.PhotoPaths
	if isNullJSON(photos) {
		photos = row.Photos
	}
	r.PhotoPaths = []string{}
	if !isNullJSON(photos) {
		if err := json.Unmarshal(photos, &r.PhotoPaths); err != nil {
			return r, fmt.Errorf("report %s: decoding photos: %w", row.ID, err)
		}
	}
	return r, nil
}

func decodeStoreNames(raw []byte, legacy sql.NullString) (domain.StoreNames, error) {
	if !isNullJSON(raw) {
		var names domain.StoreNames
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, err
		}
		if len(names) > 0 {
			return names, nil
		}
	}
	if legacy.Valid && strings.TrimSpace(legacy.String) != "" {
		return domain.StoreNames{legacy.String}, nil
	}
	return nil, nil
}

func firstNonEmpty(values ...sql.NullString) string {
	for _, v := range values {
		if v.Valid && v.String != "" {
			return v.String
		}
	}
	return ""
}

func isNullJSON(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// columnExpr maps a filterable report field to its SQL expression.
func columnExpr(field string) (string, error) {
	switch field {
	case domain.FieldStatus:
		return "status", nil
	case domain.FieldReportDate:
		return reportDateExpr, nil
	case domain.FieldID:
		return "id", nil
	case domain.FieldStoreNames:
		return "store_names", nil
	default:
		return "", fmt.Errorf("unsupported report field %q", field)
	}
}

// buildWhereClause renders predicates into a WHERE clause with positional arguments.
// An empty predicate set yields an empty clause.
func buildWhereClause(preds []domain.Predicate) (clause string, args []interface{}, err error) {
	conds := make([]string, 0, len(preds))
	argN := 1

	for _, p := range preds {
		col, err := columnExpr(p.Field)
		if err != nil {
			return "", nil, err
		}

		switch p.Op {
		case domain.OpEq:
			conds = append(conds, fmt.Sprintf("%s = $%d", col, argN))
		case domain.OpGte:
			conds = append(conds, fmt.Sprintf("%s >= $%d", col, argN))
		case domain.OpLt:
			conds = append(conds, fmt.Sprintf("%s < $%d", col, argN))
		case domain.OpContains:
			if p.Field != domain.FieldStoreNames {
				return "", nil, fmt.Errorf("contains is not supported on %q", p.Field)
			}
			// Array rows match by element, legacy rows by the whole string.
			conds = append(conds, fmt.Sprintf(
				"(store_names @> jsonb_build_array($%[1]d::text) OR store_names = to_jsonb($%[1]d::text) "+
					"OR ((store_names IS NULL OR store_names = 'null'::jsonb) AND store_name = $%[1]d))", argN))
		default:
			return "", nil, fmt.Errorf("unsupported predicate op %q", p.Op)
		}
		args = append(args, p.Value)
		argN++
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args, nil
}

func buildOrderClause(order []domain.OrderBy) (string, error) {
	if len(order) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(order))
	for _, o := range order {
		col, err := columnExpr(o.Field)
		if err != nil {
			return "", err
		}
		if o.Desc {
			parts = append(parts, col+" DESC NULLS LAST")
		} else {
			parts = append(parts, col+" ASC NULLS LAST")
		}
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

func (r *reportRepo) Count(ctx context.Context, preds []domain.Predicate) (int, error) {
	whereClause, args, err := buildWhereClause(preds)
	if err != nil {
		return 0, fmt.Errorf("reportRepo.Count: %w", err)
	}

	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM cleaning_reports %s", whereClause)
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("reportRepo.Count: %w", err)
	}
	return total, nil
}

func (r *reportRepo) Query(ctx context.Context, preds []domain.Predicate, order []domain.OrderBy, offset, limit int) ([]domain.Report, error) {
	whereClause, args, err := buildWhereClause(preds)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.Query: %w", err)
	}
	orderClause, err := buildOrderClause(order)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.Query: %w", err)
	}

	argN := len(args) + 1
	query := fmt.Sprintf("SELECT %s FROM cleaning_reports %s %s LIMIT $%d OFFSET $%d",
		reportColumns, whereClause, orderClause, argN, argN+1)
	args = append(args, limit, offset)

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("reportRepo.Query: %w", err)
	}

	reports := make([]domain.Report, 0, len(rows))
	for i := range rows {
		rep, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("reportRepo.Query: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *reportRepo) StoreFields(ctx context.Context, preds []domain.Predicate) ([]domain.StoreNames, error) {
	whereClause, args, err := buildWhereClause(preds)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.StoreFields: %w", err)
	}

	var rows []storeFieldsRow
	query := fmt.Sprintf("SELECT store_names, store_name FROM cleaning_reports %s", whereClause)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("reportRepo.StoreFields: %w", err)
	}

	out := make([]domain.StoreNames, 0, len(rows))
	for _, row := range rows {
		names, err := decodeStoreNames(row.StoreNames, row.StoreName)
		if err != nil {
			// Skip malformed rows.
			continue
		}
		out = append(out, names)
	}
	return out, nil
}
