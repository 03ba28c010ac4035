package domain

import (
	"strconv"
	"strings"
	"time"
)

// MonthLayout is the layout of the month filter value.
const MonthLayout = "2006-01"

// Report fields the listing can filter and sort on.
const (
	FieldStatus     = "status"
	FieldStoreNames = "store_names"
	FieldReportDate = "report_date"
	FieldID         = "id"
)

// PredicateOp is the comparison a Predicate applies.
type PredicateOp string

const (
	OpEq       PredicateOp = "eq"
	OpContains PredicateOp = "contains"
	OpGte      PredicateOp = "gte"
	OpLt       PredicateOp = "lt"
)

// Predicate is a single filter condition. A slice of predicates is ANDed.
type Predicate struct {
	Field string
	Op    PredicateOp
	Value string
}

// OrderBy is a single sort key.
type OrderBy struct {
	Field string
	Desc  bool
}

// FilterRequest is the normalized form of the page/store/month query parameters.
type FilterRequest struct {
	Page  int    `json:"page"`
	Store string `json:"store,omitempty"`
	Month string `json:"month,omitempty"`
}

// ParseFilterRequest builds a FilterRequest from raw query values.
// A page that is missing, non-numeric or below 1 becomes 1. Blank filters are
// dropped, and so is a month that is not YYYY-MM.
func ParseFilterRequest(page, store, month string) FilterRequest {
	req := FilterRequest{Page: 1}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 1 {
		req.Page = n
	}
	req.Store = strings.TrimSpace(store)
	if m, ok := NormalizeMonth(month); ok {
		req.Month = m
	}
	return req
}

// HasFilters reports whether a store or month filter is active.
func (f FilterRequest) HasFilters() bool {
	return f.Store != "" || f.Month != ""
}

// NormalizeMonth validates a YYYY-MM value.
func NormalizeMonth(month string) (string, bool) {
	month = strings.TrimSpace(month)
	if month == "" {
		return "", false
	}
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", false
	}
	return t.Format(MonthLayout), true
}

// MonthRange returns the half-open [from, to) date bounds of a YYYY-MM month
// as ISO dates, e.g. "2025-12" -> ("2025-12-01", "2026-01-01").
func MonthRange(month string) (from, to string, ok bool) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", "", false
	}
	return t.Format("2006-01-02"), t.AddDate(0, 1, 0).Format("2006-01-02"), true
}

// ResultPage is one resolved page of the report listing.
type ResultPage struct {
	Rows       []Report `json:"rows"`
	TotalCount int      `json:"total_count"`
	TotalPages int      `json:"total_pages"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// EmptyResultPage returns a page with no rows for the given request.
func EmptyResultPage(page, pageSize int) *ResultPage {
	return &ResultPage{Rows: []Report{}, Page: page, PageSize: pageSize}
}

// PageOffset returns the row offset of a 1-based page.
func PageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// TotalPages returns ceil(total / pageSize), or 0 when there is nothing to show.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
