package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report is a completed (or in-flight) cleaning report as shown on the dashboard.
// Reports are owned by the sync job that writes them; this service only reads.
type Report struct {
	ID          string     `json:"id"`
	ReportDate  string     `json:"report_date"`
	StoreNames  StoreNames `json:"store_names"`
	CleanerName string     `json:"cleaner_name"`
	Status      string     `json:"status"`
	PhotoPaths  []string   `json:"photo_paths"`
	ReportLink  string     `json:"report_link,omitempty"`
	PlanName    string     `json:"plan_name,omitempty"`
	UsageTime   string     `json:"usage_time,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// StoreName returns the store the report belongs to, or "" when unknown.
func (r *Report) StoreName() string {
	return r.StoreNames.First()
}

// Date returns the calendar date part of ReportDate ("2025-10-31T00:00:00+00:00" -> "2025-10-31").
func (r *Report) Date() string {
	if i := strings.IndexByte(r.ReportDate, 'T'); i >= 0 {
		return r.ReportDate[:i]
	}
	return r.ReportDate
}

// StoreNames is the ordered list of stores a report covers. The column may
// hold a JSON array or, for rows written before the schema change, a single
// JSON string; both decode to a list.
type StoreNames []string

// First returns the first non-blank store name, trimmed.
func (s StoreNames) First() string {
	for _, name := range s {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return ""
}

// UnmarshalJSON accepts null, a string, or an array of strings.
func (s *StoreNames) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*s = nil
		return nil
	}

	if trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("decoding store name: %w", err)
		}
		if strings.TrimSpace(single) == "" {
			*s = nil
			return nil
		}
		*s = StoreNames{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("decoding store names: %w", err)
	}
	*s = many
	return nil
}

// User is a dashboard administrator.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Identity is the signed-in user as carried by a session.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}
