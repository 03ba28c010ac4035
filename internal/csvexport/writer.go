package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cleanreports/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the export header row.
var Columns = []string{
	"ID",
	"報告日",
	"店舗",
	"担当者",
	"ステータス",
	"プラン",
	"利用時間",
	"カテゴリ",
	"報告URL",
	"写真枚数",
	"写真",
	"登録日時",
}

// Writer wraps csv.Writer for exporting cleaning reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteReports converts a batch of reports to CSV rows and writes them.
func (w *Writer) WriteReports(reports []domain.Report) error {
	for i := range reports {
		if err := w.csv.Write(ReportRow(&reports[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// ReportRow converts a single report to a row matching Columns.
// Photos are joined with newlines so one cell holds every reference.
func ReportRow(r *domain.Report) []string {
	row := make([]string, len(Columns))
	row[0] = r.ID
	row[1] = r.Date()
	row[2] = r.StoreName()
	row[3] = r.CleanerName
	row[4] = r.Status
	row[5] = r.PlanName
	row[6] = r.UsageTime
	row[7] = r.Category
	row[8] = r.ReportLink
	row[9] = strconv.Itoa(len(r.PhotoPaths))
	row[10] = strings.Join(r.PhotoPaths, "\n")
	row[11] = formatTime(r.CreatedAt)
	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: cleaning_reports[_{month}]_{YYYY-MM-DD}.{ext}
func BuildFilename(month, ext string) string {
	base := "cleaning_reports"
	if m := SanitizeFilename(month); m != "" {
		base += "_" + m
	}
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format("2006-01-02"), ext)
}
