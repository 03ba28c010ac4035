package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, len(Columns))
	assert.Equal(t, "ID", row[0])
	assert.Equal(t, "店舗", row[2])
	assert.Equal(t, "登録日時", row[11])
}

func TestWriteReports(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	reports := []domain.Report{
		{
			ID:          "r1",
			ReportDate:  "2025-03-01",
			StoreNames:  domain.StoreNames{"渋谷店", "新宿店"},
			CleanerName: "Sato",
			Status:      "完了",
			PhotoPaths:  []string{"a.jpg", "b.jpg"},
			ReportLink:  "https://notion.so/r1",
			PlanName:    "定期",
			CreatedAt:   &created,
		},
		{ID: "r2"},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteReports(reports))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "r1", rows[0][0])
	assert.Equal(t, "2025-03-01", rows[0][1])
	assert.Equal(t, "渋谷店", rows[0][2])
	assert.Equal(t, "2", rows[0][9])
	assert.Equal(t, "a.jpg\nb.jpg", rows[0][10])
	assert.Equal(t, "2025-03-01T09:00:00Z", rows[0][11])

	assert.Equal(t, "r2", rows[1][0])
	assert.Equal(t, "0", rows[1][9])
	assert.Empty(t, rows[1][11])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "2025-03", SanitizeFilename("2025-03"))
	assert.Equal(t, "a_b", SanitizeFilename("a  / b"))
	assert.Empty(t, SanitizeFilename("渋谷店"))
	assert.Len(t, SanitizeFilename(strings.Repeat("x", 150)), 100)
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "cleaning_reports_"+today+".csv", BuildFilename("", "csv"))
	assert.Equal(t, "cleaning_reports_2025-03_"+today+".xlsx", BuildFilename("2025-03", "xlsx"))
}
