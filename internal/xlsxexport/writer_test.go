package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cleanreports/internal/domain"
	"cleanreports/internal/xlsxexport"
)

func TestWriter_RoundTrip(t *testing.T) {
	w, err := xlsxexport.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteReports([]domain.Report{
		{ID: "r1", ReportDate: "2025-03-01T00:00:00Z", StoreNames: domain.StoreNames{"渋谷店"}, Status: "完了"},
		{ID: "r2", StoreNames: domain.StoreNames{"新宿店"}},
	}))
	assert.Equal(t, 3, w.Rows())

	var buf bytes.Buffer
	_, err = w.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "r1", rows[1][0])
	assert.Equal(t, "2025-03-01", rows[1][1])
	assert.Equal(t, "渋谷店", rows[1][2])
	assert.Equal(t, "新宿店", rows[2][2])
}
