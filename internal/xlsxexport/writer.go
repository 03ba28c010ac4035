// Package xlsxexport streams cleaning reports into an Excel workbook with the
// same columns as the CSV export.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"cleanreports/internal/csvexport"
	"cleanreports/internal/domain"
)

// SheetName is the worksheet holding the exported rows.
const SheetName = "清掃報告"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Writer appends report rows to a single streamed worksheet.
type Writer struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

// NewWriter creates a workbook with one empty report sheet.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport: stream writer: %w", err)
	}
	return &Writer{file: f, stream: sw}, nil
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.writeRow(csvexport.Columns)
}

// WriteReports appends a batch of reports.
func (w *Writer) WriteReports(reports []domain.Report) error {
	for i := range reports {
		if err := w.writeRow(csvexport.ReportRow(&reports[i])); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRow(values []string) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return w.stream.SetRow(cell, row)
}

// Rows returns how many rows, header included, have been written.
func (w *Writer) Rows() int {
	return w.row
}

// WriteTo flushes the sheet, writes the workbook to out and releases it.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	defer func() { _ = w.file.Close() }()
	if err := w.stream.Flush(); err != nil {
		return 0, fmt.Errorf("xlsxexport: flush: %w", err)
	}
	return w.file.WriteTo(out)
}

// Close releases the workbook without writing it.
func (w *Writer) Close() error {
	return w.file.Close()
}
