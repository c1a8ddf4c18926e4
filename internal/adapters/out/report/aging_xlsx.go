// Package report renders read models into spreadsheet exports.
package report

import (
	"fmt"
	"io"

	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/inventory"

	"github.com/xuri/excelize/v2"
)

const (
	ItemsSheet   = "Items"
	SummarySheet = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var itemHeadings = []string{
	"OrderID", "SerialNumber", "Location", "ShowroomID", "StockInDate", "AgingDays", "Bucket",
}

// WriteAgingReport writes the aging read model as an xlsx workbook with one
// row per item and a bucket summary sheet.
func WriteAgingReport(w io.Writer, report *queries.GetInventoryAgingQueryResponse) error {
	f, err := buildAgingWorkbook(report)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write aging report: %w", err)
	}
	return nil
}

// SaveAgingReport writes the workbook to filename.
func SaveAgingReport(filename string, report *queries.GetInventoryAgingQueryResponse) error {
	f, err := buildAgingWorkbook(report)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err = f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save aging report to %s: %w", filename, err)
	}
	return nil
}

func buildAgingWorkbook(report *queries.GetInventoryAgingQueryResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillAgingWorkbook(f, report); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillAgingWorkbook(f *excelize.File, report *queries.GetInventoryAgingQueryResponse) error {
	if err := f.SetSheetName("Sheet1", ItemsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	if err := writeRow(f, ItemsSheet, 1, toCells(itemHeadings)); err != nil {
		return err
	}
	for i, item := range report.Items {
		row := []any{
			item.OrderID,
			item.SerialNumber,
			item.Location.String(),
			item.ShowroomID,
			item.StockInDate.Format("2006-01-02"),
			item.AgingDays,
			string(item.Bucket),
		}
		if err := writeRow(f, ItemsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, SummarySheet, 1, []any{"Bucket", "Items"}); err != nil {
		return err
	}
	for i, bucket := range inventory.AgingBuckets() {
		if err := writeRow(f, SummarySheet, i+2, []any{string(bucket), report.Summary[bucket]}); err != nil {
			return err
		}
	}
	generatedRow := len(inventory.AgingBuckets()) + 3
	return writeRow(f, SummarySheet, generatedRow,
		[]any{"GeneratedAt", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05")})
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
