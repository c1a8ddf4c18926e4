package report_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"custody/internal/adapters/out/report"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func agingReport() *queries.GetInventoryAgingQueryResponse {
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return &queries.GetInventoryAgingQueryResponse{
		GeneratedAt: at,
		Items: []queries.AgingItem{
			{
				ID: kernel.NewUUID(), OrderID: "TN37WTDSLR1004", SerialNumber: "SN-4",
				Location: kernel.Warehouse, StockInDate: at.AddDate(0, 0, -40),
				AgingDays: 40, Bucket: inventory.BucketStale,
			},
			{
				ID: kernel.NewUUID(), OrderID: "KA01WTIPNE1007", Location: kernel.Showroom, ShowroomID: "SR-1",
				StockInDate: at.AddDate(0, 0, -3), AgingDays: 3, Bucket: inventory.BucketFresh,
			},
		},
		Summary: map[inventory.AgingBucket]int{
			inventory.BucketFresh: 1, inventory.BucketRecent: 0, inventory.BucketAging: 0, inventory.BucketStale: 1,
		},
	}
}

func TestWriteAgingReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteAgingReport(&buf, agingReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.ItemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"OrderID", "SerialNumber", "Location", "ShowroomID", "StockInDate", "AgingDays", "Bucket"}, rows[0])
	assert.Equal(t, []string{"TN37WTDSLR1004", "SN-4", "warehouse", "", "2025-02-02", "40", "30+"}, rows[1])
	assert.Equal(t, "SR-1", rows[2][3])

	summary, err := f.GetRows(report.SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-7", "1"}, summary[1])
	assert.Equal(t, []string{"30+", "1"}, summary[4])
	assert.Equal(t, []string{"GeneratedAt", "2025-03-14 10:00:00"}, summary[6])
}

func TestSaveAgingReport(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "aging.xlsx")

	require.NoError(t, report.SaveAgingReport(filename, agingReport()))

	f, err := excelize.OpenFile(filename)
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue(report.ItemsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "KA01WTIPNE1007", value)
}
