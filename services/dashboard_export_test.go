package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportDashboardXLSX(t *testing.T) {
	stats, err := DecodeDashboardStatistics([]byte(samplePayload))
	require.NoError(t, err)
	view, err := BuildDashboardView(nil, stats, testNow)
	require.NoError(t, err)

	f, err := ExportDashboardXLSX(view)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Distribution", "Priority", "Recent Tasks"}, f.GetSheetList())

	rows, err := f.GetRows("Distribution")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Status", "Tasks"}, rows[0])
	assert.Equal(t, "Pending", rows[1][0])
	assert.Equal(t, "In Progress", rows[2][0])
	assert.Equal(t, "Completed", rows[3][0])

	raw, err := f.GetCellValue("Priority", "B4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "30", raw)

	tasks, err := f.GetRows("Recent Tasks")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, []string{"Ship release", "In Progress", "High", "2026-10-10"}, tasks[1])

	// round trip through bytes like the export handler does
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Len(t, reopened.GetSheetList(), 3)
}

func TestExportDashboardXLSX_NilView(t *testing.T) {
	_, err := ExportDashboardXLSX(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
