package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetDistribution = "Distribution"
	sheetPriority     = "Priority"
	sheetRecentTasks  = "Recent Tasks"
)

// ExportDashboardXLSX writes the dashboard charts and recent tasks to a workbook.
// The caller must close the returned file.
func ExportDashboardXLSX(view *DashboardView) (*excelize.File, error) {
	if view == nil {
		return nil, ErrInvalidInput
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetDistribution); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create workbook: %w", err)
	}
	for _, name := range []string{sheetPriority, sheetRecentTasks} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	countStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0

	writeRows := func(sheet string, header []string, rows [][]interface{}) error {
		for i, h := range header {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return err
			}
		}
		for r, row := range rows {
			for c, value := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return err
				}
			}
		}
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
		f.SetColWidth(sheet, "A", "D", 20)
		return nil
	}

	var distribution [][]interface{}
	for _, s := range view.Distribution {
		distribution = append(distribution, []interface{}{s.Label, s.Value})
	}
	if err := writeRows(sheetDistribution, []string{"Status", "Tasks"}, distribution); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write distribution: %w", err)
	}

	var priority [][]interface{}
	for _, s := range view.Priority {
		priority = append(priority, []interface{}{s.Label, s.Value})
	}
	if err := writeRows(sheetPriority, []string{"Priority", "Tasks"}, priority); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write priority: %w", err)
	}

	for _, sheet := range []string{sheetDistribution, sheetPriority} {
		f.SetCellStyle(sheet, "B2", "B4", countStyle)
	}

	var tasks [][]interface{}
	for _, t := range view.RecentTasks {
		tasks = append(tasks, []interface{}{t.Title, t.Status, t.Priority, t.CreatedAt.Format("2006-01-02")})
	}
	if err := writeRows(sheetRecentTasks, []string{"Title", "Status", "Priority", "Created On"}, tasks); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write recent tasks: %w", err)
	}

	return f, nil
}
