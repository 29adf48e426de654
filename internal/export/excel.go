package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/pdf"
)

const recordSheet = "Records"

// ExcelExporter renders period reports as XLSX workbooks
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{
		logger: logger,
	}
}

// Export builds a two-sheet workbook: one sheet of raw records and one of
// period aggregates.
func (e *ExcelExporter) Export(data *pdf.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", recordSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := e.writeRecords(f, data); err != nil {
		return nil, err
	}
	if err := e.writeSummary(f, data); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		e.logger.Error("failed to write workbook", zap.Error(err))
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("XLSX export generated",
		zap.String("user_id", data.UserID),
		zap.Int("record_count", len(data.Records)),
	)

	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeRecords(f *excelize.File, data *pdf.ReportData) error {
	headers := []string{"Date", "Start Time", "Duration (s)", "Result", "Amount", "Memo"}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		if err := setCell(f, recordSheet, col+1, 1, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(recordSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	if err := f.SetColWidth(recordSheet, "A", "B", 14); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}
	if err := f.SetColWidth(recordSheet, "F", "F", 32); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}

	for i, rec := range data.Records {
		row := i + 2

		result := "failed"
		if rec.Success {
			result = "success"
		}

		duration := any("")
		if rec.DurationSeconds != nil {
			duration = *rec.DurationSeconds
		}

		amount := ""
		if rec.Amount != nil {
			amount = string(*rec.Amount)
		}

		memo := ""
		if rec.Memo != nil {
			memo = *rec.Memo
		}

		values := []any{
			rec.StartTime.Format("2006-01-02"),
			rec.StartTime.Format("15:04:05"),
			duration,
			result,
			amount,
			memo,
		}
		for col, value := range values {
			if err := setCell(f, recordSheet, col+1, row, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *ExcelExporter) writeSummary(f *excelize.File, data *pdf.ReportData) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][2]any{
		{"Period", data.Label},
		{"Date Range", data.DateRange},
		{"Total Records", data.Summary.TotalCount},
		{"Successful", data.Summary.SuccessCount},
		{"Failed Attempts", data.Summary.FailureCount},
		{"Success Rate (%)", data.Summary.SuccessRate},
		{"Daily Average", data.Summary.DailyAverage},
		{"Abnormal Observations", data.Summary.AbnormalCount},
		{"Min Duration (s)", data.Timing.MinDurationSeconds},
		{"Average Duration (s)", data.Timing.AverageDurationSeconds},
		{"Max Duration (s)", data.Timing.MaxDurationSeconds},
		{"Morning Count", data.Distribution.Morning},
		{"Afternoon Count", data.Distribution.Afternoon},
		{"Evening Count", data.Distribution.Evening},
		{"Night Count", data.Distribution.Night},
	}
	for i, row := range rows {
		if err := setCell(f, sheet, 1, i+1, row[0]); err != nil {
			return err
		}
		if err := setCell(f, sheet, 2, i+1, row[1]); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}

	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
