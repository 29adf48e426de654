package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/stats"
	"github.com/ohmypoop/backend/pkg/model"
)

// ReportData carries everything a period report needs. The service layer
// precomputes the aggregates so the renderers stay presentation-only.
type ReportData struct {
	UserID       string
	Label        string
	DateRange    string
	Records      []model.Record
	Summary      stats.Summary
	Timing       stats.Timing
	Distribution stats.HourDistribution
}

// Generator handles PDF report generation
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new PDF generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// Generate creates a PDF bowel health report for the given period
func (g *Generator) Generate(data *ReportData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()

	g.addTitle(doc, data)
	g.addSummary(doc, data.Summary)
	g.addTiming(doc, data.Timing)
	g.addDistribution(doc, data.Distribution)
	g.addRecordTable(doc, data.Records)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		g.logger.Error("Failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated",
		zap.String("user_id", data.UserID),
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and period info
func (g *Generator) addTitle(doc *gofpdf.Fpdf, data *ReportData) {
	doc.SetFont("Arial", "B", 20)
	doc.CellFormat(0, 10, "Bowel Health Report", "", 1, "C", false, 0, "")
	doc.Ln(5)

	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("Period: %s", data.Label), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Date Range: %s", data.DateRange), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	doc.Ln(10)
}

// addSectionHeader adds a section header
func (g *Generator) addSectionHeader(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Arial", "B", 14)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	doc.Ln(3)
	doc.SetFont("Arial", "", 10)
}

// addSummary adds the period summary section
func (g *Generator) addSummary(doc *gofpdf.Fpdf, s stats.Summary) {
	g.addSectionHeader(doc, "Summary")

	if s.TotalCount == 0 {
		doc.CellFormat(0, 8, "No records during this period.", "", 1, "L", false, 0, "")
		doc.Ln(5)
		return
	}

	doc.CellFormat(0, 6, fmt.Sprintf("Total Records: %d", s.TotalCount), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Successful: %d", s.SuccessCount), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Failed Attempts: %d", s.FailureCount), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Success Rate: %d%%", s.SuccessRate), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Daily Average: %.1f", s.DailyAverage), "", 1, "L", false, 0, "")
	if s.AbnormalCount > 0 {
		doc.CellFormat(0, 6, fmt.Sprintf("Abnormal Observations: %d", s.AbnormalCount), "", 1, "L", false, 0, "")
	}
	doc.Ln(5)
}

// addTiming adds the duration statistics section
func (g *Generator) addTiming(doc *gofpdf.Fpdf, t stats.Timing) {
	g.addSectionHeader(doc, "Duration")

	if t.SampleCount == 0 {
		doc.CellFormat(0, 8, "No duration data recorded.", "", 1, "L", false, 0, "")
		doc.Ln(5)
		return
	}

	doc.CellFormat(0, 6, fmt.Sprintf("Shortest: %s", formatDuration(t.MinDurationSeconds)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Average: %s", formatDuration(t.AverageDurationSeconds)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Longest: %s", formatDuration(t.MaxDurationSeconds)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Samples: %d", t.SampleCount), "", 1, "L", false, 0, "")
	doc.Ln(5)
}

// addDistribution adds the time-of-day distribution section
func (g *Generator) addDistribution(doc *gofpdf.Fpdf, d stats.HourDistribution) {
	g.addSectionHeader(doc, "Time of Day")

	doc.CellFormat(0, 6, fmt.Sprintf("Morning (05:00-11:59): %d", d.Morning), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Afternoon (12:00-16:59): %d", d.Afternoon), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Evening (17:00-20:59): %d", d.Evening), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Night (21:00-04:59): %d", d.Night), "", 1, "L", false, 0, "")
	doc.Ln(5)
}

// addRecordTable adds the per-record table section
func (g *Generator) addRecordTable(doc *gofpdf.Fpdf, records []model.Record) {
	g.addSectionHeader(doc, "Records")

	if len(records) == 0 {
		doc.CellFormat(0, 8, "No records during this period.", "", 1, "L", false, 0, "")
		doc.Ln(5)
		return
	}

	doc.SetFont("Arial", "B", 9)
	doc.CellFormat(40, 7, "Date", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 7, "Time", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 7, "Duration", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 7, "Result", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 7, "Amount", "1", 0, "L", false, 0, "")
	doc.CellFormat(40, 7, "Memo", "1", 1, "L", false, 0, "")

	doc.SetFont("Arial", "", 9)
	for _, rec := range records {
		result := "Failed"
		if rec.Success {
			result = "Success"
		}

		duration := "-"
		if rec.DurationSeconds != nil {
			duration = formatDuration(*rec.DurationSeconds)
		}

		amount := "-"
		if rec.Amount != nil {
			amount = string(*rec.Amount)
		}

		memo := ""
		if rec.Memo != nil {
			memo = *rec.Memo
		}

		doc.CellFormat(40, 6, rec.StartTime.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 6, rec.StartTime.Format("15:04"), "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 6, duration, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 6, result, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 6, amount, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 6, memo, "1", 1, "L", false, 0, "")
	}
	doc.Ln(5)
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
