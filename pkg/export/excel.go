package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"coach/pkg/s3client"
	"coach/pkg/types"

	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	planSheet     = "Weekly Plan"
	notesSheet    = "Notes"

	dateLayout = "2006-01-02"
)

// ExportParams describes one weekly training program to write out.
// Parameters mirror the planner tool schema.
type ExportParams struct {
	AthleteName   string                `json:"athlete_name" jsonschema_description:"Name of the athlete"`
	WeekStartDate string                `json:"week_start_date" jsonschema_description:"Start date of the week (YYYY-MM-DD)"`
	Workouts      []types.WorkoutDetail `json:"workouts" jsonschema_description:"List of workout details for the week"`
	Notes         string                `json:"notes,omitempty" jsonschema_description:"Additional notes for the training week"`
}

type Exporter struct {
	OutputDir string

	// optional S3 archive
	S3Client *s3.S3
	S3Bucket string

	logger *log.Entry
}

func NewExporter(outputDir string, s3Client *s3.S3, s3Bucket string) *Exporter {
	return &Exporter{
		OutputDir: outputDir,
		S3Client:  s3Client,
		S3Bucket:  s3Bucket,
		logger: log.WithFields(log.Fields{
			"component": "export",
		}),
	}
}

// Export writes the weekly program to an .xlsx file and returns its path
func (e *Exporter) Export(params ExportParams) (string, error) {
	startDate, err := time.Parse(dateLayout, params.WeekStartDate)
	if err != nil {
		return "", fmt.Errorf("invalid week_start_date %q: %w", params.WeekStartDate, err)
	}
	endDate := startDate.AddDate(0, 0, 6)
	dateRange := fmt.Sprintf("%s_to_%s", startDate.Format(dateLayout), endDate.Format(dateLayout))

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("fail to create output dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_training_plan_%s.xlsx", types.AthleteKey(params.AthleteName), dateRange)
	filePath := filepath.Join(e.OutputDir, fileName)

	f := excelize.NewFile()
	defer f.Close()

	// overview sheet first
	f.SetSheetName("Sheet1", overviewSheet)
	f.SetCellValue(overviewSheet, "A1", fmt.Sprintf("Training Plan for: %s", params.AthleteName))
	f.SetCellValue(overviewSheet, "A2", fmt.Sprintf("Week: %s to %s", startDate.Format(dateLayout), endDate.Format(dateLayout)))
	f.SetCellValue(overviewSheet, "A4", "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))
	f.SetColWidth(overviewSheet, "A", "A", 60)

	if err := e.writePlanSheet(f, params.Workouts); err != nil {
		return "", err
	}

	if params.Notes != "" {
		if _, err := f.NewSheet(notesSheet); err != nil {
			return "", err
		}
		f.SetCellValue(notesSheet, "A1", "Training Week Notes:")
		f.SetCellValue(notesSheet, "A2", params.Notes)
		f.SetColWidth(notesSheet, "A", "A", 100)
	}

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("fail to save excel file: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}

	// archive a copy to S3 when configured
	if e.S3Client != nil && e.S3Bucket != "" {
		if err := e.archive(absPath, fileName); err != nil {
			e.logger.Errorf("fail to archive plan to s3: %v", err)
		}
	}

	return absPath, nil
}

func (e *Exporter) writePlanSheet(f *excelize.File, workouts []types.WorkoutDetail) error {
	if _, err := f.NewSheet(planSheet); err != nil {
		return err
	}

	headers := []string{"Day", "Title", "Duration", "Description", "Type", "Intensity"}
	rows := [][]string{headers}
	for _, w := range workouts {
		rows = append(rows, []string{w.Day, w.Title, w.Duration, w.Description, w.Type, w.Intensity})
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(planSheet, cell, &cells); err != nil {
			return err
		}
	}

	// auto-fit columns to the longest value
	for col := range headers {
		maxLen := 0
		for _, row := range rows {
			if len(row[col]) > maxLen {
				maxLen = len(row[col])
			}
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(planSheet, colName, colName, float64(maxLen+2)); err != nil {
			return err
		}
	}
	return nil
}

// ArchiveKey returns the S3 object key an export is archived under
func ArchiveKey(fileName string) string {
	return strings.Join([]string{"training_plans", fileName}, "/")
}

func (e *Exporter) archive(filePath, fileName string) error {
	body, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return s3client.UploadObject(e.S3Client, e.S3Bucket, ArchiveKey(fileName), body)
}
