package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportFormat формат экспорта отчёта
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat разбирает формат экспорта из конфигурации
func ParseFormat(value string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(value)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatExcel, "xlsx":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unknown report format %q", value)
}

// Exporter экспортер отчёта анализа
type Exporter struct {
	report *Report
}

// NewExporter создает новый экспортер отчёта
func NewExporter(report *Report) *Exporter {
	return &Exporter{report: report}
}

// Export сохраняет отчёт в файл в указанном формате
func (e *Exporter) Export(filename string, format ExportFormat) error {
	switch format {
	case FormatJSON:
		return e.ExportToJSON(filename)
	case FormatCSV:
		return e.ExportToCSV(filename)
	case FormatExcel:
		return e.ExportToExcel(filename)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// ExportToJSON сохраняет полный отчёт в JSON
func (e *Exporter) ExportToJSON(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(e.report); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// findingRows разворачивает отчёт в плоские строки для CSV и Excel
func (e *Exporter) findingRows() [][]string {
	rows := [][]string{}

	for _, g := range e.report.GenericDescriptions {
		rows = append(rows, []string{"generic_description", g.ID, g.Name, g.Description})
	}
	for _, c := range e.report.Clusters {
		names := make([]string, 0, len(c.Members))
		for _, m := range c.Members {
			names = append(names, m.Name)
		}
		rows = append(rows, []string{"duplicate_cluster", c.GroupID, c.MuscleGroup,
			fmt.Sprintf("axis=%s score=%.2f members=%s", c.Axis, c.Score, strings.Join(names, "; "))})
	}
	for _, p := range e.report.NameDuplicates {
		rows = append(rows, []string{"name_duplicate", p.FirstID, p.FirstName,
			fmt.Sprintf("matches %q (%.2f)", p.SecondName, p.Score)})
	}
	for _, p := range e.report.EquipmentVariants {
		rows = append(rows, []string{"equipment_variant", p.FirstID, p.FirstName,
			fmt.Sprintf("variant of %q (%.2f)", p.SecondName, p.Score)})
	}
	for _, f := range e.report.FieldProblems {
		rows = append(rows, []string{"field_problem", f.ID, f.Name,
			fmt.Sprintf("%s: %s (%s)", f.Field, f.Score.Quality, strings.Join(f.Score.Suggestions, "; "))})
	}
	for _, d := range e.report.DifficultySuggestions {
		rows = append(rows, []string{"difficulty", d.ID, d.Name,
			fmt.Sprintf("%s -> %s", d.Current, d.Suggested)})
	}
	for _, v := range e.report.ValidationFindings {
		var failed []string
		for _, c := range v.Checks {
			if !c.Passed {
				failed = append(failed, c.Message)
			}
		}
		rows = append(rows, []string{"validation", v.ID, v.Name, strings.Join(failed, "; ")})
	}
	return rows
}

var findingHeaders = []string{"Kind", "ID", "Name", "Details"}

// ExportToCSV сохраняет находки отчёта в плоский CSV
func (e *Exporter) ExportToCSV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(findingHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range e.findingRows() {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

// ExportToExcel сохраняет находки отчёта в Excel
func (e *Exporter) ExportToExcel(filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Catalog Findings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range findingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range e.findingRows() {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range findingHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 20.0
		if i == len(findingHeaders)-1 {
			width = 80.0
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	f.SetActiveSheet(index)
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
