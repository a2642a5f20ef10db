package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// Sheet names of the workbook.
const (
	VacancySheet   = "Vacancy"
	GeneratedSheet = "Generated Content"
)

// XLSXContentType is the media type of the workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var vacancyHeaders = []string{"Step", "Field", "Key", "Requirement", "Value"}

// WriteXLSX writes a workbook with one row per declared field and, when any
// generated content exists, a second sheet holding it.
func WriteXLSX(w io.Writer, record types.Record, reg *schema.Registry, lang string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", VacancySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeVacancySheet(f, record, reg, lang); err != nil {
		return fmt.Errorf("failed to create vacancy sheet: %w", err)
	}
	if hasGenerated(record) {
		if _, err := f.NewSheet(GeneratedSheet); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		if err := writeGeneratedSheet(f, record); err != nil {
			return fmt.Errorf("failed to create generated content sheet: %w", err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   record.String("job_title"),
		Creator: "vacancy-wizard",
		Created: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("set document properties: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func hasGenerated(record types.Record) bool {
	for _, key := range schema.GeneratedKeys {
		if !record.IsEmpty(key) {
			return true
		}
	}
	return false
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writeHeaders(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeVacancySheet(f *excelize.File, record types.Record, reg *schema.Registry, lang string) error {
	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	// Mandatory rows are bold.
	mandatory, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	for col, width := range map[string]float64{"A": 28, "B": 32, "C": 28, "D": 14, "E": 60} {
		if err := f.SetColWidth(VacancySheet, col, col, width); err != nil {
			return err
		}
	}
	if err := writeHeaders(f, VacancySheet, vacancyHeaders, header); err != nil {
		return err
	}

	row := 2
	for _, spec := range reg.Specs() {
		values := []any{
			i18n.Tr(spec.Step.Title(), lang),
			i18n.Tr(spec.Label, lang),
			string(spec.Key),
			string(spec.Requirement),
			record.Get(spec.Key).String(),
		}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(VacancySheet, start, &values); err != nil {
			return err
		}
		style := wrap
		if spec.Requirement == schema.Mandatory {
			style = mandatory
		}
		if err := f.SetCellStyle(VacancySheet, start, fmt.Sprintf("E%d", row), style); err != nil {
			return err
		}
		row++
	}

	return f.AutoFilter(VacancySheet, fmt.Sprintf("A1:E%d", row-1), nil)
}

func writeGeneratedSheet(f *excelize.File, record types.Record) error {
	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(GeneratedSheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(GeneratedSheet, "B", "B", 100); err != nil {
		return err
	}
	if err := writeHeaders(f, GeneratedSheet, []string{"Content", "Text"}, header); err != nil {
		return err
	}

	row := 2
	for _, key := range schema.GeneratedKeys {
		v := record.Get(key)
		if v.IsEmpty() {
			continue
		}
		values := []any{KeyTitle(key), v.String()}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(GeneratedSheet, start, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(GeneratedSheet, start, fmt.Sprintf("B%d", row), wrap); err != nil {
			return err
		}
		row++
	}
	return nil
}
