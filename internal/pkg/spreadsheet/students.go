// Package spreadsheet reads and writes student rosters as .xlsx workbooks.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// ImportColumns is the expected column order of an import sheet.
var ImportColumns = []string{"firstName", "lastName", "email", "mobile", "rollNo", "enrollmentNo"}

var exportHeader = []interface{}{"Name", "Email", "Roll No", "Enrollment No", "Mobile", "Enrolled At"}

const exportSheet = "Students"

// ErrNoSheets is returned for workbooks without any worksheet.
var ErrNoSheets = errors.New("excel file does not contain any sheets")

// StudentRow is one data row of an import sheet. Row is the 1-based sheet row number.
type StudentRow struct {
	Row          int
	FirstName    string
	LastName     string
	Email        string
	Mobile       string
	RollNo       string
	EnrollmentNo string
}

// ReadStudentRows parses the first sheet, skipping the header row and fully empty rows.
func ReadStudentRows(r io.Reader) ([]StudentRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing excel file")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	var out []StudentRow
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		sr := StudentRow{
			Row:          i + 1,
			FirstName:    cell(0),
			LastName:     cell(1),
			Email:        cell(2),
			Mobile:       cell(3),
			RollNo:       cell(4),
			EnrollmentNo: cell(5),
		}
		if sr == (StudentRow{Row: i + 1}) {
			continue
		}
		out = append(out, sr)
	}
	return out, nil
}

// WriteStudents renders students into a single-sheet workbook.
func WriteStudents(w io.Writer, students []*models.Student) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			s.Name,
			s.Email,
			s.RollNo,
			s.EnrollmentNo,
			s.Mobile,
			s.CreatedAt.Format("2006-01-02"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "F", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteImportTemplate renders an empty import sheet with the expected header.
func WriteImportTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(ImportColumns))
	for i, c := range ImportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return f.Write(w)
}
