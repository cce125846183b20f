package project

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookColumns is the column layout expected on the first sheet of an
// .xlsx project. The first row is a header and is skipped.
var WorkbookColumns = []string{"name", "type", "length_m", "ei_knm2", "points", "udls", "moments"}

func loadWorkbook(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no beam rows", sheet)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := &File{Name: name}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		bm, err := parseBeamRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out.Beams = append(out.Beams, bm)
	}
	return out, nil
}

// parseBeamRow reads one row laid out as WorkbookColumns
func parseBeamRow(row []string) (Beam, error) {
	if len(row) < 4 {
		return Beam{}, fmt.Errorf("expected at least %d columns (%s)", 4, strings.Join(WorkbookColumns[:4], ", "))
	}

	bm := Beam{
		Name: strings.TrimSpace(row[0]),
		Type: strings.TrimSpace(row[1]),
	}

	var err error
	if bm.Length, err = toFloat(row[2]); err != nil {
		return Beam{}, fmt.Errorf("length: %w", err)
	}
	if strings.TrimSpace(row[3]) != "" {
		if bm.EI, err = toFloat(row[3]); err != nil {
			return Beam{}, fmt.Errorf("ei: %w", err)
		}
	}

	for _, item := range SplitList(cell(row, 4)) {
		p, err := ParsePoint(item)
		if err != nil {
			return Beam{}, err
		}
		bm.Points = append(bm.Points, p)
	}
	for _, item := range SplitList(cell(row, 5)) {
		u, err := ParseUDL(item)
		if err != nil {
			return Beam{}, err
		}
		bm.UDLs = append(bm.UDLs, u)
	}
	for _, item := range SplitList(cell(row, 6)) {
		m, err := ParseMoment(item)
		if err != nil {
			return Beam{}, err
		}
		bm.Moments = append(bm.Moments, m)
	}

	return bm, nil
}

// SaveWorkbook writes the project's beams to an .xlsx file in the layout
// read by LoadFromFile. Beams defined through a section are written with
// their derived EI.
func SaveWorkbook(p *File, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &WorkbookColumns); err != nil {
		return err
	}

	for i, bm := range p.Beams {
		ei := bm.EI
		if ei == 0 && bm.Section != nil {
			ei = bm.Section.FlexuralRigidity()
		}
		points := make([]string, 0, len(bm.Points))
		for _, l := range bm.Points {
			points = append(points, FormatPoint(l))
		}
		udls := make([]string, 0, len(bm.UDLs))
		for _, l := range bm.UDLs {
			udls = append(udls, FormatUDL(l))
		}
		moments := make([]string, 0, len(bm.Moments))
		for _, l := range bm.Moments {
			moments = append(moments, FormatMoment(l))
		}

		row := []any{
			bm.Label(i), bm.Type, bm.Length, ei,
			strings.Join(points, "; "), strings.Join(udls, "; "), strings.Join(moments, "; "),
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
