package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Sheet names used by WriteWorkbook
const (
	SummarySheet  = "Summary"
	StationsSheet = "Stations"
)

// StationColumns is the header row of the stations sheet
var StationColumns = []string{"x_m", "shear_kn", "moment_knm", "slope_rad", "deflection_mm"}

// WriteWorkbook writes a two-sheet workbook: the scalar results and the
// full station table
func WriteWorkbook(w io.Writer, info Info, r *beam.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(StationsSheet); err != nil {
		return err
	}

	if info.Title == "" {
		info.Title = defaultTitle
	}
	peaks := r.Peaks()
	rows := [][]any{
		{info.Title},
		{"Project", info.Project},
		{"Beam type", string(r.Config.Type)},
		{"Span (m)", r.Config.Length},
		{"EI (kN·m²)", r.Config.EI},
		{"Stations", r.Samples()},
		{"Total load (kN)", r.TotalLoad},
		{"RA (kN)", r.Reactions.RA},
		{"RB (kN)", r.Reactions.RB},
		{"Max |V| (kN)", peaks.MaxShear.Value, peaks.MaxShear.Location},
		{"Max M (kN·m)", peaks.MaxMoment.Value, peaks.MaxMoment.Location},
		{"Min M (kN·m)", peaks.MinMoment.Value, peaks.MinMoment.Location},
		{"Slope at A (rad)", r.Summary.SlopeLeft},
		{"Slope at B (rad)", r.Summary.SlopeRight},
		{"Max deflection (mm)", r.Summary.MaxDeflectionMM},
	}
	for _, d := range r.Diagnostics {
		rows = append(rows, []any{"Diagnostic", d.Code, d.Message})
	}
	if err := setRows(f, SummarySheet, rows); err != nil {
		return err
	}

	header := make([]any, len(StationColumns))
	for i, c := range StationColumns {
		header[i] = c
	}
	stations := make([][]any, 0, r.Samples()+1)
	stations = append(stations, header)
	for i := range r.X {
		stations = append(stations, []any{r.X[i], r.Shear[i], r.Moment[i], r.Slope[i], r.DeflectionMM[i]})
	}
	if err := setRows(f, StationsSheet, stations); err != nil {
		return err
	}

	return f.Write(w)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
