// Package report renders analysis results as printable documents: a PDF
// calculation sheet and an .xlsx workbook with the station tables.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
)

// Info identifies a report
type Info struct {
	Title   string
	Project string
	Author  string
	Notes   string
}

const defaultTitle = "Beam Analysis Report"

// WritePDF renders r as an A4 calculation sheet. The diagrams are embedded
// as a PNG image when withDiagrams is set. It returns the generated report
// ID, which is also printed on the sheet.
func WritePDF(w io.Writer, info Info, r *beam.AnalysisResult, withDiagrams bool) (string, error) {
	if info.Title == "" {
		info.Title = defaultTitle
	}
	id := uuid.New().String()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(info.Title, true)
	pdf.SetAuthor(info.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(info.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	if info.Project != "" {
		line(pdf, tr, "Project", info.Project)
	}
	if info.Author != "" {
		line(pdf, tr, "Author", info.Author)
	}
	line(pdf, tr, "Date", time.Now().Format("2006-01-02"))
	line(pdf, tr, "Report ID", id)
	pdf.Ln(4)

	heading(pdf, "Input Data")
	cfg := r.Config
	line(pdf, tr, "Beam type", string(cfg.Type))
	line(pdf, tr, "Span (L)", fmt.Sprintf("%.3f m", cfg.Length))
	line(pdf, tr, "Flexural rigidity (EI)", fmt.Sprintf("%.4g kN·m²", cfg.EI))
	line(pdf, tr, "Stations", fmt.Sprintf("%d (dx = %.4g m)", r.Samples(), r.Dx))
	line(pdf, tr, "Total applied load", fmt.Sprintf("%.3f kN", r.TotalLoad))
	pdf.Ln(4)

	heading(pdf, "Support Reactions")
	line(pdf, tr, "RA", fmt.Sprintf("%.3f kN", r.Reactions.RA))
	line(pdf, tr, "RB", fmt.Sprintf("%.3f kN", r.Reactions.RB))
	pdf.Ln(4)

	peaks := r.Peaks()
	heading(pdf, "Internal Forces")
	line(pdf, tr, "Max |V|", fmt.Sprintf("%.3f kN at x = %.3f m", peaks.MaxShear.Value, peaks.MaxShear.Location))
	line(pdf, tr, "Max M", fmt.Sprintf("%.3f kN·m at x = %.3f m", peaks.MaxMoment.Value, peaks.MaxMoment.Location))
	line(pdf, tr, "Min M", fmt.Sprintf("%.3f kN·m at x = %.3f m", peaks.MinMoment.Value, peaks.MinMoment.Location))
	pdf.Ln(4)

	heading(pdf, "Deflection Summary")
	line(pdf, tr, "Slope at A", fmt.Sprintf("%.6g rad", r.Summary.SlopeLeft))
	line(pdf, tr, "Slope at B", fmt.Sprintf("%.6g rad", r.Summary.SlopeRight))
	line(pdf, tr, "Max deflection", fmt.Sprintf("%.4f mm", r.Summary.MaxDeflectionMM))
	pdf.Ln(4)

	if len(r.Diagnostics) > 0 {
		heading(pdf, "Diagnostics")
		for _, d := range r.Diagnostics {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("[%s] %s", d.Code, d.Message)), "", "L", false)
		}
		pdf.Ln(4)
	}

	if info.Notes != "" {
		heading(pdf, "Notes")
		pdf.MultiCell(0, 5, tr(info.Notes), "", "L", false)
		pdf.Ln(4)
	}

	if withDiagrams {
		var img bytes.Buffer
		if err := diagram.WriteDiagrams(r, &img, "png", 6*vg.Inch, 9*vg.Inch); err != nil {
			return "", fmt.Errorf("render diagrams: %w", err)
		}
		pdf.AddPage()
		heading(pdf, "Diagrams")
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("diagrams", opts, &img)
		pdf.ImageOptions("diagrams", 45, pdf.GetY(), 120, 0, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return "", err
	}
	return id, nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, text)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func line(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(60, 5, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
}
