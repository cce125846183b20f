package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Compact load notation, shared by CLI flags and spreadsheet cells:
//
//	point   location:magnitude[:case]         e.g. 5:10 or 2.5:12:L
//	udl     start:end:intensity[:case]        e.g. 0:10:5
//	moment  location:magnitude[:case]         e.g. 3:-15
//
// Several loads may be joined with ';' in one spreadsheet cell.

// ParsePoint parses a point load in compact notation
func ParsePoint(s string) (beam.PointLoad, error) {
	v, tag, err := splitNumbers(s, 2)
	if err != nil {
		return beam.PointLoad{}, fmt.Errorf("point load %q: %w", s, err)
	}
	return beam.PointLoad{Location: v[0], Magnitude: v[1], Case: tag}, nil
}

// ParseUDL parses a distributed load in compact notation
func ParseUDL(s string) (beam.DistributedLoad, error) {
	v, tag, err := splitNumbers(s, 3)
	if err != nil {
		return beam.DistributedLoad{}, fmt.Errorf("udl %q: %w", s, err)
	}
	return beam.DistributedLoad{Start: v[0], End: v[1], Intensity: v[2], Case: tag}, nil
}

// ParseMoment parses an applied moment in compact notation
func ParseMoment(s string) (beam.AppliedMoment, error) {
	v, tag, err := splitNumbers(s, 2)
	if err != nil {
		return beam.AppliedMoment{}, fmt.Errorf("moment %q: %w", s, err)
	}
	return beam.AppliedMoment{Location: v[0], Magnitude: v[1], Case: tag}, nil
}

// FormatPoint renders a point load in compact notation
func FormatPoint(p beam.PointLoad) string {
	return joinNumbers(p.Case, p.Location, p.Magnitude)
}

// FormatUDL renders a distributed load in compact notation
func FormatUDL(u beam.DistributedLoad) string {
	return joinNumbers(u.Case, u.Start, u.End, u.Intensity)
}

// FormatMoment renders an applied moment in compact notation
func FormatMoment(m beam.AppliedMoment) string {
	return joinNumbers(m.Case, m.Location, m.Magnitude)
}

// SplitList splits a ';' separated load list, skipping blank entries
func SplitList(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitNumbers(s string, n int) ([]float64, string, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != n && len(parts) != n+1 {
		return nil, "", fmt.Errorf("expected %d numbers and an optional case", n)
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, "", fmt.Errorf("field %d: %w", i+1, err)
		}
		values[i] = v
	}

	var tag string
	if len(parts) == n+1 {
		tag = strings.TrimSpace(parts[n])
	}
	return values, tag, nil
}

func joinNumbers(tag string, values ...float64) string {
	parts := make([]string, 0, len(values)+1)
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if tag != "" {
		parts = append(parts, tag)
	}
	return strings.Join(parts, ":")
}
