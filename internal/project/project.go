// Package project reads beam definitions from JSON, YAML and Excel files and
// turns them into validated inputs for the analysis engine.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// ErrUnsupportedFormat is returned for file extensions the loader does not know
var ErrUnsupportedFormat = errors.New("unsupported project file format")

// File is a collection of beams analyzed together
type File struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Beams       []Beam `json:"beams" yaml:"beams"`
}

// Beam describes a single beam as written by the user
type Beam struct {
	Name   string  `json:"name" yaml:"name"`
	Type   string  `json:"type,omitempty" yaml:"type,omitempty"`
	Length float64 `json:"length" yaml:"length"` // m

	// Stiffness: either EI directly or a section to derive it from
	EI      float64          `json:"ei,omitempty" yaml:"ei,omitempty"` // kN·m²
	Section *section.Section `json:"section,omitempty" yaml:"section,omitempty"`

	Points  []beam.PointLoad       `json:"points,omitempty" yaml:"points,omitempty"`
	UDLs    []beam.DistributedLoad `json:"udls,omitempty" yaml:"udls,omitempty"`
	Moments []beam.AppliedMoment   `json:"moments,omitempty" yaml:"moments,omitempty"`
}

// Label returns the beam name, or a positional fallback
func (s Beam) Label(index int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("beam %d", index+1)
}

// Build converts the beam into engine inputs and validates them
func (s Beam) Build() (beam.Config, beam.LoadSet, error) {
	typ, ok := beam.ParseType(s.Type)
	if !ok {
		return beam.Config{}, beam.LoadSet{}, fmt.Errorf("unknown beam type %q", s.Type)
	}

	ei := s.EI
	if ei == 0 && s.Section != nil {
		if err := s.Section.Validate(); err != nil {
			return beam.Config{}, beam.LoadSet{}, fmt.Errorf("section: %w", err)
		}
		ei = s.Section.FlexuralRigidity()
	}

	cfg := beam.Config{Length: s.Length, EI: ei, Type: typ}
	loads := beam.LoadSet{Points: s.Points, UDLs: s.UDLs, Moments: s.Moments}

	if err := checkCases(loads); err != nil {
		return beam.Config{}, beam.LoadSet{}, err
	}
	if err := beam.Validate(cfg, loads); err != nil {
		return beam.Config{}, beam.LoadSet{}, err
	}
	return cfg, loads, nil
}

func checkCases(loads beam.LoadSet) error {
	for i, p := range loads.Points {
		if _, err := nscp.NormalizeCase(p.Case); err != nil {
			return fmt.Errorf("points[%d]: %w", i, err)
		}
	}
	for i, u := range loads.UDLs {
		if _, err := nscp.NormalizeCase(u.Case); err != nil {
			return fmt.Errorf("udls[%d]: %w", i, err)
		}
	}
	for i, m := range loads.Moments {
		if _, err := nscp.NormalizeCase(m.Case); err != nil {
			return fmt.Errorf("moments[%d]: %w", i, err)
		}
	}
	return nil
}

// LoadFromFile reads a project from a .json, .yaml, .yml or .xlsx file.
// A JSON or YAML document holding a single beam (no "beams" key) is
// accepted and wrapped in a one-beam project.
func LoadFromFile(path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return loadWorkbook(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshal func([]byte, any) error
	switch ext {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return decode(data, unmarshal)
}

func decode(data []byte, unmarshal func([]byte, any) error) (*File, error) {
	var f File
	if err := unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if len(f.Beams) > 0 {
		return &f, nil
	}

	var single Beam
	if err := unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse beam: %w", err)
	}
	if single.Length == 0 {
		return nil, errors.New("project defines no beams")
	}
	return &File{Name: single.Name, Beams: []Beam{single}}, nil
}
