package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/project"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/alexiusacademia/gobeam/internal/version"
)

// Request limits
const (
	maxBodyBytes = 1 << 20
	maxSamples   = 100_000
)

// Handler provides HTTP API endpoints
type Handler struct {
	samples int
	log     *slog.Logger
}

// NewHandler creates a new API handler analyzing with the given default
// station count
func NewHandler(samples int, log *slog.Logger) *Handler {
	if samples < 2 {
		samples = beam.DefaultSamples
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{samples: samples, log: log}
}

// RegisterRoutes sets up all API routes. The analysis endpoints go through
// limiter when it is not nil.
func (h *Handler) RegisterRoutes(r *mux.Router, limiter *IPRateLimiter) {
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/info", h.handleInfo).Methods("GET")

	api := r.NewRoute().Subrouter()
	if limiter != nil {
		api.Use(limiter.LimitMiddleware)
	}
	api.HandleFunc("/analyze", h.handleAnalyze).Methods("POST")
	api.HandleFunc("/combinations", h.handleCombinations).Methods("POST")
	api.HandleFunc("/report", h.handleReport).Methods("POST")
}

// analyzeResponse is the body returned by /analyze
type analyzeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	*beam.AnalysisResult
	Peaks beam.Peaks `json:"peaks"`
}

// combinationRow is one line of the /combinations table
type combinationRow struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Mu          float64 `json:"mu"`
	Location    float64 `json:"location"`
	RA          float64 `json:"ra"`
	RB          float64 `json:"rb"`
}

// respondJSON encodes before writing the header so an encoding failure
// still reaches the client as a 500
func respondJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"response encoding error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondAnalysisError maps engine errors to 422 with their kind
func respondAnalysisError(w http.ResponseWriter, err error) {
	kind := "invalid_input"
	switch {
	case errors.Is(err, beam.ErrInvalidGeometry):
		kind = "invalid_geometry"
	case errors.Is(err, beam.ErrInvalidRigidity):
		kind = "invalid_rigidity"
	}
	respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error(), "kind": kind})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	types := make([]string, len(beam.Types))
	for i, t := range beam.Types {
		types[i] = string(t)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"version": version.Version,
		"samples": h.samples,
		"types":   types,
		"cases":   nscp.Cases,
	})
}

// decodeBeam reads the beam definition and the station count of a request.
// It writes the error response itself and reports whether to continue.
func (h *Handler) decodeBeam(w http.ResponseWriter, r *http.Request) (project.Beam, int, bool) {
	var bm project.Beam
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&bm); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return bm, 0, false
	}

	samples, err := intParam(r, "samples", h.samples)
	if err != nil || samples < 2 || samples > maxSamples {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("samples must be an integer in [2, %d]", maxSamples))
		return bm, 0, false
	}
	return bm, samples, true
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) (project.Beam, *beam.AnalysisResult, bool) {
	bm, samples, ok := h.decodeBeam(w, r)
	if !ok {
		return bm, nil, false
	}

	cfg, loads, err := bm.Build()
	if err == nil {
		var res *beam.AnalysisResult
		if res, err = beam.Analyze(cfg, loads, samples); err == nil {
			h.logDiagnostics(r, bm, res)
			return bm, res, true
		}
	}
	respondAnalysisError(w, err)
	return bm, nil, false
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	bm, res, ok := h.analyze(w, r)
	if !ok {
		return
	}

	points, err := intParam(r, "points", 0)
	if err != nil || points < 0 {
		respondError(w, http.StatusBadRequest, "points must be a non-negative integer")
		return
	}

	respondJSON(w, http.StatusOK, analyzeResponse{
		ID:             RequestID(r.Context()),
		Name:           bm.Label(0),
		AnalysisResult: decimate(res, points),
		Peaks:          res.Peaks(),
	})
}

func (h *Handler) handleCombinations(w http.ResponseWriter, r *http.Request) {
	bm, samples, ok := h.decodeBeam(w, r)
	if !ok {
		return
	}

	combos := nscp.LoadCombinations
	if simplified, _ := strconv.ParseBool(r.URL.Query().Get("simplified")); simplified {
		combos = nscp.SimplifiedCombinations
	}

	cfg, loads, err := bm.Build()
	if err != nil {
		respondAnalysisError(w, err)
		return
	}
	gov, all, err := nscp.CalculateGoverningCombination(cfg, loads, combos, samples)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	rows := make([]combinationRow, len(all))
	for i, c := range all {
		rows[i] = combinationRow{
			ID:          c.Combination.ID,
			Description: c.Combination.Description,
			Mu:          c.Mu,
			Location:    c.Location,
			RA:          c.Result.Reactions.RA,
			RB:          c.Result.Reactions.RB,
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"name":         bm.Label(0),
		"governing":    gov.Combination.ID,
		"mu":           gov.Mu,
		"location":     gov.Location,
		"combinations": rows,
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	bm, res, ok := h.analyze(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	info := report.Info{Project: bm.Label(0), Notes: r.URL.Query().Get("notes")}
	id, err := report.WritePDF(&buf, info, res, r.URL.Query().Get("diagrams") != "false")
	if err != nil {
		h.log.ErrorContext(r.Context(), "report generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "report generation error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"report-%s.pdf\"", id))
	if _, err := buf.WriteTo(w); err != nil {
		h.log.WarnContext(r.Context(), "write report", "error", err)
	}
}

func (h *Handler) logDiagnostics(r *http.Request, bm project.Beam, res *beam.AnalysisResult) {
	for _, d := range res.Diagnostics {
		h.log.WarnContext(r.Context(), d.Message,
			"code", d.Code, "beam", bm.Label(0), "request_id", RequestID(r.Context()))
	}
}

// decimate returns a copy of r with every station array reduced to n
// evenly spread samples. n <= 0 keeps all stations.
func decimate(r *beam.AnalysisResult, n int) *beam.AnalysisResult {
	if n <= 0 || n >= r.Samples() {
		return r
	}
	out := *r
	out.X = diagram.Resample(r.X, n)
	out.Shear = diagram.Resample(r.Shear, n)
	out.Moment = diagram.Resample(r.Moment, n)
	out.Slope = diagram.Resample(r.Slope, n)
	out.Deflection = diagram.Resample(r.Deflection, n)
	out.DeflectionMM = diagram.Resample(r.DeflectionMM, n)
	return &out
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
