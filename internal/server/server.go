package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/roi-estimator/internal/cache"
	"github.com/iwvelando/roi-estimator/internal/chart"
	"github.com/iwvelando/roi-estimator/internal/config"
	"github.com/iwvelando/roi-estimator/internal/metrics"
	"github.com/iwvelando/roi-estimator/internal/report"
	"github.com/iwvelando/roi-estimator/internal/roi"
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"github.com/iwvelando/roi-estimator/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	chart       ChartConfig
	cache       cache.Store
}

// Option customizes the handler built by NewHandler.
type Option func(*handler)

// WithCache stores rendered charts in store instead of a private in-memory cache.
func WithCache(store cache.Store) Option {
	return func(h *handler) {
		if store != nil {
			h.cache = store
		}
	}
}

// WithChartDefaults sets the width and scale used when a chart request omits them.
func WithChartDefaults(cfg ChartConfig) Option {
	return func(h *handler) {
		if cfg.Width > 0 {
			h.chart.Width = cfg.Width
		}
		if cfg.Scale > 0 {
			h.chart.Scale = cfg.Scale
		}
	}
}

// NewHandler constructs the HTTP handler that serves the web UI and estimate API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		chart: ChartConfig{
			Width: constants.DefaultChartWidth,
			Scale: constants.DefaultChartScale,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.cache == nil {
		h.cache = cache.NewMemory(constants.DefaultCacheMaxEntries, 0)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/defaults", h.handleDefaults)
		r.Post("/estimate", h.handleEstimate)
		r.Post("/allocation", h.handleAllocation)
		r.Post("/chart/{format}", h.handleChart)
		r.Get("/version", h.handleVersion)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

type estimateRequest struct {
	Parameters       map[string]interface{} `json:"parameters"`
	AllocationSource string                 `json:"allocationSource"`
}

type estimateResponse struct {
	Parameters       map[string]float64 `json:"parameters"`
	AllocationSource string             `json:"allocationSource"`
	KPI              report.KPI         `json:"kpi"`
	Results          roi.ResultSet      `json:"results"`
	Formulas         []report.Formula   `json:"formulas"`
	Chart            report.Series      `json:"chart"`
	Warnings         []string           `json:"warnings,omitempty"`
	Duration         string             `json:"duration"`
}

type allocationRequest struct {
	Field   string      `json:"field"`
	Percent interface{} `json:"percent"`
}

type allocationResponse struct {
	SalesAllocationPercent    float64 `json:"salesAllocationPercent"`
	TrainingAllocationPercent float64 `json:"trainingAllocationPercent"`
}

type defaultsResponse struct {
	Parameters       map[string]float64 `json:"parameters"`
	AllocationSource string             `json:"allocationSource"`
	Labels           []string           `json:"labels"`
	PercentKeys      []string           `json:"percentKeys"`
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	values := config.DefaultValues()

	if r.URL.Query().Get("format") == "yaml" {
		params := make(map[string]interface{}, len(values)+1)
		for key, value := range values {
			params[key] = value
		}
		params[config.KeyAllocationSource] = roi.AllocationSales.String()

		data, err := yaml.Marshal(map[string]interface{}{"parameters": params})
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode defaults: %v", err), "server.handleDefaults")
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	var percentKeys []string
	for _, key := range config.ParameterKeys() {
		if config.IsPercentKey(key) {
			percentKeys = append(percentKeys, key)
		}
	}

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		Parameters:       values,
		AllocationSource: roi.AllocationSales.String(),
		Labels:           roi.Labels(),
		PercentKeys:      percentKeys,
	})
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEstimate"
	start := time.Now()

	var req estimateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	params, source, ok := h.parameterSet(w, req, op)
	if !ok {
		return
	}

	computeStart := time.Now()
	result := roi.Compute(params)
	metrics.ComputeDurationSeconds.Observe(time.Since(computeStart).Seconds())
	metrics.EstimatesTotal.Inc()
	metrics.AnnualizedBenefit.Set(result.AnnualizedBenefit)

	rep := report.Build(result)
	warnings := config.ValidateParameters(req.Parameters)
	for _, warning := range warnings {
		h.logger.Debug("parameter warning",
			zap.String("op", op),
			zap.String("warning", warning),
		)
	}

	h.writeJSON(w, http.StatusOK, estimateResponse{
		Parameters:       config.FormatValues(params),
		AllocationSource: source.String(),
		KPI:              rep.KPI,
		Results:          rep.Results,
		Formulas:         rep.Formulas,
		Chart:            rep.Chart,
		Warnings:         warnings,
		Duration:         time.Since(start).String(),
	})
}

func (h *handler) handleAllocation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAllocation"

	var req allocationRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	field, err := roi.ParseAllocationField(req.Field)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	percent := config.CoerceNumber(req.Percent)
	sales, training := roi.NormalizeAllocation(field, percent/constants.PercentageMultiplier)
	h.writeJSON(w, http.StatusOK, allocationResponse{
		SalesAllocationPercent:    sales * constants.PercentageMultiplier,
		TrainingAllocationPercent: training * constants.PercentageMultiplier,
	})
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleChart"

	chartFormat := strings.ToLower(chi.URLParam(r, "format"))
	if err := validation.ValidateChartFormat(chartFormat); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	width, err := queryFloat(r, "width", h.chart.Width, constants.MaxChartWidth)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	scale, err := queryFloat(r, "scale", h.chart.Scale, constants.MaxChartScale)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var req estimateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	params, _, ok := h.parameterSet(w, req, op)
	if !ok {
		return
	}

	deltas := roi.Compute(params).Deltas()
	series, err := json.Marshal(deltas)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode series: %v", err), op)
		return
	}
	key := cache.Key(chartFormat,
		strconv.FormatFloat(width, 'g', -1, 64),
		strconv.FormatFloat(scale, 'g', -1, 64),
		string(series))

	contentType := "image/svg+xml"
	if chartFormat == constants.ChartFormatPNG {
		contentType = "image/png"
	}

	if body, hit := h.cache.Get(r.Context(), key); hit {
		metrics.ObserveCache(true)
		h.writeChart(w, contentType, "HIT", body)
		return
	}
	metrics.ObserveCache(false)

	renderStart := time.Now()
	body, err := renderChart(chartFormat, width, scale, deltas)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err), op)
		return
	}
	metrics.ChartRenderDurationSeconds.WithLabelValues(chartFormat).Observe(time.Since(renderStart).Seconds())
	metrics.ChartRendersTotal.WithLabelValues(chartFormat).Inc()

	if err := h.cache.Set(r.Context(), key, body); err != nil {
		h.logger.Warn("failed to cache chart",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	h.writeChart(w, contentType, "MISS", body)
}

func renderChart(chartFormat string, width, scale float64, values []float64) ([]byte, error) {
	opts := chart.DefaultOptions()
	opts.Scale = scale

	var buf bytes.Buffer
	if err := chart.Encode(&buf, chartFormat, opts, width, values, roi.Labels()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *handler) writeChart(w http.ResponseWriter, contentType, cacheStatus string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write chart response",
			zap.String("op", "server.handleChart"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// parameterSet resolves the allocation source and parses the raw mapping.
// An explicit request source wins over the allocationSource parameter key.
func (h *handler) parameterSet(w http.ResponseWriter, req estimateRequest, op string) (roi.ParameterSet, roi.AllocationField, bool) {
	source := config.AllocationSource(req.Parameters)
	if req.AllocationSource != "" {
		parsed, err := roi.ParseAllocationField(req.AllocationSource)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return roi.ParameterSet{}, source, false
		}
		source = parsed
	}
	return config.ParseParameters(req.Parameters, source), source, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func queryFloat(r *http.Request, name string, fallback, limit float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number, got %q", name, raw)
	}
	if value <= 0 || value > limit {
		return 0, fmt.Errorf("%s must be in (0, %g], got %g", name, limit, value)
	}
	return value, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	metrics.RequestErrorsTotal.WithLabelValues(op).Inc()
	h.logger.Error("estimate request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before writing the header so an unencodable
// result, such as an overflowed estimate, reaches the client as an error.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to encode response: %v", err), "server.writeJSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
