package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/harvestguard/croprisk/internal/application/dto"
	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

//go:embed templates/*.html
var templateFS embed.FS

// PredictionService is the use case the form drives.
type PredictionService interface {
	Execute(ctx context.Context, req dto.PredictionRequest) (dto.PredictionResponse, error)
}

// Handler serves the season parameter form and its results.
type Handler struct {
	predictions PredictionService
	logger      *slog.Logger
	tmpl        *template.Template
}

// NewHandler creates a form handler.
func NewHandler(predictions PredictionService, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.New("form.html").Funcs(template.FuncMap{
		"percent": func(p float64) string { return strconv.FormatFloat(p*100, 'f', 1, 64) + "%" },
		"num":     func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}).ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}

	return &Handler{
		predictions: predictions,
		logger:      logger,
		tmpl:        tmpl,
	}, nil
}

// RegisterRoutes registers the form endpoints on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Form)
	mux.HandleFunc("POST /predict", h.Predict)
}

// Form renders the parameter form with its defaults.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, newPage(dto.DefaultPredictionRequest()))
}

// Predict runs the pipeline on the submitted parameters.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		page := newPage(req)
		page.Error = err.Error()
		h.render(w, http.StatusBadRequest, page)
		return
	}

	page := newPage(req)

	resp, err := h.predictions.Execute(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		page.Error = "Prediction failed: " + err.Error()
		if errors.Is(err, model.ErrInvalidInput) {
			status = http.StatusBadRequest
			page.Error = err.Error()
		}
		h.render(w, status, page)
		return
	}

	page.Result = &resp
	h.render(w, http.StatusOK, page)
}

func (h *Handler) render(w http.ResponseWriter, status int, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.Execute(w, page); err != nil {
		h.logger.Error("failed to render form", "error", err)
	}
}

type slider struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

type pageData struct {
	Title     string
	Countries []string
	Crops     []string
	Request   dto.PredictionRequest
	Sliders   []slider
	Result    *dto.PredictionResponse
	Error     string
}

func newPage(req dto.PredictionRequest) pageData {
	countries := make([]string, 0, len(valueobject.Countries()))
	for _, c := range valueobject.Countries() {
		countries = append(countries, c.String())
	}
	crops := make([]string, 0, len(valueobject.Crops()))
	for _, c := range valueobject.Crops() {
		crops = append(crops, c.String())
	}

	return pageData{
		Title:     "Crop Risk & Insurance Payout Predictor",
		Countries: countries,
		Crops:     crops,
		Request:   req,
		Sliders: []slider{
			{"rainfall_mm", "Seasonal Rainfall (mm)", model.MinRainfallMM, model.MaxRainfallMM, 10, req.RainfallMM},
			{"avg_temp_c", "Avg Temperature (°C)", model.MinAvgTempC, model.MaxAvgTempC, 0.5, req.AvgTempC},
			{"ndvi_peak", "NDVI Peak", model.MinNDVIPeak, model.MaxNDVIPeak, 0.01, req.NDVIPeak},
			{"soil_ph", "Soil pH", model.MinSoilPH, model.MaxSoilPH, 0.1, req.SoilPH},
			{"soc_percent", "Soil Organic Carbon (%)", model.MinSOCPercent, model.MaxSOCPercent, 0.1, req.SOCPercent},
			{"fertilizer_n_kg_ha", "Fertilizer N (kg/ha)", model.MinFertilizerNKgHa, model.MaxFertilizerNKgHa, 5, float64(req.FertilizerNKgHa)},
			{"pest_disease_level", "Pest/Disease Level (0–3)", model.MinPestLevel, model.MaxPestLevel, 1, float64(req.PestDiseaseLevel)},
		},
	}
}

// parseRequest reads the submitted form. Range checks are left to the
// domain; only syntax is checked here. On error the returned request still
// holds every value that parsed, with defaults for the rest.
func parseRequest(r *http.Request) (dto.PredictionRequest, error) {
	req := dto.DefaultPredictionRequest()
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form: %w", err)
	}

	req.Country = r.PostForm.Get("country")
	req.Crop = r.PostForm.Get("crop")
	req.Irrigated = r.PostForm.Get("irrigated") != ""

	var errs []error

	floats := []struct {
		name string
		dst  *float64
	}{
		{"rainfall_mm", &req.RainfallMM},
		{"avg_temp_c", &req.AvgTempC},
		{"ndvi_peak", &req.NDVIPeak},
		{"soil_ph", &req.SoilPH},
		{"soc_percent", &req.SOCPercent},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(r.PostForm.Get(f.name), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s: %q", f.name, r.PostForm.Get(f.name)))
			continue
		}
		*f.dst = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"fertilizer_n_kg_ha", &req.FertilizerNKgHa},
		{"pest_disease_level", &req.PestDiseaseLevel},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(r.PostForm.Get(f.name))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s: %q", f.name, r.PostForm.Get(f.name)))
			continue
		}
		*f.dst = v
	}

	return req, errors.Join(errs...)
}
