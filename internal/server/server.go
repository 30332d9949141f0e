// Package server exposes the calculator over HTTP: an HTML form, the region list
// as JSON and a JSON calculation endpoint.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/pdn"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	// formErrorMessage is shown in place of the result when the form cannot be processed.
	formErrorMessage = "Ошибка: проверьте введённые данные."

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

var indexTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

type handler struct {
	service *pdn.Service
	logger  logging.Logger
}

// pageData feeds templates/index.html.
type pageData struct {
	Regions        []string
	SelectedRegion string
	Income         string
	Payments       string
	Result         string
	Status         string
	Band           string
	Error          bool
}

type calculateRequest struct {
	Income   float64   `json:"income"`
	Payments []float64 `json:"payments"`
	Region   string    `json:"region,omitempty"`
}

type calculateResponse struct {
	Ratio  float64 `json:"ratio"`
	Band   string  `json:"band"`
	Status string  `json:"status"`
	Income float64 `json:"income"`
	Region string  `json:"region,omitempty"`
}

// NewHandler constructs the HTTP handler that serves the form and the JSON API.
func NewHandler(service *pdn.Service, logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	h := &handler{service: service, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /regions", h.handleRegions)
	mux.HandleFunc("POST /api/calculate", h.handleCalculate)
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /{$}", h.handleFormSubmit)
	return mux
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", logging.F(logging.FieldAddress, addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}

func (h *handler) handleRegions(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Regions())
}

func (h *handler) handleForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, pageData{Regions: h.service.RegionNames()})
}

func (h *handler) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data := pageData{Regions: h.service.RegionNames()}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, data, err)
		return
	}

	data.Income = r.PostFormValue("income")
	data.Payments = r.PostFormValue("payments")
	data.SelectedRegion = strings.TrimSpace(r.PostFormValue("region"))

	req, err := h.service.ParseRequest(data.Income, data.Payments, data.SelectedRegion)
	if err != nil {
		h.renderError(w, data, err)
		return
	}

	res, err := h.service.Compute(req)
	if err != nil {
		h.renderError(w, data, err)
		return
	}

	data.Result = "ПДН = " + formatRatio(res.Ratio) + "%"
	data.Status = res.Status
	data.Band = res.Band.String()
	data.Income = formatRatio(res.Income)
	h.render(w, data)
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req calculateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	res, err := h.service.Compute(pdn.Request{Income: req.Income, Payments: req.Payments, Region: req.Region})
	if err != nil {
		if apperror.IsInvalidInput(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Ratio:  res.Ratio,
		Band:   res.Band.String(),
		Status: res.Status,
		Income: res.Income,
		Region: res.Region,
	})
}

func (h *handler) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.WithError(err).Error("Failed to render page")
	}
}

func (h *handler) renderError(w http.ResponseWriter, data pageData, err error) {
	h.logger.Info("Rejected form input", logging.F(logging.FieldReason, err.Error()))
	data.Result = formErrorMessage
	data.Status = err.Error()
	data.Error = true
	h.render(w, data)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Warn("Calculation request failed",
		logging.F(logging.FieldStatus, status),
		logging.F(logging.FieldError, msg))
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.WithError(err).Error("Failed to write JSON response")
	}
}

// formatRatio prints a two-decimal value without trailing zeros (42.5, not 42.50).
func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
