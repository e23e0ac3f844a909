// Package server exposes the amortization engine over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dsalazarv/credit-forecast/internal/config"
	"github.com/dsalazarv/credit-forecast/internal/simulation"
	"github.com/dsalazarv/credit-forecast/pkg/charts"
	"github.com/dsalazarv/credit-forecast/pkg/constants"
	"github.com/dsalazarv/credit-forecast/pkg/output"
	"github.com/dsalazarv/credit-forecast/pkg/prepay"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
	"github.com/dsalazarv/credit-forecast/pkg/validation"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the amortization API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestSize := int64(constants.DefaultMaxRequestSizeBytes)
	allowedOrigins := []string{"*"}
	if cfg != nil {
		if cfg.RequestSizeBytes() > 0 {
			maxRequestSize = cfg.RequestSizeBytes()
		}
		if len(cfg.AllowedOrigins) > 0 {
			allowedOrigins = cfg.AllowedOrigins
		}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/schedule", h.handleSchedule)
		r.Post("/schedule/extras", h.handleScheduleExtras)
		r.Post("/schedule/adhoc", h.handleAdHoc)
		r.Post("/compare", h.handleCompare)
		r.Post("/simulate", h.handleSimulate)
		r.Post("/export", h.handleExport)
		r.Post("/charts", h.handleCharts)
		r.Get("/version", h.handleVersion)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

type creditPayload struct {
	Name               string  `json:"name"`
	Principal          float64 `json:"principal"`
	AnnualRatePercent  float64 `json:"annualRatePercent"`
	RateType           string  `json:"rateType,omitempty"`
	PaymentTiming      string  `json:"paymentTiming,omitempty"`
	TermMonths         int     `json:"termMonths"`
	PaymentFrequency   string  `json:"paymentFrequency"`
	StartDate          string  `json:"startDate"`
	QuotationFrequency string  `json:"quotationFrequency,omitempty"`
}

func (p creditPayload) credit() config.Credit {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "credit"
	}
	return config.Credit{
		Name:               name,
		Principal:          p.Principal,
		AnnualRatePercent:  p.AnnualRatePercent,
		RateType:           p.RateType,
		PaymentTiming:      p.PaymentTiming,
		TermMonths:         p.TermMonths,
		PaymentFrequency:   p.PaymentFrequency,
		StartDate:          p.StartDate,
		QuotationFrequency: p.QuotationFrequency,
	}
}

type extraPayload struct {
	Period int     `json:"period"`
	Amount float64 `json:"amount"`
}

type scheduleRequest struct {
	Credit             creditPayload  `json:"credit"`
	Policy             string         `json:"policy,omitempty"`
	ScheduledFrequency string         `json:"scheduledFrequency,omitempty"`
	ScheduledAmount    float64        `json:"scheduledAmount,omitempty"`
	AdHoc              []extraPayload `json:"adHoc,omitempty"`
}

// configuration builds a single-scenario configuration from the request. When
// withScenario is false the extra-payment fields are ignored and only the
// baseline schedule is computed.
func (req scheduleRequest) configuration(withScenario bool) *config.Configuration {
	conf := &config.Configuration{Credit: req.Credit.credit()}
	if !withScenario {
		return conf
	}

	adHoc := make([]config.AdHocPayment, 0, len(req.AdHoc))
	for _, extra := range req.AdHoc {
		adHoc = append(adHoc, config.AdHocPayment{Period: extra.Period, Amount: extra.Amount})
	}

	conf.Scenarios = []config.Scenario{{
		Name:   conf.Credit.Name,
		Active: true,
		ExtraPayments: config.ExtraPayments{
			Policy:             req.Policy,
			ScheduledFrequency: req.ScheduledFrequency,
			ScheduledAmount:    req.ScheduledAmount,
			AdHoc:              adHoc,
		},
	}}
	return conf
}

type scheduleResponse struct {
	Results  []simulation.Result `json:"results"`
	Warnings []string            `json:"warnings,omitempty"`
	CSV      string              `json:"csv"`
	Duration string              `json:"duration"`
}

type adHocRequest struct {
	Credit   creditPayload  `json:"credit"`
	Schedule []schedule.Row `json:"schedule"`
	Period   int            `json:"period"`
	Amount   float64        `json:"amount"`
	Policy   string         `json:"policy,omitempty"`
}

type adHocResponse struct {
	Schedule []schedule.Row `json:"schedule"`
	Savings  prepay.Savings `json:"savings"`
	CSV      string         `json:"csv"`
	Duration string         `json:"duration"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	h.runSimulation(w, r, "schedule", false)
}

func (h *handler) handleScheduleExtras(w http.ResponseWriter, r *http.Request) {
	h.runSimulation(w, r, "schedule/extras", true)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "compare"

	req, ok := h.decodeScheduleRequest(w, r, endpoint)
	if !ok {
		return
	}

	results, warnings, ok := h.simulate(w, req.configuration(true), endpoint)
	if !ok {
		return
	}

	result := results[0]
	if result.Comparison == nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, "no extra payments to compare against the baseline", endpoint)
		return
	}

	elapsed := time.Since(start)
	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"comparison": result.Comparison,
		"savings":    result.Savings,
		"warnings":   warnings,
		"duration":   elapsed.String(),
	})
}

func (h *handler) handleAdHoc(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "schedule/adhoc"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	var req adHocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), endpoint)
		return
	}

	if len(req.Schedule) == 0 {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, "schedule is empty", endpoint)
		return
	}
	if err := validation.ValidateExtraPayment(req.Period, req.Amount, len(req.Schedule)); err != nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), endpoint)
		return
	}

	credit := req.Credit.credit()
	terms, err := credit.Terms()
	if err != nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), endpoint)
		return
	}
	if err := validation.ValidateCreditTerms(terms); err != nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), endpoint)
		return
	}

	periodRate, err := terms.PeriodRate()
	if err != nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), endpoint)
		return
	}

	policy, err := prepay.ParsePolicy(req.Policy)
	if err != nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), endpoint)
		return
	}

	engine := prepay.NewEngine(h.logger)
	updated, err := engine.AppendAdHoc(req.Schedule, req.Period, req.Amount, periodRate, policy, terms.StartDate, terms.PaymentFrequency)
	if err != nil {
		calculationErrors.WithLabelValues(endpoint, "computation").Inc()
		h.respondError(w, http.StatusInternalServerError, err.Error(), endpoint)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("ad-hoc payment applied",
		zap.String("op", "server.handleAdHoc"),
		zap.Int("period", req.Period),
		zap.Float64("amount", req.Amount),
		zap.Duration("duration", elapsed),
	)

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, adHocResponse{
		Schedule: updated,
		Savings:  prepay.ComputeSavings(req.Schedule, updated),
		CSV:      output.ScheduleCsvString(updated),
		Duration: elapsed.String(),
	})
}

// handleSimulate accepts a raw YAML configuration body and runs every active
// scenario in it.
func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "simulate"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	conf, err := config.LoadConfigurationFromReader(r.Body)
	if err != nil {
		calculationErrors.WithLabelValues(endpoint, "validation").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), endpoint)
		return
	}

	warnings := conf.ValidateConfiguration()
	results, resultsOK := h.simulateLoaded(w, conf, endpoint)
	if !resultsOK {
		return
	}

	elapsed := time.Since(start)
	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Results:  results,
		Warnings: warnings,
		CSV:      output.CsvString(results),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "export"

	req, ok := h.decodeScheduleRequest(w, r, endpoint)
	if !ok {
		return
	}

	results, _, ok := h.simulate(w, req.configuration(true), endpoint)
	if !ok {
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	if _, err := w.Write([]byte(output.CsvString(results))); err != nil {
		h.logger.Error("failed to write CSV response",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "charts"

	req, ok := h.decodeScheduleRequest(w, r, endpoint)
	if !ok {
		return
	}

	results, _, ok := h.simulate(w, req.configuration(true), endpoint)
	if !ok {
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderReport(w, results); err != nil {
		h.logger.Error("failed to render charts",
			zap.String("op", "server.handleCharts"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// runSimulation decodes a schedule request and responds with the computed
// results.
func (h *handler) runSimulation(w http.ResponseWriter, r *http.Request, endpoint string, withScenario bool) {
	start := time.Now()

	req, ok := h.decodeScheduleRequest(w, r, endpoint)
	if !ok {
		return
	}

	results, warnings, ok := h.simulate(w, req.configuration(withScenario), endpoint)
	if !ok {
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("schedule computed",
		zap.String("op", "server.runSimulation"),
		zap.String("endpoint", endpoint),
		zap.Int("results", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Results:  results,
		Warnings: warnings,
		CSV:      output.CsvString(results),
		Duration: elapsed.String(),
	})
}

func (h *handler) decodeScheduleRequest(w http.ResponseWriter, r *http.Request, endpoint string) (scheduleRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), endpoint)
		return scheduleRequest{}, false
	}
	return req, true
}

func (h *handler) simulate(w http.ResponseWriter, conf *config.Configuration, endpoint string) ([]simulation.Result, []string, bool) {
	warnings := conf.ValidateConfiguration()
	results, ok := h.simulateLoaded(w, conf, endpoint)
	return results, warnings, ok
}

func (h *handler) simulateLoaded(w http.ResponseWriter, conf *config.Configuration, endpoint string) ([]simulation.Result, bool) {
	results, err := simulation.Run(h.logger, conf)
	if err != nil {
		calculationErrors.WithLabelValues(endpoint, "computation").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), endpoint)
		return nil, false
	}
	if len(results) == 0 {
		calculationErrors.WithLabelValues(endpoint, "computation").Inc()
		h.respondError(w, http.StatusInternalServerError, "simulation produced no results", endpoint)
		return nil, false
	}
	return results, true
}

func (h *handler) observe(endpoint string, start time.Time, status int) {
	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", status)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, endpoint string) {
	h.logger.Error("request failed",
		zap.String("op", "server."+endpoint),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", status)).Inc()
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
