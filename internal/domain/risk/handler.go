package risk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Ayesha-Ali676/medical-assistant/internal/domain/safety"
	"github.com/Ayesha-Ali676/medical-assistant/internal/platform/ai"
)

// Summarizer produces the AI clinical narrative for a patient record.
// Implementations must degrade gracefully; Summarize never fails.
type Summarizer interface {
	Summarize(ctx context.Context, record map[string]any) ai.Summary
}

type Handler struct {
	svc        *Service
	safety     *safety.Service
	summarizer Summarizer
	logger     zerolog.Logger
}

func NewHandler(svc *Service, safetySvc *safety.Service, summarizer Summarizer, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, safety: safetySvc, summarizer: summarizer, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/clinical-assessment", h.ClinicalAssessment)
	api.POST("/analyze-patient", h.AnalyzePatient)
}

const (
	assessmentDisclaimer = "For physician review only. Not for diagnostic use."
	failureDisclaimer    = "Assessment failed. Please consult physician directly."
	analyzeDisclaimer    = "This is a decision support tool. All findings require physician validation. Not for diagnostic use."
)

type assessmentResponse struct {
	Result
	Disclaimer string `json:"disclaimer"`
}

// ClinicalAssessment runs the deterministic risk engine for one patient
// record and returns the result envelope.
func (h *Handler) ClinicalAssessment(c echo.Context) error {
	var record map[string]any
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.svc.GenerateAssessment(record)
	if !result.Success {
		h.logger.Warn().Str("error", result.Error).Msg("clinical assessment failed")
		return c.JSON(http.StatusBadRequest, assessmentResponse{Result: result, Disclaimer: failureDisclaimer})
	}
	return c.JSON(http.StatusOK, assessmentResponse{Result: result, Disclaimer: assessmentDisclaimer})
}

// safetyRecord carries the parts of the record the safety checks consume.
type safetyRecord struct {
	Vitals             map[string]any      `json:"vitals"`
	LabResults         []safety.LabResult  `json:"lab_results"`
	CurrentMedications []safety.Medication `json:"current_medications"`
}

type safetyAlerts struct {
	Vitals      []safety.Alert `json:"vitals"`
	Labs        []safety.Alert `json:"labs"`
	Medications []safety.Alert `json:"medications"`
}

type workflow struct {
	RequiresImmediateAttention bool   `json:"requires_immediate_attention"`
	RiskLevel                  Level  `json:"risk_level"`
	NextSteps                  string `json:"next_steps"`
}

type analyzeResponse struct {
	ClinicalAssessment *Assessment  `json:"clinical_assessment"`
	SafetyAlerts       safetyAlerts `json:"safety_alerts"`
	AIInterpretation   ai.Summary   `json:"ai_interpretation"`
	Workflow           workflow     `json:"workflow"`
	Disclaimer         string       `json:"disclaimer"`
}

// AnalyzePatient composes the full decision-support pipeline: deterministic
// risk assessment, safety checks over vitals, labs and medications, and the
// AI narrative.
func (h *Handler) AnalyzePatient(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read request body")
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	var sr safetyRecord
	if err := json.Unmarshal(body, &sr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record shape: "+err.Error())
	}

	result := h.svc.GenerateAssessment(record)
	if !result.Success {
		h.logger.Error().Str("error", result.Error).Msg("patient analysis failed")
		return c.JSON(http.StatusBadRequest, assessmentResponse{Result: result, Disclaimer: failureDisclaimer})
	}

	resp := analyzeResponse{
		ClinicalAssessment: result.Assessment,
		SafetyAlerts: safetyAlerts{
			Vitals:      h.safety.CheckVitals(sr.Vitals),
			Labs:        h.safety.CheckLabs(sr.LabResults),
			Medications: h.safety.CheckDrugInteractions(sr.CurrentMedications),
		},
		AIInterpretation: h.summarize(c.Request().Context(), record),
		Workflow: workflow{
			RequiresImmediateAttention: result.Assessment.RequiresImmediateAttention,
			RiskLevel:                  result.Assessment.Level,
			NextSteps:                  result.Assessment.Recommendation,
		},
		Disclaimer: analyzeDisclaimer,
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) summarize(ctx context.Context, record map[string]any) ai.Summary {
	if h.summarizer == nil {
		return ai.FallbackSummary(record)
	}
	return h.summarizer.Summarize(ctx, record)
}
