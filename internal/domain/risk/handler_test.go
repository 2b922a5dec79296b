package risk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Ayesha-Ali676/medical-assistant/internal/domain/safety"
	"github.com/Ayesha-Ali676/medical-assistant/internal/platform/ai"
)

type stubSummarizer struct {
	called bool
}

func (s *stubSummarizer) Summarize(_ context.Context, record map[string]any) ai.Summary {
	s.called = true
	return ai.Summary{ClinicalNarrative: "stub narrative", PriorityLevel: "Moderate"}
}

func newRiskTestHandler() (*Handler, *stubSummarizer, *echo.Echo) {
	stub := &stubSummarizer{}
	h := NewHandler(
		newTestService(),
		safety.NewService(safety.DefaultInteractions()),
		stub,
		zerolog.Nop(),
	)
	return h, stub, echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ── Clinical assessment ──

func TestHandler_ClinicalAssessment(t *testing.T) {
	h, _, e := newRiskTestHandler()
	c, rec := postJSON(e, `{"vitals":{"bp":"120/80","hr":72,"spo2":98,"temp":37.0},"age":45}`)
	if err := h.ClinicalAssessment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success    bool        `json:"success"`
		Assessment *Assessment `json:"assessment"`
		Disclaimer string      `json:"disclaimer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.Assessment == nil || resp.Assessment.Score != 0 {
		t.Errorf("expected score 0 assessment, got %+v", resp.Assessment)
	}
	if resp.Disclaimer == "" {
		t.Error("expected disclaimer")
	}
}

func TestHandler_ClinicalAssessment_ExtractionFailure(t *testing.T) {
	h, _, e := newRiskTestHandler()
	c, rec := postJSON(e, `{"age":"unknown"}`)
	if err := h.ClinicalAssessment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("expected failure envelope, got %+v", resp)
	}
}

// ── Analyze patient ──

func TestHandler_AnalyzePatient(t *testing.T) {
	h, stub, e := newRiskTestHandler()
	body := `{
		"vitals": {"bp":"185/100","spo2":88,"temp":38.5,"hr":128},
		"symptoms": ["chest pain"],
		"age": 58,
		"medical_history": ["hypertension"],
		"lab_results": [{"test_name":"Glucose","value":450,"unit":"mg/dL"}],
		"current_medications": [{"name":"Warfarin"},{"name":"Aspirin"}]
	}`
	c, rec := postJSON(e, body)
	if err := h.AnalyzePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ClinicalAssessment == nil || resp.ClinicalAssessment.Level != LevelHigh {
		t.Errorf("expected HIGH assessment, got %+v", resp.ClinicalAssessment)
	}
	if len(resp.SafetyAlerts.Vitals) == 0 {
		t.Error("expected vitals safety alerts")
	}
	if len(resp.SafetyAlerts.Labs) == 0 {
		t.Error("expected lab safety alert for glucose 450")
	}
	if len(resp.SafetyAlerts.Medications) != 1 {
		t.Errorf("expected warfarin+aspirin interaction alert, got %v", resp.SafetyAlerts.Medications)
	}
	if !stub.called {
		t.Error("expected summarizer to run")
	}
	if resp.AIInterpretation.ClinicalNarrative != "stub narrative" {
		t.Errorf("expected stub narrative, got %q", resp.AIInterpretation.ClinicalNarrative)
	}
	if !resp.Workflow.RequiresImmediateAttention {
		t.Error("expected workflow immediate-attention flag")
	}
	if resp.Workflow.NextSteps == "" {
		t.Error("expected next steps from recommendation")
	}
}

func TestHandler_AnalyzePatient_InvalidJSON(t *testing.T) {
	h, _, e := newRiskTestHandler()
	c, _ := postJSON(e, `{not json`)
	err := h.AnalyzePatient(c)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTP error, got %v", err)
	}
}

func TestHandler_AnalyzePatient_NilSummarizerFallsBack(t *testing.T) {
	h := NewHandler(newTestService(), safety.NewService(safety.DefaultInteractions()), nil, zerolog.Nop())
	e := echo.New()
	c, rec := postJSON(e, `{"age":45,"chief_complaint":"headache"}`)
	if err := h.AnalyzePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.AIInterpretation.ClinicalNarrative, "headache") {
		t.Errorf("expected fallback narrative with chief complaint, got %q", resp.AIInterpretation.ClinicalNarrative)
	}
}
