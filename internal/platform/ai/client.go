// Package ai provides the Gemini-backed clinical narrative client. The model
// call is best-effort: when the API is unavailable the client degrades to a
// deterministic summary so callers never fail because the LLM did.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
)

// Summary is the structured clinical narrative returned to callers. Field
// names match the API contract consumed by the frontend.
type Summary struct {
	ClinicalNarrative string            `json:"clinical_narrative"`
	KeyFindings       []string          `json:"key_findings"`
	RiskAssessment    map[string]string `json:"risk_assessment"`
	UrgencyScore      int               `json:"urgency_score"`
	PriorityLevel     string            `json:"priority_level"`
	Recommendations   []string          `json:"recommendations"`
	Disclaimer        string            `json:"disclaimer"`
}

// Config holds client settings, typically sourced from the application config.
type Config struct {
	BaseURL       string
	APIKey        string
	Model         string
	FallbackModel string
	MinInterval   time.Duration
	Timeout       time.Duration
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *RateLimiter
	logger  zerolog.Logger
}

// NewClient builds a Client. An empty API key is allowed: Summarize then
// always returns the deterministic fallback.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = cfg.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: NewRateLimiter(cfg.MinInterval, nil),
		logger:  logger,
	}
}

// Summarize produces a clinical summary for the record. It never returns an
// error: model failures are logged and replaced by FallbackSummary.
func (c *Client) Summarize(ctx context.Context, record map[string]any) Summary {
	if c.cfg.APIKey == "" {
		return FallbackSummary(record)
	}

	if wait := c.limiter.Reserve(); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return FallbackSummary(record)
		}
	}

	summary, err := c.generate(ctx, c.cfg.Model, record)
	if err != nil && isModelNotFound(err) {
		c.logger.Warn().Err(err).Str("model", c.cfg.Model).Msg("model unavailable, retrying with fallback model")
		summary, err = c.generate(ctx, c.cfg.FallbackModel, record)
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("AI summary generation failed")
		return FallbackSummary(record)
	}
	return summary
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model string, record map[string]any) (Summary, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(record)}}}},
	})
	if err != nil {
		return Summary{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Summary{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Summary{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Summary{}, fmt.Errorf("model returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return Summary{}, fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return Summary{}, fmt.Errorf("empty model response")
	}

	text := stripFences(gr.Candidates[0].Content.Parts[0].Text)
	var summary Summary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		return Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	summary.Disclaimer = "For physician review only"
	return summary, nil
}

func isModelNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "status 404") || strings.Contains(msg, "not found")
}

// stripFences removes a surrounding markdown code block, which the model adds
// despite being asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// FallbackSummary is the deterministic summary used whenever the model cannot
// be reached. It keeps the response shape stable for the caller.
func FallbackSummary(record map[string]any) Summary {
	complaint, _ := record["chief_complaint"].(string)
	if complaint == "" {
		complaint = "undocumented complaint"
	}
	return Summary{
		ClinicalNarrative: fmt.Sprintf("Patient presents with %s. Clinical review recommended.", complaint),
		KeyFindings: []string{
			"AI analysis unavailable",
			"Manual physician review required",
			fmt.Sprintf("Chief complaint: %s", complaint),
		},
		RiskAssessment: map[string]string{
			"cardiac":     "Unknown",
			"respiratory": "Unknown",
			"metabolic":   "Unknown",
		},
		UrgencyScore:  5,
		PriorityLevel: "Moderate",
		Recommendations: []string{
			"Complete manual clinical assessment",
			"Review all lab results",
			"Verify medication interactions",
		},
		Disclaimer: "For physician review only - AI analysis unavailable",
	}
}

func buildPrompt(record map[string]any) string {
	var b strings.Builder
	b.WriteString("You are a clinical AI assistant helping licensed physicians. ")
	b.WriteString("Analyze this patient data and provide a structured clinical summary.\n\n")
	b.WriteString("IMPORTANT: This is for physician review only. Do not diagnose or prescribe.\n\n")

	writeField(&b, "Age", record["age"])
	writeField(&b, "Gender", record["gender"])
	writeField(&b, "Chief Complaint", record["chief_complaint"])

	if vitals, ok := record["vitals"].(map[string]any); ok && len(vitals) > 0 {
		b.WriteString("\nVitals:\n")
		for _, key := range []string{"bp", "hr", "spo2", "temp", "bmi", "rr"} {
			if v, ok := vitals[key]; ok {
				fmt.Fprintf(&b, "- %s: %v\n", key, v)
			}
		}
	}
	writeList(&b, "Medical History", record["medical_history"])
	writeList(&b, "Current Medications", record["current_medications"])
	writeList(&b, "Allergies", record["allergies"])

	b.WriteString("\nRespond with JSON only, using these exact keys:\n")
	b.WriteString(`{"clinical_narrative": "...", "key_findings": ["..."], ` +
		`"risk_assessment": {"cardiac": "...", "respiratory": "...", "metabolic": "..."}, ` +
		`"urgency_score": 0, "priority_level": "Low/Moderate/High", "recommendations": ["..."]}`)
	return b.String()
}

func writeField(b *strings.Builder, label string, v any) {
	if v != nil {
		fmt.Fprintf(b, "- %s: %v\n", label, v)
	}
}

func writeList(b *strings.Builder, label string, v any) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "- %v\n", item)
	}
}
