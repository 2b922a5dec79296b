package risk

import (
	"encoding/json"
	"testing"
)

func TestAssessment_WireKeys(t *testing.T) {
	// API consumers depend on these names verbatim.
	e := newTestEngine()
	a := e.Assess(Input{
		Vitals:   map[string]any{"bp": "185/100", "bmi": 42.0},
		Symptoms: []string{"chest pain"},
		Age:      80,
	})

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"score", "level", "findings", "contributing_factors",
		"recommendation", "explanation", "confidence", "requires_immediate_attention",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	findings := m["findings"].(map[string]any)
	for _, key := range []string{"vitals", "bmi", "symptoms", "demographics", "lifestyle"} {
		if _, ok := findings[key]; !ok {
			t.Errorf("missing findings key %q", key)
		}
	}

	factors := m["contributing_factors"].(map[string]any)
	for _, key := range []string{
		"vitals_contribution", "bmi_contribution", "symptoms_contribution",
		"demographics_contribution", "lifestyle_contribution",
	} {
		if _, ok := factors[key]; !ok {
			t.Errorf("missing contributing_factors key %q", key)
		}
	}

	if m["confidence"] != "High" {
		t.Errorf("expected confidence High, got %v", m["confidence"])
	}
}

func TestAssessment_HasCritical(t *testing.T) {
	a := &Assessment{
		Findings: DomainFindings{
			Vitals:   []Finding{{Severity: SeverityModerate, Text: "Tachycardia (HR > 120)"}},
			Symptoms: []Finding{{Severity: SeverityHigh, Text: "Acute pain episode"}},
		},
	}
	if a.HasCritical() {
		t.Error("no critical finding present")
	}

	a.Findings.Symptoms = append(a.Findings.Symptoms, Finding{Severity: SeverityCritical, Text: "Possible neurological emergency"})
	if !a.HasCritical() {
		t.Error("expected critical symptom finding to be detected")
	}
}

func TestAssessment_CriticalInOtherDomainsIgnored(t *testing.T) {
	// Only vitals and symptom findings drive the immediate-attention flag;
	// a critical BMI band alone does not.
	e := newTestEngine()
	a := e.Assess(Input{Vitals: map[string]any{"bmi": 42.0}, Age: 45})
	if a.RequiresImmediateAttention {
		t.Error("critical BMI finding must not set requires_immediate_attention")
	}
}
