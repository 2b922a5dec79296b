package risk

// Severity classifies how concerning a single finding is. It is carried as a
// structured field so downstream consumers never have to infer urgency from
// the finding text.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityModerate Severity = "MODERATE"
	SeverityInfo     Severity = "INFO"
)

// Finding is a single severity-tagged observation produced by a domain
// evaluator.
type Finding struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Level is the three-tier risk classification derived from the total score.
type Level string

const (
	LevelLow      Level = "Low Risk (0-30)"
	LevelModerate Level = "Moderate Risk (31-60)"
	LevelHigh     Level = "High Risk (61-100)"
)

// Input carries the typed patient state consumed by the engine. Vitals and
// Lifestyle stay loosely typed: values arrive from JSON payloads and malformed
// entries are skipped, never rejected.
type Input struct {
	Vitals        map[string]any
	Symptoms      []string
	Age           int
	Gender        string
	Comorbidities []string
	Lifestyle     map[string]any
}

// DomainFindings groups findings by the domain that produced them.
type DomainFindings struct {
	Vitals       []Finding `json:"vitals"`
	BMI          []Finding `json:"bmi"`
	Symptoms     []Finding `json:"symptoms"`
	Demographics []Finding `json:"demographics"`
	Lifestyle    []Finding `json:"lifestyle"`
}

// ContributingFactors records the capped per-domain sub-scores that were
// summed into the total.
type ContributingFactors struct {
	Vitals       int `json:"vitals_contribution"`
	BMI          int `json:"bmi_contribution"`
	Symptoms     int `json:"symptoms_contribution"`
	Demographics int `json:"demographics_contribution"`
	Lifestyle    int `json:"lifestyle_contribution"`
}

// Assessment is the complete result of one engine run. Field names on the
// wire are fixed; API consumers depend on them verbatim.
type Assessment struct {
	Score                      int                 `json:"score"`
	Level                      Level               `json:"level"`
	Findings                   DomainFindings      `json:"findings"`
	ContributingFactors        ContributingFactors `json:"contributing_factors"`
	Recommendation             string              `json:"recommendation"`
	Explanation                string              `json:"explanation"`
	Confidence                 string              `json:"confidence"`
	RequiresImmediateAttention bool                `json:"requires_immediate_attention"`
}

// HasCritical reports whether any vitals or symptom finding carries CRITICAL
// severity. Critical-combination alerts are prepended to the vitals findings,
// so they are covered here too.
func (a *Assessment) HasCritical() bool {
	for _, f := range a.Findings.Vitals {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	for _, f := range a.Findings.Symptoms {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
