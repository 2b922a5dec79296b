package risk

import (
	"reflect"
	"strings"
	"testing"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultRules())
}

func hasFindingText(findings []Finding, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f.Text, substr) {
			return true
		}
	}
	return false
}

// ── Vitals ──

func TestEvaluateVitals_NormalReadings(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateVitals(map[string]any{
		"bp": "120/80", "hr": 72.0, "spo2": 98.0, "temp": 37.0,
	})
	if score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestEvaluateVitals_HypertensiveCrisis(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateVitals(map[string]any{"bp": "185/100"})
	if score != 25 {
		t.Errorf("expected score 25, got %d", score)
	}
	if len(findings) != 1 || findings[0].Severity != SeverityCritical {
		t.Errorf("expected one CRITICAL finding, got %v", findings)
	}
}

func TestEvaluateVitals_BPSingleBandOnly(t *testing.T) {
	// 185/100 satisfies the crisis, stage-2 and stage-1 thresholds but must
	// only be counted once, at the most severe tier.
	e := newTestEngine()
	score, findings := e.EvaluateVitals(map[string]any{"bp": "185/100"})
	if score != 25 || len(findings) != 1 {
		t.Errorf("expected single band match (25), got score %d findings %v", score, findings)
	}
}

func TestEvaluateVitals_Hypotension(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateVitals(map[string]any{"bp": "85/55"})
	if score != 12 {
		t.Errorf("expected score 12, got %d", score)
	}
	if !hasFindingText(findings, "Hypotension") {
		t.Errorf("expected hypotension finding, got %v", findings)
	}
}

func TestEvaluateVitals_OxygenTiers(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		spo2  float64
		score int
	}{
		{88, 20},
		{92, 12},
		{94.5, 5},
		{95, 0},
		{98, 0},
	}
	for _, tc := range cases {
		score, _ := e.EvaluateVitals(map[string]any{"spo2": tc.spo2})
		if score != tc.score {
			t.Errorf("spo2 %v: expected %d, got %d", tc.spo2, tc.score, score)
		}
	}
}

func TestEvaluateVitals_HeartRateTiers(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		hr    float64
		score int
	}{
		{135, 10},
		{125, 6},
		{45, 8},
		{72, 0},
	}
	for _, tc := range cases {
		score, _ := e.EvaluateVitals(map[string]any{"hr": tc.hr})
		if score != tc.score {
			t.Errorf("hr %v: expected %d, got %d", tc.hr, tc.score, score)
		}
	}
}

func TestEvaluateVitals_TemperatureTiers(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		temp  float64
		score int
	}{
		{40.0, 8},
		{39.0, 5},
		{38.5, 0}, // boundary is strict
		{34.5, 8},
		{37.0, 0},
	}
	for _, tc := range cases {
		score, _ := e.EvaluateVitals(map[string]any{"temp": tc.temp})
		if score != tc.score {
			t.Errorf("temp %v: expected %d, got %d", tc.temp, tc.score, score)
		}
	}
}

func TestEvaluateVitals_CappedAt45(t *testing.T) {
	e := newTestEngine()
	score, _ := e.EvaluateVitals(map[string]any{
		"bp": "190/125", "spo2": 85.0, "hr": 140.0, "temp": 40.0,
	})
	if score != 45 {
		t.Errorf("expected capped score 45, got %d", score)
	}
}

func TestEvaluateVitals_MalformedValuesSkipped(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateVitals(map[string]any{
		"bp": "not-a-number", "hr": "high", "spo2": []string{"bad"}, "temp": 40.0,
	})
	if score != 8 {
		t.Errorf("expected only the temperature contribution (8), got %d", score)
	}
	if len(findings) != 1 {
		t.Errorf("expected one finding, got %v", findings)
	}
}

func TestEvaluateVitals_MissingKeysSkipped(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateVitals(map[string]any{})
	if score != 0 || len(findings) != 0 {
		t.Errorf("expected zero contribution for empty vitals, got %d %v", score, findings)
	}
}

func TestEvaluateVitals_FindingOrder(t *testing.T) {
	// Findings come back in the fixed check order: BP, SpO2, HR, Temp.
	e := newTestEngine()
	_, findings := e.EvaluateVitals(map[string]any{
		"temp": 40.0, "hr": 140.0, "spo2": 85.0, "bp": "190/125",
	})
	want := []string{"Hypertensive crisis", "hypoxemia", "tachycardia", "fever"}
	if len(findings) != 4 {
		t.Fatalf("expected 4 findings, got %v", findings)
	}
	for i, substr := range want {
		if !strings.Contains(strings.ToLower(findings[i].Text), strings.ToLower(substr)) {
			t.Errorf("finding %d: expected %q in %q", i, substr, findings[i].Text)
		}
	}
}

// ── BMI ──

func TestEvaluateBMI_Bands(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		bmi      any
		score    int
		text     string
		severity Severity
	}{
		{42.0, 15, "Class III Obesity", SeverityCritical},
		{36.0, 10, "Class II Obesity", SeverityHigh},
		{31.0, 6, "Obesity", SeverityModerate},
		{17.0, 5, "Underweight", SeverityModerate},
		{24.0, 0, "", ""},
	}
	for _, tc := range cases {
		score, findings := e.EvaluateBMI(tc.bmi)
		if score != tc.score {
			t.Errorf("bmi %v: expected score %d, got %d", tc.bmi, tc.score, score)
		}
		if tc.text == "" {
			if len(findings) != 0 {
				t.Errorf("bmi %v: expected no findings, got %v", tc.bmi, findings)
			}
			continue
		}
		if len(findings) != 1 || !strings.Contains(findings[0].Text, tc.text) || findings[0].Severity != tc.severity {
			t.Errorf("bmi %v: expected %s/%s finding, got %v", tc.bmi, tc.severity, tc.text, findings)
		}
	}
}

func TestEvaluateBMI_MissingOrInvalid(t *testing.T) {
	e := newTestEngine()
	for _, raw := range []any{nil, "heavy", struct{}{}} {
		score, findings := e.EvaluateBMI(raw)
		if score != 0 || len(findings) != 0 {
			t.Errorf("bmi %v: expected zero contribution, got %d %v", raw, score, findings)
		}
	}
}

// ── Symptoms ──

func TestEvaluateSymptoms_CardiacGroup(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateSymptoms([]string{"Chest Pain"})
	if score != 18 {
		t.Errorf("expected 18, got %d", score)
	}
	if len(findings) != 1 || findings[0].Severity != SeverityCritical {
		t.Errorf("expected one CRITICAL finding, got %v", findings)
	}
}

func TestEvaluateSymptoms_GroupCountedOnce(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateSymptoms([]string{"chest pain", "shortness of breath"})
	if score != 18 || len(findings) != 1 {
		t.Errorf("expected a single group hit (18), got %d %v", score, findings)
	}
}

func TestEvaluateSymptoms_GroupsAdditive(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateSymptoms([]string{"chest pain", "dizziness"})
	if score != 18+10 {
		t.Errorf("expected 28, got %d", score)
	}
	if len(findings) != 2 {
		t.Errorf("expected 2 findings, got %v", findings)
	}
}

func TestEvaluateSymptoms_AdditiveSumCapped(t *testing.T) {
	// Three groups sum to 43 but the sub-score never exceeds 40. Findings are
	// not capped, only the score.
	e := newTestEngine()
	score, findings := e.EvaluateSymptoms([]string{"chest pain", "confusion", "dizziness"})
	if score != 40 {
		t.Errorf("expected capped score 40, got %d", score)
	}
	if len(findings) != 3 {
		t.Errorf("expected 3 findings, got %v", findings)
	}
}

func TestEvaluateSymptoms_ExactMatchNotSubstring(t *testing.T) {
	// "chest pain radiating to arm" contains the trigger phrase but is not an
	// exact match, so it must not fire.
	e := newTestEngine()
	score, _ := e.EvaluateSymptoms([]string{"chest pain radiating to arm", "cough"})
	if score != 0 {
		t.Errorf("expected 0 for non-exact symptom strings, got %d", score)
	}
}

func TestEvaluateSymptoms_CappedAt40(t *testing.T) {
	e := newTestEngine()
	score, _ := e.EvaluateSymptoms([]string{
		"chest pain", "confusion", "difficulty breathing", "severe pain", "dizziness", "persistent vomiting",
	})
	if score != 40 {
		t.Errorf("expected capped score 40, got %d", score)
	}
}

func TestEvaluateSymptoms_Empty(t *testing.T) {
	e := newTestEngine()
	if score, _ := e.EvaluateSymptoms(nil); score != 0 {
		t.Errorf("expected 0 for no symptoms, got %d", score)
	}
}

// ── Demographics ──

func TestEvaluateDemographics_AgeBands(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		age   int
		score int
	}{
		{80, 8},
		{75, 8},
		{70, 4},
		{65, 4},
		{45, 0},
		{18, 0},
		{12, 2},
	}
	for _, tc := range cases {
		score, _ := e.EvaluateDemographics(tc.age, "F", nil)
		if score != tc.score {
			t.Errorf("age %d: expected %d, got %d", tc.age, tc.score, score)
		}
	}
}

func TestEvaluateDemographics_ComorbiditySubstring(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateDemographics(45, "M", []string{"Type 2 Diabetes Mellitus"})
	if score != 6 {
		t.Errorf("expected 6 for diabetes substring match, got %d", score)
	}
	if !hasFindingText(findings, "Diabetes") {
		t.Errorf("expected diabetes finding, got %v", findings)
	}
}

func TestEvaluateDemographics_ComorbiditiesAdditive(t *testing.T) {
	e := newTestEngine()
	score, _ := e.EvaluateDemographics(58, "M", []string{"hypertension", "diabetes"})
	if score != 11 {
		t.Errorf("expected 11 (5+6), got %d", score)
	}
}

func TestEvaluateDemographics_CappedAt30(t *testing.T) {
	e := newTestEngine()
	score, _ := e.EvaluateDemographics(80, "F", []string{
		"diabetes", "hypertension", "heart disease", "copd", "kidney disease", "cancer",
	})
	if score != 30 {
		t.Errorf("expected capped score 30, got %d", score)
	}
}

func TestEvaluateDemographics_GenderDoesNotScore(t *testing.T) {
	e := newTestEngine()
	for _, gender := range []string{"M", "F", "Other", ""} {
		score, _ := e.EvaluateDemographics(45, gender, nil)
		if score != 0 {
			t.Errorf("gender %q: expected 0, got %d", gender, score)
		}
	}
}

// ── Lifestyle ──

func TestEvaluateLifestyle_AllFactors(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateLifestyle(map[string]any{
		"smoking":        "Current",
		"activity_level": "Sedentary",
		"diet_quality":   "Poor",
		"sleep_hours":    5.0,
	})
	// 10+6+5+4 = 25, capped at 20.
	if score != 20 {
		t.Errorf("expected capped score 20, got %d", score)
	}
	if len(findings) != 4 {
		t.Errorf("expected 4 findings, got %v", findings)
	}
}

func TestEvaluateLifestyle_FormerSmoker(t *testing.T) {
	e := newTestEngine()
	score, findings := e.EvaluateLifestyle(map[string]any{"smoking": "Former"})
	if score != 4 {
		t.Errorf("expected 4, got %d", score)
	}
	if len(findings) != 1 || findings[0].Severity != SeverityInfo {
		t.Errorf("expected single INFO finding, got %v", findings)
	}
}

func TestEvaluateLifestyle_SleepDefaultsToSeven(t *testing.T) {
	e := newTestEngine()
	if score, _ := e.EvaluateLifestyle(map[string]any{}); score != 0 {
		t.Errorf("expected 0 with default sleep hours, got %d", score)
	}
	if score, _ := e.EvaluateLifestyle(map[string]any{"sleep_hours": "plenty"}); score != 0 {
		t.Errorf("expected unparsable sleep hours to fall back to default, got %d", score)
	}
	if score, _ := e.EvaluateLifestyle(map[string]any{"sleep_hours": 5.5}); score != 4 {
		t.Errorf("expected 4 for short sleep, got %d", score)
	}
}

// ── Critical combinations ──

func TestCriticalCombinations_CardiacAlert(t *testing.T) {
	e := newTestEngine()
	alerts := e.CriticalCombinations(map[string]any{"bp": "185/100"}, []string{"chest pain"})
	if len(alerts) != 1 || !strings.Contains(alerts[0].Text, "CARDIAC ALERT") {
		t.Errorf("expected cardiac alert, got %v", alerts)
	}
	if alerts[0].Severity != SeverityCritical {
		t.Errorf("expected CRITICAL severity, got %s", alerts[0].Severity)
	}
}

func TestCriticalCombinations_CrisisWithoutChestPain(t *testing.T) {
	e := newTestEngine()
	alerts := e.CriticalCombinations(map[string]any{"bp": "190/100"}, []string{"headache"})
	if len(alerts) != 1 || !strings.Contains(alerts[0].Text, "EMERGENT") {
		t.Errorf("expected generic crisis alert, got %v", alerts)
	}
}

func TestCriticalCombinations_InfectionRisk(t *testing.T) {
	e := newTestEngine()

	// Hypoxemia plus fever.
	alerts := e.CriticalCombinations(map[string]any{"spo2": 88.0, "temp": 38.2}, nil)
	if len(alerts) != 1 || !strings.Contains(alerts[0].Text, "INFECTION RISK") {
		t.Errorf("expected infection alert for hypoxemia+fever, got %v", alerts)
	}

	// Hypoxemia plus cough, no fever.
	alerts = e.CriticalCombinations(map[string]any{"spo2": 88.0, "temp": 37.0}, []string{"Cough"})
	if len(alerts) != 1 || !strings.Contains(alerts[0].Text, "INFECTION RISK") {
		t.Errorf("expected infection alert for hypoxemia+cough, got %v", alerts)
	}

	// Hypoxemia alone is not enough.
	alerts = e.CriticalCombinations(map[string]any{"spo2": 88.0, "temp": 37.0}, nil)
	if len(alerts) != 0 {
		t.Errorf("expected no alert for hypoxemia alone, got %v", alerts)
	}
}

func TestCriticalCombinations_MalformedBPSkipped(t *testing.T) {
	e := newTestEngine()
	if alerts := e.CriticalCombinations(map[string]any{"bp": "crisis"}, []string{"chest pain"}); len(alerts) != 0 {
		t.Errorf("expected no alerts for malformed bp, got %v", alerts)
	}
}

// ── Aggregation and classification ──

func TestTotalScore_ClassificationBoundaries(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		total int
		level Level
	}{
		{0, LevelLow},
		{30, LevelLow},
		{31, LevelModerate},
		{60, LevelModerate},
		{61, LevelHigh},
		{100, LevelHigh},
	}
	for _, tc := range cases {
		_, level, _ := e.TotalScore(tc.total, 0, 0, 0, 0)
		if level != tc.level {
			t.Errorf("total %d: expected %s, got %s", tc.total, tc.level, level)
		}
	}
}

func TestTotalScore_CappedAt100(t *testing.T) {
	e := newTestEngine()
	total, level, factors := e.TotalScore(45, 15, 40, 30, 20)
	if total != 100 {
		t.Errorf("expected total capped at 100, got %d", total)
	}
	if level != LevelHigh {
		t.Errorf("expected HIGH, got %s", level)
	}
	if factors.Vitals != 45 || factors.Symptoms != 40 {
		t.Errorf("contributing factors must keep the uncapped sub-scores: %+v", factors)
	}
}

// ── Full assessments ──

func TestAssess_StablePatient(t *testing.T) {
	e := newTestEngine()
	a := e.Assess(Input{
		Vitals: map[string]any{"bp": "120/80", "hr": 72.0, "spo2": 98.0, "temp": 37.0},
		Age:    45,
		Gender: "F",
	})
	if a.Score != 0 {
		t.Errorf("expected score 0, got %d", a.Score)
	}
	if a.Level != LevelLow {
		t.Errorf("expected LOW, got %s", a.Level)
	}
	if a.RequiresImmediateAttention {
		t.Error("stable patient must not require immediate attention")
	}
	if !strings.Contains(a.Explanation, "within acceptable ranges") {
		t.Errorf("expected in-range explanation, got %q", a.Explanation)
	}
}

func TestAssess_CriticalCardiacPatient(t *testing.T) {
	e := newTestEngine()
	a := e.Assess(Input{
		Vitals:        map[string]any{"bp": "180/110", "spo2": 88.0, "hr": 128.0, "temp": 38.5},
		Symptoms:      []string{"chest pain", "shortness of breath"},
		Age:           58,
		Gender:        "M",
		Comorbidities: []string{"hypertension", "diabetes"},
	})

	if a.ContributingFactors.Vitals != 45 {
		t.Errorf("expected vitals sub-score capped at 45, got %d", a.ContributingFactors.Vitals)
	}
	if a.ContributingFactors.Symptoms != 18 {
		t.Errorf("expected symptom sub-score 18, got %d", a.ContributingFactors.Symptoms)
	}
	if a.ContributingFactors.Demographics != 11 {
		t.Errorf("expected demographics sub-score 11, got %d", a.ContributingFactors.Demographics)
	}
	if !hasFindingText(a.Findings.Vitals, "CARDIAC ALERT") {
		t.Errorf("expected cardiac combination alert in vitals findings, got %v", a.Findings.Vitals)
	}
	if a.Findings.Vitals[0].Text != "CARDIAC ALERT: Hypertensive crisis with chest pain - immediate evaluation required" {
		t.Errorf("combination alert must lead the vitals findings, got %v", a.Findings.Vitals[0])
	}
	if !a.RequiresImmediateAttention {
		t.Error("expected requires_immediate_attention")
	}
	if a.Level != LevelHigh {
		t.Errorf("expected HIGH, got %s", a.Level)
	}
}

func TestAssess_SepsisRiskPatient(t *testing.T) {
	e := newTestEngine()
	a := e.Assess(Input{
		Vitals:   map[string]any{"spo2": 88.0, "temp": 38.2},
		Symptoms: []string{"cough"},
		Age:      50,
	})
	if !hasFindingText(a.Findings.Vitals, "INFECTION RISK") {
		t.Errorf("expected infection-risk alert in vitals findings, got %v", a.Findings.Vitals)
	}
	if !a.RequiresImmediateAttention {
		t.Error("expected requires_immediate_attention for critical combination")
	}
}

func TestAssess_Idempotent(t *testing.T) {
	e := newTestEngine()
	in := Input{
		Vitals:        map[string]any{"bp": "160/95", "hr": 125.0},
		Symptoms:      []string{"dizziness"},
		Age:           70,
		Comorbidities: []string{"asthma"},
		Lifestyle:     map[string]any{"smoking": "Current"},
	}
	first := e.Assess(in)
	second := e.Assess(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated assessment differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAssess_MonotonicUnderAddedRiskFactors(t *testing.T) {
	e := newTestEngine()

	steps := []Input{
		{Age: 45},
		{Age: 45, Vitals: map[string]any{"hr": 125.0}},
		{Age: 45, Vitals: map[string]any{"hr": 125.0, "spo2": 92.0}},
		{Age: 45, Vitals: map[string]any{"hr": 125.0, "spo2": 92.0}, Symptoms: []string{"dizziness"}},
		{Age: 70, Vitals: map[string]any{"hr": 125.0, "spo2": 92.0}, Symptoms: []string{"dizziness"}},
		{Age: 70, Vitals: map[string]any{"hr": 125.0, "spo2": 92.0}, Symptoms: []string{"dizziness"}, Comorbidities: []string{"copd"}},
		{Age: 70, Vitals: map[string]any{"hr": 125.0, "spo2": 92.0}, Symptoms: []string{"dizziness"}, Comorbidities: []string{"copd"}, Lifestyle: map[string]any{"smoking": "Current"}},
	}

	prev := -1
	for i, in := range steps {
		a := e.Assess(in)
		if a.Score < prev {
			t.Errorf("step %d: score decreased from %d to %d", i, prev, a.Score)
		}
		if a.Score < 0 || a.Score > 100 {
			t.Errorf("step %d: score %d out of [0,100]", i, a.Score)
		}
		prev = a.Score
	}
}

func TestAssess_ExplanationNamesPrimaryDrivers(t *testing.T) {
	e := newTestEngine()
	a := e.Assess(Input{
		Vitals:   map[string]any{"bp": "165/100", "spo2": 92.0, "hr": 125.0},
		Symptoms: []string{"dizziness"},
		Age:      58,
	})
	if !strings.Contains(a.Explanation, "primary risk drivers") {
		t.Errorf("expected drivers sentence, got %q", a.Explanation)
	}
	// Top two vitals findings and the top symptom finding.
	for _, want := range []string{"Stage 2 hypertension", "Hypoxemia", "Hemodynamic instability"} {
		if !strings.Contains(a.Explanation, want) {
			t.Errorf("expected %q in explanation %q", want, a.Explanation)
		}
	}
	if strings.Contains(a.Explanation, "Tachycardia") {
		t.Errorf("third vitals finding must not be a driver: %q", a.Explanation)
	}
}
