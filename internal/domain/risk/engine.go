package risk

import (
	"fmt"
	"strconv"
	"strings"
)

// Engine evaluates patient state against an immutable rule configuration.
// It holds no mutable state: every call is an independent, pure computation
// and the engine is safe for concurrent use.
type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Vitals mapping keys recognized by the engine.
const (
	VitalBloodPressure   = "bp"
	VitalHeartRate       = "hr"
	VitalOxygenSat       = "spo2"
	VitalTemperature     = "temp"
	VitalBMI             = "bmi"
	VitalRespiratoryRate = "rr"
)

// Assess runs every domain evaluator, the critical-combination detector and
// the aggregation step for one patient state.
func (e *Engine) Assess(in Input) Assessment {
	vitalsScore, vitalsFindings := e.EvaluateVitals(in.Vitals)
	bmiScore, bmiFindings := e.EvaluateBMI(in.Vitals[VitalBMI])
	symptomScore, symptomFindings := e.EvaluateSymptoms(in.Symptoms)
	demoScore, demoFindings := e.EvaluateDemographics(in.Age, in.Gender, in.Comorbidities)
	lifestyleScore, lifestyleFindings := e.EvaluateLifestyle(in.Lifestyle)

	// Cross-domain alerts lead the vitals findings so they surface first in
	// the explanation and any rendered report.
	vitalsFindings = append(e.CriticalCombinations(in.Vitals, in.Symptoms), vitalsFindings...)

	total, level, factors := e.TotalScore(vitalsScore, bmiScore, symptomScore, demoScore, lifestyleScore)

	a := Assessment{
		Score: total,
		Level: level,
		Findings: DomainFindings{
			Vitals:       vitalsFindings,
			BMI:          bmiFindings,
			Symptoms:     symptomFindings,
			Demographics: demoFindings,
			Lifestyle:    lifestyleFindings,
		},
		ContributingFactors: factors,
		Recommendation:      e.rules.Recommendations[level],
		Explanation:         e.explain(in.Age, level, vitalsFindings, symptomFindings),
		Confidence:          "High",
	}
	a.RequiresImmediateAttention = a.HasCritical()
	return a
}

// EvaluateVitals applies the threshold rules to each recognized vital that is
// present. Vitals are checked in a fixed order (BP, SpO2, HR, Temp) and each
// vital matches at most one band. Malformed values are skipped.
func (e *Engine) EvaluateVitals(vitals map[string]any) (int, []Finding) {
	score := 0
	findings := []Finding{}

	if raw, ok := vitals[VitalBloodPressure]; ok {
		if sys, dia, ok := parseBloodPressure(raw); ok {
			matched := false
			for _, band := range e.rules.BloodPressure {
				if sys >= band.SystolicAtLeast || dia >= band.DiastolicAtLeast {
					score += band.Score
					findings = append(findings, Finding{Severity: band.Severity, Text: band.Text})
					matched = true
					break
				}
			}
			if !matched {
				low := e.rules.Hypotension
				if sys < low.SystolicBelow || dia < low.DiastolicBelow {
					score += low.Score
					findings = append(findings, Finding{Severity: low.Severity, Text: low.Text})
				}
			}
		}
	}

	score, findings = e.applyNumericBands(vitals, VitalOxygenSat, e.rules.OxygenSaturation, score, findings)
	score, findings = e.applyNumericBands(vitals, VitalHeartRate, e.rules.HeartRate, score, findings)
	score, findings = e.applyNumericBands(vitals, VitalTemperature, e.rules.Temperature, score, findings)

	return capScore(score, e.rules.VitalsCap), findings
}

func (e *Engine) applyNumericBands(vitals map[string]any, key string, bands []NumericBand, score int, findings []Finding) (int, []Finding) {
	raw, ok := vitals[key]
	if !ok {
		return score, findings
	}
	v, ok := floatValue(raw)
	if !ok {
		return score, findings
	}
	for _, band := range bands {
		if band.matches(v) {
			score += band.Score
			findings = append(findings, Finding{Severity: band.Severity, Text: band.Text})
			break
		}
	}
	return score, findings
}

// EvaluateBMI classifies the BMI into exactly one band. A missing or
// non-numeric value contributes nothing.
func (e *Engine) EvaluateBMI(raw any) (int, []Finding) {
	v, ok := floatValue(raw)
	if !ok {
		return 0, []Finding{}
	}
	for _, band := range e.rules.BMI {
		if band.matches(v) {
			return band.Score, []Finding{{Severity: band.Severity, Text: band.Text}}
		}
	}
	return 0, []Finding{}
}

// EvaluateSymptoms scores the reported symptoms against the trigger groups.
// Groups are independent and additive; a trigger matches only when it equals
// a full symptom string after lower-casing.
func (e *Engine) EvaluateSymptoms(symptoms []string) (int, []Finding) {
	score := 0
	findings := []Finding{}
	if len(symptoms) == 0 {
		return 0, findings
	}

	reported := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		reported[strings.ToLower(s)] = true
	}

	for _, group := range e.rules.SymptomGroups {
		for _, trigger := range group.Triggers {
			if reported[trigger] {
				score += group.Score
				findings = append(findings, Finding{Severity: group.Severity, Text: group.Text})
				break
			}
		}
	}
	return capScore(score, e.rules.SymptomsCap), findings
}

// EvaluateDemographics scores age (one band at most) and chronic conditions
// (all matching conditions are additive). Gender is accepted for the record
// but does not affect scoring.
func (e *Engine) EvaluateDemographics(age int, _ string, comorbidities []string) (int, []Finding) {
	score := 0
	findings := []Finding{}

	for _, band := range e.rules.AgeBands {
		if band.matches(age) {
			score += band.Score
			findings = append(findings, Finding{Severity: SeverityInfo, Text: band.Text})
			break
		}
	}

	lowered := make([]string, len(comorbidities))
	for i, c := range comorbidities {
		lowered[i] = strings.ToLower(c)
	}
	for _, cw := range e.rules.Comorbidities {
		for _, c := range lowered {
			if strings.Contains(c, cw.Condition) {
				score += cw.Score
				findings = append(findings, Finding{
					Severity: SeverityModerate,
					Text:     fmt.Sprintf("Chronic condition: %s", titleCase(cw.Condition)),
				})
				break
			}
		}
	}
	return capScore(score, e.rules.DemographicsCap), findings
}

// EvaluateLifestyle applies the independent lifestyle checks. Sleep hours
// default to the configured value when missing or unparsable.
func (e *Engine) EvaluateLifestyle(lifestyle map[string]any) (int, []Finding) {
	score := 0
	findings := []Finding{}
	r := e.rules.Lifestyle

	switch stringValue(lifestyle["smoking"]) {
	case "Current":
		score += r.SmokingCurrent.Score
		findings = append(findings, Finding{Severity: r.SmokingCurrent.Severity, Text: r.SmokingCurrent.Text})
	case "Former":
		score += r.SmokingFormer.Score
		findings = append(findings, Finding{Severity: r.SmokingFormer.Severity, Text: r.SmokingFormer.Text})
	}

	if stringValue(lifestyle["activity_level"]) == "Sedentary" {
		score += r.Sedentary.Score
		findings = append(findings, Finding{Severity: r.Sedentary.Severity, Text: r.Sedentary.Text})
	}
	if stringValue(lifestyle["diet_quality"]) == "Poor" {
		score += r.PoorDiet.Score
		findings = append(findings, Finding{Severity: r.PoorDiet.Severity, Text: r.PoorDiet.Text})
	}

	sleep := r.DefaultSleepHours
	if raw, ok := lifestyle["sleep_hours"]; ok {
		if v, ok := floatValue(raw); ok {
			sleep = v
		}
	}
	if sleep < r.MinSleepHours {
		score += r.SleepDeprived.Score
		findings = append(findings, Finding{Severity: r.SleepDeprived.Severity, Text: r.SleepDeprived.Text})
	}

	return capScore(score, e.rules.LifestyleCap), findings
}

// CriticalCombinations checks the cross-domain correlation rules. The alerts
// contribute findings only, never score.
func (e *Engine) CriticalCombinations(vitals map[string]any, symptoms []string) []Finding {
	alerts := []Finding{}
	r := e.rules.Combinations

	reported := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		reported[strings.ToLower(s)] = true
	}

	if raw, ok := vitals[VitalBloodPressure]; ok {
		if sys, dia, ok := parseBloodPressure(raw); ok {
			if sys >= r.CrisisSystolicAtLeast || dia >= r.CrisisDiastolicAtLeast {
				if reported[r.CardiacSymptom] {
					alerts = append(alerts, Finding{Severity: SeverityCritical, Text: r.CardiacText})
				} else {
					alerts = append(alerts, Finding{Severity: SeverityCritical, Text: r.CrisisText})
				}
			}
		}
	}

	spo2Raw, hasSpO2 := vitals[VitalOxygenSat]
	tempRaw, hasTemp := vitals[VitalTemperature]
	if hasSpO2 && hasTemp {
		spo2, okS := floatValue(spo2Raw)
		temp, okT := floatValue(tempRaw)
		if okS && okT && spo2 < float64(r.HypoxemiaBelow) && (temp > r.FeverOver || reported[r.InfectionSymptom]) {
			alerts = append(alerts, Finding{Severity: SeverityCritical, Text: r.InfectionText})
		}
	}

	return alerts
}

// TotalScore sums the capped domain sub-scores and re-caps the total.
// Classification boundaries are inclusive at the lower end: 30 is still LOW
// and 60 is still MODERATE.
func (e *Engine) TotalScore(vitals, bmi, symptoms, demographics, lifestyle int) (int, Level, ContributingFactors) {
	total := capScore(vitals+bmi+symptoms+demographics+lifestyle, e.rules.TotalCap)

	var level Level
	switch {
	case total <= 30:
		level = LevelLow
	case total <= 60:
		level = LevelModerate
	default:
		level = LevelHigh
	}

	return total, level, ContributingFactors{
		Vitals:       vitals,
		BMI:          bmi,
		Symptoms:     symptoms,
		Demographics: demographics,
		Lifestyle:    lifestyle,
	}
}

// explain renders the human-readable summary: the top two vitals findings and
// the top symptom finding as primary drivers, followed by the risk-level
// description.
func (e *Engine) explain(age int, level Level, vitalsFindings, symptomFindings []Finding) string {
	parts := []string{fmt.Sprintf("Based on current patient state (age %d),", age)}

	drivers := []string{}
	for i, f := range vitalsFindings {
		if i >= 2 {
			break
		}
		drivers = append(drivers, f.Text)
	}
	if len(symptomFindings) > 0 {
		drivers = append(drivers, symptomFindings[0].Text)
	}

	if len(drivers) > 0 {
		parts = append(parts, fmt.Sprintf("the primary risk drivers are: %s.", strings.Join(drivers, ", ")))
	} else {
		parts = append(parts, "vital signs and symptoms are within acceptable ranges.")
	}

	parts = append(parts, e.rules.RiskDescriptions[level])
	return strings.Join(parts, " ")
}

func capScore(score, limit int) int {
	if score > limit {
		return limit
	}
	return score
}

// parseBloodPressure accepts a "systolic/diastolic" string. Anything else is
// reported as not ok and skipped by the caller.
func parseBloodPressure(raw any) (int, int, bool) {
	s := stringValue(raw)
	sysPart, diaPart, found := strings.Cut(s, "/")
	if !found {
		return 0, 0, false
	}
	sys, err := strconv.Atoi(strings.TrimSpace(sysPart))
	if err != nil {
		return 0, 0, false
	}
	dia, err := strconv.Atoi(strings.TrimSpace(diaPart))
	if err != nil {
		return 0, 0, false
	}
	return sys, dia, true
}

// floatValue coerces the loosely typed values JSON decoding produces. Numeric
// strings are accepted the way the upstream feeds send them.
func floatValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringValue(raw any) string {
	s, _ := raw.(string)
	return s
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
