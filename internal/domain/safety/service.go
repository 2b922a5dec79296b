package safety

import (
	"fmt"
	"strconv"
	"strings"
)

// Service runs the clinical safety checks. Like the risk engine it is
// stateless: the interaction table is fixed at construction and never
// mutated.
type Service struct {
	interactions []Interaction
}

func NewService(interactions []Interaction) *Service {
	return &Service{interactions: interactions}
}

// CheckVitals flags vital sign readings that need physician review. Malformed
// values are skipped, never reported as errors.
func (s *Service) CheckVitals(vitals map[string]any) []Alert {
	alerts := []Alert{}

	if raw, ok := vitals["bp"]; ok {
		if sys, dia, ok := parseBloodPressure(raw); ok {
			if sys > 180 || dia > 120 {
				alerts = append(alerts, Alert{
					Severity:  SeverityCritical,
					Parameter: "Blood Pressure",
					Value:     raw,
					Message:   "Hypertensive crisis - Immediate physician review required",
				})
			} else if sys < 90 || dia < 60 {
				alerts = append(alerts, Alert{
					Severity:  SeverityHigh,
					Parameter: "Blood Pressure",
					Value:     raw,
					Message:   "Hypotension detected - Monitor closely",
				})
			}
		}
	}

	if hr, ok := floatValue(vitals["hr"]); ok {
		if hr > 120 {
			alerts = append(alerts, Alert{
				Severity:  SeverityHigh,
				Parameter: "Heart Rate",
				Value:     hr,
				Message:   "Tachycardia - Evaluate for underlying cause",
			})
		} else if hr < 50 {
			alerts = append(alerts, Alert{
				Severity:  SeverityHigh,
				Parameter: "Heart Rate",
				Value:     hr,
				Message:   "Bradycardia - Assess patient status",
			})
		}
	}

	if spo2, ok := floatValue(vitals["spo2"]); ok {
		if spo2 < 90 {
			alerts = append(alerts, Alert{
				Severity:  SeverityCritical,
				Parameter: "SpO2",
				Value:     spo2,
				Message:   "Severe hypoxemia - Immediate intervention required",
			})
		} else if spo2 < 94 {
			alerts = append(alerts, Alert{
				Severity:  SeverityHigh,
				Parameter: "SpO2",
				Value:     spo2,
				Message:   "Hypoxemia - Supplemental oxygen may be needed",
			})
		}
	}

	if temp, ok := floatValue(vitals["temp"]); ok {
		if temp > 38.5 {
			alerts = append(alerts, Alert{
				Severity:  SeverityMedium,
				Parameter: "Temperature",
				Value:     temp,
				Message:   "Fever detected - Evaluate for infection",
			})
		} else if temp < 36.0 {
			alerts = append(alerts, Alert{
				Severity:  SeverityMedium,
				Parameter: "Temperature",
				Value:     temp,
				Message:   "Hypothermia - Assess patient condition",
			})
		}
	}

	return alerts
}

// CheckLabs flags critical lab statuses plus the specific glucose, potassium
// and creatinine thresholds.
func (s *Service) CheckLabs(labs []LabResult) []Alert {
	alerts := []Alert{}

	for _, lab := range labs {
		name := strings.ToLower(lab.TestName)
		status := strings.ToUpper(lab.Status)

		if status == "CRITICAL" || status == "PANIC" {
			alerts = append(alerts, Alert{
				Severity: SeverityCritical,
				Test:     lab.TestName,
				Value:    fmt.Sprintf("%v %s", lab.Value, lab.Unit),
				Message:  "Critical lab value - Immediate physician review required",
			})
		}

		if strings.Contains(name, "glucose") {
			if lab.Value > 400 {
				alerts = append(alerts, Alert{
					Severity: SeverityCritical,
					Test:     "Glucose",
					Value:    lab.Value,
					Message:  "Severe hyperglycemia - Risk of DKA",
				})
			} else if lab.Value < 70 {
				alerts = append(alerts, Alert{
					Severity: SeverityHigh,
					Test:     "Glucose",
					Value:    lab.Value,
					Message:  "Hypoglycemia - Immediate treatment needed",
				})
			}
		}

		if strings.Contains(name, "potassium") || name == "k" {
			if lab.Value > 6.0 {
				alerts = append(alerts, Alert{
					Severity: SeverityCritical,
					Test:     "Potassium",
					Value:    lab.Value,
					Message:  "Severe hyperkalemia - Cardiac risk",
				})
			} else if lab.Value < 3.0 {
				alerts = append(alerts, Alert{
					Severity: SeverityHigh,
					Test:     "Potassium",
					Value:    lab.Value,
					Message:  "Severe hypokalemia - Arrhythmia risk",
				})
			}
		}

		if strings.Contains(name, "creatinine") && lab.Value > 3.0 {
			alerts = append(alerts, Alert{
				Severity: SeverityHigh,
				Test:     "Creatinine",
				Value:    lab.Value,
				Message:  "Severe renal impairment - Adjust medications",
			})
		}
	}

	return alerts
}

// CheckDrugInteractions reports every known pairwise interaction between the
// current medications. Both orderings of a pair are checked.
func (s *Service) CheckDrugInteractions(medications []Medication) []Alert {
	alerts := []Alert{}

	names := make([]string, len(medications))
	for i, med := range medications {
		names[i] = strings.ToLower(med.Name)
	}

	for i, a := range names {
		for _, b := range names[i+1:] {
			if hit, ok := s.lookup(a, b); ok {
				alerts = append(alerts, Alert{
					Severity: hit.Severity,
					Drugs:    fmt.Sprintf("%s + %s", titleCase(a), titleCase(b)),
					Message:  hit.Message,
				})
			}
		}
	}

	return alerts
}

func (s *Service) lookup(a, b string) (Interaction, bool) {
	for _, in := range s.interactions {
		if (in.DrugA == a && in.DrugB == b) || (in.DrugA == b && in.DrugB == a) {
			return in, true
		}
	}
	return Interaction{}, false
}

func parseBloodPressure(raw any) (int, int, bool) {
	s, _ := raw.(string)
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

func floatValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
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

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
