// Package demo ships pre-configured patient scenarios for exercising the
// assessment and alerting pipeline end to end without real patient data.
package demo

import "strings"

// ScenarioPatient is a canned patient used by the demo endpoints.
type ScenarioPatient struct {
	PatientID       string   `json:"patient_id"`
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	HeartRate       int      `json:"heart_rate"`
	BloodPressure   string   `json:"blood_pressure"`
	OxygenLevel     int      `json:"oxygen_level"`
	Temperature     float64  `json:"temperature"`
	RespiratoryRate int      `json:"respiratory_rate"`
	Symptoms        string   `json:"symptoms"`
	MedicalHistory  string   `json:"medical_history"`
	Medications     []string `json:"current_medications"`
	Status          string   `json:"status"`
}

// Scenario names accepted by the demo endpoints.
const (
	ScenarioCritical  = "critical"
	ScenarioWarning   = "warning"
	ScenarioNormal    = "normal"
	ScenarioEmergency = "emergency"
)

// Catalog returns the demo patients keyed by scenario name.
func Catalog() map[string]ScenarioPatient {
	return map[string]ScenarioPatient{
		ScenarioCritical: {
			PatientID:       "demo_critical_001",
			Name:            "John Doe",
			Age:             58,
			Gender:          "Male",
			HeartRate:       128,
			BloodPressure:   "180/110",
			OxygenLevel:     88,
			Temperature:     38.5,
			RespiratoryRate: 24,
			Symptoms:        "Chest pain, shortness of breath, dizziness",
			MedicalHistory:  "Hypertension, Diabetes Type 2",
			Medications:     []string{"Lisinopril", "Metformin"},
			Status:          "CRITICAL",
		},
		ScenarioWarning: {
			PatientID:       "demo_warning_002",
			Name:            "Sarah Smith",
			Age:             65,
			Gender:          "Female",
			HeartRate:       115,
			BloodPressure:   "155/95",
			OxygenLevel:     94,
			Temperature:     37.8,
			RespiratoryRate: 20,
			Symptoms:        "Fatigue, mild shortness of breath",
			MedicalHistory:  "Heart disease, Atrial Fibrillation",
			Medications:     []string{"Warfarin", "Furosemide", "Digoxin"},
			Status:          "WARNING",
		},
		ScenarioNormal: {
			PatientID:       "demo_normal_003",
			Name:            "Michael Johnson",
			Age:             45,
			Gender:          "Male",
			HeartRate:       72,
			BloodPressure:   "120/78",
			OxygenLevel:     98,
			Temperature:     37.0,
			RespiratoryRate: 16,
			Symptoms:        "",
			MedicalHistory:  "Seasonal allergies",
			Medications:     []string{"Cetirizine"},
			Status:          "NORMAL",
		},
		ScenarioEmergency: {
			PatientID:       "demo_crisis_004",
			Name:            "Robert Williams",
			Age:             72,
			Gender:          "Male",
			HeartRate:       145,
			BloodPressure:   "210/125",
			OxygenLevel:     82,
			Temperature:     39.2,
			RespiratoryRate: 32,
			Symptoms:        "Severe chest pain, difficulty breathing, confusion",
			MedicalHistory:  "Heart disease, Hypertension",
			Medications:     []string{"Aspirin", "Atorvastatin", "Metoprolol"},
			Status:          "EMERGENCY",
		},
	}
}

// Record flattens the demo patient into the loosely-typed map consumed by the
// assessment pipeline.
func (p ScenarioPatient) Record() map[string]any {
	return map[string]any{
		"age":    p.Age,
		"gender": p.Gender,
		"vitals": map[string]any{
			"bp":   p.BloodPressure,
			"hr":   p.HeartRate,
			"spo2": p.OxygenLevel,
			"temp": p.Temperature,
			"rr":   p.RespiratoryRate,
		},
		"symptoms":        splitList(p.Symptoms),
		"medical_history": splitList(p.MedicalHistory),
	}
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
