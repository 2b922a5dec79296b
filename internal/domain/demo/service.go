package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ayesha-Ali676/medical-assistant/internal/domain/alerts"
	"github.com/Ayesha-Ali676/medical-assistant/internal/domain/risk"
)

// Service runs demo scenarios through the live assessment and alerting
// pipeline.
type Service struct {
	catalog map[string]ScenarioPatient
	risk    *risk.Service
	alerts  *alerts.Service
}

func NewService(riskSvc *risk.Service, alertSvc *alerts.Service) *Service {
	return &Service{
		catalog: Catalog(),
		risk:    riskSvc,
		alerts:  alertSvc,
	}
}

// Patients returns every demo patient.
func (s *Service) Patients() []ScenarioPatient {
	order := []string{ScenarioCritical, ScenarioWarning, ScenarioNormal, ScenarioEmergency}
	out := make([]ScenarioPatient, 0, len(order))
	for _, name := range order {
		out = append(out, s.catalog[name])
	}
	return out
}

// PatientByID finds a demo patient by its patient_id.
func (s *Service) PatientByID(patientID string) (ScenarioPatient, bool) {
	for _, p := range s.catalog {
		if p.PatientID == patientID {
			return p, true
		}
	}
	return ScenarioPatient{}, false
}

// ScenarioResult pairs a demo patient with a live risk assessment.
type ScenarioResult struct {
	Scenario   string          `json:"scenario"`
	Patient    ScenarioPatient `json:"patient"`
	Assessment risk.Result     `json:"assessment"`
}

// Scenario runs the named scenario's patient through the risk engine.
func (s *Service) Scenario(name string) (*ScenarioResult, error) {
	p, ok := s.catalog[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q not found", name)
	}
	return &ScenarioResult{
		Scenario:   name,
		Patient:    p,
		Assessment: s.risk.GenerateAssessment(p.Record()),
	}, nil
}

var scenarioLevels = map[string]alerts.AlertLevel{
	ScenarioCritical:  alerts.LevelCritical,
	ScenarioWarning:   alerts.LevelWarning,
	ScenarioNormal:    alerts.LevelNormal,
	ScenarioEmergency: alerts.LevelCritical,
}

// TriggerResult is returned from TriggerAlert.
type TriggerResult struct {
	Status   string               `json:"status"`
	Scenario string               `json:"scenario"`
	Alert    *alerts.CreateResult `json:"alert"`
}

// TriggerAlert raises a real emergency alert for the named scenario, carrying
// the live risk score from the assessment engine.
func (s *Service) TriggerAlert(ctx context.Context, name string) (*TriggerResult, error) {
	p, ok := s.catalog[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q not found", name)
	}

	assessment := s.risk.GenerateAssessment(p.Record())
	var score *int
	if assessment.Success && assessment.Assessment != nil {
		v := assessment.Assessment.Score
		score = &v
	}

	res, err := s.alerts.Create(ctx, &alerts.EmergencyAlert{
		PatientID:   p.PatientID,
		PatientName: p.Name,
		Level:       scenarioLevels[name],
		Message:     fmt.Sprintf("Demo %s alert - %s", strings.ToUpper(name), p.Symptoms),
		RiskScore:   score,
		Vitals: &alerts.VitalSigns{
			HeartRate:       p.HeartRate,
			BloodPressure:   p.BloodPressure,
			OxygenLevel:     p.OxygenLevel,
			Temperature:     p.Temperature,
			RespiratoryRate: p.RespiratoryRate,
		},
	})
	if err != nil {
		return nil, err
	}
	return &TriggerResult{
		Status:   "demo_alert_triggered",
		Scenario: name,
		Alert:    res,
	}, nil
}
