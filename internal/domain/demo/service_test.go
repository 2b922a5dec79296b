package demo

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Ayesha-Ali676/medical-assistant/internal/domain/alerts"
	"github.com/Ayesha-Ali676/medical-assistant/internal/domain/risk"
	"github.com/Ayesha-Ali676/medical-assistant/internal/platform/notification"
)

func newTestService(t *testing.T) (*Service, *alerts.Service) {
	t.Helper()
	riskSvc := risk.NewService(risk.NewEngine(risk.DefaultRules()))
	alertSvc := alerts.NewService(alerts.NewStore(),
		&notification.MockEmailSender{}, &notification.MockSMSSender{},
		alerts.Contacts{DoctorEmail: "oncall@clinic.example", FamilyPhone: "+15550100"},
		zerolog.Nop(), nil)
	return NewService(riskSvc, alertSvc), alertSvc
}

func TestPatientsCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	patients := svc.Patients()
	if len(patients) != 4 {
		t.Fatalf("patients = %d, want 4", len(patients))
	}
	if patients[0].PatientID != "demo_critical_001" || patients[3].PatientID != "demo_crisis_004" {
		t.Errorf("unexpected ordering: %s ... %s", patients[0].PatientID, patients[3].PatientID)
	}
}

func TestPatientByID(t *testing.T) {
	svc, _ := newTestService(t)

	p, ok := svc.PatientByID("demo_warning_002")
	if !ok || p.Name != "Sarah Smith" {
		t.Errorf("got %+v ok=%v", p, ok)
	}
	if _, ok := svc.PatientByID("demo_missing"); ok {
		t.Error("unknown id reported found")
	}
}

func TestScenarioRunsLiveAssessment(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Scenario(ScenarioCritical)
	if err != nil {
		t.Fatalf("Scenario: %v", err)
	}
	if !res.Assessment.Success {
		t.Fatalf("assessment failed: %s", res.Assessment.Error)
	}
	a := res.Assessment.Assessment
	if a.Level != risk.LevelHigh {
		t.Errorf("level = %q, want high", a.Level)
	}
	if !a.RequiresImmediateAttention {
		t.Error("critical scenario should require immediate attention")
	}

	res, err = svc.Scenario(ScenarioNormal)
	if err != nil {
		t.Fatalf("Scenario normal: %v", err)
	}
	if got := res.Assessment.Assessment.Level; got != risk.LevelLow {
		t.Errorf("normal level = %q, want low", got)
	}
}

func TestScenarioUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Scenario("apocalyptic"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestTriggerAlertRaisesRealAlert(t *testing.T) {
	svc, alertSvc := newTestService(t)

	res, err := svc.TriggerAlert(context.Background(), ScenarioEmergency)
	if err != nil {
		t.Fatalf("TriggerAlert: %v", err)
	}
	if res.Status != "demo_alert_triggered" || res.Scenario != ScenarioEmergency {
		t.Errorf("result = %+v", res)
	}

	active := alertSvc.Active()
	if len(active) != 1 {
		t.Fatalf("active alerts = %d, want 1", len(active))
	}
	a := active[0]
	if a.Level != alerts.LevelCritical {
		t.Errorf("level = %q", a.Level)
	}
	if a.Vitals == nil || a.Vitals.BloodPressure != "210/125" {
		t.Errorf("vitals = %+v", a.Vitals)
	}
	if a.RiskScore == nil || *a.RiskScore <= 60 {
		t.Errorf("risk score = %v, want > 60", a.RiskScore)
	}
	if !strings.Contains(a.Message, "EMERGENCY") {
		t.Errorf("message = %q", a.Message)
	}
}

func TestTriggerAlertScenarioLevels(t *testing.T) {
	svc, alertSvc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{ScenarioCritical, ScenarioWarning, ScenarioNormal} {
		if _, err := svc.TriggerAlert(ctx, name); err != nil {
			t.Fatalf("TriggerAlert %s: %v", name, err)
		}
	}

	levels := map[alerts.AlertLevel]int{}
	for _, a := range alertSvc.Active() {
		levels[a.Level]++
	}
	if levels[alerts.LevelCritical] != 1 || levels[alerts.LevelWarning] != 1 || levels[alerts.LevelNormal] != 1 {
		t.Errorf("levels = %v", levels)
	}
}

func TestRecordFeedsRiskEngine(t *testing.T) {
	p := Catalog()[ScenarioCritical]
	rec := p.Record()

	vitals, ok := rec["vitals"].(map[string]any)
	if !ok {
		t.Fatal("vitals missing")
	}
	if vitals["bp"] != "180/110" {
		t.Errorf("bp = %v", vitals["bp"])
	}
	syms, ok := rec["symptoms"].([]string)
	if !ok || len(syms) != 3 || syms[0] != "Chest pain" {
		t.Errorf("symptoms = %v", rec["symptoms"])
	}
	if empty := Catalog()[ScenarioNormal].Record(); len(empty["symptoms"].([]string)) != 0 {
		t.Error("empty symptom string should split to no symptoms")
	}
}
