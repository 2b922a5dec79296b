package alerts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ayesha-Ali676/medical-assistant/internal/platform/notification"
)

// Contacts holds the notification targets for alert fan-out.
type Contacts struct {
	DoctorEmail string
	FamilyPhone string
}

// Service creates, resolves, and queries emergency alerts and fans out
// notifications to the care team.
type Service struct {
	store     *Store
	templates *notification.TemplateEngine
	email     notification.EmailSender
	sms       notification.SMSSender
	contacts  Contacts
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService wires an alert service. A nil clock defaults to time.Now.
func NewService(store *Store, email notification.EmailSender, sms notification.SMSSender, contacts Contacts, logger zerolog.Logger, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store:     store,
		templates: notification.NewTemplateEngine(),
		email:     email,
		sms:       sms,
		contacts:  contacts,
		logger:    logger,
		now:       clock,
	}
}

// CreateResult is returned from Create and SOS.
type CreateResult struct {
	AlertID       uuid.UUID `json:"alert_id"`
	Status        string    `json:"status"`
	Urgency       string    `json:"urgency"`
	SeverityColor string    `json:"severity_color"`
	Timestamp     time.Time `json:"timestamp"`
	Message       string    `json:"message,omitempty"`
}

// Create validates and stores the alert, then notifies the doctor and, for
// CRITICAL and WARNING alerts, the family. Notification failures are logged
// but never fail alert creation.
func (s *Service) Create(ctx context.Context, a *EmergencyAlert) (*CreateResult, error) {
	if a.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if a.Message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if !a.Level.Valid() {
		return nil, fmt.Errorf("invalid alert level %q", a.Level)
	}

	a.ID = uuid.New()
	a.CreatedAt = s.now()
	a.Resolved = false
	s.store.Add(a)

	if a.Level == LevelCritical {
		ev := s.logger.Warn().
			Str("patient_id", a.PatientID).
			Str("patient_name", a.PatientName).
			Str("message", a.Message)
		if a.RiskScore != nil {
			ev = ev.Int("risk_score", *a.RiskScore)
		}
		ev.Msg("critical alert triggered")
	}

	s.notifyDoctor(ctx, a)
	if a.Level == LevelCritical || a.Level == LevelWarning {
		s.notifyFamily(ctx, a)
	}

	return &CreateResult{
		AlertID:       a.ID,
		Status:        "alert_created",
		Urgency:       a.Level.UrgencyText(),
		SeverityColor: a.Level.SeverityColor(),
		Timestamp:     a.CreatedAt,
	}, nil
}

// SOS raises the highest-priority alert for a patient pressing the emergency
// button.
func (s *Service) SOS(ctx context.Context, patientID, patientName string) (*CreateResult, error) {
	score := 100
	res, err := s.Create(ctx, &EmergencyAlert{
		PatientID:   patientID,
		PatientName: patientName,
		Level:       LevelCritical,
		Message:     fmt.Sprintf("EMERGENCY SOS ACTIVATED by patient %s", patientName),
		RiskScore:   &score,
	})
	if err != nil {
		return nil, err
	}
	res.Message = "EMERGENCY SERVICES NOTIFIED"
	return res, nil
}

// Resolve marks an active alert resolved. It returns false when the alert is
// unknown or already resolved.
func (s *Service) Resolve(id uuid.UUID) bool {
	return s.store.Resolve(id, s.now())
}

// PatientAlerts groups a patient's alert history by level.
type PatientAlerts struct {
	PatientID      string           `json:"patient_id"`
	CriticalAlerts []EmergencyAlert `json:"critical_alerts"`
	WarningAlerts  []EmergencyAlert `json:"warning_alerts"`
	InfoAlerts     []EmergencyAlert `json:"info_alerts"`
	TotalAlerts    int              `json:"total_alerts"`
	ActiveCritical int              `json:"active_critical"`
}

// ForPatient returns the patient's alerts bucketed by level.
func (s *Service) ForPatient(patientID string) *PatientAlerts {
	out := &PatientAlerts{
		PatientID:      patientID,
		CriticalAlerts: []EmergencyAlert{},
		WarningAlerts:  []EmergencyAlert{},
		InfoAlerts:     []EmergencyAlert{},
	}
	for _, a := range s.store.ByPatient(patientID) {
		out.TotalAlerts++
		switch a.Level {
		case LevelCritical:
			out.CriticalAlerts = append(out.CriticalAlerts, a)
			if !a.Resolved {
				out.ActiveCritical++
			}
		case LevelWarning:
			out.WarningAlerts = append(out.WarningAlerts, a)
		case LevelInfo:
			out.InfoAlerts = append(out.InfoAlerts, a)
		}
	}
	return out
}

// Active returns snapshots of all unresolved alerts across patients.
func (s *Service) Active() []EmergencyAlert {
	return s.store.Active()
}

func (s *Service) notifyDoctor(ctx context.Context, a *EmergencyAlert) {
	if s.email == nil || s.contacts.DoctorEmail == "" {
		return
	}
	subject, body, err := s.templates.Render(notification.TemplateDoctorAlert, s.templateData(a))
	if err == nil {
		err = s.email.SendEmail(ctx, s.contacts.DoctorEmail, subject, body)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", a.PatientID).Msg("doctor notification failed")
	}
}

func (s *Service) notifyFamily(ctx context.Context, a *EmergencyAlert) {
	if s.sms == nil || s.contacts.FamilyPhone == "" {
		return
	}
	_, body, err := s.templates.Render(notification.TemplateFamilyAlert, s.templateData(a))
	if err == nil {
		err = s.sms.SendSMS(ctx, s.contacts.FamilyPhone, body)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", a.PatientID).Msg("family notification failed")
	}
}

func (s *Service) templateData(a *EmergencyAlert) map[string]string {
	data := map[string]string{
		"patient_id":   a.PatientID,
		"patient_name": a.PatientName,
		"level":        string(a.Level),
		"message":      a.Message,
		"risk_score":   "n/a",
	}
	if a.RiskScore != nil {
		data["risk_score"] = strconv.Itoa(*a.RiskScore)
	}
	return data
}
