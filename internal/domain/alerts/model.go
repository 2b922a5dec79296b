package alerts

import (
	"time"

	"github.com/google/uuid"
)

// AlertLevel classifies the urgency of an emergency alert.
type AlertLevel string

const (
	LevelCritical AlertLevel = "CRITICAL"
	LevelWarning  AlertLevel = "WARNING"
	LevelInfo     AlertLevel = "INFO"
	LevelNormal   AlertLevel = "NORMAL"
)

var validAlertLevels = map[AlertLevel]bool{
	LevelCritical: true,
	LevelWarning:  true,
	LevelInfo:     true,
	LevelNormal:   true,
}

// Valid reports whether the level is one of the known alert levels.
func (l AlertLevel) Valid() bool { return validAlertLevels[l] }

// UrgencyText returns the human-readable urgency message for the level.
func (l AlertLevel) UrgencyText() string {
	switch l {
	case LevelCritical:
		return "CRITICAL - Immediate Medical Evaluation Required"
	case LevelWarning:
		return "WARNING - Urgent Physician Attention Needed"
	case LevelInfo:
		return "INFO - Monitor Patient Closely"
	case LevelNormal:
		return "NORMAL - Continue Routine Care"
	default:
		return "Status Unknown"
	}
}

// SeverityColor returns the display color code for the level.
func (l AlertLevel) SeverityColor() string {
	switch l {
	case LevelCritical:
		return "#ef4444"
	case LevelWarning:
		return "#f59e0b"
	case LevelInfo:
		return "#3b82f6"
	case LevelNormal:
		return "#10b981"
	default:
		return "#6b7280"
	}
}

// VitalSigns is an optional snapshot of the patient's vitals at alert time.
type VitalSigns struct {
	HeartRate       int     `json:"heart_rate"`
	BloodPressure   string  `json:"blood_pressure"`
	OxygenLevel     int     `json:"oxygen_level"`
	Temperature     float64 `json:"temperature"`
	RespiratoryRate int     `json:"respiratory_rate"`
}

// EmergencyAlert is a single patient alert.
type EmergencyAlert struct {
	ID          uuid.UUID   `json:"alert_id"`
	PatientID   string      `json:"patient_id"`
	PatientName string      `json:"patient_name"`
	Level       AlertLevel  `json:"alert_level"`
	Message     string      `json:"message"`
	Vitals      *VitalSigns `json:"vitals,omitempty"`
	RiskScore   *int        `json:"risk_score,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Resolved    bool        `json:"resolved"`
	ResolvedAt  *time.Time  `json:"resolved_at,omitempty"`
}
