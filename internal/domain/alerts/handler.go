package alerts

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler exposes the emergency alert HTTP API.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/emergency-alerts", h.CreateAlert)
	api.POST("/emergency-sos", h.SOS)
	api.GET("/alerts/active", h.ActiveAlerts)
	api.GET("/alerts/:patient_id", h.PatientAlerts)
	api.POST("/alerts/:id/resolve", h.ResolveAlert)
}

type createAlertRequest struct {
	PatientID   string     `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	AlertLevel  AlertLevel `json:"alert_level"`
	Message     string     `json:"message"`

	HeartRate       *int     `json:"heart_rate,omitempty"`
	BloodPressure   *string  `json:"blood_pressure,omitempty"`
	OxygenLevel     *int     `json:"oxygen_level,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	RespiratoryRate *int     `json:"respiratory_rate,omitempty"`
	RiskScore       *int     `json:"risk_score,omitempty"`
}

func (r *createAlertRequest) vitals() *VitalSigns {
	if r.HeartRate == nil && r.BloodPressure == nil && r.OxygenLevel == nil &&
		r.Temperature == nil && r.RespiratoryRate == nil {
		return nil
	}
	v := &VitalSigns{
		HeartRate:       80,
		BloodPressure:   "120/80",
		OxygenLevel:     98,
		Temperature:     37.0,
		RespiratoryRate: 16,
	}
	if r.HeartRate != nil {
		v.HeartRate = *r.HeartRate
	}
	if r.BloodPressure != nil {
		v.BloodPressure = *r.BloodPressure
	}
	if r.OxygenLevel != nil {
		v.OxygenLevel = *r.OxygenLevel
	}
	if r.Temperature != nil {
		v.Temperature = *r.Temperature
	}
	if r.RespiratoryRate != nil {
		v.RespiratoryRate = *r.RespiratoryRate
	}
	return v
}

func (h *Handler) CreateAlert(c echo.Context) error {
	var req createAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	alert := &EmergencyAlert{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Level:       req.AlertLevel,
		Message:     req.Message,
		Vitals:      req.vitals(),
		RiskScore:   req.RiskScore,
	}
	res, err := h.svc.Create(c.Request().Context(), alert)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}

type sosRequest struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
}

func (h *Handler) SOS(c echo.Context) error {
	var req sosRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.SOS(c.Request().Context(), req.PatientID, req.PatientName)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) ActiveAlerts(c echo.Context) error {
	active := h.svc.Active()
	critical := 0
	for _, a := range active {
		if a.Level == LevelCritical {
			critical++
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"active_alerts":  active,
		"total_active":   len(active),
		"critical_count": critical,
	})
}

func (h *Handler) PatientAlerts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ForPatient(c.Param("patient_id")))
}

func (h *Handler) ResolveAlert(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}
	if !h.svc.Resolve(id) {
		return echo.NewHTTPError(http.StatusNotFound, "alert not found")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "alert_resolved",
		"alert_id": id.String(),
	})
}
