package demo

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the demo scenario HTTP API.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/demo/patients", h.Patients)
	api.GET("/demo/patients/:patient_id", h.Patient)
	api.GET("/demo/scenarios/:name", h.Scenario)
	api.POST("/demo/scenarios/:name/alert", h.TriggerAlert)
}

func (h *Handler) Patients(c echo.Context) error {
	patients := h.svc.Patients()
	return c.JSON(http.StatusOK, map[string]any{
		"patients": patients,
		"total":    len(patients),
	})
}

func (h *Handler) Patient(c echo.Context) error {
	p, ok := h.svc.PatientByID(c.Param("patient_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "demo patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Scenario(c echo.Context) error {
	res, err := h.svc.Scenario(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) TriggerAlert(c echo.Context) error {
	res, err := h.svc.TriggerAlert(c.Request().Context(), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}
