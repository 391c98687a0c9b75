package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/lock"
	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Availability is readable by every authenticated principal.
	api.GET("/availability/day", h.GetDayAvailability)
	api.GET("/availability/month", h.GetMonthAvailability)

	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)

	book := api.Group("", auth.RequireRole(auth.RolePatient, auth.RoleReceptionist))
	book.POST("/appointments", h.CreateAppointment)
	book.POST("/appointments/:id/cancel", h.CancelAppointment)
	book.POST("/appointments/:id/reschedule", h.RescheduleAppointment)
}

// mapError translates domain errors into transport errors: validation 400,
// missing resources 404, booking conflicts 409, everything else 500.
func mapError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, directory.ErrDoctorNotFound),
		errors.Is(err, directory.ErrScheduleNotFound),
		errors.Is(err, directory.ErrServiceNotFound),
		errors.Is(err, directory.ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrDuplicateSameDay),
		errors.Is(err, ErrNotCancellable),
		errors.Is(err, lock.ErrNotAcquired):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func requirePrincipal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return p, nil
}

// -- Availability --

func (h *Handler) GetDayAvailability(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	serviceID, err := uuid.Parse(c.QueryParam("service_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service_id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	result, err := h.svc.DayAvailability(c.Request().Context(), doctorID, serviceID, date)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetMonthAvailability(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	serviceID, err := uuid.Parse(c.QueryParam("service_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service_id")
	}
	year, month, err := ParseMonth(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.MonthAvailability(c.Request().Context(), doctorID, serviceID, year, month)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// -- Booking --

type createAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	ServiceID uuid.UUID `json:"service_id"`
	StartTime time.Time `json:"start_time"`
	Notes     string    `json:"notes"`
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Patients book for themselves regardless of what the body claims.
	if principal.IsPatient() {
		req.PatientID = principal.ID
	}

	appt, err := h.svc.Book(c.Request().Context(), BookingRequest{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, appt)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	appt, err := h.svc.Cancel(c.Request().Context(), id, principal)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

type rescheduleRequest struct {
	StartTime time.Time `json:"start_time"`
	Notes     string    `json:"notes"`
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.Reschedule(c.Request().Context(), id, req.StartTime, req.Notes, principal)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

// -- Reads --

func (h *Handler) GetAppointment(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	appt, err := h.svc.GetAppointment(c.Request().Context(), id, principal)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	// Patients always get their own list.
	if principal.IsPatient() {
		items, total, err := h.svc.ListPatientAppointments(ctx, principal.ID, pg.Limit, pg.Offset)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}

	if raw := c.QueryParam("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		items, total, err := h.svc.ListPatientAppointments(ctx, patientID, pg.Limit, pg.Offset)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}

	raw := c.QueryParam("doctor_id")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id or patient_id is required")
	}
	doctorID, err := uuid.Parse(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	items, total, err := h.svc.ListDoctorAppointments(ctx, doctorID, pg.Limit, pg.Offset)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
