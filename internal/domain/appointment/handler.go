package appointment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medsearch/medsearch/internal/platform/auth"
	"github.com/medsearch/medsearch/internal/platform/db"
	"github.com/medsearch/medsearch/pkg/pagination"
)

// DoctorIDResolver maps the authenticated user ID onto the doctor record's
// UUID. Wired to the directory service at startup.
type DoctorIDResolver func(ctx context.Context, userID string) (uuid.UUID, error)

type Handler struct {
	svc           *Service
	resolveDoctor DoctorIDResolver
}

func NewHandler(svc *Service, resolveDoctor DoctorIDResolver) *Handler {
	return &Handler{svc: svc, resolveDoctor: resolveDoctor}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	customer := api.Group("/appointments", auth.RequirePermission("book_appointments"))
	customer.POST("", h.Book)
	customer.GET("/customer", h.ListForCustomer)
	customer.GET("/customer/history", h.CustomerHistory)
	customer.POST("/:id/cancel", h.Cancel)
	customer.POST("/:id/reschedule", h.Reschedule)

	doctor := api.Group("/appointments", auth.RequireRole(auth.RoleDoctor))
	doctor.GET("/doctor", h.ListForDoctor)
	doctor.PUT("/:id", h.UpdateClinical)

	api.PUT("/appointments/:id/status", h.UpdateStatus,
		auth.RequireRole(auth.RoleDoctor, auth.RoleCompanyAdmin))
	api.GET("/appointments/stats/overview", h.Stats,
		auth.RequirePermission("view_reports"))
}

func (h *Handler) Book(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	customerID := auth.UserIDFromContext(c.Request().Context())
	a, err := h.svc.Book(c.Request().Context(), customerID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListForCustomer(c echo.Context) error {
	pg := pagination.FromContext(c)
	customerID := auth.UserIDFromContext(c.Request().Context())
	sched, err := h.svc.ListByCustomer(c.Request().Context(), customerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sched)
}

func (h *Handler) CustomerHistory(c echo.Context) error {
	pg := pagination.FromContext(c)
	customerID := auth.UserIDFromContext(c.Request().Context())
	history, err := h.svc.CustomerHistory(c.Request().Context(), customerID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"history": history})
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	customerID := auth.UserIDFromContext(c.Request().Context())
	a, err := h.svc.Cancel(c.Request().Context(), id, customerID, body.Reason)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Reschedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		ScheduledAt time.Time `json:"scheduledAt"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	customerID := auth.UserIDFromContext(c.Request().Context())
	a, err := h.svc.Reschedule(c.Request().Context(), id, customerID, body.ScheduledAt)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	ctx := c.Request().Context()
	doctorID, err := h.resolveDoctor(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no doctor profile for this account")
	}
	pg := pagination.FromContext(c)
	f := ListFilter{Status: c.QueryParam("status")}
	if d := c.QueryParam("date"); d != "" {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		f.From = day
		f.To = day.AddDate(0, 0, 1)
	}
	items, total, err := h.svc.ListByDoctor(ctx, doctorID, f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateClinical(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var u ClinicalUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	doctorID, err := h.resolveDoctor(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no doctor profile for this account")
	}
	a, err := h.svc.UpdateClinical(ctx, id, doctorID, &u)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
		Force  bool   `json:"force"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// force is an admin correction tool, never available to doctors
	if body.Force && !auth.IsAdmin(auth.RoleFromContext(c.Request().Context())) {
		return echo.NewHTTPError(http.StatusForbidden, "force requires an admin role")
	}
	a, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status, body.Force)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.StatsOverview(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func mapError(err error) error {
	var invalid *ErrInvalidTransition
	switch {
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, db.ErrVersionConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &invalid):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
