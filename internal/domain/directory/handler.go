package directory

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medsearch/medsearch/internal/platform/auth"
	"github.com/medsearch/medsearch/internal/platform/db"
	"github.com/medsearch/medsearch/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints — any signed-in role can browse the directory
	read := api.Group("", auth.RequireRole(auth.RoleCustomer, auth.RoleDoctor, auth.RoleCompanyAdmin))
	read.GET("/doctors", h.ListDoctors)
	read.GET("/doctors/search", h.SearchDoctors)
	read.GET("/doctors/:id", h.GetDoctor)
	read.GET("/specialties", h.ListSpecialties)

	// Stats are an admin reporting surface
	api.GET("/doctors/stats/overview", h.DoctorStats, auth.RequirePermission("view_reports"))

	// Moderation endpoints
	doctorWrite := api.Group("", auth.RequirePermission("moderate_doctors"))
	doctorWrite.POST("/doctors", h.CreateDoctor)
	doctorWrite.PUT("/doctors/:id", h.UpdateDoctor)

	specialtyWrite := api.Group("", auth.RequirePermission("manage_specialties"))
	specialtyWrite.POST("/specialties", h.CreateSpecialty)
	specialtyWrite.PUT("/specialties/:id", h.UpdateSpecialty)
}

// -- Doctor Handlers --

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)

	maxFee, _ := strconv.Atoi(c.QueryParam("maxFee"))
	f := ListFilter{
		Status:    c.QueryParam("status"),
		Specialty: c.QueryParam("specialty"),
		City:      c.QueryParam("city"),
		MaxFee:    maxFee,
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	items, total, err := h.svc.ListDoctors(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// SearchDoctors is the per-keystroke search surface: coarse SQL narrowing
// plus the full in-memory stage pipeline.
func (h *Handler) SearchDoctors(c echo.Context) error {
	minRating, _ := strconv.ParseFloat(c.QueryParam("minRating"), 64)
	maxPrice, _ := strconv.Atoi(c.QueryParam("maxPrice"))
	q := Query{
		Text:      c.QueryParam("q"),
		Location:  c.QueryParam("location"),
		Specialty: c.QueryParam("specialty"),
		MinRating: minRating,
		MaxPrice:  maxPrice,
		SortBy:    SortKey(c.QueryParam("sortBy")),
	}
	items, err := h.svc.SearchDoctors(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"doctors": items})
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.UpdateDoctor(c.Request().Context(), &d); err != nil {
		if err == db.ErrVersionConflict {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DoctorStats(c echo.Context) error {
	stats, err := h.svc.DoctorStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

// -- Specialty Handlers --

func (h *Handler) ListSpecialties(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	items, err := h.svc.ListSpecialties(c.Request().Context(), activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"specialties": items})
}

func (h *Handler) CreateSpecialty(c echo.Context) error {
	var sp Specialty
	if err := c.Bind(&sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateSpecialty(c.Request().Context(), &sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sp)
}

func (h *Handler) UpdateSpecialty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sp Specialty
	if err := c.Bind(&sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sp.ID = id
	if err := h.svc.UpdateSpecialty(c.Request().Context(), &sp); err != nil {
		if err == db.ErrVersionConflict {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sp)
}
