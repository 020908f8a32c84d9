package customer

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medsearch/medsearch/internal/platform/auth"
	"github.com/medsearch/medsearch/internal/platform/db"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/customers", auth.RequirePermission("view_own_profile"))
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/favorites", h.AddFavorite)
	g.DELETE("/favorites/:doctorId", h.RemoveFavorite)
	g.DELETE("/profile", h.Deactivate)
}

// profileResponse wraps the stored profile with its derived completeness
// percent so clients never compute the score themselves.
type profileResponse struct {
	*Customer
	Completeness int `json:"completeness"`
}

func respond(c echo.Context, status int, cust *Customer) error {
	return c.JSON(status, profileResponse{Customer: cust, Completeness: CompletenessScore(cust)})
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	cust, err := h.svc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, cust)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var in Customer
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	cust, err := h.svc.UpsertProfile(c.Request().Context(), userID, &in)
	if err != nil {
		if errors.Is(err, db.ErrVersionConflict) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond(c, http.StatusOK, cust)
}

func (h *Handler) AddFavorite(c echo.Context) error {
	var body struct {
		DoctorID uuid.UUID `json:"doctorId"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.DoctorID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "doctorId is required")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	cust, err := h.svc.AddFavorite(c.Request().Context(), userID, body.DoctorID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"favorites": cust.Favorites})
}

func (h *Handler) RemoveFavorite(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	cust, err := h.svc.RemoveFavorite(c.Request().Context(), userID, doctorID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"favorites": cust.Favorites})
}

func (h *Handler) Deactivate(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Deactivate(c.Request().Context(), userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
