package identity

import (
	"errors"
	"net/http"

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
	g := api.Group("/auth")
	g.GET("/me", h.Me)
	g.POST("/role", h.AssignRole)
	g.POST("/role-links/redeem", h.RedeemLink)
	g.POST("/onboarding/complete", h.CompleteOnboarding)

	// minting links is an admin moderation surface
	g.POST("/role-links", h.IssueLink, auth.RequirePermission("moderate_doctors"))
}

// meResponse is the post-login bootstrap payload: the stored record plus
// where the client should navigate next.
type meResponse struct {
	*Record
	RedirectPath string `json:"redirectPath"`
}

func (h *Handler) Me(c echo.Context) error {
	ident := auth.IdentityFromContext(c.Request().Context())
	if ident == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	rec, err := h.svc.Me(c.Request().Context(), ident.UserID, ident.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meResponse{Record: rec, RedirectPath: auth.RedirectPath(rec.Resolution())})
}

func (h *Handler) AssignRole(c echo.Context) error {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ident := auth.IdentityFromContext(c.Request().Context())
	if ident == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	rec, err := h.svc.AssignRole(c.Request().Context(), ident.UserID, ident.Email, auth.Role(body.Role))
	if err != nil {
		return mapAssignError(err)
	}
	return c.JSON(http.StatusOK, meResponse{Record: rec, RedirectPath: auth.RedirectPath(rec.Resolution())})
}

func (h *Handler) RedeemLink(c echo.Context) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}
	ident := auth.IdentityFromContext(c.Request().Context())
	if ident == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	rec, err := h.svc.RedeemLink(c.Request().Context(), ident.UserID, ident.Email, body.Token)
	if err != nil {
		return mapAssignError(err)
	}
	return c.JSON(http.StatusOK, meResponse{Record: rec, RedirectPath: auth.RedirectPath(rec.Resolution())})
}

func (h *Handler) IssueLink(c echo.Context) error {
	var body struct {
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	url, err := h.svc.IssueLink(auth.Role(body.Role), body.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}

func (h *Handler) CompleteOnboarding(c echo.Context) error {
	ident := auth.IdentityFromContext(c.Request().Context())
	if ident == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	rec, err := h.svc.CompleteOnboarding(c.Request().Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "identity not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, meResponse{Record: rec, RedirectPath: auth.RedirectPath(rec.Resolution())})
}

func mapAssignError(err error) error {
	switch {
	case errors.Is(err, ErrRoleTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrVersionConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
