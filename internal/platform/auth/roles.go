package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Role is one of four mutually exclusive capability classes. An identity
// holds exactly one role at a time; it is absent until explicitly assigned.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleDoctor       Role = "doctor"
	RoleCompanyAdmin Role = "company_admin"
	RoleSuperAdmin   Role = "super_admin"
)

// KnownRole reports whether r is one of the defined roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleDoctor, RoleCompanyAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r carries administrative capabilities.
func IsAdmin(r Role) bool {
	return r == RoleCompanyAdmin || r == RoleSuperAdmin
}

// Resolution is the outcome of resolving an identity's role from its
// metadata bag.
type Resolution struct {
	Role                Role `json:"role"`
	HasRole             bool `json:"has_role"`
	OnboardingCompleted bool `json:"onboarding_completed"`
}

// ResolveRole derives the authoritative role from the provider-controlled
// metadata partition only. The user-writable partition is deliberately not
// consulted: a user must not be able to grant themselves a role by editing
// their own metadata.
func ResolveRole(app map[string]interface{}) Resolution {
	return resolve(metaString(app, "role"), metaBool(app, "onboarding_completed"))
}

// ResolveDisplayRole derives a role for redirect/UX purposes, falling back to
// the user-writable partition when the provider-controlled one has no role.
// The result must never feed a permission check.
func ResolveDisplayRole(app, user map[string]interface{}) Resolution {
	role := metaString(app, "role")
	onboarded := metaBool(app, "onboarding_completed")
	if role == "" {
		role = metaString(user, "role")
		if !onboarded {
			onboarded = metaBool(user, "onboarding_completed")
		}
	}
	return resolve(role, onboarded)
}

func resolve(role string, onboarded bool) Resolution {
	return Resolution{
		Role:                Role(role),
		HasRole:             role != "",
		OnboardingCompleted: onboarded,
	}
}

func metaString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func metaBool(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

// permissionTable is the static capability set per role. super_admin is not
// listed: it matches any action.
var permissionTable = map[Role]map[string]bool{
	RoleCustomer: {
		"view_doctors":          true,
		"book_appointments":     true,
		"view_own_appointments": true,
		"rate_doctors":          true,
		"view_own_profile":      true,
	},
	RoleDoctor: {
		"view_own_appointments": true,
		"manage_availability":   true,
		"view_patient_info":     true,
		"respond_to_reviews":    true,
		"manage_own_profile":    true,
	},
	RoleCompanyAdmin: {
		"moderate_doctors":      true,
		"moderate_customers":    true,
		"view_reports":          true,
		"manage_specialties":    true,
		"view_all_appointments": true,
	},
}

// HasPermission consults the static permission table. super_admin matches
// any action; an unknown or missing role matches none.
func HasPermission(role Role, action string) bool {
	if role == RoleSuperAdmin {
		return true
	}
	return permissionTable[role][action]
}

// Dashboard and onboarding paths per role.
const (
	PathOnboarding       = "/onboarding"
	PathPatientDashboard = "/dashboard/patient"
	PathDoctorDashboard  = "/dashboard/doctor"
	PathAdminDashboard   = "/dashboard/admin"
)

// RedirectPath derives where a freshly authenticated client should land:
// no role yet means onboarding, an unfinished onboarding means the
// role-scoped onboarding step, otherwise the role's dashboard.
func RedirectPath(res Resolution) string {
	if !res.HasRole {
		return PathOnboarding
	}
	if !res.OnboardingCompleted {
		return PathOnboarding + "/" + string(res.Role)
	}
	switch res.Role {
	case RoleCustomer:
		return PathPatientDashboard
	case RoleDoctor:
		return PathDoctorDashboard
	case RoleCompanyAdmin, RoleSuperAdmin:
		return PathAdminDashboard
	}
	return PathOnboarding
}

// RequireRole returns middleware that checks if the caller holds one of the
// given roles. super_admin always passes.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			have := RoleFromContext(c.Request().Context())
			if have == RoleSuperAdmin {
				return next(c)
			}
			for _, required := range roles {
				if have == required {
					return next(c)
				}
			}
			names := make([]string, len(roles))
			for i, r := range roles {
				names[i] = string(r)
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(names, " or ")))
		}
	}
}

// RequirePermission returns middleware that checks the caller's role against
// the permission table for the given action.
func RequirePermission(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if HasPermission(RoleFromContext(c.Request().Context()), action) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required permission: %s", action))
		}
	}
}
