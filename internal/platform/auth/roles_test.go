package auth

import "testing"

func TestResolveDisplayRole_ProviderPartitionWins(t *testing.T) {
	app := map[string]interface{}{"role": "doctor"}
	user := map[string]interface{}{"role": "customer"}

	res := ResolveDisplayRole(app, user)
	if res.Role != RoleDoctor {
		t.Errorf("expected provider role to win, got %s", res.Role)
	}
	if !res.HasRole {
		t.Error("expected HasRole true")
	}
}

func TestResolveDisplayRole_FallsBackToUserPartition(t *testing.T) {
	user := map[string]interface{}{"role": "customer", "onboarding_completed": true}

	res := ResolveDisplayRole(nil, user)
	if res.Role != RoleCustomer {
		t.Errorf("expected fallback to user role, got %s", res.Role)
	}
	if !res.OnboardingCompleted {
		t.Error("expected onboarding flag from user partition")
	}
}

func TestResolveRole_IgnoresUserPartition(t *testing.T) {
	// The authoritative resolver must not see user-writable metadata at all;
	// its signature only accepts the provider partition.
	res := ResolveRole(nil)
	if res.HasRole {
		t.Error("expected no role from empty provider partition")
	}
	if res.Role != "" {
		t.Errorf("expected empty role, got %q", res.Role)
	}
}

func TestResolveRole_EmptyBag(t *testing.T) {
	res := ResolveRole(map[string]interface{}{})
	if res.HasRole {
		t.Error("expected HasRole false for empty bag")
	}
	for _, action := range []string{"view_doctors", "book_appointments", "moderate_doctors", "anything"} {
		if HasPermission(res.Role, action) {
			t.Errorf("expected no permissions without a role, but %q was granted", action)
		}
	}
}

func TestHasPermission_Table(t *testing.T) {
	tests := []struct {
		role   Role
		action string
		want   bool
	}{
		{RoleCustomer, "view_doctors", true},
		{RoleCustomer, "book_appointments", true},
		{RoleCustomer, "manage_specialties", false},
		{RoleDoctor, "view_patient_info", true},
		{RoleDoctor, "manage_availability", true},
		{RoleDoctor, "book_appointments", false},
		{RoleCompanyAdmin, "moderate_doctors", true},
		{RoleCompanyAdmin, "view_all_appointments", true},
		{RoleCompanyAdmin, "view_patient_info", false},
		{Role("intruder"), "view_doctors", false},
		{Role(""), "view_doctors", false},
	}
	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.action); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestHasPermission_SuperAdminWildcard(t *testing.T) {
	actions := []string{
		"view_doctors", "book_appointments", "moderate_doctors",
		"manage_specialties", "view_all_appointments",
		"made_up_action", "delete_everything", "",
	}
	for _, action := range actions {
		if !HasPermission(RoleSuperAdmin, action) {
			t.Errorf("expected super_admin to match action %q", action)
		}
	}
}

func TestRedirectPath(t *testing.T) {
	tests := []struct {
		name string
		res  Resolution
		want string
	}{
		{"no role", Resolution{}, "/onboarding"},
		{"customer onboarding", Resolution{Role: RoleCustomer, HasRole: true}, "/onboarding/customer"},
		{"doctor onboarding", Resolution{Role: RoleDoctor, HasRole: true}, "/onboarding/doctor"},
		{"customer done", Resolution{Role: RoleCustomer, HasRole: true, OnboardingCompleted: true}, "/dashboard/patient"},
		{"doctor done", Resolution{Role: RoleDoctor, HasRole: true, OnboardingCompleted: true}, "/dashboard/doctor"},
		{"company admin", Resolution{Role: RoleCompanyAdmin, HasRole: true, OnboardingCompleted: true}, "/dashboard/admin"},
		{"super admin", Resolution{Role: RoleSuperAdmin, HasRole: true, OnboardingCompleted: true}, "/dashboard/admin"},
		{"unknown role", Resolution{Role: Role("ghost"), HasRole: true, OnboardingCompleted: true}, "/onboarding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedirectPath(tt.res); got != tt.want {
				t.Errorf("RedirectPath(%+v) = %q, want %q", tt.res, got, tt.want)
			}
		})
	}
}

func TestKnownRole(t *testing.T) {
	for _, r := range []Role{RoleCustomer, RoleDoctor, RoleCompanyAdmin, RoleSuperAdmin} {
		if !KnownRole(r) {
			t.Errorf("expected %s to be known", r)
		}
	}
	if KnownRole(Role("admin")) {
		t.Error("expected 'admin' to be unknown")
	}
}
