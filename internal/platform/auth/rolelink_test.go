package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func TestLinkIssuer_RoundTrip(t *testing.T) {
	li := NewLinkIssuer(testSigningKey, "https://medsearch.example/role-assignment", time.Hour)

	link, err := li.Issue(RoleDoctor, "doc@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("issued link is not a URL: %v", err)
	}
	if u.Query().Get("role") != "doctor" {
		t.Errorf("expected role query param, got %q", u.Query().Get("role"))
	}

	role, email, err := li.Redeem(u.Query().Get("token"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleDoctor {
		t.Errorf("expected doctor, got %s", role)
	}
	if email != "doc@example.com" {
		t.Errorf("expected email preserved, got %q", email)
	}
}

func TestLinkIssuer_RejectsUnknownRole(t *testing.T) {
	li := NewLinkIssuer(testSigningKey, "https://medsearch.example/role-assignment", time.Hour)
	if _, err := li.Issue(Role("root"), ""); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestLinkIssuer_RejectsExpiredToken(t *testing.T) {
	li := NewLinkIssuer(testSigningKey, "https://medsearch.example/role-assignment", -time.Minute)

	link, err := li.Issue(RoleCompanyAdmin, "admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := url.Parse(link)

	if _, _, err := li.Redeem(u.Query().Get("token")); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestLinkIssuer_RejectsTamperedToken(t *testing.T) {
	li := NewLinkIssuer(testSigningKey, "https://medsearch.example/role-assignment", time.Hour)

	link, _ := li.Issue(RoleDoctor, "doc@example.com")
	u, _ := url.Parse(link)
	token := u.Query().Get("token")

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	if _, _, err := li.Redeem(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestLinkIssuer_RejectsTokenFromOtherKey(t *testing.T) {
	li := NewLinkIssuer(testSigningKey, "https://medsearch.example/role-assignment", time.Hour)
	other := NewLinkIssuer([]byte("ffffffffffffffffffffffffffffffff"), "https://medsearch.example/role-assignment", time.Hour)

	link, _ := other.Issue(RoleSuperAdmin, "evil@example.com")
	u, _ := url.Parse(link)

	if _, _, err := li.Redeem(u.Query().Get("token")); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}
