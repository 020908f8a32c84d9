package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/medsearch/medsearch/internal/platform/auth"
	"github.com/medsearch/medsearch/internal/platform/db"
)

// ErrRoleTaken marks a second role assignment for an identity that already
// holds one. An identity holds exactly one role for its lifetime.
var ErrRoleTaken = fmt.Errorf("identity already holds a role")

// selfAssignable lists the roles a user may pick during onboarding. Admin
// roles are granted only through signed links.
var selfAssignable = map[auth.Role]bool{
	auth.RoleCustomer: true,
	auth.RoleDoctor:   true,
}

type Service struct {
	repo   Repository
	issuer *auth.LinkIssuer
}

func NewService(repo Repository, issuer *auth.LinkIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Me returns the stored record for the caller, or an empty record when the
// identity has never assigned a role.
func (s *Service) Me(ctx context.Context, userID, email string) (*Record, error) {
	rec, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return &Record{UserID: userID, Email: email}, nil
	}
	return rec, err
}

// AssignRole is the onboarding self-assignment flow. Only non-admin roles
// can be self-assigned, and only once.
func (s *Service) AssignRole(ctx context.Context, userID, email string, role auth.Role) (*Record, error) {
	if !selfAssignable[role] {
		return nil, fmt.Errorf("role %s cannot be self-assigned", role)
	}
	return s.assign(ctx, userID, email, role)
}

// RedeemLink verifies a signed role-assignment link token and grants its
// role to the caller.
func (s *Service) RedeemLink(ctx context.Context, userID, email, token string) (*Record, error) {
	role, _, err := s.issuer.Redeem(token)
	if err != nil {
		return nil, err
	}
	rec, err := s.assign(ctx, userID, email, role)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", userID).Str("role", string(role)).Msg("role granted via signed link")
	return rec, nil
}

// IssueLink mints a signed role-assignment URL for the given role and
// recipient. Caller authorization happens at the HTTP layer.
func (s *Service) IssueLink(role auth.Role, email string) (string, error) {
	if !auth.KnownRole(role) {
		return "", fmt.Errorf("unknown role: %s", role)
	}
	return s.issuer.Issue(role, email)
}

// CompleteOnboarding flips the onboarding flag once the role-scoped setup
// steps have finished.
func (s *Service) CompleteOnboarding(ctx context.Context, userID string) (*Record, error) {
	rec, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec.Role == "" {
		return nil, fmt.Errorf("cannot complete onboarding without a role")
	}
	rec.OnboardingCompleted = true
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) assign(ctx context.Context, userID, email string, role auth.Role) (*Record, error) {
	rec, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		rec = &Record{UserID: userID, Email: email, Role: role}
		if err := s.repo.Create(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.Role != "" {
		return nil, ErrRoleTaken
	}
	rec.Role = role
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
