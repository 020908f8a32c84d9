package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medsearch/medsearch/internal/platform/db"
)

var validGenders = map[string]bool{"": true, "male": true, "female": true, "other": true, "prefer_not_to_say": true}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Customer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// UpsertProfile writes the caller's profile, creating it on first save.
// Fields the caller cannot set (identity ref, favorites) are carried over
// from the stored record.
func (s *Service) UpsertProfile(ctx context.Context, userID string, in *Customer) (*Customer, error) {
	if err := validateProfile(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		in.UserID = userID
		in.Active = true
		if err := s.repo.Create(ctx, in); err != nil {
			return nil, err
		}
		return in, nil
	}
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.UserID = existing.UserID
	in.Favorites = existing.Favorites
	in.Active = existing.Active
	if in.VersionID == 0 {
		in.VersionID = existing.VersionID
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) AddFavorite(ctx context.Context, userID string, doctorID uuid.UUID) (*Customer, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range c.Favorites {
		if id == doctorID {
			return c, nil
		}
	}
	c.Favorites = append(c.Favorites, doctorID)
	return c, s.repo.Update(ctx, c)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID string, doctorID uuid.UUID) (*Customer, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := c.Favorites[:0]
	for _, id := range c.Favorites {
		if id != doctorID {
			kept = append(kept, id)
		}
	}
	c.Favorites = kept
	return c, s.repo.Update(ctx, c)
}

func (s *Service) Deactivate(ctx context.Context, userID string) error {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	c.Active = false
	return s.repo.Update(ctx, c)
}

func validateProfile(c *Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !validGenders[c.Gender] {
		return fmt.Errorf("invalid gender value: %s", c.Gender)
	}
	return nil
}
