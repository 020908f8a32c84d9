package identity

import (
	"time"

	"github.com/medsearch/medsearch/internal/platform/auth"
)

// Record is the server-side, trusted copy of an identity's role assignment.
// It is the app-partition counterpart to the token's user-editable metadata:
// permission checks and onboarding state read from here, never from anything
// the user can write.
type Record struct {
	UserID string    `db:"user_id" json:"userId"`
	Email  string    `db:"email" json:"email"`
	Role   auth.Role `db:"role" json:"role"`

	OnboardingCompleted bool `db:"onboarding_completed" json:"onboardingCompleted"`

	VersionID int       `db:"version_id" json:"versionId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (r *Record) GetVersionID() int  { return r.VersionID }
func (r *Record) SetVersionID(v int) { r.VersionID = v }

// Resolution converts the stored record into the shared role resolution
// shape used for redirects and permission checks.
func (r *Record) Resolution() auth.Resolution {
	return auth.Resolution{
		Role:                r.Role,
		HasRole:             r.Role != "",
		OnboardingCompleted: r.OnboardingCompleted,
	}
}
