package demo

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
)

// avatarService draws an initials avatar for users without a provider
// picture.
const avatarService = "https://avatar.iran.liara.run/username?username="

// ErrNoProfile is returned for a user the new user hook never ran for.
var ErrNoProfile = errors.New("demo: user has no profile")

// CreateProfile creates the profile of a new user. Password signups get a
// generated avatar, OAuth signups the provider's picture.
func CreateProfile(ctx context.Context, q store.Querier, user model.LowboyUserRecord, details auth.RegistrationDetails) (UserProfileRecord, error) {
	name := details.Name
	if name == "" {
		name = user.Username
	}

	avatar := avatarService + url.QueryEscape(name)
	if details.AvatarURL != nil && *details.AvatarURL != "" {
		avatar = *details.AvatarURL
	}

	record, err := CreateUserProfileRecord(user.ID, name).WithAvatar(avatar).Create(ctx, q)
	if err != nil {
		return UserProfileRecord{}, fmt.Errorf("creating profile of user %d: %w", user.ID, err)
	}
	return record, nil
}

// LiftUserProfile loads the profile of the logged-in user.
func LiftUserProfile(ctx context.Context, q store.Querier, user model.LowboyUserRecord) (UserProfile, error) {
	records, err := FindUserProfileRecords(ctx, q, sq.Eq{"user_id": user.ID})
	if err != nil {
		return UserProfile{}, err
	}
	if len(records) == 0 {
		return UserProfile{}, fmt.Errorf("%w: user %d", ErrNoProfile, user.ID)
	}
	return UserProfileFromRecord(ctx, q, records[0])
}
