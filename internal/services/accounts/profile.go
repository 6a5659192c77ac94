package accounts

import (
	"context"
	"strings"

	"fym/proj/internal/domain/models"
)

func (s *AccountService) UpdateSettings(ctx context.Context, userID string, settings models.Settings) (*models.Account, error) {
	const op = "accounts.AccountService.UpdateSettings"
	if settings.FamilyMode.Restrictions == nil {
		settings.FamilyMode.Restrictions = []string{}
	}
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		acc.Settings = settings
		return true, nil
	})
}

// ProfileInput carries the profile fields to change. Nil fields are kept.
type ProfileInput struct {
	Username    *string
	Email       *string
	Preferences *models.Preferences
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.Account, error) {
	const op = "accounts.AccountService.UpdateProfile"
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		changed := false
		if in.Username != nil && strings.TrimSpace(*in.Username) != acc.Username {
			acc.Username = strings.TrimSpace(*in.Username)
			changed = true
		}
		if in.Email != nil && normalizeEmail(*in.Email) != acc.Email {
			acc.Email = normalizeEmail(*in.Email)
			changed = true
		}
		if in.Preferences != nil {
			acc.Preferences = *in.Preferences
			changed = true
		}
		return changed, nil
	})
}
