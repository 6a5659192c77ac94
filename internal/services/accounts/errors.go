package accounts

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateAccount      = errors.New("an account with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEditConflict          = errors.New("account was modified concurrently, please retry")
	ErrWatchlistItemNotFound = errors.New("watchlist item not found")
	ErrInvalidReview         = errors.New("rating must be between 1 and 5")
)
