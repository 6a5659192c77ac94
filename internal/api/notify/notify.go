// Package notify turns errors from the provider, the account store and the
// social provider into the status code and user-facing message every handler
// answers with.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/services/accounts"
	"fym/proj/internal/services/social"
	"fym/proj/internal/storage"
)

const (
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

type Notification struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

const genericMessage = "Sorry! Can't process your request. Please try again later."

// SignInRequired is shown on routes that need a signed-in account.
var SignInRequired = Notification{
	Kind:    KindWarning,
	Title:   "Please sign in",
	Message: "You need to be signed in to use this feature.",
}

// FromError maps err to a status code and notification. Unknown errors map to
// 500 with a generic message so internals never reach the user.
func FromError(err error) (int, Notification) {
	var reqErr *omdb.RequestError
	var provErr *omdb.ProviderError

	switch {
	case err == nil:
		return http.StatusOK, Notification{}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, Notification{KindError, "Timed out", "The request took too long. Please try again."}
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, Notification{KindInfo, "Cancelled", "The request was cancelled."}

	case errors.Is(err, omdb.ErrConfiguration):
		return http.StatusServiceUnavailable, Notification{KindError, "Configuration error",
			"The movie database API key is missing. Set FYM_OMDB_API_KEY and restart the server."}
	case errors.As(err, &reqErr) && reqErr.StatusCode == 0:
		return http.StatusBadGateway, Notification{KindError, "Movie database unavailable",
			"The movie database could not be reached. Please try again later."}
	case errors.As(err, &reqErr):
		return http.StatusBadGateway, Notification{KindError, "Movie database unavailable",
			fmt.Sprintf("The movie database answered with status %d. Please try again later.", reqErr.StatusCode)}
	case errors.As(err, &provErr):
		return providerStatus(provErr), Notification{KindWarning, "Nothing found", provErr.Message}
	case errors.Is(err, omdb.ErrInvalidQuery), errors.Is(err, omdb.ErrInvalidID), errors.Is(err, omdb.ErrInvalidType):
		return http.StatusBadRequest, Notification{KindWarning, "Invalid request", capitalize(err.Error())}

	case errors.Is(err, accounts.ErrInvalidCredentials):
		return http.StatusUnauthorized, Notification{KindError, "Sign in failed", "Invalid email or password."}
	case errors.Is(err, accounts.ErrDuplicateAccount):
		return http.StatusConflict, Notification{KindError, "Sign up failed", "An account with this email already exists."}
	case errors.Is(err, accounts.ErrUserNotFound):
		return http.StatusNotFound, Notification{KindError, "Account not found", "This account no longer exists."}
	case errors.Is(err, accounts.ErrEditConflict), errors.Is(err, storage.ErrEditConflict):
		return http.StatusConflict, Notification{KindWarning, "Please retry",
			"Your account was changed somewhere else at the same time. Reload and try again."}
	case errors.Is(err, accounts.ErrWatchlistItemNotFound):
		return http.StatusNotFound, Notification{KindWarning, "Not in watchlist", "This title is not in the watchlist."}
	case errors.Is(err, accounts.ErrInvalidReview):
		return http.StatusBadRequest, Notification{KindWarning, "Invalid review", "Rating must be between 1 and 5."}

	case errors.Is(err, social.ErrGemNotFound), errors.Is(err, social.ErrPartyNotFound), errors.Is(err, social.ErrListNotFound):
		return http.StatusNotFound, Notification{KindWarning, "Not found", capitalize(err.Error()) + "."}
	case errors.Is(err, social.ErrInvalidVote):
		return http.StatusBadRequest, Notification{KindWarning, "Invalid vote", "Vote must be up or down."}

	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, Notification{KindWarning, "Not found", "The requested resource could not be found."}
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict, Notification{KindWarning, "Conflict", "The resource already exists."}

	}
	return http.StatusInternalServerError, Notification{KindError, "Something went wrong", genericMessage}
}

// Fallback is attached to a payload served from a built-in dataset after err.
func Fallback(err error) Notification {
	_, n := FromError(err)
	n.Kind = KindWarning
	n.Message = strings.TrimSuffix(n.Message, ".") + ". Showing popular picks instead."
	return n
}

// providerStatus treats the provider's "not found" answers as 404 and any
// other logical failure ("Too many results.") as a bad query.
func providerStatus(err *omdb.ProviderError) int {
	msg := strings.ToLower(err.Message)
	if strings.Contains(msg, "not found") || strings.Contains(msg, "incorrect imdb id") {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
