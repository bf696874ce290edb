package shared

import "errors"

// Domain-wide sentinel errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
)

// UserSafeMessage returns an error message safe to show to end users.
// Infrastructure errors are collapsed to a generic message.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrSessionExpired):
		return "Your session has expired, please sign in again"
	}
	return "Something went wrong, please try again"
}
