package session

import "errors"

var (
	// ErrNoAccount is returned by Login when no user is registered.
	ErrNoAccount = errors.New("no account registered")

	// ErrInvalidCredentials is returned by Login when the email does not
	// match the registered user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsAuthError reports whether err is ErrNoAccount or ErrInvalidCredentials.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoAccount) || errors.Is(err, ErrInvalidCredentials)
}
