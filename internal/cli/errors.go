package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/KovyD20/Video-games-database-project/internal/app"
	"github.com/KovyD20/Video-games-database-project/internal/catalog"
	"github.com/KovyD20/Video-games-database-project/internal/config"
	"github.com/KovyD20/Video-games-database-project/internal/session"
	"github.com/KovyD20/Video-games-database-project/internal/source"
)

// reportError maps a domain error to its CLI error code and exit code.
func reportError(f *OutputFormatter, message string, err error) error {
	switch {
	case catalog.IsValidationError(err):
		return f.Fail(ExitFailure, ErrCodeValidation, message, err)
	case session.IsAuthError(err):
		return f.Fail(ExitFailure, ErrCodeAuth, message, err)
	case errors.Is(err, app.ErrNotSignedIn):
		return f.Fail(ExitFailure, ErrCodeNotSignedIn, message, err)
	case source.IsStatusError(err):
		return f.Fail(ExitFailure, ErrCodeRejected, rejectedMessage(message, err), err)
	case source.IsNetworkError(err):
		return f.Fail(ExitFailure, ErrCodeNetwork, message, err)
	default:
		return f.Fail(ExitFailure, ErrCodeGeneric, message, err)
	}
}

// rejectedMessage tells an authorization refusal apart from a server fault.
func rejectedMessage(message string, err error) string {
	var fe *source.FetchError
	if !errors.As(err, &fe) {
		return message
	}
	switch fe.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("%s (catalog API refused the key, check %s)", message, config.EnvAPIKey)
	case http.StatusTooManyRequests:
		return message + " (catalog API rate limit reached, try again later)"
	default:
		return fmt.Sprintf("%s (catalog API answered %d)", message, fe.StatusCode)
	}
}
