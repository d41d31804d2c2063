package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// TokenVerifier verifies an opaque bearer credential and yields the verified
// principal. Satisfied by the Firebase *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ContextUserID is the echo context key under which the verified principal's
// id (the Firebase UID) is stored.
const ContextUserID = "userID"

// RequireAuth creates an Echo middleware that rejects any request without a
// valid bearer token before handler logic runs.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := verifyBearer(c, verifier)
			if err != nil {
				return err
			}
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header is missing")
			}
			c.Set(ContextUserID, uid)
			return next(c)
		}
	}
}

// OptionalAuth verifies a bearer token when one is supplied but lets
// anonymous requests through with no principal attached. A token that is
// present but invalid is still rejected.
func OptionalAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := verifyBearer(c, verifier)
			if err != nil {
				return err
			}
			if uid != "" {
				c.Set(ContextUserID, uid)
			}
			return next(c)
		}
	}
}

// verifyBearer parses and verifies the Authorization header. An absent header
// yields ("", nil); a malformed or unverifiable one yields a 401 error.
func verifyBearer(c echo.Context, verifier TokenVerifier) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be in Bearer format")
	}

	token, err := verifier.VerifyIDToken(c.Request().Context(), parts[1])
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return token.UID, nil
}

// UserID returns the verified principal id attached to the context, or ""
// for anonymous requests.
func UserID(c echo.Context) string {
	uid, _ := c.Get(ContextUserID).(string)
	return uid
}
