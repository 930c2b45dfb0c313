package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"forum/internal/auth"
	"forum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

// localUserID is the Fiber locals key holding the verified subject.
const localUserID = "userID"

var (
	// ErrNoCredential means the request carried no session cookie.
	ErrNoCredential = models.NewUnauthorizedError("Unauthorized")
	// ErrInvalidCredential means the cookie failed verification.
	ErrInvalidCredential = models.NewForbiddenError("INVALID_CREDENTIAL", "Invalid or expired token")
)

// TokenVerifier resolves a session token to its subject.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// TokenFromRequest returns the session token if the request carries one.
func TokenFromRequest(c *fiber.Ctx) (string, bool) {
	token := c.Cookies(CookieName)
	return token, token != ""
}

// Session gates a route on a valid session token. It only reads the cookie
// and verifies it; the identity is not looked up.
func Session(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := TokenFromRequest(c)
		if !ok {
			AuthFailures.WithLabelValues("no_credential").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized, ErrNoCredential)
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			reason := "invalid_signature"
			if errors.Is(err, auth.ErrExpired) {
				reason = "expired"
			}
			AuthFailures.WithLabelValues(reason).Inc()
			Logger.InfoContext(c.UserContext(), "session rejected", slog.String("reason", reason))
			return models.RespondWithError(c, fiber.StatusForbidden, ErrInvalidCredential)
		}

		c.Locals(localUserID, userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}

// UserID returns the subject attached by Session.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localUserID).(uint)
	return id, ok && id != 0
}

// SetSessionCookie stores token in an HTTP-only cookie living as long as the token.
func SetSessionCookie(c *fiber.Ctx, token string, production bool) {
	sameSite := fiber.CookieSameSiteLaxMode
	if production {
		sameSite = fiber.CookieSameSiteStrictMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL / time.Second),
		Expires:  time.Now().Add(auth.TokenTTL),
		HTTPOnly: true,
		Secure:   production,
		SameSite: sameSite,
	})
}

// ClearSessionCookie removes the client's copy of the token. The token itself
// stays valid until it expires.
func ClearSessionCookie(c *fiber.Ctx, production bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   production,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
