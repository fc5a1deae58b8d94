package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const NonceKey contextKey = "csp_nonce"

// GenerateNonce creates a random nonce string
func GenerateNonce() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// ContentSecurityPolicy builds the CSP header for a nonce. imgSources are the
// extra origins avatars may be loaded from.
func ContentSecurityPolicy(nonce string, imgSources ...string) string {
	img := "'self' data:"
	if len(imgSources) > 0 {
		img += " " + strings.Join(imgSources, " ")
	}
	return fmt.Sprintf("default-src 'self'; script-src 'self' 'nonce-%s' https://unpkg.com https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; img-src %s; font-src 'self' https://fonts.gstatic.com; connect-src 'self'; frame-ancestors 'none'", nonce, img)
}

// CSPNonce middleware generates a nonce for each request and adds it to the context
func CSPNonce(imgSources ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				return fmt.Errorf("failed to generate nonce: %w", err)
			}

			// Echo context for handlers, request context for templ
			c.Set(string(NonceKey), nonce)
			ctx := context.WithValue(c.Request().Context(), NonceKey, nonce)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set("Content-Security-Policy", ContentSecurityPolicy(nonce, imgSources...))

			return next(c)
		}
	}
}

// GetNonce retrieves the nonce from the context
func GetNonce(ctx context.Context) string {
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}
