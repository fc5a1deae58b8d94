package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"task_manager_app_go/config"
	"task_manager_app_go/models"
	"task_manager_app_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyToken is the context key for the task API token
	ContextKeyToken = "api_token"
	// ContextKeyConfig is the context key for the app config
	ContextKeyConfig = "config"
)

// ProfileLoader resolves the user behind a task API token
type ProfileLoader interface {
	GetProfile(ctx context.Context, token string) (*models.User, error)
}

// RequireAPIToken is middleware that requires a task API token. The token is
// read from the token cookie or an Authorization: Bearer header and checked
// by loading the user's profile.
func RequireAPIToken(profiles ProfileLoader, loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return unauthorized(c, loginURL)
			}

			user, err := profiles.GetProfile(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					log.Printf("[SECURITY] Rejected task API token from %s", c.RealIP())
					if services.Monitor != nil {
						services.Monitor.TrackRejectedToken(c.RealIP())
					}
					clearTokenCookie(c)
					return unauthorized(c, loginURL)
				}
				log.Printf("[WARNING] Failed to load profile: %v", err)
				return echo.NewHTTPError(http.StatusBadGateway, "Task service unavailable")
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyToken, token)

			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetAPIToken retrieves the task API token from context
func GetAPIToken(c echo.Context) string {
	token, _ := c.Get(ContextKeyToken).(string)
	return token
}

// UserKeyFunc keys rate limits by user, falling back to the client IP
func UserKeyFunc(c echo.Context) string {
	if user := GetCurrentUser(c); user != nil && user.ID != "" {
		return "user:" + user.ID
	}
	return c.RealIP()
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(config.TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(c echo.Context, loginURL string) error {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", loginURL)
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, loginURL)
}

// clearTokenCookie clears the token cookie
func clearTokenCookie(c echo.Context) {
	var isProduction bool
	if cfg, ok := c.Get(ContextKeyConfig).(*config.Config); ok {
		isProduction = cfg.IsProduction()
	}

	cookie := &http.Cookie{
		Name:     config.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// ConfigInjector makes the config available to handlers and middleware
func ConfigInjector(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyConfig, cfg)
			return next(c)
		}
	}
}
