package handlers

import (
	"net/http"
	"strings"

	"task_manager_app_go/services"

	"github.com/labstack/echo/v4"
)

// ValidateEmailHandler validates the email field of a form inline
func ValidateEmailHandler(c echo.Context) error {
	email := c.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		return c.HTML(http.StatusOK, `<p class="text-red-500 text-xs pb-2.5" data-valid="false">Email is required.</p>`)
	}
	if !services.IsValidEmail(email) {
		return c.HTML(http.StatusOK, `<p class="text-red-500 text-xs pb-2.5" data-valid="false">Please enter a valid email address.</p>`)
	}
	return c.HTML(http.StatusOK, `<p class="hidden" data-valid="true"></p>`)
}
