package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/vela/internal/models"
)

const (
	ThemeCookie = "vela-theme"
	ThemeDark   = "dark"
	ThemeLight  = "light"

	themeCookieMaxAge = 365 * 24 * time.Hour
)

// ThemeHandler keeps the light/dark preference in a browser cookie. It is
// the only state that survives a restart.
type ThemeHandler struct {
	defaultTheme string
}

func NewThemeHandler(defaultTheme string) *ThemeHandler {
	if !validTheme(defaultTheme) {
		defaultTheme = ThemeDark
	}
	return &ThemeHandler{defaultTheme: defaultTheme}
}

// HandleGet handles GET /theme
func (h *ThemeHandler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(models.ThemeResponse{Theme: h.current(c)})
}

// HandleSet handles PUT /theme
func (h *ThemeHandler) HandleSet(c *fiber.Ctx) error {
	var req models.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}

	if !validTheme(req.Theme) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "theme must be 'dark' or 'light'",
		})
	}

	return h.store(c, req.Theme)
}

// HandleToggle handles POST /theme/toggle
func (h *ThemeHandler) HandleToggle(c *fiber.Ctx) error {
	next := ThemeDark
	if h.current(c) == ThemeDark {
		next = ThemeLight
	}
	return h.store(c, next)
}

func (h *ThemeHandler) current(c *fiber.Ctx) string {
	if theme := c.Cookies(ThemeCookie); validTheme(theme) {
		return theme
	}
	return h.defaultTheme
}

func (h *ThemeHandler) store(c *fiber.Ctx, theme string) error {
	c.Cookie(&fiber.Cookie{
		Name:     ThemeCookie,
		Value:    theme,
		Path:     "/",
		Expires:  time.Now().Add(themeCookieMaxAge),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(models.ThemeResponse{Theme: theme})
}

func validTheme(theme string) bool {
	return theme == ThemeDark || theme == ThemeLight
}
