package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/myrsple/rezervace-sub000/internal/dto"
	"github.com/myrsple/rezervace-sub000/internal/middleware"
)

type AdminHandler struct {
	auth         *middleware.AdminAuth
	secureCookie bool
}

func NewAdminHandler(auth *middleware.AdminAuth, secureCookie bool) *AdminHandler {
	return &AdminHandler{auth: auth, secureCookie: secureCookie}
}

// RegisterRoutes mounts login/logout on the open admin group; protected
// must already carry the session middleware.
func (h *AdminHandler) RegisterRoutes(open, protected *echo.Group, limit echo.MiddlewareFunc) {
	open.POST("/login", h.Login, limit)
	open.POST("/logout", h.Logout)
	protected.GET("/session", h.Session)
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.CheckPassword(req.Password); err != nil {
		if errors.Is(err, middleware.ErrAdminDisabled) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		log.Printf("[Admin] failed login from %s", c.RealIP())
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	token, expires, err := h.auth.IssueToken()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue session").SetInternal(err)
	}
	c.SetCookie(h.auth.Cookie(token, expires, h.secureCookie))
	return c.JSON(http.StatusOK, map[string]any{"expires_at": expires.UTC().Format(time.RFC3339)})
}

func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(h.auth.Cookie("", time.Time{}, h.secureCookie))
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) Session(c echo.Context) error {
	claims, ok := c.Get("admin").(*middleware.AdminClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
	})
}
