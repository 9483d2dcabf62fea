package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookie = "admin_session"
	adminSubject  = "admin"
)

var (
	ErrAdminDisabled      = errors.New("admin login is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuth guards the back office. There is a single admin account; its
// bcrypt hash comes from configuration and sessions are HS256 tokens in an
// HttpOnly cookie.
type AdminAuth struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAdminAuth(passwordHash, secret string, ttl time.Duration) *AdminAuth {
	return &AdminAuth{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
}

// enabled reports whether both the password hash and the signing secret
// are configured. Without either, no session is ever issued or accepted.
func (a *AdminAuth) enabled() bool {
	return len(a.passwordHash) > 0 && len(a.secret) > 0
}

func (a *AdminAuth) CheckPassword(password string) error {
	if !a.enabled() {
		return ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (a *AdminAuth) IssueToken() (string, time.Time, error) {
	if !a.enabled() {
		return "", time.Time{}, ErrAdminDisabled
	}
	now := a.now()
	expires := now.Add(a.ttl)
	claims := &AdminClaims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (a *AdminAuth) ParseToken(tokenStr string) (*AdminClaims, error) {
	if !a.enabled() {
		return nil, ErrAdminDisabled
	}
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Role != adminSubject {
		return nil, fmt.Errorf("invalid admin token")
	}
	return claims, nil
}

// Cookie builds the cookie carrying token. An empty token clears it.
func (a *AdminAuth) Cookie(token string, expires time.Time, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/api/v1/admin",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  expires,
	}
	if token == "" {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	}
	return c
}

func (a *AdminAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.enabled() {
				return echo.NewHTTPError(http.StatusUnauthorized, "admin login is not configured")
			}
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			claims, err := a.ParseToken(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			c.Set("admin", claims)
			return next(c)
		}
	}
}
