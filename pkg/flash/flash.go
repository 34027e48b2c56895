// Package flash carries a toast over a redirect, in a signed cookie.
//
// A handler pushes a toast and redirects. The next page pops it, and shows it once.
package flash

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const CookieName = "scorch-flash"

// toast levels
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Toast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type claims struct {
	Toast
	jwt.RegisteredClaims
}

var ErrInvalidToast = errors.New("flash: invalid toast")

type Flasher struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Flasher) *Flasher

// WithTTL sets how long a toast survives waiting for the next page.
func WithTTL(ttl time.Duration) Option {
	return func(f *Flasher) *Flasher {
		f.ttl = ttl
		return f
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Flasher) *Flasher {
		f.now = now
		return f
	}
}

func New(secret string, options ...Option) *Flasher {
	f := &Flasher{secret: []byte(secret), ttl: time.Minute, now: time.Now}
	for _, opt := range options {
		f = opt(f)
	}
	return f
}

// Sign encodes the toast as a HS256 token.
func (f *Flasher) Sign(toast Toast) (string, error) {
	now := f.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Toast: toast,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
		},
	})
	return token.SignedString(f.secret)
}

// Parse decodes the token made by Sign.
func (f *Flasher) Parse(token string) (Toast, error) {
	c := new(claims)
	parsed, err := jwt.ParseWithClaims(
		token, c,
		func(*jwt.Token) (any, error) { return f.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(f.now),
	)
	if err != nil {
		return Toast{}, errors.Join(ErrInvalidToast, err)
	}
	if !parsed.Valid {
		return Toast{}, ErrInvalidToast
	}
	return c.Toast, nil
}

// Push sets the toast to be shown on the next page.
func (f *Flasher) Push(c echo.Context, level string, message string) error {
	token, err := f.Sign(Toast{Level: level, Message: message})
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(f.ttl / time.Second),
	})
	return nil
}

// Pop returns the toast pushed before, and clears it.
//
// It returns nil when there are no toasts, or the toast is broken or expired.
func (f *Flasher) Pop(c echo.Context) *Toast {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	toast, err := f.Parse(cookie.Value)
	if err != nil {
		c.Logger().Warnf("toast is dropped: %s", err)
		return nil
	}
	return &toast
}
