package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "assessbot_session"
	sessionContextKey = "session_id"
)

// sessionSigner issues and verifies session cookie values of the form "<uuid>.<signature>".
type sessionSigner struct {
	secret []byte
	secure bool
}

func newSessionSigner(secret string, secure bool) *sessionSigner {
	return &sessionSigner{secret: []byte(secret), secure: secure}
}

func (s *sessionSigner) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify returns the session id carried by value, or false if it was not signed by s.
func (s *sessionSigner) verify(value string) (string, bool) {
	id, _, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(value), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}

// middleware attaches the session id to every request, issuing a new cookie
// when the request carries none or an invalid one.
func (s *sessionSigner) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			if id, ok := s.verify(cookie.Value); ok {
				c.Set(sessionContextKey, id)
				return next(c)
			}
		}

		id := uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     SessionCookieName,
			Value:    s.sign(id),
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(sessionContextKey, id)
		return next(c)
	}
}

func sessionID(c echo.Context) string {
	id, _ := c.Get(sessionContextKey).(string)
	return id
}
