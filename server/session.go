package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "taskrabbit_session"
	sessionContextKey = "session"
	sessionLifetime   = 72 * time.Hour
)

// Session identifies the authenticated user for one request. It travels in
// a signed cookie instead of process-global state.
type Session struct {
	Username string
	Name     string
}

func (s *Server) issueSession(c echo.Context, username, name string) error {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = username
	claims["name"] = name
	claims["exp"] = time.Now().Add(sessionLifetime).Unix()

	signed, err := token.SignedString(s.sessionKey)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
	})

	return nil
}

func (s *Server) clearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (s *Server) currentSession(c echo.Context) (Session, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.sessionKey, nil
	})
	if err != nil || !token.Valid {
		return Session{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, false
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return Session{}, false
	}

	name, _ := claims["name"].(string)

	return Session{Username: username, Name: name}, true
}

// requireSession redirects anonymous requests to the login screen and hands
// authenticated ones their session via the request context.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, ok := s.currentSession(c)
		if !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(sessionContextKey, session)

		return next(c)
	}
}

func sessionFromContext(c echo.Context) Session {
	session, _ := c.Get(sessionContextKey).(Session)

	return session
}
