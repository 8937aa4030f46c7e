// Package session provides helpers around the signed session cookie. The
// cookie carries the logged-in user's id and email, nothing more.
package session

import (
	"encoding/gob"

	"minibook/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

// LoginUser is the session payload for a logged-in user.
type LoginUser struct {
	UserId string
	Email  string
}

func init() {
	gob.Register(LoginUser{})
}

// SetLoginUser stores the login payload in the session. No MaxAge is set, so
// the cookie carries no expiry.
func SetLoginUser(c *gin.Context, user LoginUser) error {
	s := sessions.Default(c)
	s.Set(loginUser, user)
	return s.Save()
}

// GetLoginUser returns the session payload, or nil when not logged in or the
// cookie failed signature verification.
func GetLoginUser(c *gin.Context) *LoginUser {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(LoginUser); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearSession drops the session and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(config.GetSessionCookieName(), "", -1, "/", "", false, true)
	return nil
}
