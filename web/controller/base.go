// Package controller provides the HTTP handlers of the minibook web app:
// feed, auth, posts, profiles and the upload flow behind them.
package controller

import (
	"net/http"

	"minibook/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// checkLogin verifies the session before a protected handler runs and sends
// unauthenticated callers to the login page. A cookie with a bad signature
// decodes to no session and ends up here as well.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}
