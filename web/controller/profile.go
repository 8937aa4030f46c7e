package controller

import (
	"errors"

	"minibook/web/service"
	"minibook/web/session"

	"github.com/gin-gonic/gin"
)

// ProfileController renders public profiles with that user's posts.
type ProfileController struct {
	BaseController

	userService service.UserService
	postService service.PostService
}

func NewProfileController(g *gin.RouterGroup) *ProfileController {
	a := &ProfileController{}
	a.initRouter(g)
	return a
}

func (a *ProfileController) initRouter(g *gin.RouterGroup) {
	g.GET("/profile/:userId", a.checkLogin, a.profile)
}

func (a *ProfileController) profile(c *gin.Context) {
	userId := c.Param("userId")

	user, err := a.userService.GetUser(userId)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	userPosts, err := a.postService.ByUser(userId)
	if err != nil {
		serverError(c, err)
		return
	}

	viewer := session.GetLoginUser(c)

	html(c, "profile.html", user.FullName(), gin.H{
		"user":      user,
		"userPosts": userPosts,
		"viewerId":  viewer.UserId,
	})
}
