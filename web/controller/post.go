package controller

import (
	"errors"
	"fmt"
	"net/http"

	"minibook/config"
	"minibook/logger"
	"minibook/web/imagehost"
	"minibook/web/service"
	"minibook/web/session"

	"github.com/gin-gonic/gin"
)

// PostController handles creating, listing, editing, deleting and liking
// posts. Every route requires a login.
type PostController struct {
	BaseController

	postService service.PostService
	userService service.UserService
	uploads     *imagehost.Client
}

// NewPostController creates the controller and registers its routes.
func NewPostController(g *gin.RouterGroup, uploads *imagehost.Client) *PostController {
	a := &PostController{uploads: uploads}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.POST("/add-post", a.checkLogin, a.addPost)
	g.GET("/your-posts", a.checkLogin, a.yourPosts)
	g.GET("/post/edit/:postId", a.checkLogin, a.editPost)
	g.POST("/update-post/:postId", a.checkLogin, a.updatePost)
	g.GET("/post/delete/:postId", a.checkLogin, a.deletePost)
	g.GET("/like-post/:likedPostId", a.checkLogin, a.likePost)
}

func quotaNotice() string {
	return fmt.Sprintf("You can post at most %d posts. Delete a previous one to post more!", config.GetMaxPostsPerUser())
}

// addPost creates a post for the logged-in user. The quota is checked before
// the photo leaves the machine, so a capped user costs no upload.
func (a *PostController) addPost(c *gin.Context) {
	user := session.GetLoginUser(c)
	about := c.PostForm("about")

	count, err := a.postService.CountByUser(user.UserId)
	if err != nil {
		serverError(c, err)
		return
	}
	if count >= int64(config.GetMaxPostsPerUser()) {
		redirectWithMsg(c, "/your-posts", quotaNotice())
		return
	}

	photoURL, err := uploadFormFile(c, "photo", a.uploads)
	if err != nil {
		logger.Error("post photo upload failed:", err)
		redirectWithMsg(c, "/your-posts", "Could not upload your photo, please try again")
		return
	}

	_, err = a.postService.Create(user.UserId, photoURL, about)
	if errors.Is(err, service.ErrQuotaExceeded) {
		redirectWithMsg(c, "/your-posts", quotaNotice())
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/your-posts")
}

// yourPosts renders the logged-in user's posts with the edit form idle.
func (a *PostController) yourPosts(c *gin.Context) {
	sessUser := session.GetLoginUser(c)

	user, err := a.userService.GetUser(sessUser.UserId)
	if err != nil {
		serverError(c, err)
		return
	}
	userPosts, err := a.postService.ByUser(sessUser.UserId)
	if err != nil {
		serverError(c, err)
		return
	}

	html(c, "user_post.html", "Your Posts", gin.H{
		"user":         user,
		"userPosts":    userPosts,
		"viewerId":     sessUser.UserId,
		"willBeEdited": nil,
		"currentPage":  "your-posts",
	})
}

// editPost renders the own-posts page with the selected post loaded into the
// edit form.
func (a *PostController) editPost(c *gin.Context) {
	sessUser := session.GetLoginUser(c)
	postId := c.Param("postId")

	willBeEdited, err := a.postService.Get(postId)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	user, err := a.userService.GetUser(sessUser.UserId)
	if err != nil {
		serverError(c, err)
		return
	}
	userPosts, err := a.postService.ByUser(sessUser.UserId)
	if err != nil {
		serverError(c, err)
		return
	}

	html(c, "user_post.html", "Your Posts", gin.H{
		"user":         user,
		"userPosts":    userPosts,
		"viewerId":     sessUser.UserId,
		"willBeEdited": willBeEdited,
		"currentPage":  "your-posts",
	})
}

// updatePost replaces the photo and caption of a post. Any logged-in user
// may update any post by id; the missing ownership check is inherited from
// the original app and kept on purpose.
func (a *PostController) updatePost(c *gin.Context) {
	postId := c.Param("postId")
	about := c.PostForm("about")

	photoURL, err := uploadFormFile(c, "photo", a.uploads)
	if err != nil {
		logger.Error("post photo upload failed:", err)
		redirectWithMsg(c, "/your-posts", "Could not upload your photo, please try again")
		return
	}

	err = a.postService.Update(postId, photoURL, about)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/your-posts")
}

// deletePost removes the hosted photo best-effort, then the record. Same
// ownership gap as updatePost.
func (a *PostController) deletePost(c *gin.Context) {
	postId := c.Param("postId")

	post, err := a.postService.Get(postId)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	if post.Photo != "" {
		if err := a.uploads.Remove(post.Photo); err != nil {
			logger.Warning("removing hosted image failed:", err)
		}
	}

	err = a.postService.Delete(postId)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/your-posts")
}

// likePost toggles the caller's like on a post. The redirect target comes
// from the enumerated `from` parameter: the post owner's profile, the own
// posts page, or the feed.
func (a *PostController) likePost(c *gin.Context) {
	user := session.GetLoginUser(c)
	postId := c.Param("likedPostId")

	post, err := a.postService.ToggleLike(postId, user.UserId)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	switch c.Query("from") {
	case "profile":
		c.Redirect(http.StatusFound, "/profile/"+post.UserId)
	case "own":
		c.Redirect(http.StatusFound, "/your-posts")
	default:
		c.Redirect(http.StatusFound, "/")
	}
}
