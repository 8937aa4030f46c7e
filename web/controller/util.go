package controller

import (
	"net/http"
	"net/url"
	"os"

	"minibook/config"
	"minibook/logger"
	"minibook/web/imagehost"
	"minibook/web/session"

	"github.com/gin-gonic/gin"
)

// html renders a template with the shared page context.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlCode(c, http.StatusOK, name, title, data)
}

// htmlCode renders a template with an explicit status code, used for the 422
// validation re-renders and the not-found page.
func htmlCode(c *gin.Context, code int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["isUserLoggedIn"] = session.IsLogin(c)
	if _, ok := data["currentPage"]; !ok {
		data["currentPage"] = ""
	}
	if _, ok := data["msg"]; !ok {
		data["msg"] = c.Query("msg")
	}
	c.HTML(code, name, getContext(data))
}

// getContext adds version info to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// NotFound renders the not-found page. Also installed as the NoRoute
// handler.
func NotFound(c *gin.Context) {
	htmlCode(c, http.StatusNotFound, "404.html", "Page Not Found", nil)
}

// serverError logs an unexpected failure and sends a generic response, never
// leaking internals.
func serverError(c *gin.Context, err error) {
	logger.Error("internal error:", err)
	c.String(http.StatusInternalServerError, "Server error")
	c.Abort()
}

// redirectWithMsg redirects to path with a human-readable notice in the msg
// query parameter, the way the original app surfaced business-rule limits.
func redirectWithMsg(c *gin.Context, path string, msg string) {
	c.Redirect(http.StatusFound, path+"?msg="+url.QueryEscape(msg))
}

// uploadFormFile stages the named multipart file locally, forwards it to the
// image host and returns the public URL. The staged copy is removed before
// returning; the cleanup job catches anything orphaned by a crash.
func uploadFormFile(c *gin.Context, field string, client *imagehost.Client) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}

	staged := imagehost.StagingPath(file.Filename)
	if err := c.SaveUploadedFile(file, staged); err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(staged); err != nil {
			logger.Warning("remove staged upload:", err)
		}
	}()

	return client.Upload(staged)
}
