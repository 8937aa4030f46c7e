package controller

import (
	"errors"
	"net/http"

	"minibook/logger"
	"minibook/web/forms"
	"minibook/web/imagehost"
	"minibook/web/service"
	"minibook/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the feed, the terms page and the auth routes.
type IndexController struct {
	BaseController

	userService service.UserService
	postService service.PostService
	uploads     *imagehost.Client
	authLimiter gin.HandlerFunc
}

// NewIndexController creates the controller and registers its routes.
// authLimiter throttles the credential-carrying POSTs.
func NewIndexController(g *gin.RouterGroup, uploads *imagehost.Client, authLimiter gin.HandlerFunc) *IndexController {
	a := &IndexController{
		uploads:     uploads,
		authLimiter: authLimiter,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/terms", a.terms)

	g.GET("/login", a.loginPage)
	g.POST("/login", a.authLimiter, a.login)
	g.GET("/logout", a.logout)

	g.GET("/signup", a.signupPage)
	g.POST("/signup", a.authLimiter, a.signup)
}

// index renders the public feed: every post with its owner resolved, in
// storage order, unpaginated.
func (a *IndexController) index(c *gin.Context) {
	allPosts, err := a.postService.All()
	if err != nil {
		serverError(c, err)
		return
	}

	var viewer string
	if user := session.GetLoginUser(c); user != nil {
		viewer = user.UserId
	}

	html(c, "home.html", "Home", gin.H{
		"allPosts":    allPosts,
		"viewerId":    viewer,
		"currentPage": "home",
	})
}

func (a *IndexController) terms(c *gin.Context) {
	html(c, "terms.html", "Terms and Conditions", nil)
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/your-posts")
		return
	}
	html(c, "login.html", "Log In", gin.H{
		"errorMsg": "",
		"email":    "",
	})
}

// login checks the credentials and issues the session cookie. Unknown email
// and wrong password produce different messages, as the original app did.
func (a *IndexController) login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "login.html", "Log In", gin.H{
			"errorMsg": "Invalid form data",
			"email":    "",
		})
		return
	}
	form.Normalize()

	user, err := a.userService.CheckUser(form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrNotFound):
		logger.Warningf("login attempt with unknown email from %s", c.ClientIP())
		html(c, "login.html", "Log In", gin.H{
			"errorMsg": "User not found. Please check your email or sign up.",
			"email":    "",
		})
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		logger.Warningf("failed login for %s from %s", form.Email, c.ClientIP())
		html(c, "login.html", "Log In", gin.H{
			"errorMsg": "Password is wrong",
			"email":    form.Email,
		})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	if err := session.SetLoginUser(c, session.LoginUser{UserId: user.Id, Email: user.Email}); err != nil {
		serverError(c, err)
		return
	}
	logger.Infof("%s logged in", user.Email)
	c.Redirect(http.StatusFound, "/your-posts")
}

func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *IndexController) signupPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/your-posts")
		return
	}
	html(c, "signup.html", "Sign Up", gin.H{
		"errors":   forms.Errors{},
		"oldInput": gin.H{"firstName": "", "lastName": "", "email": ""},
	})
}

// signup validates the form, enforces the global account cap, uploads the
// profile photo and persists the account. Validation failures re-render the
// form with the submitted values minus the passwords; hitting the cap is a
// notice, not a field error.
func (a *IndexController) signup(c *gin.Context) {
	var form forms.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		htmlCode(c, http.StatusUnprocessableEntity, "signup.html", "Sign Up", gin.H{
			"errors":   forms.Errors{"form": "Invalid form data"},
			"oldInput": gin.H{"firstName": "", "lastName": "", "email": ""},
		})
		return
	}
	form.Normalize()

	errs := form.Validate()

	if _, err := c.FormFile("profilePhoto"); err != nil {
		errs.Add("profilePhoto", "Please choose a profile photo")
	}

	if _, hasEmailErr := errs["email"]; !hasEmailErr {
		taken, err := a.userService.EmailTaken(form.Email)
		if err != nil {
			serverError(c, err)
			return
		}
		if taken {
			errs.Add("email", "This email is already registered")
		}
	}

	oldInput := gin.H{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
	}

	if len(errs) > 0 {
		htmlCode(c, http.StatusUnprocessableEntity, "signup.html", "Sign Up", gin.H{
			"errors":   errs,
			"oldInput": oldInput,
		})
		return
	}

	ok, err := a.userService.CanRegister()
	if err != nil {
		serverError(c, err)
		return
	}
	if !ok {
		redirectWithMsg(c, "/", "Maximum users reached, please contact the admin!")
		return
	}

	photoURL, err := uploadFormFile(c, "profilePhoto", a.uploads)
	if err != nil {
		logger.Error("profile photo upload failed:", err)
		htmlCode(c, http.StatusBadGateway, "signup.html", "Sign Up", gin.H{
			"errors":   forms.Errors{"profilePhoto": "Could not upload your photo, please try again"},
			"oldInput": oldInput,
		})
		return
	}

	_, err = a.userService.Register(service.RegisterParams{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		Password:      form.Password,
		Photo:         photoURL,
		TermsAccepted: form.TermsAccepted(),
	})
	switch {
	case errors.Is(err, service.ErrCapacityExceeded):
		redirectWithMsg(c, "/", "Maximum users reached, please contact the admin!")
		return
	case errors.Is(err, service.ErrEmailTaken):
		errs.Add("email", "This email is already registered")
		htmlCode(c, http.StatusUnprocessableEntity, "signup.html", "Sign Up", gin.H{
			"errors":   errs,
			"oldInput": oldInput,
		})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	redirectWithMsg(c, "/login", "Account created successfully")
}
