// Package forms binds and validates the HTML form input of the public
// routes. Validation failures carry one message per offending field so the
// page can be re-rendered with the submitted values (passwords excluded).
package forms

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nameRx  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRx = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+\/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// passwordSpecials is the fixed set of accepted special characters.
const passwordSpecials = "!@&"

// Errors maps a field name to its validation message. A form is valid when
// the map is empty.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Messages returns all messages in an unspecified order, for templates that
// render a flat list.
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, msg := range e {
		msgs = append(msgs, msg)
	}
	return msgs
}

// SignupForm carries the signup fields. The profile photo travels separately
// as a multipart file.
type SignupForm struct {
	FirstName       string `form:"firstName"`
	LastName        string `form:"lastName"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	Terms           string `form:"terms"`
}

// Normalize trims the text fields and lowercases the email. Passwords are
// left untouched apart from surrounding whitespace.
func (f *SignupForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = NormalizeEmail(f.Email)
	f.Password = strings.TrimSpace(f.Password)
	f.ConfirmPassword = strings.TrimSpace(f.ConfirmPassword)
}

// TermsAccepted reports whether the terms checkbox was affirmatively set.
func (f *SignupForm) TermsAccepted() bool {
	return f.Terms == "on"
}

// Validate checks every field and returns the collected messages.
func (f *SignupForm) Validate() Errors {
	errs := Errors{}

	if len(f.FirstName) < 2 {
		errs.Add("firstName", "First Name should be at least 2 characters long")
	} else if !nameRx.MatchString(f.FirstName) {
		errs.Add("firstName", "First Name should contain only alphabets")
	}

	if f.LastName != "" && !nameRx.MatchString(f.LastName) {
		errs.Add("lastName", "Last Name should contain only alphabets")
	}

	if !emailRx.MatchString(f.Email) {
		errs.Add("email", "Please enter a valid email")
	}

	if msg := checkPassword(f.Password); msg != "" {
		errs.Add("password", msg)
	}

	if f.ConfirmPassword != f.Password {
		errs.Add("confirmPassword", "Passwords do not match")
	}

	if !f.TermsAccepted() {
		errs.Add("terms", "Please accept the terms and conditions")
	}

	return errs
}

// checkPassword returns the first violated password rule, naming the missing
// character class, or "" when the password passes.
func checkPassword(password string) string {
	if len(password) < 8 {
		return "Password should be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	switch {
	case !hasUpper:
		return "Password should contain at least one uppercase letter"
	case !hasLower:
		return "Password should contain at least one lowercase letter"
	case !hasDigit:
		return "Password should contain at least one number"
	case !hasSpecial:
		return "Password should contain at least one special character"
	}
	return ""
}

// LoginForm carries the login fields.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f *LoginForm) Normalize() {
	f.Email = NormalizeEmail(f.Email)
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
