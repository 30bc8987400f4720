// Package forms declares the write-operation forms and their field
// constraints. Each form binds from a submitted request body and is validated
// with go-playground/validator before any persistence call runs; a failed
// validation carries per-field messages back to the template so the form can
// be re-rendered with the submitted values preserved.
package forms

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator.Validate caches struct
// metadata, so a single instance is reused across requests.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Errors maps a form field name to a user-facing validation message.
type Errors map[string]string

// Get returns the message for a field, or "" when the field is valid.
func (e Errors) Get(field string) string {
	return e[field]
}

// PostForm carries the fields for creating or editing a post.
// The author is bound from the authenticated identity, not from a form field.
type PostForm struct {
	Title    string `validate:"required"`
	Subtitle string `validate:"required"`
	ImgURL   string `validate:"required,url"`
	Body     string `validate:"required"`
}

// BindPostForm fills a PostForm from submitted form values.
func BindPostForm(values url.Values) *PostForm {
	return &PostForm{
		Title:    strings.TrimSpace(values.Get("title")),
		Subtitle: strings.TrimSpace(values.Get("subtitle")),
		ImgURL:   strings.TrimSpace(values.Get("img_url")),
		Body:     values.Get("body"),
	}
}

// Validate checks the form's constraints and returns per-field messages.
// The second return value is true when the form is valid.
func (f *PostForm) Validate() (Errors, bool) {
	return check(f)
}

// RegisterForm carries the fields for creating an account.
type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// BindRegisterForm fills a RegisterForm from submitted form values.
func BindRegisterForm(values url.Values) *RegisterForm {
	return &RegisterForm{
		Name:     strings.TrimSpace(values.Get("name")),
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
}

// Validate checks the form's constraints and returns per-field messages.
func (f *RegisterForm) Validate() (Errors, bool) {
	return check(f)
}

// LoginForm carries the fields for authenticating a session.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// BindLoginForm fills a LoginForm from submitted form values.
func BindLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
}

// Validate checks the form's constraints and returns per-field messages.
func (f *LoginForm) Validate() (Errors, bool) {
	return check(f)
}

// CommentForm carries the single field for replying to a post.
type CommentForm struct {
	Text string `validate:"required"`
}

// BindCommentForm fills a CommentForm from submitted form values.
func BindCommentForm(values url.Values) *CommentForm {
	return &CommentForm{
		Text: strings.TrimSpace(values.Get("text")),
	}
}

// Validate checks the form's constraints and returns per-field messages.
func (f *CommentForm) Validate() (Errors, bool) {
	return check(f)
}

// check runs the validator over a form and converts validator.ValidationErrors
// into the Errors map keyed by struct field name.
func check(form interface{}) (Errors, bool) {
	err := validate.Struct(form)
	if err == nil {
		return nil, true
	}

	errs := Errors{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["Form"] = "The submitted data could not be validated."
		return errs, false
	}
	for _, fieldErr := range validationErrors {
		errs[fieldErr.Field()] = messageFor(fieldErr)
	}
	return errs, false
}

// messageFor maps a failed constraint to a user-facing message.
func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	default:
		return "This value is invalid."
	}
}
