package forms

import (
	"net/url"
	"testing"
)

func TestPostFormValid(t *testing.T) {
	form := BindPostForm(url.Values{
		"title":    {"A Title"},
		"subtitle": {"A Subtitle"},
		"img_url":  {"https://example.com/bg.jpg"},
		"body":     {"<p>Hello</p>"},
	})

	errs, ok := form.Validate()
	if !ok {
		t.Fatalf("expected valid form, got errors: %v", errs)
	}
}

func TestPostFormMissingFields(t *testing.T) {
	form := BindPostForm(url.Values{})

	errs, ok := form.Validate()
	if ok {
		t.Fatal("expected validation failure for empty form")
	}
	for _, field := range []string{"Title", "Subtitle", "ImgURL", "Body"} {
		if errs.Get(field) == "" {
			t.Errorf("expected error for field %s, got none", field)
		}
	}
}

func TestPostFormRejectsBadURL(t *testing.T) {
	form := BindPostForm(url.Values{
		"title":    {"A Title"},
		"subtitle": {"A Subtitle"},
		"img_url":  {"not a url"},
		"body":     {"body"},
	})

	errs, ok := form.Validate()
	if ok {
		t.Fatal("expected validation failure for malformed image URL")
	}
	if errs.Get("ImgURL") != "Enter a valid URL." {
		t.Errorf("unexpected ImgURL message: %q", errs.Get("ImgURL"))
	}
	if errs.Get("Title") != "" {
		t.Errorf("did not expect Title error, got %q", errs.Get("Title"))
	}
}

func TestRegisterFormRejectsBadEmail(t *testing.T) {
	form := BindRegisterForm(url.Values{
		"name":     {"Alice"},
		"email":    {"not-an-email"},
		"password": {"secret"},
	})

	errs, ok := form.Validate()
	if ok {
		t.Fatal("expected validation failure for malformed email")
	}
	if errs.Get("Email") != "Enter a valid email address." {
		t.Errorf("unexpected Email message: %q", errs.Get("Email"))
	}
}

func TestRegisterFormNoPasswordFormatCheck(t *testing.T) {
	// Any non-empty password is acceptable.
	form := BindRegisterForm(url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"x"},
	})

	if errs, ok := form.Validate(); !ok {
		t.Fatalf("expected valid form, got errors: %v", errs)
	}
}

func TestLoginFormRequiresBothFields(t *testing.T) {
	form := BindLoginForm(url.Values{"email": {"a@x.com"}})

	errs, ok := form.Validate()
	if ok {
		t.Fatal("expected validation failure for missing password")
	}
	if errs.Get("Password") == "" {
		t.Error("expected error for Password")
	}
	if errs.Get("Email") != "" {
		t.Errorf("did not expect Email error, got %q", errs.Get("Email"))
	}
}

func TestCommentFormRequiresText(t *testing.T) {
	form := BindCommentForm(url.Values{"text": {"   "}})

	if _, ok := form.Validate(); ok {
		t.Fatal("expected validation failure for whitespace-only comment")
	}

	form = BindCommentForm(url.Values{"text": {"nice post"}})
	if errs, ok := form.Validate(); !ok {
		t.Fatalf("expected valid form, got errors: %v", errs)
	}
}

func TestBindTrimsWhitespace(t *testing.T) {
	form := BindRegisterForm(url.Values{
		"name":     {"  Alice  "},
		"email":    {" alice@example.com "},
		"password": {" secret "},
	})

	if form.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", form.Name)
	}
	if form.Email != "alice@example.com" {
		t.Errorf("expected trimmed email, got %q", form.Email)
	}
	// Passwords are taken verbatim.
	if form.Password != " secret " {
		t.Errorf("expected untrimmed password, got %q", form.Password)
	}
}

func TestErrorsGetOnNilMap(t *testing.T) {
	var errs Errors
	if errs.Get("Title") != "" {
		t.Error("expected empty message from nil Errors map")
	}
}
