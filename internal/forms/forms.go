// Package forms provides declarative field-level validation for the
// submitted registration, login and post forms.
package forms

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule checks a single field value against the whole submission and returns
// a user-visible message, or "" when the value passes.
type Rule func(value string, form url.Values) string

// Field is a named form field with an ordered list of rules
type Field struct {
	Name  string
	Rules []Rule
}

// Form is an ordered set of fields with their validation rules
type Form struct {
	Fields []Field
}

// FieldError is a user-visible (field, message) pair
type FieldError struct {
	Field   string
	Message string
}

// Validate checks every field in declaration order. Each field stops at its
// first failing rule; errors across fields are accumulated for display.
func (f *Form) Validate(values url.Values) (bool, []FieldError) {
	var errs []FieldError
	for _, field := range f.Fields {
		value := values.Get(field.Name)
		for _, rule := range field.Rules {
			if msg := rule(value, values); msg != "" {
				errs = append(errs, FieldError{Field: field.Name, Message: msg})
				break
			}
		}
	}
	return len(errs) == 0, errs
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Required fails on empty or whitespace-only values
func Required() Rule {
	return func(value string, _ url.Values) string {
		if strings.TrimSpace(value) == "" {
			return "This field is required."
		}
		return ""
	}
}

// Length enforces an inclusive character range
func Length(min, max int) Rule {
	return func(value string, _ url.Values) string {
		if n := utf8.RuneCountInString(value); n < min || n > max {
			return fmt.Sprintf("Field must be between %d and %d characters long.", min, max)
		}
		return ""
	}
}

// MaxLength enforces an inclusive character ceiling
func MaxLength(max int) Rule {
	return func(value string, _ url.Values) string {
		if utf8.RuneCountInString(value) > max {
			return fmt.Sprintf("Field cannot be longer than %d characters.", max)
		}
		return ""
	}
}

// Email checks the value for a plausible email shape
func Email() Rule {
	return func(value string, _ url.Values) string {
		if !emailRegex.MatchString(value) {
			return "Invalid email address."
		}
		return ""
	}
}

// EqualTo fails with the given message unless the value matches another field
func EqualTo(other, message string) Rule {
	return func(value string, form url.Values) string {
		if value != form.Get(other) {
			return message
		}
		return ""
	}
}

// Registration builds the validator for the registration form
func Registration() *Form {
	return &Form{Fields: []Field{
		{Name: "username", Rules: []Rule{Required(), Length(5, 100)}},
		{Name: "email", Rules: []Rule{Required(), Email(), MaxLength(100)}},
		{Name: "password", Rules: []Rule{Required(), Length(5, 100)}},
		{Name: "confirm_password", Rules: []Rule{Required(), EqualTo("password", "Passwords Must Match")}},
	}}
}

// Login builds the validator for the login form
func Login() *Form {
	return &Form{Fields: []Field{
		{Name: "username", Rules: []Rule{Required(), Length(5, 100)}},
		{Name: "password", Rules: []Rule{Required(), Length(5, 100)}},
	}}
}

// Post builds the validator for the post authoring form
func Post() *Form {
	return &Form{Fields: []Field{
		{Name: "header", Rules: []Rule{Required(), MaxLength(100)}},
		{Name: "content", Rules: []Rule{Required(), MaxLength(1000)}},
	}}
}
