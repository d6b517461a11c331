// Package validate checks the shape of inbound request bodies before
// any service call. Failure is a plain boolean; the handlers own the
// HTTP-level error messages.
package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// "required" alone passes whitespace-only strings; notblank is the
	// trimmed-length check every text field in the API actually needs.
	_ = val.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return val
}

// UserBody is the inbound signup/login/reset payload.
type UserBody struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

// MessageBody is the inbound message payload. The timestamp is optional
// and deliberately unvalidated; normalization decides what it means.
type MessageBody struct {
	Msg         string `json:"msg" validate:"required,notblank"`
	MsgFrom     string `json:"msgFrom" validate:"required,notblank"`
	MsgDateTime string `json:"msgDateTime" validate:"-"`
}

// User reports whether a user body has a non-blank username and
// password.
func User(b UserBody) bool {
	return v.Struct(b) == nil
}

// Message reports whether a message body has non-blank msg and msgFrom
// fields, independent of timestamp presence.
func Message(b MessageBody) bool {
	return v.Struct(b) == nil
}
