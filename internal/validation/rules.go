// Package validation provides custom validation rules for the application.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	validation "github.com/jellydator/validation"
)

// ReplaceValidationError returns sentinel in place of any rule failure in err.
// Internal errors raised by a rule are returned unchanged.
func ReplaceValidationError(err, sentinel error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return sentinel
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NotEmptyJSON validates that a raw JSON value is present and is not null, an
// empty string, an empty object or an empty array.
var NotEmptyJSON = validation.By(func(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return validation.NewError("validation_json_type", "must be raw JSON")
	}

	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `""`, "{}", "[]":
		return validation.NewError("validation_json_empty", "must not be empty")
	}
	return nil
})
