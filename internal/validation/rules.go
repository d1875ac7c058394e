// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/archivebot/decrypt-s3-object/internal/errors"
)

// WrapValidationError wraps validation errors as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// FlatJSONObject validates that a string is a JSON object whose values are
// all strings, the shape required of a material description.
var FlatJSONObject = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_flat_json_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return validation.NewError(
			"validation_flat_json",
			"must be a JSON object with string values",
		)
	}
	return nil
})

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
