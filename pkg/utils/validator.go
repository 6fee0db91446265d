package utils

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct runs the `validate` tags of s
func ValidateStruct(s any) error {
	return getValidator().Struct(s)
}

// ValidationMessage turns a validator error into one client message.
// messages is keyed by "Field.tag" first, then "tag". A missing required
// field wins over every other failure so that an incomplete form always
// answers the same message.
func ValidationMessage(err error, messages map[string]string, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return lookupMessage(fe, messages, fallback)
		}
	}
	return lookupMessage(verrs[0], messages, fallback)
}

func lookupMessage(fe validator.FieldError, messages map[string]string, fallback string) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Tag()]; ok {
		return msg
	}
	return fallback
}

// GetValidationErrors คืน field -> tag สำหรับ log
func GetValidationErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
