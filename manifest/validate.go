package manifest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/bjaus/outbound"
)

var (
	structValidator *validator.Validate
	once            sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		//nolint:errcheck // tag name is static and valid
		structValidator.RegisterValidation("verb", func(fl validator.FieldLevel) bool {
			_, ok := outbound.LookupVerb(fl.Field().String())
			return ok
		})
	})
	return structValidator
}

// validate checks the struct tags of a raw manifest.
func validate(r *rawManifest) error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "rawManifest.")
	switch e.Tag() {
	case "verb":
		return fmt.Sprintf("%s: unknown verb %q", field, e.Value())
	case "required_without":
		return fmt.Sprintf("%s: module or symbol is required", field)
	case "excluded_with":
		return fmt.Sprintf("%s: module and symbol are mutually exclusive", field)
	default:
		return fmt.Sprintf("%s: failed %s", field, e.Tag())
	}
}
