// Package validation wraps go-playground/validator with the booking API's
// custom tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}

		return name
	})

	rules := map[string]validator.Func{
		"iso_date": func(fl validator.FieldLevel) bool {
			if fl.Field().String() == "" {
				return true
			}

			_, err := time.Parse(time.DateOnly, fl.Field().String())

			return err == nil
		},
		"payment_method": func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || domain.PaymentMethod(fl.Field().String()).Valid()
		},
		"rating_type": func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || domain.RatingType(fl.Field().String()).Valid()
		},
		"user_role": func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || domain.Role(fl.Field().String()).Valid()
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}

	return v
}

// ValidationError holds one message per failed field.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct returns a *ValidationError when s violates its validate tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		var message string

		switch fe.Tag() {
		case "iso_date":
			message = fmt.Sprintf("field '%s' must be a date in YYYY-MM-DD format", fe.Field())
		case "payment_method":
			message = fmt.Sprintf("field '%s' must be one of CREDIT_CARD, DEBIT_CARD, BANK_TRANSFER, PAYPAL, CASH", fe.Field())
		case "rating_type":
			message = fmt.Sprintf("field '%s' must be CLIENT_RATING or OWNER_RATING", fe.Field())
		case "user_role":
			message = fmt.Sprintf("field '%s' must be CLIENT, OWNER or ADMIN", fe.Field())
		default:
			message = fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}

		messages = append(messages, message)
	}

	return &ValidationError{Errors: messages}
}
