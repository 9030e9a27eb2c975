package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validator validates request structs using go-playground tags plus
// the custom hhmm/caldate formats used for wall-clock scheduling values.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// hh:mm wall-clock, zero padded
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timeRe.MatchString(fl.Field().String())
	})

	// calendar date, no timezone
	_ = v.RegisterValidation("caldate", func(fl validator.FieldLevel) bool {
		return dateRe.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var msgs []string
			for _, fe := range errs {
				msgs = append(msgs, fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// IsHHMM reports whether s is a zero-padded "HH:MM" wall-clock value.
func IsHHMM(s string) bool {
	return timeRe.MatchString(s)
}

// IsCalendarDate reports whether s is a "YYYY-MM-DD" calendar date.
func IsCalendarDate(s string) bool {
	return dateRe.MatchString(s)
}
