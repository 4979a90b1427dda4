package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// engine returns the shared validator with the kiosk tags registered:
// "kphone", "kemail" and "kpassword". Field names come from the form tag.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("kphone", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || IsPhone(s)
		})
		_ = v.RegisterValidation("kemail", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || IsEmail(s)
		})
		_ = v.RegisterValidation("kpassword", func(fl validator.FieldLevel) bool {
			return len(PasswordProblems(fl.Field().String())) == 0
		})
		validate = v
	})
	return validate
}

// Struct validates s by its validate tags and converts failures to Violations.
// Only the first failing tag per field is kept, except kpassword which lists
// every unmet rule.
func Struct(s any) Violations {
	out := Violations{}
	err := engine().Struct(s)
	if err == nil {
		return out
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		out["_"] = "invalid"
		return out
	}
	for _, fe := range ves {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = codeFor(fe)
	}
	return out
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return CodeRequired
	case "min":
		return CodeTooShort
	case "kphone":
		return CodeInvalidPhone
	case "kemail":
		return CodeInvalidEmail
	case "eqfield":
		return CodeMismatch
	case "kpassword":
		return strings.Join(PasswordProblems(fe.Value().(string)), ",")
	default:
		return fe.Tag()
	}
}
