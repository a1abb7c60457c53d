package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
)

// Validation rule patterns
var (
	// MobilePattern accepts an optional leading + followed by 7 to 15 digits.
	MobilePattern = `^\+?[0-9]{7,15}$`

	mobileRegexp = regexp.MustCompile(MobilePattern)
)

var registerOnce sync.Once

// Register installs the custom rules on gin's validator engine. Safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("validation: gin binding engine is not go-playground/validator")
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "notblank", notBlank)
		mustRegister(v, "mobile", mobile)
		mustRegister(v, "date", date)
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func mobile(fl validator.FieldLevel) bool {
	return mobileRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
}

func date(fl validator.FieldLevel) bool {
	_, err := helpers.ParseDate(fl.Field().String())
	return err == nil
}

// FieldErrors flattens validator errors into the first offending JSON field and a readable message.
func FieldErrors(err error) (field, message string, ok bool) {
	verrs, isVErr := err.(validator.ValidationErrors)
	if !isVErr || len(verrs) == 0 {
		return "", "", false
	}
	fe := verrs[0]
	return jsonFieldName(fe), formatValidationError(fe), true
}

// jsonFieldName lower-cases the first letter of the struct field, which matches the camelCase JSON names.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonFieldName(e)
	switch e.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return field + " must contain at least " + e.Param() + " item(s)"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "mobile":
		return field + " must be a valid mobile number"
	case "date":
		return field + " must be a date (YYYY-MM-DD)"
	default:
		return field + " validation failed: " + e.Tag()
	}
}
