package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "flash-asr/internal/app/errors"
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

// Validate checks struct tags on v and reports every failing field in one InvalidConfig error
func Validate(v interface{}) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(apperrors.InvalidConfig, err, "validation failed")
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())

		switch fieldError.Tag() {
		case "required":
			problems = append(problems, field+" is required")
		case "url":
			problems = append(problems, field+" must be a valid URL")
		case "gt", "lte":
			problems = append(problems, fmt.Sprintf("%s out of range (%s %s)", field, fieldError.Tag(), fieldError.Param()))
		default:
			problems = append(problems, field+" is invalid")
		}
	}
	sort.Strings(problems)

	return apperrors.New(apperrors.InvalidConfig, "invalid configuration: "+strings.Join(problems, "; "))
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return apperrors.Newf(apperrors.InvalidArguments, "%s timeout must be positive", name)
	}
	if timeout > MaxRequestTimeout {
		return apperrors.Newf(apperrors.InvalidArguments, "%s timeout too large (max 30 minutes)", name)
	}
	return nil
}
