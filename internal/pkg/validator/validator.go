package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"shareit/internal/pkg/apperr"
	"shareit/internal/pkg/datetime"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	datetime.Register(validate)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string)
	for _, err := range verrs {
		errs[err.Field()] = err.Tag()
	}
	return errs
}

// Check runs Validate and folds the failures into a single bad-request error.
func Check(v interface{}) error {
	errs := Validate(v)
	if errs == nil {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for field, tag := range errs {
		fields = append(fields, field+"="+tag)
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: invalid fields: %s", apperr.ErrBadRequest, strings.Join(fields, ", "))
}
