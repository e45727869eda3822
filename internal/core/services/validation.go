package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so callers can match them to the payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError splits validator failures into missing fields and malformed values.
// extraMissing is appended to whatever the struct tags reported as missing.
func validationError(err error, extraMissing ...string) error {
	missing := append([]string(nil), extraMissing...)
	var invalid []string

	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s failed %s", fe.Field(), describeTag(fe)))
	}

	if len(missing) > 0 {
		return &apperrors.MissingFieldsError{Fields: missing}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidParameters, strings.Join(invalid, "; "))
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "len":
		return "length " + fe.Param()
	case "numeric":
		return "digits only"
	case "oneof":
		return "one of [" + fe.Param() + "]"
	}
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}
