package typeregistry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateRegistration, Registration{})
	return v
}

// validateRegistration checks that every field name has a usable type.
// Names themselves and the opaque flags are not checked.
func validateRegistration(sl validator.StructLevel) {
	reg := sl.Current().Interface().(Registration)

	if len(reg.FieldTypes) != len(reg.FieldNames) {
		sl.ReportError(reg.FieldTypes, "FieldTypes", "FieldTypes", "fieldcount", fmt.Sprint(len(reg.FieldNames)))
	}
	for i, t := range reg.FieldTypes {
		if t == nil {
			sl.ReportError(reg.FieldTypes, fmt.Sprintf("FieldTypes[%d]", i), "FieldTypes", "required", "")
		}
	}
}

// describeValidation flattens validator errors into one readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "fieldcount":
			parts = append(parts, fmt.Sprintf("%s must have %s entries", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
