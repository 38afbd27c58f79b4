package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"golang.org/x/text/unicode/norm"
)

// personNamePattern accepts Latin and Greek letters plus whitespace. Input is
// composed to NFC first so decomposed accents match.
var personNamePattern = regexp.MustCompile(`^[\p{Latin}\p{Greek}\s]+$`)

var fieldLabels = map[string]string{
	"firstName":    "First name",
	"lastName":     "Last name",
	"address":      "Address",
	"email":        "Email",
	"homeNumber":   "Home number",
	"workNumber":   "Work number",
	"mobileNumber": "Mobile number",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so violations line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("personname", isPersonName); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(contactNumbersRule, CustomerRecord{})

	return v
}

func isPersonName(fl validator.FieldLevel) bool {
	return personNamePattern.MatchString(norm.NFC.String(fl.Field().String()))
}

func contactNumbersRule(sl validator.StructLevel) {
	record := sl.Current().Interface().(CustomerRecord)
	if !record.HasContactNumber() {
		sl.ReportError(record.MobileNumber, "contactNumbers", "ContactNumbers", "contactnumbers", "")
	}
}

// Validate checks the record against the customer rules. It returns nil or
// an INVALID_INPUT AppError listing violations in field order.
func (r *CustomerRecord) Validate() error {
	if r == nil {
		return ErrInvalidInput("customer is required")
	}

	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrInvalidInput(err.Error())
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}

	return ErrValidationFailed(violations)
}

func violationMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]

	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s must not be empty.", label)
	case "min", "max":
		switch fe.Field() {
		case "firstName", "lastName":
			return fmt.Sprintf("%s must have between 2 and 100 characters.", label)
		case "address":
			return "Address must have between 3 and 150 characters."
		}
		return fmt.Sprintf("%s must have at most %s characters.", label, fe.Param())
	case "personname":
		return "Names should only contain letters."
	case "email":
		return "Email must be a valid email address."
	case "contactnumbers":
		return "At least one contact number must be provided."
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
