package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Validator struct {
	*validator.Validate
	trans ut.Translator
}

// FieldErrors maps a json field path (e.g. "items[0].price") to a readable message.
type FieldErrors map[string]string

type ValidationErrors struct {
	errors FieldErrors
}

func (v *ValidationErrors) AddFieldError(key, message string) {
	if v.errors == nil {
		v.errors = make(FieldErrors)
	}

	if _, ok := v.errors[key]; ok {
		return
	}

	v.errors[key] = message
}

func (v *ValidationErrors) Error() string {
	if len(v.errors) == 0 {
		return "{}"
	}

	var builder strings.Builder

	_ = json.NewEncoder(&builder).Encode(v.errors)

	return strings.TrimSpace(builder.String())
}

func (v *ValidationErrors) FieldErrors() FieldErrors {
	return v.errors
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()

	uni := ut.New(english, english)

	trans, _ := uni.GetTranslator("en")

	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		fieldTag := fld.Tag.Get("json")

		if fieldTag == "" || fieldTag == "-" {
			return fld.Name
		}
		return strings.Split(fieldTag, ",")[0]
	})

	registerCustomErrorMessages(validate, trans)

	return &Validator{
		Validate: validate,
		trans:    trans,
	}
}

// Struct validates val and collects every failing field. It returns nil when val is valid.
func (v *Validator) Struct(val any) *ValidationErrors {
	err := v.Validate.Struct(val)
	if err == nil {
		return nil
	}

	validationErrors := &ValidationErrors{}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		validationErrors.AddFieldError("_", err.Error())
		return validationErrors
	}

	for _, entry := range fieldErrs {
		validationErrors.AddFieldError(fieldPath(entry), entry.Translate(v.trans))
	}

	return validationErrors
}

// fieldPath drops the root struct name from the namespace, so
// "sessionRequest.items[0].price" becomes "items[0].price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func registerCustomErrorMessages(validate *validator.Validate, trans ut.Translator) {
	_ = validate.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})

	_ = validate.RegisterTranslation("gte", trans, func(ut ut.Translator) error {
		return ut.Add("gte", "{0} must be {1} or greater", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gte", fe.Field(), fe.Param())
		return t
	})

	_ = validate.RegisterTranslation("lte", trans, func(ut ut.Translator) error {
		return ut.Add("lte", "{0} must be {1} or less", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("lte", fe.Field(), fe.Param())
		return t
	})

	_ = validate.RegisterTranslation("gt", trans, func(ut ut.Translator) error {
		return ut.Add("gt", "{0} must be greater than {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gt", fe.Field(), fe.Param())
		return t
	})
}
