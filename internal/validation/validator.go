// Package validation is the request validation boundary. It plugs
// go-playground/validator into gin's binding and turns failures into
// field-keyed, human-readable messages.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// emailPattern requires a dotted domain. It runs after the "email" rule,
// which already checks the address syntax.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator is gin's binding engine for this service: the
// binding.StructValidator behind ShouldBindJSON, with English messages.
type Validator struct {
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
}

var _ binding.StructValidator = &Validator{}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns the process-wide validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = &Validator{}
	})
	return defaultValidator
}

// Install makes Default the validator used by gin's ShouldBind* calls.
func Install() {
	binding.Validator = Default()
}

func (v *Validator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *Validator) Translator() ut.Translator {
	v.lazyinit()
	return v.translator
}

// Check validates obj and returns a *schema.ValidationError on failure.
func (v *Validator) Check(obj any) error {
	if err := v.ValidateStruct(obj); err != nil {
		return v.FromError(err)
	}
	return nil
}

func (v *Validator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())
		v.validate.SetTagName("binding")

		// Report fields by their JSON name.
		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.validate.RegisterValidation("notblank", validators.NotBlank)
		_ = v.validate.RegisterValidation("email_tld", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})

		en := en.New()
		uni := ut.New(en, en)
		v.translator, _ = uni.GetTranslator("en")

		_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)
		v.registerCustomTranslations()
	})
}

func (v *Validator) registerCustomTranslations() {
	simple := func(tag, text string) {
		_ = v.validate.RegisterTranslation(tag, v.translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, Label(fe.Field()), fe.Param())
			return t
		})
	}

	simple("required", "{0} is required")
	simple("notblank", "{0} is required")
	simple("email_tld", "{0} must be a valid email address")
	simple("email", "{0} must be a valid email address")
	simple("gte", "{0} must be at least {1}")
	simple("lte", "{0} must be at most {1}")
	simple("min", "{0} must be at least {1}")
	simple("max", "{0} must be at most {1}")

	_ = v.validate.RegisterTranslation("oneof", v.translator, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0} must be one of: {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", Label(fe.Field()), strings.Join(strings.Fields(fe.Param()), ", "))
		return t
	})
}

// Label turns a JSON field name into a sentence-case label:
// "ownershipPercentage" becomes "Ownership percentage".
func Label(field string) string {
	if field == "" {
		return field
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()

	if valueType == reflect.Pointer {
		valueType = value.Elem().Kind()
	}

	return valueType
}
