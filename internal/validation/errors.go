package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/go-playground/validator/v10"
)

// FromError converts a binding or validation failure into a
// *schema.ValidationError. Errors that already are one pass through;
// nil stays nil.
func (v *Validator) FromError(err error) error {
	if err == nil {
		return nil
	}

	var existing *schema.ValidationError
	if errors.As(err, &existing) {
		return existing
	}

	verr := schema.NewValidationError()

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		trans := v.Translator()
		for _, fe := range fieldErrs {
			verr.AddField(fieldKey(fe), fe.Translate(trans))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			verr.AddGlobal("Request body has an invalid type")
			break
		}
		verr.AddField(field, typeMessage(field, typeErr.Type))
	case errors.As(err, &syntaxErr):
		verr.AddGlobal(fmt.Sprintf("Request body is not valid JSON (offset %d)", syntaxErr.Offset))
	case errors.Is(err, io.EOF):
		verr.AddGlobal("Request body is required")
	case errors.Is(err, io.ErrUnexpectedEOF):
		verr.AddGlobal("Request body is not valid JSON")
	default:
		verr.AddGlobal(err.Error())
	}
	return verr
}

// FromError converts err with the Default validator.
func FromError(err error) error {
	return Default().FromError(err)
}

// fieldKey is the JSON path of the failing field without the struct name.
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func typeMessage(field string, t reflect.Type) string {
	label := Label(field[strings.LastIndexByte(field, '.')+1:])
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return label + " has an invalid type"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return label + " must be a number"
	case reflect.String:
		return label + " must be a string"
	case reflect.Bool:
		return label + " must be true or false"
	}
	return label + " has an invalid type"
}
