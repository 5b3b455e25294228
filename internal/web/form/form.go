// Package form binds posted HTML forms and turns validation failures into
// per-field messages a template can print next to each input.
package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// General is the key for errors that do not belong to a single field.
const General = "_"

// Errors maps a form field name to its message. A nil Errors is empty.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Bind decodes the request form into dst and validates it with the binding
// tags on dst. Messages use the field's label tag, falling back to its form
// name.
func Bind(c *gin.Context, dst interface{}) Errors {
	err := c.ShouldBind(dst)
	if err == nil {
		return Errors{}
	}
	return Translate(err, dst)
}

// Translate converts a binding error for dst into field messages.
func Translate(err error, dst interface{}) Errors {
	out := Errors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(General, "Invalid form submission.")
		return out
	}

	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, fe := range verrs {
		name, label := fe.Field(), fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if f := strings.Split(sf.Tag.Get("form"), ",")[0]; f != "" {
				name = f
			}
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		out.Add(name, message(label, fe))
	}
	return out
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " is invalid"
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return label + " must be a valid date"
	default:
		return label + " is invalid"
	}
}
