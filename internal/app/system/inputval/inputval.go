// Package inputval validates form and JSON input using struct tags.
//
// Fields carry a `validate:"..."` rule set (go-playground/validator syntax)
// and a `label:"..."` used in messages. Field names in the result come from
// the `json` tag so API clients can map errors back to their payload.
//
//	type productInput struct {
//	    Title string  `json:"title" validate:"required,max=200" label:"Title"`
//	    Price float64 `json:"price" validate:"gte=0" label:"Price"`
//	}
//	if res := inputval.Validate(in); res.HasErrors() {
//	    reRender(res.First())
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/vastusite/internal/app/system/slugs"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects the field errors of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first message, or "" when there are none.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error. Handlers use it for checks that don't fit a tag.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
		mustRegister(v, "imageurl", func(fl validator.FieldLevel) bool {
			return IsValidImageRef(fl.Field().String())
		})
		mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
			return slugs.IsValid(fl.Field().String())
		})
		mustRegister(v, "productcategory", func(fl validator.FieldLevel) bool {
			return models.IsValidProductCategory(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %q: %v", tag, err))
	}
}

// Validate runs the struct's validate tags and returns human-readable
// messages in field order.
func Validate(s any) Result {
	var res Result
	err := engine().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", "Invalid input.")
		return res
	}

	labels := labelsOf(s)
	for _, fe := range verrs {
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.StructField()
		}
		res.Add(fe.Field(), message(label, fe))
	}
	return res
}

func labelsOf(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make(map[string]string, t.NumField())
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		out[f.Name] = f.Tag.Get("label")
	}
	return out
}

func message(label string, fe validator.FieldError) string {
	numeric := isNumericKind(fe.Kind())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max", "lte":
		if numeric {
			return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "min", "gte":
		if numeric {
			return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "imageurl":
		return label + " must be an http(s) URL or a path starting with /."
	case "slug":
		return label + " may only contain lowercase letters, numbers and hyphens."
	case "productcategory":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(models.ProductCategories, ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return label + " is invalid."
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
