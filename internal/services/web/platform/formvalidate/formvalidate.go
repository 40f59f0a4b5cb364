// Package formvalidate checks submitted forms with struct tags and reports
// localizable per-field messages.
package formvalidate

import (
	"errors"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Message is one field error: either a catalog key with arguments or a
// ready-made text from the backend.
type Message struct {
	Key  string
	Args []any
	Text string
}

// Errors maps form field names to their first error.
type Errors map[string]Message

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields returns the failing field names in order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for field := range e {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Add records msg for field unless the field already failed.
func (e Errors) Add(field string, msg Message) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("imagesrc", imageSource)
		instance = v
	})
	return instance
}

// Struct validates form and returns nil when every field passes. Tags are
// read from `validate`, field names from `form`.
func Struct(form any) Errors {
	err := get().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"": {Key: "core.validation.invalid"}}
	}
	out := Errors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), messageFor(fe))
	}
	return out
}

// FromFields turns backend field errors into form errors.
func FromFields(fields map[string][]string) Errors {
	if len(fields) == 0 {
		return nil
	}
	out := Errors{}
	for field, messages := range fields {
		if len(messages) == 0 {
			continue
		}
		out.Add(field, Message{Text: strings.Join(messages, " ")})
	}
	return out
}

func messageFor(fe validator.FieldError) Message {
	switch fe.Tag() {
	case "required", "email", "url", "numeric", "datetime":
		return Message{Key: "core.validation." + fe.Tag()}
	case "min", "max", "len":
		if fe.Kind() == reflect.String {
			return Message{Key: "core.validation." + fe.Tag() + "_chars", Args: []any{fe.Param()}}
		}
		return Message{Key: "core.validation." + fe.Tag(), Args: []any{fe.Param()}}
	case "gte", "lte":
		return Message{Key: "core.validation." + fe.Tag(), Args: []any{fe.Param()}}
	case "eqfield":
		return Message{Key: "core.validation.eqfield"}
	case "oneof":
		return Message{Key: "core.validation.oneof"}
	case "required_if", "required_unless":
		return Message{Key: "core.validation.required"}
	case "imagesrc":
		return Message{Key: "core.validation.imagesrc"}
	default:
		return Message{Key: "core.validation.invalid"}
	}
}

// imageSource accepts an http(s) URL or a base64 image data URL.
func imageSource(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	lower := strings.ToLower(value)
	switch {
	case strings.HasPrefix(lower, "data:image/"):
		return strings.Contains(lower[:min(len(lower), 64)], ";base64,")
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(value)
		return err == nil && u.Host != ""
	default:
		return false
	}
}
