// Package validate checks request bodies against their struct tags and reports
// failures as {msg, param, location} entries.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/devconnector/devconnector-go/internal/model"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// Errors is the list of field errors for a single request.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Msg
	}
	return strings.Join(msgs, "; ")
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := model.ParseDate(fl.Field().String())
			return err == nil
		})
		instance = v
	})
	return instance
}

// Struct validates v and returns Errors when any field is rejected.
// The message of a field comes from its msg tag, falling back to a generic one.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Msg:      message(t, fe),
			Param:    fe.Field(),
			Location: "body",
		})
	}
	return out
}

func message(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fe.Field() + " is invalid"
}
