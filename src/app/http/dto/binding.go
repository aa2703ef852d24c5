package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"qaboard/src/core/domain"
)

var registerOnce sync.Once

// RegisterValidation makes validation errors report wire field names (the
// json tag, else the form tag) instead of Go struct field names. It is safe
// to call more than once.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(wireName)
	})
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// BindError converts a gin binding failure into a MalformedBody domain error,
// naming the offending field when it can be determined.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewMalformedBodyError(fe.Field(), fmt.Errorf("%s is %s", fe.Field(), fe.Tag()))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domain.NewMalformedBodyError(typeErr.Field,
			fmt.Errorf("%s must be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value))
	}

	return domain.NewMalformedBodyError("", err)
}
