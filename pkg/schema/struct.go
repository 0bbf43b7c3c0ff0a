package schema

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// StructValidator validates block data by decoding it into T and checking
// the "validate" struct tags of T. Field paths in issues use JSON names.
type StructValidator[T any] struct {
	validate *validator.Validate
}

func NewStructValidator[T any]() *StructValidator[T] {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &StructValidator[T]{validate: v}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func (v *StructValidator[T]) Parse(data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode data")
	}

	var target T
	if err := json.Unmarshal(raw, &target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ValidationError{Issues: []Issue{{
				Path:    typeErr.Field,
				Message: "expected " + typeErr.Type.String() + ", got " + typeErr.Value,
			}}}
		}
		return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}

	err = v.validate.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		issues = append(issues, Issue{Path: path, Message: msg})
	}
	return &ValidationError{Issues: issues}
}
