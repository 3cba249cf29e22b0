package schema

import (
	"encoding/json"
	"fmt"
	"net/url"
	"unicode/utf8"

	// Packages
	tools "github.com/mutablelogic/go-tools"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ValidationError reports the path to a value which does not conform to a
// type. It matches tools.ErrBadParameter with errors.Is.
type ValidationError struct {
	Path   string
	Reason string
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *ValidationError) Error() string {
	return label(e.Path) + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return tools.ErrBadParameter
}

// Validate checks a decoded JSON value (map[string]any, []any, string,
// float64 and so on) against the type. Object keys which are not declared
// are accepted.
func (t *Type) Validate(v any) error {
	return t.validate("", v)
}

// ValidateJSON decodes JSON data and validates it against the type
func (t *Type) ValidateJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return tools.ErrBadParameter.Withf("invalid JSON: %v", err)
	}
	return t.Validate(v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *Type) validate(path string, v any) error {
	switch t.kind {
	case KindString:
		str, ok := v.(string)
		if !ok {
			return typeError(path, t.kind, v)
		}
		return t.validateString(path, str)
	case KindNumber:
		if !isNumber(v) {
			return typeError(path, t.kind, v)
		}
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return typeError(path, t.kind, v)
		}
		if t.items == nil {
			return nil
		}
		for i, item := range arr {
			if err := t.items.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return typeError(path, t.kind, v)
		}
		for _, field := range t.fields {
			key := join(path, field.Name)
			// A null value is present, and fails the type check
			value, exists := obj[field.Name]
			if !exists {
				if field.Type.optional {
					continue
				}
				return &ValidationError{Path: key, Reason: "required"}
			}
			if err := field.Type.validate(key, value); err != nil {
				return err
			}
		}
	default:
		return tools.ErrNotImplemented.Withf("%s: unsupported kind %v", label(path), t.kind)
	}
	return nil
}

func (t *Type) validateString(path, str string) error {
	if t.format == FormatURI {
		if u, err := url.Parse(str); err != nil || u.Scheme == "" {
			return &ValidationError{Path: path, Reason: fmt.Sprintf("invalid url %q", str)}
		}
	}
	n := utf8.RuneCountInString(str)
	if t.minLength != nil && n < *t.minLength {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("must contain at least %d character(s)", *t.minLength)}
	}
	if t.maxLength != nil && n > *t.maxLength {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("must contain at most %d character(s)", *t.maxLength)}
	}
	return nil
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
		return true
	}
	return false
}

func typeError(path string, want Kind, v any) error {
	if v == nil {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("expected %v, got null", want)}
	}
	return &ValidationError{Path: path, Reason: fmt.Sprintf("expected %v, got %T", want, v)}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func label(path string) string {
	if path == "" {
		return "value"
	}
	return path
}
