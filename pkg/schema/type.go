package schema

import (
	"slices"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Kind is the variant of a schema Type
type Kind int

// Type describes the shape of a JSON value. It can validate decoded values
// and be converted into a portable JSON schema document. Types are immutable:
// every modifier returns a copy.
type Type struct {
	kind        Kind
	description string
	format      string
	minLength   *int
	maxLength   *int
	optional    bool
	items       *Type
	fields      []Field
}

// Field is a named property of an object type
type Field struct {
	Name string
	Type *Type
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	KindString Kind = iota
	KindNumber
	KindArray
	KindObject
)

const (
	// FormatURI marks a string as an absolute URL
	FormatURI = "uri"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// String returns a string type
func String() *Type {
	return &Type{kind: KindString}
}

// Number returns a number type
func Number() *Type {
	return &Type{kind: KindNumber}
}

// Array returns an array type with the given item type
func Array(items *Type) *Type {
	return &Type{kind: KindArray, items: items}
}

// Object returns an object type with the given fields, in declaration order
func Object(fields ...Field) *Type {
	return &Type{kind: KindObject, fields: slices.Clone(fields)}
}

// Prop returns a named field for an object type
func Prop(name string, t *Type) Field {
	return Field{Name: name, Type: t}
}

///////////////////////////////////////////////////////////////////////////////
// MODIFIERS

// Describe sets the description
func (t *Type) Describe(description string) *Type {
	c := t.clone()
	c.description = description
	return c
}

// Optional marks the type as not required when used as an object field
func (t *Type) Optional() *Type {
	c := t.clone()
	c.optional = true
	return c
}

// URL constrains a string to an absolute URL
func (t *Type) URL() *Type {
	c := t.clone()
	c.format = FormatURI
	return c
}

// Min sets the minimum length of a string
func (t *Type) Min(n int) *Type {
	c := t.clone()
	c.minLength = types.Ptr(n)
	return c
}

// Max sets the maximum length of a string
func (t *Type) Max(n int) *Type {
	c := t.clone()
	c.maxLength = types.Ptr(n)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *Type) Kind() Kind {
	return t.kind
}

func (t *Type) Description() string {
	return t.description
}

func (t *Type) IsOptional() bool {
	return t.optional
}

// Fields returns the fields of an object type
func (t *Type) Fields() []Field {
	return slices.Clone(t.fields)
}

// JSONSchema converts the type into a portable JSON schema
func (t *Type) JSONSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Description: t.description,
	}
	switch t.kind {
	case KindString:
		s.Type = "string"
		s.Format = t.format
		s.MinLength = t.minLength
		s.MaxLength = t.maxLength
	case KindNumber:
		s.Type = "number"
	case KindArray:
		s.Type = "array"
		if t.items != nil {
			s.Items = t.items.JSONSchema()
		}
	case KindObject:
		s.Type = "object"
		s.Properties = make(map[string]*jsonschema.Schema, len(t.fields))
		for _, field := range t.fields {
			s.Properties[field.Name] = field.Type.JSONSchema()
			if !field.Type.optional {
				s.Required = append(s.Required, field.Name)
			}
		}
	}
	return s
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *Type) clone() *Type {
	c := *t
	c.fields = slices.Clone(t.fields)
	return &c
}
