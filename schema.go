// Package ews provides the schema model used to drive XML serialization of
// Exchange Web Services (EWS) operation shapes.
//
// A Schema describes the shape of a serializable type as known at build
// time: a structure with ordered members, an enum of unit variants, or a
// union of structured variants. Traits attached to a schema or its members
// carry the declarative serialization annotations (XML namespaces, name
// prefixes, attribute roles) that the xmlcodec package compiles into writer
// functions.
package ews

import "strings"

// ShapeType is the kind of shape a Schema describes.
type ShapeType int

// Enumerates the shape types understood by the serialization codec.
const (
	ShapeTypeString ShapeType = iota
	ShapeTypeBoolean
	ShapeTypeInteger
	ShapeTypeLong
	ShapeTypeFloat
	ShapeTypeDouble
	ShapeTypeTimestamp
	ShapeTypeEnum
	ShapeTypeStructure
	ShapeTypeUnion
)

// String returns the shape type's name as used in diagnostics.
func (t ShapeType) String() string {
	switch t {
	case ShapeTypeString:
		return "string"
	case ShapeTypeBoolean:
		return "boolean"
	case ShapeTypeInteger:
		return "integer"
	case ShapeTypeLong:
		return "long"
	case ShapeTypeFloat:
		return "float"
	case ShapeTypeDouble:
		return "double"
	case ShapeTypeTimestamp:
		return "timestamp"
	case ShapeTypeEnum:
		return "enum"
	case ShapeTypeStructure:
		return "structure"
	case ShapeTypeUnion:
		return "union"
	default:
		return "unknown"
	}
}

// ShapeID fields of a shape ID, e.g. "exchange.types#FindItem$traversal".
type ShapeID struct {
	Namespace, Name, Member string
}

func stoid(s string) ShapeID {
	ns, n, _ := strings.Cut(s, "#")
	n, m, _ := strings.Cut(n, "$")
	return ShapeID{ns, n, m}
}

// String renders the shape ID in its declaration form.
func (id ShapeID) String() string {
	s := id.Namespace + "#" + id.Name
	if id.Member != "" {
		s += "$" + id.Member
	}
	return s
}

// Schema encodes information about a serializable shape.
//
// Member order is declaration order, and that order is observable: the
// codec emits attributes and child elements exactly in the order members
// were declared. Traits are likewise kept in declaration order so that
// namespace declarations are emitted the way they were written.
type Schema struct {
	id   ShapeID
	typ  ShapeType
	name string

	members    []*Schema
	traits     []Trait
	positional bool
	unit       bool
}

// SchemaOptions configures a new Schema.
type SchemaOptions struct {
	members []*Schema
	traits  []Trait
}

// WithMember adds a named member targeting the given schema.
//
// Traits provided for the member here take precedence over traits on the
// target when both declare the same trait.
func WithMember(name string, target *Schema, traits ...Trait) func(*SchemaOptions) {
	return func(o *SchemaOptions) {
		m := memberOf(target)
		m.id.Member = name
		m.traits = append(m.traits, traits...)
		o.members = append(o.members, m)
	}
}

// WithPositionalMember adds an unnamed member targeting the given schema.
// Positional members are addressed by declaration index and cannot be
// serialized as attributes, since attribute names derive from member names.
func WithPositionalMember(target *Schema, traits ...Trait) func(*SchemaOptions) {
	return func(o *SchemaOptions) {
		m := memberOf(target)
		m.positional = true
		m.traits = append(m.traits, traits...)
		o.members = append(o.members, m)
	}
}

// WithVariant adds a variant to an enum or union schema. A nil target
// declares a unit variant carrying no payload; a non-nil target declares a
// structured variant whose members are the target's members.
func WithVariant(name string, target *Schema, traits ...Trait) func(*SchemaOptions) {
	return func(o *SchemaOptions) {
		var m *Schema
		if target == nil {
			m = &Schema{unit: true}
		} else {
			m = memberOf(target)
		}
		m.id.Member = name
		m.traits = append(m.traits, traits...)
		o.members = append(o.members, m)
	}
}

// WithTraits adds traits to the schema itself.
func WithTraits(traits ...Trait) func(*SchemaOptions) {
	return func(o *SchemaOptions) {
		o.traits = append(o.traits, traits...)
	}
}

func memberOf(target *Schema) *Schema {
	return &Schema{
		typ:     target.typ,
		name:    target.name,
		members: target.members,
		traits:  append([]Trait(nil), target.traits...),
	}
}

// NewSchema returns a schema with the provided members, variants and
// traits. The id is given in "namespace#Name" form; the Name half is the
// identifier the codec derives XML element names from.
func NewSchema(id string, typ ShapeType, opts ...func(*SchemaOptions)) *Schema {
	var o SchemaOptions
	for _, opt := range opts {
		opt(&o)
	}

	sid := stoid(id)
	for _, m := range o.members {
		m.id.Namespace = sid.Namespace
		m.id.Name = sid.Name
	}

	return &Schema{
		id:      sid,
		typ:     typ,
		name:    sid.Name,
		members: o.members,
		traits:  o.traits,
	}
}

// ID returns the shape ID for this schema.
func (s *Schema) ID() ShapeID {
	return s.id
}

// Name returns the identifier XML element names derive from. For a shape
// this is its own name; for a member it is the name of the member's target
// type, while ID carries the owner-qualified form used in diagnostics.
func (s *Schema) Name() string {
	return s.name
}

// Type returns the schema's shape type.
func (s *Schema) Type() ShapeType {
	return s.typ
}

// Members returns the schema's members in declaration order. For enum and
// union schemas the members are the variants.
func (s *Schema) Members() []*Schema {
	return s.members
}

// Member returns the named member, or nil.
func (s *Schema) Member(name string) *Schema {
	for _, m := range s.members {
		if m.id.Member == name {
			return m
		}
	}
	return nil
}

// Traits returns the schema's traits in declaration order.
func (s *Schema) Traits() []Trait {
	return s.traits
}

// Positional reports whether this member was declared without a name.
func (s *Schema) Positional() bool {
	return s.positional
}

// Unit reports whether this variant carries no payload.
func (s *Schema) Unit() bool {
	return s.unit
}

// SchemaTrait returns the target trait on the schema if present. When a
// trait was declared both on a member's target and on the member itself,
// the member-level declaration wins.
func SchemaTrait[T Trait](s *Schema) (T, bool) {
	for i := len(s.traits) - 1; i >= 0; i-- {
		if t, ok := s.traits[i].(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// SchemaTraits returns every declaration of the target trait on the
// schema, in declaration order. Used for traits that may legally repeat,
// such as prefixed namespace declarations.
func SchemaTraits[T Trait](s *Schema) []T {
	var out []T
	for _, tr := range s.traits {
		if t, ok := tr.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
