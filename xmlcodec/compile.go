package xmlcodec

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	ews "github.com/ewsproto/ews-go"
	"github.com/ewsproto/ews-go/traits"
	"github.com/ewsproto/ews-go/xml"
	"github.com/ewsproto/ews-go/xmltime"
)

// writerFunc writes v in element role: structures, enums and unions
// produce complete elements, scalars produce text content, and containers
// delegate to their contained type.
type writerFunc func(e *xml.Encoder, v reflect.Value) error

var (
	elementWriterType   = reflect.TypeOf((*xml.ElementWriter)(nil)).Elem()
	attributeWriterType = reflect.TypeOf((*xml.AttributeWriter)(nil)).Elem()
	timeType            = reflect.TypeOf(time.Time{})
)

type compileKey struct {
	schema *ews.Schema
	typ    reflect.Type
}

// compiler resolves a single registration. It consults the registry for
// union variant bindings and memoizes every (schema, type) pair so that a
// shape referenced from several members compiles once.
type compiler struct {
	reg  *registry
	memo map[compileKey]writerFunc
}

func newCompiler(reg *registry) *compiler {
	return &compiler{reg: reg, memo: make(map[compileKey]writerFunc)}
}

// element resolves the element-role writer for the (schema, type) pair.
// This is the compile-time form of the "can write itself as an XML
// element" capability check: failure means the declared shape and the Go
// type do not line up, and registration halts with the offending
// declaration named.
func (c *compiler) element(s *ews.Schema, t reflect.Type) (writerFunc, error) {
	key := compileKey{s, t}
	if fn, ok := c.memo[key]; ok {
		return fn, nil
	}

	// Indirect through a late-bound func so self-referential shapes can
	// resolve while their own writer is still being compiled.
	var fn writerFunc
	c.memo[key] = func(e *xml.Encoder, v reflect.Value) error {
		return fn(e, v)
	}

	var err error
	fn, err = c.compileElement(s, t)
	if err != nil {
		delete(c.memo, key)
		return nil, err
	}

	c.memo[key] = fn
	return fn, nil
}

func (c *compiler) compileElement(s *ews.Schema, t reflect.Type) (writerFunc, error) {
	if err := checkSerdeTraits(s); err != nil {
		return nil, err
	}

	// A type carrying its own element capability wins over schema-driven
	// synthesis.
	if t.Implements(elementWriterType) {
		return func(e *xml.Encoder, v reflect.Value) error {
			return v.Interface().(xml.ElementWriter).WriteXMLElement(e)
		}, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		// Optional value: absent writes nothing.
		inner, err := c.element(s, t.Elem())
		if err != nil {
			return nil, err
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			if v.IsNil() {
				return nil
			}
			return inner(e, v.Elem())
		}, nil

	case reflect.Slice:
		// Ordered sequence: one element per item, in order.
		inner, err := c.element(s, t.Elem())
		if err != nil {
			return nil, err
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			for i := 0; i < v.Len(); i++ {
				if err := inner(e, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		}, nil
	}

	switch s.Type() {
	case ews.ShapeTypeStructure:
		return c.structure(s, t)
	case ews.ShapeTypeEnum:
		return c.enum(s, t)
	case ews.ShapeTypeUnion:
		return c.union(s, t)
	default:
		return scalarWriter(s, t)
	}
}

// fieldWriter couples an element-role member's struct field with its
// resolved writer.
type fieldWriter struct {
	index []int
	write writerFunc
}

// fieldAttr couples an attribute-role member's struct field with its
// serialized attribute name and resolved appender.
type fieldAttr struct {
	index  []int
	name   string
	append func(start *xml.StartElement, name string, v reflect.Value)
}

func (c *compiler) structure(s *ews.Schema, t reflect.Type) (writerFunc, error) {
	if t.Kind() != reflect.Struct {
		return nil, schemaErrorf(s, "structure shape requires a Go struct, got %s", t)
	}

	name, err := elementName(s.Name(), s)
	if err != nil {
		return nil, err
	}

	nsAttrs, err := planNamespaces(s)
	if err != nil {
		return nil, err
	}

	attrs, elems, err := c.fields(s, s.Members(), t)
	if err != nil {
		return nil, err
	}

	return structWriter(name, nsAttrs, attrs, elems), nil
}

// fields splits members into attribute-role and element-role writers in a
// single pass, preserving declaration order within both lists, and
// resolves each member against its Go struct field.
func (c *compiler) fields(owner *ews.Schema, members []*ews.Schema, t reflect.Type) ([]fieldAttr, []fieldWriter, error) {
	var named, positional int
	for _, m := range members {
		if m.Positional() {
			positional++
		} else {
			named++
		}
	}
	if named > 0 && positional > 0 {
		return nil, nil, schemaErrorf(owner, "members must be uniformly named or uniformly positional")
	}

	var attrs []fieldAttr
	var elems []fieldWriter
	for i, m := range members {
		var sf reflect.StructField
		if m.Positional() {
			if i >= t.NumField() {
				return nil, nil, schemaErrorf(m, "no field at index %d on %s", i, t)
			}
			sf = t.Field(i)
		} else {
			goName, err := pascalCase(m.ID().Member)
			if err != nil {
				return nil, nil, schemaErrorf(m, "%v", err)
			}
			f, ok := t.FieldByName(goName)
			if !ok {
				// FieldByName only sees exported fields for the derived
				// name; a homonym differing in case alone is reported as
				// unexported rather than missing.
				if uf, found := unexportedField(t, goName); found {
					return nil, nil, schemaErrorf(m, "field %s on %s is unexported", uf.Name, t)
				}
				return nil, nil, schemaErrorf(m, "no field %s on %s", goName, t)
			}
			sf = f
		}
		if sf.PkgPath != "" {
			return nil, nil, schemaErrorf(m, "field %s on %s is unexported", sf.Name, t)
		}

		if _, ok := ews.SchemaTrait[*traits.XMLAttribute](m); ok {
			if m.Positional() {
				return nil, nil, schemaErrorf(m, "positional members may not be XML attributes")
			}
			if err := checkSerdeTraits(m); err != nil {
				return nil, nil, err
			}

			attrName, err := pascalCase(m.ID().Member)
			if err != nil {
				return nil, nil, schemaErrorf(m, "%v", err)
			}
			ap, err := c.attribute(m, sf.Type)
			if err != nil {
				return nil, nil, err
			}
			attrs = append(attrs, fieldAttr{index: sf.Index, name: attrName, append: ap})
			continue
		}

		w, err := c.element(m, sf.Type)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, fieldWriter{index: sf.Index, write: w})
	}

	return attrs, elems, nil
}

// structWriter synthesizes the writer for one element: namespace
// declarations and attribute-role fields attach to the start-element
// builder before it is written, then element-role fields write their
// content, then the end tag closes the element.
func structWriter(name string, nsAttrs []xml.Attr, attrs []fieldAttr, elems []fieldWriter) writerFunc {
	base := xml.StartElement{Name: xml.Name{Local: name}, Attr: nsAttrs}
	return func(e *xml.Encoder, v reflect.Value) error {
		start := base.Copy()
		for _, f := range attrs {
			f.append(&start, f.name, v.FieldByIndex(f.index))
		}
		e.WriteStartElement(start)

		for _, f := range elems {
			if err := f.write(e, v.FieldByIndex(f.index)); err != nil {
				return err
			}
		}

		e.WriteEndElement(base.End())
		return e.Err()
	}
}

// seqWriter synthesizes the writer for a positional variant: each field
// writes itself in declared order with no wrapping element.
func seqWriter(elems []fieldWriter) writerFunc {
	return func(e *xml.Encoder, v reflect.Value) error {
		for _, f := range elems {
			if err := f.write(e, v.FieldByIndex(f.index)); err != nil {
				return err
			}
		}
		return e.Err()
	}
}

func (c *compiler) enum(s *ews.Schema, t reflect.Type) (writerFunc, error) {
	if err := checkVariants(s, true); err != nil {
		return nil, err
	}
	if t.Kind() != reflect.String {
		return nil, schemaErrorf(s, "enum shape requires a Go string type, got %s", t)
	}

	name, err := elementName(s.Name(), s)
	if err != nil {
		return nil, err
	}

	nsAttrs, err := planNamespaces(s)
	if err != nil {
		return nil, err
	}

	base := xml.StartElement{Name: xml.Name{Local: name}, Attr: nsAttrs}
	return func(e *xml.Encoder, v reflect.Value) error {
		e.WriteStartElement(base)
		e.WriteText(v.String())
		e.WriteEndElement(base.End())
		return e.Err()
	}, nil
}

func (c *compiler) union(s *ews.Schema, t reflect.Type) (writerFunc, error) {
	if t.Kind() != reflect.Interface {
		return nil, schemaErrorf(s, "union shape requires a Go interface type, got %s", t)
	}
	if err := checkVariants(s, false); err != nil {
		return nil, err
	}

	bindings, ok := c.reg.unions[t]
	if !ok {
		return nil, schemaErrorf(s, "union has no variant bindings; register it with RegisterUnion")
	}

	nsAttrs, err := planNamespaces(s)
	if err != nil {
		return nil, err
	}

	dispatch := make(map[reflect.Type]writerFunc, len(s.Members()))
	for _, variant := range s.Members() {
		vt, ok := bindings[variant.ID().Member]
		if !ok {
			return nil, schemaErrorf(variant, "no Go type bound for variant")
		}
		if vt.Kind() != reflect.Struct {
			return nil, schemaErrorf(variant, "variant binding requires a Go struct, got %s", vt)
		}

		attrs, elems, err := c.fields(variant, variant.Members(), vt)
		if err != nil {
			return nil, err
		}

		if positionalVariant(variant) {
			// No single element hosts the declarations, so none are allowed.
			if len(nsAttrs) > 0 || len(ews.SchemaTraits[*traits.XMLNamePrefix](s)) > 0 {
				return nil, schemaErrorf(s, "namespace declarations may not be applied to unions with positional variants")
			}
			dispatch[vt] = seqWriter(elems)
			continue
		}

		name, err := elementName(variant.ID().Member, s)
		if err != nil {
			return nil, err
		}
		dispatch[vt] = structWriter(name, nsAttrs, attrs, elems)
	}

	return func(e *xml.Encoder, v reflect.Value) error {
		if v.IsNil() {
			return fmt.Errorf("xmlcodec: cannot serialize nil %s value", t)
		}
		inner := v.Elem()
		w, ok := dispatch[inner.Type()]
		if !ok {
			return fmt.Errorf("xmlcodec: %s is not a bound variant of %s", inner.Type(), t)
		}
		return w(e, inner)
	}, nil
}

func unexportedField(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func positionalVariant(variant *ews.Schema) bool {
	ms := variant.Members()
	return len(ms) > 0 && ms[0].Positional()
}

// checkVariants enforces that an enum or union declares at least one
// variant and does not mix unit and structured variants.
func checkVariants(s *ews.Schema, wantUnit bool) error {
	ms := s.Members()
	if len(ms) == 0 {
		return schemaErrorf(s, "an enum or union must declare at least one variant")
	}
	for _, m := range ms {
		if m.Unit() != wantUnit {
			return schemaErrorf(s, "mixing unit and structured variants is not supported")
		}
	}
	return nil
}

func scalarWriter(s *ews.Schema, t reflect.Type) (writerFunc, error) {
	switch s.Type() {
	case ews.ShapeTypeString:
		if t.Kind() != reflect.String {
			return nil, typeMismatch(s, t)
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			e.WriteText(v.String())
			return e.Err()
		}, nil

	case ews.ShapeTypeBoolean:
		if t.Kind() != reflect.Bool {
			return nil, typeMismatch(s, t)
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			e.WriteBool(v.Bool())
			return e.Err()
		}, nil

	case ews.ShapeTypeInteger, ews.ShapeTypeLong:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		default:
			return nil, typeMismatch(s, t)
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			e.WriteLong(v.Int())
			return e.Err()
		}, nil

	case ews.ShapeTypeFloat:
		if t.Kind() != reflect.Float32 {
			return nil, typeMismatch(s, t)
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			e.WriteDouble(v.Float(), 32)
			return e.Err()
		}, nil

	case ews.ShapeTypeDouble:
		if t.Kind() != reflect.Float64 {
			return nil, typeMismatch(s, t)
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			e.WriteDouble(v.Float(), 64)
			return e.Err()
		}, nil

	case ews.ShapeTypeTimestamp:
		if t != timeType {
			return nil, typeMismatch(s, t)
		}
		return func(e *xml.Encoder, v reflect.Value) error {
			e.WriteText(xmltime.FormatDateTime(v.Interface().(time.Time)))
			return e.Err()
		}, nil

	default:
		return nil, typeMismatch(s, t)
	}
}

// attribute resolves the attribute-role writer for the (schema, type)
// pair, the compile-time form of the "can write itself as an XML
// attribute" capability check. Absent optional values leave the builder
// untouched.
func (c *compiler) attribute(s *ews.Schema, t reflect.Type) (func(start *xml.StartElement, name string, v reflect.Value), error) {
	if t.Implements(attributeWriterType) {
		return func(start *xml.StartElement, name string, v reflect.Value) {
			v.Interface().(xml.AttributeWriter).WriteXMLAttribute(start, name)
		}, nil
	}

	if t.Kind() == reflect.Pointer {
		inner, err := c.attribute(s, t.Elem())
		if err != nil {
			return nil, err
		}
		return func(start *xml.StartElement, name string, v reflect.Value) {
			if v.IsNil() {
				return
			}
			inner(start, name, v.Elem())
		}, nil
	}

	format, err := attrFormatter(s, t)
	if err != nil {
		return nil, err
	}
	return func(start *xml.StartElement, name string, v reflect.Value) {
		start.Attr = append(start.Attr, xml.Attribute(name, format(v)))
	}, nil
}

func attrFormatter(s *ews.Schema, t reflect.Type) (func(reflect.Value) string, error) {
	switch s.Type() {
	case ews.ShapeTypeString:
		if t.Kind() != reflect.String {
			return nil, typeMismatch(s, t)
		}
		return reflect.Value.String, nil

	case ews.ShapeTypeEnum:
		// An enum attribute's value is the variant identifier verbatim.
		if err := checkVariants(s, true); err != nil {
			return nil, err
		}
		if t.Kind() != reflect.String {
			return nil, typeMismatch(s, t)
		}
		return reflect.Value.String, nil

	case ews.ShapeTypeBoolean:
		if t.Kind() != reflect.Bool {
			return nil, typeMismatch(s, t)
		}
		return func(v reflect.Value) string {
			return strconv.FormatBool(v.Bool())
		}, nil

	case ews.ShapeTypeInteger, ews.ShapeTypeLong:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		default:
			return nil, typeMismatch(s, t)
		}
		return func(v reflect.Value) string {
			return strconv.FormatInt(v.Int(), 10)
		}, nil

	case ews.ShapeTypeFloat:
		if t.Kind() != reflect.Float32 {
			return nil, typeMismatch(s, t)
		}
		return func(v reflect.Value) string {
			return strconv.FormatFloat(v.Float(), 'g', -1, 32)
		}, nil

	case ews.ShapeTypeDouble:
		if t.Kind() != reflect.Float64 {
			return nil, typeMismatch(s, t)
		}
		return func(v reflect.Value) string {
			return strconv.FormatFloat(v.Float(), 'g', -1, 64)
		}, nil

	case ews.ShapeTypeTimestamp:
		if t != timeType {
			return nil, typeMismatch(s, t)
		}
		return func(v reflect.Value) string {
			return xmltime.FormatDateTime(v.Interface().(time.Time))
		}, nil

	default:
		return nil, schemaErrorf(s, "a %s shape cannot be serialized as an XML attribute", s.Type())
	}
}

func typeMismatch(s *ews.Schema, t reflect.Type) *SchemaError {
	return schemaErrorf(s, "%s shape cannot be written from Go type %s", s.Type(), t)
}

const serdeTraitNamespace = "ews.serde#"

// checkSerdeTraits rejects traits claiming the serialization namespace
// that the compiler does not recognize. Traits from other namespaces are
// unrelated annotations and are ignored.
func checkSerdeTraits(s *ews.Schema) error {
	for _, tr := range s.Traits() {
		switch tr.(type) {
		case *traits.XMLNamespace, *traits.XMLNamePrefix, *traits.XMLAttribute:
		default:
			if strings.HasPrefix(tr.TraitID(), serdeTraitNamespace) {
				return schemaErrorf(s, "unrecognized serialization trait %q", tr.TraitID())
			}
		}
	}
	return nil
}
