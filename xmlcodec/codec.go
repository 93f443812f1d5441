package xmlcodec

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"

	ews "github.com/ewsproto/ews-go"
	"github.com/ewsproto/ews-go/xml"
)

// registry maps Go types to their registered schemas and compiled
// writers. Writers are resolved once, at registration, and only read
// afterwards; concurrent serialization needs no further coordination.
type registry struct {
	mu      sync.RWMutex
	writers map[reflect.Type]writerFunc
	schemas map[reflect.Type]*ews.Schema
	unions  map[reflect.Type]map[string]reflect.Type
}

var defaultRegistry = &registry{
	writers: make(map[reflect.Type]writerFunc),
	schemas: make(map[reflect.Type]*ews.Schema),
	unions:  make(map[reflect.Type]map[string]reflect.Type),
}

// Register compiles schema against the Go type T and caches the resulting
// writer. Registration is the build step of the codec: every invalid
// declaration is reported here, and a type that registered cleanly cannot
// fail later except through its output writer.
func Register[T any](schema *ews.Schema) error {
	return defaultRegistry.register(reflect.TypeOf((*T)(nil)).Elem(), schema)
}

// MustRegister is Register, panicking on error. Model packages call it
// from init, where a schema error should halt the program outright.
func MustRegister[T any](schema *ews.Schema) {
	if err := Register[T](schema); err != nil {
		panic(err)
	}
}

// VariantBinding associates a union variant's declared name with the Go
// wrapper struct holding that variant's values.
type VariantBinding struct {
	Name string
	Type reflect.Type
}

// BindVariant returns the binding of a variant name to the wrapper type T.
func BindVariant[T any](name string) VariantBinding {
	return VariantBinding{Name: name, Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// RegisterUnion compiles schema against the Go interface type T, binding
// each declared variant to its wrapper struct type.
func RegisterUnion[T any](schema *ews.Schema, variants ...VariantBinding) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	bindings := make(map[string]reflect.Type, len(variants))
	for _, v := range variants {
		bindings[v.Name] = v.Type
	}
	return defaultRegistry.registerUnion(t, schema, bindings)
}

// MustRegisterUnion is RegisterUnion, panicking on error.
func MustRegisterUnion[T any](schema *ews.Schema, variants ...VariantBinding) {
	if err := RegisterUnion[T](schema, variants...); err != nil {
		panic(err)
	}
}

func (r *registry) register(t reflect.Type, schema *ews.Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.compileLocked(t, schema)
}

func (r *registry) registerUnion(t reflect.Type, schema *ews.Schema, bindings map[string]reflect.Type) error {
	if t.Kind() != reflect.Interface {
		return schemaErrorf(schema, "RegisterUnion requires a Go interface type, got %s", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unions[t] = bindings
	if err := r.compileLocked(t, schema); err != nil {
		delete(r.unions, t)
		return err
	}
	return nil
}

func (r *registry) compileLocked(t reflect.Type, schema *ews.Schema) error {
	fn, err := newCompiler(r).element(schema, t)
	if err != nil {
		return err
	}

	r.writers[t] = fn
	r.schemas[t] = schema
	return nil
}

func (r *registry) writer(rv reflect.Value) (writerFunc, reflect.Value, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := rv.Type()
	if fn, ok := r.writers[t]; ok {
		return fn, rv, nil
	}

	if t.Kind() == reflect.Pointer {
		if fn, ok := r.writers[t.Elem()]; ok {
			if rv.IsNil() {
				return nil, rv, fmt.Errorf("xmlcodec: cannot serialize nil %s", t)
			}
			return fn, rv.Elem(), nil
		}
	}

	return nil, rv, fmt.Errorf("xmlcodec: no schema registered for %s", t)
}

// SchemaFor returns the schema registered for v's type, if any.
func SchemaFor(v any) (*ews.Schema, bool) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := reflect.TypeOf(v)
	if s, ok := r.schemas[t]; ok {
		return s, true
	}
	if t != nil && t.Kind() == reflect.Pointer {
		if s, ok := r.schemas[t.Elem()]; ok {
			return s, true
		}
	}
	return nil, false
}

// WriteElement writes v as an XML element through e. The type of v, or
// its pointer base, must have been registered.
func WriteElement(e *xml.Encoder, v any) error {
	fn, rv, err := defaultRegistry.writer(reflect.ValueOf(v))
	if err != nil {
		return err
	}
	return fn(e, rv)
}

// Encode writes v to w as one XML element. The first error from w aborts
// the remaining writes and is returned unchanged; the caller must discard
// the partial stream.
func Encode(w io.Writer, v any) error {
	e := xml.NewEncoder(w)
	if err := WriteElement(e, v); err != nil {
		return err
	}
	return e.Err()
}

// Marshal returns v serialized as one XML element.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
