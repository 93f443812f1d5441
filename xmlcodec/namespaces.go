package xmlcodec

import (
	ews "github.com/ewsproto/ews-go"
	"github.com/ewsproto/ews-go/traits"
	"github.com/ewsproto/ews-go/xml"
)

// planNamespaces resolves the namespace traits declared on s into the
// attribute list emitted on the shape's root element: the default
// declaration first if present, then each prefixed declaration in
// declaration order. Namespace declarations precede ordinary attributes on
// the start element so that a prefixed attribute or child name can resolve
// against them; whether every prefix used is actually declared somewhere
// in scope is not verified.
func planNamespaces(s *ews.Schema) ([]xml.Attr, error) {
	decls := ews.SchemaTraits[*traits.XMLNamespace](s)
	if len(decls) == 0 {
		return nil, nil
	}

	var def *traits.XMLNamespace
	prefixed := make([]*traits.XMLNamespace, 0, len(decls))
	for _, d := range decls {
		if d.Prefix == "" {
			if def != nil {
				return nil, schemaErrorf(s, "at most one default namespace declaration per shape")
			}
			def = d
			continue
		}
		prefixed = append(prefixed, d)
	}

	attrs := make([]xml.Attr, 0, len(decls))
	if def != nil {
		attrs = append(attrs, xml.DefaultNamespace(def.URI))
	}
	for _, d := range prefixed {
		attrs = append(attrs, xml.Namespace(d.Prefix, d.URI))
	}

	return attrs, nil
}
