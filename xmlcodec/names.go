package xmlcodec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	ews "github.com/ewsproto/ews-go"
	"github.com/ewsproto/ews-go/traits"
)

// elementName derives the serialized element name for the identifier
// ident, applying the name prefix declared on annotated (if any). The
// derivation is pure; the result is computed once at compile time and
// captured by the synthesized writer.
func elementName(ident string, annotated *ews.Schema) (string, error) {
	prefixes := ews.SchemaTraits[*traits.XMLNamePrefix](annotated)
	switch len(prefixes) {
	case 0:
		return ident, nil
	case 1:
		return prefixes[0].Prefix + ":" + ident, nil
	default:
		return "", schemaErrorf(annotated, "at most one name prefix declaration per shape")
	}
}

// pascalCase converts a snake_case member name to PascalCase: underscores
// are removed and the letter following each removed underscore, plus the
// first letter, is capitalized. The conversion is defined for ASCII names
// only; non-ASCII member names are rejected rather than guessed at.
//
// The same conversion yields both a member's serialized attribute name and
// the Go struct field holding its value.
func pascalCase(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty member name")
	}

	var b strings.Builder
	b.Grow(len(name))

	capitalize := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= utf8.RuneSelf {
			return "", fmt.Errorf("non-ASCII member name %q is not supported", name)
		}

		switch {
		case c == '_':
			capitalize = true
		case capitalize:
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			b.WriteByte(c)
			capitalize = false
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
