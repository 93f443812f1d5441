package xml

// Character references for the bytes escaped in text content and attribute
// values, matching the replacements the standard library encoder performs.
var (
	escQuot = `&#34;`
	escApos = `&#39;`
	escAmp  = `&amp;`
	escLT   = `&lt;`
	escGT   = `&gt;`
	escTab  = `&#x9;`
	escNL   = `&#xA;`
	escCR   = `&#xD;`
)

// writeEscaped writes s with XML special characters replaced by character
// references. It is used for both character data and attribute values.
func (e *Encoder) writeEscaped(s string) {
	var esc string
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			esc = escQuot
		case '\'':
			esc = escApos
		case '&':
			esc = escAmp
		case '<':
			esc = escLT
		case '>':
			esc = escGT
		case '\t':
			esc = escTab
		case '\n':
			esc = escNL
		case '\r':
			esc = escCR
		default:
			continue
		}

		e.writeString(s[last:i])
		e.writeString(esc)
		last = i + 1
	}

	e.writeString(s[last:])
}
