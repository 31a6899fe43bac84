package ops

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const indent = "  "

// PrettyXML re-indents an XML document, two spaces per level, collapsing empty elements to <x/>.
// Text content stays on the line of its element.
func PrettyXML(raw string) (string, error) {
	d := xml.NewDecoder(strings.NewReader(raw))
	var b strings.Builder
	depth := 0
	open := false // the last start tag is still missing its closing '>'
	text := false // the current element holds text

	newline := func(level int) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, level))
	}
	closeTag := func() {
		if open {
			b.WriteByte('>')
			open = false
		}
	}

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to parse xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			closeTag()
			newline(depth)
			b.WriteString("<" + qualified(t.Name))
			for _, a := range t.Attr {
				b.WriteString(" " + qualified(a.Name) + `="`)
				_ = xml.EscapeText(&b, []byte(a.Value))
				b.WriteByte('"')
			}
			open, text = true, false
			depth++
		case xml.EndElement:
			depth--
			switch {
			case open:
				b.WriteString("/>")
				open = false
			case text:
				b.WriteString("</" + qualified(t.Name) + ">")
			default:
				newline(depth)
				b.WriteString("</" + qualified(t.Name) + ">")
			}
			text = false
		case xml.CharData:
			s := strings.TrimSpace(string(t))
			if s == "" {
				continue
			}
			closeTag()
			_ = xml.EscapeText(&b, []byte(s))
			text = true
		case xml.Comment:
			closeTag()
			newline(depth)
			b.WriteString("<!--" + string(t) + "-->")
		case xml.ProcInst:
			closeTag()
			newline(depth)
			b.WriteString("<?" + t.Target + " " + string(t.Inst) + "?>")
		case xml.Directive:
			closeTag()
			newline(depth)
			b.WriteString("<!" + string(t) + ">")
		}
	}
	if depth != 0 {
		return "", errors.New("failed to parse xml: unexpected end of document")
	}
	return b.String(), nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
