// Package htmlsafe builds markup strings where every interpolated value is
// escaped unless it is already trusted markup.
package htmlsafe

import (
	"fmt"
	"html/template"
	"reflect"
	"strings"
)

// HTML is markup that is safe to write into a document as-is.
// The zero value is the empty fragment.
type HTML struct {
	s string
}

// Trusted wraps s without escaping. Only use it for markup built by this
// program, never for input.
func Trusted(s string) HTML {
	return HTML{s: s}
}

// Escape converts v to markup. HTML values pass through untouched, slices are
// escaped element by element and concatenated, nil renders as nothing, and
// anything else is formatted with fmt.Sprint and entity-escaped.
func Escape(v any) HTML {
	switch x := v.(type) {
	case nil:
		return HTML{}
	case HTML:
		return x
	case *HTML:
		if x == nil {
			return HTML{}
		}
		return *x
	case string:
		return HTML{s: escapeString(x)}
	case []HTML:
		return Join(HTML{}, x...)
	case []string:
		var b strings.Builder
		for _, s := range x {
			b.WriteString(escapeString(s))
		}
		return HTML{s: b.String()}
	case []any:
		var b strings.Builder
		for _, e := range x {
			b.WriteString(Escape(e).s)
		}
		return HTML{s: b.String()}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		// []byte is text, not a sequence of values.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return HTML{s: escapeString(fmt.Sprintf("%s", v))}
		}
		var b strings.Builder
		for i := 0; i < rv.Len(); i++ {
			b.WriteString(Escape(rv.Index(i).Interface()).s)
		}
		return HTML{s: b.String()}
	}

	return HTML{s: escapeString(fmt.Sprint(v))}
}

// H interpolates args into the trusted format string. Each %s slot receives
// the next argument passed through Escape; %% yields a literal percent sign.
// Missing arguments render as nothing and surplus arguments are ignored.
func H(format string, args ...any) HTML {
	var b strings.Builder
	b.Grow(len(format))

	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		switch format[i+1] {
		case 's':
			if next < len(args) {
				b.WriteString(Escape(args[next]).s)
			}
			next++
			i++
		case '%':
			b.WriteByte('%')
			i++
		default:
			b.WriteByte(c)
		}
	}

	return HTML{s: b.String()}
}

// Join concatenates trusted fragments with sep between them.
func Join(sep HTML, parts ...HTML) HTML {
	if len(parts) == 0 {
		return HTML{}
	}
	ss := make([]string, len(parts))
	for i, p := range parts {
		ss[i] = p.s
	}
	return HTML{s: strings.Join(ss, sep.s)}
}

// String returns the markup.
func (h HTML) String() string {
	return h.s
}

// IsEmpty reports whether the fragment has no content.
func (h HTML) IsEmpty() bool {
	return h.s == ""
}

// Template exposes the fragment to html/template without re-escaping.
func (h HTML) Template() template.HTML {
	return template.HTML(h.s)
}

func escapeString(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	return replacer.Replace(s)
}

var replacer = strings.NewReplacer(
	"&", "&#38;",
	"<", "&#60;",
	">", "&#62;",
	`"`, "&#34;",
	"'", "&#39;",
)
