package mods

import (
	"strconv"
	"strings"
)

// Attr is a single XML attribute. Attribute order is preserved as written,
// since the legacy consumer is sensitive to the conventional ordering.
type Attr struct {
	Name  string
	Value string
}

// Element is a mutable XML element node used as the writers' output sink.
type Element struct {
	name     string
	attrs    []Attr
	text     string
	children []*Element
}

// NewElement creates a detached element.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// Name returns the element name.
func (e *Element) Name() string { return e.name }

// Set appends an attribute, replacing any existing attribute with the same
// name in place.
func (e *Element) Set(name, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return e
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	return e
}

// SetInt appends an integer-valued attribute.
func (e *Element) SetInt(name string, value int) *Element {
	return e.Set(name, strconv.Itoa(value))
}

// Attr returns the named attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, attr := range e.attrs {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

// SetText sets the element's text content.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// Child creates a new child element, appends it, and returns it.
func (e *Element) Child(name string) *Element {
	child := NewElement(name)
	e.children = append(e.children, child)
	return child
}

// Append attaches existing elements as children.
func (e *Element) Append(children ...*Element) {
	for _, child := range children {
		if child != nil {
			e.children = append(e.children, child)
		}
	}
}

// Children returns the child elements in document order.
func (e *Element) Children() []*Element {
	return e.children
}

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name string) *Element {
	for _, child := range e.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// FindAll returns all direct children with the given name.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	for _, child := range e.children {
		if child.name == name {
			out = append(out, child)
		}
	}
	return out
}

// String serializes the element without indentation. Empty elements
// self-close; empty text nodes are preserved as empty elements rather than
// suppressed.
func (e *Element) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Element) write(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.name)
	for _, attr := range e.attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		escapeAttr(sb, attr.Value)
		sb.WriteByte('"')
	}
	if e.text == "" && len(e.children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	if e.text != "" {
		escapeText(sb, e.text)
	}
	for _, child := range e.children {
		child.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.name)
	sb.WriteByte('>')
}

func escapeText(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
}

func escapeAttr(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '"':
			sb.WriteString("&quot;")
		case '\n', '\t', '\r':
			sb.WriteByte(' ')
		default:
			sb.WriteRune(r)
		}
	}
}
