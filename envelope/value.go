package envelope

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the variant of a Value
type Kind int

const (
	// KindNull is an empty element, e.g. <getBalance/>
	KindNull Kind = iota
	// KindText is an element holding character data only
	KindText
	// KindMap is an element holding uniquely named child elements, in order
	KindMap
	// KindList is a run of same-named sibling elements
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is a named Value within a map
type Field struct {
	Name  string
	Value Value
}

// F is a shortcut for creating a Field
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Value is the structured content of an envelope element.
//
// The zero Value is null. Values are built with Null, Text, Map and List,
// which normalize degenerate shapes the same way decoding does: empty
// text, maps and lists are null and a single item list is that item.
type Value struct {
	kind   Kind
	text   string
	fields []Field
	items  []Value
}

// Null returns the null Value
func Null() Value { return Value{} }

// Text returns a text Value holding s
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Map returns a map Value holding fields in the given order.
// Field names must be unique, Encode rejects duplicates; use List for
// repeated elements.
func Map(fields ...Field) Value {
	if len(fields) == 0 {
		return Value{}
	}
	return Value{kind: KindMap, fields: append([]Field(nil), fields...)}
}

// List returns a list Value. Items must not themselves be lists.
func List(items ...Value) Value {
	switch len(items) {
	case 0:
		return Value{}
	case 1:
		return items[0]
	}
	return Value{kind: KindList, items: append([]Value(nil), items...)}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the character data of a text Value
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Fields returns the fields of a map Value
func (v Value) Fields() []Field { return v.fields }

// Items returns the items of a list Value. Any other non-null Value is
// returned as a list of one, so a repeated element may be iterated
// whether it occurred once or many times.
func (v Value) Items() []Value {
	switch v.kind {
	case KindList:
		return v.items
	case KindNull:
		return nil
	}
	return []Value{v}
}

// Field returns the named field of a map Value
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Path follows names through nested maps
func (v Value) Path(names ...string) (Value, bool) {
	cur := v
	for _, name := range names {
		var ok bool
		if cur, ok = cur.Field(name); !ok {
			return Value{}, false
		}
	}
	return cur, true
}

// String returns a compact rendering of v, for diagnostics
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindText:
		sb.WriteString(strconv.Quote(v.text))
	case KindMap:
		sb.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Name)
			sb.WriteByte(':')
			f.Value.render(sb)
		}
		sb.WriteByte('}')
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.render(sb)
		}
		sb.WriteByte(']')
	}
}
