package envelope

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders v as JSON: null, a string, an object with fields
// in element order, or an array.
func (v Value) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := v.marshalJSON(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (v Value) marshalJSON(b *bytes.Buffer) error {
	switch v.kind {
	case KindText:
		return writeJSONString(b, v.text)
	case KindMap:
		b.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSONString(b, f.Name); err != nil {
				return err
			}
			b.WriteByte(':')
			if err := f.Value.marshalJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case KindList:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := item.marshalJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		b.WriteString("null")
	}
	return nil
}

func writeJSONString(b *bytes.Buffer, s string) error {
	out, err := json.Marshal(s)
	if err == nil {
		b.Write(out)
	}
	return err
}
