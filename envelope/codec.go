package envelope

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/jakub-gawryl/hrdapi/xmlutil"
	"github.com/pkg/errors"
)

// Namespace is the XML namespace of the <api> root element
const Namespace = "http://api.hrd.pl/api/"

// Encode renders op as the sole child of an <api> root element.
//
// op must be a map Value with exactly one field, the operation. The
// output is not indented and starts with an XML declaration.
func Encode(op Value) ([]byte, error) {
	if op.kind != KindMap || len(op.fields) != 1 {
		return nil, apierr.Envelope(apierr.WithMessage(
			"envelope must hold exactly one operation, got " + op.String()))
	}
	if op.fields[0].Value.kind == KindList {
		return nil, apierr.Envelope(apierr.WithMessage(
			"envelope must hold exactly one operation, got repeated " + op.fields[0].Name))
	}
	var b bytes.Buffer
	xe := xml.NewEncoder(&b)
	err := xe.EncodeToken(piDeclaration)
	if err == nil {
		err = xe.EncodeToken(seAPI)
	}
	if err == nil {
		err = encodeField(xe, op.fields[0])
	}
	if err == nil {
		err = xe.EncodeToken(seAPI.End())
	}
	if err == nil {
		err = xe.Flush()
	}
	if err != nil {
		if apierr.Is(err, apierr.KindEnvelope) {
			return nil, err
		}
		return nil, apierr.Envelope(apierr.WithErr(err))
	}
	return b.Bytes(), nil
}

// Decode parses raw as an envelope and returns the content of its <api>
// root element.
func Decode(raw []byte) (Value, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		return Value{}, apierr.Envelope(apierr.WithMessage("malformed XML"), apierr.WithErr(err))
	}
	root := xmlquery.QuerySelector(doc, xpAPI)
	if root == nil {
		return Value{}, apierr.Envelope(apierr.WithMessage("missing <api> element in namespace " + Namespace))
	}
	return decodeNode(root), nil
}

func encodeField(xe *xml.Encoder, f Field) error {
	if !xmlutil.ValidName(f.Name) {
		return apierr.Envelope(apierr.WithMessage("invalid element name " + `"` + f.Name + `"`))
	}
	if f.Value.kind != KindList {
		return encodeElement(xe, f.Name, f.Value)
	}
	for _, item := range f.Value.items {
		if item.kind == KindList {
			return apierr.Envelope(apierr.WithMessage("nested list in element " + f.Name))
		}
		if err := encodeElement(xe, f.Name, item); err != nil {
			return err
		}
	}
	return nil
}

func encodeElement(xe *xml.Encoder, name string, v Value) error {
	se := xmlutil.StartElement(name)
	if err := xe.EncodeToken(se); err != nil {
		return errors.WithStack(err)
	}
	switch v.kind {
	case KindText:
		if !xmlutil.ValidText(v.text) {
			return apierr.Envelope(apierr.WithMessage("invalid character data in element " + name))
		}
		if err := xe.EncodeToken(xml.CharData(v.text)); err != nil {
			return errors.WithStack(err)
		}
	case KindMap:
		seen := make(map[string]bool, len(v.fields))
		for _, f := range v.fields {
			if seen[f.Name] {
				return apierr.Envelope(apierr.WithMessage("duplicate element " + f.Name + " in " + name))
			}
			seen[f.Name] = true
			if err := encodeField(xe, f); err != nil {
				return err
			}
		}
	}
	return errors.WithStack(xe.EncodeToken(se.End()))
}

// decodeNode converts element n. Elements with child elements become
// maps (character data between them is ignored), repeated child names
// become lists, and leaf elements become text or null.
func decodeNode(n *xmlquery.Node) Value {
	var fields []Field
	index := map[string]int{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		v := decodeNode(c)
		i, seen := index[c.Data]
		if !seen {
			index[c.Data] = len(fields)
			fields = append(fields, Field{Name: c.Data, Value: v})
			continue
		}
		if prev := fields[i].Value; prev.kind == KindList {
			prev.items = append(prev.items, v)
			fields[i].Value = prev
		} else {
			fields[i].Value = Value{kind: KindList, items: []Value{prev, v}}
		}
	}
	if len(fields) > 0 {
		return Value{kind: KindMap, fields: fields}
	}
	return Text(strings.TrimSpace(n.InnerText()))
}

var (
	xpAPI = xpath.MustCompile(`/api[namespace-uri()='http://api.hrd.pl/api/']`)

	seAPI         = xmlutil.StartElement("api", Namespace)
	piDeclaration = xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8" standalone="yes"`)}
)
