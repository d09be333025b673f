package envelope

import (
	"testing"

	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/stretchr/testify/assert"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		name   string
		op     Value
		output string
	}{
		{
			name:   "null operation",
			op:     Map(F("partner", Map(F("getBalance", Null())))),
			output: xmlDecl + `<api xmlns="http://api.hrd.pl/api/"><partner><getBalance></getBalance></partner></api>`,
		},
		{
			name: "login",
			op: Map(F("login", Map(
				F("login", Text("partner")),
				F("pass", Text("p<a&ss")),
				F("type", Text("partnerApi")),
			))),
			output: xmlDecl + `<api xmlns="http://api.hrd.pl/api/"><login><login>partner</login><pass>p&lt;a&amp;ss</pass><type>partnerApi</type></login></api>`,
		},
		{
			name:   "list",
			op:     Map(F("user", Map(F("id", List(Text("1"), Text("2")))))),
			output: xmlDecl + `<api xmlns="http://api.hrd.pl/api/"><user><id>1</id><id>2</id></user></api>`,
		},
		{
			name:   "unicode text",
			op:     Map(F("domain", Map(F("name", Text("gżegżółka.com"))))),
			output: xmlDecl + `<api xmlns="http://api.hrd.pl/api/"><domain><name>gżegżółka.com</name></domain></api>`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			out, err := Encode(tc.op)
			if a.NoError(err) {
				a.Equal(tc.output, string(out))
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		op   Value
	}{
		{name: "null", op: Null()},
		{name: "text", op: Text("getBalance")},
		{name: "two operations", op: Map(F("login", Null()), F("partner", Null()))},
		{name: "list operation", op: List(Map(F("a", Null())), Map(F("b", Null())))},
		{name: "empty name", op: Map(F("", Null()))},
		{name: "bad name", op: Map(F("user", Map(F("first name", Text("x")))))},
		{name: "prefixed name", op: Map(F("x:user", Null()))},
		{name: "repeated operation", op: Map(F("partner", List(Map(F("getBalance", Text("1"))), Map(F("getPricingsList", Text("2"))))))},
		{name: "nul in text", op: Map(F("user", Map(F("name", Text("a\x00b")))))},
		{name: "invalid utf-8 in text", op: Map(F("user", Map(F("name", Text("b\xff")))))},
		{name: "duplicate field", op: Map(F("user", Map(F("id", Text("1")), F("id", Text("2")))))},
		{name: "nested list", op: Map(F("a", Value{kind: KindList, items: []Value{List(Text("1"), Text("2")), Text("3")}}))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.op)
			assert.True(t, apierr.Is(err, apierr.KindEnvelope), "got %v", err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []Value{
		Map(F("partner", Null())),
		Map(F("partner", Map(F("getBalance", Null())))),
		Map(F("partner", Map(F("getPricingInfo", Map(F("name", Text("domain.pl"))))))),
		Map(F("login", Map(
			F("login", Text("partner")),
			F("pass", Text("a b\nc")),
			F("type", Text("partnerApi")),
		))),
		Map(F("user", Map(F("create", Map(
			F("type", Text("person")),
			F("name", Text("Jan Kowalski")),
			F("email", Text("jan@example.com")),
			F("phone", Null()),
			F("tags", List(Text("a"), Null(), Text("<c>"))),
			F("contacts", List(
				Map(F("kind", Text("tech")), F("id", Text("1"))),
				Map(F("kind", Text("billing")), F("ids", List(Text("2"), Text("3")))),
			)),
		))))),
	} {
		t.Run(v.String(), func(t *testing.T) {
			a := assert.New(t)
			out, err := Encode(v)
			if !a.NoError(err) {
				return
			}
			got, err := Decode(out)
			if a.NoError(err) {
				a.Equal(v, got)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  Value
	}{
		{
			name:  "token reply",
			input: `<?xml version="1.0" encoding="UTF-8"?><api xmlns="http://api.hrd.pl/api/"><token>d41d8cd98f</token></api>`,
			want:  Map(F("token", Text("d41d8cd98f"))),
		},
		{
			name: "indented reply",
			input: `
<api xmlns="http://api.hrd.pl/api/">
	<balance> 120.50 </balance>
	<restrictedBalance>0</restrictedBalance>
	<message/>
</api>`,
			want: Map(
				F("balance", Text("120.50")),
				F("restrictedBalance", Text("0")),
				F("message", Null()),
			),
		},
		{
			name: "repeated elements",
			input: `<api xmlns="http://api.hrd.pl/api/"><users>
	<user><id>1</id></user>
	<count>2</count>
	<user><id>2</id></user>
</users></api>`,
			want: Map(F("users", Map(
				F("user", List(Map(F("id", Text("1"))), Map(F("id", Text("2"))))),
				F("count", Text("2")),
			))),
		},
		{
			name:  "empty root",
			input: `<api xmlns="http://api.hrd.pl/api/"></api>`,
			want:  Null(),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			got, err := Decode([]byte(tc.input))
			if a.NoError(err) {
				a.Equal(tc.want, got)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "empty"},
		{name: "not xml", input: "\x00\x00\x00\x10garbage"},
		{name: "unclosed", input: `<api xmlns="http://api.hrd.pl/api/"><token>x</token>`},
		{name: "mismatched", input: `<api xmlns="http://api.hrd.pl/api/"><token>x</tok></api>`},
		{name: "no namespace", input: `<api><token>x</token></api>`},
		{name: "other namespace", input: `<api xmlns="urn:example"><token>x</token></api>`},
		{name: "other root", input: `<rpc xmlns="http://api.hrd.pl/api/"><token>x</token></rpc>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input))
			assert.True(t, apierr.Is(err, apierr.KindEnvelope), "got %v", err)
		})
	}
}
