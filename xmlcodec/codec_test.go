package xmlcodec_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	ews "github.com/ewsproto/ews-go"
	"github.com/ewsproto/ews-go/traits"
	"github.com/ewsproto/ews-go/xml"
	"github.com/ewsproto/ews-go/xmlcodec"
)

func TestStructureAttributes(t *testing.T) {
	type distinguishedFolder struct {
		Id        string
		ChangeKey *string
	}
	xmlcodec.MustRegister[distinguishedFolder](ews.NewSchema("codec.test#DistinguishedFolder", ews.ShapeTypeStructure,
		ews.WithMember("id", ews.PreludeString, &traits.XMLAttribute{}),
		ews.WithMember("change_key", ews.PreludeString, &traits.XMLAttribute{}),
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
	))

	key := "AAB="
	actual, err := xmlcodec.Marshal(distinguishedFolder{Id: "inbox", ChangeKey: &key})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	expect := `<t:DistinguishedFolder Id="inbox" ChangeKey="AAB="></t:DistinguishedFolder>`
	if e, a := expect, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}

	// The optional attribute is left off entirely when absent.
	actual, err = xmlcodec.Marshal(distinguishedFolder{Id: "inbox"})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<t:DistinguishedFolder Id="inbox"></t:DistinguishedFolder>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestStructureNamespaces(t *testing.T) {
	type searchScope string
	type searchDetail string
	type searchShape struct {
		Detail searchDetail
	}
	type searchRequest struct {
		Scope searchScope
		Shape searchShape
	}

	detailSchema := ews.NewSchema("codec.test#SearchDetail", ews.ShapeTypeEnum,
		ews.WithVariant("IdOnly", nil),
		ews.WithVariant("AllProperties", nil),
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
	)
	scopeSchema := ews.NewSchema("codec.test#SearchScope", ews.ShapeTypeEnum,
		ews.WithVariant("Shallow", nil),
		ews.WithVariant("Deep", nil),
	)
	shapeSchema := ews.NewSchema("codec.test#SearchShape", ews.ShapeTypeStructure,
		ews.WithMember("detail", detailSchema),
	)
	xmlcodec.MustRegister[searchRequest](ews.NewSchema("codec.test#SearchRequest", ews.ShapeTypeStructure,
		ews.WithMember("scope", scopeSchema, &traits.XMLAttribute{}),
		ews.WithMember("shape", shapeSchema),
		ews.WithTraits(
			&traits.XMLNamespace{URI: "urn:messages"},
			&traits.XMLNamespace{Prefix: "t", URI: "urn:types"},
		),
	))

	actual, err := xmlcodec.Marshal(searchRequest{
		Scope: "Shallow",
		Shape: searchShape{Detail: "IdOnly"},
	})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	expect := `<SearchRequest xmlns="urn:messages" xmlns:t="urn:types" Scope="Shallow">` +
		`<SearchShape><t:SearchDetail>IdOnly</t:SearchDetail></SearchShape>` +
		`</SearchRequest>`
	if e, a := expect, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestNestedElementNameFromTargetType(t *testing.T) {
	type mailboxHint struct {
		Value string
	}
	type resolveNames struct {
		Contact mailboxHint
	}

	// The member is named "contact" but the element it writes is named
	// after the target type.
	hintSchema := ews.NewSchema("codec.test#MailboxHint", ews.ShapeTypeStructure,
		ews.WithPositionalMember(ews.PreludeString),
	)
	xmlcodec.MustRegister[resolveNames](ews.NewSchema("codec.test#ResolveNames", ews.ShapeTypeStructure,
		ews.WithMember("contact", hintSchema),
	))

	actual, err := xmlcodec.Marshal(resolveNames{Contact: mailboxHint{Value: "kim"}})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<ResolveNames><MailboxHint>kim</MailboxHint></ResolveNames>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestDefaultNamespaceFirst(t *testing.T) {
	type pingRequest struct{}

	// Declared prefixed-then-default; the default must still render first.
	xmlcodec.MustRegister[pingRequest](ews.NewSchema("codec.test#PingRequest", ews.ShapeTypeStructure,
		ews.WithTraits(
			&traits.XMLNamespace{Prefix: "t", URI: "urn:types"},
			&traits.XMLNamespace{URI: "urn:messages"},
		),
	))

	actual, err := xmlcodec.Marshal(pingRequest{})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<PingRequest xmlns="urn:messages" xmlns:t="urn:types"></PingRequest>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestOptionalElement(t *testing.T) {
	type noteText struct {
		Value string
	}
	type reminder struct {
		Minutes *int
		Note    *noteText
	}

	noteSchema := ews.NewSchema("codec.test#Note", ews.ShapeTypeStructure,
		ews.WithPositionalMember(ews.PreludeString),
	)
	xmlcodec.MustRegister[reminder](ews.NewSchema("codec.test#Reminder", ews.ShapeTypeStructure,
		ews.WithMember("minutes", ews.PreludeInteger, &traits.XMLAttribute{}),
		ews.WithMember("note", noteSchema),
	))

	actual, err := xmlcodec.Marshal(reminder{})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<Reminder></Reminder>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}

	minutes := 15
	actual, err = xmlcodec.Marshal(reminder{Minutes: &minutes, Note: &noteText{Value: "call back"}})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<Reminder Minutes="15"><Note>call back</Note></Reminder>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestSequence(t *testing.T) {
	type folderRef struct {
		Id string
	}
	type folderList struct {
		Folders []folderRef
	}

	refSchema := ews.NewSchema("codec.test#FolderRef", ews.ShapeTypeStructure,
		ews.WithMember("id", ews.PreludeString, &traits.XMLAttribute{}),
	)
	xmlcodec.MustRegister[folderList](ews.NewSchema("codec.test#FolderList", ews.ShapeTypeStructure,
		ews.WithMember("folders", refSchema),
	))

	actual, err := xmlcodec.Marshal(folderList{Folders: []folderRef{{Id: "a"}, {Id: "b"}}})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	expect := `<FolderList><FolderRef Id="a"></FolderRef><FolderRef Id="b"></FolderRef></FolderList>`
	if e, a := expect, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}

	// An empty sequence writes nothing.
	actual, err = xmlcodec.Marshal(folderList{})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<FolderList></FolderList>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestEnumStandalone(t *testing.T) {
	type sensitivity string

	xmlcodec.MustRegister[sensitivity](ews.NewSchema("codec.test#Sensitivity", ews.ShapeTypeEnum,
		ews.WithVariant("Normal", nil),
		ews.WithVariant("Private", nil),
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
	))

	actual, err := xmlcodec.Marshal(sensitivity("Private"))
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<t:Sensitivity>Private</t:Sensitivity>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

type recipient interface {
	isRecipient()
}

type recipientMemberMailbox struct {
	Address string
}

func (recipientMemberMailbox) isRecipient() {}

type recipientMemberGroup struct {
	Id    string
	Title string
}

func (recipientMemberGroup) isRecipient() {}

type recipientUnbound struct{}

func (recipientUnbound) isRecipient() {}

type distributionList struct {
	Members []recipient
}

var recipientSchema = ews.NewSchema("codec.test#Recipient", ews.ShapeTypeUnion,
	ews.WithVariant("Mailbox", ews.NewSchema("codec.test#MailboxValues", ews.ShapeTypeStructure,
		ews.WithMember("address", ews.PreludeString, &traits.XMLAttribute{}),
	)),
	ews.WithVariant("Group", ews.NewSchema("codec.test#GroupValues", ews.ShapeTypeStructure,
		ews.WithMember("id", ews.PreludeString, &traits.XMLAttribute{}),
		ews.WithMember("title", ews.PreludeString),
	)),
	ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
)

func registerRecipients(t *testing.T) {
	t.Helper()
	if _, ok := xmlcodec.SchemaFor(distributionList{}); ok {
		return
	}
	xmlcodec.MustRegisterUnion[recipient](recipientSchema,
		xmlcodec.BindVariant[recipientMemberMailbox]("Mailbox"),
		xmlcodec.BindVariant[recipientMemberGroup]("Group"),
	)
	xmlcodec.MustRegister[distributionList](ews.NewSchema("codec.test#DistributionList", ews.ShapeTypeStructure,
		ews.WithMember("members", recipientSchema),
	))
}

func TestUnionVariants(t *testing.T) {
	registerRecipients(t)

	actual, err := xmlcodec.Marshal(distributionList{Members: []recipient{
		recipientMemberMailbox{Address: "ops@example.com"},
		recipientMemberGroup{Id: "g1", Title: "staff"},
	}})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	expect := `<DistributionList>` +
		`<t:Mailbox Address="ops@example.com"></t:Mailbox>` +
		`<t:Group Id="g1">staff</t:Group>` +
		`</DistributionList>`
	if e, a := expect, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestUnionRuntimeErrors(t *testing.T) {
	registerRecipients(t)

	_, err := xmlcodec.Marshal(distributionList{Members: []recipient{nil}})
	if err == nil || !strings.Contains(err.Error(), "nil") {
		t.Errorf("expect nil variant error, got %v", err)
	}

	_, err = xmlcodec.Marshal(distributionList{Members: []recipient{recipientUnbound{}}})
	if err == nil || !strings.Contains(err.Error(), "not a bound variant") {
		t.Errorf("expect unbound variant error, got %v", err)
	}
}

type approveRequest struct {
	ItemId string
}

type operation interface {
	isOperation()
}

type operationMemberApprove struct {
	Value approveRequest
}

func (operationMemberApprove) isOperation() {}

func TestUnionPositionalVariant(t *testing.T) {
	type requestBody struct {
		Contents operation
	}

	approveSchema := ews.NewSchema("codec.test#ApproveRequest", ews.ShapeTypeStructure,
		ews.WithMember("item_id", ews.PreludeString, &traits.XMLAttribute{}),
	)
	operationSchema := ews.NewSchema("codec.test#Operation", ews.ShapeTypeUnion,
		ews.WithVariant("Approve", ews.NewSchema("codec.test#ApproveContents", ews.ShapeTypeStructure,
			ews.WithPositionalMember(approveSchema),
		)),
	)

	xmlcodec.MustRegisterUnion[operation](operationSchema,
		xmlcodec.BindVariant[operationMemberApprove]("Approve"),
	)
	xmlcodec.MustRegister[requestBody](ews.NewSchema("codec.test#RequestBody", ews.ShapeTypeStructure,
		ews.WithMember("contents", operationSchema),
	))

	v := requestBody{Contents: operationMemberApprove{Value: approveRequest{ItemId: "AAMk"}}}
	actual, err := xmlcodec.Marshal(v)
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	// The positional variant writes its fields with no wrapping element.
	expect := `<RequestBody><ApproveRequest ItemId="AAMk"></ApproveRequest></RequestBody>`
	if e, a := expect, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestScalarMembers(t *testing.T) {
	type sentAt struct {
		At time.Time
	}
	type readFlag struct {
		Value bool
	}
	type viewSize struct {
		Value int64
	}

	xmlcodec.MustRegister[sentAt](ews.NewSchema("codec.test#SentAt", ews.ShapeTypeStructure,
		ews.WithMember("at", ews.PreludeTimestamp),
	))
	xmlcodec.MustRegister[readFlag](ews.NewSchema("codec.test#ReadFlag", ews.ShapeTypeStructure,
		ews.WithPositionalMember(ews.PreludeBoolean),
	))
	xmlcodec.MustRegister[viewSize](ews.NewSchema("codec.test#ViewSize", ews.ShapeTypeStructure,
		ews.WithPositionalMember(ews.PreludeLong),
	))

	cases := map[string]struct {
		value  interface{}
		expect string
	}{
		"timestamp": {
			value:  sentAt{At: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
			expect: `<SentAt>2024-03-15T09:30:00Z</SentAt>`,
		},
		"boolean": {
			value:  readFlag{Value: true},
			expect: `<ReadFlag>true</ReadFlag>`,
		},
		"long": {
			value:  viewSize{Value: 250},
			expect: `<ViewSize>250</ViewSize>`,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			actual, err := xmlcodec.Marshal(c.value)
			if err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if e, a := c.expect, string(actual); e != a {
				t.Errorf("expect:\n%s\nactual:\n%s", e, a)
			}
		})
	}
}

func TestAttributeFormats(t *testing.T) {
	type span struct {
		Active bool
		Count  int
		Ratio  float64
		Start  time.Time
	}

	xmlcodec.MustRegister[span](ews.NewSchema("codec.test#Span", ews.ShapeTypeStructure,
		ews.WithMember("active", ews.PreludeBoolean, &traits.XMLAttribute{}),
		ews.WithMember("count", ews.PreludeInteger, &traits.XMLAttribute{}),
		ews.WithMember("ratio", ews.PreludeDouble, &traits.XMLAttribute{}),
		ews.WithMember("start", ews.PreludeTimestamp, &traits.XMLAttribute{}),
	))

	actual, err := xmlcodec.Marshal(span{
		Active: true,
		Count:  7,
		Ratio:  0.25,
		Start:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	expect := `<Span Active="true" Count="7" Ratio="0.25" Start="2024-03-15T09:30:00Z"></Span>`
	if e, a := expect, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

type rawFragment struct {
	Text string
}

func (f rawFragment) WriteXMLElement(e *xml.Encoder) error {
	if f.Text == "" {
		return errors.New("empty fragment")
	}
	start := xml.StartElement{Name: xml.Name{Local: "Fragment"}}
	e.WriteStartElement(start)
	e.WriteText(f.Text)
	e.WriteEndElement(start.End())
	return e.Err()
}

func TestCustomElementWriter(t *testing.T) {
	xmlcodec.MustRegister[rawFragment](ews.NewSchema("codec.test#Fragment", ews.ShapeTypeStructure))

	actual, err := xmlcodec.Marshal(rawFragment{Text: "hello"})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<Fragment>hello</Fragment>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}

	// Errors from the custom writer surface to the caller.
	if _, err := xmlcodec.Marshal(rawFragment{}); err == nil {
		t.Error("expect error from custom writer")
	}
}

type onOff bool

func (v onOff) WriteXMLAttribute(start *xml.StartElement, name string) {
	if v {
		start.Attr = append(start.Attr, xml.Attribute(name, "1"))
	}
}

func TestCustomAttributeWriter(t *testing.T) {
	type taskFlags struct {
		Urgent onOff
	}

	xmlcodec.MustRegister[taskFlags](ews.NewSchema("codec.test#TaskFlags", ews.ShapeTypeStructure,
		ews.WithMember("urgent", ews.PreludeBoolean, &traits.XMLAttribute{}),
	))

	actual, err := xmlcodec.Marshal(taskFlags{Urgent: true})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<TaskFlags Urgent="1"></TaskFlags>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}

	actual, err = xmlcodec.Marshal(taskFlags{})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<TaskFlags></TaskFlags>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}

func TestWriteElementLookup(t *testing.T) {
	type registeredNote struct {
		Value string
	}
	type unregisteredNote struct{}

	xmlcodec.MustRegister[registeredNote](ews.NewSchema("codec.test#RegisteredNote", ews.ShapeTypeStructure,
		ews.WithPositionalMember(ews.PreludeString),
	))

	// A pointer to a registered type serializes its element.
	actual, err := xmlcodec.Marshal(&registeredNote{Value: "ok"})
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<RegisteredNote>ok</RegisteredNote>`, string(actual); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}

	if _, err := xmlcodec.Marshal((*registeredNote)(nil)); err == nil {
		t.Error("expect error for nil pointer")
	}

	_, err = xmlcodec.Marshal(unregisteredNote{})
	if err == nil || !strings.Contains(err.Error(), "no schema registered") {
		t.Errorf("expect unregistered type error, got %v", err)
	}
}

// shortWriter accepts n bytes then fails.
type shortWriter struct {
	n   int
	err error
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, w.err
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEncodePropagatesWriteError(t *testing.T) {
	type payloadNote struct {
		Value string
	}
	xmlcodec.MustRegister[payloadNote](ews.NewSchema("codec.test#PayloadNote", ews.ShapeTypeStructure,
		ews.WithPositionalMember(ews.PreludeString),
	))

	wantErr := errors.New("connection reset")
	err := xmlcodec.Encode(&shortWriter{n: 3, err: wantErr}, payloadNote{Value: "body"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expect %v, got %v", wantErr, err)
	}

	// A healthy writer round-trips through Encode unharmed.
	var buf bytes.Buffer
	if err := xmlcodec.Encode(&buf, payloadNote{Value: "body"}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := `<PayloadNote>body</PayloadNote>`, buf.String(); e != a {
		t.Errorf("expect:\n%s\nactual:\n%s", e, a)
	}
}
