package markup

import (
	"strings"
	"testing"
)

type mixed struct {
	A string `emit.attribute:""`
	B string `emit.element:""`
}

func TestEmit_AnnotationDominance(t *testing.T) {
	out, err := New().Marshal(mixed{A: "1", B: "2"}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, `A="1"`) {
		t.Errorf("attribute-annotated member must emit as attribute: %s", doc)
	}
	if strings.Contains(doc, "<A") {
		t.Errorf("attribute-annotated member must never emit as element: %s", doc)
	}
	if !strings.Contains(doc, "<B>2</B>") {
		t.Errorf("element-annotated member must emit as element: %s", doc)
	}
	if strings.Contains(doc, `B="`) {
		t.Errorf("element-annotated member must never emit as attribute: %s", doc)
	}
}

type attrPolicyUser struct {
	ID   int
	Name string `emit.element:""`
}

func (attrPolicyUser) SerializationPolicy() Policy {
	return Policy{
		EnableAutomated:        true,
		DefaultMethod:          EmitAttribute,
		EnableSignatureCaching: true,
	}
}

func TestEmit_DefaultMethodAttribute(t *testing.T) {
	out, err := New().Marshal(attrPolicyUser{ID: 9, Name: "x"}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, `ID="9"`) {
		t.Errorf("unannotated member should follow the type default: %s", doc)
	}
	// The element annotation still dominates the attribute default.
	if !strings.Contains(doc, "<Name>x</Name>") {
		t.Errorf("annotation must win over the type default: %s", doc)
	}
}

type note struct {
	Text string `emit.text:"true"`
	Lang string `emit.attribute:""`
}

func TestEmit_InlineText(t *testing.T) {
	out, err := New().Marshal(note{Text: "hello", Lang: "en"}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<Note Lang="en">hello</Note>`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestEmit_MemberNameOverride(t *testing.T) {
	type renamed struct {
		Inner string `emit.element:"Outer"`
	}

	out, err := New().Marshal(renamed{Inner: "v"}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<Renamed><Outer>v</Outer></Renamed>`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestEmit_EmptyStructSelfCloses(t *testing.T) {
	type empty struct{}

	out, err := New().Marshal(empty{}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<Empty />`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}
