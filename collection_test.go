package markup

import (
	"strings"
	"testing"
)

type team struct {
	Members []employee
}

func TestCollection_SequenceOfComplexItems(t *testing.T) {
	in := team{Members: []employee{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c"},
	}}

	out, err := New().Marshal(in, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	doc := string(out)

	if strings.Count(doc, "<Members>") != 1 || strings.Count(doc, "</Members>") != 1 {
		t.Errorf("expected exactly one outer wrapper: %s", doc)
	}
	if strings.Count(doc, "<Employee") != 3 || strings.Count(doc, "</Employee>") != 3 {
		t.Errorf("expected exactly 3 per-item wrapper pairs: %s", doc)
	}
}

func TestCollection_ScalarItems(t *testing.T) {
	out, err := New().Marshal([]int{1, 2}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<IntList><Int>1</Int><Int>2</Int></IntList>`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestCollection_ItemNameOverride(t *testing.T) {
	type roster struct {
		Names []string `emit.item:"Member"`
	}

	out, err := New().Marshal(roster{Names: []string{"a", "b"}}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<Roster><Names><Member>a</Member><Member>b</Member></Names></Roster>`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestCollection_NilItemsSkipped(t *testing.T) {
	type pool struct {
		Workers []*employee
	}

	out, err := New().Marshal(pool{Workers: []*employee{nil, {ID: 1, Name: "a"}, nil}}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	if got := strings.Count(string(out), "<Employee"); got != 1 {
		t.Errorf("nil items must be skipped, found %d wrappers: %s", got, out)
	}
}

func TestCollection_HeterogeneousItems(t *testing.T) {
	out, err := New().Marshal([]any{1, "x"}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<ValueList><Int>1</Int><String>x</String></ValueList>`
	if string(out) != want {
		t.Errorf("item names resolve per item: got %s, want %s", out, want)
	}
}

func TestCollection_AssociativeShape(t *testing.T) {
	type lookup struct {
		Values map[string]int
	}

	out, err := New().Marshal(lookup{Values: map[string]int{"a": 1, "b": 2}}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	doc := string(out)

	if got := strings.Count(doc, "<KeyValuePair>"); got != 2 {
		t.Errorf("expected 2 KeyValuePair wrappers, got %d: %s", got, doc)
	}
	if got := strings.Count(doc, "<Key>"); got != 2 {
		t.Errorf("expected 2 Key children, got %d: %s", got, doc)
	}
	if got := strings.Count(doc, "<Value>"); got != 2 {
		t.Errorf("expected 2 Value children, got %d: %s", got, doc)
	}
	if !strings.HasPrefix(doc, "<Lookup><Values><KeyValuePair>") {
		t.Errorf("wrapper nesting is wrong: %s", doc)
	}
}

func TestCollection_ComplexMapValues(t *testing.T) {
	out, err := New().Marshal(map[string]employee{"lead": {ID: 1, Name: "a"}}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	doc := string(out)

	want := `<StringAndEmployee><KeyValuePair><Key>lead</Key><Value id="1"><Name>a</Name></Value></KeyValuePair></StringAndEmployee>`
	if doc != want {
		t.Errorf("got %s, want %s", doc, want)
	}
}

func TestCollection_NestedSequences(t *testing.T) {
	out, err := New().Marshal([][]int{{1}, {2, 3}}, WithOmitDeclaration())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<IntListList><IntList><Int>1</Int></IntList><IntList><Int>2</Int><Int>3</Int></IntList></IntListList>`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}
