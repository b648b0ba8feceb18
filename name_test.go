package markup

import (
	"reflect"
	"testing"
	"time"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "Name"},
		{"my name", "myname"},
		{"1st", "_1st"},
		{"a.b-c", "a.b-c"},
		{"<bad>", "bad"},
		{"", "_"},
		{"crème", "crme"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeName(tt.in); got != tt.want {
				t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type displayEmployee struct {
	Name string
}

func TestTypeDisplayName(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeOf(0), "Int"},
		{reflect.TypeOf(""), "String"},
		{reflect.TypeOf(displayEmployee{}), "DisplayEmployee"},
		{reflect.TypeOf(&displayEmployee{}), "DisplayEmployee"},
		{reflect.TypeOf([]displayEmployee{}), "DisplayEmployeeList"},
		{reflect.TypeOf(map[string]int{}), "StringAndInt"},
		{reflect.TypeOf([][]int{}), "IntListList"},
		{reflect.TypeOf(time.Time{}), "Time"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := typeDisplayName(tt.typ); got != tt.want {
				t.Errorf("typeDisplayName(%v) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestParseNameTag(t *testing.T) {
	if got := parseNameTag(""); got != nil {
		t.Errorf("parseNameTag(\"\") = %v, want nil", got)
	}
	if got := parseNameTag("true"); got != nil {
		t.Errorf("parseNameTag(\"true\") = %v, want nil", got)
	}

	got := parseNameTag("Employees,urn:example")
	if got == nil {
		t.Fatal("parseNameTag returned nil")
	}
	if got.LocalName != "Employees" || got.Namespace != "urn:example" {
		t.Errorf("parseNameTag = %+v", got)
	}
}

type namedRoot struct {
	Value int
}

func (namedRoot) MarkupRootName() QualifiedName {
	return Name("Custom")
}

func TestResolveName_Priority(t *testing.T) {
	cache := newPolicyCache()

	// Explicit caller name wins at the root.
	h := buildHierarchy(cache, namedRoot{Value: 1}, defaultBuilderOptions())
	explicit := Name("Override")
	if got := resolveName(h, rootNode, &explicit); got.LocalName != "Override" {
		t.Errorf("explicit name: got %q", got.LocalName)
	}

	// RootNamer applies without an explicit name.
	if got := resolveName(h, rootNode, nil); got.LocalName != "Custom" {
		t.Errorf("RootNamer: got %q", got.LocalName)
	}

	// Members fall back to their sanitized names.
	child := h.childrenOf(rootNode)[0]
	if got := resolveName(h, child, nil); got.LocalName != "Value" {
		t.Errorf("member fallback: got %q", got.LocalName)
	}
}

func TestResolveName_QualifiedNameIdentity(t *testing.T) {
	cache := newPolicyCache()
	q := QualifiedName{Prefix: "x", LocalName: "Self", Namespace: "urn:x"}
	h := buildHierarchy(cache, q, defaultBuilderOptions())

	if got := resolveName(h, rootNode, nil); got != q {
		t.Errorf("identity short-circuit: got %+v, want %+v", got, q)
	}
}
