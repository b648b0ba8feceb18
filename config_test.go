package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadOptions(t *testing.T) {
	const doc = `
omit_declaration: true
root_name: Staff
root_namespace: urn:example
encoding: utf-16le
max_depth: 4
`

	opts, err := LoadOptions(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadOptions() error: %v", err)
	}

	o := applyOptions(opts)
	if !o.OmitDeclaration {
		t.Error("OmitDeclaration not applied")
	}
	if o.RootName == nil || o.RootName.LocalName != "Staff" || o.RootName.Namespace != "urn:example" {
		t.Errorf("RootName = %+v", o.RootName)
	}
	if o.Encoding != UTF16LE {
		t.Errorf("Encoding = %q, want %q", o.Encoding, UTF16LE)
	}
	if o.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", o.MaxDepth)
	}
}

func TestLoadOptions_Defaults(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("LoadOptions() error: %v", err)
	}

	o := applyOptions(opts)
	if o.OmitDeclaration || o.RootName != nil {
		t.Errorf("empty document should yield defaults, got %+v", o)
	}
	if o.Encoding != UTF8 {
		t.Errorf("Encoding = %q, want %q", o.Encoding, UTF8)
	}
	if o.MaxDepth != defaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", o.MaxDepth, defaultMaxDepth)
	}
}

func TestLoadOptions_RootNameSanitized(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`root_name: "1st choice"`))
	if err != nil {
		t.Fatalf("LoadOptions() error: %v", err)
	}

	o := applyOptions(opts)
	if o.RootName == nil || o.RootName.LocalName != "_1stchoice" {
		t.Errorf("RootName = %+v, want sanitized _1stchoice", o.RootName)
	}
}

func TestLoadOptions_InvalidEncoding(t *testing.T) {
	_, err := LoadOptions(strings.NewReader(`encoding: latin-1`))
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("error should unwrap to ErrUnsupportedEncoding: %v", err)
	}
}

func TestLoadOptions_InvalidYAML(t *testing.T) {
	_, err := LoadOptions(strings.NewReader("max_depth: [not a number"))
	if err == nil {
		t.Fatal("expected a decode error")
	}
}
