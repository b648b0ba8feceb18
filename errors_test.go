package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := newConfigError(ErrAutomationDisabled, "markup.legacyType")

	if !errors.Is(err, ErrAutomationDisabled) {
		t.Error("ConfigError should unwrap to ErrAutomationDisabled")
	}
	if !strings.Contains(err.Error(), "markup.legacyType") {
		t.Errorf("message should identify the type: %q", err.Error())
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As should match *ConfigError")
	}
	if ce.TypeName != "markup.legacyType" {
		t.Errorf("TypeName = %q", ce.TypeName)
	}
}

func TestEncodingError(t *testing.T) {
	err := newEncodingError("latin-1")

	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Error("EncodingError should unwrap to ErrUnsupportedEncoding")
	}
	if !strings.Contains(err.Error(), "latin-1") {
		t.Errorf("message should name the encoding: %q", err.Error())
	}
}

func TestStructuralError(t *testing.T) {
	cause := errors.New("unexpected end element")
	err := newStructuralError(cause)

	if !errors.Is(err, ErrMalformedMarkup) {
		t.Error("StructuralError should unwrap to ErrMalformedMarkup")
	}
	if !strings.Contains(err.Error(), "unexpected end element") {
		t.Errorf("message should carry the parser cause: %q", err.Error())
	}
}
