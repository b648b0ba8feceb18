package markup

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Encoding names a caller-visible text encoding. Only the Unicode
// transform formats are supported; every other value is rejected with an
// EncodingError before any output is produced.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	UTF32LE Encoding = "utf-32le"
	UTF32BE Encoding = "utf-32be"
)

// transformer maps the encoding onto its x/text implementation. The
// multi-byte formats carry a byte order mark so the byte order survives
// the trip to external consumers.
func (e Encoding) transformer() (encoding.Encoding, error) {
	switch e {
	case UTF8:
		return unicode.UTF8, nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), nil
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), nil
	}
	return nil, newEncodingError(string(e))
}

// validate rejects unsupported encodings without producing output.
func (e Encoding) validate() error {
	_, err := e.transformer()
	return err
}

// declarationName is the encoding name written into the document
// declaration. Byte order is conveyed by the mark, not the name.
func (e Encoding) declarationName() string {
	switch e {
	case UTF16LE, UTF16BE:
		return "utf-16"
	case UTF32LE, UTF32BE:
		return "utf-32"
	default:
		return "utf-8"
	}
}

// encode re-encodes internally produced UTF-8 bytes into the
// caller-requested encoding.
func (e Encoding) encode(data []byte) ([]byte, error) {
	enc, err := e.transformer()
	if err != nil {
		return nil, err
	}
	if e == UTF8 {
		return data, nil
	}
	out, err := enc.NewEncoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decodeToUTF8 normalizes input that may carry a byte order mark into
// plain UTF-8 for parsing.
func decodeToUTF8(data []byte) ([]byte, error) {
	bom := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(bom, data)
	if err != nil {
		return nil, err
	}
	return out, nil
}
