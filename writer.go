package markup

import (
	"bytes"
	"strings"
)

// Writer builds a markup document incrementally. A start tag stays open
// until content arrives, so attributes can be added after WriteStartElement;
// the first text, child element, or end call closes the bracket. An element
// closed while still open renders self-closing.
//
// Writer is handed to MarkupWriterTo implementations and supplementary
// block callbacks; it is not safe for concurrent use.
type Writer struct {
	buf   bytes.Buffer
	stack []QualifiedName
	open  bool
}

func newWriter() *Writer {
	return &Writer{}
}

// WriteDeclaration writes the document declaration line.
func (w *Writer) WriteDeclaration(encoding string) {
	w.buf.WriteString(`<?xml version="1.0" encoding="`)
	w.buf.WriteString(encoding)
	w.buf.WriteString(`"?>`)
}

// WriteStartElement opens an element. Attributes may be written until the
// next content call.
func (w *Writer) WriteStartElement(q QualifiedName) {
	w.closeStart()
	w.buf.WriteByte('<')
	w.buf.WriteString(q.String())
	if q.Namespace != "" {
		attr := "xmlns"
		if q.Prefix != "" {
			attr = "xmlns:" + q.Prefix
		}
		w.buf.WriteByte(' ')
		w.buf.WriteString(attr)
		w.buf.WriteString(`="`)
		w.buf.WriteString(escapeAttr(q.Namespace))
		w.buf.WriteByte('"')
	}
	w.stack = append(w.stack, q)
	w.open = true
}

// WriteAttribute writes an attribute on the currently open start tag.
// Calls outside an open start tag are ignored.
func (w *Writer) WriteAttribute(q QualifiedName, value string) {
	if !w.open {
		return
	}
	w.buf.WriteByte(' ')
	w.buf.WriteString(q.String())
	w.buf.WriteString(`="`)
	w.buf.WriteString(escapeAttr(value))
	w.buf.WriteByte('"')
}

// WriteText writes escaped text content.
func (w *Writer) WriteText(s string) {
	w.closeStart()
	w.buf.WriteString(escapeText(s))
}

// WriteEndElement closes the most recently opened element.
func (w *Writer) WriteEndElement() {
	if len(w.stack) == 0 {
		return
	}
	q := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if w.open {
		w.buf.WriteString(" />")
		w.open = false
		return
	}
	w.buf.WriteString("</")
	w.buf.WriteString(q.String())
	w.buf.WriteByte('>')
}

// WriteRaw writes s without escaping. Intended for supplementary blocks
// and hand-written emission routines.
func (w *Writer) WriteRaw(s string) {
	w.closeStart()
	w.buf.WriteString(s)
}

// closeStart terminates a pending start tag bracket.
func (w *Writer) closeStart() {
	if w.open {
		w.buf.WriteByte('>')
		w.open = false
	}
}

// bytes finalizes the document and returns the internal buffer.
func (w *Writer) bytes() []byte {
	w.closeStart()
	return w.buf.Bytes()
}

// escapeText escapes the basic markup entities for text content.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// escapeAttr escapes text for use in attribute values.
func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
