package markup

import "io"

// defaultSerializer backs the package-level convenience functions. Its
// policy cache lives for the process; use New for an isolated cache.
var defaultSerializer = New()

// Marshal serializes v into a markup document using the default
// Serializer.
func Marshal(v any, opts ...Option) ([]byte, error) {
	return defaultSerializer.Marshal(v, opts...)
}

// MarshalTo serializes v and writes the document to w using the default
// Serializer.
func MarshalTo(w io.Writer, v any, opts ...Option) error {
	return defaultSerializer.MarshalTo(w, v, opts...)
}

// Reset clears the default Serializer's policy cache.
// This is primarily useful for test isolation.
func Reset() {
	defaultSerializer.Reset()
}
