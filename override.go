package markup

// Override interfaces let types steer or bypass the annotation-driven
// emission path. They replace name-string lookups with explicit contracts:
// a type states what it overrides by implementing the matching interface.

// RootNamer overrides the tag name used when the implementing type is the
// root of a document. The returned name participates in the resolver's
// priority order below caller-supplied explicit names.
type RootNamer interface {
	// MarkupRootName returns the root tag identity. A zero name defers
	// to the next resolution rule.
	MarkupRootName() QualifiedName
}

// Wrapper marks a type whose emission is driven entirely by a wrapped
// instance: the engine bypasses normal attribute/element logic and
// recurses once into a synthetic single-node tree built from
// WrappedInstance. InstanceName dictates the emission name for the
// wrapper and for any wrapper-typed nodes below a wrapper root.
type Wrapper interface {
	// WrappedInstance returns the value whose content the wrapper emits.
	WrappedInstance() any

	// InstanceName returns the emission name for this instance. A zero
	// name defers to the next resolution rule.
	InstanceName() QualifiedName
}

// MarkupWriterTo is the escape hatch for hand-written types. A type that
// disables automated serialization via PolicyProvider and implements this
// interface has its output used verbatim; the hierarchy builder and node
// emitter are never consulted for it.
type MarkupWriterTo interface {
	// WriteMarkupTo writes the receiver's markup representation.
	WriteMarkupTo(w *Writer) error
}
