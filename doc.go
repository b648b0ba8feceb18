// Package markup provides declarative hierarchical serialization: it converts
// arbitrary object graphs into nested markup documents and projects markup
// documents into equivalent JSON, without per-type serialization code.
//
// # Object-graph path
//
// Marshal introspects a value, materializes a depth-bounded hierarchy of
// nodes, and emits each node as an attribute, element, or inline text
// according to declarative annotations and a per-type Policy:
//
//	type Employee struct {
//	    ID    int    `emit.attribute:"id"`
//	    Name  string `emit.element:"Name"`
//	    Notes string `emit.ignore:"true"`
//	}
//
//	out, err := markup.Marshal(Employee{ID: 7, Name: "Kim"})
//	// <?xml version="1.0" encoding="utf-8"?><Employee id="7"><Name>Kim</Name></Employee>
//
// # Tag Syntax
//
// Member behavior is declared via struct tags:
//
//	emit.attribute:"[name[,namespace]]"  - serialize as attribute
//	emit.element:"[name[,namespace]]"    - serialize as element
//	emit.text:"true"                     - serialize as inline text
//	emit.item:"Name"                     - element name for collection items
//	emit.ignore:"true"                   - skip this member
//	emit.omitref:"true"                  - visit but never descend (breaks back references)
//
// Type-level behavior is declared via optional interfaces: PolicyProvider
// for per-type policy, RootNamer for root-name overrides, Wrapper for
// wrapper types that carry their own emission name, and MarkupWriterTo as
// the escape hatch for hand-written emission.
//
// # JSON path
//
// ProjectJSON consumes an already-built markup document (not the object
// graph) and streams an equivalent JSON object. Same-named sibling elements
// are detected positionally and emitted as JSON arrays; elements whose sole
// content is a single whitespace-free text node collapse to scalar values.
//
//	out, err := markup.ProjectJSON(doc, markup.UTF8)
//
// Target encodings are restricted to the Unicode transform formats (UTF-8,
// UTF-16 LE/BE, UTF-32 LE/BE); anything else is rejected before any output
// is produced.
//
// # Concurrency
//
// Serialization and projection are synchronous tree walks with no shared
// mutable state beyond the per-type policy cache, which uses double-checked
// locking. Independent calls may run concurrently without coordination.
package markup
