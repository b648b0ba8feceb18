package markup

import (
	"reflect"
	"strings"
)

// typeArgSeparator joins the sanitized type-argument names of a
// parameterized container when no explicit name applies.
const typeArgSeparator = "And"

// QualifiedName is the identity of a markup tag: an optional prefix, a
// local name, and an optional namespace. It is immutable once computed
// for a node.
type QualifiedName struct {
	Prefix    string
	LocalName string
	Namespace string
}

// Name returns a QualifiedName with only a local name.
func Name(local string) QualifiedName {
	return QualifiedName{LocalName: local}
}

// IsZero reports whether the name carries no local name.
func (q QualifiedName) IsZero() bool {
	return q.LocalName == ""
}

// String renders the name as it appears in a tag, prefix included.
func (q QualifiedName) String() string {
	if q.Prefix != "" {
		return q.Prefix + ":" + q.LocalName
	}
	return q.LocalName
}

// sanitizeName strips characters that are invalid in a markup tag name.
// A name whose first character is not a letter or underscore is prefixed
// with an underscore.
func sanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if c := out[0]; c >= '0' && c <= '9' || c == '-' || c == '.' {
		out = "_" + out
	}
	return out
}

// parseNameTag parses a tag value of the form "name" or "name,namespace".
// An empty value yields nil, meaning the member name applies.
func parseNameTag(val string) *QualifiedName {
	if val == "" || val == "true" {
		return nil
	}
	local, ns, _ := strings.Cut(val, ",")
	local = strings.TrimSpace(local)
	if local == "" {
		return nil
	}
	q := QualifiedName{LocalName: sanitizeName(local), Namespace: strings.TrimSpace(ns)}
	return &q
}

// typeDisplayName renders a human-readable tag name for a type. Container
// types without explicit annotations derive their name from their type
// arguments: map[string]int becomes "StringAndInt", []Employee becomes
// "EmployeeList".
func typeDisplayName(t reflect.Type) string {
	if t == nil {
		return "Value"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return typeDisplayName(t.Elem())
	case reflect.Map:
		return typeDisplayName(t.Key()) + typeArgSeparator + typeDisplayName(t.Elem())
	case reflect.Slice, reflect.Array:
		if t.Name() != "" {
			return sanitizeName(t.Name())
		}
		return typeDisplayName(t.Elem()) + "List"
	default:
		if name := t.Name(); name != "" {
			return sanitizeName(titleCase(name))
		}
		return "Value"
	}
}

// titleCase upper-cases the first byte of an identifier so that builtin
// type names render as tag names ("string" -> "String").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

// resolveName computes the qualified tag name for a node. Priority order,
// first match wins:
//
//  1. Caller-supplied explicit name (root only).
//  2. Wrapper override: the whole-tree root is a Wrapper and the node
//     exposes InstanceName.
//  3. RootNamer override at the tree root, or the member's name annotation.
//  4. Sanitized member name; without a member reference, a sanitized
//     rendering of the declared type's name.
//
// A node whose instance is itself a QualifiedName is the answer: such
// nodes directly carry their own emission name as payload.
func resolveName(h *Hierarchy, n int, explicit *QualifiedName) QualifiedName {
	inst := h.instance(n)

	if q, ok := inst.(QualifiedName); ok {
		return q
	}
	if n == rootNode && explicit != nil && !explicit.IsZero() {
		return *explicit
	}
	if _, ok := h.instance(rootNode).(Wrapper); ok {
		if w, ok := inst.(Wrapper); ok {
			if q := w.InstanceName(); !q.IsZero() {
				return q
			}
		}
	}
	if n == rootNode {
		if rn, ok := inst.(RootNamer); ok {
			if q := rn.MarkupRootName(); !q.IsZero() {
				return q
			}
		}
	}
	if m := h.member(n); m != nil {
		if q := memberNameOverride(m); q != nil {
			return *q
		}
		return Name(sanitizeName(m.Name))
	}
	return Name(typeDisplayName(h.nodeType(n)))
}

// memberNameOverride returns the name carried by an emission annotation,
// or nil when the member name should apply.
func memberNameOverride(m *memberInfo) *QualifiedName {
	for _, key := range []string{tagElement, tagAttribute} {
		if val, ok := m.Tags[key]; ok {
			if q := parseNameTag(val); q != nil {
				return q
			}
		}
	}
	return nil
}
