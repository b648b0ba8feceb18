package markup

// EmissionMethod selects how a member is written when no per-member
// annotation applies.
type EmissionMethod int

const (
	// EmitElement writes the member as a nested element.
	EmitElement EmissionMethod = iota

	// EmitAttribute writes the member as an attribute on its parent tag.
	EmitAttribute

	// EmitText writes the member as inline text content. Only reachable
	// through the emit.text annotation, never as a type default.
	EmitText
)

// String returns the annotation spelling of the method.
func (m EmissionMethod) String() string {
	switch m {
	case EmitAttribute:
		return "attribute"
	case EmitText:
		return "text"
	default:
		return "element"
	}
}

// Policy is the per-type serialization configuration. It is resolved
// lazily on first use of a concrete type and memoized for the lifetime of
// the owning Serializer.
type Policy struct {
	// OmitDeclaration suppresses the document declaration when the type
	// is serialized as a root.
	OmitDeclaration bool

	// EnableAutomated permits the annotation-driven emission path. When
	// false the type must implement MarkupWriterTo; automated emission is
	// refused with a ConfigError otherwise.
	EnableAutomated bool

	// DefaultMethod applies to members without an emission annotation.
	// Only EmitElement and EmitAttribute are meaningful here.
	DefaultMethod EmissionMethod

	// EnableSignatureCaching memoizes the reflected member signature of
	// the type across calls. Disabling it forces a fresh introspection on
	// every traversal, which is only useful for types whose member set is
	// patched at runtime.
	EnableSignatureCaching bool
}

// DefaultPolicy returns the policy applied to types without a
// PolicyProvider implementation.
func DefaultPolicy() Policy {
	return Policy{
		EnableAutomated:        true,
		DefaultMethod:          EmitElement,
		EnableSignatureCaching: true,
	}
}

// PolicyProvider is implemented by types that override the default
// serialization policy. The method must be callable on a zero value; the
// engine resolves it once per concrete type and caches the result.
type PolicyProvider interface {
	SerializationPolicy() Policy
}
