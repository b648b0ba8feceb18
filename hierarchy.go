package markup

import (
	"reflect"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register emission tags with sentinel
	sentinel.Tag(tagAttribute)
	sentinel.Tag(tagElement)
	sentinel.Tag(tagText)
	sentinel.Tag(tagItem)
	sentinel.Tag(tagIgnore)
	sentinel.Tag(tagOmitRef)
}

// Emission tags consumed by the engine.
const (
	tagAttribute = "emit.attribute"
	tagElement   = "emit.element"
	tagText      = "emit.text"
	tagItem      = "emit.item"
	tagIgnore    = "emit.ignore"
	tagOmitRef   = "emit.omitref"
)

// emissionTags enumerates every tag key the engine reads from a member.
var emissionTags = []string{
	tagAttribute,
	tagElement,
	tagText,
	tagItem,
	tagIgnore,
	tagOmitRef,
}

// memberInfo describes the field that produced a node from its parent.
type memberInfo = sentinel.FieldMetadata

// rootNode is the arena index of the tree root.
const rootNode = 0

// noParent marks the root's parent reference.
const noParent = -1

// Hierarchy is an arena of nodes materialized from one object graph
// traversal. Parent references are index relations only; the arena owns
// every node. The tree is acyclic by construction: descent is bounded by
// a fixed depth ceiling.
type Hierarchy struct {
	nodes []hierarchyNode
}

// hierarchyNode is one position in the traversed object graph.
type hierarchyNode struct {
	value    reflect.Value
	typ      reflect.Type
	member   *memberInfo
	parent   int
	children []int
}

// builderOptions bound and filter a traversal.
type builderOptions struct {
	maxDepth   int
	skipType   func(reflect.Type) bool
	skipMember func(memberInfo) bool
}

// defaultMaxDepth is the descent ceiling applied when the caller does not
// override it. It is the sole safeguard against unbounded cyclic graphs.
const defaultMaxDepth = 10

func defaultBuilderOptions() builderOptions {
	return builderOptions{
		maxDepth: defaultMaxDepth,
		skipType: isLeafType,
	}
}

// buildHierarchy introspects root and produces the node arena. Nil member
// values become absent leaves; they are represented, not rejected.
func buildHierarchy(cache *policyCache, root any, opts builderOptions) *Hierarchy {
	if opts.maxDepth <= 0 {
		opts.maxDepth = defaultMaxDepth
	}
	if opts.skipType == nil {
		opts.skipType = isLeafType
	}
	b := &hierarchyBuilder{cache: cache, opts: opts, h: &Hierarchy{}}
	b.visit(noParent, 0, reflect.ValueOf(root), nil)
	return b.h
}

type hierarchyBuilder struct {
	cache *policyCache
	opts  builderOptions
	h     *Hierarchy
}

// visit appends one node and descends into its readable members. Descent
// stops at the depth ceiling, at leaf-like types, and at members carrying
// the omitref marker.
func (b *hierarchyBuilder) visit(parent, depth int, v reflect.Value, member *memberInfo) {
	v = indirect(v)
	var typ reflect.Type
	if v.IsValid() {
		typ = v.Type()
	} else if member != nil {
		typ = member.ReflectType
	}

	idx := len(b.h.nodes)
	b.h.nodes = append(b.h.nodes, hierarchyNode{
		value:  v,
		typ:    typ,
		member: member,
		parent: parent,
	})
	if parent != noParent {
		b.h.nodes[parent].children = append(b.h.nodes[parent].children, idx)
	}

	if !v.IsValid() || depth >= b.opts.maxDepth {
		return
	}
	if b.opts.skipType(typ) {
		return
	}
	if member != nil {
		if _, ok := member.Tags[tagOmitRef]; ok {
			return
		}
	}
	if typ.Kind() != reflect.Struct {
		return
	}
	if _, ok := v.Interface().(Wrapper); ok {
		// Wrapped instances are expanded at emission time, once.
		return
	}

	meta := b.cache.signatureFor(typ)
	for i := range meta.Fields {
		field := &meta.Fields[i]
		if _, ok := field.Tags[tagIgnore]; ok {
			continue
		}
		if b.opts.skipMember != nil && b.opts.skipMember(*field) {
			continue
		}
		b.visit(idx, depth+1, v.FieldByIndex(field.Index), field)
	}
}

// scanType builds the member signature for a struct type, consulting the
// process-wide sentinel registry first.
func scanType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseEmissionTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Pointer:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return &meta
}

// parseEmissionTags extracts emit.* tags from a struct tag.
func parseEmissionTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, key := range emissionTags {
		if val, ok := tag.Lookup(key); ok {
			tags[key] = val
		}
	}
	return tags
}

// indirect unwraps interface and pointer chains. A nil pointer or nil
// interface yields an invalid value, which downstream treats as an absent
// leaf.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// Arena accessors. All take the node's arena index.

func (h *Hierarchy) instance(n int) any {
	if v := h.nodes[n].value; v.IsValid() {
		return v.Interface()
	}
	return nil
}

func (h *Hierarchy) nodeValue(n int) reflect.Value { return h.nodes[n].value }
func (h *Hierarchy) nodeType(n int) reflect.Type   { return h.nodes[n].typ }
func (h *Hierarchy) member(n int) *memberInfo      { return h.nodes[n].member }
func (h *Hierarchy) parentOf(n int) int            { return h.nodes[n].parent }
func (h *Hierarchy) childrenOf(n int) []int        { return h.nodes[n].children }
func (h *Hierarchy) hasChildren(n int) bool        { return len(h.nodes[n].children) > 0 }

// len reports the node count of the arena.
func (h *Hierarchy) len() int { return len(h.nodes) }

// isLeafType reports whether a type is always treated as a leaf: booleans,
// numerics, strings, byte slices, temporal values, key/value pair shapes,
// and reflective metadata types.
func isLeafType(rt reflect.Type) bool {
	if rt == nil {
		return true
	}
	switch rt.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Slice:
		return rt.Elem().Kind() == reflect.Uint8
	}
	if rt == timeType || rt == qualifiedNameType {
		return true
	}
	if rt.Implements(reflectTypeType) {
		return true
	}
	return false
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	qualifiedNameType = reflect.TypeOf(QualifiedName{})
	reflectTypeType   = reflect.TypeOf((*reflect.Type)(nil)).Elem()
)

// isCollection reports whether a value is sequence-like or associative.
// Strings and byte slices are sequence-like but always scalar here.
func isCollection(rt reflect.Type) bool {
	if rt == nil {
		return false
	}
	switch rt.Kind() {
	case reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		return rt.Elem().Kind() != reflect.Uint8
	}
	return false
}

// isComplex reports whether a type participates in nested emission rather
// than inline value formatting.
func isComplex(rt reflect.Type) bool {
	if rt == nil {
		return false
	}
	return !isLeafType(rt)
}
