package markup

import "reflect"

// Fixed wrapper tags for associative containers.
var (
	pairName  = Name("KeyValuePair")
	keyName   = Name("Key")
	valueName = Name("Value")
)

// projectCollection walks a sequence-like or associative node and emits
// wrapper tags, delegating each item back into the node emitter. skipStart
// means the caller already opened a tag for this node, so the collection's
// own start tag is suppressed.
func (e *emitter) projectCollection(h *Hierarchy, n int, skipStart bool) error {
	rv := h.nodeValue(n)
	if !rv.IsValid() {
		return nil
	}

	if rv.Kind() == reflect.Map {
		return e.projectAssociative(h, n, rv, skipStart)
	}
	return e.projectSequence(h, n, rv, skipStart)
}

// projectAssociative emits one KeyValuePair wrapper per entry, each with a
// synthesized Key child and Value child. Iteration follows the container's
// natural enumeration order; nothing is reordered.
func (e *emitter) projectAssociative(h *Hierarchy, n int, rv reflect.Value, skipStart bool) error {
	if !skipStart {
		e.w.WriteStartElement(resolveName(h, n, nil))
	}

	iter := rv.MapRange()
	for iter.Next() {
		e.w.WriteStartElement(pairName)
		if err := e.emitPairComponent(keyName, iter.Key()); err != nil {
			return err
		}
		if err := e.emitPairComponent(valueName, iter.Value()); err != nil {
			return err
		}
		e.w.WriteEndElement()
	}

	if !skipStart {
		e.w.WriteEndElement()
	}
	return nil
}

// emitPairComponent writes one Key or Value child as a depth-limited
// hierarchy built from the pair's component.
func (e *emitter) emitPairComponent(name QualifiedName, v reflect.Value) error {
	e.w.WriteStartElement(name)
	defer e.w.WriteEndElement()

	v = indirect(v)
	if !v.IsValid() {
		return nil
	}
	if !isComplex(v.Type()) {
		if s, ok := formatValue(v); ok {
			e.w.WriteText(s)
		}
		return nil
	}
	return e.emitSynthesized(v)
}

// projectSequence emits a plain sequence: an outer wrapper tag (unless
// suppressed), then one per-item tag per non-nil item. Item names resolve
// per item since heterogeneous items are permitted; the emit.item
// annotation overrides them all.
func (e *emitter) projectSequence(h *Hierarchy, n int, rv reflect.Value, skipStart bool) error {
	if !skipStart {
		e.w.WriteStartElement(resolveName(h, n, nil))
	}

	var itemOverride *QualifiedName
	if m := h.member(n); m != nil {
		if val, ok := m.Tags[tagItem]; ok {
			itemOverride = parseNameTag(val)
		}
	}

	for i := 0; i < rv.Len(); i++ {
		item := indirect(rv.Index(i))
		if !item.IsValid() {
			continue
		}
		if err := e.emitItem(item, itemOverride); err != nil {
			return err
		}
	}

	if !skipStart {
		e.w.WriteEndElement()
	}
	return nil
}

// emitItem writes one sequence item inside its own wrapper tag. Items of
// non-complex type render as inline text with no further nesting.
func (e *emitter) emitItem(item reflect.Value, override *QualifiedName) error {
	name := itemName(item, override)
	e.w.WriteStartElement(name)
	defer e.w.WriteEndElement()

	if !isComplex(item.Type()) {
		if s, ok := formatValue(item); ok {
			e.w.WriteText(s)
		}
		return nil
	}
	return e.emitSynthesized(item)
}

// emitSynthesized builds a fresh hierarchy for a synthesized value and
// emits its content. Nesting of synthesized trees consumes the same depth
// ceiling that bounds a single traversal.
func (e *emitter) emitSynthesized(v reflect.Value) error {
	if e.depth >= e.build.maxDepth {
		return nil
	}
	e.depth++
	sub := buildHierarchy(e.cache, v.Interface(), e.build)
	err := e.emitNode(sub, rootNode, true)
	e.depth--
	return err
}

// itemName resolves the per-item tag: the collection annotation wins, an
// item that is itself a QualifiedName names itself, and the item's type
// name is the fallback.
func itemName(item reflect.Value, override *QualifiedName) QualifiedName {
	if override != nil {
		return *override
	}
	if q, ok := item.Interface().(QualifiedName); ok {
		return q
	}
	return Name(typeDisplayName(item.Type()))
}
