package markup

import "reflect"

// emitter drives the recursive emission of a hierarchy onto a Writer.
// The caller of emitNode owns the node's enclosing tag; emitNode produces
// the node's content, which is why attributes can still be attached when
// it runs.
type emitter struct {
	cache        *policyCache
	w            *Writer
	explicitRoot *QualifiedName
	build        builderOptions

	// depth counts synthesized sub-hierarchies (collection items, pair
	// components, wrapped instances). Each sub-hierarchy is bounded on
	// its own, so the ceiling must also bound how many of them can nest.
	depth int
}

// emitNode emits the content of node n. enumerableCaller is true when the
// invocation originates from the collection projector for a synthesized
// item tree.
func (e *emitter) emitNode(h *Hierarchy, n int, enumerableCaller bool) error {
	return e.emit(h, n, enumerableCaller, false)
}

func (e *emitter) emit(h *Hierarchy, n int, enumerableCaller, unwrapped bool) error {
	inst := h.instance(n)
	if inst == nil {
		return nil
	}
	rt := h.nodeType(n)
	pol := e.cache.policyFor(rt)

	// Escape hatch: a type that disables automated emission defers
	// entirely to its own routine, or fails identifying itself.
	if !pol.EnableAutomated {
		if mw, ok := inst.(MarkupWriterTo); ok {
			return mw.WriteMarkupTo(e.w)
		}
		return newConfigError(ErrAutomationDisabled, rt.String())
	}

	// A wrapper bypasses attribute/element logic: recurse once into a
	// synthetic single-item tree built from the wrapped instance.
	if wrp, ok := inst.(Wrapper); ok && !unwrapped {
		if e.depth >= e.build.maxDepth {
			return nil
		}
		e.depth++
		sub := buildHierarchy(e.cache, wrp.WrappedInstance(), e.build)
		err := e.emit(sub, rootNode, enumerableCaller, true)
		e.depth--
		return err
	}

	if isCollection(rt) {
		// The caller already opened this node's tag.
		return e.projectCollection(h, n, true)
	}

	if h.hasChildren(n) {
		return e.emitContainer(h, n, pol)
	}

	return e.emitLeaf(h, n, enumerableCaller)
}

// emitContainer writes a container node's children in a stable order:
// attribute-emitted members first (they must land inside the still-open
// start tag), everything else in declaration order.
func (e *emitter) emitContainer(h *Hierarchy, n int, pol Policy) error {
	children := h.childrenOf(n)

	for _, c := range children {
		if e.childMethod(h, c, pol) != EmitAttribute {
			continue
		}
		if !isAttributeCapable(h, c) {
			continue
		}
		if val, ok := formatValue(h.nodeValue(c)); ok {
			e.w.WriteAttribute(resolveName(h, c, nil), val)
		}
	}

	for _, c := range children {
		method := e.childMethod(h, c, pol)
		if method == EmitAttribute && isAttributeCapable(h, c) {
			continue
		}
		if err := e.emitChild(h, c, method); err != nil {
			return err
		}
	}
	return nil
}

// emitChild writes one non-attribute child: inline text, a collection
// block, a nested complex element, or a scalar element.
func (e *emitter) emitChild(h *Hierarchy, c int, method EmissionMethod) error {
	crt := h.nodeType(c)
	val := h.nodeValue(c)

	switch {
	case method == EmitText && !h.hasChildren(c) && !isCollection(crt):
		if s, ok := formatValue(val); ok {
			e.w.WriteText(s)
		}
		return nil

	case isCollection(crt):
		return e.projectCollection(h, c, false)

	case h.hasChildren(c) || isComplex(crt):
		if !val.IsValid() {
			return nil
		}
		e.w.WriteStartElement(resolveName(h, c, nil))
		err := e.emitNode(h, c, false)
		e.w.WriteEndElement()
		return err

	default:
		s, ok := formatValue(val)
		if !ok {
			return nil
		}
		e.w.WriteStartElement(resolveName(h, c, nil))
		e.w.WriteText(s)
		e.w.WriteEndElement()
		return nil
	}
}

// emitLeaf writes a leaf node's content. Non-complex values and type
// descriptors render as inline text; this covers the root-level scalar
// case, wrapped scalars, and synthesized item content. An empty complex
// leaf (a struct at the depth ceiling) contributes nothing.
func (e *emitter) emitLeaf(h *Hierarchy, n int, enumerableCaller bool) error {
	rt := h.nodeType(n)
	if isComplex(rt) && !isTypeDescriptor(rt) {
		return nil
	}
	if (!enumerableCaller || isTypeDescriptor(rt)) && h.parentOf(n) == noParent {
		if s, ok := formatValue(h.nodeValue(n)); ok {
			e.w.WriteText(s)
		}
	}
	return nil
}

// childMethod resolves the emission method for a member: explicit
// annotation first, the containing type's default otherwise.
func (e *emitter) childMethod(h *Hierarchy, c int, pol Policy) EmissionMethod {
	m := h.member(c)
	if m == nil {
		return pol.DefaultMethod
	}
	if _, ok := m.Tags[tagAttribute]; ok {
		return EmitAttribute
	}
	if _, ok := m.Tags[tagElement]; ok {
		return EmitElement
	}
	if _, ok := m.Tags[tagText]; ok {
		return EmitText
	}
	return pol.DefaultMethod
}

// isAttributeCapable reports whether a child can land in the open start
// tag: only childless, non-complex, non-collection values qualify.
func isAttributeCapable(h *Hierarchy, c int) bool {
	crt := h.nodeType(c)
	return !h.hasChildren(c) && !isCollection(crt) && !isComplex(crt)
}

func isTypeDescriptor(rt reflect.Type) bool {
	return rt != nil && rt.Implements(reflectTypeType)
}
