package markup

import (
	"context"
	"io"
	"reflect"
	"time"
)

// Order places a supplementary block relative to the primary emission.
type Order int

const (
	// OrderPrepend writes the supplementary block before the root element.
	OrderPrepend Order = iota + 1

	// OrderAppend writes the supplementary block after the root element.
	OrderAppend
)

// Options is the configuration bundle for one document assembly.
type Options struct {
	// OmitDeclaration suppresses the declaration line. The root type's
	// policy can also request this.
	OmitDeclaration bool

	// RootName overrides the root tag, taking precedence over every
	// annotation-derived name.
	RootName *QualifiedName

	// Encoding is the caller-visible text encoding of the produced
	// document. Defaults to UTF8.
	Encoding Encoding

	// MaxDepth bounds object-graph descent. Defaults to 10.
	MaxDepth int

	// Supplementary, when set together with Order, writes an extra block
	// sharing the document's writer and encoding.
	Supplementary func(*Writer) error

	// Order places the supplementary block.
	Order Order
}

// Option mutates Options.
type Option func(*Options)

// WithOmitDeclaration suppresses the declaration line.
func WithOmitDeclaration() Option {
	return func(o *Options) { o.OmitDeclaration = true }
}

// WithRootName overrides the root tag name.
func WithRootName(q QualifiedName) Option {
	return func(o *Options) { o.RootName = &q }
}

// WithEncoding selects the caller-visible encoding.
func WithEncoding(e Encoding) Option {
	return func(o *Options) { o.Encoding = e }
}

// WithMaxDepth overrides the descent ceiling.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithSupplementary registers a supplementary block and its placement.
func WithSupplementary(order Order, fn func(*Writer) error) Option {
	return func(o *Options) {
		o.Order = order
		o.Supplementary = fn
	}
}

func applyOptions(opts []Option) Options {
	o := Options{
		Encoding: UTF8,
		MaxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Serializer converts object graphs into markup documents. It owns the
// per-type policy cache; independent Serializers are fully isolated.
// A Serializer is safe for concurrent use.
type Serializer struct {
	cache *policyCache
}

// New returns a Serializer with an empty policy cache.
func New() *Serializer {
	return &Serializer{cache: newPolicyCache()}
}

// Reset clears the per-type policy cache.
// This is primarily useful for test isolation.
func (s *Serializer) Reset() {
	s.cache.reset()
}

// Marshal serializes v into a markup document.
func (s *Serializer) Marshal(v any, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)
	if err := o.Encoding.validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	rv := indirect(reflect.ValueOf(v))
	typeName := "nil"
	if rv.IsValid() {
		typeName = rv.Type().String()
	}
	emitMarshalStart(ctx, typeName, string(o.Encoding))
	start := time.Now()

	out, nodes, err := s.assemble(v, o)
	emitMarshalComplete(ctx, typeName, len(out), time.Since(start), nodes, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalTo serializes v and writes the document to w.
func (s *Serializer) MarshalTo(w io.Writer, v any, opts ...Option) error {
	out, err := s.Marshal(v, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// assemble performs one document assembly: declaration, optional prepended
// block, hierarchy construction, root emission, optional appended block,
// and the final re-encode into the caller-requested encoding.
func (s *Serializer) assemble(v any, o Options) ([]byte, int, error) {
	rv := indirect(reflect.ValueOf(v))
	pol := DefaultPolicy()
	if rv.IsValid() {
		pol = s.cache.policyFor(rv.Type())
	}

	w := newWriter()
	if !o.OmitDeclaration && !pol.OmitDeclaration {
		w.WriteDeclaration(o.Encoding.declarationName())
	}
	if o.Order == OrderPrepend && o.Supplementary != nil {
		if err := o.Supplementary(w); err != nil {
			return nil, 0, err
		}
	}

	nodes, err := s.emitRoot(w, v, rv, pol, o)
	if err != nil {
		return nil, nodes, err
	}

	if o.Order == OrderAppend && o.Supplementary != nil {
		if err := o.Supplementary(w); err != nil {
			return nil, nodes, err
		}
	}

	out, err := o.Encoding.encode(w.bytes())
	return out, nodes, err
}

// emitRoot writes the root element. A root type that disables automated
// emission and supplies its own routine is used verbatim, with no
// enclosing tag and no hierarchy construction; disabling without a
// routine is a configuration error naming the type.
func (s *Serializer) emitRoot(w *Writer, v any, rv reflect.Value, pol Policy, o Options) (int, error) {
	if rv.IsValid() && !pol.EnableAutomated {
		if mw, ok := v.(MarkupWriterTo); ok {
			return 0, mw.WriteMarkupTo(w)
		}
		if mw, ok := rv.Interface().(MarkupWriterTo); ok {
			return 0, mw.WriteMarkupTo(w)
		}
		return 0, newConfigError(ErrAutomationDisabled, rv.Type().String())
	}

	build := builderOptions{maxDepth: o.MaxDepth}
	h := buildHierarchy(s.cache, v, build)
	em := &emitter{cache: s.cache, w: w, explicitRoot: o.RootName, build: build}

	w.WriteStartElement(resolveName(h, rootNode, o.RootName))
	err := em.emitNode(h, rootNode, false)
	w.WriteEndElement()
	return h.len(), err
}
