package markup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/zeebo/blake3"
)

// nodeKind classifies a projection instance.
type nodeKind int

const (
	kindElement nodeKind = iota
	kindAttribute
	kindText
)

// textMember is the synthetic member name for mixed text content.
const textMember = "#text"

// jsonInstance is a node of the intermediate tree the projector builds
// from the source markup. order is a strictly increasing counter assigned
// at discovery time across the whole document; it participates in the
// positional signature used to detect same-named sibling runs.
type jsonInstance struct {
	name     string
	value    string
	order    int
	kind     nodeKind
	parent   *jsonInstance
	children []*jsonInstance

	sig   [32]byte
	sigOK bool
}

// ProjectOption configures a projection.
type ProjectOption func(*projector)

// WithSignatureCaching controls memoization of sibling signatures. It is
// enabled by default; disabling forces a fresh hash per comparison.
func WithSignatureCaching(enabled bool) ProjectOption {
	return func(p *projector) { p.cacheSignatures = enabled }
}

// ProjectJSON projects a well-formed markup document into an equivalent
// JSON object, encoded with the given target encoding. The target must be
// one of the Unicode transform formats; anything else is rejected before
// any output is produced.
func ProjectJSON(markup []byte, target Encoding, opts ...ProjectOption) ([]byte, error) {
	return projectJSON(markup, "", target, opts)
}

// ProjectJSONPath projects only the subtree matched by an XPath
// expression. The expression must match exactly one element.
func ProjectJSONPath(markup []byte, expr string, target Encoding, opts ...ProjectOption) ([]byte, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	return projectJSON(markup, expr, target, opts)
}

func projectJSON(markup []byte, expr string, target Encoding, opts []ProjectOption) ([]byte, error) {
	if err := target.validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	emitProjectStart(ctx, string(target))
	start := time.Now()

	out, err := runProjection(markup, expr, target, opts)
	emitProjectComplete(ctx, string(target), len(out), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func runProjection(markup []byte, expr string, target Encoding, opts []ProjectOption) ([]byte, error) {
	data, err := decodeToUTF8(markup)
	if err != nil {
		return nil, newStructuralError(err)
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, newStructuralError(err)
	}

	src := firstElement(doc)
	if expr != "" {
		found, err := xmlquery.Query(doc, expr)
		if err != nil {
			return nil, fmt.Errorf("xpath query failed: %w", err)
		}
		if found == nil || found.Type != xmlquery.ElementNode {
			return nil, fmt.Errorf("xpath %q matched no element", expr)
		}
		src = found
	}
	if src == nil {
		return nil, newStructuralError(fmt.Errorf("document has no root element"))
	}

	p := &projector{cacheSignatures: true}
	for _, opt := range opts {
		opt(p)
	}

	root := p.build(src, nil)
	var buf bytes.Buffer
	buf.WriteByte('{')
	p.writeMember(&buf, root)
	buf.WriteByte('}')

	return target.encode(buf.Bytes())
}

// firstElement finds the root element below the document node.
func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// projector holds the state of one markup-to-JSON walk.
type projector struct {
	counter         int
	cacheSignatures bool
}

// build converts one source element into a projection instance. Discovery
// order across attributes, elements, and text shares a single counter for
// the whole walk.
func (p *projector) build(src *xmlquery.Node, parent *jsonInstance) *jsonInstance {
	inst := p.newInstance(parent, elementName(src), "", kindElement)

	for _, attr := range src.Attr {
		p.newInstance(inst, attr.Name.Local, attr.Value, kindAttribute)
	}

	var texts []string
	elements := 0
	for child := src.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			elements++
			p.build(child, inst)
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if t := strings.TrimSpace(child.Data); t != "" {
				texts = append(texts, t)
			}
		}
	}

	// An element with exactly one whitespace-free text child and nothing
	// else collapses to a scalar value named after the element.
	if len(texts) == 1 && elements == 0 && len(src.Attr) == 0 && !hasInteriorSpace(texts[0]) {
		inst.value = texts[0]
		return inst
	}
	for _, t := range texts {
		p.newInstance(inst, textMember, t, kindText)
	}
	return inst
}

func (p *projector) newInstance(parent *jsonInstance, name, value string, kind nodeKind) *jsonInstance {
	inst := &jsonInstance{
		name:   name,
		value:  value,
		order:  p.counter,
		kind:   kind,
		parent: parent,
	}
	p.counter++
	if parent != nil {
		parent.children = append(parent.children, inst)
	}
	return inst
}

// signature hashes name, value, and discovery order. It approximates
// "first and only occurrence" versus "one of several same-named siblings";
// matching is positional, not type-driven.
func (p *projector) signature(inst *jsonInstance) [32]byte {
	if p.cacheSignatures && inst.sigOK {
		return inst.sig
	}
	var b bytes.Buffer
	b.WriteString(inst.name)
	b.WriteByte(0)
	b.WriteString(inst.value)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(inst.order))
	sig := blake3.Sum256(b.Bytes())
	if p.cacheSignatures {
		inst.sig = sig
		inst.sigOK = true
	}
	return sig
}

// writeMember writes `"name": value` for a single-occurrence instance.
func (p *projector) writeMember(buf *bytes.Buffer, inst *jsonInstance) {
	writeJSONString(buf, inst.name)
	buf.WriteByte(':')
	p.writeValue(buf, inst)
}

// writeValue writes the instance's value: a scalar for collapsed and
// attribute/text instances, an object otherwise.
func (p *projector) writeValue(buf *bytes.Buffer, inst *jsonInstance) {
	if inst.kind != kindElement || len(inst.children) == 0 {
		if inst.kind == kindElement && inst.value == "" {
			buf.WriteString("null")
			return
		}
		writeScalar(buf, inst.value)
		return
	}

	buf.WriteByte('{')
	p.writeChildren(buf, inst)
	buf.WriteByte('}')
}

// writeChildren writes an object body. A child whose parent has more than
// one same-named child is part of an array: the start-array token is
// emitted only when its signature matches the first same-named sibling's,
// the end-array token only when it matches the last's. Value separators
// land between siblings and are suppressed before a closing token.
func (p *projector) writeChildren(buf *bytes.Buffer, inst *jsonInstance) {
	for i, child := range inst.children {
		run := sameNamed(inst, child.name)
		if len(run) > 1 {
			sig := p.signature(child)
			if sig == p.signature(run[0]) {
				writeJSONString(buf, child.name)
				buf.WriteString(":[")
			}
			p.writeValue(buf, child)
			if sig == p.signature(run[len(run)-1]) {
				buf.WriteByte(']')
			}
		} else {
			p.writeMember(buf, child)
		}
		if i < len(inst.children)-1 {
			buf.WriteByte(',')
		}
	}
}

// sameNamed returns the parent's children sharing a tag name, in
// discovery order.
func sameNamed(parent *jsonInstance, name string) []*jsonInstance {
	var run []*jsonInstance
	for _, c := range parent.children {
		if c.name == name {
			run = append(run, c)
		}
	}
	return run
}

// elementName renders the tag name prefix included, mirroring how the
// tag appears in the source.
func elementName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// hasInteriorSpace reports whether trimmed text still contains
// whitespace, which disqualifies it from scalar collapse.
func hasInteriorSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// writeScalar writes text as an unquoted JSON literal when it is one
// (number, true, false, null), and as a JSON string otherwise.
func writeScalar(buf *bytes.Buffer, s string) {
	if isJSONLiteral(s) {
		buf.WriteString(s)
		return
	}
	writeJSONString(buf, s)
}

// isJSONLiteral reports whether s is a self-representing JSON token.
func isJSONLiteral(s string) bool {
	switch s {
	case "true", "false", "null":
		return true
	}
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

// writeJSONString quotes s with JSON string escaping.
func writeJSONString(buf *bytes.Buffer, s string) {
	quoted, err := json.Marshal(s)
	if err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(quoted)
}
