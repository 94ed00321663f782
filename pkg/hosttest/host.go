package hosttest

import (
	"fmt"
	"sort"
	"strings"
)

// NodeKind is the host node type discriminator.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	StaticNode
)

// Node is one node of the in-memory host tree.
type Node struct {
	Kind     NodeKind
	Tag      string
	Text     string
	Attrs    map[string]any
	Parent   *Node
	Children []*Node
}

// OpKind classifies a recorded host operation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota
	OpCreateText
	OpCreateComment
	OpInsert
	OpMove // Insert of an already-attached node
	OpRemove
	OpSetText
	OpSetElementText
	OpPatchProp
	OpInsertStatic
	OpClone
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpCreateComment:
		return "CreateComment"
	case OpInsert:
		return "Insert"
	case OpMove:
		return "Move"
	case OpRemove:
		return "Remove"
	case OpSetText:
		return "SetText"
	case OpSetElementText:
		return "SetElementText"
	case OpPatchProp:
		return "PatchProp"
	case OpInsertStatic:
		return "InsertStatic"
	case OpClone:
		return "Clone"
	default:
		return "Unknown"
	}
}

// Op is one recorded host operation.
type Op struct {
	Kind   OpKind
	Target *Node
	Key    string // prop key for OpPatchProp
	Value  any
}

// String renders the op for test failure messages.
func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Kind.String())
	if o.Target != nil {
		b.WriteString("(")
		b.WriteString(o.Target.label())
		b.WriteString(")")
	}
	if o.Key != "" {
		fmt.Fprintf(&b, " %s=%v", o.Key, o.Value)
	}
	return b.String()
}

func (n *Node) label() string {
	switch n.Kind {
	case TextNode:
		return fmt.Sprintf("#text %q", n.Text)
	case CommentNode:
		return fmt.Sprintf("#comment %q", n.Text)
	case StaticNode:
		return fmt.Sprintf("#static %q", n.Text)
	default:
		return "<" + n.Tag + ">"
	}
}

// Host is an in-memory host surface implementing the renderer's HostOps,
// StaticOps, and CloneOps contracts. Every call is both applied to the
// tree and recorded, so tests can assert on exact operation counts.
type Host struct {
	Root *Node
	Ops  []Op
}

// New creates a host with an empty root element.
func New() *Host {
	return &Host{Root: &Node{Kind: ElementNode, Tag: "root"}}
}

func (h *Host) record(op Op) { h.Ops = append(h.Ops, op) }

// Reset clears the op log. The tree is kept; typical usage mounts, resets,
// patches, and asserts on the patch's ops alone.
func (h *Host) Reset() { h.Ops = nil }

// Count returns the number of recorded ops of the given kind.
func (h *Host) Count(kind OpKind) int {
	n := 0
	for _, op := range h.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// OpLog renders the recorded ops, one per line.
func (h *Host) OpLog() string {
	lines := make([]string, len(h.Ops))
	for i, op := range h.Ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}

// CreateElement implements HostOps.
func (h *Host) CreateElement(tag string) any {
	n := &Node{Kind: ElementNode, Tag: tag, Attrs: make(map[string]any)}
	h.record(Op{Kind: OpCreateElement, Target: n})
	return n
}

// CreateText implements HostOps.
func (h *Host) CreateText(text string) any {
	n := &Node{Kind: TextNode, Text: text}
	h.record(Op{Kind: OpCreateText, Target: n})
	return n
}

// CreateComment implements HostOps.
func (h *Host) CreateComment(text string) any {
	n := &Node{Kind: CommentNode, Text: text}
	h.record(Op{Kind: OpCreateComment, Target: n})
	return n
}

// Insert implements HostOps. Inserting an attached node detaches it first
// and records a Move instead of an Insert, mirroring DOM insertBefore.
func (h *Host) Insert(node, parent, anchor any) {
	n := node.(*Node)
	p := parent.(*Node)

	kind := OpInsert
	if n.Parent != nil {
		kind = OpMove
		n.Parent.detach(n)
	}

	idx := len(p.Children)
	if anchor != nil {
		if a, ok := anchor.(*Node); ok && a != nil {
			if i := p.indexOf(a); i >= 0 {
				idx = i
			}
		}
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = n
	n.Parent = p
	h.record(Op{Kind: kind, Target: n})
}

// Remove implements HostOps.
func (h *Host) Remove(node any) {
	n := node.(*Node)
	if n.Parent != nil {
		n.Parent.detach(n)
	}
	h.record(Op{Kind: OpRemove, Target: n})
}

// SetText implements HostOps.
func (h *Host) SetText(node any, text string) {
	n := node.(*Node)
	n.Text = text
	h.record(Op{Kind: OpSetText, Target: n, Value: text})
}

// SetElementText implements HostOps. All existing children are replaced by
// a single text node (or nothing, for empty text).
func (h *Host) SetElementText(el any, text string) {
	n := el.(*Node)
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if text != "" {
		t := &Node{Kind: TextNode, Text: text, Parent: n}
		n.Children = []*Node{t}
	}
	h.record(Op{Kind: OpSetElementText, Target: n, Value: text})
}

// ParentNode implements HostOps.
func (h *Host) ParentNode(node any) any {
	n := node.(*Node)
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

// NextSibling implements HostOps.
func (h *Host) NextSibling(node any) any {
	n := node.(*Node)
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.indexOf(n)
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// PatchProp implements HostOps. A nil next removes the prop.
func (h *Host) PatchProp(el any, key string, prev, next any) {
	n := el.(*Node)
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	if next == nil {
		delete(n.Attrs, key)
	} else {
		n.Attrs[key] = next
	}
	h.record(Op{Kind: OpPatchProp, Target: n, Key: key, Value: next})
	_ = prev
}

// InsertStaticContent implements StaticOps. Each line of content becomes
// one static node so multi-node spans are exercised.
func (h *Host) InsertStaticContent(content string, parent, anchor any) (any, any) {
	lines := strings.Split(content, "\n")
	nodes := make([]*Node, 0, len(lines))
	for _, line := range lines {
		nodes = append(nodes, &Node{Kind: StaticNode, Text: line})
	}

	p := parent.(*Node)
	idx := len(p.Children)
	if anchor != nil {
		if a, ok := anchor.(*Node); ok && a != nil {
			if i := p.indexOf(a); i >= 0 {
				idx = i
			}
		}
	}
	rest := append([]*Node{}, p.Children[idx:]...)
	p.Children = append(p.Children[:idx], nodes...)
	p.Children = append(p.Children, rest...)
	for _, n := range nodes {
		n.Parent = p
	}
	h.record(Op{Kind: OpInsertStatic, Target: nodes[0], Value: content})
	return nodes[0], nodes[len(nodes)-1]
}

// CloneNode implements CloneOps.
func (h *Host) CloneNode(node any) any {
	n := node.(*Node)
	c := n.deepClone()
	h.record(Op{Kind: OpClone, Target: c})
	return c
}

func (n *Node) deepClone() *Node {
	c := &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		c.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	for _, child := range n.Children {
		cc := child.deepClone()
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach(child *Node) {
	if i := n.indexOf(child); i >= 0 {
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
		child.Parent = nil
	}
}

// HTML renders the tree under the root as an HTML-ish string for order
// assertions. Attributes are sorted for determinism; no escaping.
func (h *Host) HTML() string {
	var b strings.Builder
	for _, c := range h.Root.Children {
		c.writeHTML(&b)
	}
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.Kind {
	case TextNode:
		b.WriteString(n.Text)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case StaticNode:
		b.WriteString(n.Text)
	case ElementNode:
		b.WriteString("<")
		b.WriteString(n.Tag)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, " %s=%q", k, fmt.Sprintf("%v", n.Attrs[k]))
		}
		b.WriteString(">")
		for _, c := range n.Children {
			c.writeHTML(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")
	}
}
