package vdom

import (
	"fmt"

	"github.com/vango-dev/blockdom/internal/errors"
)

// blockScope is one open block buffer. tracked is false for blocks opened
// with tracking disabled (render-once subtrees).
type blockScope struct {
	buf     []*VNode
	tracked bool
}

// BuildContext carries the block-tracking state for one tree construction
// pass. Construction is value-producing: every render pass creates fresh
// VNodes through a context, and the context collects, per block root, the
// descendants capable of changing, so the patch phase can skip static
// subtrees without walking them.
//
// A BuildContext is not safe for concurrent use; each rendering goroutine
// owns its own.
type BuildContext struct {
	stack    []blockScope
	tracking int
}

// NewBuildContext returns a context with tracking enabled.
func NewBuildContext() *BuildContext {
	return &BuildContext{tracking: 1}
}

// OpenBlock pushes a fresh dynamic-children buffer and makes it current.
// Children of the upcoming block root are constructed (and registered into
// this buffer) before NewBlock is called, because arguments evaluate before
// the call.
func (b *BuildContext) OpenBlock() {
	b.stack = append(b.stack, blockScope{buf: []*VNode{}, tracked: true})
}

// OpenBlockDisabled pushes a buffer that does not collect dynamic children.
// Used for fragments whose children are known to never change order or
// content tracking-wise (e.g. a v-once style subtree).
func (b *BuildContext) OpenBlockDisabled() {
	b.stack = append(b.stack, blockScope{tracked: false})
}

// SetTracking adjusts the tracking counter. A non-positive counter suspends
// registration entirely; callers building a cached subtree decrement before
// and increment after. Nestable.
func (b *BuildContext) SetTracking(delta int) {
	b.tracking += delta
}

// CloseBlock pops the current buffer without producing a block root.
// Normally NewBlock closes the buffer; this exists for abandoning a block.
func (b *BuildContext) CloseBlock() {
	if len(b.stack) == 0 {
		panic(errors.New("B002"))
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// NewVNode builds a node, normalizing props and classifying children into
// exactly one shape. If tracking is active and the node is dynamic, it is
// registered into the current block buffer.
//
// children may be nil, a string (text children), a *VNode, a []*VNode, or a
// map[string][]*VNode (named slots); any other value is stringified into
// text children. An unknown kind, or an element with an empty tag, is
// coerced to a Comment so rendering stays total under misuse.
func (b *BuildContext) NewVNode(kind VKind, tag string, props Props, children any, flag PatchFlag, dynamicProps ...string) *VNode {
	return b.newVNode(kind, tag, props, children, flag, dynamicProps, false)
}

// NewBlock builds a block root. The current buffer, filled while the
// children arguments were constructed, becomes the node's DynamicChildren,
// the buffer is popped, and the block root itself is registered into the
// parent buffer if one is open. Parent blocks therefore hold pointers to
// child block roots, never to the child block's internal dynamic nodes.
//
// Calling NewBlock without a matching OpenBlock is a programmer error and
// panics with a coded error.
func (b *BuildContext) NewBlock(kind VKind, tag string, props Props, children any, flag PatchFlag, dynamicProps ...string) *VNode {
	v := b.newVNode(kind, tag, props, children, flag, dynamicProps, true)
	if len(b.stack) == 0 {
		panic(errors.New("B002"))
	}
	scope := b.stack[len(b.stack)-1]
	if b.tracking > 0 && scope.tracked {
		v.DynamicChildren = scope.buf
	}
	b.stack = b.stack[:len(b.stack)-1]
	if n := len(b.stack); n > 0 && b.tracking > 0 && b.stack[n-1].tracked {
		b.stack[n-1].buf = append(b.stack[n-1].buf, v)
	}
	return v
}

func (b *BuildContext) newVNode(kind VKind, tag string, props Props, children any, flag PatchFlag, dynamicProps []string, isBlock bool) *VNode {
	if kind > KindBoundary || (kind == KindElement && tag == "") {
		// Invalid input renders as a comment rather than failing.
		kind = KindComment
		tag = ""
		flag = 0
		dynamicProps = nil
	}

	v := &VNode{
		Kind:         kind,
		Tag:          tag,
		Props:        props,
		PatchFlag:    flag,
		DynamicProps: dynamicProps,
		ShapeFlag:    baseShape(kind),
	}
	v.Key = normalizeProps(props)
	classifyChildren(v, children)

	if !isBlock && b.tracking > 0 && len(b.stack) > 0 {
		scope := &b.stack[len(b.stack)-1]
		if scope.tracked && (v.PatchFlag.IsDynamic() || v.ShapeFlag.IsExternal()) {
			scope.buf = append(scope.buf, v)
		}
	}
	return v
}

func baseShape(kind VKind) ShapeFlag {
	switch kind {
	case KindElement:
		return ShapeElement
	case KindComponent:
		return ShapeComponent
	case KindPortal:
		return ShapePortal
	case KindBoundary:
		return ShapeBoundary
	default:
		return 0
	}
}

// classifyChildren records exactly one active children shape on v.
func classifyChildren(v *VNode, children any) {
	switch c := children.(type) {
	case nil:
	case string:
		if v.Kind == KindText || v.Kind == KindComment || v.Kind == KindStatic {
			v.Text = c
		} else {
			v.Text = c
			v.ShapeFlag |= ShapeTextChildren
		}
	case *VNode:
		if c != nil {
			v.Children = []*VNode{c}
			v.ShapeFlag |= ShapeArrayChildren
		}
	case []*VNode:
		v.Children = c
		v.ShapeFlag |= ShapeArrayChildren
	case map[string][]*VNode:
		v.Slots = c
		v.ShapeFlag |= ShapeSlotsChildren
	default:
		v.Text = fmt.Sprintf("%v", c)
		v.ShapeFlag |= ShapeTextChildren
	}
}
