package renderer

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/vango-dev/blockdom/internal/errors"
	"github.com/vango-dev/blockdom/pkg/vdom"
)

// Renderer is the patch dispatcher: it compares an old (possibly nil) node
// against a new node and issues the minimal host operations needed to
// synchronize the host surface. A Renderer is single-threaded by contract;
// one Patch call owns its subtree for the duration of the walk.
type Renderer struct {
	host HostOps
	ext  map[vdom.VKind]ComponentOps

	log *slog.Logger
	dev bool

	metrics   *Metrics
	tracer    *patchTracer
	refBinder RefBinder

	beforeMount func(*vdom.VNode)
	onMounted   func(*vdom.VNode)

	stats opStats
	depth int
}

// opStats counts host operations issued by one top-level Patch call.
type opStats struct {
	mounts   int
	patches  int
	moves    int
	unmounts int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithDevMode enables development diagnostics such as duplicate-key
// warnings. Production builds leave it off; the reconciliation result is
// identical either way.
func WithDevMode(dev bool) Option {
	return func(r *Renderer) { r.dev = dev }
}

// WithExtension registers the external collaborator for a component-like,
// portal-like, or boundary-like node kind.
func WithExtension(kind vdom.VKind, ops ComponentOps) Option {
	return func(r *Renderer) { r.ext[kind] = ops }
}

// WithRefBinder replaces the default ref resolution.
func WithRefBinder(binder RefBinder) Option {
	return func(r *Renderer) { r.refBinder = binder }
}

// WithBeforeMount sets a hook fired after an element is created and its
// subtree built, immediately before insertion.
func WithBeforeMount(hook func(*vdom.VNode)) Option {
	return func(r *Renderer) { r.beforeMount = hook }
}

// WithMounted sets a hook fired after an element is inserted.
func WithMounted(hook func(*vdom.VNode)) Option {
	return func(r *Renderer) { r.onMounted = hook }
}

// New creates a Renderer over the given host adapter.
func New(host HostOps, opts ...Option) *Renderer {
	r := &Renderer{
		host:      host,
		ext:       make(map[vdom.VKind]ComponentOps),
		log:       slog.Default().With("component", "renderer"),
		refBinder: defaultRefBinder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Patch is the top-level entry point. old may be nil (initial mount); a nil
// new unmounts old entirely. anchor is the host node new must precede, or
// nil to append.
//
// Extension collaborators may re-enter Patch for their own subtrees while a
// walk is in progress; stats, metrics, and the trace span belong to the
// outermost call only.
func (r *Renderer) Patch(old, new *vdom.VNode, container, anchor HostNode) {
	root := r.depth == 0
	r.depth++
	defer func() { r.depth-- }()

	var start time.Time
	var end func(opStats)
	if root {
		r.stats = opStats{}
		start = time.Now()
		end = r.tracer.start(new)
	}

	if new == nil {
		if old != nil {
			r.unmount(old, nil, true)
		}
	} else {
		r.patch(old, new, container, anchor, nil, new.DynamicChildren != nil)
	}

	if root {
		r.metrics.observe(r.stats, time.Since(start))
		end(r.stats)
	}
}

// Stats returns the operation counts of the most recent Patch call.
func (r *Renderer) Stats() (mounts, patches, moves, unmounts int) {
	return r.stats.mounts, r.stats.patches, r.stats.moves, r.stats.unmounts
}

func (r *Renderer) patch(n1, n2 *vdom.VNode, container, anchor HostNode, parentCtx any, optimized bool) {
	if n1 == n2 {
		return
	}

	// Different logical node: replace, anchored where the old node was.
	if n1 != nil && !vdom.SameVNode(n1, n2) {
		anchor = r.nextHostNode(n1)
		r.unmount(n1, parentCtx, true)
		n1 = nil
	}

	if n2.PatchFlag == vdom.FlagBail {
		optimized = false
		n2.DynamicChildren = nil
	}

	switch n2.Kind {
	case vdom.KindText:
		r.processText(n1, n2, container, anchor)
	case vdom.KindComment:
		r.processComment(n1, n2, container, anchor)
	case vdom.KindStatic:
		if n1 == nil {
			r.mountStatic(n2, container, anchor)
		} else {
			r.patchStatic(n1, n2)
		}
	case vdom.KindFragment:
		r.processFragment(n1, n2, container, anchor, parentCtx, optimized)
	case vdom.KindElement:
		if n1 == nil {
			r.mountElement(n2, container, anchor, parentCtx)
		} else {
			r.patchElement(n1, n2, parentCtx, optimized)
		}
	default:
		ops := r.extFor(n2.Kind)
		if n1 == nil {
			ops.Mount(n2, container, anchor, parentCtx)
			r.stats.mounts++
		} else {
			ops.Patch(n1, n2, parentCtx)
			r.stats.patches++
		}
	}

	// Refs bind last, after the node has a host or component handle.
	if n2.HasRef() {
		r.setRef(n1, n2)
	}
}

func (r *Renderer) extFor(kind vdom.VKind) ComponentOps {
	ops := r.ext[kind]
	if ops == nil {
		panic(errors.Newf("B003", "kind=%s", kind))
	}
	return ops
}

func (r *Renderer) setRef(n1, n2 *vdom.VNode) {
	ref := n2.Props["ref"]
	var old any
	if n1 != nil && n1.Props != nil {
		old = n1.Props["ref"]
	}
	handle := any(n2.El)
	if n2.ShapeFlag.IsExternal() {
		handle = n2.Comp
	}
	r.refBinder(ref, old, handle)
}

func (r *Renderer) processText(n1, n2 *vdom.VNode, container, anchor HostNode) {
	if n1 == nil {
		n2.El = r.host.CreateText(n2.Text)
		r.host.Insert(n2.El, container, anchor)
		r.stats.mounts++
		return
	}
	n2.El = n1.El
	if n1.Text != n2.Text {
		r.host.SetText(n2.El, n2.Text)
		r.stats.patches++
	}
}

// processComment mounts comments; their content is never patched.
func (r *Renderer) processComment(n1, n2 *vdom.VNode, container, anchor HostNode) {
	if n1 == nil {
		n2.El = r.host.CreateComment(n2.Text)
		r.host.Insert(n2.El, container, anchor)
		r.stats.mounts++
		return
	}
	n2.El = n1.El
}

func (r *Renderer) mountStatic(v *vdom.VNode, container, anchor HostNode) {
	s, ok := r.host.(StaticOps)
	if !ok {
		panic(errors.New("B001"))
	}
	v.El, v.Anchor = s.InsertStaticContent(v.Text, container, anchor)
	r.stats.mounts++
}

// patchStatic replaces the whole chunk when content differs; a static chunk
// is never diffed element-by-element.
func (r *Renderer) patchStatic(n1, n2 *vdom.VNode) {
	if n1.Text == n2.Text {
		n2.El, n2.Anchor = n1.El, n1.Anchor
		return
	}
	anchor := r.host.NextSibling(n1.Anchor)
	parent := r.host.ParentNode(n1.El)
	r.removeStatic(n1)
	s, ok := r.host.(StaticOps)
	if !ok {
		panic(errors.New("B001"))
	}
	n2.El, n2.Anchor = s.InsertStaticContent(n2.Text, parent, anchor)
	r.stats.patches++
}

func (r *Renderer) removeStatic(v *vdom.VNode) {
	for cur := v.El; cur != nil; {
		next := r.host.NextSibling(cur)
		r.host.Remove(cur)
		if cur == v.Anchor {
			break
		}
		cur = next
	}
}

// processFragment mounts or patches a fragment. Fragments own no host node
// besides two comment markers; children live between them.
func (r *Renderer) processFragment(n1, n2 *vdom.VNode, container, anchor HostNode, parentCtx any, optimized bool) {
	if n1 == nil {
		n2.El = r.host.CreateComment("")
		n2.Anchor = r.host.CreateComment("")
		r.host.Insert(n2.El, container, anchor)
		r.host.Insert(n2.Anchor, container, anchor)
		r.mountChildren(n2.Children, container, n2.Anchor, parentCtx)
		return
	}

	n2.El = n1.El
	n2.Anchor = n1.Anchor

	// A stable fragment cannot reorder; only its flattened dynamic
	// children need visiting.
	if n2.PatchFlag.IsStableFragment() && n2.DynamicChildren != nil && n1.DynamicChildren != nil {
		r.patchBlockChildren(n1.DynamicChildren, n2.DynamicChildren, container, parentCtx)
		return
	}
	r.patchChildren(n1, n2, container, n2.Anchor, parentCtx, optimized)
}

func (r *Renderer) mountElement(v *vdom.VNode, container, anchor HostNode, parentCtx any) {
	var el HostNode

	// A hoisted node mounted a second time reuses its host subtree via
	// host-level cloning when available.
	if v.El != nil && v.PatchFlag == vdom.FlagHoisted {
		if c, ok := r.host.(CloneOps); ok {
			el = c.CloneNode(v.El)
		}
	}

	if el == nil {
		el = r.host.CreateElement(v.Tag)
		if v.ShapeFlag.Has(vdom.ShapeTextChildren) {
			r.host.SetElementText(el, v.Text)
		} else if v.ShapeFlag.Has(vdom.ShapeArrayChildren) {
			r.mountChildren(v.Children, el, nil, parentCtx)
		}
		for key, val := range v.Props {
			if vdom.ReservedProp(key) {
				continue
			}
			r.host.PatchProp(el, key, nil, val)
		}
	}

	v.El = el
	if r.beforeMount != nil {
		r.beforeMount(v)
	}
	r.host.Insert(el, container, anchor)
	r.stats.mounts++
	if r.onMounted != nil {
		r.onMounted(v)
	}
}

func (r *Renderer) patchElement(n1, n2 *vdom.VNode, parentCtx any, optimized bool) {
	el := n1.El
	n2.El = el
	oldProps := n1.Props
	newProps := n2.Props
	flag := n2.PatchFlag
	r.stats.patches++

	if flag.IsPositive() {
		// The compiler asserts a stable shape here; patch only the
		// flagged concerns.
		if flag.HasFullProps() {
			r.patchProps(el, oldProps, newProps)
		} else {
			if flag.Has(vdom.FlagClass) {
				if !propsEqual(oldProps["class"], newProps["class"]) {
					r.host.PatchProp(el, "class", oldProps["class"], newProps["class"])
				}
			}
			if flag.Has(vdom.FlagStyle) {
				if !propsEqual(oldProps["style"], newProps["style"]) {
					r.host.PatchProp(el, "style", oldProps["style"], newProps["style"])
				}
			}
			if flag.Has(vdom.FlagProps) {
				for _, key := range n2.DynamicProps {
					prev, next := oldProps[key], newProps[key]
					// "value" is force-patched: the host control may
					// have drifted from the vdom.
					if !propsEqual(prev, next) || key == "value" {
						r.host.PatchProp(el, key, prev, next)
					}
				}
			}
		}
		if flag.Has(vdom.FlagText) {
			if n1.Text != n2.Text {
				r.host.SetElementText(el, n2.Text)
			}
		}
	} else if !optimized && n2.DynamicChildren == nil {
		// Unflagged, hand-built node: full prop diff unconditionally.
		r.patchProps(el, oldProps, newProps)
	}

	if n2.DynamicChildren != nil && n1.DynamicChildren != nil {
		r.patchBlockChildren(n1.DynamicChildren, n2.DynamicChildren, el, parentCtx)
	} else if !optimized {
		r.patchChildren(n1, n2, el, nil, parentCtx, false)
	}
}

// patchProps does the full add/update/remove diff over both prop sets.
func (r *Renderer) patchProps(el HostNode, oldProps, newProps vdom.Props) {
	for key, next := range newProps {
		if vdom.ReservedProp(key) {
			continue
		}
		prev := oldProps[key]
		if !propsEqual(prev, next) {
			r.host.PatchProp(el, key, prev, next)
		}
	}
	for key, prev := range oldProps {
		if vdom.ReservedProp(key) {
			continue
		}
		if _, kept := newProps[key]; !kept {
			r.host.PatchProp(el, key, prev, nil)
		}
	}
}

// patchBlockChildren patches the flattened dynamic descendants of a block
// pairwise. The lists are position-stable by the compiler contract, so no
// reordering logic is needed at this level.
func (r *Renderer) patchBlockChildren(oldChildren, newChildren []*vdom.VNode, fallback HostNode, parentCtx any) {
	for i := 0; i < len(newChildren) && i < len(oldChildren); i++ {
		old := oldChildren[i]
		next := newChildren[i]

		// The container only matters when the child will move or
		// replace; fragments and externals need their real parent.
		container := fallback
		if old.El != nil && (old.Kind == vdom.KindFragment || old.ShapeFlag.IsExternal() || !vdom.SameVNode(old, next)) {
			container = r.host.ParentNode(old.El)
		}
		r.patch(old, next, container, nil, parentCtx, true)
	}
}

func (r *Renderer) mountChildren(children []*vdom.VNode, container, anchor HostNode, parentCtx any) {
	for i := range children {
		child := children[i]
		// A node mounted elsewhere must be cloned before reuse so one
		// host node is never referenced from two VNodes.
		if child.El != nil {
			child = child.Clone()
			children[i] = child
		}
		r.patch(nil, child, container, anchor, parentCtx, false)
	}
}

func (r *Renderer) unmount(v *vdom.VNode, parentCtx any, doRemove bool) {
	if v.ShapeFlag.IsExternal() {
		r.extFor(v.Kind).Unmount(v, parentCtx, doRemove)
		r.stats.unmounts++
		return
	}

	if v.DynamicChildren != nil && (v.Kind != vdom.KindFragment || v.PatchFlag.IsStableFragment()) {
		r.unmountChildren(v.DynamicChildren, parentCtx, false)
	} else if v.Kind == vdom.KindFragment && (v.PatchFlag.IsKeyedFragment() || v.PatchFlag.IsUnkeyedFragment()) {
		r.unmountChildren(v.Children, parentCtx, true)
	} else if v.ShapeFlag.Has(vdom.ShapeArrayChildren) {
		r.unmountChildren(v.Children, parentCtx, false)
	}

	if doRemove {
		r.remove(v)
	}
	r.stats.unmounts++
}

func (r *Renderer) unmountChildren(children []*vdom.VNode, parentCtx any, doRemove bool) {
	for _, child := range children {
		r.unmount(child, parentCtx, doRemove)
	}
}

func (r *Renderer) remove(v *vdom.VNode) {
	switch v.Kind {
	case vdom.KindFragment:
		r.removeFragment(v.El, v.Anchor)
	case vdom.KindStatic:
		r.removeStatic(v)
	default:
		if v.El != nil {
			r.host.Remove(v.El)
		}
	}
}

// removeFragment removes everything between the markers, inclusive.
func (r *Renderer) removeFragment(cur, end HostNode) {
	for cur != nil && cur != end {
		next := r.host.NextSibling(cur)
		r.host.Remove(cur)
		cur = next
	}
	if end != nil {
		r.host.Remove(end)
	}
}

// move relocates a node's host footprint before anchor.
func (r *Renderer) move(v *vdom.VNode, container, anchor HostNode, kind MoveKind) {
	if v.ShapeFlag.IsExternal() {
		r.extFor(v.Kind).Move(v, container, anchor, kind)
		return
	}
	switch v.Kind {
	case vdom.KindFragment:
		r.host.Insert(v.El, container, anchor)
		for _, child := range v.Children {
			r.move(child, container, anchor, kind)
		}
		r.host.Insert(v.Anchor, container, anchor)
	case vdom.KindStatic:
		r.moveStatic(v, container, anchor)
	default:
		r.host.Insert(v.El, container, anchor)
	}
}

func (r *Renderer) moveStatic(v *vdom.VNode, container, anchor HostNode) {
	for cur := v.El; cur != nil; {
		next := r.host.NextSibling(cur)
		r.host.Insert(cur, container, anchor)
		if cur == v.Anchor {
			break
		}
		cur = next
	}
}

// nextHostNode returns the host node following v's footprint, used as the
// replacement anchor when v is unmounted.
func (r *Renderer) nextHostNode(v *vdom.VNode) HostNode {
	if v.ShapeFlag.IsExternal() {
		return r.extFor(v.Kind).NextHostNode(v)
	}
	if v.Kind == vdom.KindFragment || v.Kind == vdom.KindStatic {
		if v.Anchor == nil {
			return nil
		}
		return r.host.NextSibling(v.Anchor)
	}
	if v.El == nil {
		return nil
	}
	return r.host.NextSibling(v.El)
}

// propsEqual compares two prop values. Fast paths for common scalar types,
// reflect for the rest.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
