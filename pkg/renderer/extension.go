package renderer

import "github.com/vango-dev/blockdom/pkg/vdom"

// MoveKind tells an extension why its node is being moved.
type MoveKind uint8

const (
	// MoveReorder is a keyed-list reorder within the same container.
	MoveReorder MoveKind = iota

	// MoveEnter places a node into a new container.
	MoveEnter

	// MoveLeave removes a node ahead of unmounting.
	MoveLeave
)

// ComponentOps is the narrow interface through which the dispatcher routes
// component-like, portal-like, and boundary-like nodes. The dispatcher
// calls exactly these five operations and has no knowledge of the
// collaborator's internals. A boundary implementation may patch into a
// hidden container now and move into the real one later; the reconciliation
// primitives themselves never wait.
type ComponentOps interface {
	// Mount materializes node under container before anchor. parentCtx is
	// the opaque context of the enclosing component, or nil at the root.
	Mount(node *vdom.VNode, container, anchor HostNode, parentCtx any)

	// Patch updates old's instance to match new. The implementation must
	// transfer whatever host handles it owns from old to new.
	Patch(old, new *vdom.VNode, ctx any)

	// Move relocates the node's host footprint.
	Move(node *vdom.VNode, container, anchor HostNode, kind MoveKind)

	// Unmount tears the instance down. doRemove indicates whether the
	// host nodes should also be detached (false when an ancestor's
	// removal already covers them).
	Unmount(node *vdom.VNode, ctx any, doRemove bool)

	// NextHostNode returns the host node following the node's footprint,
	// used as a replacement anchor.
	NextHostNode(node *vdom.VNode) HostNode
}

// RefBinder resolves ref bindings after mount/patch completes. ref is the
// value of the node's "ref" prop, handle the mounted host node (or the
// component handle for external kinds), and old the previously bound ref
// value or nil.
type RefBinder func(ref any, old any, handle any)

// defaultRefBinder supports plain func(any) refs and *any cells.
func defaultRefBinder(ref any, old any, handle any) {
	switch r := ref.(type) {
	case func(any):
		r(handle)
	case *any:
		*r = handle
	}
	_ = old
}
