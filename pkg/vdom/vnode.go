package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText     VKind = iota // Plain text node
	KindComment               // Comment node
	KindStatic                // Pre-rendered static chunk
	KindFragment              // Grouping without wrapper
	KindElement               // <div>, <button>, etc.
	KindComponent             // Component handled externally
	KindPortal                // Portal handled externally
	KindBoundary              // Async boundary handled externally
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindStatic:
		return "Static"
	case KindFragment:
		return "Fragment"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindPortal:
		return "Portal"
	case KindBoundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}

// HostNode is an opaque handle to a mounted host-surface node. The engine
// only stores and forwards these; it never inspects them.
type HostNode = any

// Props holds a node's attributes. The reserved entries "key" and "ref" are
// consumed by the engine and never forwarded to the host.
type Props map[string]any

// VNode describes one UI node for a single render pass. A VNode is built
// once per pass, mounted at most once (El becomes non-nil), and then serves
// as the "old" side of the next pass's diff before being discarded.
type VNode struct {
	Kind VKind
	Tag  string // Element tag name (e.g., "div")

	// Key is the sibling-list identity token. nil compares equal to nil:
	// two keyless nodes are the same identity for diff purposes.
	Key any

	Props Props

	// Exactly one of Text, Children, Slots is active, per ShapeFlag.
	Text     string
	Children []*VNode
	Slots    map[string][]*VNode

	// Comp is the opaque handle of a component/portal/boundary node,
	// owned by the external collaborator.
	Comp any

	// PatchFlag is the compiler's change-tracking metadata.
	PatchFlag PatchFlag

	// DynamicProps enumerates the dynamic prop keys when FlagProps is set.
	DynamicProps []string

	// DynamicChildren is the flattened list of dynamic descendants.
	// Populated only on block roots.
	DynamicChildren []*VNode

	// ShapeFlag classifies node kind and children kind.
	ShapeFlag ShapeFlag

	// El is the mounted host node; nil means never mounted and free to
	// reuse without cloning. For fragments and static chunks Anchor is
	// the last host node of the span.
	El     HostNode
	Anchor HostNode
}

// SameVNode reports whether old and new are the same logical node: equal
// kind, tag, and key. Same logical node is necessary and sufficient for
// in-place patching; anything else is unmount+mount.
func SameVNode(a, b *VNode) bool {
	return a.Kind == b.Kind && a.Tag == b.Tag && a.Key == b.Key
}

// Clone returns a shallow copy of v. A VNode whose El is non-nil has been
// mounted and must be cloned before being reused at a different tree
// position, so one host node is never referenced from two VNodes. The host
// handles are carried over: mounting the clone either replaces them or, for
// hoisted nodes, clones the host subtree from them.
func (v *VNode) Clone() *VNode {
	c := *v
	return &c
}

// HasRef reports whether the node carries a ref binding.
func (v *VNode) HasRef() bool {
	_, ok := v.Props["ref"]
	return ok
}

// ReservedProp reports whether key is consumed by the engine rather than
// forwarded to the host.
func ReservedProp(key string) bool {
	return key == "key" || key == "ref"
}
