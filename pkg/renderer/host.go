package renderer

import "github.com/vango-dev/blockdom/pkg/vdom"

// HostNode is an opaque handle to a node on the host surface.
type HostNode = vdom.HostNode

// HostOps is the primitive, synchronous operation set the engine calls to
// mutate the host surface. The engine never touches the surface directly,
// and it issues operations in a deterministic order so that every insert or
// move receives a still-valid anchor.
//
// Implementations target one platform: a real DOM via wasm, a terminal, or
// the in-memory tree in package hosttest.
type HostOps interface {
	// Insert places node before anchor under parent. A nil anchor
	// appends. Inserting a node that is already attached moves it.
	Insert(node HostNode, parent HostNode, anchor HostNode)

	// Remove detaches node from its parent.
	Remove(node HostNode)

	// CreateElement creates an element node for tag.
	CreateElement(tag string) HostNode

	// CreateText creates a text node.
	CreateText(text string) HostNode

	// CreateComment creates a comment node.
	CreateComment(text string) HostNode

	// SetText replaces the content of a text node.
	SetText(node HostNode, text string)

	// SetElementText replaces all children of el with a single text value.
	SetElementText(el HostNode, text string)

	// ParentNode returns the parent of node, or nil.
	ParentNode(node HostNode) HostNode

	// NextSibling returns the next sibling of node, or nil.
	NextSibling(node HostNode) HostNode

	// PatchProp applies a single prop change on el. A nil next removes
	// the prop. Event handler wiring is the host's concern.
	PatchProp(el HostNode, key string, prev, next any)
}

// StaticOps is the optional capability for bulk insertion of pre-rendered
// static chunks. Patching a Static node against a host without this
// capability is a fatal precondition violation.
type StaticOps interface {
	// InsertStaticContent inserts content before anchor under parent and
	// returns the first and last host nodes of the inserted span.
	InsertStaticContent(content string, parent HostNode, anchor HostNode) (first, last HostNode)
}

// CloneOps is the optional capability for cloning already-mounted host
// nodes, used when a hoisted node is mounted at a second position.
type CloneOps interface {
	CloneNode(node HostNode) HostNode
}
