// Package vdom provides the virtual-tree node model and the block tracker
// for the blockdom reconciliation engine.
//
// # Core Types
//
// VNode is the tagged union describing one UI node: text, comment, static
// chunk, fragment, element, or an externally-handled component, portal, or
// boundary. A VNode is built once per render pass, mounted at most once,
// and then serves as the old side of the next pass's diff.
//
// PatchFlag carries compiler-produced change-tracking metadata; ShapeFlag
// classifies the node's own kind and its children kind. Both are bitsets
// behind typed predicates.
//
// # Block Tracking
//
// BuildContext collects, per block root, every descendant capable of
// changing, independent of nesting depth:
//
//	b := vdom.NewBuildContext()
//	b.OpenBlock()
//	title := b.NewVNode(vdom.KindElement, "h1", nil, msg, vdom.FlagText)
//	root := b.NewBlock(vdom.KindElement, "div", nil, []*vdom.VNode{title, static}, 0)
//	// root.DynamicChildren == [title]
//
// The renderer patches a block root's DynamicChildren directly, skipping
// the static remainder of the subtree.
//
// # Hand-Built Trees
//
// Element, Fragment, Text, and friends build unflagged trees in the usual
// variadic style; those always take the full diff path.
package vdom
