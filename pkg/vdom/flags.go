package vdom

// PatchFlag is compiler metadata describing what can change on a node.
// Positive values are bitsets and may be combined; the negative values are
// standalone sentinels and never combine with anything.
type PatchFlag int

const (
	// FlagText marks an element whose text children can change.
	FlagText PatchFlag = 1 << iota

	// FlagClass marks a dynamic class binding.
	FlagClass

	// FlagStyle marks a dynamic style binding.
	FlagStyle

	// FlagProps marks dynamic non-class/style props; the affected keys are
	// enumerated in DynamicProps.
	FlagProps

	// FlagFullProps marks props with dynamic keys. The full diff runs and
	// FlagClass/FlagStyle/FlagProps are subsumed.
	FlagFullProps

	// FlagHydrateEvents marks event listeners only. Listeners attach once
	// at mount, so this flag alone does not make a node dynamic.
	FlagHydrateEvents

	// FlagStableFragment marks a fragment whose children order never
	// changes.
	FlagStableFragment

	// FlagKeyedFragment marks a fragment with keyed (or partially keyed)
	// children.
	FlagKeyedFragment

	// FlagUnkeyedFragment marks a fragment whose children carry no keys.
	FlagUnkeyedFragment

	// FlagNeedPatch marks a node that only needs non-props patching such
	// as ref bookkeeping.
	FlagNeedPatch

	// FlagDynamicSlots marks a component with dynamic slot content.
	FlagDynamicSlots
)

const (
	// FlagHoisted marks a render-once node hoisted out of its render
	// function. Hoisted nodes are skipped entirely during patching and
	// host-cloned on repeated mounts.
	FlagHoisted PatchFlag = -1

	// FlagBail aborts all patch optimizations for the subtree; the diff
	// degrades to the full traversal.
	FlagBail PatchFlag = -2
)

// Has reports whether every bit of flag is set. Always false on the
// negative sentinels.
func (f PatchFlag) Has(flag PatchFlag) bool {
	return f > 0 && f&flag == flag
}

// IsPositive reports whether f carries bitset semantics.
func (f PatchFlag) IsPositive() bool { return f > 0 }

// IsDynamic reports whether a node carrying f belongs in a block's dynamic
// children. Event listeners alone do not qualify: they attach at mount and
// need no per-pass patching.
func (f PatchFlag) IsDynamic() bool {
	return f > 0 && f != FlagHydrateEvents
}

// HasFullProps reports whether the full props diff is required.
func (f PatchFlag) HasFullProps() bool { return f.Has(FlagFullProps) }

// IsStableFragment reports the stable-order fragment flag.
func (f PatchFlag) IsStableFragment() bool { return f.Has(FlagStableFragment) }

// IsKeyedFragment reports the keyed fragment flag.
func (f PatchFlag) IsKeyedFragment() bool { return f.Has(FlagKeyedFragment) }

// IsUnkeyedFragment reports the unkeyed fragment flag.
func (f PatchFlag) IsUnkeyedFragment() bool { return f.Has(FlagUnkeyedFragment) }

// ShapeFlag classifies a node's own kind and its children kind in one
// bitset, so the dispatcher can branch without re-deriving either.
type ShapeFlag int

const (
	// ShapeElement marks a host element node.
	ShapeElement ShapeFlag = 1 << iota

	// ShapeComponent marks an externally handled component node.
	ShapeComponent

	// ShapePortal marks an externally handled portal node.
	ShapePortal

	// ShapeBoundary marks an externally handled async boundary node.
	ShapeBoundary

	// ShapeTextChildren marks children held as a single text value.
	ShapeTextChildren

	// ShapeArrayChildren marks children held as a node list.
	ShapeArrayChildren

	// ShapeSlotsChildren marks children held as named slots.
	ShapeSlotsChildren
)

// Has reports whether every bit of flag is set.
func (s ShapeFlag) Has(flag ShapeFlag) bool { return s&flag == flag }

// IsExternal reports whether the node is routed to a registered extension
// rather than patched by the dispatcher itself.
func (s ShapeFlag) IsExternal() bool {
	return s&(ShapeComponent|ShapePortal|ShapeBoundary) != 0
}
