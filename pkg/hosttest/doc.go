// Package hosttest provides an in-memory host surface for testing the
// reconciliation engine.
//
// Host implements the renderer's HostOps, StaticOps, and CloneOps
// contracts against a real tree of Nodes, and records every operation it
// is asked to perform. Tests mount a tree, call Reset, patch, and then
// assert on exact operation counts and on the final sibling order via
// HTML():
//
//	host := hosttest.New()
//	r := renderer.New(host)
//	r.Patch(nil, old, host.Root, nil)
//	host.Reset()
//	r.Patch(old, new, host.Root, nil)
//	if got := host.Count(hosttest.OpMove); got != 1 {
//	    t.Errorf("moves = %d, want 1", got)
//	}
//
// Insert of an already-attached node is recorded as a Move, mirroring DOM
// insertBefore semantics, so move-minimality properties can be asserted
// directly.
package hosttest
