// Package renderer implements the patch dispatcher and children
// reconcilers of the blockdom engine.
//
// A Renderer compares the previous and next virtual trees and issues
// primitive, synchronous operations against a HostOps adapter; it never
// touches the host surface directly. Three children strategies are chosen
// by the new node's metadata: positional zip for unkeyed fragments, the
// block fast path for stable fragments, and for everything else the full
// keyed diff, which combines prefix and suffix scans with a
// longest-increasing-subsequence computation that keeps host moves to the
// true minimum.
//
//	host := hosttest.New()
//	r := renderer.New(host)
//	r.Patch(nil, tree, host.Root, nil)     // mount
//	r.Patch(tree, nextTree, host.Root, nil) // update
//
// Component, portal, and boundary nodes are routed to a ComponentOps
// collaborator registered per kind; the dispatcher knows nothing about
// their internals.
//
// Scheduling is single-threaded and cooperative: a Patch call runs to
// completion on the calling stack and host mutations are issued in a
// deterministic order (prefix, suffix, then the middle range walked
// backward) so that every insert or move receives a still-valid anchor.
//
// Optional instrumentation: NewMetrics/WithMetrics for Prometheus counters
// and WithTracing for OpenTelemetry spans per top-level patch.
package renderer
