package renderer

import (
	"github.com/vango-dev/blockdom/internal/errors"
	"github.com/vango-dev/blockdom/pkg/vdom"
)

// patchChildren reconciles the children of one element or fragment.
// Dispatch order: compiler fragment flags first, then classification by the
// children shapes on both sides. Array-to-array without flags falls back to
// the keyed algorithm; keyless nodes are matched by kind and first
// availability, a deliberate tie-break that downstream behavior depends on.
func (r *Renderer) patchChildren(n1, n2 *vdom.VNode, container, anchor HostNode, parentCtx any, optimized bool) {
	if n2.PatchFlag.IsKeyedFragment() {
		r.patchKeyedChildren(n1.Children, n2.Children, container, anchor, parentCtx, optimized)
		return
	}
	if n2.PatchFlag.IsUnkeyedFragment() {
		r.patchUnkeyedChildren(n1.Children, n2.Children, container, anchor, parentCtx, optimized)
		return
	}

	prevShape := n1.ShapeFlag
	shape := n2.ShapeFlag

	if shape.Has(vdom.ShapeTextChildren) {
		if prevShape.Has(vdom.ShapeArrayChildren) {
			// SetElementText below wipes the container; no per-node
			// removal needed.
			r.unmountChildren(n1.Children, parentCtx, false)
		}
		if n1.Text != n2.Text || !prevShape.Has(vdom.ShapeTextChildren) {
			r.host.SetElementText(container, n2.Text)
		}
		return
	}

	if prevShape.Has(vdom.ShapeArrayChildren) {
		if shape.Has(vdom.ShapeArrayChildren) {
			r.patchKeyedChildren(n1.Children, n2.Children, container, anchor, parentCtx, optimized)
		} else {
			// New side has no children left.
			r.unmountChildren(n1.Children, parentCtx, true)
		}
		return
	}

	if prevShape.Has(vdom.ShapeTextChildren) {
		r.host.SetElementText(container, "")
	}
	if shape.Has(vdom.ShapeArrayChildren) {
		r.mountChildren(n2.Children, container, anchor, parentCtx)
	}
}

// patchUnkeyedChildren zips both sides positionally over the common length
// and mounts or unmounts the remainder. Kind mismatches within a pair are
// resolved by the dispatcher's replace rule, not here.
func (r *Renderer) patchUnkeyedChildren(c1, c2 []*vdom.VNode, container, anchor HostNode, parentCtx any, optimized bool) {
	common := len(c1)
	if len(c2) < common {
		common = len(c2)
	}
	for i := 0; i < common; i++ {
		next := c2[i]
		if next.El != nil {
			next = next.Clone()
			c2[i] = next
		}
		r.patch(c1[i], next, container, nil, parentCtx, optimized)
	}
	if len(c1) > len(c2) {
		r.unmountChildren(c1[common:], parentCtx, true)
	} else if len(c2) > len(c1) {
		r.mountChildren(c2[common:], container, anchor, parentCtx)
	}
}

// patchKeyedChildren is the full keyed diff. It resolves the cheap cases
// (matching prefix, matching suffix, pure additions, pure removals) with
// two pointer scans, then runs the general middle-range algorithm: match by
// key (or by kind for keyless nodes), detect whether relative order
// changed, and if so compute the longest increasing subsequence of matched
// positions so that only nodes outside it are moved. The middle range is
// resolved backward so every insert and move anchors on an
// already-positioned node.
func (r *Renderer) patchKeyedChildren(c1, c2 []*vdom.VNode, container, parentAnchor HostNode, parentCtx any, optimized bool) {
	i := 0
	e1 := len(c1) - 1
	e2 := len(c2) - 1

	prep := func(idx int) *vdom.VNode {
		next := c2[idx]
		if next.El != nil {
			next = next.Clone()
			c2[idx] = next
		}
		return next
	}

	// 1. Matching prefix.
	for i <= e1 && i <= e2 {
		n1 := c1[i]
		n2 := prep(i)
		if !vdom.SameVNode(n1, n2) {
			break
		}
		r.patch(n1, n2, container, nil, parentCtx, optimized)
		i++
	}

	// 2. Matching suffix.
	for i <= e1 && i <= e2 {
		n1 := c1[e1]
		n2 := prep(e2)
		if !vdom.SameVNode(n1, n2) {
			break
		}
		r.patch(n1, n2, container, nil, parentCtx, optimized)
		e1--
		e2--
	}

	// 3. Old side exhausted: mount the remaining new range, anchored
	// before whatever follows it.
	if i > e1 {
		if i <= e2 {
			anchor := parentAnchor
			if nextPos := e2 + 1; nextPos < len(c2) {
				anchor = c2[nextPos].El
			}
			for ; i <= e2; i++ {
				r.patch(nil, prep(i), container, anchor, parentCtx, optimized)
			}
		}
		return
	}

	// 4. New side exhausted: unmount the remaining old range.
	if i > e2 {
		for ; i <= e1; i++ {
			r.unmount(c1[i], parentCtx, true)
		}
		return
	}

	// 5. General case: both sides retain an unresolved middle range.
	s1 := i
	s2 := i

	// 5a. key -> new index over the new middle range. On duplicates the
	// last occurrence wins; earlier holders become unmatched and are
	// replaced, deterministically.
	keyToNewIndex := make(map[any]int, e2-s2+1)
	for j := s2; j <= e2; j++ {
		next := prep(j)
		if next.Key == nil {
			continue
		}
		if _, dup := keyToNewIndex[next.Key]; dup && r.dev {
			r.log.Warn("duplicate key in keyed children",
				"error", errors.Newf("B004", "key=%v", next.Key))
		}
		keyToNewIndex[next.Key] = j
	}

	toBePatched := e2 - s2 + 1
	patched := 0
	// newIndexToOldIndex[k] is oldIndex+1 for new position s2+k; 0 is
	// reserved for "no old match".
	newIndexToOldIndex := make([]int, toBePatched)

	moved := false
	maxNewIndexSoFar := 0

	// 5b/5c. Match every old node in the middle range, patching matches
	// in place and unmounting leftovers immediately.
	for j := s1; j <= e1; j++ {
		prev := c1[j]
		if patched >= toBePatched {
			r.unmount(prev, parentCtx, true)
			continue
		}

		newIndex := -1
		if prev.Key != nil {
			if idx, ok := keyToNewIndex[prev.Key]; ok {
				newIndex = idx
			}
		} else {
			// Keyless: first not-yet-matched new node of the same
			// kind.
			for k := s2; k <= e2; k++ {
				if newIndexToOldIndex[k-s2] == 0 && vdom.SameVNode(prev, c2[k]) {
					newIndex = k
					break
				}
			}
		}

		if newIndex == -1 {
			r.unmount(prev, parentCtx, true)
			continue
		}

		newIndexToOldIndex[newIndex-s2] = j + 1
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		r.patch(prev, c2[newIndex], container, nil, parentCtx, optimized)
		patched++
	}

	// 5e. Only the nodes outside the longest increasing subsequence of
	// matched positions actually need a host move.
	var stable []int
	if moved {
		stable = longestIncreasingSubsequence(newIndexToOldIndex)
	}
	j := len(stable) - 1

	// 5f. Walk backward so later, already-placed nodes serve as anchors.
	for k := toBePatched - 1; k >= 0; k-- {
		nextIndex := s2 + k
		next := c2[nextIndex]
		anchor := parentAnchor
		if nextIndex+1 < len(c2) {
			anchor = c2[nextIndex+1].El
		}
		if newIndexToOldIndex[k] == 0 {
			// No old match: fresh mount.
			r.patch(nil, next, container, anchor, parentCtx, optimized)
		} else if moved {
			if j < 0 || k != stable[j] {
				r.move(next, container, anchor, MoveReorder)
				r.stats.moves++
			} else {
				j--
			}
		}
	}
}

// longestIncreasingSubsequence returns the indices of one longest strictly
// increasing subsequence of arr, ignoring zero entries. Patience sorting
// with binary search, O(n log n): tails[k] holds the index of the smallest
// value ending an increasing run of length k+1, and prev records each
// element's predecessor in its run for the backtracking pass.
func longestIncreasingSubsequence(arr []int) []int {
	prev := make([]int, len(arr))
	var tails []int

	for i, v := range arr {
		if v == 0 {
			continue
		}
		if n := len(tails); n > 0 && arr[tails[n-1]] < v {
			prev[i] = tails[n-1]
			tails = append(tails, i)
			continue
		}
		// Binary search for the leftmost tail >= v.
		lo, hi := 0, len(tails)-1
		for lo < hi {
			mid := (lo + hi) >> 1
			if arr[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if len(tails) == 0 {
			tails = append(tails, i)
		} else if v < arr[tails[lo]] {
			if lo > 0 {
				prev[i] = tails[lo-1]
			}
			tails[lo] = i
		}
	}

	// Backtrack from the last tail through the predecessor chain.
	result := make([]int, len(tails))
	if len(tails) == 0 {
		return result
	}
	v := tails[len(tails)-1]
	for u := len(tails) - 1; u >= 0; u-- {
		result[u] = v
		v = prev[v]
	}
	return result
}
