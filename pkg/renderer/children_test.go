package renderer

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/blockdom/pkg/hosttest"
	"github.com/vango-dev/blockdom/pkg/vdom"
)

// keyedList builds <ul> with one keyed <li> per key, text = key.
func keyedList(keys ...string) *vdom.VNode {
	kids := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		kids[i] = vdom.Element("li", vdom.Key(k), k)
	}
	return vdom.Element("ul", kids)
}

func listHTML(keys ...string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, k := range keys {
		b.WriteString("<li>")
		b.WriteString(k)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func TestKeyedReorderSingleMove(t *testing.T) {
	r, host := newTestRenderer(t)
	old := keyedList("A", "B", "C", "D", "E")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := keyedList("A", "C", "D", "B", "E")
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpMove); got != 1 {
		t.Errorf("moves = %d, want 1:\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpRemove); got != 0 {
		t.Errorf("removes = %d, want 0", got)
	}
	if got := host.Count(hosttest.OpCreateElement); got != 0 {
		t.Errorf("creates = %d, want 0", got)
	}
	if got := host.HTML(); got != listHTML("A", "C", "D", "B", "E") {
		t.Errorf("HTML = %s", got)
	}
	_, _, moves, unmounts := r.Stats()
	if moves != 1 || unmounts != 0 {
		t.Errorf("stats moves=%d unmounts=%d, want 1/0", moves, unmounts)
	}
}

func TestKeyedRemovalNoMoves(t *testing.T) {
	r, host := newTestRenderer(t)
	old := keyedList("1", "2", "3", "4", "5", "6", "7")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := keyedList("1", "3", "4", "5", "6")
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpRemove); got != 2 {
		t.Errorf("removes = %d, want 2 (keys 2 and 7):\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpMove); got != 0 {
		t.Errorf("moves = %d, want 0", got)
	}
	if got := host.Count(hosttest.OpCreateElement); got != 0 {
		t.Errorf("creates = %d, want 0", got)
	}
	if got := host.HTML(); got != listHTML("1", "3", "4", "5", "6") {
		t.Errorf("HTML = %s", got)
	}
}

func TestKeyedInsertionSingleMount(t *testing.T) {
	r, host := newTestRenderer(t)
	old := keyedList("A", "B", "C")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := keyedList("A", "B", "D", "C")
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpCreateElement); got != 1 {
		t.Errorf("creates = %d, want 1 (key D)", got)
	}
	if got := host.Count(hosttest.OpMove); got != 0 {
		t.Errorf("moves = %d, want 0:\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpRemove); got != 0 {
		t.Errorf("removes = %d, want 0", got)
	}
	if got := host.HTML(); got != listHTML("A", "B", "D", "C") {
		t.Errorf("HTML = %s", got)
	}
}

func TestKeyedPermutationsPreserveOrder(t *testing.T) {
	tests := []struct {
		name      string
		old, next []string
		wantMoves int
	}{
		// Moves = middle-range size minus LIS length over matched
		// positions.
		{"reverse", []string{"A", "B", "C", "D", "E"}, []string{"E", "D", "C", "B", "A"}, 4},
		{"rotate left", []string{"A", "B", "C", "D"}, []string{"B", "C", "D", "A"}, 1},
		{"rotate right", []string{"A", "B", "C", "D"}, []string{"D", "A", "B", "C"}, 1},
		{"swap ends", []string{"A", "B", "C"}, []string{"C", "B", "A"}, 2},
		{"identity", []string{"A", "B", "C"}, []string{"A", "B", "C"}, 0},
		{"interleave", []string{"A", "B", "C", "D", "E", "F"}, []string{"A", "C", "E", "B", "D", "F"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, host := newTestRenderer(t)
			old := keyedList(tt.old...)
			r.Patch(nil, old, host.Root, nil)
			host.Reset()

			next := keyedList(tt.next...)
			r.Patch(old, next, host.Root, nil)

			if got := host.HTML(); got != listHTML(tt.next...) {
				t.Errorf("HTML = %s, want order %v", got, tt.next)
			}
			if got := host.Count(hosttest.OpMove); got != tt.wantMoves {
				t.Errorf("moves = %d, want %d:\n%s", got, tt.wantMoves, host.OpLog())
			}
			if got := host.Count(hosttest.OpRemove) + host.Count(hosttest.OpCreateElement); got != 0 {
				t.Errorf("pure permutation must not remove or create, got:\n%s", host.OpLog())
			}
		})
	}
}

func TestKeyedMixedChurn(t *testing.T) {
	r, host := newTestRenderer(t)
	old := keyedList("A", "B", "C", "D")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	// B removed, X added, D moved ahead of C.
	next := keyedList("A", "X", "D", "C")
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpRemove); got != 1 {
		t.Errorf("removes = %d, want 1 (B):\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpCreateElement); got != 1 {
		t.Errorf("creates = %d, want 1 (X)", got)
	}
	if got := host.HTML(); got != listHTML("A", "X", "D", "C") {
		t.Errorf("HTML = %s", got)
	}
}

func TestKeylessSiblingsMatchByKindFirstAvailable(t *testing.T) {
	r, host := newTestRenderer(t)
	old := vdom.Element("div",
		vdom.Element("em", "one"),
		vdom.Element("span", "two"),
	)
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	// Kinds swap places: each old node claims the first unmatched new
	// node of its kind, so both survive with one move.
	next := vdom.Element("div",
		vdom.Element("span", "two"),
		vdom.Element("em", "one"),
	)
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpRemove) + host.Count(hosttest.OpCreateElement); got != 0 {
		t.Errorf("keyless same-kind siblings should be reused, got:\n%s", host.OpLog())
	}
	if got := host.Count(hosttest.OpMove); got != 1 {
		t.Errorf("moves = %d, want 1:\n%s", got, host.OpLog())
	}
	if got := host.HTML(); got != "<div><span>two</span><em>one</em></div>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestKeylessDuplicateKindsPatchInOrder(t *testing.T) {
	r, host := newTestRenderer(t)
	old := vdom.Element("div",
		vdom.Element("p", "a"),
		vdom.Element("p", "b"),
		vdom.Element("p", "c"),
	)
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := vdom.Element("div",
		vdom.Element("p", "x"),
		vdom.Element("p", "y"),
		vdom.Element("p", "z"),
	)
	r.Patch(old, next, host.Root, nil)

	// Prefix scan pairs them positionally; content patches only.
	if got := host.Count(hosttest.OpSetElementText); got != 3 {
		t.Errorf("SetElementText = %d, want 3:\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpMove) + host.Count(hosttest.OpRemove) + host.Count(hosttest.OpCreateElement); got != 0 {
		t.Errorf("expected pure in-place patches, got:\n%s", host.OpLog())
	}
}

func TestTypeMismatchInsideListReplacesSlot(t *testing.T) {
	r, host := newTestRenderer(t)
	// A single text child would collapse into text children; the sibling
	// forces array shape so the diff sees the slot.
	old := vdom.Element("div", vdom.Text("x"), vdom.Element("hr"))
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := vdom.Element("div", vdom.Element("b", "x"), vdom.Element("hr"))
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpRemove); got != 1 {
		t.Errorf("removes = %d, want 1:\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpInsert); got != 1 {
		t.Errorf("inserts = %d, want 1:\n%s", got, host.OpLog())
	}
	if got := host.HTML(); got != "<div><b>x</b><hr></hr></div>" {
		t.Errorf("HTML = %s", got)
	}
}

// warnRecorder captures slog warnings for assertion.
type warnRecorder struct {
	slog.Handler
	records *[]slog.Record
}

func (h warnRecorder) Handle(_ context.Context, rec slog.Record) error {
	*h.records = append(*h.records, rec)
	return nil
}

func (h warnRecorder) Enabled(context.Context, slog.Level) bool { return true }

// dupKeyList yields new children where two siblings claim key A and the
// surrounding keys prevent the prefix/suffix scans from resolving them.
func dupKeyList() *vdom.VNode {
	return vdom.Element("ul",
		vdom.Element("li", vdom.Key("A"), "x"),
		vdom.Element("li", vdom.Key("A"), "y"),
		vdom.Element("li", vdom.Key("W"), "w"),
	)
}

func TestDuplicateKeysLastWinsAndWarnsInDev(t *testing.T) {
	host := hosttest.New()
	var records []slog.Record
	log := slog.New(warnRecorder{records: &records})
	r := New(host, WithDevMode(true), WithLogger(log))

	old := keyedList("Z", "A")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := dupKeyList()
	r.Patch(old, next, host.Root, nil)

	// The last duplicate wins the old node: the existing A element is
	// patched into y, the first duplicate mounts fresh.
	if got := host.HTML(); got != listHTML("x", "y", "w") {
		t.Errorf("HTML = %s", got)
	}
	if got := host.Count(hosttest.OpRemove); got != 1 {
		t.Errorf("removes = %d, want 1 (old Z):\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpCreateElement); got != 2 {
		t.Errorf("creates = %d, want 2 (x and w mount fresh)", got)
	}
	if next.Children[1].El != old.Children[1].El {
		t.Error("last duplicate should inherit the existing A element")
	}
	if len(records) != 1 {
		t.Errorf("dev warnings = %d, want 1", len(records))
	}
}

func TestDuplicateKeysSilentOutsideDev(t *testing.T) {
	host := hosttest.New()
	var records []slog.Record
	log := slog.New(warnRecorder{records: &records})
	r := New(host, WithLogger(log))

	old := keyedList("Z", "A")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	r.Patch(old, dupKeyList(), host.Root, nil)

	if len(records) != 0 {
		t.Errorf("warnings = %d, want 0 outside dev mode", len(records))
	}
	// Same deterministic result with or without diagnostics.
	if got := host.HTML(); got != listHTML("x", "y", "w") {
		t.Errorf("HTML = %s", got)
	}
}

func newUnkeyedFragment(texts ...string) *vdom.VNode {
	kids := make([]*vdom.VNode, len(texts))
	for i, s := range texts {
		kids[i] = vdom.Element("span", s)
	}
	frag := vdom.Fragment(kids)
	frag.PatchFlag = vdom.FlagUnkeyedFragment
	return frag
}

func TestUnkeyedLengthShrink(t *testing.T) {
	r, host := newTestRenderer(t)
	old := newUnkeyedFragment("a", "b", "c", "d", "e")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := newUnkeyedFragment("a", "B", "C")
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpRemove); got != 2 {
		t.Errorf("removes = %d, want 2:\n%s", got, host.OpLog())
	}
	if got := host.Count(hosttest.OpMove); got != 0 {
		t.Errorf("moves = %d, want 0", got)
	}
	// Positions 0-2 patched in place; only the changed two touch text.
	if got := host.Count(hosttest.OpSetElementText); got != 2 {
		t.Errorf("SetElementText = %d, want 2:\n%s", got, host.OpLog())
	}
	if got := host.HTML(); got != "<!----><span>a</span><span>B</span><span>C</span><!---->" {
		t.Errorf("HTML = %s", got)
	}
}

func TestUnkeyedLengthGrow(t *testing.T) {
	r, host := newTestRenderer(t)
	old := newUnkeyedFragment("a", "b")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	next := newUnkeyedFragment("a", "b", "c")
	r.Patch(old, next, host.Root, nil)

	if got := host.Count(hosttest.OpCreateElement); got != 1 {
		t.Errorf("creates = %d, want 1", got)
	}
	if got := host.HTML(); got != "<!----><span>a</span><span>b</span><span>c</span><!---->" {
		t.Errorf("HTML = %s", got)
	}
}

func newKeyedFragment(keys ...string) *vdom.VNode {
	kids := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		kids[i] = vdom.Element("li", vdom.Key(k), k)
	}
	frag := vdom.Fragment(kids)
	frag.PatchFlag = vdom.FlagKeyedFragment
	return frag
}

func TestKeyedFragmentReorderAnchorsInsideMarkers(t *testing.T) {
	r, host := newTestRenderer(t)
	// A trailing sibling after the fragment ensures anchoring is relative
	// to the fragment's end marker, not the container end.
	r.Patch(nil, vdom.Element("footer"), host.Root, nil)
	old := newKeyedFragment("A", "B", "C")
	r.Patch(nil, old, host.Root, host.Root.Children[0])
	host.Reset()

	next := newKeyedFragment("C", "A", "B")
	r.Patch(old, next, host.Root, nil)

	want := "<!----><li>C</li><li>A</li><li>B</li><!----><footer></footer>"
	if got := host.HTML(); got != want {
		t.Errorf("HTML = %s\nwant   %s", got, want)
	}
	if got := host.Count(hosttest.OpMove); got != 1 {
		t.Errorf("moves = %d, want 1 (C jumps ahead):\n%s", got, host.OpLog())
	}
}

func TestKeyedChildrenClonedWhenReused(t *testing.T) {
	r, host := newTestRenderer(t)
	old := keyedList("A", "B")
	r.Patch(nil, old, host.Root, nil)
	host.Reset()

	// The new list reuses the already-mounted child VNodes; the diff must
	// clone them so one host node is never referenced from two VNodes.
	next := vdom.Element("ul", old.Children)
	r.Patch(old, next, host.Root, nil)

	if len(host.Ops) != 0 {
		t.Errorf("expected 0 ops, got:\n%s", host.OpLog())
	}
	if next.Children[0] == old.Children[0] {
		t.Error("mounted child should have been cloned, not aliased")
	}
	if got := host.HTML(); got != listHTML("A", "B") {
		t.Errorf("HTML = %s", got)
	}
}

func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		name string
		arr  []int
		want []int
	}{
		{"empty", nil, []int{}},
		{"all zeros", []int{0, 0, 0}, []int{}},
		{"sorted", []int{1, 2, 3}, []int{0, 1, 2}},
		{"reversed", []int{5, 4, 3, 2, 1}, []int{4}},
		{"middle replace", []int{1, 3, 2, 4}, []int{0, 2, 3}},
		{"zeros skipped", []int{2, 0, 3}, []int{0, 2}},
		{"tail swap", []int{3, 4, 2}, []int{0, 1}},
		{"single", []int{7}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := longestIncreasingSubsequence(tt.arr)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestLISMoveBudget(t *testing.T) {
	// For any permutation, moves = middle size - LIS length.
	perms := [][]string{
		{"B", "A", "C", "D"},
		{"D", "C", "B", "A"},
		{"B", "D", "A", "C"},
	}
	base := []string{"A", "B", "C", "D"}
	for _, perm := range perms {
		r, host := newTestRenderer(t)
		old := keyedList(base...)
		r.Patch(nil, old, host.Root, nil)
		host.Reset()

		r.Patch(old, keyedList(perm...), host.Root, nil)

		if got := host.HTML(); got != listHTML(perm...) {
			t.Errorf("%v: HTML = %s", perm, got)
		}
		_, _, moves, _ := r.Stats()
		if got := host.Count(hosttest.OpMove); got != moves {
			t.Errorf("%v: host moves %d != stats moves %d", perm, got, moves)
		}
	}
}
