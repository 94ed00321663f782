package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindText, "Text"},
		{KindComment, "Comment"},
		{KindStatic, "Static"},
		{KindFragment, "Fragment"},
		{KindElement, "Element"},
		{KindComponent, "Component"},
		{KindPortal, "Portal"},
		{KindBoundary, "Boundary"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestSameVNode(t *testing.T) {
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{
			"same kind tag and key",
			&VNode{Kind: KindElement, Tag: "div", Key: "a"},
			&VNode{Kind: KindElement, Tag: "div", Key: "a"},
			true,
		},
		{
			"both keyless",
			&VNode{Kind: KindElement, Tag: "div"},
			&VNode{Kind: KindElement, Tag: "div"},
			true,
		},
		{
			"different key",
			&VNode{Kind: KindElement, Tag: "div", Key: "a"},
			&VNode{Kind: KindElement, Tag: "div", Key: "b"},
			false,
		},
		{
			"different tag",
			&VNode{Kind: KindElement, Tag: "div"},
			&VNode{Kind: KindElement, Tag: "span"},
			false,
		},
		{
			"different kind",
			&VNode{Kind: KindText},
			&VNode{Kind: KindComment},
			false,
		},
		{
			"keyless vs keyed",
			&VNode{Kind: KindElement, Tag: "li"},
			&VNode{Kind: KindElement, Tag: "li", Key: 1},
			false,
		},
		{
			"int keys equal",
			&VNode{Kind: KindElement, Tag: "li", Key: 3},
			&VNode{Kind: KindElement, Tag: "li", Key: 3},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameVNode(tt.a, tt.b); got != tt.want {
				t.Errorf("SameVNode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneKeepsHostHandles(t *testing.T) {
	v := &VNode{Kind: KindElement, Tag: "div", El: "el", Anchor: "anchor"}
	c := v.Clone()
	if c == v {
		t.Fatal("Clone returned the same node")
	}
	if c.El != "el" || c.Anchor != "anchor" {
		t.Error("Clone should carry host handles for the hoisted reuse path")
	}
	c.El = "other"
	if v.El != "el" {
		t.Error("mutating the clone affected the original")
	}
}

func TestReservedProp(t *testing.T) {
	if !ReservedProp("key") || !ReservedProp("ref") {
		t.Error("key and ref are reserved")
	}
	if ReservedProp("class") || ReservedProp("id") {
		t.Error("class and id are not reserved")
	}
}

func TestHasRef(t *testing.T) {
	with := &VNode{Props: Props{"ref": func(any) {}}}
	without := &VNode{Props: Props{"id": "x"}}
	if !with.HasRef() {
		t.Error("HasRef should be true")
	}
	if without.HasRef() {
		t.Error("HasRef should be false")
	}
}
