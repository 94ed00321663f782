package vdom

import (
	"fmt"
	"strings"
)

// The helpers below build unflagged (PatchFlag 0) trees by hand, outside any
// BuildContext. Hand-built trees always take the full diff path; the
// compiler-style constructors on BuildContext are what production render
// functions use.

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) *VNode {
	return &VNode{Kind: KindComment, Text: content}
}

// Static creates a pre-rendered static chunk. The content is inserted in
// bulk and never diffed element-by-element.
func Static(content string) *VNode {
	return &VNode{Kind: KindStatic, Text: content}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// Key sets the reconciliation key.
func Key(key any) Attr { return Attr{Key: "key", Value: key} }

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute.
func Class(classes ...string) Attr {
	return Attr{Key: "class", Value: strings.Join(classes, " ")}
}

// Style sets the style attribute.
func Style(style string) Attr { return Attr{Key: "style", Value: style} }

// Ref sets the ref binding resolved after mount/patch.
func Ref(ref any) Attr { return Attr{Key: "ref", Value: ref} }

// Prop sets an arbitrary attribute.
func Prop(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Element creates an element node with the given tag. Arguments can be:
// nil (ignored, allows conditionals), Attr, []Attr, *VNode, []*VNode, or
// string (shorthand for a text child).
func Element(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:      KindElement,
		Tag:       tag,
		ShapeFlag: ShapeElement,
	}
	if tag == "" {
		node.Kind = KindComment
		node.ShapeFlag = 0
		return node
	}

	var children []*VNode
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case *VNode:
			if v != nil {
				children = append(children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					children = append(children, c)
				}
			}
		case string:
			children = append(children, Text(v))
		}
	}

	// A single text child collapses into text children for the
	// SetElementText fast path.
	if len(children) == 1 && children[0].Kind == KindText {
		node.Text = children[0].Text
		node.ShapeFlag |= ShapeTextChildren
	} else if children != nil {
		node.Children = children
		node.ShapeFlag |= ShapeArrayChildren
	}
	return node
}

// Fragment groups children without a wrapper element.
func Fragment(args ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	var children []*VNode
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.setAttr(v)
		case *VNode:
			if v != nil {
				children = append(children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					children = append(children, c)
				}
			}
		case string:
			children = append(children, Text(v))
		}
	}
	node.Children = children
	node.ShapeFlag |= ShapeArrayChildren
	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	switch a.Key {
	case "class":
		v.Props["class"] = NormalizeClass(a.Value)
	case "style":
		v.Props["style"] = NormalizeStyle(a.Value)
	case "key":
		v.Props["key"] = a.Value
		v.Key = a.Value
	default:
		v.Props[a.Key] = a.Value
	}
}
