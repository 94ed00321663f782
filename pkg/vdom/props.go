package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// NormalizeClass canonicalizes the value of a "class" prop into a single
// space-joined string. Accepted forms:
//
//   - string: used as-is (trimmed)
//   - []any / []string: each entry normalized recursively and joined
//   - map[string]bool: keys with true values, in sorted order
//
// Anything else is stringified with fmt.
func NormalizeClass(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []string:
		parts := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			if s := NormalizeClass(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]bool:
		parts := make([]string, 0, len(v))
		for name, on := range v {
			if on && name != "" {
				parts = append(parts, name)
			}
		}
		sort.Strings(parts)
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NormalizeStyle canonicalizes the value of a "style" prop into a CSS
// declaration string. Accepted forms:
//
//   - string: used as-is
//   - map[string]string: "prop: value" pairs in sorted key order
//   - []any: each entry normalized recursively and concatenated
func NormalizeStyle(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			if v[k] != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+v[k])
		}
		return strings.Join(parts, "; ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			if s := NormalizeStyle(e); s != "" {
				parts = append(parts, strings.TrimSuffix(s, ";"))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeProps canonicalizes class/style in place and extracts the key.
// Returns the identity key (nil when absent).
func normalizeProps(props Props) any {
	if props == nil {
		return nil
	}
	if cls, ok := props["class"]; ok {
		if _, isString := cls.(string); !isString {
			props["class"] = NormalizeClass(cls)
		}
	}
	if style, ok := props["style"]; ok {
		if _, isString := style.(string); !isString {
			props["style"] = NormalizeStyle(style)
		}
	}
	return props["key"]
}
