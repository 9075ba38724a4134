package query

import (
	"fmt"
	"strings"
)

// Env returns the expression environment of item. Dotted keys become
// nested maps. A dotted key whose prefix is already a scalar is dropped.
func Env(item Item) map[string]any {
	flat := item.Env()
	out := make(map[string]any, len(flat))
	for k, v := range flat {
		if !strings.Contains(k, ".") {
			out[k] = v
		}
	}
	for k, v := range flat {
		if !strings.Contains(k, ".") {
			continue
		}
		parts := strings.Split(k, ".")
		m := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := m[p].(map[string]any)
			if !ok {
				if _, taken := m[p]; taken {
					m = nil
					break
				}
				child = map[string]any{}
				m[p] = child
			}
			m = child
		}
		if m != nil {
			m[parts[len(parts)-1]] = v
		}
	}
	return out
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
