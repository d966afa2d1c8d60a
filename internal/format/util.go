package format

import "github.com/iancoleman/orderedmap"

// ToOrderedMapPtr converts both value and pointer types of OrderedMap to a pointer.
// Returns nil if the value is not an OrderedMap.
func ToOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// ToPlain recursively converts OrderedMap containers back to plain
// map[string]any. Encoders that do not understand OrderedMap (TOML,
// MessagePack) use it to normalize a value before encoding.
func ToPlain(v any) any {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		m := make(map[string]any, len(val.Keys()))
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			m[k] = ToPlain(child)
		}
		return m
	case orderedmap.OrderedMap:
		return ToPlain(&val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, child := range val {
			m[k] = ToPlain(child)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = ToPlain(item)
		}
		return s
	default:
		return val
	}
}
