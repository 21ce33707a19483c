package dictedits

import "reflect"

// asTable reports whether v is a nested mapping.
func asTable(v any) (map[string]any, bool) {
	table, ok := v.(map[string]any)
	return table, ok
}

// asElements returns the mappings of a sequence. TOML decoding yields
// []map[string]any for arrays of tables and []any for inline arrays.
func asElements(v any) ([]map[string]any, bool) {
	switch typed := v.(type) {
	case []map[string]any:
		return typed, true
	case []any:
		elements := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			table, ok := asTable(item)
			if !ok {
				return nil, false
			}
			elements = append(elements, table)
		}
		return elements, true
	default:
		return nil, false
	}
}

// equalValues compares identifier values. TOML integers decode as int64,
// so integer kinds are compared by value.
func equalValues(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isInteger(ra) && isInteger(rb) {
		return ra.Int() == rb.Int()
	}
	return reflect.DeepEqual(a, b)
}

func isInteger(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}
