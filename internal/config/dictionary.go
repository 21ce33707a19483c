package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/ariel-frischer/appcore/internal/dictedits"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// keyDelimiter joins nested keys inside koanf. Only an escaped \u0000 in a
// quoted TOML key could collide with it.
const keyDelimiter = "\x00"

// Dictionary is an acquired configuration. It is frozen after construction:
// accessors return copies, so callers cannot mutate it. Top-level keys keep
// the order in which they first appeared.
type Dictionary struct {
	values map[string]any
	keys   []string
}

// NewDictionary freezes a copy of values. Keys absent from order follow
// those listed, in sorted order.
func NewDictionary(values map[string]any, order []string) *Dictionary {
	doc := &document{values: make(map[string]any, len(values))}
	for _, key := range order {
		if _, ok := values[key]; ok {
			doc.order = append(doc.order, key)
		}
	}
	for key, value := range values {
		doc.values[key] = value
	}
	doc.adoptNewKeys()
	return newDictionary(doc.values, doc.order)
}

func newDictionary(values map[string]any, order []string) *Dictionary {
	return &Dictionary{values: deepCopyMap(values), keys: append([]string(nil), order...)}
}

// Len returns the number of top-level entries.
func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Keys returns the top-level keys in order.
func (d *Dictionary) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Get returns a copy of the top-level value for key.
func (d *Dictionary) Get(key string) (any, bool) {
	value, ok := d.values[key]
	if !ok {
		return nil, false
	}
	return deepCopy(value), true
}

// Lookup returns a copy of the value at address, failing with an
// address-locate failure when a segment is missing.
func (d *Dictionary) Lookup(address ...string) (any, error) {
	value, err := dictedits.Dereference(d.values, address)
	if err != nil {
		return nil, err
	}
	return deepCopy(value), nil
}

// All iterates over top-level entries in order.
func (d *Dictionary) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range d.keys {
			if !yield(key, deepCopy(d.values[key])) {
				return
			}
		}
	}
}

// Map returns a mutable deep copy of the configuration.
func (d *Dictionary) Map() map[string]any {
	return deepCopyMap(d.values)
}

// Unmarshal decodes the value at address into out using koanf tags. An
// empty address decodes the whole configuration. Keys are never split, so
// quoted TOML keys containing dots ("a.b" = 1) decode intact.
func (d *Dictionary) Unmarshal(out any, address ...string) error {
	k := koanf.New(keyDelimiter)
	if err := k.Load(confmap.Provider(d.Map(), ""), nil); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	path := strings.Join(address, keyDelimiter)
	if err := k.Unmarshal(path, out); err != nil {
		return fmt.Errorf("decoding configuration at '%s': %w", strings.Join(address, "."), err)
	}
	return nil
}

// MarshalJSON encodes the configuration with top-level keys in order.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, fmt.Errorf("encoding configuration entry '%s': %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func deepCopyMap(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = deepCopy(value)
	}
	return out
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = deepCopyMap(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return value
	}
}
