package config

import (
	"sort"

	"github.com/BurntSushi/toml"
)

// document is a mutable TOML document that remembers the order in which
// its top-level keys first appeared.
type document struct {
	values map[string]any
	order  []string
}

func newDocument() *document {
	return &document{values: make(map[string]any)}
}

// decodeDocument parses TOML text. Decoding errors are returned unchanged.
func decodeDocument(content string) (*document, error) {
	values := make(map[string]any)
	meta, err := toml.Decode(content, &values)
	if err != nil {
		return nil, err
	}
	doc := &document{values: values}
	seen := make(map[string]bool, len(values))
	for _, key := range meta.Keys() {
		if len(key) == 0 || seen[key[0]] {
			continue
		}
		seen[key[0]] = true
		doc.order = append(doc.order, key[0])
	}
	doc.adoptNewKeys()
	return doc, nil
}

// update overwrites top-level entries with those of other. Nested tables
// are replaced, not merged.
func (d *document) update(other *document) {
	for _, key := range other.order {
		if _, exists := d.values[key]; !exists {
			d.order = append(d.order, key)
		}
		d.values[key] = other.values[key]
	}
}

// adoptNewKeys appends keys present in values but missing from order.
func (d *document) adoptNewKeys() {
	if len(d.order) == len(d.values) {
		return
	}
	known := make(map[string]bool, len(d.order))
	for _, key := range d.order {
		known[key] = true
	}
	var added []string
	for key := range d.values {
		if !known[key] {
			added = append(added, key)
		}
	}
	sort.Strings(added)
	d.order = append(d.order, added...)
}
