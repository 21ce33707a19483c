package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry is a single keyed value in a Record.
type Entry struct {
	Key   string
	Value any
}

// Record is an ordered collection of keyed values.
type Record []Entry

// RecordOf builds a record from keys in order, looking up each value.
func RecordOf(keys []string, lookup func(string) any) Record {
	record := make(Record, 0, len(keys))
	for _, key := range keys {
		record = append(record, Entry{Key: key, Value: lookup(key)})
	}
	return record
}

// RecordFromStrings builds a record from a string map, ordered by key.
func RecordFromStrings(values map[string]string) Record {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return RecordOf(keys, func(key string) any { return values[key] })
}

// Map returns the record as a map, losing order.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, entry := range r {
		m[entry.Key] = entry.Value
	}
	return m
}

// MarshalJSON encodes the record as an object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(entry.Key)
		if err != nil {
			return nil, err
		}
		value, err := marshalJSON(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", entry.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// yamlNode returns a mapping node with keys in record order.
func (r Record) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range r {
		value := &yaml.Node{}
		if err := value.Encode(entry.Value); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", entry.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
			value)
	}
	return node, nil
}
