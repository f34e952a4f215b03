// Package flatten turns nested JSON or YAML documents into flat
// name→value mappings suitable for environment variables.
//
// Documents keep their key order so that flattening is deterministic: keys
// are joined in document order and, when two paths produce the same flat
// key, the later one wins.
package flatten

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

// ErrTrailingData is returned when a JSON document has content after its
// top-level object.
var ErrTrailingData = errors.New("unexpected data after top-level object")

// Array is an array value kept as compact JSON. Arrays are never recursed
// into; they render as their JSON text.
type Array []byte

// MarshalJSON returns the array's JSON text.
func (a Array) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return a, nil
}

// Document is an object with ordered keys. Values are scalars (string,
// json.Number, bool, nil, or YAML-decoded numbers), Arrays, or nested
// *Documents.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// FromMap builds a document from a flat mapping with keys sorted, since a Go
// map carries no order of its own.
func FromMap(m map[string]string) *Document {
	doc := NewDocument()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc.Set(k, m[k])
	}
	return doc
}

// Set assigns value to key. A new key goes to the end; an existing key keeps
// its position.
func (d *Document) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// UnmarshalJSON decodes a JSON object preserving key order. Numbers keep
// their literal text. A top-level value that is not an object returns
// types.ErrNotObject.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return types.ErrNotObject
	}

	*d = Document{values: make(map[string]any)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		value, err := decodeJSONValue(raw)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		d.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return ErrTrailingData
	}
	return nil
}

func decodeJSONValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '{':
		child := NewDocument()
		if err := child.UnmarshalJSON(trimmed); err != nil {
			return nil, err
		}
		return child, nil
	case '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return nil, err
		}
		return Array(buf.Bytes()), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON encodes the document as a JSON object in key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseJSON decodes data into a Document.
func ParseJSON(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseYAML decodes a YAML mapping into a Document. An empty input yields an
// empty document; any other non-mapping root returns types.ErrNotObject.
func ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return NewDocument(), nil
	}
	node := root.Content[0]
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil, types.ErrNotObject
	}
	return fromYAMLMapping(node)
}

func fromYAMLMapping(node *yaml.Node) (*Document, error) {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMergeKey(node.Content[i]) {
			explicit[node.Content[i].Value] = true
		}
	}

	doc := NewDocument()
	merged := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if isMergeKey(keyNode) {
			if err := mergeYAML(doc, valNode, explicit, merged); err != nil {
				return nil, fmt.Errorf("decoding merge key: %w", err)
			}
			continue
		}
		value, err := fromYAMLValue(valNode)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", keyNode.Value, err)
		}
		doc.Set(keyNode.Value, value)
	}
	return doc, nil
}

// isMergeKey reports whether n is an unquoted "<<" key.
func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// mergeYAML copies the pairs of a merged mapping, or of each mapping in a
// merged sequence, into doc. Keys written explicitly in the enclosing
// mapping win, and within a sequence the first mapping that sets a key wins.
func mergeYAML(doc *Document, node *yaml.Node, explicit, merged map[string]bool) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		src, err := fromYAMLMapping(node)
		if err != nil {
			return err
		}
		for _, k := range src.keys {
			if explicit[k] || merged[k] {
				continue
			}
			merged[k] = true
			doc.Set(k, src.values[k])
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := mergeYAML(doc, item, explicit, merged); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("merge value at line %d is not a mapping", node.Line)
}

func fromYAMLValue(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.MappingNode:
		return fromYAMLMapping(node)
	case yaml.SequenceNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return Array(data), nil
	}

	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return node.Value, nil
	}
}
