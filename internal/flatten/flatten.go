package flatten

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultSeparator joins parent and child keys.
const DefaultSeparator = "_"

// IsNested reports whether at least one top-level value is an object.
func IsNested(doc *Document) bool {
	if doc == nil {
		return false
	}
	for _, k := range doc.keys {
		if _, ok := doc.values[k].(*Document); ok {
			return true
		}
	}
	return false
}

// Pair is one flattened variable.
type Pair struct {
	Name  string
	Value string
}

// Pairs holds flattened variables in document order. A name appears once,
// at the position where it was first produced, carrying the last value
// produced for it.
type Pairs []Pair

// Map returns the pairs as a name to value mapping.
func (p Pairs) Map() map[string]string {
	out := make(map[string]string, len(p))
	for _, pair := range p {
		out[pair.Name] = pair.Value
	}
	return out
}

// collector builds Pairs, folding repeated names into their first slot.
type collector struct {
	pairs Pairs
	index map[string]int
}

func (c *collector) add(name, value string) {
	if i, ok := c.index[name]; ok {
		c.pairs[i].Value = value
		return
	}
	c.index[name] = len(c.pairs)
	c.pairs = append(c.pairs, Pair{Name: name, Value: value})
}

// Flatten walks nested objects and joins keys with sep, so
// {"db":{"host":"x"}} becomes db_host=x. Arrays and scalars are rendered
// with Stringify. An empty sep falls back to DefaultSeparator.
func Flatten(doc *Document, sep string) Pairs {
	if sep == "" {
		sep = DefaultSeparator
	}
	c := &collector{pairs: Pairs{}, index: make(map[string]int)}
	if doc != nil {
		flattenInto(c, "", doc, sep)
	}
	return c.pairs
}

func flattenInto(c *collector, prefix string, doc *Document, sep string) {
	for _, k := range doc.keys {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}
		if child, ok := doc.values[k].(*Document); ok {
			flattenInto(c, key, child, sep)
			continue
		}
		c.add(key, Stringify(doc.values[k]))
	}
}

// Shallow returns the top-level keys with every value rendered by Stringify.
// Nested objects become their compact JSON text.
func Shallow(doc *Document) Pairs {
	out := Pairs{}
	if doc == nil {
		return out
	}
	for _, k := range doc.keys {
		out = append(out, Pair{Name: k, Value: Stringify(doc.values[k])})
	}
	return out
}

// Stringify renders a document value as an environment variable value.
// Strings are returned as-is; everything else becomes its compact JSON text
// (1, 2.5, true, null, [1,2], {"a":1}).
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	case Array:
		if len(x) == 0 {
			return "[]"
		}
		return string(x)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
