package flatten

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

func mustJSON(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseJSON([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestFlattenNested(t *testing.T) {
	doc := mustJSON(t, `{"a":{"b":1,"c":{"d":2}}}`)

	got := Flatten(doc, "_").Map()
	assert.Equal(t, map[string]string{"a_b": "1", "a_c_d": "2"}, got)
}

func TestFlattenScalarsAndArrays(t *testing.T) {
	doc := mustJSON(t, `{
		"db": {"host": "x", "port": 5432, "ssl": true, "pass": null, "ratio": 0.25},
		"tags": ["a", 1, {"k": "v"}],
		"name": "svc"
	}`)

	got := Flatten(doc, DefaultSeparator).Map()
	assert.Equal(t, map[string]string{
		"db_host":  "x",
		"db_port":  "5432",
		"db_ssl":   "true",
		"db_pass":  "null",
		"db_ratio": "0.25",
		"tags":     `["a",1,{"k":"v"}]`,
		"name":     "svc",
	}, got)
}

func TestFlattenCustomSeparator(t *testing.T) {
	doc := mustJSON(t, `{"app":{"log":{"level":"debug"}}}`)
	assert.Equal(t, map[string]string{"app.log.level": "debug"}, Flatten(doc, ".").Map())
	assert.Equal(t, map[string]string{"app_log_level": "debug"}, Flatten(doc, "").Map())
}

func TestFlattenCollisionLaterWins(t *testing.T) {
	doc := mustJSON(t, `{"a_b":"first","a":{"b":"second"}}`)
	assert.Equal(t, map[string]string{"a_b": "second"}, Flatten(doc, "_").Map())

	doc = mustJSON(t, `{"a":{"b":"first"},"a_b":"second"}`)
	assert.Equal(t, map[string]string{"a_b": "second"}, Flatten(doc, "_").Map())
}

func TestFlattenIsDeterministic(t *testing.T) {
	src := `{"z":{"y":1},"a":{"b":{"c":[1,2]}},"m":"x"}`
	first := Flatten(mustJSON(t, src), "_")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Flatten(mustJSON(t, src), "_"))
	}
}

func TestFlattenFlatDocumentStringifies(t *testing.T) {
	doc := mustJSON(t, `{"A":1,"B":"two","C":false}`)
	assert.False(t, IsNested(doc))
	assert.Equal(t, map[string]string{"A": "1", "B": "two", "C": "false"}, Flatten(doc, "_").Map())
	assert.Equal(t, Shallow(doc), Flatten(doc, "_"))
}

func TestIsNested(t *testing.T) {
	assert.False(t, IsNested(mustJSON(t, `{"a":1,"b":2}`)))
	assert.True(t, IsNested(mustJSON(t, `{"a":{"b":1}}`)))
	assert.False(t, IsNested(mustJSON(t, `{"a":[{"b":1}]}`)))
	assert.False(t, IsNested(mustJSON(t, `{}`)))
	assert.False(t, IsNested(nil))
}

func TestShallowKeepsNestedAsJSON(t *testing.T) {
	doc := mustJSON(t, `{"a":{"z":1,"b":"x"},"n":3}`)
	assert.Equal(t, map[string]string{"a": `{"z":1,"b":"x"}`, "n": "3"}, Shallow(doc).Map())
}

func TestParseJSONPreservesOrder(t *testing.T) {
	doc := mustJSON(t, `{"z":1,"a":2,"m":3}`)
	assert.Equal(t, []string{"z", "a", "m"}, doc.Keys())

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))
}

func TestParseJSONRejectsNonObject(t *testing.T) {
	for _, src := range []string{`[1,2]`, `"text"`, `42`} {
		_, err := ParseJSON([]byte(src))
		assert.True(t, errors.Is(err, types.ErrNotObject), "src %s: %v", src, err)
	}

	_, err := ParseJSON([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(``))
	assert.Error(t, err)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"second object", `{"a":1} {"b":2}`},
		{"extra brace", `{"a":1}}`},
		{"bare word", `{"a":1} x`},
		{"array after", `{"a":1}[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.src))
			assert.Error(t, err)
		})
	}

	_, err := ParseJSON([]byte(`{"a":1} {"b":2}`))
	assert.ErrorIs(t, err, ErrTrailingData)

	doc, err := ParseJSON([]byte("{\"a\":1}\n\t \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, doc.Keys())
}

func TestFlattenKeepsDocumentOrder(t *testing.T) {
	doc := mustJSON(t, `{"z":1,"m":{"b":2,"a":3},"a":4}`)
	assert.Equal(t, Pairs{
		{Name: "z", Value: "1"},
		{Name: "m_b", Value: "2"},
		{Name: "m_a", Value: "3"},
		{Name: "a", Value: "4"},
	}, Flatten(doc, "_"))

	// A collision keeps the first position and the last value.
	doc = mustJSON(t, `{"a_b":"first","x":"y","a":{"b":"second"}}`)
	assert.Equal(t, Pairs{
		{Name: "a_b", Value: "second"},
		{Name: "x", Value: "y"},
	}, Flatten(doc, "_"))
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(`
server:
  host: localhost
  port: 8080
  debug: false
features: [a, b]
empty: ~
name: plain
`))
	require.NoError(t, err)
	assert.True(t, IsNested(doc))
	assert.Equal(t, []string{"server", "features", "empty", "name"}, doc.Keys())

	assert.Equal(t, map[string]string{
		"server_host":  "localhost",
		"server_port":  "8080",
		"server_debug": "false",
		"features":     `["a","b"]`,
		"empty":        "null",
		"name":         "plain",
	}, Flatten(doc, "_").Map())
}

func TestParseYAMLEdgeCases(t *testing.T) {
	doc, err := ParseYAML([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Keys())

	_, err = ParseYAML([]byte("- a\n- b\n"))
	assert.True(t, errors.Is(err, types.ErrNotObject))

	doc, err = ParseYAML([]byte("when: 2001-12-14\nquoted: \"007\"\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"when": "2001-12-14", "quoted": "007"}, Flatten(doc, "_").Map())

	// Merge keys copy the anchored mapping; explicit keys win.
	doc, err = ParseYAML([]byte(`
base: &b
  host: x
  port: 1
prod:
  <<: *b
  port: 2
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"base_host": "x",
		"base_port": "1",
		"prod_host": "x",
		"prod_port": "2",
	}, Flatten(doc, "_").Map())

	// A merged sequence: the first mapping to set a key wins.
	doc, err = ParseYAML([]byte(`
one: &one {k: 1, j: 1}
two: &two {k: 2, m: 2}
both:
  <<: [*one, *two]
`))
	require.NoError(t, err)
	assert.Equal(t, Pairs{
		{Name: "k", Value: "1"},
		{Name: "j", Value: "1"},
		{Name: "m", Value: "2"},
	}, Shallow(mustYAMLChild(t, doc, "both")))

	// A quoted "<<" is an ordinary key.
	doc, err = ParseYAML([]byte(`"<<": literal` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"<<": "literal"}, Flatten(doc, "_").Map())

	_, err = ParseYAML([]byte("a:\n  <<: scalar\n"))
	assert.Error(t, err)
}

func mustYAMLChild(t *testing.T, doc *Document, key string) *Document {
	t.Helper()
	child, ok := doc.values[key].(*Document)
	require.True(t, ok, "key %q is not a mapping", key)
	return child
}

func TestFromMapSortsKeys(t *testing.T) {
	doc := FromMap(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A", "B"}, doc.Keys())
	assert.Equal(t, Pairs{{"A", "1"}, {"B", "2"}}, Shallow(doc))
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "x", "x"},
		{"int", 3, "3"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"nil", nil, "null"},
		{"empty array", Array(nil), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.in))
		})
	}
}
