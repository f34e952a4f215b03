// Package format reads and writes variable files in JSON, YAML, or dotenv
// form, chosen by file extension.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/envgod/internal/atomicfile"
	"github.com/mesh-intelligence/envgod/internal/flatten"
)

// Format identifies a file encoding.
type Format string

// Supported formats.
const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	Dotenv Format = "dotenv"
)

// Detect picks the format from the file extension. Unknown extensions are
// treated as JSON.
func Detect(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return YAML
	case strings.HasSuffix(base, ".env"), strings.HasPrefix(base, ".env."):
		return Dotenv
	default:
		return JSON
	}
}

// ReadFile parses the file at path into a document. Read errors are returned
// unwrapped enough for errors.Is(err, fs.ErrNotExist) to work.
func ReadFile(path string) (*flatten.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(Detect(path), data)
}

// Parse decodes data in the given format.
func Parse(f Format, data []byte) (*flatten.Document, error) {
	switch f {
	case YAML:
		doc, err := flatten.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return doc, nil
	case Dotenv:
		vars, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse dotenv: %w", err)
		}
		return flatten.FromMap(vars), nil
	default:
		doc, err := flatten.ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return doc, nil
	}
}

// Encode renders vars in the given format with keys sorted. JSON output is
// indented with four spaces.
func Encode(f Format, vars map[string]string) ([]byte, error) {
	switch f {
	case YAML:
		return encodeYAML(vars)
	case Dotenv:
		return encodeDotenv(vars)
	default:
		if vars == nil {
			vars = map[string]string{}
		}
		data, err := json.MarshalIndent(vars, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// ErrDotenvUnencodable is returned when a value cannot be written to a
// dotenv file in a form that reads back unchanged.
var ErrDotenvUnencodable = errors.New("value cannot be represented in dotenv")

// encodeDotenv renders one KEY="value" line per variable, sorted by key.
// Two godotenv quirks are worked around: Marshal writes integer-looking
// values bare and normalized ("007" reads back as "7"), and Parse trims a
// trailing escaped quote from double-quoted values. Values ending in a
// double quote are single-quoted instead, which godotenv reads literally;
// such a value that also holds a single quote has no safe form.
func encodeDotenv(vars map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		v := vars[k]
		if strings.HasSuffix(v, `"`) {
			if strings.Contains(v, "'") {
				return nil, fmt.Errorf("%w: %s", ErrDotenvUnencodable, k)
			}
			fmt.Fprintf(&buf, "%s='%s'\n", k, v)
			continue
		}
		if d, err := strconv.Atoi(v); err == nil && strconv.Itoa(d) != v {
			fmt.Fprintf(&buf, "%s=\"%s\"\n", k, v)
			continue
		}
		line, err := godotenv.Marshal(map[string]string{k: v})
		if err != nil {
			return nil, fmt.Errorf("marshal dotenv: %w", err)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// encodeYAML builds a mapping node so every value is emitted as a string,
// keeping values like "true" or "007" from being retyped on the way back in.
func encodeYAML(vars map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: vars[k], Style: yaml.DoubleQuotedStyle},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes vars in the format matching path and writes it
// atomically, replacing any existing file.
func WriteFile(path string, vars map[string]string) error {
	data, err := Encode(Detect(path), vars)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}
