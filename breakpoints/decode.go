package breakpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"mqc/common"
)

// Format is serialization format of breakpoints file.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatJSONC Format = "jsonc"
)

// FormatFromPath guesses format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json", ".jsonc", ".hujson":
		return FormatJSONC, nil
	default:
		return "", fmt.Errorf("unsupported breakpoints file type %q", filepath.Ext(path))
	}
}

// LoadFile reads registry from YAML, TOML or JSON (comments and trailing
// commas allowed) file. Top level object must have "lengths" and/or
// "features" keys.
func LoadFile(log *zap.Logger, path string) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read breakpoints file: %w", err)
	}
	r, err := Decode(log, data, format)
	if err != nil {
		return nil, fmt.Errorf("unable to decode breakpoints file %q: %w", path, err)
	}
	return r, nil
}

// Decode builds registry from serialized data.
func Decode(log *zap.Logger, data []byte, format Format) (*Registry, error) {
	var (
		tree any
		err  error
	)
	switch format {
	case FormatYAML:
		var node yaml.Node
		if err = yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		tree, err = nodeToTree(&node)
	case FormatTOML:
		var m map[string]any
		if err = toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		tree = m
	case FormatJSONC:
		tree, err = decodeJSONC(data)
	default:
		return nil, fmt.Errorf("unsupported breakpoints format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return fromTree(log, tree)
}

// UnmarshalYAML implements yaml.Unmarshaler keeping definition order.
func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	tree, err := nodeToTree(node)
	if err != nil {
		return err
	}
	decoded, err := fromTree(r.log, tree)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r *Registry) MarshalYAML() (any, error) {
	lengths := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.lengths.names {
		lengths.Content = append(lengths.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: r.lengths.values[name].Raw},
		)
	}
	features := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.features.names {
		conds := r.features.values[name]
		val := &yaml.Node{Kind: yaml.SequenceNode}
		if len(conds) == 1 {
			val = &yaml.Node{Kind: yaml.ScalarNode, Value: conds[0]}
		} else {
			for _, c := range conds {
				val.Content = append(val.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c})
			}
		}
		features.Content = append(features.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, val)
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: submapLengths}, lengths,
		{Kind: yaml.ScalarNode, Value: submapFeatures}, features,
	}}, nil
}

// member is a key/value pair of decoded object. Objects are decoded into
// []member wherever source format allows to preserve key order.
type member struct {
	key string
	val any
}

func members(v any) ([]member, bool) {
	switch t := v.(type) {
	case []member:
		return t, true
	case map[string]any:
		out := make([]member, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			out = append(out, member{key: k, val: t[k]})
		}
		return out, true
	}
	return nil, false
}

func fromTree(log *zap.Logger, tree any) (*Registry, error) {
	r := New(log)
	if tree == nil {
		return r, nil
	}
	top, ok := members(tree)
	if !ok {
		return nil, errors.New("breakpoints must be an object with lengths and features")
	}
	for _, m := range top {
		switch m.key {
		case submapLengths:
			items, ok := members(m.val)
			if !ok && m.val != nil {
				return nil, fmt.Errorf("%s must be an object, got %s", submapLengths, inspect(m.val))
			}
			for _, it := range items {
				r.SetLengthValue(it.key, classify(it.val))
			}
		case submapFeatures:
			items, ok := members(m.val)
			if !ok && m.val != nil {
				return nil, fmt.Errorf("%s must be an object, got %s", submapFeatures, inspect(m.val))
			}
			for _, it := range items {
				conds, err := conditions(it.val)
				if err != nil {
					return nil, fmt.Errorf("feature breakpoint %q: %w", it.key, err)
				}
				r.SetFeature(it.key, conds...)
			}
		default:
			return nil, fmt.Errorf("unknown breakpoints key %q", m.key)
		}
	}
	return r, nil
}

func classify(v any) Value {
	switch v.(type) {
	case []member, map[string]any:
		return Value{Raw: inspect(v), Kind: common.ValueKindMap}
	case []any:
		return Value{Raw: inspect(v), Kind: common.ValueKindList}
	case string, json.Number, int, int64, uint64, float64:
		return NewValue(scalarText(v))
	default:
		return Value{Raw: scalarText(v), Kind: common.ValueKindString}
	}
}

func conditions(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, c := range t {
			s, ok := c.(string)
			if !ok {
				return nil, fmt.Errorf("condition must be a string, got %s", inspect(c))
			}
			out = append(out, s)
		}
		if len(out) == 0 {
			return nil, errors.New("at least one condition is required")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("conditions must be a string or a list of strings, got %s", inspect(v))
	}
}

// inspect renders decoded value the way stylesheet compilers print maps
// and lists in diagnostics.
func inspect(v any) string {
	if ms, ok := members(v); ok {
		parts := make([]string, 0, len(ms))
		for _, m := range ms {
			parts = append(parts, m.key+": "+inspect(m.val))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, e := range list {
			parts = append(parts, inspect(e))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return scalarText(v)
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func nodeToTree(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToTree(n.Content[0])
	case yaml.AliasNode:
		return nodeToTree(n.Alias)
	case yaml.MappingNode:
		out := make([]member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeToTree(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, member{key: n.Content[i].Value, val: v})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToTree(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case 0:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected yaml node at line %d", n.Line)
	}
}

func decodeJSONC(data []byte) (any, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()
	return decodeJSONValue(dec)
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		var out []member
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, member{key: key, val: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		if out == nil {
			out = []member{}
		}
		return out, nil
	case '[':
		out := []any{}
		for dec.More() {
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected json delimiter %q", delim)
	}
}
