package schemaspec

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/dmitrymomot/sift/pkg/validator"
)

// Node types.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeAny     = "any"
	TypeList    = "list"
	TypeDict    = "dict"
	TypeObject  = "object"
	TypeTuple   = "tuple"
	TypeUnion   = "union"
)

// Attributes are the scalar settings of a node.
type Attributes struct {
	Type     string `mapstructure:"type"`
	Optional bool   `mapstructure:"optional"`
	Nullable bool   `mapstructure:"nullable"`
	Error    string `mapstructure:"error"`

	Min    *float64 `mapstructure:"min"`
	Max    *float64 `mapstructure:"max"`
	Length *int     `mapstructure:"length"`

	Pattern   string `mapstructure:"pattern"`
	Format    string `mapstructure:"format"`
	Trim      bool   `mapstructure:"trim"`
	Lowercase bool   `mapstructure:"lowercase"`
	Uppercase bool   `mapstructure:"uppercase"`
	Nonempty  bool   `mapstructure:"nonempty"`

	Int        bool     `mapstructure:"int"`
	Positive   bool     `mapstructure:"positive"`
	Negative   bool     `mapstructure:"negative"`
	MultipleOf *float64 `mapstructure:"multiple_of"`

	Truthy bool `mapstructure:"truthy"`
	Unique bool `mapstructure:"unique"`

	// Required is nil when the required keys are derived from the properties.
	Required      []string `mapstructure:"required"`
	MinProperties *int     `mapstructure:"min_properties"`
	MaxProperties *int     `mapstructure:"max_properties"`
	Exclude       []string `mapstructure:"exclude"`

	Discriminator string `mapstructure:"discriminator"`
}

// Node is one declarative schema node.
type Node struct {
	Attributes

	Default    any
	HasDefault bool

	Items      *Node
	Properties map[string]*Node
	Additional *Additional
	Patterns   map[string]*Node
	Prefix     []*Node
	Rest       *Node
	Options    []*Node
	Mapping    map[string]*Node
}

// Additional is the additional-properties policy of a dict or object node:
// either a plain allow/forbid flag or a schema for unknown values.
type Additional struct {
	Allow  bool
	Schema *Node
}

var (
	commonFields = set("type", "optional", "error")

	countFields = set("min", "max", "length", "nonempty")
	dictFields  = set("properties", "required", "additional", "patterns", "min_properties", "max_properties")

	fieldsByType = map[string]map[string]struct{}{
		TypeString:  union(set("nullable", "default", "pattern", "format", "trim", "lowercase", "uppercase"), countFields),
		TypeNumber:  set("nullable", "default", "min", "max", "int", "positive", "negative", "multiple_of"),
		TypeBoolean: set("nullable", "default", "truthy"),
		TypeNull:    set(),
		TypeAny:     set("default"),
		TypeList:    union(set("nullable", "default", "items", "unique"), countFields),
		TypeDict:    union(set("nullable", "default"), dictFields),
		TypeObject:  union(set("nullable", "default", "exclude"), dictFields),
		TypeTuple:   set("nullable", "default", "prefix", "rest", "min", "max"),
		TypeUnion:   set("nullable", "default", "options", "discriminator", "mapping"),
	}

	// childFields hold nested nodes and are decoded by hand.
	childFields = set("default", "items", "properties", "additional", "patterns", "prefix", "rest", "options", "mapping")
)

func set(keys ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func union(a, b map[string]struct{}) map[string]struct{} {
	out := maps.Clone(a)
	maps.Copy(out, b)
	return out
}

// Decode converts a generic document tree, as produced by a YAML or JSON
// decoder, into a Node.
func Decode(raw any) (*Node, error) {
	return decode(raw, "$")
}

func decode(raw any, at string) (*Node, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invalid(at, "expected a mapping, got %s", describe(raw))
	}

	typ, ok := m["type"].(string)
	if !ok {
		return nil, invalid(at, "missing type")
	}
	allowed, ok := fieldsByType[typ]
	if !ok {
		return nil, fmt.Errorf("%w %q at %s", ErrUnknownType, typ, at)
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if _, ok := commonFields[k]; ok {
			continue
		}
		if _, ok := allowed[k]; !ok {
			return nil, invalid(at, "field %q is not valid for type %q", k, typ)
		}
	}

	scalars := make(map[string]any, len(m))
	for k, v := range m {
		if _, ok := childFields[k]; !ok {
			scalars[k] = v
		}
	}

	n := &Node{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &n.Attributes,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(scalars); err != nil {
		return nil, invalid(at, "%v", err)
	}

	if v, ok := m["default"]; ok {
		n.Default, n.HasDefault = v, true
	}
	if err := decodeChildren(n, m, at); err != nil {
		return nil, err
	}
	return n, nil
}

func decodeChildren(n *Node, m map[string]any, at string) error {
	var err error
	if raw, ok := m["items"]; ok {
		if n.Items, err = decode(raw, at+".items"); err != nil {
			return err
		}
	}
	if raw, ok := m["rest"]; ok {
		if n.Rest, err = decode(raw, at+".rest"); err != nil {
			return err
		}
	}
	if raw, ok := m["additional"]; ok {
		if n.Additional, err = decodeAdditional(raw, at+".additional"); err != nil {
			return err
		}
	}
	if raw, ok := m["properties"]; ok {
		if n.Properties, err = decodeMap(raw, at+".properties"); err != nil {
			return err
		}
	}
	if raw, ok := m["patterns"]; ok {
		if n.Patterns, err = decodeMap(raw, at+".patterns"); err != nil {
			return err
		}
	}
	if raw, ok := m["mapping"]; ok {
		if n.Mapping, err = decodeMap(raw, at+".mapping"); err != nil {
			return err
		}
	}
	if raw, ok := m["prefix"]; ok {
		if n.Prefix, err = decodeList(raw, at+".prefix"); err != nil {
			return err
		}
	}
	if raw, ok := m["options"]; ok {
		if n.Options, err = decodeList(raw, at+".options"); err != nil {
			return err
		}
	}
	return nil
}

func decodeAdditional(raw any, at string) (*Additional, error) {
	if allow, ok := raw.(bool); ok {
		return &Additional{Allow: allow}, nil
	}
	schema, err := decode(raw, at)
	if err != nil {
		return nil, err
	}
	return &Additional{Allow: true, Schema: schema}, nil
}

func decodeMap(raw any, at string) (map[string]*Node, error) {
	m, err := stringKeys(raw, at)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Node, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		n, err := decode(m[k], at+"["+fmt.Sprintf("%q", k)+"]")
		if err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, nil
}

// stringKeys normalizes a decoded mapping to string keys. YAML mappings with
// integer or boolean keys decode as map[any]any; their keys take the form a
// union discriminator looks them up by.
func stringKeys(raw any, at string) (map[string]any, error) {
	switch m := raw.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := validator.DiscriminatorTag(k)
			if !ok {
				return nil, invalid(at, "expected scalar keys, got %s", describe(k))
			}
			if _, dup := out[key]; dup {
				return nil, invalid(at, "duplicate key %q", key)
			}
			out[key] = v
		}
		return out, nil
	}
	return nil, invalid(at, "expected a mapping with string keys, got %s", describe(raw))
}

func decodeList(raw any, at string) ([]*Node, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, invalid(at, "expected a sequence, got %s", describe(raw))
	}
	out := make([]*Node, len(list))
	for i, item := range list {
		n, err := decode(item, fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func invalid(at, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrInvalidNode, at, fmt.Sprintf(format, args...))
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
