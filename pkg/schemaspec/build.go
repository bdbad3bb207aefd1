package schemaspec

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sift/pkg/validator"
)

// Parse reads a YAML or JSON schema document.
func Parse(content []byte) (*Node, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrSyntax, err)
	}
	return Decode(raw)
}

// Compile parses content and builds the validator tree.
func Compile(content []byte) (validator.Validator, error) {
	n, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return Build(n)
}

// Build turns a node tree into a validator tree. Configuration that the
// validator builders would reject with a panic is reported as ErrInvalidNode.
func Build(n *Node) (validator.Validator, error) {
	return build(n, "$")
}

type configurable[V any] interface {
	validator.Validator
	Optional() V
	Nullable() V
	Default(value any) V
	Error(message string) V
}

func common[V configurable[V]](v V, n *Node) V {
	if n.Optional {
		v = v.Optional()
	}
	if n.Nullable {
		v = v.Nullable()
	}
	if n.HasDefault {
		v = v.Default(n.Default)
	}
	if n.Error != "" {
		v = v.Error(n.Error)
	}
	return v
}

func build(n *Node, at string) (validator.Validator, error) {
	if n == nil {
		return nil, invalid(at, "missing node")
	}

	switch n.Type {
	case TypeString:
		return buildString(n, at)
	case TypeNumber:
		return buildNumber(n, at)
	case TypeBoolean:
		v := validator.Boolean()
		if n.Truthy {
			v = v.Truthy()
		}
		return common(v, n), nil
	case TypeNull:
		v := validator.Null()
		if n.Optional {
			v = v.Optional()
		}
		if n.Error != "" {
			v = v.Error(n.Error)
		}
		return v, nil
	case TypeAny:
		v := validator.Any()
		if n.Optional {
			v = v.Optional()
		}
		if n.HasDefault {
			v = v.Default(n.Default)
		}
		if n.Error != "" {
			v = v.Error(n.Error)
		}
		return v, nil
	case TypeList:
		return buildList(n, at)
	case TypeDict:
		fields, err := buildFields(n, at)
		if err != nil {
			return nil, err
		}
		d, err := dictRules(validator.DictFields(fields...), n, at)
		if err != nil {
			return nil, err
		}
		return common(d, n), nil
	case TypeObject:
		return buildObject(n, at)
	case TypeTuple:
		return buildTuple(n, at)
	case TypeUnion:
		return buildUnion(n, at)
	default:
		return nil, fmt.Errorf("%w %q at %s", ErrUnknownType, n.Type, at)
	}
}

func buildString(n *Node, at string) (validator.Validator, error) {
	v := validator.String()
	if n.Min != nil {
		lo, err := count(n.Min, at, "min")
		if err != nil {
			return nil, err
		}
		v = v.Min(lo)
	}
	if n.Max != nil {
		hi, err := count(n.Max, at, "max")
		if err != nil {
			return nil, err
		}
		v = v.Max(hi)
	}
	if n.Length != nil {
		if *n.Length < 0 {
			return nil, invalid(at, "length must not be negative")
		}
		v = v.Length(*n.Length)
	}
	if n.Nonempty {
		v = v.Nonempty()
	}
	if n.Pattern != "" {
		if _, err := regexp.Compile(n.Pattern); err != nil {
			return nil, invalid(at, "pattern: %v", err)
		}
		v = v.Pattern(n.Pattern)
	}
	switch n.Format {
	case "":
	case "email":
		v = v.Email()
	case "url", "uri":
		v = v.URL()
	case "uuid":
		v = v.UUID()
	case "datetime", "date-time":
		v = v.Datetime()
	case "date":
		v = v.Date()
	default:
		return nil, invalid(at, "unknown format %q", n.Format)
	}
	if n.Trim {
		v = v.Trim()
	}
	if n.Lowercase {
		v = v.Lowercase()
	}
	if n.Uppercase {
		v = v.Uppercase()
	}
	return common(v, n), nil
}

func buildNumber(n *Node, at string) (validator.Validator, error) {
	v := validator.Number()
	if n.Min != nil {
		v = v.Min(*n.Min)
	}
	if n.Max != nil {
		v = v.Max(*n.Max)
	}
	if n.Min != nil && n.Max != nil && *n.Min > *n.Max {
		return nil, invalid(at, "min %v is greater than max %v", *n.Min, *n.Max)
	}
	if n.Int {
		v = v.Int()
	}
	if n.Positive && n.Negative {
		return nil, invalid(at, "positive and negative are mutually exclusive")
	}
	if n.Positive {
		v = v.Positive()
	}
	if n.Negative {
		v = v.Negative()
	}
	if n.MultipleOf != nil {
		if *n.MultipleOf <= 0 {
			return nil, invalid(at, "multiple_of must be greater than zero")
		}
		v = v.MultipleOf(*n.MultipleOf)
	}
	return common(v, n), nil
}

func buildList(n *Node, at string) (validator.Validator, error) {
	var item validator.Validator
	if n.Items != nil {
		var err error
		if item, err = build(n.Items, at+".items"); err != nil {
			return nil, err
		}
	}

	v := validator.List(item)
	if n.Min != nil {
		lo, err := count(n.Min, at, "min")
		if err != nil {
			return nil, err
		}
		v = v.Min(lo)
	}
	if n.Max != nil {
		hi, err := count(n.Max, at, "max")
		if err != nil {
			return nil, err
		}
		v = v.Max(hi)
	}
	if n.Length != nil {
		if *n.Length < 0 {
			return nil, invalid(at, "length must not be negative")
		}
		v = v.Length(*n.Length)
	}
	if n.Nonempty {
		v = v.Nonempty()
	}
	if n.Unique {
		v = v.Unique()
	}
	return common(v, n), nil
}

func buildFields(n *Node, at string) ([]validator.Field, error) {
	names := slices.Sorted(maps.Keys(n.Properties))
	fields := make([]validator.Field, 0, len(names))
	for _, name := range names {
		v, err := build(n.Properties[name], at+".properties"+fmt.Sprintf("[%q]", name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, validator.Field{Name: name, Validator: v})
	}
	return fields, nil
}

// dictRules applies the keyed-map constraints shared by dict and object nodes.
func dictRules[V interface {
	Required(keys ...string) V
	AdditionalProperties(policy validator.Additional) V
	PatternProperty(expr string, v validator.Validator) V
	MinProperties(n int) V
	MaxProperties(n int) V
}](v V, n *Node, at string) (V, error) {
	if n.Required != nil {
		v = v.Required(n.Required...)
	}

	if a := n.Additional; a != nil {
		switch {
		case a.Schema != nil:
			sv, err := build(a.Schema, at+".additional")
			if err != nil {
				return v, err
			}
			v = v.AdditionalProperties(validator.AdditionalWith(sv))
		case a.Allow:
			v = v.AdditionalProperties(validator.AllowAdditional())
		default:
			v = v.AdditionalProperties(validator.ForbidAdditional())
		}
	}

	for _, expr := range slices.Sorted(maps.Keys(n.Patterns)) {
		if _, err := regexp.Compile(expr); err != nil {
			return v, invalid(at, "pattern %q: %v", expr, err)
		}
		pv, err := build(n.Patterns[expr], at+".patterns"+fmt.Sprintf("[%q]", expr))
		if err != nil {
			return v, err
		}
		v = v.PatternProperty(expr, pv)
	}

	if n.MinProperties != nil {
		if *n.MinProperties < 0 {
			return v, invalid(at, "min_properties must not be negative")
		}
		v = v.MinProperties(*n.MinProperties)
	}
	if n.MaxProperties != nil {
		if *n.MaxProperties < 0 {
			return v, invalid(at, "max_properties must not be negative")
		}
		v = v.MaxProperties(*n.MaxProperties)
	}
	return v, nil
}

func buildObject(n *Node, at string) (validator.Validator, error) {
	fields, err := buildFields(n, at)
	if err != nil {
		return nil, err
	}
	o, err := dictRules(validator.ObjectFields(fields...), n, at)
	if err != nil {
		return nil, err
	}
	if len(n.Exclude) > 0 {
		for _, k := range n.Exclude {
			if !slices.Contains(o.FieldNames(), k) {
				return nil, invalid(at, "exclude names undeclared property %q", k)
			}
		}
		o = o.Exclude(n.Exclude...)
	}
	return common(o, n), nil
}

func buildTuple(n *Node, at string) (validator.Validator, error) {
	items := make([]validator.Validator, len(n.Prefix))
	for i, p := range n.Prefix {
		v, err := build(p, fmt.Sprintf("%s.prefix[%d]", at, i))
		if err != nil {
			return nil, err
		}
		items[i] = v
	}

	v := validator.Tuple(items...)
	if n.Rest != nil {
		rest, err := build(n.Rest, at+".rest")
		if err != nil {
			return nil, err
		}
		v = v.Rest(rest)
	}
	if n.Min != nil {
		lo, err := count(n.Min, at, "min")
		if err != nil {
			return nil, err
		}
		v = v.Min(lo)
	}
	if n.Max != nil {
		if n.Rest == nil {
			return nil, invalid(at, "max requires rest")
		}
		hi, err := count(n.Max, at, "max")
		if err != nil {
			return nil, err
		}
		v = v.Max(hi)
	}
	return common(v, n), nil
}

func buildUnion(n *Node, at string) (validator.Validator, error) {
	if (n.Discriminator == "") != (len(n.Mapping) == 0) {
		return nil, invalid(at, "discriminator and mapping must be set together")
	}

	mapping := make(map[string]validator.Validator, len(n.Mapping))
	tags := slices.Sorted(maps.Keys(n.Mapping))
	for _, tag := range tags {
		v, err := build(n.Mapping[tag], at+".mapping"+fmt.Sprintf("[%q]", tag))
		if err != nil {
			return nil, err
		}
		mapping[tag] = v
	}

	options := make([]validator.Validator, 0, len(n.Options))
	for i, o := range n.Options {
		v, err := build(o, fmt.Sprintf("%s.options[%d]", at, i))
		if err != nil {
			return nil, err
		}
		options = append(options, v)
	}
	if len(options) == 0 {
		// a discriminated union may list its variants only in the mapping
		for _, tag := range tags {
			options = append(options, mapping[tag])
		}
	}
	if len(options) == 0 {
		return nil, invalid(at, "union needs at least one option")
	}

	u := validator.Union(options...)
	if n.Discriminator != "" {
		u = u.Discriminator(n.Discriminator, mapping)
	}
	return common(u, n), nil
}

// count converts a min or max bound of a length-like constraint.
func count(f *float64, at, name string) (int, error) {
	if *f < 0 || *f != math.Trunc(*f) {
		return 0, invalid(at, "%s must be a non-negative integer, got %v", name, *f)
	}
	return int(*f), nil
}
