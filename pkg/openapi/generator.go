package openapi

import (
	"maps"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/sift/pkg/validator"
)

const (
	ExtPrefixItems       = "x-prefixItems"
	ExtPatternProperties = "x-patternProperties"
	ExtValidator         = "x-validator"
	ExtTransforms        = "x-transforms"
)

// Generator converts validators into kin-openapi schemas and collects named
// component schemas.
type Generator struct {
	schemas openapi3.Schemas
	title   cases.Caser
}

func NewGenerator() *Generator {
	return &Generator{
		schemas: make(openapi3.Schemas),
		title:   cases.Title(language.Und),
	}
}

// Schema returns the schema for v. Discriminated unions register their mapped
// validators as components.
func (g *Generator) Schema(v validator.Validator) *openapi3.Schema {
	s := validator.Visit[*openapi3.Schema](v, schemaVisitor{g: g})
	applyOptions(s, v.Options())
	return s
}

// Register adds v to the components under name and returns a reference to it.
func (g *Generator) Register(name string, v validator.Validator) *openapi3.SchemaRef {
	s := g.Schema(v)
	g.schemas[name] = openapi3.NewSchemaRef("", s)
	return openapi3.NewSchemaRef(componentRef(name), s)
}

// Components returns a copy of the registered schemas.
func (g *Generator) Components() openapi3.Components {
	c := openapi3.NewComponents()
	c.Schemas = maps.Clone(g.schemas)
	return c
}

func componentRef(name string) string {
	return "#/components/schemas/" + name
}

func (g *Generator) ref(v validator.Validator) *openapi3.SchemaRef {
	if v == nil {
		return openapi3.NewSchemaRef("", openapi3.NewSchema())
	}
	return openapi3.NewSchemaRef("", g.Schema(v))
}

func applyOptions(s *openapi3.Schema, opts validator.Options) {
	if opts.IsNullable() || opts.IsOptional() {
		s.Nullable = true
	}
	if value, ok := opts.StaticDefault(); ok {
		s.Default = value
	}
}

func setExtension(s *openapi3.Schema, key string, value any) {
	if s.Extensions == nil {
		s.Extensions = make(map[string]any)
	}
	s.Extensions[key] = value
}

type schemaVisitor struct {
	g *Generator
}

func (sv schemaVisitor) String(v validator.StringValidator) *openapi3.Schema {
	info := v.Info()
	s := openapi3.NewStringSchema()
	if info.MinLength != nil {
		s.MinLength = uint64(*info.MinLength)
	}
	if info.Nonempty && s.MinLength == 0 {
		s.MinLength = 1
	}
	if info.MaxLength != nil {
		s.MaxLength = openapi3.Ptr(uint64(*info.MaxLength))
	}
	if info.Pattern != "" {
		s.Pattern = anchorPattern(info.Pattern)
	}
	s.Format = info.Format
	if len(info.Transforms) > 0 {
		setExtension(s, ExtTransforms, info.Transforms)
	}
	return s
}

func (sv schemaVisitor) Number(v validator.NumberValidator) *openapi3.Schema {
	info := v.Info()
	s := openapi3.NewFloat64Schema()
	if info.Integer {
		s = openapi3.NewIntegerSchema()
	}
	s.Min = info.Min
	s.Max = info.Max
	if info.Positive && (s.Min == nil || *s.Min <= 0) {
		s.Min = openapi3.Ptr(0.0)
		s.ExclusiveMin = true
	}
	if info.Negative && (s.Max == nil || *s.Max >= 0) {
		s.Max = openapi3.Ptr(0.0)
		s.ExclusiveMax = true
	}
	s.MultipleOf = info.MultipleOf
	return s
}

func (sv schemaVisitor) Boolean(validator.BooleanValidator) *openapi3.Schema {
	return openapi3.NewBoolSchema()
}

func (sv schemaVisitor) Null(validator.NullValidator) *openapi3.Schema {
	s := openapi3.NewSchema()
	s.Enum = []any{nil}
	return s
}

func (sv schemaVisitor) Any(validator.AnyValidator) *openapi3.Schema {
	return openapi3.NewSchema()
}

func (sv schemaVisitor) List(v validator.ListValidator) *openapi3.Schema {
	info := v.Info()
	s := openapi3.NewArraySchema()
	s.Items = sv.g.ref(info.Item)
	if info.MinLength != nil {
		s.MinItems = uint64(*info.MinLength)
	}
	if info.Nonempty && s.MinItems == 0 {
		s.MinItems = 1
	}
	if info.MaxLength != nil {
		s.MaxItems = openapi3.Ptr(uint64(*info.MaxLength))
	}
	s.UniqueItems = info.Unique
	return s
}

func (sv schemaVisitor) Dict(v validator.DictValidator) *openapi3.Schema {
	return sv.object(v.Info(), nil)
}

func (sv schemaVisitor) Object(v validator.ObjectValidator) *openapi3.Schema {
	info := v.Info()
	return sv.object(info.DictInfo, info.Excluded)
}

// object renders a keyed-map schema. Excluded fields are documented as
// unconstrained and never required.
func (sv schemaVisitor) object(info validator.DictInfo, excluded []string) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, f := range info.Fields {
		if slices.Contains(excluded, f.Name) {
			s.Properties[f.Name] = openapi3.NewSchemaRef("", openapi3.NewSchema())
			continue
		}
		s.Properties[f.Name] = sv.g.ref(f.Validator)
	}

	for _, k := range info.Required {
		if !slices.Contains(excluded, k) {
			s.Required = append(s.Required, k)
		}
	}

	switch info.Additional.Mode {
	case validator.AdditionalForbid:
		s.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.Ptr(false)}
	case validator.AdditionalValidate:
		s.AdditionalProperties = openapi3.AdditionalProperties{Schema: sv.g.ref(info.Additional.Validator)}
	}

	if len(info.Patterns) > 0 {
		patterns := make(map[string]*openapi3.Schema, len(info.Patterns))
		for _, r := range info.Patterns {
			patterns[anchorPattern(r.Pattern)] = sv.g.Schema(r.Validator)
		}
		setExtension(s, ExtPatternProperties, patterns)
	}

	if info.MinProperties != nil {
		s.MinProps = uint64(*info.MinProperties)
	}
	if info.MaxProperties != nil {
		s.MaxProps = openapi3.Ptr(uint64(*info.MaxProperties))
	}
	return s
}

func (sv schemaVisitor) Tuple(v validator.TupleValidator) *openapi3.Schema {
	info := v.Info()
	s := openapi3.NewArraySchema()

	prefix := make([]*openapi3.Schema, len(info.Items))
	for i, item := range info.Items {
		prefix[i] = sv.g.Schema(item)
	}
	setExtension(s, ExtPrefixItems, prefix)

	if info.Rest != nil {
		s.Items = sv.g.ref(info.Rest)
	}
	s.MinItems = uint64(info.MinLength)
	if info.MaxLength != nil {
		s.MaxItems = openapi3.Ptr(uint64(*info.MaxLength))
	}
	return s
}

func (sv schemaVisitor) Union(v validator.UnionValidator) *openapi3.Schema {
	info := v.Info()
	options := make([]*openapi3.Schema, len(info.Options))
	for i, option := range info.Options {
		options[i] = sv.g.Schema(option)
	}
	s := openapi3.NewAnyOfSchema(options...)

	if info.Discriminator != "" && len(info.Mapping) > 0 {
		mapping := make(openapi3.StringMap, len(info.Mapping))
		for _, tag := range slices.Sorted(maps.Keys(info.Mapping)) {
			name := sv.g.title.String(tag)
			sv.g.Register(name, info.Mapping[tag])
			mapping[tag] = componentRef(name)
		}
		s.Discriminator = &openapi3.Discriminator{
			PropertyName: info.Discriminator,
			Mapping:      mapping,
		}
	}
	return s
}

func (sv schemaVisitor) Transform(v validator.TransformValidator) *openapi3.Schema {
	return sv.g.Schema(v.Inner())
}

func (sv schemaVisitor) Custom(v validator.Validator) *openapi3.Schema {
	s := openapi3.NewSchema()
	if c, ok := v.(validator.CustomValidator); ok && c.Name() != "" {
		setExtension(s, ExtValidator, c.Name())
	}
	return s
}

// anchorPattern pins expr to the start of the input, as validator patterns are
// matched. JSON Schema patterns are unanchored searches.
func anchorPattern(expr string) string {
	return "^(?:" + expr + ")"
}
