package validator

import (
	"context"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/sift/pkg/async"
)

// Shape maps keys to their validators. Keys are declared in sorted order.
type Shape map[string]Validator

// Field is a named entry of a keyed-map schema.
type Field struct {
	Name      string
	Validator Validator
}

func (s Shape) fields() []Field {
	fields := make([]Field, 0, len(s))
	for _, k := range sortedKeys(s) {
		fields = append(fields, Field{Name: k, Validator: s[k]})
	}
	return fields
}

// AdditionalMode selects how keys outside the schema and the pattern rules are handled.
type AdditionalMode uint8

const (
	AdditionalAllow AdditionalMode = iota
	AdditionalForbid
	AdditionalValidate
)

// Additional is an additional-properties policy.
type Additional struct {
	Mode      AdditionalMode
	Validator Validator
}

// AllowAdditional keeps unknown keys unchanged. It is the default policy.
func AllowAdditional() Additional { return Additional{Mode: AdditionalAllow} }

// ForbidAdditional rejects a map holding unknown keys with one failure naming all of them.
func ForbidAdditional() Additional { return Additional{Mode: AdditionalForbid} }

// AdditionalWith validates every unknown key's value with v.
func AdditionalWith(v Validator) Additional {
	return Additional{Mode: AdditionalValidate, Validator: v}
}

// PatternRule validates values of undeclared keys matching Pattern.
type PatternRule struct {
	Pattern   string
	Validator Validator
	re        *regexp.Regexp
}

// DictValidator validates a map with string keys.
type DictValidator struct {
	base
	fields     []Field
	index      map[string]int
	required   []string
	additional Additional
	patterns   []PatternRule
	minProps   int
	maxProps   int
	skip       map[string]struct{}
}

// DictInfo is the read-only configuration of a DictValidator.
type DictInfo struct {
	Fields        []Field
	Required      []string
	Additional    Additional
	Patterns      []PatternRule
	MinProperties *int
	MaxProperties *int
}

// Dict builds a keyed-map validator from shape. Keys whose validator is
// neither optional nor nullable are required.
func Dict(shape Shape) DictValidator {
	return DictFields(shape.fields()...)
}

// DictFields is like Dict but keeps the declaration order of fields.
func DictFields(fields ...Field) DictValidator {
	d := DictValidator{minProps: -1, maxProps: -1}
	d = d.withFields(slices.Clone(fields))
	d.required = derivedRequired(fields)
	return d
}

func (d DictValidator) withFields(fields []Field) DictValidator {
	d.fields = fields
	d.index = make(map[string]int, len(fields))
	for i, f := range fields {
		d.index[f.Name] = i
	}
	return d
}

func derivedRequired(fields []Field) []string {
	var required []string
	for _, f := range fields {
		if f.Validator.Options().Required() {
			required = append(required, f.Name)
		}
	}
	slices.Sort(required)
	return required
}

func (d DictValidator) Kind() Kind { return KindDict }

func (d DictValidator) Optional() DictValidator {
	d.opts = d.opts.withOptional()
	return d
}

func (d DictValidator) Nullable() DictValidator {
	d.opts = d.opts.withNullable()
	return d
}

func (d DictValidator) Default(value any) DictValidator {
	d.opts = d.opts.withDefault(value)
	return d
}

func (d DictValidator) DefaultFunc(fn func() any) DictValidator {
	d.opts = d.opts.withDefault(fn)
	return d
}

func (d DictValidator) Error(message string) DictValidator {
	d.opts = d.opts.withMessage(message)
	return d
}

// Required replaces the derived set of required keys.
func (d DictValidator) Required(keys ...string) DictValidator {
	required := slices.Clone(keys)
	slices.Sort(required)
	d.required = slices.Compact(required)
	return d
}

func (d DictValidator) AdditionalProperties(policy Additional) DictValidator {
	d.additional = policy
	return d
}

// PatternProperty validates undeclared keys that match expr at their start
// with v. Registering the same expression again replaces the earlier rule. It
// panics if expr does not compile.
func (d DictValidator) PatternProperty(expr string, v Validator) DictValidator {
	rule := PatternRule{Pattern: expr, Validator: v, re: mustCompile(expr)}
	patterns := slices.Clone(d.patterns)
	if i := slices.IndexFunc(patterns, func(r PatternRule) bool { return r.Pattern == expr }); i >= 0 {
		patterns[i] = rule
	} else {
		patterns = append(patterns, rule)
	}
	d.patterns = patterns
	return d
}

func (d DictValidator) MinProperties(n int) DictValidator {
	d.minProps = n
	return d
}

func (d DictValidator) MaxProperties(n int) DictValidator {
	d.maxProps = n
	return d
}

// FieldNames returns the declared keys in declaration order.
func (d DictValidator) FieldNames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

func (d DictValidator) Info() DictInfo {
	info := DictInfo{
		Fields:     slices.Clone(d.fields),
		Required:   slices.Clone(d.required),
		Additional: d.additional,
		Patterns:   slices.Clone(d.patterns),
	}
	if d.minProps >= 0 {
		info.MinProperties = ptr(d.minProps)
	}
	if d.maxProps >= 0 {
		info.MaxProperties = ptr(d.maxProps)
	}
	return info
}

func (d DictValidator) Validate(data any) (any, error) {
	return Validate(d, data)
}

func (d DictValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, d, data)
}

// dictPlan partitions the keys of one input map.
type dictPlan struct {
	input    map[string]any
	out      map[string]any
	present  []Field
	patterns []string
	extra    []string
}

func (d DictValidator) prepare(data any, path Path) (*dictPlan, error) {
	m, ok := asMap(data)
	if !ok {
		return nil, typeMismatch(path, "object", data)
	}

	if err := checkCount(path, len(m), false, d.minProps, d.maxProps, "properties"); err != nil {
		return nil, err
	}

	var missing []string
	for _, k := range d.required {
		if _, skipped := d.skip[k]; skipped {
			continue
		}
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, newFailure(CodeMissingKeys, path,
			"missing required keys: "+joinKeys(missing),
			map[string]any{"keys": strings.Join(missing, ", ")})
	}

	p := &dictPlan{input: m, out: make(map[string]any, len(m))}
	for _, f := range d.fields {
		if _, skipped := d.skip[f.Name]; skipped {
			continue
		}
		if _, ok := m[f.Name]; ok {
			p.present = append(p.present, f)
			continue
		}
		if opts := f.Validator.Options(); opts.HasDefault() {
			p.out[f.Name] = opts.Default()
		}
	}

	for _, k := range sortedKeys(m) {
		_, declared := d.index[k]
		_, skipped := d.skip[k]
		switch {
		case skipped:
			p.out[k] = m[k]
		case declared:
		case d.matchesPattern(k):
			p.patterns = append(p.patterns, k)
		default:
			p.extra = append(p.extra, k)
		}
	}
	return p, nil
}

func (d DictValidator) matchesPattern(key string) bool {
	for _, r := range d.patterns {
		if r.re.MatchString(key) {
			return true
		}
	}
	return false
}

// checkPatterns runs every rule matching key in registration order, feeding
// each rule's output into the next.
func (d DictValidator) checkPatterns(ctx context.Context, key string, value any, path Path, concurrent bool) (any, error) {
	var err error
	for _, r := range d.patterns {
		if !r.re.MatchString(key) {
			continue
		}
		if concurrent {
			value, err = validateAtAsync(ctx, r.Validator, value, path)
		} else {
			value, err = validateAt(r.Validator, value, path)
		}
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (d DictValidator) forbidden(path Path, keys []string) *Failure {
	return newFailure(CodeUnrecognizedKeys, path,
		"unrecognized keys: "+joinKeys(keys),
		map[string]any{"keys": strings.Join(keys, ", ")})
}

func (d DictValidator) Check(data any, path Path) (any, error) {
	p, err := d.prepare(data, path)
	if err != nil {
		return nil, err
	}

	for _, f := range p.present {
		v, err := validateAt(f.Validator, p.input[f.Name], path.Append(Key(f.Name)))
		if err != nil {
			return nil, err
		}
		p.out[f.Name] = v
	}

	for _, k := range p.patterns {
		v, err := d.checkPatterns(context.Background(), k, p.input[k], path.Append(Key(k)), false)
		if err != nil {
			return nil, err
		}
		p.out[k] = v
	}

	switch d.additional.Mode {
	case AdditionalForbid:
		if len(p.extra) > 0 {
			return nil, d.forbidden(path, p.extra)
		}
	case AdditionalValidate:
		for _, k := range p.extra {
			v, err := validateAt(d.additional.Validator, p.input[k], path.Append(Key(k)))
			if err != nil {
				return nil, err
			}
			p.out[k] = v
		}
	default:
		for _, k := range p.extra {
			p.out[k] = p.input[k]
		}
	}

	return p.out, nil
}

// CheckAsync launches schema, pattern and additional-property validations
// before awaiting any of them. Schema keys are gathered together and report
// the first failure in declaration order; pattern and additional results are
// then consumed one key at a time in sorted key order.
func (d DictValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	p, err := d.prepare(data, path)
	if err != nil {
		return nil, err
	}

	schema := make([]*async.Future[any], len(p.present))
	for i, f := range p.present {
		schema[i] = async.Async(ctx, p.input[f.Name], func(ctx context.Context, value any) (any, error) {
			return validateAtAsync(ctx, f.Validator, value, path.Append(Key(f.Name)))
		})
	}

	patterns := make([]*async.Future[any], len(p.patterns))
	for i, k := range p.patterns {
		patterns[i] = async.Async(ctx, p.input[k], func(ctx context.Context, value any) (any, error) {
			return d.checkPatterns(ctx, k, value, path.Append(Key(k)), true)
		})
	}

	var extra []*async.Future[any]
	if d.additional.Mode == AdditionalValidate {
		extra = make([]*async.Future[any], len(p.extra))
		for i, k := range p.extra {
			extra[i] = async.Async(ctx, p.input[k], func(ctx context.Context, value any) (any, error) {
				return validateAtAsync(ctx, d.additional.Validator, value, path.Append(Key(k)))
			})
		}
	}

	values, err := async.WaitAll(schema...)
	if err != nil {
		return nil, err
	}
	for i, f := range p.present {
		p.out[f.Name] = values[i]
	}

	for i, k := range p.patterns {
		v, err := patterns[i].Await()
		if err != nil {
			return nil, err
		}
		p.out[k] = v
	}

	switch d.additional.Mode {
	case AdditionalForbid:
		if len(p.extra) > 0 {
			return nil, d.forbidden(path, p.extra)
		}
	case AdditionalValidate:
		for i, k := range p.extra {
			v, err := extra[i].Await()
			if err != nil {
				return nil, err
			}
			p.out[k] = v
		}
	default:
		for _, k := range p.extra {
			p.out[k] = p.input[k]
		}
	}

	return p.out, nil
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	if s == nil {
		return make(map[string]struct{})
	}
	return maps.Clone(s)
}
