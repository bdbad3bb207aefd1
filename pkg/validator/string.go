package validator

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// String formats, named after their JSON Schema counterparts.
const (
	FormatEmail    = "email"
	FormatURL      = "uri"
	FormatUUID     = "uuid"
	FormatDateTime = "date-time"
	FormatDate     = "date"
)

var formatMessages = map[string]string{
	FormatEmail:    "must be a valid email address",
	FormatURL:      "must be a valid URL",
	FormatUUID:     "must be a valid UUID",
	FormatDateTime: "must be a valid RFC 3339 date-time",
	FormatDate:     "must be a valid date (YYYY-MM-DD)",
}

// StringValidator validates text. Transforms run before any check.
type StringValidator struct {
	base
	min        int
	max        int
	pattern    *regexp.Regexp
	patternSrc string
	format     string
	nonempty   bool
	transforms []string
}

// StringInfo is the read-only configuration of a StringValidator.
type StringInfo struct {
	MinLength  *int
	MaxLength  *int
	Pattern    string
	Format     string
	Nonempty   bool
	Transforms []string
}

func String() StringValidator {
	return StringValidator{min: -1, max: -1}
}

func (s StringValidator) Kind() Kind { return KindString }

func (s StringValidator) Optional() StringValidator {
	s.opts = s.opts.withOptional()
	return s
}

func (s StringValidator) Nullable() StringValidator {
	s.opts = s.opts.withNullable()
	return s
}

// Default sets the value returned for nil input. A func() any is called on every use.
func (s StringValidator) Default(value any) StringValidator {
	s.opts = s.opts.withDefault(value)
	return s
}

func (s StringValidator) DefaultFunc(fn func() any) StringValidator {
	s.opts = s.opts.withDefault(fn)
	return s
}

// Error replaces the message of any failure raised by this validator.
func (s StringValidator) Error(message string) StringValidator {
	s.opts = s.opts.withMessage(message)
	return s
}

// Min requires at least n characters.
func (s StringValidator) Min(n int) StringValidator {
	s.min = n
	return s
}

// Max allows at most n characters.
func (s StringValidator) Max(n int) StringValidator {
	s.max = n
	return s
}

// Length requires exactly n characters.
func (s StringValidator) Length(n int) StringValidator {
	s.min, s.max = n, n
	return s
}

// Pattern requires expr to match at the start of the value; end it with $ to
// match the whole string. It panics if expr does not compile.
func (s StringValidator) Pattern(expr string) StringValidator {
	s.pattern = mustCompile(expr)
	s.patternSrc = expr
	return s
}

func (s StringValidator) Nonempty() StringValidator {
	s.nonempty = true
	return s
}

func (s StringValidator) Email() StringValidator    { return s.withFormat(FormatEmail) }
func (s StringValidator) URL() StringValidator      { return s.withFormat(FormatURL) }
func (s StringValidator) UUID() StringValidator     { return s.withFormat(FormatUUID) }
func (s StringValidator) Datetime() StringValidator { return s.withFormat(FormatDateTime) }
func (s StringValidator) Date() StringValidator     { return s.withFormat(FormatDate) }

func (s StringValidator) withFormat(format string) StringValidator {
	s.format = format
	return s
}

// Trim strips leading and trailing white space before validation.
func (s StringValidator) Trim() StringValidator { return s.withTransform("trim") }

func (s StringValidator) Lowercase() StringValidator { return s.withTransform("lowercase") }

func (s StringValidator) Uppercase() StringValidator { return s.withTransform("uppercase") }

func (s StringValidator) withTransform(name string) StringValidator {
	s.transforms = append(s.transforms[:len(s.transforms):len(s.transforms)], name)
	return s
}

func (s StringValidator) Info() StringInfo {
	info := StringInfo{
		Format:     s.format,
		Nonempty:   s.nonempty,
		Transforms: append([]string(nil), s.transforms...),
	}
	if s.min >= 0 {
		info.MinLength = ptr(s.min)
	}
	if s.max >= 0 {
		info.MaxLength = ptr(s.max)
	}
	if s.pattern != nil {
		info.Pattern = s.patternSrc
	}
	return info
}

func (s StringValidator) Validate(data any) (any, error) {
	return Validate(s, data)
}

func (s StringValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, s, data)
}

func (s StringValidator) CheckAsync(_ context.Context, data any, path Path) (any, error) {
	return s.Check(data, path)
}

func (s StringValidator) Check(data any, path Path) (any, error) {
	value, ok := asString(data)
	if !ok {
		return nil, typeMismatch(path, "string", data)
	}

	value = applyTransforms(value, s.transforms)
	length := utf8.RuneCountInString(value)

	switch {
	case s.nonempty && length == 0:
		return nil, newFailure(CodeLength, path, "must not be empty", nil)
	case s.min >= 0 && s.min == s.max && length != s.min:
		return nil, newFailure(CodeLength, path,
			fmt.Sprintf("must be exactly %d characters long", s.min),
			map[string]any{"length": s.min})
	case s.min >= 0 && length < s.min:
		return nil, newFailure(CodeLength, path,
			fmt.Sprintf("must be at least %d characters long", s.min),
			map[string]any{"min": s.min})
	case s.max >= 0 && length > s.max:
		return nil, newFailure(CodeLength, path,
			fmt.Sprintf("must be at most %d characters long", s.max),
			map[string]any{"max": s.max})
	}

	if s.pattern != nil && !s.pattern.MatchString(value) {
		return nil, newFailure(CodePattern, path,
			fmt.Sprintf("must match pattern %s", s.patternSrc),
			map[string]any{"pattern": s.patternSrc})
	}

	if s.format != "" && !checkFormat(s.format, value) {
		return nil, newFailure(CodeFormat, path, formatMessages[s.format],
			map[string]any{"format": s.format})
	}

	return value, nil
}

func asString(data any) (string, bool) {
	if s, ok := data.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

var stringTransforms = map[string]func(string) string{
	"trim":      strings.TrimSpace,
	"lowercase": func(s string) string { return lowerCaser.String(s) },
	"uppercase": func(s string) string { return upperCaser.String(s) },
}

func applyTransforms(value string, names []string) string {
	for _, name := range names {
		value = stringTransforms[name](value)
	}
	return value
}

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func checkFormat(format, value string) bool {
	switch format {
	case FormatEmail:
		return isEmail(value)
	case FormatURL:
		u, err := url.Parse(value)
		return err == nil && u.Scheme != "" && u.Host != ""
	case FormatUUID:
		_, err := uuid.Parse(value)
		return err == nil
	case FormatDateTime:
		_, err := time.Parse(time.RFC3339, value)
		return err == nil
	case FormatDate:
		if !dateRegex.MatchString(value) {
			return false
		}
		_, err := time.Parse(time.DateOnly, value)
		return err == nil
	}
	return true
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// mustCompile compiles expr anchored at the start of the input.
func mustCompile(expr string) *regexp.Regexp {
	if _, err := regexp.Compile(expr); err != nil {
		panic(fmt.Errorf("%w: %q: %w", ErrInvalidPattern, expr, err))
	}
	return regexp.MustCompile(`\A(?:` + expr + `)`)
}

func typeMismatch(path Path, expected string, data any) *Failure {
	actual := typeName(data)
	return newFailure(CodeInvalidType, path,
		fmt.Sprintf("expected %s, got %s", expected, actual),
		map[string]any{"expected": expected, "actual": actual})
}

func typeName(data any) string {
	switch data.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toFloat(data); ok {
		return "number"
	}
	switch reflect.ValueOf(data).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return fmt.Sprintf("%T", data)
}

func ptr[T any](v T) *T {
	return &v
}
