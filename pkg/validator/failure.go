package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Failure codes. The translation key of a failure is "validation." + code.
const (
	CodeInvalidType      = "invalid_type"
	CodeRequired         = "required"
	CodeLength           = "length"
	CodeRange            = "range"
	CodePattern          = "pattern"
	CodeFormat           = "format"
	CodeUnique           = "unique"
	CodeMissingKeys      = "missing_keys"
	CodeUnrecognizedKeys = "unrecognized_keys"
	CodeInvalidUnion     = "invalid_union"
	CodeCustom           = "custom"
	CodeMultiple         = "multiple"
)

// Failure is a validation error located at a path inside the input.
type Failure struct {
	Code              string
	Message           string
	Path              Path
	TranslationKey    string
	TranslationValues map[string]any

	// Label names the failure inside its parent's Entries ("Option 2").
	Label string
	// Entries holds the sibling failures joined into this one.
	Entries Failures

	summary string
	cause   error
}

// NewFailure creates a failure with the translation key derived from code.
func NewFailure(code string, path Path, message string) *Failure {
	return &Failure{
		Code:           code,
		Message:        message,
		Path:           path,
		TranslationKey: "validation." + code,
	}
}

func newFailure(code string, path Path, message string, values map[string]any) *Failure {
	f := NewFailure(code, path, message)
	f.TranslationValues = values
	return f
}

func (f *Failure) Error() string {
	return f.Path.String() + ": " + f.Message
}

func (f *Failure) Is(target error) bool {
	return target == ErrValidationFailed
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// withMessage returns a copy of f carrying message instead of its own.
// The path and code stay untouched.
func (f *Failure) withMessage(message string) *Failure {
	out := *f
	out.Message = message
	out.TranslationKey = ""
	out.TranslationValues = nil
	out.summary = ""
	out.Entries = nil
	return &out
}

// joinFailures builds one failure at path whose message is summary followed by
// one line per entry.
func joinFailures(code string, path Path, summary string, entries Failures) *Failure {
	f := NewFailure(code, path, summary)
	f.summary = summary
	f.Entries = entries

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, summary)
	for _, e := range entries {
		lines = append(lines, e.line(path, e.Message, e.Error()))
	}
	f.Message = strings.Join(lines, "\n")
	return f
}

func (f *Failure) line(parent Path, message, rendered string) string {
	body := rendered
	if f.Path.Equal(parent) {
		body = message
	}
	if f.Label != "" {
		return f.Label + ": " + body
	}
	return body
}

// Merge joins sibling failures into one report rooted at path. Failures at
// identical paths are all kept, in the given order.
func Merge(path Path, failures ...*Failure) *Failure {
	entries := make(Failures, 0, len(failures))
	for _, f := range failures {
		if f != nil {
			entries = append(entries, f)
		}
	}
	f := joinFailures(CodeMultiple, path, "multiple validation errors", entries)
	f.TranslationValues = map[string]any{"count": len(entries)}
	return f
}

// Translator renders a translation key, falling back to defaultValue.
// *i18n.Translator satisfies it.
type Translator interface {
	Td(lang, key, defaultValue string, args ...string) string
}

// Localize renders the failure message in lang. Failures without a translation
// key (for example those carrying a custom message) keep their message.
func (f *Failure) Localize(t Translator, lang string) string {
	text := f.Message
	if f.summary != "" {
		text = f.summary
	}
	if t != nil && f.TranslationKey != "" {
		text = t.Td(lang, f.TranslationKey, text, f.translationArgs()...)
	}
	if len(f.Entries) == 0 || f.summary == "" {
		return text
	}

	lines := []string{text}
	for _, e := range f.Entries {
		msg := e.Localize(t, lang)
		lines = append(lines, e.line(f.Path, msg, e.Path.String()+": "+msg))
	}
	return strings.Join(lines, "\n")
}

func (f *Failure) translationArgs() []string {
	keys := make([]string, 0, len(f.TranslationValues))
	for k := range f.TranslationValues {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fmt.Sprint(f.TranslationValues[k]))
	}
	return args
}

// Failures is an ordered list of failures.
type Failures []*Failure

func (fs Failures) Error() string {
	if len(fs) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fs Failures) Is(target error) bool {
	return target == ErrValidationFailed
}

// Has reports whether any failure is located at path (rendered form, e.g. "$.name").
func (fs Failures) Has(path string) bool {
	for _, f := range fs {
		if f.Path.String() == path {
			return true
		}
	}
	return false
}

// Get returns the messages of every failure located at path.
func (fs Failures) Get(path string) []string {
	var messages []string
	for _, f := range fs {
		if f.Path.String() == path {
			messages = append(messages, f.Message)
		}
	}
	return messages
}

// Fields returns the distinct rendered paths in first-seen order.
func (fs Failures) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, f := range fs {
		p := f.Path.String()
		if !seen[p] {
			fields = append(fields, p)
			seen[p] = true
		}
	}
	return fields
}

func (fs Failures) IsEmpty() bool {
	return len(fs) == 0
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	if err == nil {
		return nil, false
	}

	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func IsFailure(err error) bool {
	_, ok := AsFailure(err)
	return ok
}
