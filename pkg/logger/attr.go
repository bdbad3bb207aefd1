package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors", keyed by argument index.
// It returns an empty Attr when all errors are nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error", or returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Schema records the schema source under "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Document records the validated document under "document".
func Document(name string) slog.Attr {
	return slog.String("document", name)
}

// Path records a data path such as $.items[0] under "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Code records a failure code under "code".
func Code(code string) slog.Attr {
	return slog.String("code", code)
}

func Lang(lang string) slog.Attr {
	return slog.String("lang", lang)
}
