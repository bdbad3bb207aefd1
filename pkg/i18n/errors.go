package i18n

import "errors"

var (
	ErrNilAdapter         = errors.New("i18n: adapter is nil")
	ErrFailedToParseJSON  = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML  = errors.New("i18n: failed to parse YAML content")
	ErrInvalidCatalog     = errors.New("i18n: invalid translation catalog")
	ErrUnsupportedFormat  = errors.New("i18n: unsupported translation file format")
	ErrFailedToReadFile   = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir    = errors.New("i18n: failed to read translation directory")
	ErrParsingCancelled   = errors.New("i18n: parsing cancelled")
	ErrLoadingCancelled   = errors.New("i18n: loading translations cancelled")
	ErrEmptyLanguageCode  = errors.New("i18n: empty language code")
	ErrNilTranslationsMap = errors.New("i18n: nil translations map")
)
