package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no other language is configured.
const DefaultLanguage = "en"

// languageMatcher maps arbitrary BCP 47 tags onto the loaded catalog
// languages.
type languageMatcher struct {
	langs    []string
	fallback string
	matcher  language.Matcher
}

// newLanguageMatcher puts the fallback first so the x/text matcher
// returns it for tags with no reasonable match.
func newLanguageMatcher(supported []string, fallback string) *languageMatcher {
	langs := make([]string, 0, len(supported)+1)
	langs = append(langs, fallback)
	for _, l := range supported {
		if l != fallback {
			langs = append(langs, l)
		}
	}

	tags := make([]language.Tag, 0, len(langs))
	kept := make([]string, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, l)
	}

	m := &languageMatcher{langs: kept, fallback: fallback}
	if len(tags) > 0 {
		m.matcher = language.NewMatcher(tags)
	}
	return m
}

func (m *languageMatcher) match(lang string) string {
	if lang == "" || m.matcher == nil {
		return m.fallback
	}
	for _, l := range m.langs {
		if l == lang {
			return l
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return m.fallback
	}
	_, idx, conf := m.matcher.Match(tag)
	if conf == language.No {
		return m.fallback
	}
	return m.langs[idx]
}
