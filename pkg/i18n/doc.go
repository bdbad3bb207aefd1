// Package i18n loads translation catalogs and renders localized messages.
//
// Catalogs are JSON or YAML documents whose top-level keys are language
// codes. Nested maps are addressed with dot-separated keys and templates
// use named placeholders in the form %{name}:
//
//	en:
//	  validation:
//	    length: "must be at least %{min} characters long"
//
// Translations are loaded through a TranslationAdapter. MapAdapter serves
// an in-memory map and FSAdapter reads every catalog file in a directory
// of any fs.FS, including os.DirFS and embed.FS:
//
//	//go:embed locales
//	var locales embed.FS
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//	lang := tr.Match("de-AT") // "de" when a German catalog is loaded
//	msg := tr.Td(lang, "validation.length", "too short", "min", "3")
//
// Translator satisfies the validator.Translator interface so validation
// failures can be localized directly with Failure.Localize.
package i18n
