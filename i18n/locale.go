package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// normalizeLocale parses a BCP 47 tag and drops its extensions, leaving
// language, script, region and variants.
func normalizeLocale(locale string) (language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	base, script, region := tag.Raw()
	return language.Compose(base, script, region, tag.Variants())
}

func primaryLanguage(tag language.Tag) string {
	base, _, _ := tag.Raw()
	return base.String()
}
