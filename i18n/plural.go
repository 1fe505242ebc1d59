package i18n

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Categories holds the strings a plural can choose from. Nil means absent.
type Categories struct {
	Default *string
	Zero    *string
	One     *string
	Two     *string
	Few     *string
	Many    *string
	Other   *string
}

// PluralResolver picks a category for count, which is nil when the argument
// is missing or not a number.
type PluralResolver func(locale language.Tag, values Categories, count *float64) string

func firstOf(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

// EnglishPlural buckets counts by range:
//
//	0 or missing  zero
//	1             one
//	2             two
//	3 to 6        few
//	7 to 10       many
//	anything else other, then many
//
// An absent category falls back to the default.
func EnglishPlural(_ language.Tag, values Categories, count *float64) string {
	if count == nil || *count == 0 {
		return firstOf(values.Zero, values.Default)
	}
	switch n := *count; {
	case n == 1:
		return firstOf(values.One, values.Default)
	case n == 2:
		return firstOf(values.Two, values.Default)
	case n >= 3 && n <= 6:
		return firstOf(values.Few, values.Default)
	case n >= 7 && n <= 10:
		return firstOf(values.Many, values.Default)
	default:
		return firstOf(values.Other, values.Many, values.Default)
	}
}

// CLDRPlural selects with the CLDR cardinal rules of the locale. An explicit
// zero wins for a count of 0. Absent one and two render empty while absent
// few and many fall back to other.
func CLDRPlural(locale language.Tag, values Categories, count *float64) string {
	other := firstOf(values.Other, values.Default)
	if count == nil || math.IsNaN(*count) || math.IsInf(*count, 0) {
		return other
	}
	if values.Zero != nil && *count == 0 {
		return *values.Zero
	}

	switch cardinal(locale, *count) {
	case plural.Zero:
		return firstOf(values.Zero)
	case plural.One:
		return firstOf(values.One)
	case plural.Two:
		return firstOf(values.Two)
	case plural.Few:
		return firstOf(values.Few, &other)
	case plural.Many:
		return firstOf(values.Many, &other)
	default:
		return other
	}
}

// cardinal derives the CLDR operands from the decimal representation of n.
func cardinal(locale language.Tag, n float64) plural.Form {
	s := strconv.FormatFloat(math.Abs(n), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	i, err := strconv.Atoi(intPart)
	if err != nil {
		return plural.Other
	}
	v, f := len(frac), 0
	if v > 0 {
		if f, err = strconv.Atoi(frac); err != nil {
			return plural.Other
		}
	}
	trimmed := strings.TrimRight(frac, "0")
	w, t := len(trimmed), 0
	if w > 0 {
		if t, err = strconv.Atoi(trimmed); err != nil {
			return plural.Other
		}
	}
	return plural.Cardinal.MatchPlural(locale, i, v, w, f, t)
}
