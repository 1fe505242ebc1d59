package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Formatter transforms a parameter value. Its result feeds the next
// transform of the chain.
type Formatter func(value any) (string, error)

// DefaultFormatters returns upper, lower, capitalize and title. A missing
// value formats as the empty string.
func DefaultFormatters() map[string]Formatter {
	// a Caser keeps state between calls so each call gets its own
	return map[string]Formatter{
		"upper": func(v any) (string, error) {
			return cases.Upper(language.Und).String(stringify(v)), nil
		},
		"lower": func(v any) (string, error) {
			return cases.Lower(language.Und).String(stringify(v)), nil
		},
		"capitalize": func(v any) (string, error) {
			s := stringify(v)
			r, size := utf8.DecodeRuneInString(s)
			if size == 0 {
				return "", nil
			}
			return string(unicode.ToUpper(r)) + s[size:], nil
		},
		"title": func(v any) (string, error) {
			return cases.Title(language.Und).String(stringify(v)), nil
		},
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func applyTransforms(formatters map[string]Formatter, transforms []Transform, initial any) (any, error) {
	value := initial
	for _, t := range transforms {
		switch t := t.(type) {
		case FormatterTransform:
			format, ok := formatters[t.Name]
			if !ok {
				return nil, &UnknownFormatterError{Name: t.Name}
			}
			formatted, err := format(value)
			if err != nil {
				return nil, fmt.Errorf("formatter %q: %w", t.Name, err)
			}
			value = formatted
		case SwitchCaseTransform:
			value = selectCase(t.Cases, value)
		}
	}
	return value, nil
}

func selectCase(cases []SwitchCase, value any) string {
	if value != nil {
		s := stringify(value)
		for _, c := range cases {
			if c.Key == s {
				return c.Value
			}
		}
	}
	for _, c := range cases {
		if c.Key == "*" {
			return c.Value
		}
	}
	return ""
}

// toCount converts numeric arguments for plural selection.
func toCount(v any) *float64 {
	var n float64
	switch v := v.(type) {
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case float32:
		n = float64(v)
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}
