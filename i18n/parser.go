package i18n

import (
	"regexp"
	"strings"
)

var (
	bracketsRegex   = regexp.MustCompile(`(\{(?:[^{}]+|\{(?:[^{}]+)*\})*\})`)
	switchCaseRegex = regexp.MustCompile(`^\{.*\}$`)
)

const escapedComma = "\x00comma\x00"

// Parse turns a raw template into a Message.
//
//	Hello {name:string|upper}!        text, parameter, text
//	{count:number} apple{{s}}         parameter, text, plural keyed by count
//	{{count: none | one | ?? items}}  plural with zero, one and other
//	{gender|{male: his, *: their}}    parameter with a switch-case
//
// Plurals without an explicit key use the key of the closest preceding
// number parameter or plural.
func Parse(raw string) (Message, error) {
	msg := Message{}
	lastPluralKey := ""

	pos := 0
	for _, loc := range bracketsRegex.FindAllStringIndex(raw, -1) {
		if loc[0] > pos {
			msg = append(msg, TextPart{Content: raw[pos:loc[0]]})
		}
		pos = loc[1]

		content := stripBrackets(raw[loc[0]:loc[1]])
		if strings.HasPrefix(content, "{") {
			part, err := parsePlural(stripBrackets(content), lastPluralKey)
			if err != nil {
				return nil, &PluralKeyUnresolvableError{Raw: raw, Offset: loc[0]}
			}
			lastPluralKey = part.Key
			msg = append(msg, part)
			continue
		}

		part := parseParameter(content)
		if part.Type == "number" {
			lastPluralKey = part.Key
		}
		msg = append(msg, part)
	}
	if pos < len(raw) {
		msg = append(msg, TextPart{Content: raw[pos:]})
	}

	return msg, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Message {
	msg, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return msg
}

func stripBrackets(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}

func parseParameter(content string) ParameterPart {
	segments := strings.Split(content, "|")

	keyPart, typ, hasType := strings.Cut(segments[0], ":")
	key, rest, optional := strings.Cut(keyPart, "?")
	part := ParameterPart{
		Key:        strings.TrimSpace(key),
		Type:       strings.TrimSpace(typ),
		Optional:   optional && strings.TrimSpace(rest) == "",
		Transforms: []Transform{},
	}
	if !hasType || part.Type == "" {
		part.Type = "unknown"
	}

	for _, t := range segments[1:] {
		t = strings.TrimSpace(t)
		switch {
		case t == "":
			continue
		case switchCaseRegex.MatchString(t):
			part.Transforms = append(part.Transforms, SwitchCaseTransform{
				Cases: parseSwitchCases(t),
				Raw:   t,
			})
		default:
			part.Transforms = append(part.Transforms, FormatterTransform{Name: t})
		}
	}
	return part
}

func parseSwitchCases(raw string) []SwitchCase {
	body := strings.ReplaceAll(stripBrackets(raw), `\,`, escapedComma)

	var cases []SwitchCase
	for _, entry := range strings.Split(body, ",") {
		key, value, _ := strings.Cut(entry, ":")
		c := SwitchCase{
			Key:   strings.TrimSpace(key),
			Value: strings.ReplaceAll(strings.TrimSpace(value), escapedComma, ","),
		}
		if c.Key == "" && c.Value == "" {
			continue
		}
		cases = append(cases, c)
	}
	return cases
}

// parsePlural maps the |-separated values positionally:
//
//	1: other
//	2: one, other
//	3: zero, one, other
//	4+: zero, one, two, few, many, other
func parsePlural(content, lastKey string) (PluralPart, error) {
	key, values, found := strings.Cut(content, ":")
	if !found || values == "" {
		values = key
		key = lastKey
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return PluralPart{}, ErrPluralKeyUnresolvable
	}

	entries := strings.Split(values, "|")
	at := func(i int) string {
		if i < len(entries) {
			return strings.TrimSpace(entries[i])
		}
		return ""
	}

	part := PluralPart{Key: key}
	switch len(entries) {
	case 1:
		part.Other = at(0)
	case 2:
		part.One = optional(at(0))
		part.Other = at(1)
	case 3:
		part.Zero = optional(at(0))
		part.One = optional(at(1))
		part.Other = at(2)
	default:
		part.Zero = optional(at(0))
		part.One = optional(at(1))
		part.Two = optional(at(2))
		part.Few = optional(at(3))
		part.Many = optional(at(4))
		part.Other = at(5)
	}
	return part, nil
}

// optional drops empty categories.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
