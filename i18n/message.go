package i18n

type PartKind uint8

const (
	PartText PartKind = iota
	PartParameter
	PartPlural
)

func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartParameter:
		return "parameter"
	case PartPlural:
		return "plural"
	default:
		return "unknown"
	}
}

// Part is one piece of a parsed message: TextPart, ParameterPart or
// PluralPart.
type Part interface {
	Kind() PartKind
}

type TextPart struct {
	Content string
}

func (TextPart) Kind() PartKind { return PartText }

// ParameterPart is an argument interpolation such as {name:string|upper}.
type ParameterPart struct {
	Key        string
	Type       string
	Optional   bool
	Transforms []Transform
}

func (ParameterPart) Kind() PartKind { return PartParameter }

// PluralPart picks one of its categories from a numeric argument. Only
// Other is always present.
type PluralPart struct {
	Key   string
	Zero  *string
	One   *string
	Two   *string
	Few   *string
	Many  *string
	Other string
}

func (PluralPart) Kind() PartKind { return PartPlural }

func (p PluralPart) categories() Categories {
	other := p.Other
	return Categories{
		Default: &other,
		Zero:    p.Zero,
		One:     p.One,
		Two:     p.Two,
		Few:     p.Few,
		Many:    p.Many,
		Other:   &other,
	}
}

type TransformKind uint8

const (
	TransformFormatter TransformKind = iota
	TransformSwitchCase
)

func (k TransformKind) String() string {
	if k == TransformSwitchCase {
		return "switch-case"
	}
	return "formatter"
}

// Transform is applied to a parameter value: FormatterTransform or
// SwitchCaseTransform.
type Transform interface {
	Kind() TransformKind
}

type FormatterTransform struct {
	Name string
}

func (FormatterTransform) Kind() TransformKind { return TransformFormatter }

type SwitchCase struct {
	Key   string
	Value string
}

type SwitchCaseTransform struct {
	Cases []SwitchCase
	Raw   string
}

func (SwitchCaseTransform) Kind() TransformKind { return TransformSwitchCase }

// Message is an immutable parsed template.
type Message []Part

// NeedsArgs reports whether rendering the message requires arguments, that
// is whether it has a plural or a required parameter.
func (m Message) NeedsArgs() bool {
	for _, p := range m {
		switch p := p.(type) {
		case PluralPart:
			return true
		case ParameterPart:
			if !p.Optional {
				return true
			}
		}
	}
	return false
}

// Keys lists argument keys in order of first use.
func (m Message) Keys() []string {
	var keys []string
	seen := map[string]struct{}{}
	add := func(k string) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, p := range m {
		switch p := p.(type) {
		case ParameterPart:
			add(p.Key)
		case PluralPart:
			add(p.Key)
		}
	}
	return keys
}
