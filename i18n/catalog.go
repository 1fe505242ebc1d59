package i18n

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/language"
)

const DefaultNamespace = "default"

// Resource is a set of raw translations for one locale and namespace.
type Resource struct {
	Locale       string            `json:"locale" yaml:"locale" toml:"locale"`
	Namespace    string            `json:"namespace" yaml:"namespace" toml:"namespace"`
	Translations map[string]string `json:"translations" yaml:"translations" toml:"translations"`
}

// Args are the runtime values of a translation, keyed by parameter name.
type Args map[string]any

// Translator renders one resolved message.
type Translator func(args Args) (string, error)

// Observer receives notifications about catalog activity.
type Observer interface {
	MessagesLoaded(locale, namespace string, parsed, cached int)
	LocaleResolved(requested, resolved string, fallback bool)
}

type nopObserver struct{}

func (nopObserver) MessagesLoaded(string, string, int, int) {}
func (nopObserver) LocaleResolved(string, string, bool)     {}

type parsedText struct {
	raw string
	msg Message
}

// Catalog caches parsed messages by locale, namespace and key. Each raw
// text is parsed once no matter how many locales or keys share it.
type Catalog struct {
	mu sync.RWMutex

	formatters map[string]Formatter
	plural     PluralResolver
	logger     *slog.Logger
	observer   Observer

	// locales in load order
	locales  []string
	tags     map[string]language.Tag
	messages map[string]map[string]map[string]Message
	parsed   map[uint64]parsedText
}

type Option func(c *Catalog)

// WithFormatters adds formatters on top of the defaults, replacing those
// with the same name.
func WithFormatters(formatters map[string]Formatter) Option {
	return func(c *Catalog) {
		maps.Copy(c.formatters, formatters)
	}
}

func WithPluralResolver(r PluralResolver) Option {
	return func(c *Catalog) {
		c.plural = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(c *Catalog) {
		c.observer = o
	}
}

func New(opts ...Option) *Catalog {
	c := &Catalog{
		formatters: DefaultFormatters(),
		plural:     EnglishPlural,
		logger:     slog.Default(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Catalog) reset() {
	c.locales = nil
	c.tags = map[string]language.Tag{}
	c.messages = map[string]map[string]map[string]Message{}
	c.parsed = map[uint64]parsedText{}
}

// Clear forgets everything loaded so far.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Locales returns the loaded locales in load order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.locales)
}

// Load parses and caches the translations of r. Keys already cached for the
// same locale and namespace keep their first translation. Nothing is cached
// when one of the translations fails to parse.
func (c *Catalog) Load(r Resource) error {
	tag, err := normalizeLocale(r.Locale)
	if err != nil {
		return err
	}
	locale := tag.String()
	namespace := r.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.messages[locale][namespace]
	fresh := map[string]Message{}
	parsedNow := map[uint64]parsedText{}
	for _, key := range slices.Sorted(maps.Keys(r.Translations)) {
		if _, ok := existing[key]; ok {
			continue
		}
		raw := r.Translations[key]
		h := xxhash.Sum64String(raw)
		if p, ok := c.parsed[h]; ok && p.raw == raw {
			fresh[key] = p.msg
			continue
		}
		if p, ok := parsedNow[h]; ok && p.raw == raw {
			fresh[key] = p.msg
			continue
		}
		msg, err := Parse(raw)
		if err != nil {
			return fmt.Errorf("load %s/%s key %q: %w", locale, namespace, key, err)
		}
		parsedNow[h] = parsedText{raw: raw, msg: msg}
		fresh[key] = msg
	}

	if _, ok := c.messages[locale]; !ok {
		c.messages[locale] = map[string]map[string]Message{}
		c.tags[locale] = tag
		c.locales = append(c.locales, locale)
	}
	if existing == nil {
		existing = map[string]Message{}
		c.messages[locale][namespace] = existing
	}
	maps.Copy(existing, fresh)
	for h, p := range parsedNow {
		if _, ok := c.parsed[h]; !ok {
			c.parsed[h] = p
		}
	}

	c.logger.Debug("translations loaded", "locale", locale, "namespace", namespace, "keys", len(fresh))
	c.observer.MessagesLoaded(locale, namespace, len(parsedNow), len(fresh)-len(parsedNow))
	return nil
}

// LoadAll loads resources in order and stops at the first error.
func (c *Catalog) LoadAll(resources ...Resource) error {
	for _, r := range resources {
		if err := c.Load(r); err != nil {
			return err
		}
	}
	return nil
}

// lookup finds a message trying the exact locale, then the first loaded
// locale with the same language, then the first loaded locale.
func (c *Catalog) lookup(locale, namespace, key string) (Message, language.Tag, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	notFound := &LocaleNotFoundError{Locale: locale, Namespace: namespace, Key: key}
	if len(c.locales) == 0 {
		return nil, language.Und, notFound
	}

	get := func(l string) (Message, bool) {
		msg, ok := c.messages[l][namespace][key]
		return msg, ok
	}
	resolved := func(l string, fallback bool) (Message, language.Tag, error) {
		msg, _ := get(l)
		c.observer.LocaleResolved(locale, l, fallback)
		if fallback {
			c.logger.Debug("locale fallback", "requested", locale, "resolved", l, "namespace", namespace, "key", key)
		}
		return msg, c.tags[l], nil
	}

	tag, err := normalizeLocale(locale)
	if err == nil {
		requested := tag.String()
		if _, ok := get(requested); ok {
			return resolved(requested, false)
		}
		lang := primaryLanguage(tag)
		for _, l := range c.locales {
			if primaryLanguage(c.tags[l]) != lang {
				continue
			}
			if _, ok := get(l); ok {
				return resolved(l, true)
			}
		}
	}

	if _, ok := get(c.locales[0]); ok {
		return resolved(c.locales[0], true)
	}
	return nil, language.Und, notFound
}

// Resolve returns the translator of key for the best matching locale.
func (c *Catalog) Resolve(locale, namespace, key string) (Translator, error) {
	msg, tag, err := c.lookup(locale, namespace, key)
	if err != nil {
		return nil, err
	}
	return c.translator(msg, tag, namespace, key), nil
}

// Translate resolves and renders key in one call.
func (c *Catalog) Translate(locale, namespace, key string, args Args) (string, error) {
	t, err := c.Resolve(locale, namespace, key)
	if err != nil {
		return "", err
	}
	return t(args)
}

// Translations resolves every key of namespace, taking the key set from the
// first loaded locale.
func (c *Catalog) Translations(locale, namespace string) (map[string]Translator, error) {
	c.mu.RLock()
	if len(c.locales) == 0 {
		c.mu.RUnlock()
		return nil, &LocaleNotFoundError{Locale: locale, Namespace: namespace}
	}
	keys := slices.Sorted(maps.Keys(c.messages[c.locales[0]][namespace]))
	c.mu.RUnlock()

	translators := make(map[string]Translator, len(keys))
	for _, key := range keys {
		t, err := c.Resolve(locale, namespace, key)
		if err != nil {
			return nil, err
		}
		translators[key] = t
	}
	return translators, nil
}

func (c *Catalog) translator(msg Message, tag language.Tag, namespace, key string) Translator {
	formatters, resolvePlural := c.formatters, c.plural
	return func(args Args) (string, error) {
		if len(args) == 0 && msg.NeedsArgs() {
			return "", &MissingArgumentsError{Namespace: namespace, Key: key}
		}

		var sb strings.Builder
		for _, part := range msg {
			switch p := part.(type) {
			case TextPart:
				sb.WriteString(p.Content)

			case PluralPart:
				value := args[p.Key]
				chosen := resolvePlural(tag, p.categories(), toCount(value))
				sb.WriteString(strings.ReplaceAll(chosen, "??", stringify(value)))

			case ParameterPart:
				value := args[p.Key]
				if len(p.Transforms) > 0 {
					transformed, err := applyTransforms(formatters, p.Transforms, value)
					if err != nil {
						return "", fmt.Errorf("translation %q in namespace %q: %w", key, namespace, err)
					}
					value = transformed
				}
				sb.WriteString(strings.TrimSpace(stringify(value)))
			}
		}
		return sb.String(), nil
	}
}
