package templates

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/delaneyj/signalgraph/i18n"
)

type CatalogKey struct {
	Const string
	Key   string
	Args  []string
}

type CatalogEntry struct {
	Key string
	Raw string
}

type CatalogResource struct {
	Locale    string
	Namespace string
	Entries   []CatalogEntry
}

// Prepare validates every translation and collects the keys of all
// resources. A key takes the union of the arguments of its translations.
func Prepare(resources []i18n.Resource) ([]CatalogKey, []CatalogResource, error) {
	byKey := map[string]*CatalogKey{}
	out := make([]CatalogResource, 0, len(resources))

	for _, r := range resources {
		cr := CatalogResource{Locale: r.Locale, Namespace: r.Namespace}
		if cr.Namespace == "" {
			cr.Namespace = i18n.DefaultNamespace
		}
		for key, raw := range r.Translations {
			msg, err := i18n.Parse(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%s/%s %q: %w", cr.Locale, cr.Namespace, key, err)
			}
			cr.Entries = append(cr.Entries, CatalogEntry{Key: key, Raw: raw})

			k, ok := byKey[key]
			if !ok {
				k = &CatalogKey{Key: key}
				byKey[key] = k
			}
			for _, arg := range msg.Keys() {
				if !slices.Contains(k.Args, arg) {
					k.Args = append(k.Args, arg)
				}
			}
		}
		slices.SortFunc(cr.Entries, func(a, b CatalogEntry) int { return cmp.Compare(a.Key, b.Key) })
		out = append(out, cr)
	}

	keys := make([]CatalogKey, 0, len(byKey))
	used := map[string]int{}
	for _, key := range slices.Sorted(maps.Keys(byKey)) {
		k := byKey[key]
		name := constName(key)
		if n := used[name]; n > 0 {
			used[name]++
			name += strconv.Itoa(n + 1)
		} else {
			used[name] = 1
		}
		k.Const = name
		keys = append(keys, *k)
	}
	return keys, out, nil
}

// constName turns "cart.items-count" into "KeyCartItemsCount".
func constName(key string) string {
	var sb strings.Builder
	sb.WriteString("Key")
	upper := true
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func goString(s string) string {
	return strconv.Quote(s)
}

func argList(args []string) string {
	var sb strings.Builder
	for i, arg := range args {
		sb.WriteString(arg)
		if i < len(args)-2 {
			sb.WriteString(", ")
		} else if i == len(args)-2 {
			sb.WriteString(" and ")
		}
	}
	return sb.String()
}
