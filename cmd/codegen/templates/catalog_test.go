package templates_test

import (
	"go/format"
	"testing"

	"github.com/delaneyj/signalgraph/cmd/codegen/templates"
	"github.com/delaneyj/signalgraph/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	keys, resources, err := templates.Prepare([]i18n.Resource{
		{Locale: "en", Translations: map[string]string{
			"cart.items": "{{count: none | one | ?? items}}",
			"greeting":   "Hi {name}!",
		}},
		{Locale: "es", Namespace: "shop", Translations: map[string]string{
			"greeting":   "¡Hola {name}, {title?}!",
			"cart-items": "x",
		}},
	})
	require.NoError(t, err)

	require.Len(t, keys, 3)
	assert.Equal(t, templates.CatalogKey{Const: "KeyCartItems", Key: "cart-items"}, keys[0])
	assert.Equal(t, templates.CatalogKey{Const: "KeyCartItems2", Key: "cart.items", Args: []string{"count"}}, keys[1])
	assert.Equal(t, templates.CatalogKey{Const: "KeyGreeting", Key: "greeting", Args: []string{"name", "title"}}, keys[2])

	require.Len(t, resources, 2)
	assert.Equal(t, i18n.DefaultNamespace, resources[0].Namespace)
	assert.Equal(t, "cart.items", resources[0].Entries[0].Key)

	_, _, err = templates.Prepare([]i18n.Resource{{Locale: "en", Translations: map[string]string{"k": "{{s}}"}}})
	assert.ErrorIs(t, err, i18n.ErrPluralKeyUnresolvable)
}

func TestCatalogGen(t *testing.T) {
	keys, resources, err := templates.Prepare([]i18n.Resource{
		{Locale: "en", Translations: map[string]string{
			"greeting": "Hi \"{name}\"!\n",
			"basic":    "Hello",
		}},
	})
	require.NoError(t, err)

	src := templates.CatalogGen("translations", keys, resources)
	formatted, err := format.Source([]byte(src))
	require.NoError(t, err, src)

	out := string(formatted)
	assert.Contains(t, out, "package translations")
	assert.Contains(t, out, "// KeyGreeting takes name.")
	assert.Regexp(t, `KeyBasic\s+= "basic"`, out)
	assert.Contains(t, out, `"Hi \"{name}\"!\n",`)
	assert.Contains(t, out, "func NewCatalog(opts ...i18n.Option) (*i18n.Catalog, error)")
}
