package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var resourceExtensions = []string{".json", ".yaml", ".yml", ".toml"}

// IsResourceFile reports whether path has a supported resource extension.
func IsResourceFile(path string) bool {
	return slices.Contains(resourceExtensions, strings.ToLower(filepath.Ext(path)))
}

// ReadResources decodes a JSON, YAML or TOML resource file. The file may hold
// a list under "resources", a single resource with "translations", or a plain
// tree of translations. Nested keys are joined with dots and a missing locale
// is taken from the file name, so "locales/en-US.yaml" holds "en-US".
func ReadResources(path string) ([]Resource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	data := map[string]any{}
	switch ext {
	case ".json":
		err = json.Unmarshal(content, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &data)
	case ".toml":
		err = toml.Unmarshal(content, &data)
	default:
		return nil, fmt.Errorf("unsupported resource format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode resource %s: %w", path, err)
	}

	fallbackLocale := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var entries []map[string]any
	switch list := data["resources"].(type) {
	case []map[string]any:
		entries = list
	case []any:
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("resource %s: entry %d is not a table", path, i)
			}
			entries = append(entries, m)
		}
	case nil:
		if _, ok := data["translations"]; ok {
			entries = []map[string]any{data}
		} else {
			entries = []map[string]any{{"translations": data}}
		}
	default:
		return nil, fmt.Errorf("resource %s: resources must be a list", path)
	}

	resources := make([]Resource, 0, len(entries))
	for _, e := range entries {
		r := Resource{
			Locale:       fallbackLocale,
			Translations: map[string]string{},
		}
		if l, ok := e["locale"].(string); ok && l != "" {
			r.Locale = l
		}
		if ns, ok := e["namespace"].(string); ok {
			r.Namespace = ns
		}
		tree, ok := e["translations"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("resource %s: translations of %q must be a table", path, r.Locale)
		}
		flatten("", tree, r.Translations)
		resources = append(resources, r)
	}
	return resources, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// LoadFile reads path and loads every resource it holds into c.
func (c *Catalog) LoadFile(path string) error {
	resources, err := ReadResources(path)
	if err != nil {
		return err
	}
	return c.LoadAll(resources...)
}

// LoadDir loads the resource files directly inside dir in lexical order,
// which makes the first file name the fallback locale.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read resource dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !IsResourceFile(entry.Name()) {
			continue
		}
		if err := c.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
