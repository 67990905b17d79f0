package i18n

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"github.com/tinytelemetry/smileguide/internal/model"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogs embed.FS

// Catalog resolves dotted message keys for one language, falling back to
// English and finally to the key itself.
type Catalog struct {
	lang     model.Language
	messages map[string]string
	fallback *Catalog
}

// Empty returns a catalog that resolves every key to itself.
func Empty() *Catalog {
	return &Catalog{lang: model.LangEnglish, messages: map[string]string{}}
}

// Language returns the catalog's language.
func (c *Catalog) Language() model.Language { return c.lang }

// T returns the message for key.
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	if c.fallback != nil {
		return c.fallback.T(key)
	}
	return key
}

// Keys returns the keys defined directly in this catalog, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for k := range c.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bundle holds the parsed catalog of every supported language.
type Bundle struct {
	catalogs map[model.Language]*Catalog
}

// Load parses every embedded catalog concurrently.
func Load(ctx context.Context) (*Bundle, error) {
	langs := model.Languages()
	parsed := make([]map[string]string, len(langs))

	g, ctx := errgroup.WithContext(ctx)
	for i, lang := range langs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			messages, err := parseCatalog(lang)
			if err != nil {
				return err
			}
			parsed[i] = messages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Bundle{catalogs: make(map[model.Language]*Catalog, len(langs))}
	english := &Catalog{lang: model.LangEnglish, messages: parsed[0]}
	for i, lang := range langs {
		if lang == model.LangEnglish {
			b.catalogs[lang] = english
			continue
		}
		b.catalogs[lang] = &Catalog{lang: lang, messages: parsed[i], fallback: english}
	}
	return b, nil
}

// Catalog returns the catalog for lang, or English for unknown languages.
func (b *Bundle) Catalog(lang model.Language) *Catalog {
	if c, ok := b.catalogs[lang]; ok {
		return c
	}
	return b.catalogs[model.LangEnglish]
}

func parseCatalog(lang model.Language) (map[string]string, error) {
	data, err := catalogs.ReadFile("catalogs/" + string(lang) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: reading %s catalog: %w", lang, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("i18n: parsing %s catalog: %w", lang, err)
	}

	out := make(map[string]string)
	if err := flatten("", tree, out); err != nil {
		return nil, fmt.Errorf("i18n: %s catalog: %w", lang, err)
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %s: unsupported value type %T", key, v)
		}
	}
	return nil
}
