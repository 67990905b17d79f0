package i18n

import (
	"context"
	"errors"
	"testing"

	"github.com/tinytelemetry/smileguide/internal/model"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

func TestLoadAllLanguages(t *testing.T) {
	b := loadBundle(t)

	for _, lang := range model.Languages() {
		c := b.Catalog(lang)
		if c.Language() != lang {
			t.Errorf("Catalog(%s).Language() = %s", lang, c.Language())
		}
		if len(c.Keys()) == 0 {
			t.Errorf("catalog %s is empty", lang)
		}
	}
}

func TestTranslateAndFallback(t *testing.T) {
	b := loadBundle(t)
	en := b.Catalog(model.LangEnglish)

	if got := en.T("page.home.title"); got != "Home" {
		t.Errorf("en home title = %q", got)
	}
	if got := b.Catalog(model.LangAfrikaans).T("page.home.title"); got != "Tuis" {
		t.Errorf("af home title = %q", got)
	}

	// Missing in isiXhosa, present in English.
	if got, want := b.Catalog(model.LangXhosa).T("tracker.empty"), en.T("tracker.empty"); got != want {
		t.Errorf("xh fallback = %q, want %q", got, want)
	}

	// Missing everywhere resolves to the key.
	if got := b.Catalog(model.LangZulu).T("no.such.key"); got != "no.such.key" {
		t.Errorf("missing key = %q", got)
	}
}

func TestEveryPageHasEnglishTitle(t *testing.T) {
	en := loadBundle(t).Catalog(model.LangEnglish)

	for _, p := range model.Pages() {
		key := "page." + p.String() + ".title"
		if en.T(key) == key {
			t.Errorf("missing %s", key)
		}
	}
}

func TestTranslatedKeysExistInEnglish(t *testing.T) {
	b := loadBundle(t)

	en := b.Catalog(model.LangEnglish)
	for _, lang := range model.Languages()[1:] {
		for _, key := range b.Catalog(lang).Keys() {
			if en.T(key) == key {
				t.Errorf("%s defines %s which English lacks", lang, key)
			}
		}
	}
}

func TestUnknownLanguageUsesEnglish(t *testing.T) {
	if got := loadBundle(t).Catalog("fr").Language(); got != model.LangEnglish {
		t.Errorf("Catalog(fr).Language() = %s, want en", got)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load error = %v, want context.Canceled", err)
	}
}

func TestEmptyAndNilCatalog(t *testing.T) {
	if got := Empty().T("page.home.title"); got != "page.home.title" {
		t.Errorf("Empty().T = %q", got)
	}

	var c *Catalog
	if got := c.T("x"); got != "x" {
		t.Errorf("nil catalog T = %q", got)
	}
}
