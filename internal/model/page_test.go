package model

import (
	"errors"
	"testing"
)

func TestParsePage_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range Pages() {
		got, err := ParsePage(p.String())
		if err != nil {
			t.Fatalf("ParsePage(%q): %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePage(%q) = %v, want %v", p, got, p)
		}
	}
}

func TestParsePage_Unknown(t *testing.T) {
	t.Parallel()

	_, err := ParsePage("settings")
	if !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("err = %v, want ErrUnknownPage", err)
	}
}

func TestPage_Protected(t *testing.T) {
	t.Parallel()

	protected := map[Page]bool{PageProfile: true, PageTracker: true}
	for _, p := range Pages() {
		if got := p.Protected(); got != protected[p] {
			t.Errorf("%v.Protected() = %v, want %v", p, got, protected[p])
		}
	}
}

func TestPage_StringOutOfRange(t *testing.T) {
	t.Parallel()

	p := Page(42)
	if p.Valid() {
		t.Fatal("Page(42) should not be valid")
	}
	if got := p.String(); got != "page(42)" {
		t.Errorf("String() = %q, want page(42)", got)
	}
}

func TestLanguage_NextWraps(t *testing.T) {
	t.Parallel()

	if got := LangZulu.Next(); got != LangEnglish {
		t.Errorf("zu.Next() = %q, want en", got)
	}
	if got := Language("fr").Next(); got != LangEnglish {
		t.Errorf("fr.Next() = %q, want en", got)
	}
	if got := LangEnglish.Next(); got != LangAfrikaans {
		t.Errorf("en.Next() = %q, want af", got)
	}
}
