package model

import "time"

// User is a locally registered account. The password hash never leaves the
// auth package.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// SymptomLog is one tracker entry recorded by a user.
type SymptomLog struct {
	ID       string
	UserID   string
	LoggedAt time.Time
	Symptoms []string
	Severity int // 1 (mild) to 5 (severe)
	Notes    string
}

// Language is a supported UI language code.
type Language string

const (
	LangEnglish   Language = "en"
	LangAfrikaans Language = "af"
	LangXhosa     Language = "xh"
	LangZulu      Language = "zu"
)

// Languages lists the supported languages in cycle order.
func Languages() []Language {
	return []Language{LangEnglish, LangAfrikaans, LangXhosa, LangZulu}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, known := range Languages() {
		if l == known {
			return true
		}
	}
	return false
}

// Next returns the language after l, wrapping around.
func (l Language) Next() Language {
	langs := Languages()
	for i, known := range langs {
		if l == known {
			return langs[(i+1)%len(langs)]
		}
	}
	return LangEnglish
}
