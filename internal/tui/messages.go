package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/smileguide/internal/i18n"
	"github.com/tinytelemetry/smileguide/internal/model"
	"github.com/tinytelemetry/smileguide/internal/startup"
)

// Identity is the identity provider used by the App and its pages.
type Identity interface {
	Restore(ctx context.Context) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Logout(ctx context.Context) error
}

// Bootstrapper performs one-shot startup work.
type Bootstrapper interface {
	Run(ctx context.Context) startup.Outcome
}

// TranslationLoader loads the catalog bundle.
type TranslationLoader func(ctx context.Context) (*i18n.Bundle, error)

// avatarMsg reports the bootstrap outcome.
type avatarMsg struct {
	outcome startup.Outcome
}

// identityRestoredMsg reports the session restored at startup.
type identityRestoredMsg struct {
	user *model.User
	err  error
}

// authResultMsg reports a login, registration or logout.
type authResultMsg struct {
	user *model.User
	err  error
}

// translationsMsg reports the loaded catalogs and the persisted language
// preference, if any.
type translationsMsg struct {
	bundle *i18n.Bundle
	lang   model.Language
	err    error
}

// languageSavedMsg reports persistence of the language preference.
type languageSavedMsg struct {
	err error
}

// symptomLogsMsg carries one user's symptom history.
type symptomLogsMsg struct {
	userID string
	logs   []model.SymptomLog
	err    error
}

// symptomSavedMsg reports the result of saving a symptom entry.
type symptomSavedMsg struct {
	err error
}

const cmdTimeout = 30 * time.Second

func bootstrapCmd(b Bootstrapper) tea.Cmd {
	return func() tea.Msg {
		if b == nil {
			return avatarMsg{outcome: startup.OutcomeFailed}
		}
		return avatarMsg{outcome: b.Run(context.Background())}
	}
}

func restoreCmd(id Identity) tea.Cmd {
	return func() tea.Msg {
		if id == nil {
			return identityRestoredMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		u, err := id.Restore(ctx)
		return identityRestoredMsg{user: u, err: err}
	}
}

func loginCmd(id Identity, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		u, err := id.Login(ctx, email, password)
		return authResultMsg{user: u, err: err}
	}
}

func registerCmd(id Identity, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		u, err := id.Register(ctx, name, email, password)
		return authResultMsg{user: u, err: err}
	}
}

func logoutCmd(id Identity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		return authResultMsg{err: id.Logout(ctx)}
	}
}

func translationsCmd(load TranslationLoader, values model.ValueStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		var msg translationsMsg
		if load != nil {
			msg.bundle, msg.err = load(ctx)
		}
		if values != nil {
			if v, ok, err := values.GetValue(ctx, model.KeyLanguage); err == nil && ok {
				if lang := model.Language(v); lang.Valid() {
					msg.lang = lang
				}
			}
		}
		return msg
	}
}

func saveLanguageCmd(values model.ValueStore, lang model.Language) tea.Cmd {
	if values == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		return languageSavedMsg{err: values.SetValue(ctx, model.KeyLanguage, string(lang))}
	}
}

func loadSymptomsCmd(store model.SymptomStore, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		logs, err := store.SymptomLogs(ctx, userID, model.DefaultSymptomLimit)
		return symptomLogsMsg{userID: userID, logs: logs, err: err}
	}
}

func saveSymptomCmd(store model.SymptomStore, entry model.SymptomLog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		return symptomSavedMsg{err: store.InsertSymptomLog(ctx, entry)}
	}
}
