package tui

import (
	"github.com/tinytelemetry/smileguide/internal/i18n"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// ViewContext provides read-only context to pages for updating and
// rendering, replacing direct access to *App.
type ViewContext struct {
	Width    int
	Height   int
	Catalog  *i18n.Catalog
	Language model.Language
	User     *model.User
	// AvatarReady is true once the assistant avatar is cached.
	AvatarReady bool
	Keys        KeyMap
}

// T translates key with the active catalog.
func (c ViewContext) T(key string) string {
	return c.Catalog.T(key)
}

// SignedIn reports whether an identity is present.
func (c ViewContext) SignedIn() bool {
	return c.User != nil
}
