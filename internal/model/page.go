package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPage is returned by ParsePage for names outside the Page set.
var ErrUnknownPage = errors.New("unknown page")

// Page identifies one of the fixed top-level screens of the application.
type Page int

const (
	PageHome Page = iota
	PageChat
	PageLearn
	PageDirectory
	PageTracker
	PageCommunity
	PageProfile
	PageAuth
)

var pageNames = [...]string{
	PageHome:      "home",
	PageChat:      "chat",
	PageLearn:     "learn",
	PageDirectory: "directory",
	PageTracker:   "tracker",
	PageCommunity: "community",
	PageProfile:   "profile",
	PageAuth:      "auth",
}

// Pages lists every page in menu order.
func Pages() []Page {
	return []Page{PageHome, PageChat, PageLearn, PageDirectory, PageTracker, PageCommunity, PageProfile, PageAuth}
}

// String returns the lowercase page name.
func (p Page) String() string {
	if p.Valid() {
		return pageNames[p]
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// Valid reports whether p is a member of the Page set.
func (p Page) Valid() bool {
	return p >= PageHome && p <= PageAuth
}

// Protected reports whether the page requires a signed-in user.
func (p Page) Protected() bool {
	return p == PageProfile || p == PageTracker
}

// ParsePage converts a page name back into a Page.
func ParsePage(name string) (Page, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range pageNames {
		if n == name {
			return Page(i), nil
		}
	}
	return PageHome, fmt.Errorf("%w: %q", ErrUnknownPage, name)
}

// MarshalText implements encoding.TextMarshaler so pages serialize by name.
func (p Page) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
