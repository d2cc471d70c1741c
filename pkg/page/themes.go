package page

import (
	"errors"
	"slices"
	"strings"
)

// ErrNoDocument is returned when a page is rendered without a document.
var ErrNoDocument = errors.New("no document to render")

// Themes lists the bundled Bootswatch-style themes.
//
//nolint:gochecknoglobals // Read-only.
var Themes = []string{
	"chaitin", "cerulean", "cosmo", "cyborg", "darkly", "flatly", "journal",
	"lumen", "paper", "readable", "sandstone", "simplex", "slate",
	"spacelab", "superhero", "united", "yeti",
}

// KnownTheme reports whether name is one of Themes, ignoring case.
func KnownTheme(name string) bool {
	return slices.Contains(Themes, strings.ToLower(name))
}
