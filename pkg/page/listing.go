package page

import (
	"fmt"
	"io"
	"time"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name    string
	URL     string
	Size    int64
	IsDir   bool
	ModTime time.Time
}

// ReadableSize formats the size with binary prefixes, e.g. "1.5 KiB".
func (e Entry) ReadableSize() string {
	return ReadableSize(e.Size)
}

//nolint:gochecknoglobals // Read-only.
var binaryUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// ReadableSize formats n bytes with one decimal and a binary unit.
func ReadableSize(n int64) string {
	const base = 1024

	value := float64(n)
	unit := binaryUnits[0]
	for i, u := range binaryUnits {
		unit = u
		if (-base < value && value < base) || i == len(binaryUnits)-1 {
			break
		}
		value /= base
	}
	return fmt.Sprintf("%.1f %s", value, unit)
}

// Listing describes a directory page.
type Listing struct {
	Title     string
	Theme     string
	AssetsURL string
	Entries   []Entry
}

type listingView struct {
	Title         string
	ThemeURL      string
	ResponsiveURL string
	Entries       []Entry
}

// RenderListing writes a directory listing page to w.
func RenderListing(w io.Writer, l Listing) error {
	view := listingView{
		Title:   firstNonEmpty(l.Title, DefaultTitle),
		Entries: l.Entries,
	}
	view.ThemeURL, view.ResponsiveURL = stylesheets(l.AssetsURL, firstNonEmpty(l.Theme, DefaultTheme))

	if err := templates.ExecuteTemplate(w, "listing.html.tmpl", view); err != nil {
		return fmt.Errorf("render listing: %w", err)
	}
	return nil
}
