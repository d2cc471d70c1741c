package server

import (
	"bytes"
	"cmp"
	"net/http"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/mathdown/pkg/page"
)

func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, dir string) {
	// Relative links only resolve inside a directory whose URL ends in "/".
	if !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		return
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	entries := listEntries(dirEntries)
	if r.URL.Path != "/" {
		entries = append([]page.Entry{{Name: "..", URL: "../", IsDir: true}}, entries...)
	}

	opts := loadDocumentOptions(dir)
	listing := page.Listing{
		Title:     lo.CoalesceOrEmpty(opts.Title, r.URL.Path),
		Theme:     lo.CoalesceOrEmpty(opts.Theme, s.page.Theme),
		AssetsURL: s.page.AssetsURL,
		Entries:   entries,
	}

	var buf bytes.Buffer
	if err := page.RenderListing(&buf, listing); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// listEntries converts directory entries to listing rows, directories
// first. Hidden entries and companion files are skipped, and Markdown
// links drop their extension.
func listEntries(dirEntries []os.DirEntry) []page.Entry {
	entries := make([]page.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") || isCompanion(name) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}

		entry := page.Entry{
			Name:    name,
			URL:     url.PathEscape(name),
			IsDir:   info.IsDir(),
			ModTime: info.ModTime(),
		}
		switch {
		case entry.IsDir:
			entry.URL += "/"
		case isMarkdown(name):
			entry.Size = info.Size()
			entry.URL = strings.TrimSuffix(entry.URL, path.Ext(entry.URL))
		default:
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b page.Entry) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return entries
}

// isCompanion reports whether name configures another document.
func isCompanion(name string) bool {
	for _, suffix := range []string{optionSuffix, ".head", ".tail"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
