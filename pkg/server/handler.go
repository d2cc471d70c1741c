package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/pkg/fsutil"
	"github.com/yaklabco/mathdown/pkg/heading"
	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
)

// Query parameters selecting alternative representations.
const (
	queryRaw = "raw"
	queryTOC = "toc"
)

// indexName is rendered in place of a directory listing when present.
const indexName = "index.md"

// ErrOutsideRoot is returned for request paths that resolve outside the
// served directory.
var ErrOutsideRoot = errors.New("path outside served root")

// errInvalidPath rejects paths the file system cannot represent safely.
var errInvalidPath = errors.New("invalid character in file path")

// Resolve maps a URL path to a file system path under the root.
// Symlinks are followed and must stay inside the root.
func (s *Server) Resolve(urlPath string) (string, error) {
	if strings.Contains(urlPath, "\x00") ||
		(filepath.Separator != '/' && strings.ContainsRune(urlPath, filepath.Separator)) {
		return "", errInvalidPath
	}

	name := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+urlPath)))
	if err := s.contain(name); err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(name)
	if err != nil {
		// Missing files are reported by the caller's stat.
		return name, nil //nolint:nilerr // Not found is handled downstream.
	}
	if err := s.contain(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func (s *Server) contain(name string) error {
	rel, err := filepath.Rel(s.root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name, err := s.Resolve(r.URL.Path)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrOutsideRoot) {
			status = http.StatusForbidden
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	info, statErr := os.Stat(name)
	switch {
	case statErr == nil && info.IsDir():
		if index, ok := s.lookup(path.Join(r.URL.Path, indexName)); ok {
			s.serveDocument(w, r, index)
			return
		}
		s.serveListing(w, r, name)
	case statErr == nil && isMarkdown(name):
		s.serveDocument(w, r, name)
	case statErr == nil:
		http.ServeFile(w, r, name)
	default:
		// "/notes" serves notes.md.
		for _, ext := range markdownExtensions {
			if doc, ok := s.lookup(strings.TrimSuffix(r.URL.Path, "/") + ext); ok {
				s.serveDocument(w, r, doc)
				return
			}
		}
		http.NotFound(w, r)
	}
}

// lookup resolves urlPath and reports whether it names a regular file.
func (s *Server) lookup(urlPath string) (string, bool) {
	name, err := s.Resolve(urlPath)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

//nolint:gochecknoglobals // Read-only.
var markdownExtensions = []string{".md", ".markdown"}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range markdownExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request, name string) {
	ctx := r.Context()

	content, src, err := fsutil.ReadFile(ctx, name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	query := r.URL.Query()
	if query.Has(queryRaw) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write(content)
		return
	}

	opts := loadDocumentOptions(name)
	renderOpts := opts.apply(s.renderer.Options())
	pageData := opts.applyPage(s.page)

	head, tail, wrapped := loadWrapper(name)
	etag := src.ETag(fmt.Sprintf("%+v|%+v|%s|%s",
		renderOpts, pageDataKey(pageData), r.URL.RawQuery, wrapperKey(head, tail, wrapped)))
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	doc, err := render.New(renderOpts).Render(ctx, content)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if query.Has(queryTOC) {
		writeJSON(w, tocResponse{Title: doc.Title, TOC: doc.TOC, Headings: doc.Headings})
		return
	}

	var buf bytes.Buffer
	if wrapped {
		buf.Write(head)
		buf.WriteString(doc.HTML)
		buf.Write(tail)
	} else {
		pageData.Result = doc
		if err := page.Render(&buf, pageData); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// wrapperKey identifies the head and tail files so edits to them change
// the ETag.
func wrapperKey(head, tail []byte, wrapped bool) string {
	if !wrapped {
		return ""
	}
	return fmt.Sprintf("%x.%x", sha256.Sum256(head), sha256.Sum256(tail))
}

// pageDataKey strips the result so page settings can salt the ETag.
func pageDataKey(d page.Data) page.Data {
	d.Result = nil
	return d
}

type tocResponse struct {
	Title    string          `json:"title,omitempty"`
	TOC      []*heading.Node `json:"toc"`
	Headings []heading.Entry `json:"headings"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fsutil.ErrPermissionDenied):
		status = http.StatusForbidden
	default:
		s.logger.Error("request failed", logging.FieldPath, r.URL.Path, logging.FieldError, err)
	}
	http.Error(w, http.StatusText(status), status)
}

// loadWrapper returns the contents of NAME.head and NAME.tail when both exist.
func loadWrapper(name string) ([]byte, []byte, bool) {
	head, err := os.ReadFile(name + ".head")
	if err != nil {
		return nil, nil, false
	}
	tail, err := os.ReadFile(name + ".tail")
	if err != nil {
		return nil, nil, false
	}
	return head, tail, true
}
