package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
	"github.com/yaklabco/mathdown/pkg/server"
)

const docSource = "# Intro\n\nEuler: $e^{i\\pi}+1=0$\n\n## Details\n"

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
}

// newServer builds a server over a small document tree.
func newServer(t *testing.T) (*server.Server, string) {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "doc.md"), docSource)
	writeFile(t, filepath.Join(root, "notes.txt"), "plain notes")
	writeFile(t, filepath.Join(root, ".hidden.md"), "# Hidden\n")
	writeFile(t, filepath.Join(root, "sub", "page.md"), "# Sub page\n")
	writeFile(t, filepath.Join(root, "book", "index.md"), "# Book index\n")

	srv, err := server.New(server.Options{
		Root:     root,
		Renderer: render.New(render.Options{HeadingNumber: "i.i"}),
		Page:     page.Data{Title: "Docs"},
		Logger:   logging.NewWithWriter(io.Discard, "error"),
	})
	require.NoError(t, err)
	return srv, srv.Root()
}

func get(t *testing.T, srv *server.Server, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RootMustBeDirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.md")
	writeFile(t, file, "x")

	_, err := server.New(server.Options{Root: file})
	require.Error(t, err)

	_, err = server.New(server.Options{Root: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}

func TestServer_Document(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	for _, target := range []string{"/doc.md", "/doc"} {
		rec := get(t, srv, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

		body := rec.Body.String()
		assert.Contains(t, body, "<title>Docs</title>", target)
		assert.Contains(t, body, `$e^{i\pi}+1=0$`, target)
		assert.Contains(t, body, `<a name="h1_intro"`, target)
		assert.Contains(t, body, `<a name="h1.1_details"`, target)
		assert.Contains(t, body, "MathJax", target)
	}
}

func TestServer_Raw(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv, "/doc.md?raw", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Equal(t, docSource, rec.Body.String())
}

func TestServer_TOC(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv, "/doc?toc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		TOC []struct {
			Target string `json:"target"`
		} `json:"toc"`
		Headings []struct {
			Number string `json:"number"`
		} `json:"headings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Headings, 2)
	assert.Equal(t, "1", resp.Headings[0].Number)
	assert.Equal(t, "1.1", resp.Headings[1].Number)
	require.NotEmpty(t, resp.TOC)
	assert.Equal(t, "#h1_intro", resp.TOC[0].Target)
}

func TestServer_ETag(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	first := get(t, srv, "/doc.md", nil)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := get(t, srv, "/doc.md", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	// Alternate representations get their own tag.
	toc := get(t, srv, "/doc.md?toc", nil)
	assert.NotEqual(t, etag, toc.Header().Get("ETag"))
}

func TestServer_OptionFile(t *testing.T) {
	t.Parallel()

	srv, root := newServer(t)
	writeFile(t, filepath.Join(root, "doc.md.option.json"),
		`{"Title": "Custom", "Theme": "united", "Toc": "true", "HeadingNumber": "a.i"}`)

	rec := get(t, srv, "/doc.md", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Custom</title>")
	assert.Contains(t, body, "themes/united.min.css")
	assert.Contains(t, body, `href="#ha_intro"`)
	assert.Contains(t, body, `<a name="ha.1_details"`)
}

func TestServer_MalformedOptionFileIsIgnored(t *testing.T) {
	t.Parallel()

	srv, root := newServer(t)
	writeFile(t, filepath.Join(root, "doc.md.option.json"), `{"title":`)

	rec := get(t, srv, "/doc.md", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Docs</title>")
}

func TestServer_HeadTail(t *testing.T) {
	t.Parallel()

	srv, root := newServer(t)
	writeFile(t, filepath.Join(root, "doc.md.head"), "<html><body>HEAD\n")
	writeFile(t, filepath.Join(root, "doc.md.tail"), "TAIL</body></html>\n")

	rec := get(t, srv, "/doc.md", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<html><body>HEAD\n"))
	assert.True(t, strings.HasSuffix(body, "TAIL</body></html>\n"))
	assert.NotContains(t, body, "navbar")
	assert.Contains(t, body, `$e^{i\pi}+1=0$`)
}

func TestServer_ETagTracksHeadTail(t *testing.T) {
	t.Parallel()

	srv, root := newServer(t)
	writeFile(t, filepath.Join(root, "doc.md.head"), "<html><body>OLD\n")
	writeFile(t, filepath.Join(root, "doc.md.tail"), "</body></html>\n")

	first := get(t, srv, "/doc.md", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	writeFile(t, filepath.Join(root, "doc.md.head"), "<html><body>NEW\n")

	second := get(t, srv, "/doc.md", map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusOK, second.Code)
	assert.NotEqual(t, etag, second.Header().Get("ETag"))
	assert.True(t, strings.HasPrefix(second.Body.String(), "<html><body>NEW\n"))

	// Removing the wrapper falls back to the page and changes the tag again.
	require.NoError(t, os.Remove(filepath.Join(root, "doc.md.tail")))

	third := get(t, srv, "/doc.md", map[string]string{"If-None-Match": second.Header().Get("ETag")})
	require.Equal(t, http.StatusOK, third.Code)
	assert.Contains(t, third.Body.String(), "<!DOCTYPE html>")
}

func TestServer_Listing(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="doc"`)
	assert.Contains(t, body, `href="notes.txt"`)
	assert.Contains(t, body, `href="sub/"`)
	assert.NotContains(t, body, "hidden")
	assert.NotContains(t, body, `href="../"`)

	sub := get(t, srv, "/sub/", nil)
	require.Equal(t, http.StatusOK, sub.Code)
	assert.Contains(t, sub.Body.String(), `href="../"`)
	assert.Contains(t, sub.Body.String(), `href="page"`)
}

func TestServer_ListingRedirect(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv, "/sub", nil)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/sub/", rec.Header().Get("Location"))
}

func TestServer_Index(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv, "/book/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Book index")
}

func TestServer_StaticFile(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv, "/notes.txt", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plain notes", rec.Body.String())
}

func TestServer_Errors(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/missing", nil).Code)

	req := httptest.NewRequest(http.MethodPost, "/doc.md", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestServer_SymlinkEscape(t *testing.T) {
	t.Parallel()

	srv, root := newServer(t)
	outside := filepath.Join(t.TempDir(), "secret.md")
	writeFile(t, outside, "# Secret\n")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "leak.md")))

	assert.Equal(t, http.StatusForbidden, get(t, srv, "/leak.md", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/leak", nil).Code)

	_, err := srv.Resolve("/leak.md")
	require.ErrorIs(t, err, server.ErrOutsideRoot)
}

func TestServer_Resolve(t *testing.T) {
	t.Parallel()

	srv, root := newServer(t)

	tests := []struct {
		urlPath string
		want    string
	}{
		{"/", root},
		{"/doc.md", filepath.Join(root, "doc.md")},
		{"/../../doc.md", filepath.Join(root, "doc.md")},
		{"/sub/../doc.md", filepath.Join(root, "doc.md")},
		{"/missing/file.md", filepath.Join(root, "missing", "file.md")},
	}

	for _, tt := range tests {
		got, err := srv.Resolve(tt.urlPath)
		require.NoError(t, err, tt.urlPath)
		assert.Equal(t, tt.want, got, tt.urlPath)
	}

	_, err := srv.Resolve("/doc\x00.md")
	require.Error(t, err)
}

func TestServer_Serve_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/doc.md?raw") //nolint:noctx // Test request.
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, docSource, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
