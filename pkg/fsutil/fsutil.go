// Package fsutil reads Markdown sources and writes rendered output safely.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Source describes a document as it was read.
type Source struct {
	// Path is the path the document was read from, or "-" for stdin.
	Path string

	// ModTime is the modification time; zero for stdin.
	ModTime time.Time

	// Size is the content length in bytes.
	Size int64

	// Hash is the SHA-256 of the content.
	Hash [sha256.Size]byte
}

// ETag returns a strong HTTP entity tag derived from the content hash
// and salt, which callers use to fold rendering options into the tag.
func (s *Source) ETag(salt string) string {
	h := sha256.New()
	h.Write(s.Hash[:])
	h.Write([]byte(salt))
	return `"` + hex.EncodeToString(h.Sum(nil)[:12]) + `"`
}

// ReadFile reads a document and describes it.
func ReadFile(ctx context.Context, path string) ([]byte, *Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Source{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}, nil
}

// ReadInput reads path, or stdin when path is "-" or empty.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, *Source, error) {
	if path != "" && path != StdinPath {
		return ReadFile(ctx, path)
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, &Source{
		Path: StdinPath,
		Size: int64(len(content)),
		Hash: sha256.Sum256(content),
	}, nil
}

// UpToDate reports whether target exists and is at least as new as every
// source. It is used to skip rebuilding unchanged documents.
func UpToDate(target string, sources ...string) (bool, error) {
	out, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, classify(target, err)
	}

	for _, src := range sources {
		in, err := os.Stat(src)
		if err != nil {
			return false, classify(src, err)
		}
		if in.ModTime().After(out.ModTime()) {
			return false, nil
		}
	}
	return true, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}
