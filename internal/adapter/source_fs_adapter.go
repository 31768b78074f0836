// Package adapter contains the infrastructure adapters used by the colfmt
// workflow: source discovery, the result cache and matrix override files.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

// recursiveSuffix marks a Go-style recursive path pattern such as ./pkg/...
const recursiveSuffix = "..."

// sourceExtensions are picked up when walking directories. Files named
// explicitly on the command line are accepted whatever their extension.
var sourceExtensions = map[string]struct{}{
	".py":  {},
	".pyi": {},
}

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{
	"__pycache__":  {},
	"node_modules": {},
	"venv":         {},
}

// SourceFSAdapter hides filesystem access from the workflow so it can be
// tested without touching the disk.
type SourceFSAdapter interface {
	// Get resolves path patterns into sources, dropping every file whose
	// path matches one of the exclude regular expressions.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the contents of an existing file, keeping its mode.
	WriteFile(path m.Path, content []byte) error

	// HashFile returns a stable fingerprint (SHA-256) of the file at path.
	HashFile(path m.Path) (string, error)
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get walks every path pattern. An empty list means ./...
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	filters, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	seen := map[string]struct{}{}

	var sources []m.Source

	for _, path := range paths {
		root, recursive := splitPattern(string(path))

		files, err := a.collect(ctx, root, recursive)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if _, dup := seen[file]; dup {
				continue
			}

			seen[file] = struct{}{}

			short := shortPath(file)
			if excluded(filters, short) {
				slog.Debug("excluded source", "path", short)
				continue
			}

			hash, err := a.HashFile(m.Path(file))
			if err != nil {
				return nil, fmt.Errorf("hash %s: %w", short, err)
			}

			sources = append(sources, m.Source{Origin: &m.File{
				ShortPath: m.Path(short),
				FullPath:  m.Path(file),
				Hash:      hash,
			}})
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.ShortPath < sources[j].Origin.ShortPath
	})

	slog.Debug("resolved sources", "patterns", len(paths), "count", len(sources))

	return sources, nil
}

func (a *LocalSourceFSAdapter) collect(ctx context.Context, root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}

		return []string{abs}, nil
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path == root {
				return nil
			}

			if !recursive || skipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if _, ok := sourceExtensions[filepath.Ext(path)]; !ok {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		files = append(files, abs)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile overwrites the file at path, keeping its permission bits.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	info, err := os.Stat(string(path))
	if err != nil {
		return err
	}

	return os.WriteFile(string(path), content, info.Mode().Perm())
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashContent returns the SHA-256 hash of content in the same form as
// HashFile.
func HashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// splitPattern turns "./pkg/..." into ("./pkg", true).
func splitPattern(pattern string) (string, bool) {
	if pattern == recursiveSuffix {
		return ".", true
	}

	if strings.HasSuffix(pattern, "/"+recursiveSuffix) {
		root := strings.TrimSuffix(pattern, "/"+recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}

	_, skip := skippedDirs[name]

	return skip
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	filters := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		filters = append(filters, re)
	}

	return filters, nil
}

func excluded(filters []*regexp.Regexp, path string) bool {
	for _, re := range filters {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// shortPath makes path relative to the working directory when it lies below it.
func shortPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}
