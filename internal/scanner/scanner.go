package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Scanner discovers log files in a directory tree.
type Scanner interface {
	Scan(ctx context.Context, rootDir string, patterns []string, excludes []string) ([]string, error)
}

// FileScanner implements Scanner using filepath.WalkDir.
type FileScanner struct {
	Recursive bool
}

// NewScanner creates a new FileScanner.
func NewScanner(recursive bool) *FileScanner {
	return &FileScanner{Recursive: recursive}
}

// Scan walks rootDir and returns sorted file paths matching any of the given
// glob patterns while excluding paths that match any exclude pattern.
// Matching ignores case, so "*.log" also finds "RUN-PASS.LOG".
func (s *FileScanner) Scan(ctx context.Context, rootDir string, patterns []string, excludes []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			relPath = path
		}

		if d.IsDir() {
			if !s.Recursive && relPath != "." {
				return filepath.SkipDir
			}
			if relPath == "." {
				return nil
			}
			for _, exc := range excludes {
				if matchGlob(relPath, exc) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		for _, exc := range excludes {
			if matchGlob(relPath, exc) {
				return nil
			}
		}

		for _, pattern := range patterns {
			if matchGlob(relPath, pattern) {
				files = append(files, path)
				return nil
			}
		}

		return nil
	})

	if err != nil {
		return nil, domain.NewErrorWithSuggestion("scan", rootDir, 0,
			"failed to scan directory",
			"check that the directory exists and is readable",
			err)
	}

	sort.Strings(files)
	return files, nil
}

// matchGlob matches a path against a glob pattern, supporting ** for recursive matching.
func matchGlob(path, pattern string) bool {
	path = strings.ToLower(filepath.ToSlash(path))
	pattern = strings.ToLower(filepath.ToSlash(pattern))

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix != "" {
			if path != prefix && !strings.HasPrefix(path, prefix+"/") {
				return false
			}
			path = strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
		}

		if suffix == "" {
			return true
		}

		pathParts := strings.Split(path, "/")
		for i := range pathParts {
			if matched, _ := filepath.Match(suffix, strings.Join(pathParts[i:], "/")); matched {
				return true
			}
		}
		return false
	}

	if matched, _ := filepath.Match(pattern, baseName(path)); matched {
		return true
	}
	matched, _ := filepath.Match(pattern, path)
	return matched
}

func baseName(slashPath string) string {
	if i := strings.LastIndex(slashPath, "/"); i >= 0 {
		return slashPath[i+1:]
	}
	return slashPath
}
