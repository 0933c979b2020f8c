package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// binaryExtensions are never source files; they are filtered before any
// content sniffing happens.
var binaryExtensions = map[string]struct{}{
	".bin": {}, ".bmp": {}, ".class": {}, ".dll": {}, ".dylib": {},
	".eot": {}, ".exe": {}, ".gif": {}, ".gz": {}, ".ico": {},
	".jar": {}, ".jpeg": {}, ".jpg": {}, ".min.js": {}, ".mp3": {},
	".mp4": {}, ".o": {}, ".otf": {}, ".pdf": {}, ".png": {},
	".pyc": {}, ".so": {}, ".tar": {}, ".ttf": {}, ".wasm": {},
	".webp": {}, ".woff": {}, ".woff2": {}, ".zip": {},
}

// discover walks root and returns repo-relative, forward-slash candidate
// paths. Per-entry errors are collected, never fatal.
func (s *Scanner) discover(root string) ([]string, []error) {
	skip := make(map[string]struct{}, len(DefaultSkipPatterns)+len(s.options.ExcludePatterns))
	for _, p := range DefaultSkipPatterns {
		skip[p] = struct{}{}
	}
	for _, p := range s.options.ExcludePatterns {
		skip[p] = struct{}{}
	}

	var candidates []string
	var errs []error

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if _, skipped := skip[d.Name()]; skipped && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		rel = filepath.ToSlash(rel)

		if isBinaryPath(rel) {
			return nil
		}
		if !s.matchesIncludes(rel) {
			return nil
		}

		candidates = append(candidates, rel)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	return candidates, errs
}

func (s *Scanner) matchesIncludes(rel string) bool {
	if len(s.options.IncludePatterns) == 0 {
		return true
	}
	for _, pattern := range s.options.IncludePatterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func isBinaryPath(rel string) bool {
	lower := strings.ToLower(rel)
	if strings.HasSuffix(lower, ".min.js") {
		return true
	}
	_, ok := binaryExtensions[filepath.Ext(lower)]
	return ok
}
