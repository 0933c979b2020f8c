// Package parser turns raw source files into FileFact records. JS/TS files
// go through tree-sitter AST extraction; Python files go through line-based
// regex extraction; everything else yields a minimal fact that contributes
// only to summary statistics.
package parser

import (
	"bytes"
	"context"

	"github.com/repolens/core/pkg/domain"
	"github.com/repolens/core/pkg/parser/jsast"
	"github.com/repolens/core/pkg/parser/pyext"
)

// ParseFile extracts a FileFact from one file. Extraction failures are
// recorded on the fact's Error field rather than returned: a broken file
// must not abort the scan, and the aggregator excludes error facts from
// detection and the dependency graph.
func ParseFile(ctx context.Context, filePath string, content []byte) domain.FileFact {
	lang := DetectLanguage(filePath, content)

	fact := domain.FileFact{
		Path:     filePath,
		Language: lang,
		Lines:    countLines(content),
	}

	switch {
	case lang.IsJSLike():
		if err := jsast.Extract(ctx, &fact, content); err != nil {
			fact.Error = err.Error()
		}
	case lang == domain.LanguagePython:
		pyext.Extract(&fact, content)
	}

	return fact
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
