package parser

import (
	"bytes"
	"path"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

var extLanguages = map[string]domain.Language{
	".cjs":  domain.LanguageJavaScript,
	".go":   domain.LanguageGo,
	".java": domain.LanguageJava,
	".js":   domain.LanguageJavaScript,
	".jsx":  domain.LanguageJavaScript,
	".mjs":  domain.LanguageJavaScript,
	".py":   domain.LanguagePython,
	".rb":   domain.LanguageRuby,
	".ts":   domain.LanguageTypeScript,
	".tsx":  domain.LanguageTypeScript,
}

// DetectLanguage determines the programming language of a file from its
// extension, falling back to the shebang line and then to coarse content
// heuristics.
func DetectLanguage(filePath string, content []byte) domain.Language {
	ext := strings.ToLower(path.Ext(filePath))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}

	if lang := shebangLanguage(content); lang != domain.LanguageUnknown {
		return lang
	}

	return contentLanguage(content)
}

func shebangLanguage(content []byte) domain.Language {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return domain.LanguageUnknown
	}

	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}

	switch {
	case bytes.Contains(line, []byte("python")):
		return domain.LanguagePython
	case bytes.Contains(line, []byte("node")):
		return domain.LanguageJavaScript
	case bytes.Contains(line, []byte("ruby")):
		return domain.LanguageRuby
	default:
		return domain.LanguageUnknown
	}
}

func contentLanguage(content []byte) domain.Language {
	head := content
	if len(head) > 2048 {
		head = head[:2048]
	}

	switch {
	case bytes.Contains(head, []byte("package main")) || bytes.Contains(head, []byte("func main(")):
		return domain.LanguageGo
	case bytes.Contains(head, []byte("def ")) && bytes.Contains(head, []byte(":")):
		return domain.LanguagePython
	case bytes.Contains(head, []byte("function ")) || bytes.Contains(head, []byte("=>")):
		return domain.LanguageJavaScript
	default:
		return domain.LanguageUnknown
	}
}
