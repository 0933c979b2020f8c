// Package domain defines the core types for per-file structural facts and
// the aggregated analysis report.
package domain

// Language represents a programming language.
type Language string

// Supported languages for fact extraction.
const (
	LanguageGo         Language = "go"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageRuby       Language = "ruby"
	LanguageTypeScript Language = "typescript"
	LanguageUnknown    Language = "unknown"
)

// IsJSLike reports whether the language is JavaScript or TypeScript.
// JSX and hook heuristics only apply to these languages.
func (l Language) IsJSLike() bool {
	return l == LanguageJavaScript || l == LanguageTypeScript
}
