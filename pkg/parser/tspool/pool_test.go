package tspool_test

import (
	"context"
	"sync"
	"testing"

	"github.com/repolens/core/pkg/domain"
	"github.com/repolens/core/pkg/parser/tspool"
)

func TestParse_RaceFree(t *testing.T) {
	t.Parallel()

	const goroutines = 50
	source := []byte("const x = 1;")

	var wg sync.WaitGroup
	wg.Add(goroutines)

	errCh := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			tree, err := tspool.Parse(context.Background(), domain.LanguageTypeScript, source)
			if err != nil {
				errCh <- err
				return
			}
			defer tree.Close()
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("Parse failed: %v", err)
	}
}

func TestGet_FreshParserPerCall(t *testing.T) {
	t.Parallel()

	parser1 := tspool.Get(domain.LanguageJavaScript)
	if parser1 == nil {
		t.Fatal("Get returned nil parser")
	}
	defer parser1.Close()

	parser2 := tspool.Get(domain.LanguageJavaScript)
	if parser2 == nil {
		t.Fatal("Get returned nil parser")
	}
	defer parser2.Close()

	if parser1 == parser2 {
		t.Error("Get must return a fresh parser per call")
	}
}

func TestGetLanguage_ReturnsCorrectLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang domain.Language
	}{
		{"JavaScript", domain.LanguageJavaScript},
		{"Python", domain.LanguagePython},
		{"TypeScript", domain.LanguageTypeScript},
		{"Unknown falls back to TypeScript", domain.LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lang := tspool.GetLanguage(tt.lang)
			if lang == nil {
				t.Errorf("GetLanguage(%v) returned nil", tt.lang)
			}
		})
	}
}

func TestParse_ValidOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lang   domain.Language
		source string
	}{
		{
			name:   "TypeScript const",
			lang:   domain.LanguageTypeScript,
			source: "const x: number = 1;",
		},
		{
			name:   "JavaScript function",
			lang:   domain.LanguageJavaScript,
			source: "function foo() { return 42; }",
		},
		{
			name:   "Python def",
			lang:   domain.LanguagePython,
			source: "def foo():\n    return 42\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := tspool.Parse(context.Background(), tt.lang, []byte(tt.source))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			defer tree.Close()

			root := tree.RootNode()
			if root == nil {
				t.Fatal("Root node is nil")
			}
			if root.ChildCount() == 0 {
				t.Error("Expected children in parsed tree")
			}
		})
	}
}
