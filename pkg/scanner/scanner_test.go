package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/repolens/core/pkg/domain"
	"github.com/repolens/core/pkg/scanner"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestScan(t *testing.T) {
	t.Run("empty directory yields empty result", func(t *testing.T) {
		result, err := scanner.New().Scan(context.Background(), t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Files) != 0 {
			t.Errorf("expected 0 files, got %d", len(result.Files))
		}
		if result.Stats.FilesScanned != 0 {
			t.Errorf("expected 0 scanned, got %d", result.Stats.FilesScanned)
		}
	})

	t.Run("parses source files into facts", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "routes/users.js", []byte("import express from 'express';\nfunction getUsers(req, res) {}\n"))
		writeFile(t, tmpDir, "app.py", []byte("from flask import Flask\n\ndef ping():\n    return 'pong'\n"))

		result, err := scanner.New().Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(result.Files))
		}

		js, ok := result.Files["routes/users.js"]
		if !ok {
			t.Fatal("missing routes/users.js (paths must be repo-relative with forward slashes)")
		}
		if js.Language != domain.LanguageJavaScript {
			t.Errorf("expected javascript, got %s", js.Language)
		}
		if _, ok := js.Imports["express"]; !ok {
			t.Error("expected express import")
		}

		py := result.Files["app.py"]
		if py.Language != domain.LanguagePython {
			t.Errorf("expected python, got %s", py.Language)
		}
		if result.Stats.FilesParsed != 2 {
			t.Errorf("expected 2 parsed, got %d", result.Stats.FilesParsed)
		}
	})

	t.Run("skips default directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "node_modules/react/index.js", []byte("module.exports = {};\n"))
		writeFile(t, tmpDir, ".git/config.js", []byte("const x = 1;\n"))
		writeFile(t, tmpDir, "src/index.js", []byte("const x = 1;\n"))

		result, err := scanner.New().Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(result.Files))
		}
		if _, ok := result.Files["src/index.js"]; !ok {
			t.Error("expected src/index.js to survive")
		}
	})

	t.Run("respects exclude patterns", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "generated/api.js", []byte("const x = 1;\n"))
		writeFile(t, tmpDir, "src/api.js", []byte("const x = 1;\n"))

		result, err := scanner.New(
			scanner.WithExcludePatterns([]string{"generated"}),
		).Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, ok := result.Files["generated/api.js"]; ok {
			t.Error("excluded directory was scanned")
		}
		if _, ok := result.Files["src/api.js"]; !ok {
			t.Error("expected src/api.js to survive")
		}
	})

	t.Run("respects include patterns", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "src/app.py", []byte("x = 1\n"))
		writeFile(t, tmpDir, "src/app.js", []byte("const x = 1;\n"))

		result, err := scanner.New(
			scanner.WithIncludePatterns([]string{"**/*.py"}),
		).Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(result.Files))
		}
		if _, ok := result.Files["src/app.py"]; !ok {
			t.Error("expected src/app.py to match include pattern")
		}
	})

	t.Run("skips binary and oversized files", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "logo.png", []byte{0x89, 0x50, 0x4e, 0x47})
		writeFile(t, tmpDir, "bundle.min.js", []byte("!function(){}();\n"))
		writeFile(t, tmpDir, "blob.js", []byte("const x = '\x00';\n"))
		writeFile(t, tmpDir, "big.js", []byte("// padding padding padding\n"))
		writeFile(t, tmpDir, "ok.js", []byte("const x = 1;\n"))

		result, err := scanner.New(
			scanner.WithMaxFileSize(15),
		).Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Files) != 1 {
			t.Fatalf("expected only ok.js, got %d files", len(result.Files))
		}
		if _, ok := result.Files["ok.js"]; !ok {
			t.Error("expected ok.js to survive")
		}
		// logo.png and bundle.min.js never become candidates; only the
		// content-guarded blob.js and big.js count as skipped.
		if result.Stats.FilesSkipped != 2 {
			t.Errorf("expected 2 skipped, got %d", result.Stats.FilesSkipped)
		}
	})

	t.Run("read errors are recorded, not counted as skips", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "ok.js", []byte("const x = 1;\n"))
		if err := os.Symlink(filepath.Join(tmpDir, "missing.js"), filepath.Join(tmpDir, "broken.js")); err != nil {
			t.Skipf("symlink unsupported: %v", err)
		}

		result, err := scanner.New().Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Errors) != 1 {
			t.Fatalf("expected 1 scan error, got %d", len(result.Errors))
		}
		if result.Errors[0].Path != "broken.js" || result.Errors[0].Phase != "read" {
			t.Errorf("unexpected scan error: %+v", result.Errors[0])
		}
		if result.Stats.FilesSkipped != 0 {
			t.Errorf("expected 0 skipped, got %d", result.Stats.FilesSkipped)
		}
		if result.Stats.FilesParsed != 1 {
			t.Errorf("expected 1 parsed, got %d", result.Stats.FilesParsed)
		}
	})

	t.Run("records parse failures without aborting", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "fine.py", []byte("def ok():\n    pass\n"))

		result, err := scanner.New().Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Stats.FilesFailed != 0 {
			t.Errorf("expected 0 failures, got %d", result.Stats.FilesFailed)
		}
	})

	t.Run("cancelled context returns ErrScanCancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "a.js", []byte("const x = 1;\n"))

		_, err := scanner.New().Scan(ctx, tmpDir)
		if err != scanner.ErrScanCancelled {
			t.Errorf("expected ErrScanCancelled, got %v", err)
		}
	})

	t.Run("respects worker count option", func(t *testing.T) {
		tmpDir := t.TempDir()
		for i := 0; i < 8; i++ {
			writeFile(t, tmpDir, filepath.Join("src", string(rune('a'+i))+".js"), []byte("const x = 1;\n"))
		}

		result, err := scanner.New(scanner.WithWorkers(2)).Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Files) != 8 {
			t.Errorf("expected 8 files, got %d", len(result.Files))
		}
	})
}

func TestScanError_Error(t *testing.T) {
	withPath := scanner.ScanError{Err: os.ErrNotExist, Path: "a.js", Phase: "read"}
	if got := withPath.Error(); got != "[read] a.js: file does not exist" {
		t.Errorf("unexpected message: %q", got)
	}

	withoutPath := scanner.ScanError{Err: os.ErrNotExist, Phase: "discovery"}
	if got := withoutPath.Error(); got != "[discovery] file does not exist" {
		t.Errorf("unexpected message: %q", got)
	}
}
