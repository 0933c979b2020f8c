package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/core/pkg/domain"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    domain.Language
	}{
		{name: "js extension", path: "app.js", want: domain.LanguageJavaScript},
		{name: "jsx extension", path: "Button.JSX", want: domain.LanguageJavaScript},
		{name: "ts extension", path: "service.ts", want: domain.LanguageTypeScript},
		{name: "tsx extension", path: "App.tsx", want: domain.LanguageTypeScript},
		{name: "python extension", path: "views.py", want: domain.LanguagePython},
		{name: "go extension", path: "main.go", want: domain.LanguageGo},
		{name: "ruby extension", path: "app.rb", want: domain.LanguageRuby},
		{name: "java extension", path: "Main.java", want: domain.LanguageJava},
		{
			name:    "python shebang",
			path:    "manage",
			content: "#!/usr/bin/env python3\nimport sys\n",
			want:    domain.LanguagePython,
		},
		{
			name:    "node shebang",
			path:    "cli",
			content: "#!/usr/bin/env node\nconsole.log('hi');\n",
			want:    domain.LanguageJavaScript,
		},
		{
			name:    "go content heuristic",
			path:    "snippet",
			content: "package main\n\nfunc main() {}\n",
			want:    domain.LanguageGo,
		},
		{
			name:    "python content heuristic",
			path:    "snippet",
			content: "def handler(event):\n    return event\n",
			want:    domain.LanguagePython,
		},
		{
			name:    "js content heuristic",
			path:    "snippet",
			content: "const add = (a, b) => a + b;\n",
			want:    domain.LanguageJavaScript,
		},
		{name: "unknown", path: "README", content: "hello\n", want: domain.LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.path, []byte(tt.content)))
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "no trailing newline", content: "a\nb", want: 2},
		{name: "trailing newline", content: "a\nb\n", want: 2},
		{name: "single line", content: "x", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countLines([]byte(tt.content)))
		})
	}
}

func TestParseFile_Python(t *testing.T) {
	source := []byte(`from flask import Flask

@app.route('/ping')
def ping():
    return "pong"
`)

	fact := ParseFile(context.Background(), "app.py", source)

	assert.Equal(t, domain.LanguagePython, fact.Language)
	assert.Equal(t, 5, fact.Lines)
	assert.Empty(t, fact.Error)
	assert.Contains(t, fact.Imports, "flask")
	require.Contains(t, fact.Functions, "ping()")
	require.Len(t, fact.Functions["ping()"].Decorators, 1)
	assert.Equal(t, "app.route", fact.Functions["ping()"].Decorators[0].Name)
}

func TestParseFile_JavaScript(t *testing.T) {
	source := []byte(`import express from 'express';

function getUsers(req, res) {
  res.json([]);
}
`)

	fact := ParseFile(context.Background(), "routes.js", source)

	assert.Equal(t, domain.LanguageJavaScript, fact.Language)
	assert.Empty(t, fact.Error)
	assert.Contains(t, fact.Imports, "express")
	assert.Contains(t, fact.Functions, "getUsers(req, res)")
}

func TestParseFile_OtherLanguage(t *testing.T) {
	fact := ParseFile(context.Background(), "main.go", []byte("package main\n"))

	assert.Equal(t, domain.LanguageGo, fact.Language)
	assert.Equal(t, 1, fact.Lines)
	assert.Empty(t, fact.Imports)
	assert.Empty(t, fact.Functions)
}
