package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/core/pkg/domain"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		FolderStructure: map[string][]domain.FileFact{
			domain.RootFolder: {{Path: "index.js", Language: domain.LanguageJavaScript, Lines: 10}},
			"routes":          {{Path: "routes/users.js", Language: domain.LanguageJavaScript, Lines: 42}},
		},
		Summary: domain.Summary{
			TotalFiles: 2,
			TotalLines: 52,
			Languages:  map[domain.Language]int{domain.LanguageJavaScript: 2},
			Extensions: map[string]int{".js": 2},
			Frameworks: map[string]float64{"Express": 0.8},
			Endpoints: []domain.APIEndpoint{{
				Framework: "Express",
				File:      "routes/users.js",
				Line:      4,
				Handler:   "getUsers",
				Method:    "GET",
				Route:     "/users",
			}},
		},
		Dependencies: domain.DependencyInfo{
			Graph: domain.DependencyGraph{"index.js": {"routes/users.js"}},
			Circular: []domain.CircularDependency{{
				Chain: []string{"a.js", "b.js", "a.js"},
				Files: []string{"a.js", "b.js"},
			}},
		},
		Metadata: domain.Metadata{
			Timestamp:  "2026-08-30T00:00:00Z",
			DurationMS: 12,
			Version:    "0.3.0",
			RepoPath:   "/tmp/repo",
		},
	}
}

func TestWriteJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult(), false))

	out := strings.TrimRight(buf.String(), "\n")
	assert.NotContains(t, out, "\n", "compact output must be one line")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "folder_structure")
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "dependencies")
	assert.Contains(t, decoded, "metadata")
}

func TestWriteJSON_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult(), true))

	assert.Contains(t, buf.String(), "\n  ")

	var decoded domain.AnalysisResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Summary.TotalFiles)
	assert.Equal(t, "/users", decoded.Summary.Endpoints[0].Route)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Repository Analysis")
	assert.Contains(t, out, "/tmp/repo")
	assert.Contains(t, out, "2 files, 52 lines")
	assert.Contains(t, out, "javascript")
	assert.Contains(t, out, "Express")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "/users")
	assert.Contains(t, out, "a.js -> b.js -> a.js")
}

func TestWriteText_ErrorShortCircuits(t *testing.T) {
	result := sampleResult()
	result.Metadata.Error = "aggregation failed: boom"

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "aggregation failed: boom")
	assert.NotContains(t, out, "API Endpoints")
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, &domain.AnalysisResult{}))

	out := buf.String()
	assert.Contains(t, out, "0 files, 0 lines")
	assert.NotContains(t, out, "Languages")
	assert.NotContains(t, out, "Circular")
}
