package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/repolens/core/pkg/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// WriteText renders a compact human-readable summary of the result.
func WriteText(w io.Writer, result *domain.AnalysisResult) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Repository Analysis"))
	b.WriteByte('\n')
	if result.Metadata.RepoPath != "" {
		b.WriteString(dimStyle.Render(result.Metadata.RepoPath))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d files, %d lines, %dms\n",
		result.Summary.TotalFiles, result.Summary.TotalLines, result.Metadata.DurationMS)

	if result.Metadata.Error != "" {
		b.WriteString(warnStyle.Render("error: " + result.Metadata.Error))
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	writeLanguages(&b, result.Summary.Languages)
	writeFrameworks(&b, result.Summary.Frameworks)
	writeEndpoints(&b, result.Summary.Endpoints)
	writeDetectorCounts(&b, result.Summary)
	writeCycles(&b, result.Dependencies.Circular)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLanguages(b *strings.Builder, languages map[domain.Language]int) {
	if len(languages) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render("Languages"))
	b.WriteByte('\n')

	type langCount struct {
		lang  domain.Language
		count int
	}
	counts := make([]langCount, 0, len(languages))
	for lang, n := range languages {
		counts = append(counts, langCount{lang, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].lang < counts[j].lang
	})
	for _, lc := range counts {
		fmt.Fprintf(b, "  %-12s %d\n", lc.lang, lc.count)
	}
}

func writeFrameworks(b *strings.Builder, frameworks map[string]float64) {
	if len(frameworks) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render("Frameworks"))
	b.WriteByte('\n')

	names := make([]string, 0, len(frameworks))
	for name := range frameworks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if frameworks[names[i]] != frameworks[names[j]] {
			return frameworks[names[i]] > frameworks[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(b, "  %-12s %.0f%%\n", name, frameworks[name]*100)
	}
}

func writeEndpoints(b *strings.Builder, endpoints []domain.APIEndpoint) {
	if len(endpoints) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render("API Endpoints"))
	b.WriteByte('\n')
	for _, ep := range endpoints {
		fmt.Fprintf(b, "  %-6s %-30s %s\n", ep.Method, ep.Route,
			dimStyle.Render(fmt.Sprintf("%s (%s:%d)", ep.Framework, ep.File, ep.Line)))
	}
}

func writeDetectorCounts(b *strings.Builder, summary domain.Summary) {
	if len(summary.StateChanges) == 0 && len(summary.EventHandlers) == 0 {
		return
	}
	fmt.Fprintf(b, "%d state patterns, %d event handlers\n",
		len(summary.StateChanges), len(summary.EventHandlers))
}

func writeCycles(b *strings.Builder, cycles []domain.CircularDependency) {
	if len(cycles) == 0 {
		return
	}
	b.WriteString(warnStyle.Render(fmt.Sprintf("Circular dependencies (%d)", len(cycles))))
	b.WriteByte('\n')
	for _, c := range cycles {
		fmt.Fprintf(b, "  %s\n", strings.Join(c.Chain, " -> "))
	}
}
