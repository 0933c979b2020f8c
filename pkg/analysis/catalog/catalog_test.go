package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/core/pkg/domain"
)

func TestDefault(t *testing.T) {
	c := Default()
	sigs := c.Signatures()
	require.NotEmpty(t, sigs)

	names := make(map[string]bool, len(sigs))
	for _, sig := range sigs {
		require.NotEmpty(t, sig.Name)
		assert.False(t, names[sig.Name], "duplicate signature %s", sig.Name)
		names[sig.Name] = true

		assert.GreaterOrEqual(t, sig.MinConfidence, 0.0, "%s", sig.Name)
		assert.LessOrEqual(t, sig.MinConfidence, 1.0, "%s", sig.Name)
		require.NotEmpty(t, sig.Patterns, "%s", sig.Name)

		ids := make(map[string]bool, len(sig.Patterns))
		for _, p := range sig.Patterns {
			assert.False(t, ids[p.ID], "%s: duplicate pattern %s", sig.Name, p.ID)
			ids[p.ID] = true
			assert.Greater(t, p.Weight, 0.0, "%s/%s", sig.Name, p.ID)
			require.NotNil(t, p.Expr, "%s/%s", sig.Name, p.ID)
		}
	}

	for _, want := range []string{"React", "Vue", "Angular", "Express", "NestJS", "Django", "Flask", "FastAPI"} {
		assert.True(t, names[want], "missing signature %s", want)
	}
}

func TestFind(t *testing.T) {
	c := Default()

	sig := c.Find("Express")
	require.NotNil(t, sig)
	assert.Equal(t, "Express", sig.Name)

	assert.Nil(t, c.Find("Laravel"))
}

func TestAppliesTo(t *testing.T) {
	scoped := Pattern{Languages: []domain.Language{domain.LanguagePython}}
	assert.True(t, scoped.AppliesTo(domain.LanguagePython))
	assert.False(t, scoped.AppliesTo(domain.LanguageJavaScript))

	agnostic := Pattern{}
	assert.True(t, agnostic.AppliesTo(domain.LanguageRuby))
}

func TestApplyOverrides(t *testing.T) {
	base := Default()
	threshold := 0.7

	tuned, err := base.ApplyOverrides([]Override{{
		Framework:     "Express",
		MinConfidence: &threshold,
		Weights:       map[string]float64{"express-import": 12},
	}})
	require.NoError(t, err)

	sig := tuned.Find("Express")
	require.NotNil(t, sig)
	assert.Equal(t, 0.7, sig.MinConfidence)

	var weight float64
	for _, p := range sig.Patterns {
		if p.ID == "express-import" {
			weight = p.Weight
		}
	}
	assert.Equal(t, 12.0, weight)

	// The source catalog is untouched.
	orig := base.Find("Express")
	require.NotNil(t, orig)
	assert.NotEqual(t, 0.7, orig.MinConfidence)
	for _, p := range orig.Patterns {
		if p.ID == "express-import" {
			assert.NotEqual(t, 12.0, p.Weight)
		}
	}
}

func TestApplyOverrides_Errors(t *testing.T) {
	badThreshold := 1.5

	tests := []struct {
		name     string
		override Override
		wantErr  string
	}{
		{
			name:     "unknown framework",
			override: Override{Framework: "Laravel"},
			wantErr:  "unknown framework",
		},
		{
			name:     "unknown pattern",
			override: Override{Framework: "Express", Weights: map[string]float64{"nope": 2}},
			wantErr:  "unknown pattern",
		},
		{
			name:     "threshold out of range",
			override: Override{Framework: "Express", MinConfidence: &badThreshold},
			wantErr:  "out of [0,1]",
		},
		{
			name:     "non-positive weight",
			override: Override{Framework: "Express", Weights: map[string]float64{"express-import": 0}},
			wantErr:  "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().ApplyOverrides([]Override{tt.override})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseOverrides(t *testing.T) {
	doc := []byte(`
overrides:
  - framework: Express
    min_confidence: 0.5
    weights:
      express-import: 10
  - framework: Django
`)

	overrides, err := ParseOverrides(doc)
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	assert.Equal(t, "Express", overrides[0].Framework)
	require.NotNil(t, overrides[0].MinConfidence)
	assert.Equal(t, 0.5, *overrides[0].MinConfidence)
	assert.Equal(t, 10.0, overrides[0].Weights["express-import"])

	assert.Equal(t, "Django", overrides[1].Framework)
	assert.Nil(t, overrides[1].MinConfidence)
}

func TestParseOverrides_Invalid(t *testing.T) {
	_, err := ParseOverrides([]byte("overrides: {not: a list}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog overrides")
}
